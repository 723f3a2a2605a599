package middleware

import (
	"bytes"
	"io"
	log "log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

const (
	maxAuditBody = 16384
	maskedValue  = "******"
)

// 请求与响应中需要脱敏的字段
var sensitiveFields = map[string]struct{}{
	"password":      {},
	"access_token":  {},
	"client_secret": {},
}

type responseBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (r *responseBodyWriter) Write(b []byte) (int, error) {
	if r.body.Len() < maxAuditBody {
		r.body.Write(b)
	}
	return r.ResponseWriter.Write(b)
}

func (r *responseBodyWriter) Flush() {
	if flusher, ok := r.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func AuditMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		contentType := c.ContentType()

		reqBody := ""
		if strings.HasPrefix(contentType, gin.MIMEMultipartPOSTForm) {
			reqBody = "<multipart " + c.GetHeader("Content-Length") + " bytes>"
		} else if c.Request.Body != nil {
			raw, _ := io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(raw))
			reqBody = MaskBody(contentType, raw)
		}

		log.InfoContext(ctx, "Recv Request",
			log.String("method", c.Request.Method),
			log.String("path", c.Request.URL.Path),
			log.String("query", maskQuery(c.Request.URL.RawQuery)),
			log.String("req_body", reqBody),
		)

		w := &responseBodyWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w
		startTime := time.Now()

		c.Next()

		log.InfoContext(ctx, "Send Response",
			log.Int("status", c.Writer.Status()),
			log.Duration("latency", time.Since(startTime)),
			log.String("res_body", MaskBody(w.Header().Get("Content-Type"), w.body.Bytes())),
		)
	}
}

// MaskBody 对 JSON 与表单中的敏感字段脱敏，无法解析时原样返回
func MaskBody(contentType string, body []byte) string {
	if len(body) == 0 {
		return ""
	}
	switch {
	case strings.HasPrefix(contentType, gin.MIMEJSON):
		var payload any
		if err := json.Unmarshal(body, &payload); err != nil {
			return string(body)
		}
		masked, err := json.Marshal(maskValue(payload))
		if err != nil {
			return string(body)
		}
		return string(masked)
	case strings.HasPrefix(contentType, gin.MIMEPOSTForm):
		return maskQuery(string(body))
	}
	return string(body)
}

func maskValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, item := range val {
			if _, ok := sensitiveFields[strings.ToLower(k)]; ok {
				val[k] = maskedValue
				continue
			}
			val[k] = maskValue(item)
		}
	case []any:
		for i, item := range val {
			val[i] = maskValue(item)
		}
	}
	return v
}

func maskQuery(raw string) string {
	if raw == "" {
		return ""
	}
	values, err := url.ParseQuery(raw)
	if err != nil {
		return raw
	}
	for k := range values {
		if _, ok := sensitiveFields[strings.ToLower(k)]; ok {
			values.Set(k, maskedValue)
		}
	}
	decoded, err := url.QueryUnescape(values.Encode())
	if err != nil {
		return values.Encode()
	}
	return decoded
}
