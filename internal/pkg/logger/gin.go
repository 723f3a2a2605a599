package logger

import (
	"Atlania/internal/api/config"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

type accessRecord struct {
	Time        string `json:"time"`
	Level       string `json:"level"`
	Msg         string `json:"msg"`
	TraceID     string `json:"trace_id,omitempty"`
	LogToken    string `json:"log_token,omitempty"`
	TargetIndex string `json:"target_index,omitempty"`
	Method      string `json:"method"`
	Path        string `json:"path"`
	Status      int    `json:"status"`
	ClientIP    string `json:"client_ip"`
	Latency     string `json:"latency"`
}

// SetupGin 访问日志与 panic 恢复
func SetupGin(r *gin.Engine, cfg config.LogConfig) {
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Output:    LogWriter,
		SkipPaths: []string{"/health"},
		Formatter: func(p gin.LogFormatterParams) string {
			return formatAccess(p, cfg.Logstash)
		},
	}))
	r.Use(gin.Recovery())
}

func formatAccess(p gin.LogFormatterParams, ls config.LogstashConfig) string {
	level := "INFO"
	if p.StatusCode >= 500 {
		level = "ERROR"
	}
	rec := accessRecord{
		Time:        p.TimeStamp.Format(time.RFC3339),
		Level:       level,
		Msg:         "GIN_ACCESS",
		TraceID:     accessTraceID(p),
		LogToken:    ls.Token,
		TargetIndex: ls.Index,
		Method:      p.Method,
		Path:        p.Path,
		Status:      p.StatusCode,
		ClientIP:    p.ClientIP,
		Latency:     p.Latency.String(),
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return ""
	}
	return string(b) + "\n"
}

func accessTraceID(p gin.LogFormatterParams) string {
	if id, ok := p.Keys[TraceIDKey].(string); ok && id != "" {
		return id
	}
	if p.Request != nil {
		if id, ok := p.Request.Context().Value(TraceIDKey).(string); ok {
			return id
		}
	}
	return ""
}
