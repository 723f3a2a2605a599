package util

import (
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
)

// ErrFileTooLarge 超过上传上限
var ErrFileTooLarge = errors.New("file too large")

// ReadUpload 读取上传文件，maxSize <= 0 表示不限制
func ReadUpload(file *multipart.FileHeader, maxSize int64) ([]byte, string, error) {
	if maxSize > 0 && file.Size > maxSize {
		return nil, "", ErrFileTooLarge
	}
	reader, err := file.Open()
	if err != nil {
		return nil, "", err
	}
	defer func() { _ = reader.Close() }()

	var src io.Reader = reader
	if maxSize > 0 {
		src = io.LimitReader(reader, maxSize+1)
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, "", err
	}
	if maxSize > 0 && int64(len(data)) > maxSize {
		return nil, "", ErrFileTooLarge
	}
	return data, ContentType(file.Header.Get("Content-Type"), data), nil
}

// ContentType 优先使用客户端声明的类型，缺失或为通用二进制时按内容嗅探
func ContentType(declared string, data []byte) string {
	if declared != "" {
		if mediaType, _, err := mime.ParseMediaType(declared); err == nil && mediaType != "application/octet-stream" {
			return strings.ToLower(mediaType)
		}
	}
	sniffed := http.DetectContentType(data)
	if mediaType, _, err := mime.ParseMediaType(sniffed); err == nil {
		return mediaType
	}
	return sniffed
}
