package util

import (
	"regexp"
	"strings"
)

var (
	slugInvalid   = regexp.MustCompile(`[^\p{L}\p{M}\p{N}\s_-]`)
	slugSeparator = regexp.MustCompile(`[\s_-]+`)
)

// Slugify 生成 URL 友好的 slug，例如 "Hello, World! 2026" -> "hello-world-2026"，保留非 ASCII 字母
func Slugify(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = slugInvalid.ReplaceAllString(result, "")
	result = slugSeparator.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// PtrString 空串返回 nil
func PtrString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref 空指针返回零值
func Deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
