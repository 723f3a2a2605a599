package util

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple title", "Hello World", "hello-world"},
		{"punctuation", "Hello, World! 2026", "hello-world-2026"},
		{"multiple spaces", "Go   is    fun", "go-is-fun"},
		{"underscores", "snake_case_title", "snake-case-title"},
		{"leading and trailing", "  -Trim me-  ", "trim-me"},
		{"already slug", "digital-marketing", "digital-marketing"},
		{"collapses hyphens", "a -- b", "a-b"},
		{"accented letters kept", "Café Déjà vu", "café-déjà-vu"},
		{"bengali", "বাংলা ব্লগ", "বাংলা-ব্লগ"},
		{"cjk", "你好 世界!", "你好-世界"},
		{"empty", "", ""},
		{"only symbols", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPtrHelpers(t *testing.T) {
	if PtrString("") != nil {
		t.Error("PtrString(\"\") should be nil")
	}
	if p := PtrString("x"); p == nil || *p != "x" {
		t.Error("PtrString(\"x\") lost its value")
	}
	if Deref[string](nil) != "" {
		t.Error("Deref(nil) should be zero value")
	}
	v := 3
	if Deref(&v) != 3 {
		t.Error("Deref(&3) != 3")
	}
}
