package security

import "testing"

// HTMLタグの除去とテキストの保持を検証
func TestInputSanitizer_SanitizeText(t *testing.T) {
	s := NewInputSanitizer()

	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "Buy milk", "Buy milk"},
		{"empty", "", ""},
		{"script tag", `<script>alert(1)</script>Buy milk`, "Buy milk"},
		{"inline tag", `<b>Buy</b> milk`, "Buy milk"},
		{"img onerror", `<img src=x onerror=alert(1)>title`, "title"},
		{"entity decoded", "Tom &amp; Jerry", "Tom & Jerry"},
		{"surrounding spaces", "  Buy milk  ", "Buy milk"},
		{"japanese text", "牛乳を買う", "牛乳を買う"},
		{"only tags", `<div><span></span></div>`, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := s.SanitizeText(tc.input); got != tc.want {
				t.Errorf("SanitizeText(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

// 同一入力に対して常に同一出力を返す（冪等性）ことを検証
func TestInputSanitizer_Idempotent(t *testing.T) {
	s := NewInputSanitizer()

	inputs := []string{"Buy milk", `<b>Buy</b> milk`, "Tom &amp; Jerry"}
	for _, input := range inputs {
		once := s.SanitizeText(input)
		twice := s.SanitizeText(once)
		if once != twice {
			t.Errorf("not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}
