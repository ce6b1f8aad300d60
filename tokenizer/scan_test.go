package tokenizer

import "testing"

func TestIsPunctRune(t *testing.T) {
	tests := []struct {
		name string
		r    rune
		want bool
	}{
		{"Comma", ',', true},
		{"Bang", '!', true},
		{"AtSign", '@', true},
		{"Dollar", '$', true},
		{"Tilde", '~', true},
		{"Underscore", '_', true},
		{"Letter", 'a', false},
		{"UpperLetter", 'Z', false},
		{"Digit", '5', false},
		{"Space", ' ', false},
		{"Tab", '\t', false},
		{"Euro", '€', true},
		{"CurlyQuote", '’', true},
		{"IdeographicStop", '。', true},
		{"AccentedLetter", 'é', false},
		{"CJKLetter", '中', false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isPunctRune(tt.r); got != tt.want {
				t.Errorf("isPunctRune(%q) = %v, want %v", tt.r, got, tt.want)
			}
		})
	}
}

func BenchmarkIsPunctRune(b *testing.B) {
	input := []rune("the quick brown fox, jumps over the lazy dog!")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, r := range input {
			isPunctRune(r)
		}
	}
}
