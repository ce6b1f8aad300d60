package tokenizer

import "unicode"

var punctTable [128]bool

func init() {
	// ASCII punctuation blocks:
	// [33, 47]  - ! " # $ % & ' ( ) * + , - . /
	// [58, 64]  - : ; < = > ? @
	// [91, 96]  - [ \ ] ^ _ `
	// [123, 126] - { | } ~
	for i := 0; i < 128; i++ {
		if (i >= 33 && i <= 47) || (i >= 58 && i <= 64) || (i >= 91 && i <= 96) || (i >= 123 && i <= 126) {
			punctTable[i] = true
		}
	}
}

// isPunctRune reports whether r should be emitted as a standalone token.
// Symbols count as punctuation. ASCII goes through the lookup table.
func isPunctRune(r rune) bool {
	if r < 128 {
		return punctTable[r]
	}
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}
