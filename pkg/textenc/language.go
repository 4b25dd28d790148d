package textenc

// Language は本文から推定した言語
type Language int

const (
	// LanguageUnknown は判定できなかったことを表します
	LanguageUnknown Language = iota
	// LanguageJapanese は日本語
	LanguageJapanese
	// LanguageKorean は韓国語
	LanguageKorean
)

// String は言語の識別名を返します
func (l Language) String() string {
	switch l {
	case LanguageJapanese:
		return "japanese"
	case LanguageKorean:
		return "korean"
	default:
		return "unknown"
	}
}

// ScriptCounts は文字種ごとの出現数
type ScriptCounts struct {
	Hangul   int
	Hiragana int
	Katakana int
}

// CountScripts はハングル、ひらがな、カタカナの出現数を数えます
func CountScripts(text string) ScriptCounts {
	var c ScriptCounts
	for _, r := range text {
		switch {
		case r >= 0xAC00 && r <= 0xD7AF:
			c.Hangul++
		case r >= 0x3040 && r <= 0x309F:
			c.Hiragana++
		case r >= 0x30A0 && r <= 0x30FF:
			c.Katakana++
		}
	}
	return c
}

// DetectLanguage は文字種の出現数から言語を推定します。
// ハングルがかな全体より多ければ韓国語、ひらがなかカタカナのどちらかがハングルより多ければ日本語です。
func DetectLanguage(text string) Language {
	c := CountScripts(text)
	switch {
	case c.Hangul > c.Hiragana+c.Katakana:
		return LanguageKorean
	case c.Hiragana > c.Hangul || c.Katakana > c.Hangul:
		return LanguageJapanese
	default:
		return LanguageUnknown
	}
}
