package features

import (
	"reflect"
	"testing"
)

// Field indices, matching the extraction order.
const (
	idxLength = iota
	idxWordCount
	idxAvgWordLength
	idxHasURL
	idxHasRussianPhone
	idxHasIntlPhone
	idxHasMoneyRU
	idxHasMoneyEN
	idxExclamationCount
	idxQuestionCount
	idxCapsRatio
	idxDigitRatio
	idxRussianSpamWords
	idxEnglishSpamWords
	idxHasCyrillic
	idxHasLatin
	idxHasWinPattern
	idxHasUrgentPattern
	idxHasFreePattern
	idxHasClickPattern
	idxHasBlockPattern
)

func TestExtractDimensionality(t *testing.T) {
	messages := []string{
		"",
		"   ",
		"hello",
		"Срочно! Вы выиграли приз!",
		"WINNER! Call now to claim your FREE prize, www.spam.com",
		"!!!???...",
		"日本語のメッセージ",
	}
	for _, m := range messages {
		v := Extract(m)
		if len(v) != Count {
			t.Errorf("Extract(%q) returned %d fields, want %d", m, len(v), Count)
		}
	}
	if len(Names()) != Count {
		t.Errorf("Names() returned %d entries, want %d", len(Names()), Count)
	}
}

func TestExtractEmptyString(t *testing.T) {
	v := Extract("")
	for i, val := range v {
		if val != 0 {
			t.Errorf("Extract(\"\")[%d] (%s) = %v, want 0", i, Names()[i], val)
		}
	}
}

func TestExtractWhitespaceOnly(t *testing.T) {
	v := Extract("   \t\n")
	if v[idxWordCount] != 0 {
		t.Errorf("word_count = %v, want 0", v[idxWordCount])
	}
	if v[idxAvgWordLength] != 0 {
		t.Errorf("avg_word_length = %v, want 0", v[idxAvgWordLength])
	}
	if v[idxCapsRatio] != 0 || v[idxDigitRatio] != 0 {
		t.Errorf("ratios = %v/%v, want 0/0", v[idxCapsRatio], v[idxDigitRatio])
	}
}

func TestExtractRussianSpam(t *testing.T) {
	v := Extract("СРОЧНО! Вы выиграли приз!")

	if v[idxHasCyrillic] != 1 {
		t.Error("has_cyrillic = 0, want 1")
	}
	if v[idxHasLatin] != 0 {
		t.Error("has_latin = 1, want 0")
	}
	if v[idxHasUrgentPattern] != 1 {
		t.Error("has_urgent_pattern = 0, want 1")
	}
	if v[idxHasWinPattern] != 1 {
		t.Error("has_win_pattern = 0, want 1")
	}
	if v[idxRussianSpamWords] < 2 {
		t.Errorf("russian_spam_words = %v, want >= 2", v[idxRussianSpamWords])
	}
	if v[idxExclamationCount] != 2 {
		t.Errorf("exclamation_count = %v, want 2", v[idxExclamationCount])
	}
}

func TestExtractEnglishHam(t *testing.T) {
	v := Extract("Hey, are we still meeting for lunch?")

	if v[idxHasCyrillic] != 0 {
		t.Error("has_cyrillic = 1, want 0")
	}
	if v[idxHasLatin] != 1 {
		t.Error("has_latin = 0, want 1")
	}
	if v[idxHasURL] != 0 {
		t.Error("has_url = 1, want 0")
	}
	if v[idxRussianSpamWords] != 0 {
		t.Errorf("russian_spam_words = %v, want 0", v[idxRussianSpamWords])
	}
	if v[idxEnglishSpamWords] != 0 {
		t.Errorf("english_spam_words = %v, want 0", v[idxEnglishSpamWords])
	}
	if v[idxQuestionCount] != 1 {
		t.Errorf("question_count = %v, want 1", v[idxQuestionCount])
	}
}

func TestExtractEnglishSpam(t *testing.T) {
	v := Extract("WINNER! Call now to claim your FREE prize, www.spam.com")

	if v[idxHasURL] != 1 {
		t.Error("has_url = 0, want 1")
	}
	if v[idxHasWinPattern] != 1 {
		t.Error("has_win_pattern = 0, want 1")
	}
	if v[idxHasFreePattern] != 1 {
		t.Error("has_free_pattern = 0, want 1")
	}
	if v[idxEnglishSpamWords] < 3 {
		t.Errorf("english_spam_words = %v, want >= 3", v[idxEnglishSpamWords])
	}
	if v[idxCapsRatio] < 0.2 {
		t.Errorf("caps_ratio = %v, want >= 0.2", v[idxCapsRatio])
	}
}

func TestExtractPhoneAndMoney(t *testing.T) {
	tests := []struct {
		message string
		idx     int
		want    float64
	}{
		{"Позвоните 8-800-555-3535", idxHasRussianPhone, 1},
		{"Call +7-912-345-67-89 now", idxHasRussianPhone, 1},
		{"Text 12345 to win", idxHasIntlPhone, 1},
		{"call 555-0123", idxHasIntlPhone, 1},
		{"no numbers here", idxHasIntlPhone, 0},
		{"Выплата 5000 руб сегодня", idxHasMoneyRU, 1},
		{"Скидка 2 тыс на всё", idxHasMoneyRU, 1},
		{"You won $1000 cash", idxHasMoneyEN, 1},
		{"Prize of 500 euro waiting", idxHasMoneyEN, 1},
		{"just a chat message", idxHasMoneyEN, 0},
	}

	for _, tc := range tests {
		v := Extract(tc.message)
		if v[tc.idx] != tc.want {
			t.Errorf("Extract(%q)[%s] = %v, want %v", tc.message, Names()[tc.idx], v[tc.idx], tc.want)
		}
	}
}

func TestExtractTextCharacteristics(t *testing.T) {
	v := Extract("ab cd")
	if v[idxLength] != 5 {
		t.Errorf("length = %v, want 5", v[idxLength])
	}
	if v[idxWordCount] != 2 {
		t.Errorf("word_count = %v, want 2", v[idxWordCount])
	}
	if v[idxAvgWordLength] != 2 {
		t.Errorf("avg_word_length = %v, want 2", v[idxAvgWordLength])
	}

	// Rune counts, not byte counts.
	v = Extract("мир")
	if v[idxLength] != 3 {
		t.Errorf("length of мир = %v, want 3", v[idxLength])
	}

	v = Extract("AB12")
	if v[idxCapsRatio] != 0.5 {
		t.Errorf("caps_ratio = %v, want 0.5", v[idxCapsRatio])
	}
	if v[idxDigitRatio] != 0.5 {
		t.Errorf("digit_ratio = %v, want 0.5", v[idxDigitRatio])
	}
}

func TestExtractKeywordCountedOncePerStem(t *testing.T) {
	// "free" repeats but counts once; "winner" also matches "won"? No:
	// stems are independent substrings, so "winner" hits both "winner"
	// and "won" only if both substrings occur.
	v := Extract("free free free")
	if v[idxEnglishSpamWords] != 1 {
		t.Errorf("english_spam_words = %v, want 1", v[idxEnglishSpamWords])
	}
}

func TestExtractAllPreservesOrder(t *testing.T) {
	messages := []string{
		"WINNER! FREE prize",
		"обычное сообщение",
		"",
		"lunch at noon?",
	}
	batch := ExtractAll(messages)
	if len(batch) != len(messages) {
		t.Fatalf("ExtractAll returned %d vectors, want %d", len(batch), len(messages))
	}
	for i, m := range messages {
		if !reflect.DeepEqual(batch[i], Extract(m)) {
			t.Errorf("batch[%d] differs from Extract(%q)", i, m)
		}
	}
}
