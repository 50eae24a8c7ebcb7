// Package features computes fixed-size numeric feature vectors from raw
// SMS messages. The same code path serves English and Russian text; the
// two languages differ only in the keyword and pattern tables below.
package features

import (
	"regexp"
	"strings"
	"unicode"
)

// Count is the dimensionality of every extracted vector. Downstream
// consumers align model weights to this, so changing it (or the field
// order) requires retraining any persisted model.
const Count = 21

// Russian spam keyword stems, matched as substrings of the lowercased
// message so that inflected forms still hit (e.g. "выигра" matches
// "выиграли" and "выигран").
var russianSpamKeywords = []string{
	"срочно", "внимание", "выиграли", "поздравляем", "приз",
	"бесплатно", "акция", "скидка", "заблокирован", "позвоните",
	"кредит", "займ", "одобрен", "деньги", "рубл", "тысяч",
	"заработок", "доход", "получ", "выплат", "бонус",
}

// English spam keywords, matched the same way.
var englishSpamKeywords = []string{
	"winner", "congratulations", "won", "prize", "free",
	"urgent", "click", "call", "text", "claim", "limited",
	"offer", "guaranteed", "cash", "credit", "loan",
}

var (
	urlPattern          = regexp.MustCompile(`https?://|www\.|\.com|\.ru|\.net|\.org`)
	russianPhonePattern = regexp.MustCompile(`8-\d{3,4}-\d{3,4}|\+7-\d{3}-\d{3}-\d{2}-\d{2}`)
	intlPhonePattern    = regexp.MustCompile(`\d{3,4}-\d{3,4}|\d{5,}`)
	moneyPatternRU      = regexp.MustCompile(`\d+\s?(руб|тыс|млн|₽)|р\.|рубл`)
	moneyPatternEN      = regexp.MustCompile(`\$\d+|£\d+|€\d+|\d+\s?(dollar|pound|euro)`)
	cyrillicPattern     = regexp.MustCompile(`[а-яА-Я]`)
	latinPattern        = regexp.MustCompile(`[a-zA-Z]`)
)

// conceptPatterns are bilingual spam concepts checked against the
// lowercased message. Each yields one 0/1 field, in this order.
var conceptPatterns = []struct {
	name string
	re   *regexp.Regexp
}{
	{"has_win_pattern", regexp.MustCompile(`выигра|won|winner`)},
	{"has_urgent_pattern", regexp.MustCompile(`срочно|urgent|attention|внимание`)},
	{"has_free_pattern", regexp.MustCompile(`бесплатно|free|даром`)},
	{"has_click_pattern", regexp.MustCompile(`кликни|нажми|click|tap`)},
	{"has_block_pattern", regexp.MustCompile(`заблокирован|blocked|suspend`)},
}

var featureNames = []string{
	"length", "word_count", "avg_word_length",
	"has_url", "has_russian_phone", "has_intl_phone",
	"has_money_ru", "has_money_en",
	"exclamation_count", "question_count",
	"caps_ratio", "digit_ratio",
	"russian_spam_words", "english_spam_words",
	"has_cyrillic", "has_latin",
	"has_win_pattern", "has_urgent_pattern",
	"has_free_pattern", "has_click_pattern", "has_block_pattern",
}

// Names returns the feature names in extraction order.
func Names() []string {
	out := make([]string, len(featureNames))
	copy(out, featureNames)
	return out
}

// Extract maps a message to its feature vector. It is a pure function of
// the input and the tables above: no state, no randomness, no errors.
// Empty and degenerate inputs produce all-zero counts and ratios.
func Extract(text string) []float64 {
	v := make([]float64, 0, Count)

	lower := strings.ToLower(text)
	runes := []rune(text)
	words := strings.Fields(text)

	// Text characteristics.
	v = append(v, float64(len(runes)))
	v = append(v, float64(len(words)))
	v = append(v, avgWordLength(words))

	// Spam indicators.
	v = append(v, boolFeature(urlPattern.MatchString(lower)))
	v = append(v, boolFeature(russianPhonePattern.MatchString(text)))
	v = append(v, boolFeature(intlPhonePattern.MatchString(text)))
	v = append(v, boolFeature(moneyPatternRU.MatchString(lower)))
	v = append(v, boolFeature(moneyPatternEN.MatchString(lower)))

	// Character patterns.
	v = append(v, float64(strings.Count(text, "!")))
	v = append(v, float64(strings.Count(text, "?")))
	v = append(v, charRatio(runes, unicode.IsUpper))
	v = append(v, charRatio(runes, unicode.IsDigit))

	// Keyword matching: each stem counts once regardless of repeats.
	v = append(v, float64(countKeywords(lower, russianSpamKeywords)))
	v = append(v, float64(countKeywords(lower, englishSpamKeywords)))

	// Script detection.
	v = append(v, boolFeature(cyrillicPattern.MatchString(text)))
	v = append(v, boolFeature(latinPattern.MatchString(text)))

	// Bilingual spam concepts.
	for _, cp := range conceptPatterns {
		v = append(v, boolFeature(cp.re.MatchString(lower)))
	}

	return v
}

// ExtractAll applies Extract to each message, preserving input order.
func ExtractAll(messages []string) [][]float64 {
	out := make([][]float64, len(messages))
	for i, m := range messages {
		out[i] = Extract(m)
	}
	return out
}

func avgWordLength(words []string) float64 {
	if len(words) == 0 {
		return 0
	}
	total := 0
	for _, w := range words {
		total += len([]rune(w))
	}
	return float64(total) / float64(len(words))
}

func charRatio(runes []rune, pred func(rune) bool) float64 {
	if len(runes) == 0 {
		return 0
	}
	n := 0
	for _, r := range runes {
		if pred(r) {
			n++
		}
	}
	return float64(n) / float64(len(runes))
}

func countKeywords(lower string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			n++
		}
	}
	return n
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
