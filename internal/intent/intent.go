// Translate free-form requests into structured search intents.
// Pure keyword/regex matching, no I/O: translation never fails, it just
// leaves unrecognized fields nil.

package intent

import (
	"regexp"
	"strings"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type MealSlot string

const (
	Breakfast    MealSlot = "breakfast"
	Lunch        MealSlot = "lunch"
	Dinner       MealSlot = "dinner"
	LateNight    MealSlot = "late_night"
	AfternoonTea MealSlot = "afternoon_tea"
)

// DefaultKeyword is the fallback search term when nothing else survives.
const DefaultKeyword = "美食"

// Intent is the structured interpretation of one user request.
// Keywords is never empty.
type Intent struct {
	MealSlot      *MealSlot
	BudgetMax     *int
	Preferences   []string
	Dietary       []string
	ETAMaxMinutes *int
	Keywords      []string
}

// mealSlots is matched in order; the first literal found in the text wins.
var mealSlots = []struct {
	Literal string
	Slot    MealSlot
}{
	{"早餐", Breakfast},
	{"午餐", Lunch},
	{"晚餐", Dinner},
	{"宵夜", LateNight},
	{"下午茶", AfternoonTea},
}

// tasteKeywords maps literals to taste tags. All matches are kept.
var tasteKeywords = []struct {
	Literal string
	Tag     string
}{
	{"辣", "spicy"},
	{"麻辣", "spicy"},
	{"清淡", "light"},
	{"重口味", "heavy"},
	{"甜", "sweet"},
	{"酸", "sour"},
	{"鹹", "salty"},
}

var dietaryKeywords = []struct {
	Literal string
	Tag     string
}{
	{"素食", "vegetarian"},
	{"素", "vegetarian"},
	{"清真", "halal"},
	{"不吃牛", "no_beef"},
	{"不吃豬", "no_pork"},
}

// budgetPatterns are tried in order; the first match wins.
var budgetPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\s*[元塊以內之下]`), // 300元內、300以內
	regexp.MustCompile(`(\d+)\s*內`),         // 300內
	regexp.MustCompile(`(\d+)\s*以下`),        // 300以下
	regexp.MustCompile(`預算\s*(\d+)`),        // 預算300
}

// The two idiomatic phrases outrank the explicit minute count when both
// appear ("趕時間 30 分鐘" means "I'm in a hurry", not "30 is fine").
var (
	hurryPattern     = regexp.MustCompile(`趕時間`)
	soonishPattern   = regexp.MustCompile(`快\s*一?點`)
	etaMinutePattern = regexp.MustCompile(`(\d+)\s*分[鐘鍾]`)
)

var (
	budgetStripPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\d+\s*[元塊以內之下]`),
		regexp.MustCompile(`\d+\s*內`),
		regexp.MustCompile(`\d+\s*以下`),
		regexp.MustCompile(`預算`),
	}
	etaStripPatterns = []*regexp.Regexp{
		etaMinutePattern,
		soonishPattern,
		hurryPattern,
	}
	spacePattern = regexp.MustCompile(`\s+`)
)

// normalize folds full-width digits and punctuation (ＮＦＫＣ) so that
// "３００元" matches the numeric patterns.
func normalize(text string) string {
	result, _, err := transform.String(norm.NFKC, text)
	if err != nil {
		return text
	}
	return result
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}

// Translate parses a free-form request like 「宵夜 300 內 要辣 30 分鐘」.
// It always returns a usable Intent; absent signals stay nil.
func Translate(text string) Intent {
	text = normalize(text)
	it := Intent{}

	//meal slot: first literal wins, table order is significant
	for _, m := range mealSlots {
		if strings.Contains(text, m.Literal) {
			slot := m.Slot
			it.MealSlot = &slot
			break
		}
	}

	//budget ceiling
	for _, p := range budgetPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			budget := atoi(m[1])
			it.BudgetMax = &budget
			break
		}
	}

	//taste preferences: not mutually exclusive, keep all matches
	for _, t := range tasteKeywords {
		if strings.Contains(text, t.Literal) && !contains(it.Preferences, t.Tag) {
			it.Preferences = append(it.Preferences, t.Tag)
		}
	}

	//dietary restrictions
	for _, d := range dietaryKeywords {
		if strings.Contains(text, d.Literal) && !contains(it.Dietary, d.Tag) {
			it.Dietary = append(it.Dietary, d.Tag)
		}
	}

	//ETA ceiling
	switch {
	case hurryPattern.MatchString(text):
		eta := 15
		it.ETAMaxMinutes = &eta
	case soonishPattern.MatchString(text):
		eta := 20
		it.ETAMaxMinutes = &eta
	default:
		if m := etaMinutePattern.FindStringSubmatch(text); m != nil {
			eta := atoi(m[1])
			it.ETAMaxMinutes = &eta
		}
	}

	it.Keywords = deriveKeywords(text, it)

	return it
}

// deriveKeywords strips everything the structured rules consumed and uses
// the residue as the search keyword, falling back to taste literals, then
// the meal-slot literal, then the domain default.
func deriveKeywords(text string, it Intent) []string {
	cleaned := text

	for _, m := range mealSlots {
		cleaned = strings.ReplaceAll(cleaned, m.Literal, "")
	}
	for _, p := range budgetStripPatterns {
		cleaned = p.ReplaceAllString(cleaned, "")
	}
	for _, p := range etaStripPatterns {
		cleaned = p.ReplaceAllString(cleaned, "")
	}
	cleaned = strings.TrimSpace(spacePattern.ReplaceAllString(cleaned, " "))

	if cleaned != "" {
		return []string{cleaned}
	}

	var literals []string
	for _, t := range tasteKeywords {
		if strings.Contains(text, t.Literal) {
			literals = append(literals, t.Literal)
		}
	}
	if len(literals) > 0 {
		return literals
	}

	if it.MealSlot != nil {
		return []string{mealSlotLiteral(*it.MealSlot)}
	}

	return []string{DefaultKeyword}
}

// SearchQuery reduces the intent to the single term typed into the site's
// search box. Total: always returns a non-empty string.
func (it Intent) SearchQuery() string {
	if len(it.Keywords) > 0 && it.Keywords[0] != "" {
		return it.Keywords[0]
	}
	if it.MealSlot != nil {
		return mealSlotLiteral(*it.MealSlot)
	}
	return DefaultKeyword
}

func mealSlotLiteral(slot MealSlot) string {
	for _, m := range mealSlots {
		if m.Slot == slot {
			return m.Literal
		}
	}
	return DefaultKeyword
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
