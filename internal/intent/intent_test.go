package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate_FullRequest(t *testing.T) {
	it := Translate("宵夜 300 內 要辣 30 分鐘")

	require.NotNil(t, it.MealSlot)
	assert.Equal(t, LateNight, *it.MealSlot)

	require.NotNil(t, it.BudgetMax)
	assert.Equal(t, 300, *it.BudgetMax)

	assert.Contains(t, it.Preferences, "spicy")

	require.NotNil(t, it.ETAMaxMinutes)
	assert.Equal(t, 30, *it.ETAMaxMinutes)

	assert.NotEmpty(t, it.Keywords)
}

func TestTranslate_BudgetPatterns(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected int
	}{
		{"yuan suffix", "午餐 300元內", 300},
		{"bare nei", "250內 的晚餐", 250},
		{"yixia", "150 以下", 150},
		{"yusuan prefix", "預算 500 吃好一點", 500},
		{"fullwidth digits", "３００元 晚餐", 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := Translate(tt.text)
			require.NotNil(t, it.BudgetMax)
			assert.Equal(t, tt.expected, *it.BudgetMax)
			assert.NotEmpty(t, it.Keywords)
		})
	}
}

func TestTranslate_ETAPhrasesOutrankNumbers(t *testing.T) {
	it := Translate("趕時間 30 分鐘")
	require.NotNil(t, it.ETAMaxMinutes)
	assert.Equal(t, 15, *it.ETAMaxMinutes)

	it = Translate("快一點 晚餐")
	require.NotNil(t, it.ETAMaxMinutes)
	assert.Equal(t, 20, *it.ETAMaxMinutes)

	it = Translate("45 分鐘 內都行")
	require.NotNil(t, it.ETAMaxMinutes)
	assert.Equal(t, 45, *it.ETAMaxMinutes)
}

func TestTranslate_EmptySignals(t *testing.T) {
	it := Translate("")

	assert.Nil(t, it.MealSlot)
	assert.Nil(t, it.BudgetMax)
	assert.Nil(t, it.ETAMaxMinutes)
	assert.Empty(t, it.Preferences)
	assert.Equal(t, []string{DefaultKeyword}, it.Keywords)
}

func TestTranslate_ResidualTextBecomesKeyword(t *testing.T) {
	it := Translate("晚餐 拉麵 300內")
	assert.Equal(t, []string{"拉麵"}, it.Keywords)
}

func TestTranslate_MealSlotFallbackKeyword(t *testing.T) {
	it := Translate("宵夜 300內")
	assert.Equal(t, []string{"宵夜"}, it.Keywords)
}

func TestTranslate_Dietary(t *testing.T) {
	it := Translate("午餐 素食 清淡")
	assert.Contains(t, it.Dietary, "vegetarian")
	assert.Contains(t, it.Preferences, "light")
}

func TestSearchQuery_Total(t *testing.T) {
	tests := []struct {
		name string
		it   Intent
	}{
		{"all nil", Intent{}},
		{"meal only", func() Intent {
			slot := Dinner
			return Intent{MealSlot: &slot}
		}()},
		{"keyword", Intent{Keywords: []string{"拉麵"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, tt.it.SearchQuery())
		})
	}

	slot := Dinner
	assert.Equal(t, "晚餐", Intent{MealSlot: &slot}.SearchQuery())
	assert.Equal(t, "拉麵", Intent{Keywords: []string{"拉麵"}}.SearchQuery())
	assert.Equal(t, DefaultKeyword, Intent{}.SearchQuery())
}
