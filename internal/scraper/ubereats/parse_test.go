package ubereats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindETALine(t *testing.T) {
	text := "麻辣燙專門店\n4.8 (2,000+)\n25 分鐘\n$$"
	assert.Equal(t, "25 分鐘", findETALine(text))

	assert.Equal(t, "20-35 min", findETALine("Spicy House\n4.2\n20-35 min"))
	assert.Equal(t, "", findETALine("無送達資訊的卡片\n4.2 (300)"))
}

func TestParseRatingToken(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		rating     *float64
		review     string
	}{
		{"combined line", "店名\n4.9 (5,000+)\n25 分鐘", ptr(4.9), "5,000+"},
		{"rating only", "店名\n4.3\n30 分鐘", ptr(4.3), ""},
		{"review only", "店名\n(120)", nil, "120"},
		{"out of range kept as review line", "店名\n9.9 (88)", nil, "88"},
		{"nothing", "純文字卡片", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rating, review := parseRatingToken(tt.text)
			if tt.rating == nil {
				assert.Nil(t, rating)
			} else {
				require.NotNil(t, rating)
				assert.InDelta(t, *tt.rating, *rating, 1e-9)
			}
			assert.Equal(t, tt.review, review)
		})
	}
}

func TestNormalizeURL(t *testing.T) {
	origin := "https://www.ubereats.com"

	assert.Equal(t, "https://www.ubereats.com/store/abc",
		normalizeURL(origin, "/store/abc"))
	assert.Equal(t, "https://other.example/store/x",
		normalizeURL(origin, "https://other.example/store/x"))
	assert.Equal(t, "https://www.ubereats.com/store/rel",
		normalizeURL(origin, "store/rel"))
}

func TestParseMenuText(t *testing.T) {
	item := parseMenuText("招牌紅燒牛肉麵\n$180\n半筋半肉，湯頭濃郁")
	require.NotNil(t, item)
	assert.Equal(t, "招牌紅燒牛肉麵", item.Name)
	assert.Equal(t, "$180", item.Price)
	assert.Equal(t, "半筋半肉，湯頭濃郁", item.Description)
}

func TestParseMenuText_NoCurrency(t *testing.T) {
	assert.Nil(t, parseMenuText("關於我們\n營業時間 11:00-21:00"))
}

func TestParseMenuText_NameTooShort(t *testing.T) {
	//a three-rune line is navigation noise, not a dish name
	assert.Nil(t, parseMenuText("牛肉麵\n$180"))
}

func TestParseMenuText_MissingPrice(t *testing.T) {
	assert.Nil(t, parseMenuText("超長的品項名稱在這裡"))
}

func TestParseMenuText_NoDescription(t *testing.T) {
	item := parseMenuText("經典滷肉飯大碗\n$65")
	require.NotNil(t, item)
	assert.Equal(t, "經典滷肉飯大碗", item.Name)
	assert.Equal(t, "$65", item.Price)
	assert.Equal(t, "", item.Description)
}

func TestExtractBodyRating(t *testing.T) {
	body := "外送\n自取\n4.7\n(3,000+)\n每日營業"
	rating := extractBodyRating(body)
	require.NotNil(t, rating)
	assert.InDelta(t, 4.7, *rating, 1e-9)

	assert.Nil(t, extractBodyRating("沒有評分的頁面\n營業中"))
}

func TestExtractBodyReviewCount(t *testing.T) {
	assert.Equal(t, "(3,000+)", extractBodyReviewCount("店名\n(3,000+)\n其他"))
	assert.Equal(t, "5000 ratings", extractBodyReviewCount("店名\n5000 ratings"))
	assert.Equal(t, "", extractBodyReviewCount("店名\n沒有數字"))
}

func TestFindFeeLine(t *testing.T) {
	body := "店名\n運費 $30\n服務費 $12\n最低消費 $100\n無關的一行"

	assert.Equal(t, "運費 $30", findFeeLine(body, []string{"運費", "delivery"}))
	assert.Equal(t, "服務費 $12", findFeeLine(body, []string{"服務費", "service"}))
	assert.Equal(t, "最低消費 $100", findFeeLine(body, []string{"最低", "minimum"}))
	assert.Equal(t, "", findFeeLine(body, []string{"small order"}))
}

func ptr(v float64) *float64 { return &v }
