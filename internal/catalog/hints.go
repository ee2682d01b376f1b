package catalog

import (
	"math/rand/v2"
	"time"
)

// HintType classifies a home-screen tip.
type HintType string

const (
	HintGrammar     HintType = "grammar"
	HintCulture     HintType = "culture"
	HintAchievement HintType = "achievement"
	HintHack        HintType = "hack"
)

// HintTypeDisplayName returns the Vietnamese label shown above a hint.
func HintTypeDisplayName(t HintType) string {
	switch t {
	case HintGrammar:
		return "Mẹo ngữ pháp"
	case HintCulture:
		return "Góc văn hóa"
	case HintAchievement:
		return "Thành tựu Đức"
	case HintHack:
		return "Mẹo học nhanh"
	default:
		return string(t)
	}
}

type Hint struct {
	ID      string
	Type    HintType
	Title   string
	Content string
}

var hints = []Hint{
	{
		ID:      "h1",
		Type:    HintCulture,
		Title:   "Văn hóa bia Đức",
		Content: "Đức có hơn 1,300 nhà máy bia và 5,000 nhãn hiệu bia khác nhau. Lễ hội Oktoberfest là lễ hội bia lớn nhất thế giới diễn ra tại Munich.",
	},
	{
		ID:      "h2",
		Type:    HintGrammar,
		Title:   "Mẹo nhớ giống (Gender)",
		Content: "Các từ kết thúc bằng -ung, -heit, -keit, -schaft luôn luôn là giống cái (Die). Ví dụ: Die Freiheit (Tự do).",
	},
	{
		ID:      "h3",
		Type:    HintAchievement,
		Title:   "Vùng đất của những ý tưởng",
		Content: "Người Đức đã phát minh ra xe hơi (Karl Benz), máy in (Gutenberg), và định dạng file MP3.",
	},
	{
		ID:      "h4",
		Type:    HintHack,
		Title:   "Học qua âm nhạc",
		Content: "Hãy thử nghe nhạc của Rammstein hoặc Wincent Weiss. Âm nhạc giúp bạn nhớ từ vựng và ngữ điệu tự nhiên hơn rất nhiều.",
	},
	{
		ID:      "h5",
		Type:    HintCulture,
		Title:   "Đúng giờ là tôn trọng",
		Content: "Ở Đức, \"đúng giờ\" nghĩa là đến trước 5 phút. Nếu bạn có hẹn lúc 2 giờ, hãy có mặt lúc 1:55 nhé!",
	},
	{
		ID:      "h6",
		Type:    HintGrammar,
		Title:   "Động từ ở vị trí thứ 2",
		Content: "Trong câu trần thuật cơ bản của tiếng Đức, động từ luôn luôn đứng ở vị trí thứ 2, bất kể chủ ngữ đứng đâu.",
	},
}

// Hints returns every tip in catalog order.
func Hints() []Hint {
	return append([]Hint(nil), hints...)
}

// RandomHint picks a tip using r. A nil r uses the global source.
func RandomHint(r *rand.Rand) Hint {
	if r == nil {
		return hints[rand.IntN(len(hints))]
	}
	return hints[r.IntN(len(hints))]
}

// Word is a German word of the day with a usage example.
type Word struct {
	De      string
	Vi      string
	Example string
}

var wordsOfTheDay = []Word{
	{De: "Fernweh", Vi: "Nỗi nhớ những nơi xa lạ", Example: "Ich habe Fernweh."},
	{De: "Feierabend", Vi: "Thời gian nghỉ sau giờ làm", Example: "Endlich Feierabend!"},
	{De: "Gemütlichkeit", Vi: "Sự ấm cúng, dễ chịu", Example: "Das ist Gemütlichkeit."},
	{De: "Kummerspeck", Vi: "Cân nặng tăng do ăn quá nhiều vì buồn", Example: "Ich habe Kummerspeck."},
}

func WordsOfTheDay() []Word {
	return append([]Word(nil), wordsOfTheDay...)
}

// WordOfTheDay rotates through the word list by calendar day, so the same
// date always yields the same word.
func WordOfTheDay(date time.Time) Word {
	y, m, d := date.Date()
	days := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
	idx := int(days % int64(len(wordsOfTheDay)))
	if idx < 0 {
		idx += len(wordsOfTheDay)
	}
	return wordsOfTheDay[idx]
}

// ContextualTip returns the side note shown with a lesson's first section.
func ContextualTip(lessonID string) (Hint, bool) {
	switch lessonID {
	case "l1":
		return Hint{
			Type:    HintCulture,
			Title:   HintTypeDisplayName(HintCulture),
			Content: "Ở Đức, cách chào hỏi \"Moin\" rất phổ biến ở miền Bắc, trong khi người miền Nam thường nói \"Grüß Gott\".",
		}, true
	case "l2":
		return Hint{
			Type:    HintGrammar,
			Title:   HintTypeDisplayName(HintGrammar),
			Content: "Hãy luôn viết hoa đại từ \"Sie\" khi muốn thể hiện sự trang trọng, nếu không người nghe có thể nhầm thành \"cô ấy\" hoặc \"họ\"!",
		}, true
	}
	return Hint{}, false
}
