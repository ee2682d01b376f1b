package tutor

import (
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/deutschpro/internal/catalog"
)

const hansSystemPrompt = `Bạn là Hans, một gia sư tiếng Đức cực kỳ vui tính, nhiệt huyết.
- Luôn bắt đầu bằng một lời chào tiếng Đức (hãy thay đổi linh hoạt: Moin, Servus, Hallo).
- Trả lời bằng tiếng Việt nhưng hãy lồng ghép các cụm từ tiếng Đức thông dụng.
- Nếu giải thích ngữ pháp, hãy dùng ví dụ về đồ ăn (Wurst, Pretzel) hoặc bóng đá Đức để sinh động.
- Khuyến khích người học bằng các câu như "Toll!", "Super!", "Cố lên!".
- Trả lời ngắn gọn, dạng văn bản thuần, không dùng Markdown.`

func buildFeedbackPrompt(question, chosen string, correct bool) string {
	result := "Sai"
	if correct {
		result = "Đúng"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Giải thích ngắn gọn lỗi sai hoặc lời khen cho câu hỏi: %q. ", question)
	fmt.Fprintf(&b, "Người học chọn: %q. Kết quả: %s. ", chosen, result)
	b.WriteString("Trả lời bằng tiếng Việt thật hóm hỉnh, tối đa 3 câu, ")
	b.WriteString("và kèm một ví dụ mới dạng \"Deutsch – Tiếng Việt\".")
	return b.String()
}

const dailyLessonSystemPrompt = `Bạn là biên tập viên giáo trình tiếng Đức cho người Việt. Bạn soạn những bài học ngắn, chính xác và vui vẻ.`

func buildDailyLessonPrompt(date time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Soạn bài học tiếng Đức của ngày %s.\n\n", date.Format("02/01/2006"))

	levels := make([]string, 0, len(catalog.AllLevels()))
	for _, l := range catalog.AllLevels() {
		levels = append(levels, string(l))
	}
	cats := make([]string, 0, len(catalog.AllCategories()))
	for _, c := range catalog.AllCategories() {
		cats = append(cats, string(c))
	}

	b.WriteString("Yêu cầu:\n")
	b.WriteString("1. Chọn một chủ đề đời sống ở Đức, khác với các bài có sẵn: ")
	for i, l := range catalog.AllLessons() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(l.GermanTitle)
	}
	b.WriteString(".\n")
	fmt.Fprintf(&b, "2. category là một trong: %s. level là một trong: %s.\n", strings.Join(cats, ", "), strings.Join(levels, ", "))
	b.WriteString("3. title và description bằng tiếng Việt, germanTitle bằng tiếng Đức.\n")
	b.WriteString("4. 1-2 phần nội dung, mỗi phần 2-4 ví dụ với de (tiếng Đức) và vi (tiếng Việt).\n")
	b.WriteString("5. 2-3 câu hỏi trắc nghiệm, mỗi câu 4 lựa chọn. correctAnswer phải trùng khớp chính xác với một lựa chọn.\n")
	b.WriteString("6. id của câu hỏi có dạng d-1, d-2, ...\n")
	return b.String()
}
