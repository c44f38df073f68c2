package parser

import (
	"fmt"
	"strings"

	"cloud.google.com/go/civil"

	"github.com/ntdung/chitieu/internal/domain"
)

// parsePromptTemplate instructs the model to return a single JSON object.
// The scale conventions and income keywords mirror the rule-based parser so
// both paths agree on the basics.
const parsePromptTemplate = `Bạn là trợ lý phân tích giao dịch tài chính. Phân tích tin nhắn tiếng Việt và trích xuất thông tin giao dịch.

Danh sách danh mục có sẵn:
%s

Ngày hôm nay: %s

Tin nhắn người dùng: "%s"

Hãy phân tích và trả về JSON với format sau (CHỈ trả về JSON, không có text khác):
{
  "amount": <số tiền bằng số, đơn vị VND - ví dụ 50k = 50000, 1tr = 1000000>,
  "description": "<mô tả ngắn gọn>",
  "categoryName": "<tên danh mục phù hợp nhất từ danh sách trên>",
  "type": "<expense hoặc income>",
  "date": "<ngày theo format YYYY-MM-DD, nếu 'hôm qua' thì trừ 1 ngày, 'hôm kia' trừ 2 ngày>"
}

Nếu không thể phân tích được, trả về: {"error": "không hiểu"}

Quy tắc:
- "k" hoặc "K" = nghìn (x1000)
- "tr", "triệu", "m" = triệu (x1000000)
- Mặc định là chi tiêu (expense) trừ khi có từ như: nhận, lương, thưởng, thu, được tiền, bán
- Chọn danh mục phù hợp nhất với nội dung`

// buildParsePrompt renders the parse prompt for one message against the
// caller's category list.
func buildParsePrompt(message string, categories []domain.Category, today civil.Date) string {
	var b strings.Builder
	for i, c := range categories {
		if i > 0 {
			b.WriteString("\n")
		}
		label := "chi tiêu"
		if c.Kind == domain.KindIncome {
			label = "thu nhập"
		}
		fmt.Fprintf(&b, "- %s (%s)", c.Name, label)
	}

	return fmt.Sprintf(parsePromptTemplate, b.String(), today.String(), message)
}
