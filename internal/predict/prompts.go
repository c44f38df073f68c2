package predict

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const forecastPromptTemplate = `Bạn là chuyên gia tài chính cá nhân. Phân tích dữ liệu chi tiêu và đưa ra dự đoán cho tháng tới.

📊 DỮ LIỆU 3 THÁNG GẦN NHẤT:

Thu nhập trung bình/tháng: %s
Chi tiêu trung bình/tháng: %s
Số dư trung bình/tháng: %s

📈 XU HƯỚNG THEO THÁNG:
%s

💸 CHI TIÊU THEO DANH MỤC:
%s

💰 THU NHẬP THEO DANH MỤC:
%s

Tổng số giao dịch: %d

Hãy phân tích và trả về JSON với format sau (CHỈ trả về JSON, không có text khác):
{
  "predictedIncome": <số tiền dự đoán thu nhập tháng tới>,
  "predictedExpense": <số tiền dự đoán chi tiêu tháng tới>,
  "predictedBalance": <số tiền dự đoán số dư tháng tới>,
  "confidence": <độ tin cậy từ 1-100>,
  "trend": "<up/down/stable - xu hướng chi tiêu>",
  "summary": "<tóm tắt ngắn gọn 1-2 câu về tình hình tài chính>",
  "tips": [
    "<lời khuyên 1>",
    "<lời khuyên 2>",
    "<lời khuyên 3>"
  ],
  "warnings": [
    "<cảnh báo nếu có, để trống nếu không>"
  ],
  "topSpendingCategory": "<danh mục chi nhiều nhất>",
  "savingPotential": <số tiền có thể tiết kiệm thêm>
}

Lưu ý:
- Dự đoán dựa trên xu hướng 3 tháng gần nhất
- Xem xét các biến động theo mùa (%s)
- Đưa ra lời khuyên thực tế, cụ thể
- Nếu chi tiêu > thu nhập, cảnh báo rõ ràng`

// buildForecastPrompt embeds the aggregates, the top-8 expense categories
// and every income category into the forecast prompt.
func buildForecastPrompt(in forecastInput) string {
	expenses := in.expenseCategories
	if len(expenses) > 8 {
		expenses = expenses[:8]
	}

	var expenseSummary strings.Builder
	for i, c := range expenses {
		if i > 0 {
			expenseSummary.WriteString("\n")
		}
		fmt.Fprintf(&expenseSummary, "- %s %s: %s (%d lần)", c.Icon, c.Name, formatMoney(c.Total), c.Count)
	}

	var incomeSummary strings.Builder
	for i, c := range in.incomeCategories {
		if i > 0 {
			incomeSummary.WriteString("\n")
		}
		fmt.Fprintf(&incomeSummary, "- %s %s: %s (%d lần)", c.Icon, c.Name, formatMoney(c.Total), c.Count)
	}

	var trendSummary strings.Builder
	for i, m := range in.trends {
		if i > 0 {
			trendSummary.WriteString("\n")
		}
		fmt.Fprintf(&trendSummary, "- %s: Thu %s, Chi %s", m.Month, formatMoney(m.Income), formatMoney(m.Expense))
	}

	return fmt.Sprintf(forecastPromptTemplate,
		formatMoney(in.avgIncome),
		formatMoney(in.avgExpense),
		formatMoney(in.avgIncome-in.avgExpense),
		trendSummary.String(),
		expenseSummary.String(),
		incomeSummary.String(),
		in.totalTransactions,
		in.nextMonthName,
	)
}

// formatMoney renders a VND amount with dot thousands separators, e.g.
// 1500000 -> "1.500.000đ".
func formatMoney(amount float64) string {
	n := int64(math.Round(amount))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	digits := strconv.FormatInt(n, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}

	return sign + b.String() + "đ"
}
