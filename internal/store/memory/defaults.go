package memory

import "github.com/ntdung/chitieu/internal/domain"

// DefaultCategories are the shared starter categories every user sees,
// matching the rule parser's keyword table plus the two fallbacks.
func DefaultCategories() []domain.Category {
	return []domain.Category{
		{ID: "cat-an-uong", Name: "Ăn uống", Icon: "🍜", Color: "#f97316", Kind: domain.KindExpense, IsDefault: true},
		{ID: "cat-di-chuyen", Name: "Di chuyển", Icon: "🚗", Color: "#3b82f6", Kind: domain.KindExpense, IsDefault: true},
		{ID: "cat-mua-sam", Name: "Mua sắm", Icon: "🛍️", Color: "#ec4899", Kind: domain.KindExpense, IsDefault: true},
		{ID: "cat-giai-tri", Name: "Giải trí", Icon: "🎮", Color: "#8b5cf6", Kind: domain.KindExpense, IsDefault: true},
		{ID: "cat-hoa-don", Name: "Hóa đơn", Icon: "🧾", Color: "#eab308", Kind: domain.KindExpense, IsDefault: true},
		{ID: "cat-suc-khoe", Name: "Sức khỏe", Icon: "💊", Color: "#22c55e", Kind: domain.KindExpense, IsDefault: true},
		{ID: "cat-khac", Name: "Khác", Icon: "📦", Color: "#6b7280", Kind: domain.KindExpense, IsDefault: true},
		{ID: "cat-luong", Name: "Lương", Icon: "💰", Color: "#16a34a", Kind: domain.KindIncome, IsDefault: true},
		{ID: "cat-thuong", Name: "Thưởng", Icon: "🎁", Color: "#f59e0b", Kind: domain.KindIncome, IsDefault: true},
		{ID: "cat-thu-nhap-khac", Name: "Thu nhập khác", Icon: "💵", Color: "#0ea5e9", Kind: domain.KindIncome, IsDefault: true},
	}
}
