package parser

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
)

func TestResolveDate(t *testing.T) {
	today := civil.Date{Year: 2025, Month: time.October, Day: 3}

	tests := []struct {
		name    string
		message string
		want    civil.Date
	}{
		{"no phrase", "ăn trưa 50k", today},
		{"yesterday", "hôm qua ăn trưa 50k", civil.Date{Year: 2025, Month: time.October, Day: 2}},
		{"day before yesterday", "hôm kia đổ xăng 200k", civil.Date{Year: 2025, Month: time.October, Day: 1}},
		{"yesterday wins over day before", "hôm qua hôm kia 50k", civil.Date{Year: 2025, Month: time.October, Day: 2}},
		{"crosses month boundary", "hôm kia mua sách 100k", civil.Date{Year: 2025, Month: time.October, Day: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveDate(tt.message, today)
			if got != tt.want {
				t.Errorf("ResolveDate(%q) = %v, want %v", tt.message, got, tt.want)
			}
		})
	}
}

func TestResolveDateMonthBoundary(t *testing.T) {
	today := civil.Date{Year: 2025, Month: time.November, Day: 1}
	got := ResolveDate("hôm qua ăn tối 80k", today)
	want := civil.Date{Year: 2025, Month: time.October, Day: 31}
	if got != want {
		t.Errorf("ResolveDate across month = %v, want %v", got, want)
	}
}
