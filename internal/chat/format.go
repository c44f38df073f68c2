package chat

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

var viWeekdays = [...]string{
	time.Sunday:    "Chủ Nhật",
	time.Monday:    "Thứ Hai",
	time.Tuesday:   "Thứ Ba",
	time.Wednesday: "Thứ Tư",
	time.Thursday:  "Thứ Năm",
	time.Friday:    "Thứ Sáu",
	time.Saturday:  "Thứ Bảy",
}

// FormatVND renders an amount with dot thousands separators and the đồng
// sign, e.g. 50000 -> "50.000đ".
func FormatVND(amount float64) string {
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

// FormatDateVN renders a calendar date the Vietnamese way, with the
// weekday spelled out: "Thứ Năm, 02/10/2025".
func FormatDateVN(d civil.Date) string {
	weekday := d.In(time.UTC).Weekday()
	return fmt.Sprintf("%s, %02d/%02d/%04d", viWeekdays[weekday], d.Day, int(d.Month), d.Year)
}
