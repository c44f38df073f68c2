package llm

import "testing"

func TestFirstJSONObject(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"bare object", `{"a": 1}`, `{"a": 1}`, true},
		{"prose around", `Kết quả: {"a": 1} xong.`, `{"a": 1}`, true},
		{"markdown fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`, true},
		{"nested objects", `{"a": {"b": {"c": 1}}}`, `{"a": {"b": {"c": 1}}}`, true},
		{"brace inside string", `{"msg": "dùng dấu } ở đây"}`, `{"msg": "dùng dấu } ở đây"}`, true},
		{"escaped quote inside string", `{"msg": "nói \"xin chào\""}`, `{"msg": "nói \"xin chào\""}`, true},
		{"two objects returns first", `{"a": 1} {"b": 2}`, `{"a": 1}`, true},
		{"no object", "không có JSON nào", "", false},
		{"unbalanced", `{"a": 1`, "", false},
		{"empty input", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FirstJSONObject(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("FirstJSONObject(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("FirstJSONObject(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
