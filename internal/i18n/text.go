package i18n

import "strings"

// Text field song ngữ, lưu ở Mongo dưới key <tên>_i18n
type Text struct {
	Vi string `json:"vi,omitempty" bson:"vi,omitempty"`
	En string `json:"en,omitempty" bson:"en,omitempty"`
}

// Get giá trị đúng locale, không fallback
func (t Text) Get(l Locale) string {
	switch l {
	case En:
		return t.En
	case Vi:
		return t.Vi
	}
	return ""
}

// Set gán giá trị cho một locale
func (t *Text) Set(l Locale, v string) {
	switch l {
	case En:
		t.En = v
	case Vi:
		t.Vi = v
	}
}

// Resolve giá trị đầu tiên khác rỗng theo Priority
func (t Text) Resolve(l Locale) string {
	return t.first(Priority(l))
}

func (t Text) first(chain []Locale) string {
	for _, cand := range chain {
		if v := t.Get(cand); strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// IsEmpty không có locale nào có giá trị
func (t Text) IsEmpty() bool {
	return strings.TrimSpace(t.Vi) == "" && strings.TrimSpace(t.En) == ""
}

// Merge ghi đè các locale có giá trị từ other
func (t Text) Merge(other Text) Text {
	if other.Vi != "" {
		t.Vi = other.Vi
	}
	if other.En != "" {
		t.En = other.En
	}
	return t
}

// Trim bỏ khoảng trắng hai đầu ở mọi locale
func (t Text) Trim() Text {
	return Text{Vi: strings.TrimSpace(t.Vi), En: strings.TrimSpace(t.En)}
}

// Map dạng map để so khớp với dữ liệu đọc từ JSON
func (t Text) Map() map[string]interface{} {
	m := map[string]interface{}{}
	if t.Vi != "" {
		m[string(Vi)] = t.Vi
	}
	if t.En != "" {
		m[string(En)] = t.En
	}
	return m
}
