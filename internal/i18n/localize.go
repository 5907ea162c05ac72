package i18n

import (
	"encoding/json"
	"strings"
)

// Doc một bản ghi ở dạng map, đầu vào của Localize
type Doc = map[string]interface{}

// Suffix hậu tố của field song ngữ
const Suffix = "_i18n"

// Options tùy chọn cho Localize
type Options struct {
	// SlugI18n gộp slug_i18n thành slug theo cùng chuỗi fallback
	SlugI18n bool
}

// Pick đọc một giá trị song ngữ: chuỗi giữ nguyên, map {vi, en} thì lấy theo Priority.
// Không tìm được trả về "".
func Pick(value interface{}, l Locale) string {
	return pickFrom(value, Priority(l))
}

func pickFrom(value interface{}, chain []Locale) string {
	switch v := value.(type) {
	case string:
		return v
	case Text:
		return v.first(chain)
	case *Text:
		if v == nil {
			return ""
		}
		return v.first(chain)
	case map[string]string:
		for _, cand := range chain {
			if s := v[string(cand)]; strings.TrimSpace(s) != "" {
				return s
			}
		}
	case map[string]interface{}:
		for _, cand := range chain {
			if s, ok := v[string(cand)].(string); ok && strings.TrimSpace(s) != "" {
				return s
			}
		}
	}
	return ""
}

// Localize thêm field f vào bản sao của doc cho mỗi tên trong fields.
// f_i18n được giữ nguyên để client vẫn truy cập được mọi locale.
func Localize(doc Doc, fields []string, l Locale, opts ...Options) Doc {
	if doc == nil {
		return nil
	}
	var opt Options
	if len(opts) > 0 {
		opt = opts[0]
	}

	out := make(Doc, len(doc)+len(fields)+1)
	for k, v := range doc {
		out[k] = v
	}

	for _, f := range fields {
		out[f] = localizeField(doc, f, l)
	}

	if opt.SlugI18n {
		if _, ok := doc["slug"+Suffix]; ok {
			if s := Pick(doc["slug"+Suffix], l); s != "" {
				out["slug"] = s
			}
		}
	}
	return out
}

// localizeField locale yêu cầu, locale mặc định, field gốc, rồi mới tới locale còn lại
func localizeField(doc Doc, f string, l Locale) string {
	localized := doc[f+Suffix]
	if v := pickFrom(localized, Chain(l)); strings.TrimSpace(v) != "" {
		return v
	}
	bare, _ := doc[f].(string)
	if strings.TrimSpace(bare) != "" {
		return bare
	}
	if v := pickFrom(localized, Priority(l)); strings.TrimSpace(v) != "" {
		return v
	}
	return bare
}

// LocalizeList áp dụng Localize cho từng bản ghi, giữ nguyên thứ tự
func LocalizeList(docs []Doc, fields []string, l Locale, opts ...Options) []Doc {
	out := make([]Doc, len(docs))
	for i, d := range docs {
		out[i] = Localize(d, fields, l, opts...)
	}
	return out
}

// ToDoc chuyển model sang map theo json tag, đúng dạng client nhận được
func ToDoc(v interface{}) (Doc, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc Doc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// ToDocs chuyển danh sách model sang []Doc
func ToDocs[T any](items []T) ([]Doc, error) {
	out := make([]Doc, 0, len(items))
	for _, it := range items {
		d, err := ToDoc(it)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
