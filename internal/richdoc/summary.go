package richdoc

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// WordsPerMinute tốc độ đọc dùng để tính thời gian đọc
const WordsPerMinute = 200

// MaxContentBytes giới hạn kích thước JSON của nội dung mỗi locale
const MaxContentBytes = 2 * 1024 * 1024

// FallbackSlug id khi heading không sinh được slug
const FallbackSlug = "section"

// TocEntry một mục trong mục lục
type TocEntry struct {
	ID    string `json:"id" bson:"id"`
	Text  string `json:"text" bson:"text"`
	Level int    `json:"level" bson:"level"`
}

// Summary kết quả tóm tắt một tài liệu
type Summary struct {
	Toc       []TocEntry `json:"toc"`
	PlainText string     `json:"plainText"`
	WordCount int        `json:"wordCount"`
}

// Summarize duyệt pre-order: gom text của mọi nút và ghi heading cấp 2, 3 vào mục lục.
// Slug trùng lần thứ n nhận hậu tố -n.
func Summarize(root *Node) Summary {
	s := Summary{Toc: []TocEntry{}}
	var parts []string
	counts := map[string]int{}

	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		if n.HasText {
			parts = append(parts, n.Text)
		}

		if n.IsHeading() {
			if text := normalizeWhitespace(extractText(n)); text != "" {
				base := Slugify(text)
				if base == "" {
					base = FallbackSlug
				}
				counts[base]++
				id := base
				if c := counts[base]; c > 1 {
					id = base + "-" + strconv.Itoa(c)
				}
				s.Toc = append(s.Toc, TocEntry{ID: id, Text: text, Level: n.Level})
			}
		}

		for _, child := range n.Children {
			walk(child)
		}
	}
	walk(root)

	s.PlainText = normalizeWhitespace(strings.Join(parts, " "))
	s.WordCount = len(strings.Fields(s.PlainText))
	return s
}

// SummarizeDoc Parse rồi Summarize
func SummarizeDoc(doc interface{}) Summary {
	return Summarize(Parse(doc))
}

// extractText text của nút và toàn bộ con cháu, nối bằng dấu cách
func extractText(n *Node) string {
	var parts []string
	if n.HasText {
		parts = append(parts, n.Text)
	}
	for _, child := range n.Children {
		if t := extractText(child); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ReadingTime số phút đọc, làm tròn lên
func ReadingTime(words int) int {
	if words <= 0 {
		return 0
	}
	return (words + WordsPerMinute - 1) / WordsPerMinute
}

// LocalizedSummary tóm tắt từng locale của một bài blog
type LocalizedSummary struct {
	Vi                 Summary
	En                 Summary
	ReadingTimeMinutes int
}

// SummarizeLocales tóm tắt độc lập từng locale; thời gian đọc theo locale dài hơn
func SummarizeLocales(vi, en interface{}) LocalizedSummary {
	out := LocalizedSummary{
		Vi: SummarizeDoc(vi),
		En: SummarizeDoc(en),
	}
	words := out.Vi.WordCount
	if out.En.WordCount > words {
		words = out.En.WordCount
	}
	out.ReadingTimeMinutes = ReadingTime(words)
	return out
}

// ContentSize số bytes JSON (UTF-8, không escape HTML) của nội dung
func ContentSize(doc interface{}) (int, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return 0, err
	}
	// Encode luôn thêm "\n" ở cuối
	return buf.Len() - 1, nil
}
