// Package richdoc đọc cây nội dung do rich-text editor sinh ra và tính mục lục,
// văn bản thuần, số từ và thời gian đọc.
package richdoc

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Node một nút đã chuẩn hóa. Editor cũ để con trong "content", editor mới dùng "children";
// Parse gộp về Children nên lúc duyệt không cần kiểm tra lại.
type Node struct {
	Type     string
	Text     string
	HasText  bool
	Level    int // 2 hoặc 3 nếu là heading nằm trong mục lục, còn lại 0
	Tag      string
	Children []*Node
}

// IsHeading nút có được đưa vào mục lục
func (n *Node) IsHeading() bool {
	return n != nil && n.Level != 0
}

// Parse chuẩn hóa tài liệu thô (map/slice decode từ JSON).
// Nếu có thuộc tính root thì dùng nó làm gốc. Dữ liệu sai kiểu không gây lỗi,
// chỉ cho ra cây rỗng hoặc thiếu nhánh.
func Parse(doc interface{}) *Node {
	if m, ok := doc.(map[string]interface{}); ok {
		switch root := m["root"].(type) {
		case map[string]interface{}:
			return parseNode(root)
		case []interface{}:
			return &Node{}
		}
	}
	return parseNode(doc)
}

// ParseJSON parse từ bytes, JSON hỏng trả về nút rỗng
func ParseJSON(raw []byte) *Node {
	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return &Node{}
	}
	return Parse(doc)
}

func parseNode(v interface{}) *Node {
	m, ok := v.(map[string]interface{})
	if !ok {
		return &Node{}
	}

	n := &Node{}
	n.Type, _ = m["type"].(string)
	n.Tag, _ = m["tag"].(string)
	if text, ok := m["text"].(string); ok {
		n.Text = text
		n.HasText = true
	}
	n.Level = headingLevel(m, n.Type, n.Tag)

	for _, raw := range childList(m) {
		if _, ok := raw.(map[string]interface{}); !ok {
			continue
		}
		n.Children = append(n.Children, parseNode(raw))
	}
	return n
}

// childList children được ưu tiên, sau đó tới content; phải là mảng
func childList(m map[string]interface{}) []interface{} {
	if c, ok := m["children"].([]interface{}); ok {
		return c
	}
	if c, ok := m["content"].([]interface{}); ok {
		return c
	}
	return nil
}

// headingLevel chỉ xét type "heading". Level lấy từ attrs.level (số hoặc chuỗi số),
// không có thì từ level; không thuộc {2,3} thì thử tag h2/h3.
func headingLevel(m map[string]interface{}, typ, tag string) int {
	if typ != "heading" {
		return 0
	}

	var level float64
	found := false
	attrs, _ := m["attrs"].(map[string]interface{})
	if v, ok := numberValue(attrs["level"]); ok {
		level, found = v, true
	} else if s, ok := attrs["level"].(string); ok {
		level, found = stringNumber(s), true
	} else if v, ok := numberValue(m["level"]); ok {
		level, found = v, true
	}

	if found && (level == 2 || level == 3) {
		return int(level)
	}

	switch strings.ToLower(tag) {
	case "h2":
		return 2
	case "h3":
		return 3
	}
	return 0
}

func numberValue(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// stringNumber chuỗi rỗng là 0, chuỗi không phải số thì trả giá trị ngoài {2,3}
func stringNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return -1
	}
	return f
}
