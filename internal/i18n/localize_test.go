package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPick(t *testing.T) {
	m := map[string]interface{}{"vi": "Trà sữa", "en": "Milk tea"}
	assert.Equal(t, "Milk tea", Pick(m, En))
	assert.Equal(t, "Trà sữa", Pick(m, Vi))

	onlyVi := map[string]interface{}{"vi": "Trà sữa", "en": "   "}
	assert.Equal(t, "Trà sữa", Pick(onlyVi, En), "rơi về locale mặc định")

	onlyEn := map[string]interface{}{"en": "Milk tea"}
	assert.Equal(t, "Milk tea", Pick(onlyEn, Vi), "rơi về locale còn lại")

	assert.Equal(t, "plain", Pick("plain", En))
	assert.Equal(t, "", Pick(nil, En))
	assert.Equal(t, "", Pick(42, En))
	assert.Equal(t, "Milk tea", Pick(Text{En: "Milk tea"}, Vi))
}

func TestLocalize(t *testing.T) {
	doc := Doc{
		"title_i18n":   map[string]interface{}{"vi": "Xin chào", "en": "Hello"},
		"excerpt":      "bare excerpt",
		"excerpt_i18n": map[string]interface{}{},
		"slug":         "xin-chao",
		"slug_i18n":    map[string]interface{}{"vi": "xin-chao", "en": "hello"},
	}

	out := Localize(doc, []string{"title", "excerpt", "seoTitle"}, En)
	assert.Equal(t, "Hello", out["title"])
	assert.Equal(t, "bare excerpt", out["excerpt"], "không có bản dịch thì dùng field gốc")
	assert.Equal(t, "", out["seoTitle"], "không có nguồn nào thì trả chuỗi rỗng")
	assert.Equal(t, doc["title_i18n"], out["title_i18n"], "map song ngữ được giữ nguyên")
	assert.Equal(t, "xin-chao", out["slug"], "không bật SlugI18n thì slug giữ nguyên")
	_, mutated := doc["title"]
	assert.False(t, mutated, "không sửa doc đầu vào")

	withSlug := Localize(doc, []string{"title"}, En, Options{SlugI18n: true})
	assert.Equal(t, "hello", withSlug["slug"])

	assert.Nil(t, Localize(nil, []string{"title"}, En))
}

func TestLocalizeFallbackOrder(t *testing.T) {
	doc := Doc{"title": "bare", "title_i18n": map[string]interface{}{"en": "English"}}
	assert.Equal(t, "bare", Localize(doc, []string{"title"}, Vi)["title"], "field gốc đứng trước locale còn lại")
	assert.Equal(t, "English", Localize(doc, []string{"title"}, En)["title"])

	doc = Doc{"title": "bare", "title_i18n": map[string]interface{}{"vi": "Tiêu đề", "en": ""}}
	assert.Equal(t, "Tiêu đề", Localize(doc, []string{"title"}, En)["title"], "locale mặc định đứng trước field gốc")

	doc = Doc{"title_i18n": map[string]interface{}{"en": "English"}}
	assert.Equal(t, "English", Localize(doc, []string{"title"}, Vi)["title"], "không có field gốc thì vẫn không trả rỗng")

	doc = Doc{"title": "", "title_i18n": Text{En: "English"}}
	assert.Equal(t, "English", Localize(doc, []string{"title"}, Vi)["title"])
}

func TestLocalizeList(t *testing.T) {
	docs := []Doc{
		{"name_i18n": map[string]interface{}{"vi": "Gỏi cuốn"}},
		{"name_i18n": map[string]interface{}{"vi": "Phở", "en": "Pho"}},
	}
	out := LocalizeList(docs, []string{"name"}, En)
	require.Len(t, out, 2)
	assert.Equal(t, "Gỏi cuốn", out[0]["name"])
	assert.Equal(t, "Pho", out[1]["name"])
}

func TestToDoc(t *testing.T) {
	type item struct {
		Name Text `json:"name_i18n"`
		Skip bool `json:"-"`
	}
	doc, err := ToDoc(item{Name: Text{Vi: "Phở"}})
	require.NoError(t, err)
	out := Localize(doc, []string{"name"}, En)
	assert.Equal(t, "Phở", out["name"])
	_, has := doc["Skip"]
	assert.False(t, has)
}

func TestText(t *testing.T) {
	txt := Text{Vi: " Phở ", En: ""}
	assert.Equal(t, " Phở ", txt.Resolve(En))
	assert.Equal(t, Text{Vi: "Phở"}, txt.Trim())
	assert.False(t, txt.IsEmpty())
	assert.True(t, Text{Vi: " "}.IsEmpty())
	assert.Equal(t, Text{Vi: "Phở", En: "Pho"}, Text{Vi: "Phở"}.Merge(Text{En: "Pho"}))

	var set Text
	set.Set(En, "Pho")
	assert.Equal(t, "Pho", set.Get(En))
	assert.Equal(t, map[string]interface{}{"en": "Pho"}, set.Map())
}
