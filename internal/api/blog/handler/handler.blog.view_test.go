package bloghdl

import (
	"strings"
	"testing"

	"github.com/doilonvl/salathai-be-demo/internal/api/blog/models"
	"github.com/doilonvl/salathai-be-demo/internal/i18n"
	"github.com/doilonvl/salathai-be-demo/internal/richdoc"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeta(t *testing.T) {
	b := &models.Blog{
		Title:      i18n.Text{Vi: "Tiêu đề", En: "Title"},
		SeoTitle:   &i18n.Text{En: "SEO title"},
		PlainText:  i18n.Text{Vi: "  " + strings.Repeat("ă", 200) + "  "},
		CoverImage: &models.Image{URL: "https://cdn/cover.jpg"},
	}

	m := Meta(b, i18n.En)
	assert.Equal(t, "SEO title", m.Title)
	assert.Equal(t, "https://cdn/cover.jpg", m.OgImage)

	m = Meta(b, i18n.Vi)
	assert.Equal(t, "SEO title", m.Title, "seoTitle đi theo chuỗi fallback trước title")
	assert.Equal(t, 160, len([]rune(m.Description)))

	b.OgImageURL = "https://cdn/og.jpg"
	b.Excerpt = &i18n.Text{Vi: "Tóm tắt"}
	m = Meta(b, i18n.Vi)
	assert.Equal(t, "Tóm tắt", m.Description)
	assert.Equal(t, "https://cdn/og.jpg", m.OgImage)
}

func TestCanonicalSlug(t *testing.T) {
	b := &models.Blog{SlugI18n: i18n.Text{Vi: "bai-viet", En: "article"}}
	doc, err := AdminView(b, i18n.En, false)
	require.NoError(t, err)
	assert.Equal(t, "article", doc["slug"])

	b.Slug = "chuan"
	doc, err = AdminView(b, i18n.En, false)
	require.NoError(t, err)
	assert.Equal(t, "chuan", doc["slug"])
}

func TestPublicDetailContentFallback(t *testing.T) {
	b := &models.Blog{
		SlugI18n: i18n.Text{Vi: "bai-viet", En: "article"},
		Content:  &models.Content{Vi: map[string]interface{}{"type": "doc"}},
		Toc:      models.Toc{Vi: []richdoc.TocEntry{{ID: "a", Text: "A", Level: 2}}, En: []richdoc.TocEntry{}},
	}
	doc, err := PublicDetailView(b, i18n.En)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"type": "doc"}, doc["content"])
	assert.Len(t, doc["toc"], 1)
	assert.Equal(t, "article", doc["slug"])

	b.Content = nil
	doc, err = PublicDetailView(b, i18n.En)
	require.NoError(t, err)
	assert.Nil(t, doc["content"])

	b.Slug = "bai-viet"
	doc, err = PublicListView(b, i18n.En)
	require.NoError(t, err)
	assert.Equal(t, "bai-viet", doc["slug"])
}
