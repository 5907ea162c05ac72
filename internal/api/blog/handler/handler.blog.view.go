package bloghdl

import (
	"strings"

	"github.com/doilonvl/salathai-be-demo/internal/api/blog/models"
	"github.com/doilonvl/salathai-be-demo/internal/i18n"
	"github.com/doilonvl/salathai-be-demo/internal/richdoc"
)

// localizedFields field song ngữ được làm phẳng khi trả về
var localizedFields = []string{"title", "excerpt", "seoTitle", "seoDescription"}

// MetaDescriptionMax số ký tự tối đa của metaDescription
const MetaDescriptionMax = 160

// MetaFields field SEO dẫn xuất
type MetaFields struct {
	Title       string
	Description string
	OgImage     string
}

// Meta metaTitle: seoTitle rồi title. metaDescription: seoDescription, excerpt, plainText.
// ogImage: ogImageUrl rồi ảnh bìa.
func Meta(b *models.Blog, l i18n.Locale) MetaFields {
	var m MetaFields

	m.Title = i18n.Pick(b.SeoTitle, l)
	if m.Title == "" {
		m.Title = b.Title.Resolve(l)
	}

	desc := i18n.Pick(b.SeoDescription, l)
	if desc == "" {
		desc = i18n.Pick(b.Excerpt, l)
	}
	if desc == "" {
		desc = b.PlainText.Resolve(l)
	}
	m.Description = truncateRunes(strings.TrimSpace(desc), MetaDescriptionMax)

	m.OgImage = strings.TrimSpace(b.OgImageURL)
	if m.OgImage == "" && b.CoverImage != nil {
		m.OgImage = b.CoverImage.URL
	}
	return m
}

func truncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return strings.TrimSpace(string(r[:max]))
}

func attachMeta(doc i18n.Doc, b *models.Blog, l i18n.Locale) {
	m := Meta(b, l)
	doc["metaTitle"] = m.Title
	doc["metaDescription"] = m.Description
	doc["ogImage"] = m.OgImage
}

// ensureCanonicalSlug bản ghi cũ chưa có slug thì lấy slug_i18n
func ensureCanonicalSlug(doc i18n.Doc, b *models.Blog, l i18n.Locale) {
	if s, _ := doc["slug"].(string); s != "" {
		return
	}
	slug := b.SlugI18n.Get(l)
	if slug == "" {
		slug = b.SlugI18n.Get(i18n.Default)
	}
	doc["slug"] = slug
}

// AdminView bản ghi cho trang quản trị, chỉ làm phẳng khi client chọn ngôn ngữ
func AdminView(b *models.Blog, l i18n.Locale, localize bool) (i18n.Doc, error) {
	doc, err := i18n.ToDoc(b)
	if err != nil {
		return nil, err
	}
	ensureCanonicalSlug(doc, b, l)
	attachMeta(doc, b, l)
	if localize {
		doc = i18n.Localize(doc, localizedFields, l)
	}
	return doc, nil
}

func publicBase(b *models.Blog, l i18n.Locale) (i18n.Doc, error) {
	doc, err := i18n.ToDoc(b)
	if err != nil {
		return nil, err
	}
	ensureCanonicalSlug(doc, b, l)
	attachMeta(doc, b, l)
	doc = i18n.Localize(doc, localizedFields, l)
	delete(doc, "content_i18n")
	delete(doc, "toc_i18n")
	delete(doc, "plainText_i18n")
	return doc, nil
}

// PublicListView bản ghi trong danh sách public, không kèm nội dung và mục lục
func PublicListView(b *models.Blog, l i18n.Locale) (i18n.Doc, error) {
	return publicBase(b, l)
}

// PublicDetailView bản ghi chi tiết public kèm toc, plainText, content của locale
func PublicDetailView(b *models.Blog, l i18n.Locale) (i18n.Doc, error) {
	doc, err := publicBase(b, l)
	if err != nil {
		return nil, err
	}
	doc["toc"] = localizedToc(b.Toc, l)
	doc["plainText"] = b.PlainText.Resolve(l)

	var content interface{}
	if c := b.Content.Get(l); c != nil {
		content = c
	} else if c := b.Content.Get(i18n.Default); c != nil {
		content = c
	}
	doc["content"] = content
	return doc, nil
}

func localizedToc(toc models.Toc, l i18n.Locale) []richdoc.TocEntry {
	for _, cand := range i18n.Priority(l) {
		if entries := toc.Get(cand); len(entries) > 0 {
			return entries
		}
	}
	return []richdoc.TocEntry{}
}
