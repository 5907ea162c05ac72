package producthdl

import (
	"github.com/doilonvl/salathai-be-demo/internal/api/product/models"
	"github.com/doilonvl/salathai-be-demo/internal/i18n"
)

var (
	productFields  = []string{"name", "description", "imageAlt"}
	categoryFields = []string{"name", "description"}
	variantFields  = []string{"label", "note"}
)

// ProductView món đã làm phẳng theo locale, kể cả label / note của từng biến thể
func ProductView(p *models.Product, l i18n.Locale) (i18n.Doc, error) {
	doc, err := i18n.ToDoc(p)
	if err != nil {
		return nil, err
	}
	out := i18n.Localize(doc, productFields, l)

	variants, _ := doc["variants"].([]interface{})
	localized := make([]interface{}, 0, len(variants))
	for _, v := range variants {
		vd, ok := v.(map[string]interface{})
		if !ok {
			localized = append(localized, v)
			continue
		}
		localized = append(localized, i18n.Localize(vd, variantFields, l))
	}
	out["variants"] = localized
	return out, nil
}

// CategoryView nhóm món đã làm phẳng theo locale
func CategoryView(cat *models.ProductCategory, l i18n.Locale) (i18n.Doc, error) {
	doc, err := i18n.ToDoc(cat)
	if err != nil {
		return nil, err
	}
	return i18n.Localize(doc, categoryFields, l), nil
}
