package producthdl

import (
	"strings"

	productdto "github.com/doilonvl/salathai-be-demo/internal/api/product/dto"
	"github.com/doilonvl/salathai-be-demo/internal/common"
)

const (
	msgProductRequired  = "name_i18n and sortOrder are required"
	msgCategoryRequired = "key, name_i18n and sortOrder are required"
)

// ValidateProductCreate tên, thứ tự và ít nhất một biến thể là bắt buộc
func ValidateProductCreate(in *productdto.ProductInput) error {
	if in.Name == nil || in.Name.IsEmpty() || in.SortOrder == nil {
		return common.NewValidationError(msgProductRequired)
	}
	if in.Variants == nil || len(*in.Variants) == 0 {
		return common.ErrVariantRequired
	}
	return nil
}

// ValidateProductUpdate gửi variants thì không được rỗng
func ValidateProductUpdate(in *productdto.ProductInput) error {
	if in.Variants != nil && len(*in.Variants) == 0 {
		return common.ErrVariantRequired
	}
	return nil
}

// ValidateCategoryCreate key, tên và thứ tự là bắt buộc
func ValidateCategoryCreate(in *productdto.CategoryInput) error {
	if in.Key == nil || strings.TrimSpace(*in.Key) == "" || in.Name == nil || in.Name.IsEmpty() || in.SortOrder == nil {
		return common.NewValidationError(msgCategoryRequired)
	}
	return nil
}
