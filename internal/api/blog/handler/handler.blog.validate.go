package bloghdl

import (
	"bytes"
	"encoding/json"
	"strings"

	blogdto "github.com/doilonvl/salathai-be-demo/internal/api/blog/dto"
	"github.com/doilonvl/salathai-be-demo/internal/api/blog/models"
	"github.com/doilonvl/salathai-be-demo/internal/common"
	"github.com/doilonvl/salathai-be-demo/internal/i18n"
	"github.com/doilonvl/salathai-be-demo/internal/richdoc"
)

// Thông báo lỗi validate
const (
	msgSlugRequired         = "slug_i18n.vi and slug_i18n.en are required"
	msgSlugRequiredProvided = "slug_i18n.vi and slug_i18n.en are required when provided"
	msgTitleRequired        = "At least one localized title (vi/en) is required"
	msgContentObjects       = "content_i18n.vi and content_i18n.en must be JSON objects"
	msgTagsStrings          = "tags must be an array of strings"
	msgScheduledAtRequired  = "scheduledAt is required"
)

// decodeBlogInput kiểm tra kiểu của tags trước khi decode để báo lỗi đúng field
func decodeBlogInput(body []byte) (*blogdto.BlogInput, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, common.ErrMissingBody
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, common.NewError(common.ErrCodeValidationFormat, common.MsgInvalidFormat, common.StatusBadRequest, err.Error())
	}
	if tags, ok := raw["tags"]; ok {
		var list []string
		if err := json.Unmarshal(tags, &list); err != nil || list == nil {
			return nil, common.NewValidationError(msgTagsStrings)
		}
	}

	var in blogdto.BlogInput
	if err := json.Unmarshal(body, &in); err != nil {
		return nil, common.NewError(common.ErrCodeValidationFormat, common.MsgInvalidFormat, common.StatusBadRequest, err.Error())
	}
	return &in, nil
}

func blank(t *i18n.Text, l i18n.Locale) bool {
	return t == nil || strings.TrimSpace(t.Get(l)) == ""
}

func isJSONObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// validateContent cả hai locale phải là object và không vượt MaxContentBytes
func validateContent(c *blogdto.ContentInput) error {
	if c == nil || !isJSONObject(c.Vi) || !isJSONObject(c.En) {
		return common.NewValidationError(msgContentObjects)
	}
	parts := []struct {
		field string
		raw   json.RawMessage
	}{{"content_i18n.vi", c.Vi}, {"content_i18n.en", c.En}}
	for _, p := range parts {
		var doc interface{}
		if err := json.Unmarshal(p.raw, &doc); err != nil {
			return common.NewValidationError(msgContentObjects)
		}
		size, err := richdoc.ContentSize(doc)
		if err != nil {
			return common.NewValidationError(msgContentObjects)
		}
		if size > richdoc.MaxContentBytes {
			return common.NewContentTooLargeError(p.field, richdoc.MaxContentBytes)
		}
	}
	return nil
}

// validateShared status và các thời điểm, dùng cho cả create và update
func validateShared(in *blogdto.BlogInput) error {
	if in.Status != nil && !models.ValidStatus(strings.TrimSpace(*in.Status)) {
		return common.ErrInvalidBlogStatus
	}
	if in.ScheduledAt.Invalid {
		return common.NewValidationError("Invalid scheduledAt")
	}
	if in.PublishedAt.Invalid {
		return common.NewValidationError("Invalid publishedAt")
	}
	return nil
}

// ValidateCreate quy tắc của POST /blogs
func ValidateCreate(in *blogdto.BlogInput) error {
	if blank(in.SlugI18n, i18n.Vi) || blank(in.SlugI18n, i18n.En) {
		return common.NewValidationError(msgSlugRequired)
	}
	if blank(in.Title, i18n.Vi) && blank(in.Title, i18n.En) {
		return common.NewValidationError(msgTitleRequired)
	}
	if err := validateContent(in.Content); err != nil {
		return err
	}
	return validateShared(in)
}

// ValidateUpdate quy tắc của PUT/PATCH /blogs/:id, chỉ kiểm tra field có gửi lên
func ValidateUpdate(in *blogdto.BlogInput) error {
	if in.SlugI18n != nil && (blank(in.SlugI18n, i18n.Vi) || blank(in.SlugI18n, i18n.En)) {
		return common.NewValidationError(msgSlugRequiredProvided)
	}
	if in.Content != nil {
		if err := validateContent(in.Content); err != nil {
			return err
		}
	}
	return validateShared(in)
}
