// Package basehdl cung cấp BaseHandler với các tiện ích parse request, validate và trả response chuẩn.
package basehdl

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/doilonvl/salathai-be-demo/internal/common"
	"github.com/doilonvl/salathai-be-demo/internal/global"
	"github.com/doilonvl/salathai-be-demo/internal/logger"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BaseHandler được embed vào handler của từng domain
type BaseHandler struct {
	Module string // Tên module, dùng khi ghi log
}

// NewBaseHandler tạo BaseHandler cho một module
func NewBaseHandler(module string) *BaseHandler {
	return &BaseHandler{Module: module}
}

// Log logger gắn sẵn thông tin request và module
func (h *BaseHandler) Log(c fiber.Ctx) *logrus.Entry {
	return logger.WithRequest(c).WithField("module", h.Module)
}

// ParseRequestBody parse JSON body vào input rồi validate theo struct tag `validate`.
// Body rỗng trả về ErrMissingBody.
func (h *BaseHandler) ParseRequestBody(c fiber.Ctx, input interface{}) error {
	body := bytes.TrimSpace(c.Body())
	if len(body) == 0 {
		return common.ErrMissingBody
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	if err := decoder.Decode(input); err != nil {
		return common.NewError(common.ErrCodeValidationFormat, common.MsgInvalidFormat, common.StatusBadRequest, err.Error())
	}

	return h.ValidateInput(input)
}

// ValidateInput validate struct với validator toàn cục, lỗi trả về kèm danh sách field sai
func (h *BaseHandler) ValidateInput(input interface{}) error {
	if global.Validate == nil {
		return nil
	}
	err := global.Validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err.Error())
	}

	details := make([]map[string]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, map[string]string{
			"field": fieldPath(fe.Namespace()),
			"rule":  fe.Tag(),
			"param": fe.Param(),
		})
	}
	return common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, details)
}

// fieldPath bỏ tên struct gốc ở đầu namespace: "BlogInput.slug_i18n.vi" thành "slug_i18n.vi"
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// ParseID đọc ObjectID từ URL params
func (h *BaseHandler) ParseID(c fiber.Ctx, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Params(name))
	if err != nil {
		return primitive.NilObjectID, common.ErrInvalidID
	}
	return id, nil
}

// QueryPositiveInt đọc số nguyên dương từ query, không hợp lệ thì trả về def
func (h *BaseHandler) QueryPositiveInt(c fiber.Ctx, key string, def int64) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(c.Query(key)), 10, 64)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// QueryBool "true"/"false" thành con trỏ bool, giá trị khác trả nil
func (h *BaseHandler) QueryBool(c fiber.Ctx, key string) *bool {
	switch c.Query(key) {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	}
	return nil
}

// UserID id của admin đang đăng nhập (middleware auth gán vào Locals)
func (h *BaseHandler) UserID(c fiber.Ctx) string {
	id, _ := c.Locals(logger.LocalUserID).(string)
	return id
}
