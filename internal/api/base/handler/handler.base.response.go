package basehdl

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/doilonvl/salathai-be-demo/internal/common"

	"github.com/gofiber/fiber/v3"
)

// JSONResponse trả về JSON response với Content-Type: application/json; charset=utf-8
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	c.Set("Content-Type", "application/json; charset=utf-8")
	return c.Status(statusCode).JSON(data)
}

// SafeHandler bọc các handler với recover để bắt panic và xử lý lỗi an toàn.
// Server luôn trả về response cho client, kể cả khi có panic xảy ra.
func (h *BaseHandler) SafeHandler(c fiber.Ctx, handler func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			h.Log(c).WithFields(map[string]interface{}{
				"panic": r,
				"stack": string(debug.Stack()),
			}).Error("Handler panic")

			err = nil
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeInternalServer,
				fmt.Sprintf("Lỗi hệ thống không mong muốn: %v", r),
				common.StatusInternalServerError,
				nil,
			))
		}
	}()
	return handler()
}

// HandleResponse trả về 200 khi thành công, lỗi thì theo status của lỗi
func (h *BaseHandler) HandleResponse(c fiber.Ctx, data interface{}, err error) {
	h.HandleResponseStatus(c, common.StatusOK, common.MsgSuccess, data, err)
}

// HandleResponseStatus xử lý và chuẩn hóa response trả về cho client.
//
// Parameters:
// - status, message: dùng khi thành công (201 Created, 202 Accepted...)
// - data: dữ liệu trả về (có thể nil)
// - err: lỗi nếu có
func (h *BaseHandler) HandleResponseStatus(c fiber.Ctx, status int, message string, data interface{}, err error) {
	if err != nil {
		h.handleError(c, err)
		return
	}

	JSONResponse(c, status, fiber.Map{
		"code":    status,
		"message": message,
		"data":    data,
		"status":  "success",
	})
}

func (h *BaseHandler) handleError(c fiber.Ctx, err error) {
	var customErr *common.Error
	if errors.As(err, &customErr) {
		entry := h.Log(c).WithField("code", customErr.Code.Code)
		if customErr.StatusCode >= common.StatusInternalServerError {
			entry.WithField("details", customErr.Details).Error(customErr.Message)
		} else {
			entry.Debug(customErr.Message)
		}
		JSONResponse(c, customErr.StatusCode, fiber.Map{
			"code":    customErr.Code.Code,
			"message": customErr.Message,
			"details": customErr.Details,
			"status":  "error",
		})
		return
	}

	// Lỗi không thuộc hệ thống: ghi log chi tiết, client chỉ nhận thông báo chung
	h.Log(c).WithError(err).Error("Unhandled error")
	JSONResponse(c, common.StatusInternalServerError, fiber.Map{
		"code":    common.ErrCodeInternalServer.Code,
		"message": common.ErrInternal.Error(),
		"status":  "error",
	})
}
