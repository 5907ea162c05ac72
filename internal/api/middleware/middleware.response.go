package middleware

import (
	"errors"

	"github.com/doilonvl/salathai-be-demo/internal/common"
	"github.com/doilonvl/salathai-be-demo/internal/logger"

	"github.com/gofiber/fiber/v3"
)

// JSONResponse trả về JSON response với Content-Type: application/json; charset=utf-8
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	c.Set("Content-Type", "application/json; charset=utf-8")
	return c.Status(statusCode).JSON(data)
}

// HandleErrorResponse xử lý và trả về error response cho client.
// Tách riêng để tránh import cycle với handler package.
func HandleErrorResponse(c fiber.Ctx, err error) error {
	var customErr *common.Error
	if errors.As(err, &customErr) {
		return JSONResponse(c, customErr.StatusCode, fiber.Map{
			"code":    customErr.Code.Code,
			"message": customErr.Message,
			"details": customErr.Details,
			"status":  "error",
		})
	}

	// Lỗi của Fiber (404 route, 413 body, 429 limiter...) giữ nguyên status
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return JSONResponse(c, fiberErr.Code, fiber.Map{
			"code":    fiberErr.Code,
			"message": fiberErr.Message,
			"status":  "error",
		})
	}

	// Lỗi lạ: log chi tiết, client chỉ nhận thông báo chung
	logger.WithRequest(c).WithError(err).Error("Unhandled error")
	return JSONResponse(c, common.StatusInternalServerError, fiber.Map{
		"code":    common.ErrCodeInternalServer.Code,
		"message": common.ErrInternal.Error(),
		"status":  "error",
	})
}

// ErrorHandler dùng cho fiber.Config.ErrorHandler để mọi lỗi đều cùng định dạng envelope
func ErrorHandler(c fiber.Ctx, err error) error {
	return HandleErrorResponse(c, err)
}
