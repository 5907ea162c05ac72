package logger

import (
	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// Các key Locals mà middleware gắn vào request
const (
	LocalRequestID = "requestid"
	LocalUserID    = "user_id"
	LocalUserRole  = "user_role"
)

// RequestID lấy request id từ Locals, header gửi lên hoặc header trả về
func RequestID(c fiber.Ctx) string {
	if rid, ok := c.Locals(LocalRequestID).(string); ok && rid != "" {
		return rid
	}
	if rid := c.Get(fiber.HeaderXRequestID); rid != "" {
		return rid
	}
	return c.GetRespHeader(fiber.HeaderXRequestID)
}

// WithRequest trả về entry kèm method, path, ip và request_id
func WithRequest(c fiber.Ctx) *logrus.Entry {
	entry := GetAppLogger().WithFields(logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
		"ip":     c.IP(),
	})
	if rid := RequestID(c); rid != "" {
		entry = entry.WithField("request_id", rid)
	}
	if uid, ok := c.Locals(LocalUserID).(string); ok && uid != "" {
		entry = entry.WithField("user_id", uid)
	}
	return entry
}

// WithFields entry với các field bổ sung
func WithFields(fields map[string]interface{}) *logrus.Entry {
	return GetAppLogger().WithFields(logrus.Fields(fields))
}

// WithError entry kèm lỗi
func WithError(err error) *logrus.Entry {
	return GetAppLogger().WithError(err)
}

// WithModule module: "blog", "product", "reservation", "upload", ...
func WithModule(module string) *logrus.Entry {
	return GetAppLogger().WithField("module", module)
}

// WithCollection collection MongoDB đang thao tác
func WithCollection(collection string) *logrus.Entry {
	return GetAppLogger().WithField("collection", collection)
}

// WithRequestInfo gộp thông tin request với module và collection
func WithRequestInfo(c fiber.Ctx, module, collection string) *logrus.Entry {
	entry := WithRequest(c)
	if module != "" {
		entry = entry.WithField("module", module)
	}
	if collection != "" {
		entry = entry.WithField("collection", collection)
	}
	return entry
}
