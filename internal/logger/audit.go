package logger

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// AuditAction một thao tác ghi vào audit log
type AuditAction struct {
	Action       string                 `json:"action"`        // blog_publish, product_delete, auth_login, ...
	UserID       string                 `json:"user_id"`       // Admin thực hiện
	ResourceID   string                 `json:"resource_id"`   // ID bản ghi bị ảnh hưởng
	ResourceType string                 `json:"resource_type"` // blog, product, ...
	IP           string                 `json:"ip"`
	UserAgent    string                 `json:"user_agent"`
	Details      map[string]interface{} `json:"details"`
	Timestamp    time.Time              `json:"timestamp"`
}

// Fields chuyển sang logrus.Fields
func (a AuditAction) Fields() logrus.Fields {
	return logrus.Fields{
		"action":        a.Action,
		"user_id":       a.UserID,
		"resource_id":   a.ResourceID,
		"resource_type": a.ResourceType,
		"ip":            a.IP,
		"user_agent":    a.UserAgent,
		"details":       a.Details,
		"timestamp":     a.Timestamp,
	}
}

// NewAuditAction dựng AuditAction từ request hiện tại
func NewAuditAction(action string, c fiber.Ctx, details map[string]interface{}) AuditAction {
	if details == nil {
		details = make(map[string]interface{})
	}

	audit := AuditAction{
		Action:    action,
		IP:        c.IP(),
		UserAgent: c.Get(fiber.HeaderUserAgent),
		Details:   details,
		Timestamp: time.Now(),
	}
	if uid, ok := c.Locals(LocalUserID).(string); ok {
		audit.UserID = uid
	}
	if rid := RequestID(c); rid != "" {
		audit.Details["request_id"] = rid
	}
	if id, ok := details["resource_id"].(string); ok {
		audit.ResourceID = id
	}
	if rt, ok := details["resource_type"].(string); ok {
		audit.ResourceType = rt
	}
	return audit
}

// LogAction ghi một hành động vào audit log
func LogAction(action string, c fiber.Ctx, details map[string]interface{}) {
	GetAuditLogger().WithFields(NewAuditAction(action, c, details).Fields()).Info("Audit log")
}

// LogCRUD ghi các thao tác tạo/sửa/xóa của admin
func LogCRUD(operation, resourceType, resourceID string, c fiber.Ctx, details map[string]interface{}) {
	if details == nil {
		details = make(map[string]interface{})
	}
	details["operation"] = operation
	details["resource_type"] = resourceType
	details["resource_id"] = resourceID

	LogAction(resourceType+"_"+operation, c, details)
}

// LogAuth ghi đăng nhập, đăng xuất, refresh
func LogAuth(action string, c fiber.Ctx, details map[string]interface{}) {
	if details == nil {
		details = make(map[string]interface{})
	}
	details["auth_action"] = action

	LogAction("auth_"+action, c, details)
}
