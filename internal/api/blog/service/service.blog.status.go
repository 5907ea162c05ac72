package blogsvc

import (
	"time"

	"github.com/doilonvl/salathai-be-demo/internal/api/blog/models"
	"github.com/doilonvl/salathai-be-demo/internal/common"
)

// StatusInput phần trạng thái của một lần ghi.
// Has* cho biết key có mặt trong input (kể cả khi giá trị là null).
type StatusInput struct {
	Status         string
	ScheduledAt    *time.Time
	HasScheduledAt bool
	PublishedAt    *time.Time
	HasPublishedAt bool
}

// StatusFields kết quả sau khi chuẩn hóa, ghi thẳng vào document
type StatusFields struct {
	Status      string
	ScheduledAt *time.Time
	PublishedAt *time.Time
}

// NormalizeStatus tính status, scheduledAt, publishedAt cho bản ghi sau khi ghi.
//
// Status lấy theo thứ tự: input, "scheduled" nếu input có scheduledAt, status hiện tại, "draft".
// Thời điểm nào vắng mặt trong input thì giữ giá trị của bản ghi hiện tại.
//   - published: xóa scheduledAt, publishedAt giữ nguyên hoặc bằng now
//   - scheduled: bắt buộc có scheduledAt, xóa publishedAt
//   - draft: xóa cả hai
//   - archived: xóa scheduledAt, giữ publishedAt
func NormalizeStatus(in StatusInput, existing *models.Blog, now time.Time) (StatusFields, error) {
	status := in.Status
	if status == "" && in.ScheduledAt != nil {
		status = models.StatusScheduled
	}
	if status == "" && existing != nil {
		status = existing.Status
	}
	if status == "" {
		status = models.StatusDraft
	}

	scheduledAt := in.ScheduledAt
	if !in.HasScheduledAt && existing != nil {
		scheduledAt = existing.ScheduledAt
	}
	publishedAt := in.PublishedAt
	if !in.HasPublishedAt && existing != nil {
		publishedAt = existing.PublishedAt
	}

	out := StatusFields{Status: status}
	switch status {
	case models.StatusPublished:
		if publishedAt == nil {
			t := now
			publishedAt = &t
		}
		out.PublishedAt = publishedAt
	case models.StatusScheduled:
		if scheduledAt == nil {
			return StatusFields{}, common.ErrScheduledAtRequired
		}
		out.ScheduledAt = scheduledAt
	case models.StatusDraft:
	default:
		out.PublishedAt = publishedAt
	}
	return out, nil
}
