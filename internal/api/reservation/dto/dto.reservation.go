// Package reservationdto chứa input của các endpoint đặt bàn.
package reservationdto

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"
)

// HoneypotField tên field bẫy bot, người thật không điền
const HoneypotField = "website"

// ReservationInput body của POST /reservation-requests
type ReservationInput struct {
	FullName        string     `json:"fullName" validate:"max=160,no_xss"`
	PhoneNumber     string     `json:"phoneNumber" validate:"omitempty,max=40,phone"`
	Email           string     `json:"email" validate:"omitempty,max=160,email"`
	GuestCount      GuestCount `json:"guestCount" validate:"omitempty,min=1,max=100"`
	ReservationDate string     `json:"reservationDate"`
	ReservationTime string     `json:"reservationTime" validate:"omitempty,max=20,clock"`
	Note            string     `json:"note" validate:"max=1000,no_xss"`
	Source          string     `json:"source" validate:"omitempty,oneof=website phone walk_in other"`
}

// ErrGuestCount guestCount không phải số nguyên
var ErrGuestCount = errors.New("guestCount must be an integer")

// GuestCount nhận số hoặc chuỗi số như form HTML gửi lên. null hoặc "" là 0
type GuestCount int

// UnmarshalJSON implements json.Unmarshaler
func (g *GuestCount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*g = 0
		return nil
	}
	raw := string(b)
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			*g = 0
			return nil
		}
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return ErrGuestCount
	}
	*g = GuestCount(n)
	return nil
}

// Honeypot field website là chuỗi khác rỗng. Chỉ đọc field này nên chạy được
// trước khi decode các field còn lại
func Honeypot(fields map[string]json.RawMessage) bool {
	raw, ok := fields[HoneypotField]
	if !ok {
		return false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return false
	}
	return strings.TrimSpace(s) != ""
}

// Complete đủ các field bắt buộc
func (in *ReservationInput) Complete() bool {
	return strings.TrimSpace(in.FullName) != "" &&
		strings.TrimSpace(in.PhoneNumber) != "" &&
		in.GuestCount != 0 &&
		strings.TrimSpace(in.ReservationDate) != "" &&
		strings.TrimSpace(in.ReservationTime) != ""
}

var dateLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// ParseDate ngày đặt bàn dạng YYYY-MM-DD hoặc RFC3339, không có múi giờ thì coi là UTC
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// StatusInput body của PATCH /reservation-requests/:id/status
type StatusInput struct {
	Status string `json:"status"`
}

// ListQuery query của GET /reservation-requests
type ListQuery struct {
	Page     int64
	Limit    int64
	Q        string
	Status   string
	DateFrom string
	DateTo   string
}
