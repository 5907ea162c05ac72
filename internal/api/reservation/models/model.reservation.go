// Package models định nghĩa yêu cầu đặt bàn gửi từ website.
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trạng thái yêu cầu đặt bàn
const (
	StatusNew       = "new"
	StatusEmailed   = "emailed"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Statuses các trạng thái hợp lệ
var Statuses = []string{StatusNew, StatusEmailed, StatusConfirmed, StatusCancelled}

// Nguồn tạo yêu cầu
const (
	SourceWebsite = "website"
	SourcePhone   = "phone"
	SourceWalkIn  = "walk_in"
	SourceOther   = "other"
)

// ValidStatus status có nằm trong danh sách
func ValidStatus(s string) bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// ReservationRequest một yêu cầu đặt bàn
type ReservationRequest struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	FullName        string             `json:"fullName" bson:"fullName"`
	PhoneNumber     string             `json:"phoneNumber" bson:"phoneNumber"`
	Email           string             `json:"email,omitempty" bson:"email,omitempty"`
	GuestCount      int                `json:"guestCount" bson:"guestCount"`
	ReservationDate time.Time          `json:"reservationDate" bson:"reservationDate" index:"single"`
	ReservationTime string             `json:"reservationTime" bson:"reservationTime"`
	Note            string             `json:"note,omitempty" bson:"note,omitempty"`
	Source          string             `json:"source" bson:"source" default:"website"`
	Status          string             `json:"status" bson:"status" default:"new" index:"single"`
	EmailedAt       *time.Time         `json:"emailedAt,omitempty" bson:"emailedAt,omitempty"`
	CreatedAt       int64              `json:"createdAt" bson:"createdAt" index:"single,order:-1"`
	UpdatedAt       int64              `json:"updatedAt" bson:"updatedAt"`
}
