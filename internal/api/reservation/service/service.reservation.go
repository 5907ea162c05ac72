// Package reservationsvc lưu yêu cầu đặt bàn và gửi email báo cho nhà hàng.
package reservationsvc

import (
	"context"
	"regexp"
	"strings"
	"time"

	basemodels "github.com/doilonvl/salathai-be-demo/internal/api/base/models"
	basesvc "github.com/doilonvl/salathai-be-demo/internal/api/base/service"
	reservationdto "github.com/doilonvl/salathai-be-demo/internal/api/reservation/dto"
	"github.com/doilonvl/salathai-be-demo/internal/api/reservation/models"
	"github.com/doilonvl/salathai-be-demo/internal/common"
	"github.com/doilonvl/salathai-be-demo/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReservationService là cấu trúc chứa các phương thức liên quan đến đặt bàn
type ReservationService struct {
	*basesvc.BaseServiceMongoImpl[models.ReservationRequest]
	notifier *Notifier
	now      func() time.Time
}

// NewReservationService enforce=true thì gửi email đồng bộ, lỗi gửi trả về 500
func NewReservationService(db *mongo.Database, mailer Mailer, enforce bool) *ReservationService {
	s := &ReservationService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.ReservationRequest](db.Collection(global.MongoDB_ColNames.ReservationRequests)),
		now:                  time.Now,
	}
	s.notifier = NewNotifier(mailer, enforce, s.MarkEmailed)
	return s
}

// BuildReservation input đã qua validate, email chữ thường, nguồn mặc định website
func BuildReservation(in *reservationdto.ReservationInput) (models.ReservationRequest, error) {
	date, ok := reservationdto.ParseDate(in.ReservationDate)
	if !ok {
		return models.ReservationRequest{}, common.NewValidationError("Invalid reservationDate")
	}
	r := models.ReservationRequest{
		FullName:        strings.TrimSpace(in.FullName),
		PhoneNumber:     strings.TrimSpace(in.PhoneNumber),
		Email:           strings.ToLower(strings.TrimSpace(in.Email)),
		GuestCount:      int(in.GuestCount),
		ReservationDate: date,
		ReservationTime: strings.TrimSpace(in.ReservationTime),
		Note:            strings.TrimSpace(in.Note),
		Source:          strings.TrimSpace(in.Source),
		Status:          models.StatusNew,
	}
	if r.Source == "" {
		r.Source = models.SourceWebsite
	}
	return r, nil
}

// Create lưu yêu cầu rồi gửi email báo cho nhà hàng
func (s *ReservationService) Create(ctx context.Context, in *reservationdto.ReservationInput) (*models.ReservationRequest, error) {
	r, err := BuildReservation(in)
	if err != nil {
		return nil, err
	}
	created, err := s.InsertOne(ctx, r)
	if err != nil {
		return nil, err
	}

	return s.notifier.Notify(ctx, &created)
}

// MarkEmailed chuyển sang emailed và ghi emailedAt
func (s *ReservationService) MarkEmailed(ctx context.Context, id primitive.ObjectID) (*models.ReservationRequest, error) {
	updated, err := s.UpdateById(ctx, id, bson.M{"status": models.StatusEmailed, "emailedAt": s.now()})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// ListFilter q tìm không phân biệt hoa thường theo chuỗi nguyên văn, khoảng ngày tính cả hai đầu
func ListFilter(q reservationdto.ListQuery) (bson.M, error) {
	filter := bson.M{}
	if status := strings.TrimSpace(q.Status); status != "" {
		if !models.ValidStatus(status) {
			return nil, common.NewValidationError("Invalid status")
		}
		filter["status"] = status
	}

	if text := strings.TrimSpace(q.Q); text != "" {
		rx := primitive.Regex{Pattern: regexp.QuoteMeta(text), Options: "i"}
		or := bson.A{}
		for _, f := range []string{"fullName", "phoneNumber", "email", "note", "source"} {
			or = append(or, bson.M{f: rx})
		}
		filter["$or"] = or
	}

	date := bson.M{}
	if raw := strings.TrimSpace(q.DateFrom); raw != "" {
		t, ok := reservationdto.ParseDate(raw)
		if !ok {
			return nil, common.NewValidationError("Invalid dateFrom")
		}
		date["$gte"] = t
	}
	if raw := strings.TrimSpace(q.DateTo); raw != "" {
		t, ok := reservationdto.ParseDate(raw)
		if !ok {
			return nil, common.NewValidationError("Invalid dateTo")
		}
		date["$lte"] = t
	}
	if len(date) > 0 {
		filter["reservationDate"] = date
	}
	return filter, nil
}

// List sắp theo ngày, giờ tăng dần, cùng khung giờ thì yêu cầu mới nhất trước
func (s *ReservationService) List(ctx context.Context, q reservationdto.ListQuery) (*basemodels.PaginateResult[models.ReservationRequest], error) {
	filter, err := ListFilter(q)
	if err != nil {
		return nil, err
	}
	opts := options.Find().SetSort(bson.D{
		{Key: "reservationDate", Value: 1},
		{Key: "reservationTime", Value: 1},
		{Key: "createdAt", Value: -1},
	})
	return s.FindWithPagination(ctx, filter, q.Page, q.Limit, opts)
}

// GetByID tìm yêu cầu theo id
func (s *ReservationService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.ReservationRequest, error) {
	r, err := s.FindOneById(ctx, id)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// UpdateStatus đổi trạng thái, status phải nằm trong enum
func (s *ReservationService) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.ReservationRequest, error) {
	if !models.ValidStatus(status) {
		return nil, common.NewValidationError("Invalid status")
	}
	updated, err := s.UpdateById(ctx, id, bson.M{"status": status})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
