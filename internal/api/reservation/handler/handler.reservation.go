// Package reservationhdl nhận yêu cầu đặt bàn công khai và các API quản trị.
package reservationhdl

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	basehdl "github.com/doilonvl/salathai-be-demo/internal/api/base/handler"
	basemodels "github.com/doilonvl/salathai-be-demo/internal/api/base/models"
	reservationdto "github.com/doilonvl/salathai-be-demo/internal/api/reservation/dto"
	"github.com/doilonvl/salathai-be-demo/internal/api/reservation/models"
	"github.com/doilonvl/salathai-be-demo/internal/common"
	"github.com/doilonvl/salathai-be-demo/internal/logger"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	msgRequired       = "fullName, phoneNumber, guestCount, reservationDate, reservationTime are required"
	msgStatusRequired = "status is required"
	msgSubmitted      = "Submitted"
	msgAccepted       = "Accepted"
)

// Store các thao tác handler cần từ ReservationService
type Store interface {
	Create(ctx context.Context, in *reservationdto.ReservationInput) (*models.ReservationRequest, error)
	List(ctx context.Context, q reservationdto.ListQuery) (*basemodels.PaginateResult[models.ReservationRequest], error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.ReservationRequest, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.ReservationRequest, error)
}

// ReservationHandler xử lý /reservation-requests
type ReservationHandler struct {
	*basehdl.BaseHandler
	store Store
}

// NewReservationHandler tạo handler với store cho trước
func NewReservationHandler(store Store) *ReservationHandler {
	return &ReservationHandler{BaseHandler: basehdl.NewBaseHandler("reservation"), store: store}
}

// decode body rỗng coi như input rỗng để trả lỗi thiếu field.
// honeypot true nghĩa là bot, in lúc đó là nil
func (h *ReservationHandler) decode(c fiber.Ctx) (in *reservationdto.ReservationInput, honeypot bool, err error) {
	in = &reservationdto.ReservationInput{}
	body := bytes.TrimSpace(c.Body())
	if len(body) == 0 {
		return in, false, nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, false, common.NewError(common.ErrCodeValidationFormat, common.MsgInvalidFormat, common.StatusBadRequest, err.Error())
	}
	if reservationdto.Honeypot(fields) {
		return nil, true, nil
	}
	if err := json.Unmarshal(body, in); err != nil {
		return nil, false, common.NewError(common.ErrCodeValidationFormat, common.MsgInvalidFormat, common.StatusBadRequest, err.Error())
	}
	return in, false, nil
}

// HandleCreate POST / công khai. Bot điền honeypot nhận 202 và không có gì được lưu
func (h *ReservationHandler) HandleCreate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		in, honeypot, err := h.decode(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if honeypot {
			h.Log(c).WithField("ip", c.IP()).Info("Honeypot bị điền, bỏ qua yêu cầu đặt bàn")
			h.HandleResponseStatus(c, common.StatusAccepted, msgAccepted, nil, nil)
			return nil
		}
		if !in.Complete() {
			h.HandleResponse(c, nil, common.NewValidationError(msgRequired))
			return nil
		}
		if err := h.ValidateInput(in); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		created, err := h.store.Create(c.Context(), in)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		logger.LogCRUD("create", "reservation_request", created.ID.Hex(), c, map[string]interface{}{
			"guestCount": created.GuestCount,
			"source":     created.Source,
		})
		h.HandleResponseStatus(c, common.StatusCreated, msgSubmitted, fiber.Map{
			"id":     created.ID.Hex(),
			"status": created.Status,
		}, nil)
		return nil
	})
}

// HandleList GET / ?page&limit&q&status&dateFrom&dateTo
func (h *ReservationHandler) HandleList(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		result, err := h.store.List(c.Context(), reservationdto.ListQuery{
			Page:     h.QueryPositiveInt(c, "page", 1),
			Limit:    h.QueryPositiveInt(c, "limit", 20),
			Q:        c.Query("q"),
			Status:   c.Query("status"),
			DateFrom: c.Query("dateFrom"),
			DateTo:   c.Query("dateTo"),
		})
		h.HandleResponse(c, result, err)
		return nil
	})
}

// HandleGet GET /:id
func (h *ReservationHandler) HandleGet(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := h.ParseID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		r, err := h.store.GetByID(c.Context(), id)
		h.HandleResponse(c, r, err)
		return nil
	})
}

// HandleUpdateStatus PATCH /:id/status
func (h *ReservationHandler) HandleUpdateStatus(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := h.ParseID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var in reservationdto.StatusInput
		if err := h.ParseRequestBody(c, &in); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		status := strings.TrimSpace(in.Status)
		if status == "" {
			h.HandleResponse(c, nil, common.NewValidationError(msgStatusRequired))
			return nil
		}

		r, err := h.store.UpdateStatus(c.Context(), id, status)
		if err == nil {
			logger.LogAction("reservation_status_changed", c, map[string]interface{}{
				"reservation_id": id.Hex(),
				"status":         status,
			})
		}
		h.HandleResponse(c, r, err)
		return nil
	})
}
