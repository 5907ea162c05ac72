// Package carouselhdl xử lý CRUD các carousel: /landing-menu, /marquee-images, /marquee-slides.
package carouselhdl

import (
	"context"

	basehdl "github.com/doilonvl/salathai-be-demo/internal/api/base/handler"
	basemodels "github.com/doilonvl/salathai-be-demo/internal/api/base/models"
	carouseldto "github.com/doilonvl/salathai-be-demo/internal/api/carousel/dto"
	"github.com/doilonvl/salathai-be-demo/internal/api/carousel/models"
	"github.com/doilonvl/salathai-be-demo/internal/common"
	"github.com/doilonvl/salathai-be-demo/internal/i18n"
	"github.com/doilonvl/salathai-be-demo/internal/logger"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const msgRequired = "imageUrl and orderIndex are required"

// Store các thao tác handler cần từ OrderedService
type Store[T any] interface {
	ExistsWithOrderIndex(ctx context.Context, orderIndex int, exclude primitive.ObjectID) (bool, error)
	List(ctx context.Context, q carouseldto.ListQuery) (*basemodels.PaginateResult[T], error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*T, error)
	Create(ctx context.Context, doc T) (*T, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*T, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// PinChecker chỉ có ở marquee-images
type PinChecker interface {
	ExistsPinned(ctx context.Context, exclude primitive.ObjectID) (bool, error)
}

// Form body của một loại carousel, F là struct dto, T là model
type Form[T any, F any] interface {
	*F
	Order() *int
	Pinned() bool
	Complete() bool
	ToModel() T
	Changes() bson.M
}

// OrderedHandler handler dùng chung cho các collection sắp theo orderIndex
type OrderedHandler[T any, F any, P Form[T, F]] struct {
	*basehdl.BaseHandler
	store    Store[T]
	pins     PinChecker
	resource string
	fields   []string
}

type (
	LandingMenuHandler  = OrderedHandler[models.LandingMenuImage, carouseldto.LandingMenuInput, *carouseldto.LandingMenuInput]
	MarqueeImageHandler = OrderedHandler[models.MarqueeImage, carouseldto.MarqueeImageInput, *carouseldto.MarqueeImageInput]
	MarqueeSlideHandler = OrderedHandler[models.MarqueeSlide, carouseldto.MarqueeSlideInput, *carouseldto.MarqueeSlideInput]
)

// NewLandingMenuHandler handler cho /landing-menu
func NewLandingMenuHandler(store Store[models.LandingMenuImage]) *LandingMenuHandler {
	return &LandingMenuHandler{BaseHandler: basehdl.NewBaseHandler("landing_menu"), store: store, resource: "landing_menu_image", fields: []string{"altText"}}
}

// NewMarqueeImageHandler handler cho /marquee-images
func NewMarqueeImageHandler(store Store[models.MarqueeImage], pins PinChecker) *MarqueeImageHandler {
	return &MarqueeImageHandler{BaseHandler: basehdl.NewBaseHandler("marquee_image"), store: store, pins: pins, resource: "marquee_image", fields: []string{"altText"}}
}

// NewMarqueeSlideHandler handler cho /marquee-slides
func NewMarqueeSlideHandler(store Store[models.MarqueeSlide]) *MarqueeSlideHandler {
	return &MarqueeSlideHandler{BaseHandler: basehdl.NewBaseHandler("marquee_slide"), store: store, resource: "marquee_slide", fields: []string{"tag", "text"}}
}

func (h *OrderedHandler[T, F, P]) view(c fiber.Ctx, doc *T) (i18n.Doc, error) {
	d, err := i18n.ToDoc(doc)
	if err != nil {
		return nil, err
	}
	return i18n.Localize(d, h.fields, i18n.FromRequest(c)), nil
}

func (h *OrderedHandler[T, F, P]) respond(c fiber.Ctx, status int, message string, doc *T, err error) {
	if err != nil {
		h.HandleResponse(c, nil, err)
		return
	}
	i18n.SetVary(c)
	out, err := h.view(c, doc)
	h.HandleResponseStatus(c, status, message, out, err)
}

func (h *OrderedHandler[T, F, P]) list(c fiber.Ctx, q carouseldto.ListQuery) error {
	return h.SafeHandler(c, func() error {
		result, err := h.store.List(c.Context(), q)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		i18n.SetVary(c)
		docs := make([]i18n.Doc, 0, len(result.Items))
		for i := range result.Items {
			d, err := h.view(c, &result.Items[i])
			if err != nil {
				h.HandleResponse(c, nil, err)
				return nil
			}
			docs = append(docs, d)
		}
		h.HandleResponse(c, basemodels.NewPaginateResult(docs, result.Page, result.Limit, result.Total), nil)
		return nil
	})
}

// HandleList GET / công khai, chỉ bản ghi đang bật trừ khi ?includeInactive=true
func (h *OrderedHandler[T, F, P]) HandleList(c fiber.Ctx) error {
	return h.list(c, carouseldto.ListQuery{
		IncludeInactive: c.Query("includeInactive") == "true",
		Page:            h.QueryPositiveInt(c, "page", 1),
		Limit:           h.QueryPositiveInt(c, "limit", 20),
	})
}

// HandleAdminList GET /admin, lọc ?isActive=true|false
func (h *OrderedHandler[T, F, P]) HandleAdminList(c fiber.Ctx) error {
	return h.list(c, carouseldto.ListQuery{
		IncludeInactive: true,
		IsActive:        h.QueryBool(c, "isActive"),
		Page:            h.QueryPositiveInt(c, "page", 1),
		Limit:           h.QueryPositiveInt(c, "limit", 20),
	})
}

// HandleGet GET /:id
func (h *OrderedHandler[T, F, P]) HandleGet(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := h.ParseID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		doc, err := h.store.GetByID(c.Context(), id)
		h.respond(c, common.StatusOK, common.MsgSuccess, doc, err)
		return nil
	})
}

// guard kiểm tra orderIndex và ảnh ghim trước khi ghi
func (h *OrderedHandler[T, F, P]) guard(ctx context.Context, in P, exclude primitive.ObjectID) error {
	if order := in.Order(); order != nil {
		taken, err := h.store.ExistsWithOrderIndex(ctx, *order, exclude)
		if err != nil {
			return err
		}
		if taken {
			return common.ErrOrderIndexExists
		}
	}
	if in.Pinned() && h.pins != nil {
		pinned, err := h.pins.ExistsPinned(ctx, exclude)
		if err != nil {
			return err
		}
		if pinned {
			return common.ErrPinnedExists
		}
	}
	return nil
}

// HandleCreate POST /
func (h *OrderedHandler[T, F, P]) HandleCreate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		in := P(new(F))
		err := h.ParseRequestBody(c, in)
		if err == nil && !in.Complete() {
			err = common.NewValidationError(msgRequired)
		}
		if err == nil {
			err = h.guard(c.Context(), in, primitive.NilObjectID)
		}
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		doc, err := h.store.Create(c.Context(), in.ToModel())
		if err == nil {
			logger.LogCRUD("create", h.resource, "", c, map[string]interface{}{"orderIndex": *in.Order()})
		}
		h.respond(c, common.StatusCreated, common.MsgCreated, doc, err)
		return nil
	})
}

// HandleUpdate PUT /:id
func (h *OrderedHandler[T, F, P]) HandleUpdate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := h.ParseID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		in := P(new(F))
		err = h.ParseRequestBody(c, in)
		if err == nil {
			err = h.guard(c.Context(), in, id)
		}
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		doc, err := h.store.Update(c.Context(), id, in.Changes())
		if err == nil {
			logger.LogCRUD("update", h.resource, id.Hex(), c, nil)
		}
		h.respond(c, common.StatusOK, common.MsgSuccess, doc, err)
		return nil
	})
}

// HandleDelete DELETE /:id
func (h *OrderedHandler[T, F, P]) HandleDelete(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := h.ParseID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.store.Delete(c.Context(), id); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		logger.LogCRUD("delete", h.resource, id.Hex(), c, nil)
		h.HandleResponseStatus(c, common.StatusOK, "Deleted", nil, nil)
		return nil
	})
}
