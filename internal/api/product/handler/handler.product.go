// Package producthdl xử lý các endpoint món ăn và nhóm món.
package producthdl

import (
	"context"

	basehdl "github.com/doilonvl/salathai-be-demo/internal/api/base/handler"
	basemodels "github.com/doilonvl/salathai-be-demo/internal/api/base/models"
	productdto "github.com/doilonvl/salathai-be-demo/internal/api/product/dto"
	"github.com/doilonvl/salathai-be-demo/internal/api/product/models"
	"github.com/doilonvl/salathai-be-demo/internal/common"
	"github.com/doilonvl/salathai-be-demo/internal/i18n"
	"github.com/doilonvl/salathai-be-demo/internal/logger"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductStore các thao tác handler cần từ ProductService
type ProductStore interface {
	Create(ctx context.Context, in *productdto.ProductInput) (*models.Product, error)
	Update(ctx context.Context, id primitive.ObjectID, in *productdto.ProductInput) (*models.Product, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, q productdto.ProductListQuery) (*basemodels.PaginateResult[models.Product], error)
}

// ProductHandler xử lý các request món ăn
type ProductHandler struct {
	*basehdl.BaseHandler
	products ProductStore
}

// NewProductHandler tạo instance mới của ProductHandler
func NewProductHandler(products ProductStore) *ProductHandler {
	return &ProductHandler{
		BaseHandler: basehdl.NewBaseHandler("product"),
		products:    products,
	}
}

func (h *ProductHandler) respond(c fiber.Ctx, status int, message string, p *models.Product, err error) {
	if err != nil {
		h.HandleResponse(c, nil, err)
		return
	}
	i18n.SetVary(c)
	doc, err := ProductView(p, i18n.FromRequest(c))
	h.HandleResponseStatus(c, status, message, doc, err)
}

// HandleList GET /products
func (h *ProductHandler) HandleList(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		q := productdto.ProductListQuery{
			Page:        h.QueryPositiveInt(c, "page", 1),
			Limit:       h.QueryPositiveInt(c, "limit", 20),
			CategoryID:  c.Query("categoryId"),
			IsAvailable: h.QueryBool(c, "isAvailable"),
			Q:           c.Query("q"),
		}
		result, err := h.products.List(c.Context(), q)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		i18n.SetVary(c)
		locale := i18n.FromRequest(c)
		docs := make([]i18n.Doc, 0, len(result.Items))
		for i := range result.Items {
			d, err := ProductView(&result.Items[i], locale)
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

// HandleGet GET /products/:id
func (h *ProductHandler) HandleGet(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := h.ParseID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		p, err := h.products.GetByID(c.Context(), id)
		h.respond(c, common.StatusOK, common.MsgSuccess, p, err)
		return nil
	})
}

// HandleCreate POST /products
func (h *ProductHandler) HandleCreate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var in productdto.ProductInput
		err := h.ParseRequestBody(c, &in)
		if err == nil {
			err = ValidateProductCreate(&in)
		}
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		p, err := h.products.Create(c.Context(), &in)
		if err == nil {
			logger.LogCRUD("create", "product", p.ID.Hex(), c, map[string]interface{}{"slug": p.Slug})
		}
		h.respond(c, common.StatusCreated, common.MsgCreated, p, err)
		return nil
	})
}

// HandleUpdate PUT /products/:id
func (h *ProductHandler) HandleUpdate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := h.ParseID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var in productdto.ProductInput
		err = h.ParseRequestBody(c, &in)
		if err == nil {
			err = ValidateProductUpdate(&in)
		}
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		p, err := h.products.Update(c.Context(), id, &in)
		if err == nil {
			logger.LogCRUD("update", "product", id.Hex(), c, nil)
		}
		h.respond(c, common.StatusOK, common.MsgSuccess, p, err)
		return nil
	})
}

// HandleDelete DELETE /products/:id
func (h *ProductHandler) HandleDelete(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := h.ParseID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.products.Delete(c.Context(), id); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		logger.LogCRUD("delete", "product", id.Hex(), c, nil)
		h.HandleResponseStatus(c, common.StatusOK, "Deleted", nil, nil)
		return nil
	})
}
