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

// CategoryStore các thao tác handler cần từ CategoryService
type CategoryStore interface {
	Create(ctx context.Context, in *productdto.CategoryInput) (*models.ProductCategory, error)
	Update(ctx context.Context, id primitive.ObjectID, in *productdto.CategoryInput) (*models.ProductCategory, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.ProductCategory, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, page, limit int64) (*basemodels.PaginateResult[models.ProductCategory], error)
}

// CategoryHandler xử lý các request nhóm món
type CategoryHandler struct {
	*basehdl.BaseHandler
	categories CategoryStore
}

// NewCategoryHandler tạo instance mới của CategoryHandler
func NewCategoryHandler(categories CategoryStore) *CategoryHandler {
	return &CategoryHandler{
		BaseHandler: basehdl.NewBaseHandler("product_category"),
		categories:  categories,
	}
}

func (h *CategoryHandler) respond(c fiber.Ctx, status int, message string, cat *models.ProductCategory, err error) {
	if err != nil {
		h.HandleResponse(c, nil, err)
		return
	}
	i18n.SetVary(c)
	doc, err := CategoryView(cat, i18n.FromRequest(c))
	h.HandleResponseStatus(c, status, message, doc, err)
}

// HandleList GET /product-categories
func (h *CategoryHandler) HandleList(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		result, err := h.categories.List(c.Context(), h.QueryPositiveInt(c, "page", 1), h.QueryPositiveInt(c, "limit", 20))
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		i18n.SetVary(c)
		locale := i18n.FromRequest(c)
		docs := make([]i18n.Doc, 0, len(result.Items))
		for i := range result.Items {
			d, err := CategoryView(&result.Items[i], locale)
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

// HandleGet GET /product-categories/:id
func (h *CategoryHandler) HandleGet(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := h.ParseID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		cat, err := h.categories.GetByID(c.Context(), id)
		h.respond(c, common.StatusOK, common.MsgSuccess, cat, err)
		return nil
	})
}

// HandleCreate POST /product-categories
func (h *CategoryHandler) HandleCreate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var in productdto.CategoryInput
		err := h.ParseRequestBody(c, &in)
		if err == nil {
			err = ValidateCategoryCreate(&in)
		}
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		cat, err := h.categories.Create(c.Context(), &in)
		if err == nil {
			logger.LogCRUD("create", "product_category", cat.ID.Hex(), c, map[string]interface{}{"key": cat.Key})
		}
		h.respond(c, common.StatusCreated, common.MsgCreated, cat, err)
		return nil
	})
}

// HandleUpdate PUT /product-categories/:id
func (h *CategoryHandler) HandleUpdate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := h.ParseID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var in productdto.CategoryInput
		if err := h.ParseRequestBody(c, &in); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		cat, err := h.categories.Update(c.Context(), id, &in)
		if err == nil {
			logger.LogCRUD("update", "product_category", id.Hex(), c, nil)
		}
		h.respond(c, common.StatusOK, common.MsgSuccess, cat, err)
		return nil
	})
}

// HandleDelete DELETE /product-categories/:id
func (h *CategoryHandler) HandleDelete(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := h.ParseID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.categories.Delete(c.Context(), id); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		logger.LogCRUD("delete", "product_category", id.Hex(), c, nil)
		h.HandleResponseStatus(c, common.StatusOK, "Deleted", nil, nil)
		return nil
	})
}
