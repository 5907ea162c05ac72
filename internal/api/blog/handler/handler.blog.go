// Package bloghdl xử lý các endpoint blog quản trị và public.
package bloghdl

import (
	"context"
	"strconv"
	"strings"
	"time"

	basehdl "github.com/doilonvl/salathai-be-demo/internal/api/base/handler"
	basemodels "github.com/doilonvl/salathai-be-demo/internal/api/base/models"
	blogdto "github.com/doilonvl/salathai-be-demo/internal/api/blog/dto"
	"github.com/doilonvl/salathai-be-demo/internal/api/blog/models"
	"github.com/doilonvl/salathai-be-demo/internal/common"
	"github.com/doilonvl/salathai-be-demo/internal/i18n"
	"github.com/doilonvl/salathai-be-demo/internal/logger"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BlogStore các thao tác handler cần từ BlogService
type BlogStore interface {
	Create(ctx context.Context, in *blogdto.BlogInput, actor string) (*models.Blog, error)
	Update(ctx context.Context, id primitive.ObjectID, in *blogdto.BlogInput, actor string) (*models.Blog, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Blog, error)
	SoftDelete(ctx context.Context, id primitive.ObjectID, actor string) (*models.Blog, error)
	Publish(ctx context.Context, id primitive.ObjectID, actor string) (*models.Blog, error)
	Archive(ctx context.Context, id primitive.ObjectID, actor string) (*models.Blog, error)
	Schedule(ctx context.Context, id primitive.ObjectID, at time.Time, actor string) (*models.Blog, error)
	ListAdmin(ctx context.Context, q blogdto.AdminListQuery) (*basemodels.PaginateResult[models.Blog], error)
	ListPublic(ctx context.Context, q blogdto.PublicListQuery) (*basemodels.PaginateResult[models.Blog], error)
	GetPublicBySlug(ctx context.Context, slug string, locale i18n.Locale) (*models.Blog, error)
	IncrementViewCount(ctx context.Context, id primitive.ObjectID) (int64, error)
	PublishScheduled(ctx context.Context, now time.Time) (int64, int64, error)
}

// BlogHandler xử lý các request blog
type BlogHandler struct {
	*basehdl.BaseHandler
	blogs BlogStore
	now   func() time.Time
}

// NewBlogHandler tạo instance mới của BlogHandler
func NewBlogHandler(blogs BlogStore) *BlogHandler {
	return &BlogHandler{
		BaseHandler: basehdl.NewBaseHandler("blog"),
		blogs:       blogs,
		now:         time.Now,
	}
}

// queryInt số nguyên từ query, không parse được thì bằng 0
func queryInt(c fiber.Ctx, key string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(c.Query(key)), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func viewList(p *basemodels.PaginateResult[models.Blog], view func(*models.Blog) (i18n.Doc, error)) (*basemodels.PaginateResult[i18n.Doc], error) {
	docs := make([]i18n.Doc, 0, len(p.Items))
	for i := range p.Items {
		d, err := view(&p.Items[i])
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return basemodels.NewPaginateResult(docs, p.Page, p.Limit, p.Total), nil
}

// respondAdmin trả về một bài viết dạng admin
func (h *BlogHandler) respondAdmin(c fiber.Ctx, status int, message string, blog *models.Blog, err error) {
	if err != nil {
		h.HandleResponse(c, nil, err)
		return
	}
	localize := i18n.Requested(c)
	if localize {
		i18n.SetVary(c)
	}
	doc, err := AdminView(blog, i18n.FromRequest(c), localize)
	h.HandleResponseStatus(c, status, message, doc, err)
}

// HandleList GET /blogs
func (h *BlogHandler) HandleList(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		q := blogdto.AdminListQuery{
			Page:      h.QueryPositiveInt(c, "page", 1),
			Limit:     queryInt(c, "limit"),
			Q:         c.Query("q"),
			Status:    c.Query("status"),
			Tag:       c.Query("tag"),
			Sort:      c.Query("sort"),
			WithCount: c.Query("withCount") != "false",
		}
		result, err := h.blogs.ListAdmin(c.Context(), q)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		localize := i18n.Requested(c)
		if localize {
			i18n.SetVary(c)
		}
		locale := i18n.FromRequest(c)
		out, err := viewList(result, func(b *models.Blog) (i18n.Doc, error) {
			return AdminView(b, locale, localize)
		})
		h.HandleResponse(c, out, err)
		return nil
	})
}

// HandleCreate POST /blogs
func (h *BlogHandler) HandleCreate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		in, err := decodeBlogInput(c.Body())
		if err == nil {
			err = ValidateCreate(in)
		}
		if err == nil {
			err = h.ValidateInput(in)
		}
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		blog, err := h.blogs.Create(c.Context(), in, h.UserID(c))
		if err == nil {
			logger.LogCRUD("create", "blog", blog.ID.Hex(), c, map[string]interface{}{"slug": blog.Slug, "status": blog.Status})
		}
		h.respondAdmin(c, common.StatusCreated, common.MsgCreated, blog, err)
		return nil
	})
}

// HandleGet GET /blogs/:id
func (h *BlogHandler) HandleGet(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := h.ParseID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		blog, err := h.blogs.GetByID(c.Context(), id)
		h.respondAdmin(c, common.StatusOK, common.MsgSuccess, blog, err)
		return nil
	})
}

// HandleUpdate PUT/PATCH /blogs/:id
func (h *BlogHandler) HandleUpdate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := h.ParseID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		in, err := decodeBlogInput(c.Body())
		if err == nil {
			err = ValidateUpdate(in)
		}
		if err == nil {
			err = h.ValidateInput(in)
		}
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		blog, err := h.blogs.Update(c.Context(), id, in, h.UserID(c))
		if err == nil {
			logger.LogCRUD("update", "blog", id.Hex(), c, map[string]interface{}{"status": blog.Status})
		}
		h.respondAdmin(c, common.StatusOK, common.MsgSuccess, blog, err)
		return nil
	})
}

// HandleDelete DELETE /blogs/:id (xóa mềm)
func (h *BlogHandler) HandleDelete(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := h.ParseID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if _, err := h.blogs.SoftDelete(c.Context(), id, h.UserID(c)); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		logger.LogCRUD("delete", "blog", id.Hex(), c, nil)
		h.HandleResponseStatus(c, common.StatusOK, "Deleted successfully", nil, nil)
		return nil
	})
}

// verb dùng chung cho publish / archive
func (h *BlogHandler) verb(c fiber.Ctx, action string, run func(ctx context.Context, id primitive.ObjectID, actor string) (*models.Blog, error)) error {
	return h.SafeHandler(c, func() error {
		id, err := h.ParseID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		blog, err := run(c.Context(), id, h.UserID(c))
		if err == nil {
			logger.LogAction(action, c, map[string]interface{}{"blog_id": id.Hex(), "status": blog.Status})
		}
		h.respondAdmin(c, common.StatusOK, common.MsgSuccess, blog, err)
		return nil
	})
}

// HandlePublish PATCH /blogs/:id/publish
func (h *BlogHandler) HandlePublish(c fiber.Ctx) error {
	return h.verb(c, "blog_publish", h.blogs.Publish)
}

// HandleArchive PATCH /blogs/:id/archive
func (h *BlogHandler) HandleArchive(c fiber.Ctx) error {
	return h.verb(c, "blog_archive", h.blogs.Archive)
}

// HandleSchedule PATCH /blogs/:id/schedule, body {scheduledAt}
func (h *BlogHandler) HandleSchedule(c fiber.Ctx) error {
	var in blogdto.ScheduleInput
	if err := h.ParseRequestBody(c, &in); err != nil {
		// body rỗng cũng coi như thiếu scheduledAt
		if err != common.ErrMissingBody {
			h.HandleResponse(c, nil, err)
			return nil
		}
	}
	if in.ScheduledAt.Invalid {
		h.HandleResponse(c, nil, common.NewValidationError("Invalid scheduledAt"))
		return nil
	}
	if in.ScheduledAt.Value == nil {
		h.HandleResponse(c, nil, common.NewValidationError(msgScheduledAtRequired))
		return nil
	}
	at := *in.ScheduledAt.Value
	return h.verb(c, "blog_schedule", func(ctx context.Context, id primitive.ObjectID, actor string) (*models.Blog, error) {
		return h.blogs.Schedule(ctx, id, at, actor)
	})
}

// HandlePublishScheduled POST /blogs/publish-scheduled
func (h *BlogHandler) HandlePublishScheduled(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		matched, modified, err := h.blogs.PublishScheduled(c.Context(), h.now())
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		logger.LogAction("blog_publish_scheduled", c, map[string]interface{}{"matched": matched, "modified": modified})
		h.HandleResponse(c, fiber.Map{"matched": matched, "modified": modified}, nil)
		return nil
	})
}
