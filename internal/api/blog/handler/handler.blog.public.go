package bloghdl

import (
	blogdto "github.com/doilonvl/salathai-be-demo/internal/api/blog/dto"
	"github.com/doilonvl/salathai-be-demo/internal/api/blog/models"
	"github.com/doilonvl/salathai-be-demo/internal/i18n"

	"github.com/gofiber/fiber/v3"
)

// HandlePublicList GET /public/blogs
func (h *BlogHandler) HandlePublicList(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		i18n.SetVary(c)
		q := blogdto.PublicListQuery{
			Page:  h.QueryPositiveInt(c, "page", 1),
			Limit: queryInt(c, "limit"),
			Tag:   c.Query("tag"),
			Sort:  c.Query("sort"),
		}
		result, err := h.blogs.ListPublic(c.Context(), q)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		locale := i18n.FromRequest(c)
		out, err := viewList(result, func(b *models.Blog) (i18n.Doc, error) {
			return PublicListView(b, locale)
		})
		h.HandleResponse(c, out, err)
		return nil
	})
}

// HandlePublicDetail GET /public/blogs/:slug
func (h *BlogHandler) HandlePublicDetail(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		i18n.SetVary(c)
		locale := i18n.FromRequest(c)
		blog, err := h.blogs.GetPublicBySlug(c.Context(), c.Params("slug"), locale)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		doc, err := PublicDetailView(blog, locale)
		h.HandleResponse(c, doc, err)
		return nil
	})
}

// HandleView POST /public/blogs/:id/view
func (h *BlogHandler) HandleView(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := h.ParseID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		count, err := h.blogs.IncrementViewCount(c.Context(), id)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		h.HandleResponse(c, fiber.Map{"viewCount": count}, nil)
		return nil
	})
}
