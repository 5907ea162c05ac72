// Package uploadhdl xử lý POST /upload và /upload/multiple (multipart).
package uploadhdl

import (
	"context"
	"mime/multipart"

	basehdl "github.com/doilonvl/salathai-be-demo/internal/api/base/handler"
	uploaddto "github.com/doilonvl/salathai-be-demo/internal/api/upload/dto"
	"github.com/doilonvl/salathai-be-demo/internal/common"
	"github.com/doilonvl/salathai-be-demo/internal/logger"

	"github.com/gofiber/fiber/v3"
)

// Uploader các thao tác handler cần từ UploadService
type Uploader interface {
	Upload(ctx context.Context, folder string, fh *multipart.FileHeader) (*uploaddto.UploadResult, error)
	UploadMany(ctx context.Context, folder string, files []*multipart.FileHeader) ([]uploaddto.UploadResult, error)
}

// UploadHandler handler upload file
type UploadHandler struct {
	*basehdl.BaseHandler
	uploader Uploader
}

// NewUploadHandler tạo handler
func NewUploadHandler(uploader Uploader) *UploadHandler {
	return &UploadHandler{BaseHandler: basehdl.NewBaseHandler("upload"), uploader: uploader}
}

// folder lấy từ form trước, không có thì query
func folder(c fiber.Ctx) string {
	if f := c.FormValue("folder"); f != "" {
		return f
	}
	return c.Query("folder")
}

// HandleSingle field "file"
func (h *UploadHandler) HandleSingle(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		fh, err := c.FormFile("file")
		if err != nil {
			h.HandleResponse(c, nil, common.ErrNoFileUploaded)
			return nil
		}
		res, err := h.uploader.Upload(c.Context(), folder(c), fh)
		if err == nil {
			logger.LogAction("upload", c, map[string]interface{}{"publicId": res.PublicID, "bytes": res.Bytes})
		}
		h.HandleResponse(c, res, err)
		return nil
	})
}

// HandleMultiple field "files", tối đa 50 file
func (h *UploadHandler) HandleMultiple(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		form, err := c.MultipartForm()
		if err != nil {
			h.HandleResponse(c, nil, common.ErrNoFileUploaded)
			return nil
		}
		items, err := h.uploader.UploadMany(c.Context(), folder(c), form.File["files"])
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		logger.LogAction("upload_multiple", c, map[string]interface{}{"count": len(items)})
		h.HandleResponse(c, fiber.Map{"items": items}, nil)
		return nil
	})
}
