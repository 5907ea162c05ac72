// Package uploadsvc kiểm tra và đẩy file upload lên object storage.
package uploadsvc

import (
	"context"
	"io"
	"mime/multipart"
	"strings"

	uploaddto "github.com/doilonvl/salathai-be-demo/internal/api/upload/dto"
	"github.com/doilonvl/salathai-be-demo/internal/common"
	"github.com/doilonvl/salathai-be-demo/internal/logger"
	"github.com/doilonvl/salathai-be-demo/internal/storage"
	"github.com/doilonvl/salathai-be-demo/internal/utility"

	"github.com/google/uuid"
)

// ObjectStore nơi lưu file, MinioStore ở môi trường thật
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Links(ctx context.Context, key, filename string) (view string, download string, err error)
}

// UploadService store nil nghĩa là chưa cấu hình storage
type UploadService struct {
	store  ObjectStore
	root   string
	suffix func() string
}

// NewUploadService root là STORAGE_ROOT_FOLDER
func NewUploadService(store ObjectStore, root string) *UploadService {
	return &UploadService{
		store:  store,
		root:   root,
		suffix: func() string { return strings.ReplaceAll(uuid.NewString(), "-", "")[:8] },
	}
}

// Upload lưu một file vào <root>/<folder>
func (s *UploadService) Upload(ctx context.Context, folder string, fh *multipart.FileHeader) (*uploaddto.UploadResult, error) {
	if s.store == nil {
		return nil, common.ErrStorageNotConfigured
	}
	if fh == nil {
		return nil, common.ErrNoFileUploaded
	}
	if fh.Size > storage.MaxFileSize {
		return nil, common.WithDetails(common.ErrFileTooLarge, map[string]interface{}{"file": fh.Filename, "limit": utility.FormatBytes(storage.MaxFileSize)})
	}
	kind, err := storage.Classify(fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		return nil, common.WithDetails(err, map[string]interface{}{"file": fh.Filename})
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	key := storage.ObjectKey(s.root, folder, kind, s.suffix())
	url, err := s.store.Put(ctx, key, f, fh.Size, kind.ContentType)
	if err != nil {
		return nil, err
	}
	view, download, err := s.store.Links(ctx, key, kind.Name+"."+kind.Format)
	if err != nil {
		return nil, err
	}
	logger.WithModule("upload").WithFields(map[string]interface{}{
		"key":   key,
		"bytes": fh.Size,
	}).Info("Đã upload file")

	return &uploaddto.UploadResult{
		URL:          url,
		PublicID:     strings.TrimSuffix(key, "."+kind.Format),
		Bytes:        fh.Size,
		ResourceType: kind.ResourceType,
		Format:       kind.Format,
		ContentType:  kind.ContentType,
		ViewURL:      view,
		DownloadURL:  download,
	}, nil
}

// UploadMany kiểm tra số lượng rồi lưu lần lượt, dừng ở file lỗi đầu tiên
func (s *UploadService) UploadMany(ctx context.Context, folder string, files []*multipart.FileHeader) ([]uploaddto.UploadResult, error) {
	if len(files) == 0 {
		return nil, common.ErrNoFileUploaded
	}
	if len(files) > storage.MaxFiles {
		return nil, common.WithDetails(common.ErrTooManyFiles, map[string]interface{}{"limit": storage.MaxFiles})
	}
	items := make([]uploaddto.UploadResult, 0, len(files))
	for _, fh := range files {
		res, err := s.Upload(ctx, folder, fh)
		if err != nil {
			return nil, err
		}
		items = append(items, *res)
	}
	return items, nil
}
