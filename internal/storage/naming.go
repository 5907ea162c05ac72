package storage

import (
	"path"
	"regexp"
	"strings"

	"github.com/doilonvl/salathai-be-demo/internal/common"
)

const uploadSegment = "upload"

// Giới hạn upload
const (
	MaxFileSize = 20 << 20
	MaxFiles    = 50
)

// Loại tài nguyên
const (
	ResourceImage = "image"
	ResourceRaw   = "raw"
	ResourceVideo = "video"
)

var imageFormats = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"webp": "image/webp",
	"gif":  "image/gif",
}

var (
	spaces        = regexp.MustCompile(`\s+`)
	nameInvalid   = regexp.MustCompile(`[^a-z0-9_-]`)
	folderInvalid = regexp.MustCompile(`[^a-zA-Z0-9/_-]`)
)

// SanitizeName chữ thường, khoảng trắng thành -, bỏ ký tự lạ. Rỗng thì "file"
func SanitizeName(name string) string {
	s := spaces.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
	s = nameInvalid.ReplaceAllString(s, "")
	if s == "" {
		return "file"
	}
	return s
}

// SanitizeFolder bỏ / ở hai đầu và "..", ký tự lạ thành -. Rỗng thì "uploads"
func SanitizeFolder(folder string) string {
	s := strings.Trim(strings.TrimSpace(folder), "/")
	s = strings.Trim(strings.ReplaceAll(s, "..", ""), "/")
	s = folderInvalid.ReplaceAllString(s, "-")
	if s == "" {
		return "uploads"
	}
	return s
}

// FileKind kết quả phân loại một file upload
type FileKind struct {
	Name         string // tên đã sanitize, không có đuôi
	Format       string
	ResourceType string
	ContentType  string
}

// Classify theo mime và đuôi file: pdf, mp4 hoặc ảnh jpg/jpeg/png/webp/gif
func Classify(filename, mime string) (FileKind, error) {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
	mime = strings.ToLower(strings.TrimSpace(mime))
	kind := FileKind{Name: SanitizeName(strings.TrimSuffix(path.Base(filename), path.Ext(filename)))}

	switch {
	case mime == "application/pdf" || ext == "pdf":
		if ext != "" && ext != "pdf" {
			return FileKind{}, common.ErrUnsupportedFileFormat
		}
		kind.Format, kind.ResourceType, kind.ContentType = "pdf", ResourceRaw, "application/pdf"
	case mime == "video/mp4" || ext == "mp4":
		if ext != "" && ext != "mp4" {
			return FileKind{}, common.ErrUnsupportedFileFormat
		}
		kind.Format, kind.ResourceType, kind.ContentType = "mp4", ResourceVideo, "video/mp4"
	default:
		ct, ok := imageFormats[ext]
		if !ok {
			return FileKind{}, common.ErrUnsupportedFileFormat
		}
		kind.Format, kind.ResourceType, kind.ContentType = ext, ResourceImage, ct
	}
	return kind, nil
}

// ObjectKey <root>/<folder>/<name>-<suffix>.<format>
func ObjectKey(root, folder string, kind FileKind, suffix string) string {
	parts := []string{}
	if r := strings.Trim(strings.TrimSpace(root), "/"); r != "" {
		parts = append(parts, r)
	}
	parts = append(parts, SanitizeFolder(folder), kind.Name+"-"+suffix+"."+kind.Format)
	return strings.Join(parts, "/")
}

// InlineDisposition Content-Disposition của link xem
func InlineDisposition() string {
	return "inline"
}

// AttachmentDisposition Content-Disposition của link tải, filename đã sanitize nên không cần escape
func AttachmentDisposition(filename string) string {
	return `attachment; filename="` + filename + `"`
}
