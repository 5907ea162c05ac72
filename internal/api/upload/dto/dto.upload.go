// Package uploaddto kết quả trả về của /upload.
package uploaddto

// UploadResult thông tin một file đã lưu
type UploadResult struct {
	URL          string `json:"url"`
	PublicID     string `json:"publicId"`
	Bytes        int64  `json:"bytes"`
	ResourceType string `json:"resource_type"`
	Format       string `json:"format"`
	ContentType  string `json:"contentType"`
	ViewURL      string `json:"view_url"`
	DownloadURL  string `json:"download_url"`
}
