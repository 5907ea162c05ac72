package uploadhdl

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"testing"

	uploadsvc "github.com/doilonvl/salathai-be-demo/internal/api/upload/service"
	"github.com/doilonvl/salathai-be-demo/internal/storage"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore giữ object trong map
type memStore struct {
	objects map[string][]byte
	types   map[string]string
}

func (m *memStore) Put(_ context.Context, key string, r io.Reader, _ int64, contentType string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.objects[key] = data
	m.types[key] = contentType
	return storage.PublicURL("https://media.salathai.vn", "media", key), nil
}

// Links ghi lại key để test kiểm tra link trỏ đúng object đã lưu
func (m *memStore) Links(_ context.Context, key, filename string) (string, string, error) {
	if _, ok := m.objects[key]; !ok {
		return "", "", io.ErrUnexpectedEOF
	}
	return "view:" + key, "download:" + key + ":" + filename, nil
}

type part struct {
	field, name, mime, body string
}

func multipartBody(t *testing.T, folder string, parts ...part) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if folder != "" {
		require.NoError(t, w.WriteField("folder", folder))
	}
	for _, p := range parts {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", `form-data; name="`+p.field+`"; filename="`+p.name+`"`)
		h.Set("Content-Type", p.mime)
		pw, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = pw.Write([]byte(p.body))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

type envelope struct {
	Code    interface{}     `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Status  string          `json:"status"`
}

func setup() (*fiber.App, *memStore) {
	store := &memStore{objects: map[string][]byte{}, types: map[string]string{}}
	h := NewUploadHandler(uploadsvc.NewUploadService(store, "salathai"))
	app := fiber.New()
	app.Post("/upload", h.HandleSingle)
	app.Post("/upload/multiple", h.HandleMultiple)
	return app, store
}

func post(t *testing.T, app *fiber.App, path string, body *bytes.Buffer, contentType string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest("POST", path, body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	return resp.StatusCode, env
}

func TestUploadSingle(t *testing.T) {
	app, store := setup()
	body, ct := multipartBody(t, "blog/covers", part{"file", "Pad Thai.JPG", "image/jpeg", "jpeg-bytes"})

	status, env := post(t, app, "/upload", body, ct)
	require.Equal(t, 200, status, env.Message)

	var res map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &res))
	publicID := res["publicId"].(string)
	assert.Regexp(t, `^salathai/blog/covers/pad-thai-[0-9a-f]{8}$`, publicID)
	assert.Equal(t, "jpg", res["format"])
	assert.Equal(t, "image", res["resource_type"])
	assert.Equal(t, "image/jpeg", res["contentType"])
	assert.EqualValues(t, len("jpeg-bytes"), res["bytes"])
	assert.Equal(t, "https://media.salathai.vn/media/upload/"+publicID+".jpg", res["url"])
	assert.Equal(t, "view:"+publicID+".jpg", res["view_url"])
	assert.Equal(t, "download:"+publicID+".jpg:pad-thai.jpg", res["download_url"])

	assert.Equal(t, []byte("jpeg-bytes"), store.objects[publicID+".jpg"])
	assert.Equal(t, "image/jpeg", store.types[publicID+".jpg"])
}

func TestUploadSingleErrors(t *testing.T) {
	app, _ := setup()

	body, ct := multipartBody(t, "", part{"other", "a.png", "image/png", "x"})
	status, env := post(t, app, "/upload", body, ct)
	assert.Equal(t, 400, status)
	assert.Equal(t, "No file uploaded", env.Message)

	body, ct = multipartBody(t, "", part{"file", "notes.txt", "text/plain", "x"})
	status, env = post(t, app, "/upload", body, ct)
	assert.Equal(t, 400, status)
	assert.Equal(t, "Unsupported file format", env.Message)
}

func TestUploadMultiple(t *testing.T) {
	app, store := setup()
	body, ct := multipartBody(t, "",
		part{"files", "menu.pdf", "application/pdf", "%PDF"},
		part{"files", "intro.mp4", "video/mp4", "mp4"},
	)
	status, env := post(t, app, "/upload/multiple", body, ct)
	require.Equal(t, 200, status, env.Message)

	var data struct {
		Items []map[string]interface{} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data.Items, 2)
	assert.Equal(t, "raw", data.Items[0]["resource_type"])
	assert.Equal(t, "video", data.Items[1]["resource_type"])
	assert.Contains(t, data.Items[0]["publicId"], "salathai/uploads/menu-")
	assert.Len(t, store.objects, 2)

	body, ct = multipartBody(t, "", part{"file", "a.png", "image/png", "x"})
	status, env = post(t, app, "/upload/multiple", body, ct)
	assert.Equal(t, 400, status)
	assert.Equal(t, "No file uploaded", env.Message)
}
