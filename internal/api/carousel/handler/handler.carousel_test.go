package carouselhdl

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	basemodels "github.com/doilonvl/salathai-be-demo/internal/api/base/models"
	carouseldto "github.com/doilonvl/salathai-be-demo/internal/api/carousel/dto"
	"github.com/doilonvl/salathai-be-demo/internal/api/carousel/models"
	"github.com/doilonvl/salathai-be-demo/internal/common"
	"github.com/doilonvl/salathai-be-demo/internal/global"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeStore giữ document dạng bson.M để áp $set giống Mongo
type fakeStore[T any] struct {
	docs []bson.M
}

func (f *fakeStore[T]) decode(m bson.M) (*T, error) {
	raw, err := bson.Marshal(m)
	if err != nil {
		return nil, err
	}
	var out T
	if err := bson.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (f *fakeStore[T]) find(id primitive.ObjectID) bson.M {
	for _, d := range f.docs {
		if d["_id"] == id {
			return d
		}
	}
	return nil
}

func (f *fakeStore[T]) matches(d bson.M, key string, value interface{}, exclude primitive.ObjectID) bool {
	return d[key] == value && d["_id"] != exclude
}

func (f *fakeStore[T]) ExistsWithOrderIndex(_ context.Context, orderIndex int, exclude primitive.ObjectID) (bool, error) {
	for _, d := range f.docs {
		if f.matches(d, "orderIndex", int32(orderIndex), exclude) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore[T]) ExistsPinned(_ context.Context, exclude primitive.ObjectID) (bool, error) {
	for _, d := range f.docs {
		if f.matches(d, "isPinned", true, exclude) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore[T]) List(_ context.Context, q carouseldto.ListQuery) (*basemodels.PaginateResult[T], error) {
	var items []T
	for _, d := range f.docs {
		active, _ := d["isActive"].(bool)
		if q.IsActive != nil && active != *q.IsActive {
			continue
		}
		if q.IsActive == nil && !q.IncludeInactive && !active {
			continue
		}
		item, err := f.decode(d)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return basemodels.NewPaginateResult(items, q.Page, q.Limit, int64(len(items))), nil
}

func (f *fakeStore[T]) GetByID(_ context.Context, id primitive.ObjectID) (*T, error) {
	d := f.find(id)
	if d == nil {
		return nil, common.ErrNotFound
	}
	return f.decode(d)
}

func (f *fakeStore[T]) Create(_ context.Context, doc T) (*T, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	m["_id"] = primitive.NewObjectID()
	f.docs = append(f.docs, m)
	return f.decode(m)
}

func (f *fakeStore[T]) Update(_ context.Context, id primitive.ObjectID, set bson.M) (*T, error) {
	d := f.find(id)
	if d == nil {
		return nil, common.ErrNotFound
	}
	// đi qua bson để kiểu giá trị giống bản ghi đọc từ Mongo
	raw, err := bson.Marshal(set)
	if err != nil {
		return nil, err
	}
	var normalized bson.M
	if err := bson.Unmarshal(raw, &normalized); err != nil {
		return nil, err
	}
	for k, v := range normalized {
		d[k] = v
	}
	return f.decode(d)
}

func (f *fakeStore[T]) Delete(_ context.Context, id primitive.ObjectID) error {
	for i, d := range f.docs {
		if d["_id"] == id {
			f.docs = append(f.docs[:i], f.docs[i+1:]...)
			return nil
		}
	}
	return common.ErrNotFound
}

type envelope struct {
	Code    interface{}     `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Status  string          `json:"status"`
}

func mountTest(app *fiber.App, prefix string, h interface {
	HandleList(fiber.Ctx) error
	HandleAdminList(fiber.Ctx) error
	HandleGet(fiber.Ctx) error
	HandleCreate(fiber.Ctx) error
	HandleUpdate(fiber.Ctx) error
	HandleDelete(fiber.Ctx) error
}) {
	g := app.Group(prefix)
	g.Get("/", h.HandleList)
	g.Get("/admin", h.HandleAdminList)
	g.Get("/:id", h.HandleGet)
	g.Post("/", h.HandleCreate)
	g.Put("/:id", h.HandleUpdate)
	g.Delete("/:id", h.HandleDelete)
}

func setup(t *testing.T) *fiber.App {
	t.Helper()
	global.InitValidator()

	images := &fakeStore[models.MarqueeImage]{}
	app := fiber.New()
	mountTest(app, "/landing-menu", NewLandingMenuHandler(&fakeStore[models.LandingMenuImage]{}))
	mountTest(app, "/marquee-images", NewMarqueeImageHandler(images, images))
	mountTest(app, "/marquee-slides", NewMarqueeSlideHandler(&fakeStore[models.MarqueeSlide]{}))
	return app
}

func send(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	return resp, env
}

func decode(t *testing.T, raw json.RawMessage) map[string]interface{} {
	t.Helper()
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &doc))
	return doc
}

func TestCreateRequiresImageAndOrder(t *testing.T) {
	app := setup(t)
	for _, prefix := range []string{"/landing-menu", "/marquee-images", "/marquee-slides"} {
		resp, env := send(t, app, "POST", prefix, `{"imageUrl": "https://cdn.example.com/a.jpg"}`)
		assert.Equal(t, 400, resp.StatusCode, prefix)
		assert.Equal(t, msgRequired, env.Message, prefix)
	}
}

func TestOrderIndexUnique(t *testing.T) {
	app := setup(t)
	resp, env := send(t, app, "POST", "/landing-menu", `{"imageUrl": "a.jpg", "orderIndex": 0, "altText_i18n": {"vi": "Món chính", "en": "Mains"}}`)
	require.Equal(t, 201, resp.StatusCode, env.Message)
	first := decode(t, env.Data)
	assert.Equal(t, true, first["isActive"])
	assert.Equal(t, "Món chính", first["altText"])

	resp, env = send(t, app, "POST", "/landing-menu", `{"imageUrl": "b.jpg", "orderIndex": 0}`)
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, "orderIndex already exists, choose another", env.Message)

	// cập nhật chính nó với cùng orderIndex thì hợp lệ
	id := first["id"].(string)
	resp, env = send(t, app, "PUT", "/landing-menu/"+id, `{"orderIndex": 0, "imageUrl": "c.jpg"}`)
	require.Equal(t, 200, resp.StatusCode, env.Message)
	assert.Equal(t, "c.jpg", decode(t, env.Data)["imageUrl"])
}

func TestSinglePinnedImage(t *testing.T) {
	app := setup(t)
	resp, env := send(t, app, "POST", "/marquee-images", `{"imageUrl": "a.jpg", "orderIndex": 1, "isPinned": true}`)
	require.Equal(t, 201, resp.StatusCode, env.Message)

	resp, env = send(t, app, "POST", "/marquee-images", `{"imageUrl": "b.jpg", "orderIndex": 2, "isPinned": true}`)
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, "There is already a pinned image", env.Message)

	resp, env = send(t, app, "POST", "/marquee-images", `{"imageUrl": "b.jpg", "orderIndex": 2}`)
	require.Equal(t, 201, resp.StatusCode, env.Message)
	second := decode(t, env.Data)["id"].(string)

	resp, env = send(t, app, "PUT", "/marquee-images/"+second, `{"isPinned": true}`)
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, "There is already a pinned image", env.Message)
}

func TestPublicListHidesInactive(t *testing.T) {
	app := setup(t)
	send(t, app, "POST", "/marquee-slides", `{"imageUrl": "a.jpg", "orderIndex": 0, "tag_i18n": {"vi": "Mới", "en": "New"}}`)
	send(t, app, "POST", "/marquee-slides", `{"imageUrl": "b.jpg", "orderIndex": 1, "isActive": false}`)

	resp, env := send(t, app, "GET", "/marquee-slides?locale=en", "")
	require.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Vary"), "Accept-Language")
	page := decode(t, env.Data)
	assert.EqualValues(t, 1, page["total"])
	item := page["items"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "New", item["tag"])
	assert.Equal(t, "", item["text"])

	_, env = send(t, app, "GET", "/marquee-slides?includeInactive=true", "")
	assert.EqualValues(t, 2, decode(t, env.Data)["total"])

	_, env = send(t, app, "GET", "/marquee-slides/admin?isActive=false", "")
	assert.EqualValues(t, 1, decode(t, env.Data)["total"])
}

func TestGetAndDelete(t *testing.T) {
	app := setup(t)
	_, env := send(t, app, "POST", "/landing-menu", `{"imageUrl": "a.jpg", "orderIndex": 3}`)
	id := decode(t, env.Data)["id"].(string)

	resp, _ := send(t, app, "GET", "/landing-menu/"+id, "")
	assert.Equal(t, 200, resp.StatusCode)

	resp, env = send(t, app, "DELETE", "/landing-menu/"+id, "")
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "Deleted", env.Message)

	resp, env = send(t, app, "GET", "/landing-menu/"+id, "")
	assert.Equal(t, 404, resp.StatusCode)
	assert.Equal(t, "Not found", env.Message)

	resp, env = send(t, app, "GET", "/landing-menu/nope", "")
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, "Invalid id", env.Message)
}

func TestNegativeOrderIndexRejected(t *testing.T) {
	app := setup(t)
	resp, env := send(t, app, "POST", "/marquee-slides", `{"imageUrl": "a.jpg", "orderIndex": -1}`)
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, common.MsgValidationError, env.Message)
}
