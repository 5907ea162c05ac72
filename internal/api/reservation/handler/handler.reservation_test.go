package reservationhdl

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	basemodels "github.com/doilonvl/salathai-be-demo/internal/api/base/models"
	reservationdto "github.com/doilonvl/salathai-be-demo/internal/api/reservation/dto"
	"github.com/doilonvl/salathai-be-demo/internal/api/reservation/models"
	reservationsvc "github.com/doilonvl/salathai-be-demo/internal/api/reservation/service"
	"github.com/doilonvl/salathai-be-demo/internal/common"
	"github.com/doilonvl/salathai-be-demo/internal/global"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeStore dựng bản ghi bằng BuildReservation như service thật
type fakeStore struct {
	items   map[primitive.ObjectID]*models.ReservationRequest
	lastQ   reservationdto.ListQuery
	created int
}

func (f *fakeStore) Create(_ context.Context, in *reservationdto.ReservationInput) (*models.ReservationRequest, error) {
	r, err := reservationsvc.BuildReservation(in)
	if err != nil {
		return nil, err
	}
	r.ID = primitive.NewObjectID()
	f.items[r.ID] = &r
	f.created++
	return &r, nil
}

func (f *fakeStore) List(_ context.Context, q reservationdto.ListQuery) (*basemodels.PaginateResult[models.ReservationRequest], error) {
	f.lastQ = q
	if _, err := reservationsvc.ListFilter(q); err != nil {
		return nil, err
	}
	var items []models.ReservationRequest
	for _, r := range f.items {
		items = append(items, *r)
	}
	return basemodels.NewPaginateResult(items, q.Page, q.Limit, int64(len(items))), nil
}

func (f *fakeStore) GetByID(_ context.Context, id primitive.ObjectID) (*models.ReservationRequest, error) {
	r, ok := f.items[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return r, nil
}

func (f *fakeStore) UpdateStatus(_ context.Context, id primitive.ObjectID, status string) (*models.ReservationRequest, error) {
	if !models.ValidStatus(status) {
		return nil, common.NewValidationError("Invalid status")
	}
	r, ok := f.items[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	r.Status = status
	return r, nil
}

type envelope struct {
	Code    interface{}     `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Details json.RawMessage `json:"details"`
	Status  string          `json:"status"`
}

func setup(t *testing.T) (*fiber.App, *fakeStore) {
	t.Helper()
	global.InitValidator()

	store := &fakeStore{items: map[primitive.ObjectID]*models.ReservationRequest{}}
	h := NewReservationHandler(store)
	app := fiber.New()
	g := app.Group("/reservation-requests")
	g.Post("/", h.HandleCreate)
	g.Get("/", h.HandleList)
	g.Get("/:id", h.HandleGet)
	g.Patch("/:id/status", h.HandleUpdateStatus)
	return app, store
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

const validBody = `{
	"fullName": "Trần Thị B",
	"phoneNumber": "+84 90 123 4567",
	"email": "B@Example.com",
	"guestCount": 2,
	"reservationDate": "2026-11-02",
	"reservationTime": "18:45"
}`

func submit(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, env := send(t, app, "POST", "/reservation-requests", validBody)
	require.Equal(t, 201, resp.StatusCode, env.Message)
	var data map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return data["id"]
}

func TestCreateReservation(t *testing.T) {
	app, store := setup(t)
	resp, env := send(t, app, "POST", "/reservation-requests", validBody)
	require.Equal(t, 201, resp.StatusCode, env.Message)
	assert.Equal(t, "Submitted", env.Message)

	var data map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, models.StatusNew, data["status"])

	id, err := primitive.ObjectIDFromHex(data["id"])
	require.NoError(t, err)
	saved := store.items[id]
	assert.Equal(t, "b@example.com", saved.Email)
	assert.Equal(t, models.SourceWebsite, saved.Source)
}

func TestHoneypot(t *testing.T) {
	app, store := setup(t)
	resp, env := send(t, app, "POST", "/reservation-requests", `{"website": "http://spam.example", "fullName": "<script>"}`)
	assert.Equal(t, 202, resp.StatusCode)
	assert.Equal(t, "Accepted", env.Message)
	assert.Zero(t, store.created)

	// các field khác sai kiểu vẫn nhận 202 vì honeypot được xét trước
	resp, env = send(t, app, "POST", "/reservation-requests", `{"website": "http://spam.example", "fullName": "Bot", "guestCount": "four", "phoneNumber": 12}`)
	assert.Equal(t, 202, resp.StatusCode, env.Message)
	assert.Zero(t, store.created)

	// honeypot không phải chuỗi thì xử lý như bình thường
	resp, env = send(t, app, "POST", "/reservation-requests", `{"website": 1}`)
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, msgRequired, env.Message)

	resp, _ = send(t, app, "POST", "/reservation-requests", `[1, 2]`)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestCreateGuestCountString(t *testing.T) {
	app, store := setup(t)
	body := strings.Replace(validBody, `"guestCount": 2`, `"guestCount": "2"`, 1)
	resp, env := send(t, app, "POST", "/reservation-requests", body)
	require.Equal(t, 201, resp.StatusCode, env.Message)
	require.Equal(t, 1, store.created)
	for _, r := range store.items {
		assert.Equal(t, 2, r.GuestCount)
	}

	body = strings.Replace(validBody, `"guestCount": 2`, `"guestCount": "nhiều"`, 1)
	resp, env = send(t, app, "POST", "/reservation-requests", body)
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, common.MsgInvalidFormat, env.Message)
}

func TestCreateValidation(t *testing.T) {
	app, _ := setup(t)

	resp, env := send(t, app, "POST", "/reservation-requests", `{"fullName": "A"}`)
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, msgRequired, env.Message)

	resp, env = send(t, app, "POST", "/reservation-requests", "")
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, msgRequired, env.Message)

	bad := strings.Replace(validBody, `"18:45"`, `"7pm"`, 1)
	resp, env = send(t, app, "POST", "/reservation-requests", bad)
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, common.MsgValidationError, env.Message)
	assert.Contains(t, string(env.Details), "reservationTime")

	bad = strings.Replace(validBody, `"2026-11-02"`, `"02/11/2026"`, 1)
	resp, env = send(t, app, "POST", "/reservation-requests", bad)
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, "Invalid reservationDate", env.Message)

	bad = strings.Replace(validBody, `"guestCount": 2`, `"guestCount": 0`, 1)
	resp, env = send(t, app, "POST", "/reservation-requests", bad)
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, msgRequired, env.Message)
}

func TestListAndGet(t *testing.T) {
	app, store := setup(t)
	id := submit(t, app)

	resp, env := send(t, app, "GET", "/reservation-requests?q=tran&status=new&dateFrom=2026-11-01&limit=5", "")
	require.Equal(t, 200, resp.StatusCode, env.Message)
	assert.Equal(t, "tran", store.lastQ.Q)
	assert.Equal(t, "2026-11-01", store.lastQ.DateFrom)
	assert.EqualValues(t, 5, store.lastQ.Limit)
	assert.EqualValues(t, 1, store.lastQ.Page)

	resp, env = send(t, app, "GET", "/reservation-requests?status=bogus", "")
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, "Invalid status", env.Message)

	resp, _ = send(t, app, "GET", "/reservation-requests/"+id, "")
	assert.Equal(t, 200, resp.StatusCode)

	resp, env = send(t, app, "GET", "/reservation-requests/"+primitive.NewObjectID().Hex(), "")
	assert.Equal(t, 404, resp.StatusCode)
	assert.Equal(t, "Not found", env.Message)
}

func TestUpdateStatus(t *testing.T) {
	app, _ := setup(t)
	id := submit(t, app)
	path := "/reservation-requests/" + id + "/status"

	resp, env := send(t, app, "PATCH", path, `{"status": " "}`)
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, msgStatusRequired, env.Message)

	resp, env = send(t, app, "PATCH", path, `{"status": "seated"}`)
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, "Invalid status", env.Message)

	resp, env = send(t, app, "PATCH", path, `{"status": "confirmed"}`)
	require.Equal(t, 200, resp.StatusCode, env.Message)
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &doc))
	assert.Equal(t, "confirmed", doc["status"])
}
