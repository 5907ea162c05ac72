package blogsvc

import (
	"encoding/json"
	"testing"
	"time"

	blogdto "github.com/doilonvl/salathai-be-demo/internal/api/blog/dto"
	"github.com/doilonvl/salathai-be-demo/internal/api/blog/models"
	"github.com/doilonvl/salathai-be-demo/internal/common"
	"github.com/doilonvl/salathai-be-demo/internal/i18n"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const viDoc = `{"type":"doc","content":[{"type":"heading","attrs":{"level":2},"content":[{"type":"text","text":"Món chính"}]},{"type":"paragraph","content":[{"type":"text","text":"Cà ri xanh"}]}]}`
const enDoc = `{"type":"doc","content":[{"type":"heading","attrs":{"level":2},"content":[{"type":"text","text":"Main dishes"}]}]}`

func strPtr(s string) *string { return &s }

func baseInput() *blogdto.BlogInput {
	return &blogdto.BlogInput{
		SlugI18n: &i18n.Text{Vi: "Món Ăn Ngon", En: "Tasty Food"},
		Title:    &i18n.Text{Vi: " Món ăn ngon ", En: "Tasty food"},
		Content:  &blogdto.ContentInput{Vi: json.RawMessage(viDoc), En: json.RawMessage(enDoc)},
	}
}

func TestBuildBlog(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	actor := primitive.NewObjectID()

	blog, err := BuildBlog(baseInput(), actor.Hex(), now)
	require.NoError(t, err)

	assert.Equal(t, "mon-an-ngon", blog.SlugI18n.Vi)
	assert.Equal(t, "tasty-food", blog.SlugI18n.En)
	assert.Equal(t, "mon-an-ngon", blog.Slug, "slug mặc định theo slug_i18n.vi")
	assert.Equal(t, "Món ăn ngon", blog.Title.Vi)
	assert.Equal(t, models.StatusDraft, blog.Status)
	assert.Nil(t, blog.PublishedAt)
	assert.Equal(t, models.DefaultRobots(), blog.Robots)
	assert.Equal(t, []string{}, blog.Tags)
	assert.Equal(t, []models.GalleryItem{}, blog.Gallery)

	require.Len(t, blog.Toc.Vi, 1)
	assert.Equal(t, "mon-chinh", blog.Toc.Vi[0].ID)
	assert.Equal(t, "main-dishes", blog.Toc.En[0].ID)
	assert.Equal(t, "Món chính Cà ri xanh", blog.PlainText.Vi)
	assert.Equal(t, 1, blog.ReadingTimeMinutes)

	require.NotNil(t, blog.CreatedBy)
	assert.Equal(t, actor, *blog.CreatedBy)
	assert.Equal(t, actor, *blog.UpdatedBy)
}

func TestBuildBlogSlugAndStatus(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	in := baseInput()
	in.Slug = strPtr("  Custom Slug!! ")
	in.Status = strPtr(models.StatusPublished)
	blog, err := BuildBlog(in, "", now)
	require.NoError(t, err)
	assert.Equal(t, "custom-slug", blog.Slug)
	assert.Equal(t, now, *blog.PublishedAt)
	assert.Nil(t, blog.CreatedBy)

	in = baseInput()
	in.SlugI18n = &i18n.Text{Vi: "!!!", En: "ok"}
	_, err = BuildBlog(in, "", now)
	assert.ErrorIs(t, err, ErrSlugRequired)

	in = baseInput()
	in.Status = strPtr(models.StatusScheduled)
	_, err = BuildBlog(in, "", now)
	assert.ErrorIs(t, err, common.ErrScheduledAtRequired)
}

func TestBuildUpdate(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	published := now.Add(-time.Hour)
	existing := &models.Blog{
		Status:      models.StatusPublished,
		PublishedAt: &published,
		Content: &models.Content{
			Vi: map[string]interface{}{"type": "doc", "content": []interface{}{map[string]interface{}{"type": "text", "text": "cũ"}}},
			En: map[string]interface{}{"type": "doc", "content": []interface{}{map[string]interface{}{"type": "text", "text": "old"}}},
		},
	}

	t.Run("chỉ đổi title thì không tính lại field dẫn xuất", func(t *testing.T) {
		set, err := BuildUpdate(&blogdto.BlogInput{Title: &i18n.Text{Vi: "Mới"}}, existing, "", now)
		require.NoError(t, err)
		assert.Equal(t, i18n.Text{Vi: "Mới"}, set["title_i18n"])
		assert.NotContains(t, set, "content_i18n")
		assert.NotContains(t, set, "toc_i18n")
		assert.Equal(t, models.StatusPublished, set["status"])
		assert.Equal(t, &published, set["publishedAt"])
	})

	t.Run("gộp nội dung theo locale", func(t *testing.T) {
		set, err := BuildUpdate(&blogdto.BlogInput{
			Content: &blogdto.ContentInput{Vi: json.RawMessage(viDoc), En: json.RawMessage("null")},
		}, existing, "", now)
		require.NoError(t, err)
		content := set["content_i18n"].(models.Content)
		assert.Equal(t, "doc", content.Vi["type"])
		assert.Equal(t, existing.Content.En, content.En)
		plain := set["plainText_i18n"].(i18n.Text)
		assert.Equal(t, "Món chính Cà ri xanh", plain.Vi)
		assert.Equal(t, "old", plain.En)
	})

	t.Run("slug_i18n rỗng sau chuẩn hóa", func(t *testing.T) {
		_, err := BuildUpdate(&blogdto.BlogInput{SlugI18n: &i18n.Text{Vi: "a", En: "  "}}, existing, "", now)
		assert.ErrorIs(t, err, ErrSlugRequired)
	})

	t.Run("về draft xóa publishedAt", func(t *testing.T) {
		set, err := BuildUpdate(&blogdto.BlogInput{Status: strPtr(models.StatusDraft)}, existing, "", now)
		require.NoError(t, err)
		assert.Nil(t, set["publishedAt"])
	})
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, int64(20), ClampLimit(0))
	assert.Equal(t, int64(1), ClampLimit(-5))
	assert.Equal(t, int64(50), ClampLimit(500))
	assert.Equal(t, int64(7), ClampLimit(7))
}

func TestParseSort(t *testing.T) {
	assert.Equal(t, bson.D{{Key: "publishedAt", Value: -1}}, ParseSort("-publishedAt", AdminSortFields, DefaultAdminSort))
	assert.Equal(t, bson.D{{Key: "sortOrder", Value: 1}}, ParseSort("sortOrder", AdminSortFields, DefaultAdminSort))
	assert.Equal(t, bson.D{{Key: "updatedAt", Value: -1}}, ParseSort("-title", AdminSortFields, DefaultAdminSort))
	assert.Equal(t, bson.D{{Key: "publishedAt", Value: -1}}, ParseSort("updatedAt", PublicSortFields, DefaultPublicSort))
}

func TestAdminFilter(t *testing.T) {
	f, err := AdminFilter(blogdto.AdminListQuery{Status: "all", Tag: "thai", Q: " tom yum "})
	require.NoError(t, err)
	assert.Equal(t, bson.M{
		"deletedAt": nil,
		"tags":      "thai",
		"$text":     bson.M{"$search": "tom yum"},
	}, f)

	f, err = AdminFilter(blogdto.AdminListQuery{Status: models.StatusScheduled})
	require.NoError(t, err)
	assert.Equal(t, models.StatusScheduled, f["status"])

	_, err = AdminFilter(blogdto.AdminListQuery{Status: "deleted"})
	assert.ErrorIs(t, err, common.ErrInvalidBlogStatus)
}

func TestPublicFilters(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	f := PublicFilter(blogdto.PublicListQuery{Tag: "news"}, now)
	assert.Equal(t, models.StatusPublished, f["status"])
	assert.Equal(t, bson.M{"$lte": now}, f["publishedAt"])
	assert.Equal(t, "news", f["tags"])
	assert.Contains(t, f, "deletedAt")

	s := SlugFilter("tasty-food", "en", now)
	assert.Equal(t, bson.A{bson.M{"slug": "tasty-food"}, bson.M{"slug_i18n.en": "tasty-food"}}, s["$or"])

	d := DueFilter(now)
	assert.Equal(t, models.StatusScheduled, d["status"])
	assert.Equal(t, bson.M{"$lte": now}, d["scheduledAt"])
}

func TestDecodeContent(t *testing.T) {
	doc, err := DecodeContent(json.RawMessage(`{"type":"doc"}`))
	require.NoError(t, err)
	assert.Equal(t, "doc", doc["type"])

	doc, err = DecodeContent(nil)
	require.NoError(t, err)
	assert.Nil(t, doc)

	_, err = DecodeContent(json.RawMessage(`[1,2]`))
	assert.Error(t, err)
}
