// Package blogsvc CRUD bài viết, state machine trạng thái và các truy vấn public.
package blogsvc

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	basemodels "github.com/doilonvl/salathai-be-demo/internal/api/base/models"
	basesvc "github.com/doilonvl/salathai-be-demo/internal/api/base/service"
	blogdto "github.com/doilonvl/salathai-be-demo/internal/api/blog/dto"
	"github.com/doilonvl/salathai-be-demo/internal/api/blog/models"
	"github.com/doilonvl/salathai-be-demo/internal/common"
	"github.com/doilonvl/salathai-be-demo/internal/global"
	"github.com/doilonvl/salathai-be-demo/internal/i18n"
	"github.com/doilonvl/salathai-be-demo/internal/logger"
	"github.com/doilonvl/salathai-be-demo/internal/richdoc"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrSlugRequired slug song ngữ rỗng sau khi chuẩn hóa
var ErrSlugRequired = common.NewValidationError("slug_i18n.vi and slug_i18n.en are required")

// BlogService là cấu trúc chứa các phương thức liên quan đến bài viết
type BlogService struct {
	*basesvc.BaseServiceMongoImpl[models.Blog]
	now func() time.Time
}

// NewBlogService tạo mới BlogService trên collection blogs
func NewBlogService(db *mongo.Database) *BlogService {
	return &BlogService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Blog](db.Collection(global.MongoDB_ColNames.Blogs)),
		now:                  time.Now,
	}
}

// ExtraIndexes index trên field lồng và text index, không khai báo được bằng struct tag
func ExtraIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug_i18n.vi", Value: 1}},
			Options: options.Index().SetName("slug_i18n_vi_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "slug_i18n.en", Value: 1}},
			Options: options.Index().SetName("slug_i18n_en_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "deletedAt", Value: 1}, {Key: "publishedAt", Value: -1}},
			Options: options.Index().SetName("status_deleted_published"),
		},
		{
			Keys: bson.D{
				{Key: "title_i18n.vi", Value: "text"},
				{Key: "title_i18n.en", Value: "text"},
				{Key: "excerpt_i18n.vi", Value: "text"},
				{Key: "excerpt_i18n.en", Value: "text"},
				{Key: "plainText_i18n.vi", Value: "text"},
				{Key: "plainText_i18n.en", Value: "text"},
			},
			Options: options.Index().SetName("blog_text").SetDefaultLanguage("none"),
		},
	}
}

// actorID id admin dạng hex, rỗng hoặc sai định dạng thành nil
func actorID(actor string) *primitive.ObjectID {
	oid, err := primitive.ObjectIDFromHex(actor)
	if err != nil {
		return nil
	}
	return &oid
}

// slugError trùng unique index thì báo slug đã tồn tại
func slugError(err error) error {
	if errors.Is(err, common.ErrDuplicate) {
		return common.ErrSlugExists
	}
	return err
}

// DecodeContent body JSON của một locale thành map, null hoặc rỗng thành nil
func DecodeContent(raw json.RawMessage) (map[string]interface{}, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, common.NewError(common.ErrCodeValidationFormat, "content_i18n.vi and content_i18n.en must be JSON objects", common.StatusBadRequest, err.Error())
	}
	return doc, nil
}

// Derived toc_i18n, plainText_i18n, readingTimeMinutes tính từ nội dung
type Derived struct {
	Toc                models.Toc
	PlainText          i18n.Text
	ReadingTimeMinutes int
}

// Derive tóm tắt nội dung của cả hai locale
func Derive(content *models.Content) Derived {
	var vi, en interface{}
	if content != nil {
		if content.Vi != nil {
			vi = content.Vi
		}
		if content.En != nil {
			en = content.En
		}
	}
	sum := richdoc.SummarizeLocales(vi, en)
	return Derived{
		Toc:                models.Toc{Vi: nonNilToc(sum.Vi.Toc), En: nonNilToc(sum.En.Toc)},
		PlainText:          i18n.Text{Vi: sum.Vi.PlainText, En: sum.En.PlainText},
		ReadingTimeMinutes: sum.ReadingTimeMinutes,
	}
}

func nonNilToc(toc []richdoc.TocEntry) []richdoc.TocEntry {
	if toc == nil {
		return []richdoc.TocEntry{}
	}
	return toc
}

func statusInput(in *blogdto.BlogInput) StatusInput {
	st := StatusInput{
		ScheduledAt:    in.ScheduledAt.Value,
		HasScheduledAt: in.ScheduledAt.Set,
		PublishedAt:    in.PublishedAt.Value,
		HasPublishedAt: in.PublishedAt.Set,
	}
	if in.Status != nil {
		st.Status = strings.TrimSpace(*in.Status)
	}
	return st
}

func normalizeSlugs(t i18n.Text) i18n.Text {
	return i18n.Text{Vi: richdoc.Slugify(t.Vi), En: richdoc.Slugify(t.En)}
}

// BuildBlog dựng document mới từ input đã qua validate của handler
func BuildBlog(in *blogdto.BlogInput, actor string, now time.Time) (models.Blog, error) {
	var blog models.Blog

	if in.SlugI18n != nil {
		blog.SlugI18n = normalizeSlugs(*in.SlugI18n)
	}
	if blog.SlugI18n.Vi == "" || blog.SlugI18n.En == "" {
		return models.Blog{}, ErrSlugRequired
	}
	if in.Slug != nil {
		blog.Slug = richdoc.Slugify(*in.Slug)
	}
	if blog.Slug == "" {
		blog.Slug = blog.SlugI18n.Vi
	}

	if in.Title != nil {
		blog.Title = in.Title.Trim()
	}
	blog.Excerpt = in.Excerpt
	blog.CoverImage = in.CoverImage
	blog.Gallery = []models.GalleryItem{}
	if in.Gallery != nil {
		blog.Gallery = *in.Gallery
	}
	blog.Tags = []string{}
	if in.Tags != nil {
		blog.Tags = *in.Tags
	}
	if in.IsFeatured != nil {
		blog.IsFeatured = *in.IsFeatured
	}
	if in.SortOrder != nil {
		blog.SortOrder = *in.SortOrder
	}
	blog.SeoTitle = in.SeoTitle
	blog.SeoDescription = in.SeoDescription
	if in.CanonicalURL != nil {
		blog.CanonicalURL = strings.TrimSpace(*in.CanonicalURL)
	}
	if in.OgImageURL != nil {
		blog.OgImageURL = strings.TrimSpace(*in.OgImageURL)
	}
	blog.Robots = models.DefaultRobots()
	if in.Robots != nil {
		blog.Robots = *in.Robots
	}
	if in.AuthorName != nil {
		blog.AuthorName = strings.TrimSpace(*in.AuthorName)
	}

	content := &models.Content{}
	if in.Content != nil {
		vi, err := DecodeContent(in.Content.Vi)
		if err != nil {
			return models.Blog{}, err
		}
		en, err := DecodeContent(in.Content.En)
		if err != nil {
			return models.Blog{}, err
		}
		content.Vi, content.En = vi, en
	}
	blog.Content = content
	derived := Derive(content)
	blog.Toc = derived.Toc
	blog.PlainText = derived.PlainText
	blog.ReadingTimeMinutes = derived.ReadingTimeMinutes

	st, err := NormalizeStatus(statusInput(in), nil, now)
	if err != nil {
		return models.Blog{}, err
	}
	blog.Status = st.Status
	blog.PublishedAt = st.PublishedAt
	blog.ScheduledAt = st.ScheduledAt

	blog.CreatedBy = actorID(actor)
	blog.UpdatedBy = actorID(actor)
	return blog, nil
}

// BuildUpdate tính $set cho partial update dựa trên bản ghi hiện tại.
// Nội dung được gộp theo từng locale; field dẫn xuất chỉ tính lại khi có content_i18n.
func BuildUpdate(in *blogdto.BlogInput, existing *models.Blog, actor string, now time.Time) (bson.M, error) {
	set := bson.M{}

	if in.SlugI18n != nil {
		slugs := normalizeSlugs(*in.SlugI18n)
		if slugs.Vi == "" || slugs.En == "" {
			return nil, ErrSlugRequired
		}
		set["slug_i18n"] = slugs
	}
	if in.Slug != nil {
		if slug := richdoc.Slugify(*in.Slug); slug != "" {
			set["slug"] = slug
		}
	}
	if in.Title != nil {
		set["title_i18n"] = in.Title.Trim()
	}
	if in.Excerpt != nil {
		set["excerpt_i18n"] = in.Excerpt
	}
	if in.CoverImage != nil {
		set["coverImage"] = in.CoverImage
	}
	if in.Gallery != nil {
		set["gallery"] = *in.Gallery
	}
	if in.Tags != nil {
		set["tags"] = *in.Tags
	}
	if in.IsFeatured != nil {
		set["isFeatured"] = *in.IsFeatured
	}
	if in.SortOrder != nil {
		set["sortOrder"] = *in.SortOrder
	}
	if in.SeoTitle != nil {
		set["seoTitle_i18n"] = in.SeoTitle
	}
	if in.SeoDescription != nil {
		set["seoDescription_i18n"] = in.SeoDescription
	}
	if in.CanonicalURL != nil {
		set["canonicalUrl"] = strings.TrimSpace(*in.CanonicalURL)
	}
	if in.OgImageURL != nil {
		set["ogImageUrl"] = strings.TrimSpace(*in.OgImageURL)
	}
	if in.Robots != nil {
		set["robots"] = *in.Robots
	}
	if in.AuthorName != nil {
		set["authorName"] = strings.TrimSpace(*in.AuthorName)
	}

	if in.Content != nil {
		next := models.Content{}
		if existing.Content != nil {
			next = *existing.Content
		}
		vi, err := DecodeContent(in.Content.Vi)
		if err != nil {
			return nil, err
		}
		en, err := DecodeContent(in.Content.En)
		if err != nil {
			return nil, err
		}
		if vi != nil {
			next.Vi = vi
		}
		if en != nil {
			next.En = en
		}
		derived := Derive(&next)
		set["content_i18n"] = next
		set["toc_i18n"] = derived.Toc
		set["plainText_i18n"] = derived.PlainText
		set["readingTimeMinutes"] = derived.ReadingTimeMinutes
	}

	st, err := NormalizeStatus(statusInput(in), existing, now)
	if err != nil {
		return nil, err
	}
	set["status"] = st.Status
	set["publishedAt"] = st.PublishedAt
	set["scheduledAt"] = st.ScheduledAt
	set["updatedBy"] = actorID(actor)
	return set, nil
}

// Create tạo bài viết mới
func (s *BlogService) Create(ctx context.Context, in *blogdto.BlogInput, actor string) (*models.Blog, error) {
	blog, err := BuildBlog(in, actor, s.now())
	if err != nil {
		return nil, err
	}
	created, err := s.InsertOne(ctx, blog)
	if err != nil {
		return nil, slugError(err)
	}
	return &created, nil
}

// GetByID bài viết chưa bị xóa
func (s *BlogService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Blog, error) {
	blog, err := s.FindOne(ctx, bson.M{"_id": id, "deletedAt": nil}, nil)
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

// Update partial update bài chưa bị xóa
func (s *BlogService) Update(ctx context.Context, id primitive.ObjectID, in *blogdto.BlogInput, actor string) (*models.Blog, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	set, err := BuildUpdate(in, existing, actor, s.now())
	if err != nil {
		return nil, err
	}
	updated, err := s.UpdateOne(ctx, bson.M{"_id": id, "deletedAt": nil}, set)
	if err != nil {
		return nil, slugError(err)
	}
	return &updated, nil
}

// Publish xuất bản ngay
func (s *BlogService) Publish(ctx context.Context, id primitive.ObjectID, actor string) (*models.Blog, error) {
	status := models.StatusPublished
	return s.Update(ctx, id, &blogdto.BlogInput{
		Status:      &status,
		PublishedAt: blogdto.At(s.now()),
		ScheduledAt: blogdto.Null(),
	}, actor)
}

// Archive lưu trữ, giữ publishedAt
func (s *BlogService) Archive(ctx context.Context, id primitive.ObjectID, actor string) (*models.Blog, error) {
	status := models.StatusArchived
	return s.Update(ctx, id, &blogdto.BlogInput{Status: &status}, actor)
}

// Schedule hẹn giờ xuất bản
func (s *BlogService) Schedule(ctx context.Context, id primitive.ObjectID, at time.Time, actor string) (*models.Blog, error) {
	status := models.StatusScheduled
	return s.Update(ctx, id, &blogdto.BlogInput{
		Status:      &status,
		ScheduledAt: blogdto.At(at),
	}, actor)
}

// SoftDelete đánh dấu deletedAt, bài đã xóa không đọc lại được qua GetByID
func (s *BlogService) SoftDelete(ctx context.Context, id primitive.ObjectID, actor string) (*models.Blog, error) {
	deleted, err := s.UpdateOne(ctx, bson.M{"_id": id, "deletedAt": nil}, bson.M{
		"deletedAt": s.now(),
		"updatedBy": actorID(actor),
	})
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}

// ListAdmin danh sách cho trang quản trị, không kèm content_i18n
func (s *BlogService) ListAdmin(ctx context.Context, q blogdto.AdminListQuery) (*basemodels.PaginateResult[models.Blog], error) {
	filter, err := AdminFilter(q)
	if err != nil {
		return nil, err
	}
	opts := options.Find().
		SetSort(ParseSort(q.Sort, AdminSortFields, DefaultAdminSort)).
		SetProjection(listProjection)
	return s.paginate(ctx, filter, q.Page, ClampLimit(q.Limit), q.WithCount, opts)
}

// ListPublic danh sách bài đang hiển thị
func (s *BlogService) ListPublic(ctx context.Context, q blogdto.PublicListQuery) (*basemodels.PaginateResult[models.Blog], error) {
	opts := options.Find().
		SetSort(ParseSort(q.Sort, PublicSortFields, DefaultPublicSort)).
		SetProjection(listProjection)
	return s.paginate(ctx, PublicFilter(q, s.now()), q.Page, ClampLimit(q.Limit), true, opts)
}

// paginate withCount=false bỏ qua CountDocuments, total bằng số item của trang
func (s *BlogService) paginate(ctx context.Context, filter bson.M, page, limit int64, withCount bool, opts *options.FindOptions) (*basemodels.PaginateResult[models.Blog], error) {
	if page < 1 {
		page = 1
	}
	if withCount {
		return s.FindWithPagination(ctx, filter, page, limit, opts)
	}
	opts.SetSkip((page - 1) * limit).SetLimit(limit)
	items, err := s.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	return basemodels.NewPaginateResult(items, page, limit, int64(len(items))), nil
}

// GetPublicBySlug bài đang hiển thị theo slug chuẩn hoặc slug của locale
func (s *BlogService) GetPublicBySlug(ctx context.Context, slug string, locale i18n.Locale) (*models.Blog, error) {
	blog, err := s.FindOne(ctx, SlugFilter(strings.TrimSpace(slug), string(locale), s.now()), nil)
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

// IncrementViewCount tăng lượt xem của bài đang hiển thị, trả về lượt xem mới
func (s *BlogService) IncrementViewCount(ctx context.Context, id primitive.ObjectID) (int64, error) {
	filter := VisibleFilter(s.now())
	filter["_id"] = id
	blog, err := s.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"stats.viewCount": 1}})
	if err != nil {
		return 0, err
	}
	return blog.Stats.ViewCount, nil
}

// PublishScheduled xuất bản các bài hẹn giờ đã tới hạn
func (s *BlogService) PublishScheduled(ctx context.Context, now time.Time) (int64, int64, error) {
	matched, modified, err := s.UpdateMany(ctx, DueFilter(now), bson.M{
		"status":      models.StatusPublished,
		"publishedAt": now,
		"scheduledAt": nil,
	})
	if err != nil {
		return 0, 0, err
	}
	if modified > 0 {
		logger.WithModule("blog").WithFields(map[string]interface{}{
			"matched":  matched,
			"modified": modified,
		}).Info("Đã xuất bản các bài hẹn giờ")
	}
	return matched, modified, nil
}
