// Package carouselsvc quản lý các collection carousel sắp xếp theo orderIndex.
package carouselsvc

import (
	"context"
	"errors"

	basemodels "github.com/doilonvl/salathai-be-demo/internal/api/base/models"
	basesvc "github.com/doilonvl/salathai-be-demo/internal/api/base/service"
	carouseldto "github.com/doilonvl/salathai-be-demo/internal/api/carousel/dto"
	"github.com/doilonvl/salathai-be-demo/internal/api/carousel/models"
	"github.com/doilonvl/salathai-be-demo/internal/common"
	"github.com/doilonvl/salathai-be-demo/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OrderedService CRUD chung cho collection có orderIndex duy nhất
type OrderedService[T any] struct {
	*basesvc.BaseServiceMongoImpl[T]
}

// NewOrderedService tạo OrderedService trên một collection
func NewOrderedService[T any](collection *mongo.Collection) *OrderedService[T] {
	return &OrderedService[T]{BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[T](collection)}
}

// NewLandingMenuService collection landing_menu_images
func NewLandingMenuService(db *mongo.Database) *OrderedService[models.LandingMenuImage] {
	return NewOrderedService[models.LandingMenuImage](db.Collection(global.MongoDB_ColNames.LandingMenuImages))
}

// LandingMenuIndexes index bổ sung của landing_menu_images
func LandingMenuIndexes() []mongo.IndexModel {
	return OrderIndexes("unique_order_index", "landing_menu_text", "altText_i18n")
}

// MarqueeSlideIndexes index bổ sung của marquee_slides
func MarqueeSlideIndexes() []mongo.IndexModel {
	return OrderIndexes("unique_marquee_slide_order_index", "marquee_slide_text", "tag_i18n", "text_i18n")
}

// NewMarqueeSlideService collection marquee_slides
func NewMarqueeSlideService(db *mongo.Database) *OrderedService[models.MarqueeSlide] {
	return NewOrderedService[models.MarqueeSlide](db.Collection(global.MongoDB_ColNames.MarqueeSlides))
}

// OrderIndexes unique orderIndex và text index trên các field song ngữ
func OrderIndexes(uniqueName, textName string, textFields ...string) []mongo.IndexModel {
	idx := []mongo.IndexModel{{
		Keys:    bson.D{{Key: "orderIndex", Value: 1}},
		Options: options.Index().SetName(uniqueName).SetUnique(true),
	}}
	if len(textFields) > 0 {
		keys := bson.D{}
		for _, f := range textFields {
			keys = append(keys, bson.E{Key: f + ".vi", Value: "text"}, bson.E{Key: f + ".en", Value: "text"})
		}
		idx = append(idx, mongo.IndexModel{
			Keys:    keys,
			Options: options.Index().SetName(textName).SetDefaultLanguage("none"),
		})
	}
	return idx
}

func orderError(err error) error {
	if !errors.Is(err, common.ErrDuplicate) {
		return err
	}
	if common.DuplicateKeyIndex(err) == PinnedIndex {
		return common.ErrPinnedExists
	}
	return common.ErrOrderIndexExists
}

// excluding thêm điều kiện _id khác exclude
func excluding(filter bson.M, exclude primitive.ObjectID) bson.M {
	if !exclude.IsZero() {
		filter["_id"] = bson.M{"$ne": exclude}
	}
	return filter
}

// ExistsWithOrderIndex orderIndex đã thuộc về một bản ghi khác exclude
func (s *OrderedService[T]) ExistsWithOrderIndex(ctx context.Context, orderIndex int, exclude primitive.ObjectID) (bool, error) {
	return s.DocumentExists(ctx, excluding(bson.M{"orderIndex": orderIndex}, exclude))
}

// ListFilter isActive tường minh ưu tiên, không có thì chỉ lấy bản ghi đang bật trừ khi includeInactive
func ListFilter(q carouseldto.ListQuery) bson.M {
	filter := bson.M{}
	switch {
	case q.IsActive != nil:
		filter["isActive"] = *q.IsActive
	case !q.IncludeInactive:
		filter["isActive"] = true
	}
	return filter
}

// List sắp xếp orderIndex rồi createdAt tăng dần
func (s *OrderedService[T]) List(ctx context.Context, q carouseldto.ListQuery) (*basemodels.PaginateResult[T], error) {
	opts := options.Find().SetSort(bson.D{{Key: "orderIndex", Value: 1}, {Key: "createdAt", Value: 1}})
	return s.FindWithPagination(ctx, ListFilter(q), q.Page, q.Limit, opts)
}

// GetByID tìm theo id
func (s *OrderedService[T]) GetByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	doc, err := s.FindOneById(ctx, id)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Create trùng orderIndex ở tầng index cũng trả lỗi orderIndex
func (s *OrderedService[T]) Create(ctx context.Context, doc T) (*T, error) {
	created, err := s.InsertOne(ctx, doc)
	if err != nil {
		return nil, orderError(err)
	}
	return &created, nil
}

// Update cập nhật các field được gửi
func (s *OrderedService[T]) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*T, error) {
	updated, err := s.UpdateById(ctx, id, set)
	if err != nil {
		return nil, orderError(err)
	}
	return &updated, nil
}

// Delete xóa cứng
func (s *OrderedService[T]) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.DeleteById(ctx, id)
	return err
}
