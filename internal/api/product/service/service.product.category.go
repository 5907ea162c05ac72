// Package productsvc quản lý món ăn, biến thể và nhóm món.
package productsvc

import (
	"context"
	"errors"
	"strings"

	basemodels "github.com/doilonvl/salathai-be-demo/internal/api/base/models"
	basesvc "github.com/doilonvl/salathai-be-demo/internal/api/base/service"
	productdto "github.com/doilonvl/salathai-be-demo/internal/api/product/dto"
	"github.com/doilonvl/salathai-be-demo/internal/api/product/models"
	"github.com/doilonvl/salathai-be-demo/internal/common"
	"github.com/doilonvl/salathai-be-demo/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CategoryService là cấu trúc chứa các phương thức liên quan đến nhóm món
type CategoryService struct {
	*basesvc.BaseServiceMongoImpl[models.ProductCategory]
}

// NewCategoryService tạo mới CategoryService trên collection product_categories
func NewCategoryService(db *mongo.Database) *CategoryService {
	return &CategoryService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.ProductCategory](db.Collection(global.MongoDB_ColNames.ProductCategories)),
	}
}

// CategoryExtraIndexes text index trên tên và mô tả
func CategoryExtraIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{{
		Keys: bson.D{
			{Key: "name_i18n.vi", Value: "text"},
			{Key: "name_i18n.en", Value: "text"},
			{Key: "description_i18n.vi", Value: "text"},
			{Key: "description_i18n.en", Value: "text"},
		},
		Options: options.Index().SetName("category_text").SetDefaultLanguage("none"),
	}}
}

// NormalizeKey key luôn ở dạng chữ thường, không khoảng trắng hai đầu
func NormalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

func keyError(err error) error {
	if errors.Is(err, common.ErrDuplicate) {
		return common.ErrCategoryKeyExists
	}
	return err
}

// GetByKey tìm nhóm món theo key
func (s *CategoryService) GetByKey(ctx context.Context, key string) (*models.ProductCategory, error) {
	cat, err := s.FindOne(ctx, bson.M{"key": NormalizeKey(key)}, nil)
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// GetByID tìm nhóm món theo id
func (s *CategoryService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.ProductCategory, error) {
	cat, err := s.FindOneById(ctx, id)
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// Exists nhóm món có tồn tại không
func (s *CategoryService) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return s.DocumentExists(ctx, bson.M{"_id": id})
}

// keyTaken key đã thuộc về một nhóm khác exclude
func (s *CategoryService) keyTaken(ctx context.Context, key string, exclude primitive.ObjectID) (bool, error) {
	filter := bson.M{"key": key}
	if !exclude.IsZero() {
		filter["_id"] = bson.M{"$ne": exclude}
	}
	return s.DocumentExists(ctx, filter)
}

// Create tạo nhóm món, key trùng trả về 400
func (s *CategoryService) Create(ctx context.Context, in *productdto.CategoryInput) (*models.ProductCategory, error) {
	cat := models.ProductCategory{}
	if in.Key != nil {
		cat.Key = NormalizeKey(*in.Key)
	}
	if in.Name != nil {
		cat.Name = in.Name.Trim()
	}
	cat.Description = in.Description
	if in.SortOrder != nil {
		cat.SortOrder = *in.SortOrder
	}

	taken, err := s.keyTaken(ctx, cat.Key, primitive.NilObjectID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, common.ErrCategoryKeyExists
	}

	created, err := s.InsertOne(ctx, cat)
	if err != nil {
		return nil, keyError(err)
	}
	return &created, nil
}

// Update cập nhật nhóm món, key không được trùng với nhóm khác
func (s *CategoryService) Update(ctx context.Context, id primitive.ObjectID, in *productdto.CategoryInput) (*models.ProductCategory, error) {
	set := bson.M{}
	if in.Key != nil && strings.TrimSpace(*in.Key) != "" {
		key := NormalizeKey(*in.Key)
		taken, err := s.keyTaken(ctx, key, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, common.ErrCategoryKeyExists
		}
		set["key"] = key
	}
	if in.Name != nil {
		set["name_i18n"] = in.Name.Trim()
	}
	if in.Description != nil {
		set["description_i18n"] = in.Description
	}
	if in.SortOrder != nil {
		set["sortOrder"] = *in.SortOrder
	}

	updated, err := s.UpdateById(ctx, id, set)
	if err != nil {
		return nil, keyError(err)
	}
	return &updated, nil
}

// List danh sách theo sortOrder tăng dần
func (s *CategoryService) List(ctx context.Context, page, limit int64) (*basemodels.PaginateResult[models.ProductCategory], error) {
	opts := options.Find().SetSort(bson.D{{Key: "sortOrder", Value: 1}, {Key: "createdAt", Value: 1}})
	return s.FindWithPagination(ctx, bson.M{}, page, limit, opts)
}

// Delete xóa cứng nhóm món
func (s *CategoryService) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.DeleteById(ctx, id)
	return err
}
