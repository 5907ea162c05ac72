package productsvc

import (
	"context"
	"errors"
	"strconv"
	"strings"

	basemodels "github.com/doilonvl/salathai-be-demo/internal/api/base/models"
	basesvc "github.com/doilonvl/salathai-be-demo/internal/api/base/service"
	productdto "github.com/doilonvl/salathai-be-demo/internal/api/product/dto"
	"github.com/doilonvl/salathai-be-demo/internal/api/product/models"
	"github.com/doilonvl/salathai-be-demo/internal/common"
	"github.com/doilonvl/salathai-be-demo/internal/global"
	"github.com/doilonvl/salathai-be-demo/internal/i18n"
	"github.com/doilonvl/salathai-be-demo/internal/richdoc"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CategoryChecker kiểm tra categoryId có tồn tại
type CategoryChecker interface {
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// ProductService là cấu trúc chứa các phương thức liên quan đến món ăn
type ProductService struct {
	*basesvc.BaseServiceMongoImpl[models.Product]
	categories CategoryChecker
}

// NewProductService tạo mới ProductService trên collection products
func NewProductService(db *mongo.Database, categories CategoryChecker) *ProductService {
	return &ProductService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Product](db.Collection(global.MongoDB_ColNames.Products)),
		categories:           categories,
	}
}

// ProductExtraIndexes index lọc theo trạng thái và text index
func ProductExtraIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "isAvailable", Value: 1}, {Key: "categoryId", Value: 1}, {Key: "sortOrder", Value: 1}},
			Options: options.Index().SetName("available_category_sort"),
		},
		{
			Keys: bson.D{
				{Key: "name_i18n.vi", Value: "text"},
				{Key: "name_i18n.en", Value: "text"},
				{Key: "description_i18n.vi", Value: "text"},
				{Key: "description_i18n.en", Value: "text"},
				{Key: "imageAlt_i18n.vi", Value: "text"},
				{Key: "imageAlt_i18n.en", Value: "text"},
				{Key: "tags", Value: "text"},
			},
			Options: options.Index().SetName("product_text").SetDefaultLanguage("none"),
		},
	}
}

// SlugBase slug tường minh, nếu không có thì theo name_i18n: en, locale mặc định, vi
func SlugBase(slug string, name i18n.Text) string {
	input := strings.TrimSpace(slug)
	for _, cand := range []string{name.En, name.Get(i18n.Default), name.Vi} {
		if input != "" {
			break
		}
		input = strings.TrimSpace(cand)
	}
	if base := richdoc.Slugify(input); base != "" {
		return base
	}
	return models.FallbackSlug
}

// UniqueSlug thêm hậu tố -2, -3... cho tới khi slug chưa bị dùng
func UniqueSlug(ctx context.Context, base string, taken func(ctx context.Context, slug string) (bool, error)) (string, error) {
	candidate := base
	for i := 2; ; i++ {
		used, err := taken(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !used {
			return candidate, nil
		}
		candidate = base + "-" + strconv.Itoa(i)
	}
}

func (s *ProductService) slugFor(ctx context.Context, base string, exclude primitive.ObjectID) (string, error) {
	return UniqueSlug(ctx, base, func(ctx context.Context, slug string) (bool, error) {
		filter := bson.M{"slug": slug}
		if !exclude.IsZero() {
			filter["_id"] = bson.M{"$ne": exclude}
		}
		return s.DocumentExists(ctx, filter)
	})
}

// checkCategory categoryId rỗng bỏ qua, sai hoặc không tồn tại trả 400
func (s *ProductService) checkCategory(ctx context.Context, raw *string) (*primitive.ObjectID, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(*raw))
	if err != nil {
		return nil, common.ErrInvalidCategoryID
	}
	if s.categories != nil {
		ok, err := s.categories.Exists(ctx, oid)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, common.ErrInvalidCategoryID
		}
	}
	return &oid, nil
}

// BuildVariants chuyển input sang model, currency mặc định VND
func BuildVariants(in []productdto.VariantInput) []models.Variant {
	out := make([]models.Variant, 0, len(in))
	for _, v := range in {
		variant := models.Variant{
			VariantID: strings.TrimSpace(v.VariantID),
			Label:     v.Label,
			Currency:  strings.TrimSpace(v.Currency),
			Note:      v.Note,
			IsDefault: v.IsDefault,
		}
		if v.Price != nil {
			variant.Price = *v.Price
		}
		if variant.Currency == "" {
			variant.Currency = models.DefaultCurrency
		}
		out = append(out, variant)
	}
	return out
}

func slugError(err error) error {
	if errors.Is(err, common.ErrDuplicate) {
		return common.ErrSlugExists
	}
	return err
}

// Create tạo món mới, slug được suy ra và làm cho duy nhất
func (s *ProductService) Create(ctx context.Context, in *productdto.ProductInput) (*models.Product, error) {
	categoryID, err := s.checkCategory(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}

	p := models.Product{
		CategoryID:  categoryID,
		Description: in.Description,
		ImageAlt:    in.ImageAlt,
		IsAvailable: true,
		Variants:    []models.Variant{},
		Tags:        []string{},
	}
	if in.Name != nil {
		p.Name = in.Name.Trim()
	}
	if in.ImageURL != nil {
		p.ImageURL = strings.TrimSpace(*in.ImageURL)
	}
	if in.SortOrder != nil {
		p.SortOrder = *in.SortOrder
	}
	if in.IsAvailable != nil {
		p.IsAvailable = *in.IsAvailable
	}
	if in.Variants != nil {
		p.Variants = BuildVariants(*in.Variants)
	}
	if in.IsFavourite != nil {
		p.IsFavourite = *in.IsFavourite
	}
	if in.IsMustTry != nil {
		p.IsMustTry = *in.IsMustTry
	}
	if in.IsVegetarian != nil {
		p.IsVegetarian = *in.IsVegetarian
	}
	p.SpicinessLevel = in.SpicinessLevel
	if in.Tags != nil {
		p.Tags = *in.Tags
	}

	slug := ""
	if in.Slug != nil {
		slug = *in.Slug
	}
	if p.Slug, err = s.slugFor(ctx, SlugBase(slug, p.Name), primitive.NilObjectID); err != nil {
		return nil, err
	}

	created, err := s.InsertOne(ctx, p)
	if err != nil {
		return nil, slugError(err)
	}
	return &created, nil
}

// Update cập nhật món, slug chỉ đổi khi client gửi slug mới
func (s *ProductService) Update(ctx context.Context, id primitive.ObjectID, in *productdto.ProductInput) (*models.Product, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if in.CategoryID != nil {
		categoryID, err := s.checkCategory(ctx, in.CategoryID)
		if err != nil {
			return nil, err
		}
		if categoryID != nil {
			set["categoryId"] = categoryID
		}
	}
	if in.Slug != nil && strings.TrimSpace(*in.Slug) != "" {
		name := existing.Name
		if in.Name != nil {
			name = *in.Name
		}
		slug, err := s.slugFor(ctx, SlugBase(*in.Slug, name), id)
		if err != nil {
			return nil, err
		}
		set["slug"] = slug
	}
	if in.Name != nil {
		set["name_i18n"] = in.Name.Trim()
	}
	if in.Description != nil {
		set["description_i18n"] = in.Description
	}
	if in.ImageURL != nil {
		set["imageUrl"] = strings.TrimSpace(*in.ImageURL)
	}
	if in.ImageAlt != nil {
		set["imageAlt_i18n"] = in.ImageAlt
	}
	if in.SortOrder != nil {
		set["sortOrder"] = *in.SortOrder
	}
	if in.IsAvailable != nil {
		set["isAvailable"] = *in.IsAvailable
	}
	if in.Variants != nil {
		set["variants"] = BuildVariants(*in.Variants)
	}
	if in.IsFavourite != nil {
		set["isFavourite"] = *in.IsFavourite
	}
	if in.IsMustTry != nil {
		set["isMustTry"] = *in.IsMustTry
	}
	if in.IsVegetarian != nil {
		set["isVegetarian"] = *in.IsVegetarian
	}
	if in.SpicinessLevel != nil {
		set["spicinessLevel"] = *in.SpicinessLevel
	}
	if in.Tags != nil {
		set["tags"] = *in.Tags
	}

	updated, err := s.UpdateById(ctx, id, set)
	if err != nil {
		return nil, slugError(err)
	}
	return &updated, nil
}

// GetByID tìm món theo id
func (s *ProductService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	p, err := s.FindOneById(ctx, id)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete xóa cứng món
func (s *ProductService) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.DeleteById(ctx, id)
	return err
}

// ProductFilter categoryId sai định dạng bị bỏ qua
func ProductFilter(q productdto.ProductListQuery) bson.M {
	filter := bson.M{}
	if oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(q.CategoryID)); err == nil {
		filter["categoryId"] = oid
	}
	if q.IsAvailable != nil {
		filter["isAvailable"] = *q.IsAvailable
	}
	if text := strings.TrimSpace(q.Q); text != "" {
		filter["$text"] = bson.M{"$search": text}
	}
	return filter
}

// List danh sách theo sortOrder rồi createdAt tăng dần
func (s *ProductService) List(ctx context.Context, q productdto.ProductListQuery) (*basemodels.PaginateResult[models.Product], error) {
	opts := options.Find().SetSort(bson.D{{Key: "sortOrder", Value: 1}, {Key: "createdAt", Value: 1}})
	return s.FindWithPagination(ctx, ProductFilter(q), q.Page, q.Limit, opts)
}
