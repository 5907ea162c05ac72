package carouselsvc

import (
	"context"

	"github.com/doilonvl/salathai-be-demo/internal/api/carousel/models"
	"github.com/doilonvl/salathai-be-demo/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PinnedIndex partial unique index trên isPinned=true
const PinnedIndex = "unique_pinned"

// MarqueeImageService thêm ràng buộc chỉ một ảnh được ghim
type MarqueeImageService struct {
	*OrderedService[models.MarqueeImage]
}

// NewMarqueeImageService collection marquee_images
func NewMarqueeImageService(db *mongo.Database) *MarqueeImageService {
	return &MarqueeImageService{
		OrderedService: NewOrderedService[models.MarqueeImage](db.Collection(global.MongoDB_ColNames.MarqueeImages)),
	}
}

// MarqueeImageIndexes orderIndex duy nhất và partial unique trên isPinned=true
func MarqueeImageIndexes() []mongo.IndexModel {
	return append(OrderIndexes("unique_marquee_image_order_index", "marquee_image_text", "altText_i18n"), mongo.IndexModel{
		Keys: bson.D{{Key: "isPinned", Value: 1}},
		Options: options.Index().
			SetName(PinnedIndex).
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"isPinned": true}),
	})
}

// ExistsPinned đã có ảnh ghim khác exclude
func (s *MarqueeImageService) ExistsPinned(ctx context.Context, exclude primitive.ObjectID) (bool, error) {
	return s.DocumentExists(ctx, excluding(bson.M{"isPinned": true}, exclude))
}
