package models

import (
	"github.com/doilonvl/salathai-be-demo/internal/i18n"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductCategory nhóm món, key là định danh ổn định cho frontend
type ProductCategory struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Key         string             `json:"key" bson:"key" index:"unique"`
	Name        i18n.Text          `json:"name_i18n" bson:"name_i18n"`
	Description *i18n.Text         `json:"description_i18n,omitempty" bson:"description_i18n,omitempty"`
	SortOrder   int                `json:"sortOrder" bson:"sortOrder" index:"single"`
	CreatedAt   int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt   int64              `json:"updatedAt" bson:"updatedAt"`
}
