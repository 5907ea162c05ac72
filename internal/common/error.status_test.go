package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestErrorIs(t *testing.T) {
	wrapped := fmt.Errorf("find blog: %w", ErrNotFound)
	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.False(t, errors.Is(wrapped, ErrDuplicate))

	withDetails := WithDetails(ErrInvalidInput, map[string]string{"field": "email"})
	assert.True(t, errors.Is(withDetails, ErrInvalidInput), "cùng code và message vẫn match")
	assert.Nil(t, ErrInvalidInput.(*Error).Details, "không được sửa lỗi gốc")
}

func TestConvertMongoError(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, ConvertMongoError(nil))
	})

	t.Run("no documents thành not found", func(t *testing.T) {
		assert.Equal(t, ErrNotFound, ConvertMongoError(mongo.ErrNoDocuments))
	})

	t.Run("giữ nguyên lỗi hệ thống", func(t *testing.T) {
		assert.Equal(t, ErrSlugExists, ConvertMongoError(ErrSlugExists))
	})

	t.Run("duplicate key", func(t *testing.T) {
		dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key"}}}
		assert.Equal(t, ErrDuplicate, ConvertMongoError(dup))
		assert.Equal(t, "", DuplicateKeyIndex(dup))
	})

	t.Run("duplicate key giữ tên index", func(t *testing.T) {
		dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{
			Code:    11000,
			Message: "E11000 duplicate key error collection: salathai.marquee_images index: unique_pinned dup key: { isPinned: true }",
		}}}
		assert.Equal(t, "unique_pinned", DuplicateKeyIndex(dup))
		err := ConvertMongoError(dup)
		assert.ErrorIs(t, err, ErrDuplicate)
		assert.Equal(t, "unique_pinned", DuplicateKeyIndex(err))

		cmd := mongo.CommandError{Code: 11000, Message: "E11000 duplicate key error collection: salathai.marquee_images index: unique_marquee_image_order_index dup key: { orderIndex: 1 }"}
		assert.Equal(t, "unique_marquee_image_order_index", DuplicateKeyIndex(ConvertMongoError(cmd)))
	})

	t.Run("lỗi lạ thành 500", func(t *testing.T) {
		err := ConvertMongoError(errors.New("boom"))
		assert.Equal(t, StatusInternalServerError, StatusOf(err))
	})
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, StatusRequestEntityTooLarge, StatusOf(NewContentTooLargeError("content_i18n.vi", 2097152)))
	assert.Equal(t, StatusBadRequest, StatusOf(ErrScheduledAtRequired))
	assert.Equal(t, StatusInternalServerError, StatusOf(errors.New("plain")))
	assert.Equal(t, "content_i18n.vi exceeds 2097152 bytes", NewContentTooLargeError("content_i18n.vi", 2097152).Error())
}
