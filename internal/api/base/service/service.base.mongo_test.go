package basesvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestToUpdateData(t *testing.T) {
	t.Run("map thường được wrap trong $set", func(t *testing.T) {
		u, err := ToUpdateData(map[string]interface{}{"status": "published"})
		require.NoError(t, err)
		assert.Equal(t, "published", u.Set["status"])
		assert.Nil(t, u.Inc)
	})

	t.Run("giữ nguyên operator", func(t *testing.T) {
		u, err := ToUpdateData(bson.M{"$inc": bson.M{"stats.viewCount": 1}})
		require.NoError(t, err)
		assert.Nil(t, u.Set)
		assert.Equal(t, 1, u.Inc["stats.viewCount"])
	})

	t.Run("UpdateData truyền thẳng", func(t *testing.T) {
		in := &UpdateData{Unset: map[string]interface{}{"x": ""}}
		u, err := ToUpdateData(in)
		require.NoError(t, err)
		assert.Same(t, in, u)
	})

	t.Run("touch thêm updatedAt", func(t *testing.T) {
		u := &UpdateData{}
		touch(u)
		assert.Contains(t, u.Set, "updatedAt")
	})
}

type defaultsModel struct {
	Currency string `bson:"currency" default:"VND"`
	Author   string `bson:"authorName" default:"Salathai"`
	Level    int    `bson:"level" default:"2"`
	Count    int64  `bson:"count" default:"x"`
	Plain    string `bson:"plain"`
}

func TestApplyInsertDefaultsToModel(t *testing.T) {
	m := defaultsModel{Author: "Chef"}
	applyInsertDefaultsToModel(&m)

	assert.Equal(t, "VND", m.Currency)
	assert.Equal(t, "Chef", m.Author, "không ghi đè giá trị đã có")
	assert.Equal(t, 2, m.Level)
	assert.Equal(t, int64(0), m.Count, "default sai kiểu bị bỏ qua")
	assert.Equal(t, "", m.Plain)

	assert.NotPanics(t, func() { applyInsertDefaultsToModel(nil) })
	assert.NotPanics(t, func() { applyInsertDefaultsToModel(m) })
}
