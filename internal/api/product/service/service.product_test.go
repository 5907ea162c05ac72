package productsvc

import (
	"context"
	"errors"
	"testing"

	productdto "github.com/doilonvl/salathai-be-demo/internal/api/product/dto"
	"github.com/doilonvl/salathai-be-demo/internal/i18n"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSlugBase(t *testing.T) {
	cases := []struct {
		name string
		slug string
		text i18n.Text
		want string
	}{
		{"explicit slug wins", "Món Cay Biệt", i18n.Text{En: "Milk tea"}, "mon-cay-biet"},
		{"english name", "", i18n.Text{Vi: "Trà sữa", En: "Milk tea"}, "milk-tea"},
		{"vietnamese when no english", "  ", i18n.Text{Vi: "Trà sữa"}, "tra-sua"},
		{"fallback", "", i18n.Text{}, "product"},
		{"symbols only", "!!!", i18n.Text{}, "product"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SlugBase(tc.slug, tc.text))
		})
	}
}

func TestUniqueSlug(t *testing.T) {
	used := map[string]bool{"milk-tea": true, "milk-tea-2": true}
	taken := func(_ context.Context, slug string) (bool, error) { return used[slug], nil }

	slug, err := UniqueSlug(context.Background(), "milk-tea", taken)
	require.NoError(t, err)
	assert.Equal(t, "milk-tea-3", slug)

	slug, err = UniqueSlug(context.Background(), "pad-thai", taken)
	require.NoError(t, err)
	assert.Equal(t, "pad-thai", slug)
}

func TestUniqueSlugSecondProduct(t *testing.T) {
	used := map[string]bool{}
	taken := func(_ context.Context, slug string) (bool, error) { return used[slug], nil }
	name := i18n.Text{Vi: "Trà sữa", En: "Milk tea"}

	first, err := UniqueSlug(context.Background(), SlugBase("", name), taken)
	require.NoError(t, err)
	used[first] = true
	second, err := UniqueSlug(context.Background(), SlugBase("", name), taken)
	require.NoError(t, err)

	assert.Equal(t, "milk-tea", first)
	assert.Equal(t, "milk-tea-2", second)
}

func TestUniqueSlugError(t *testing.T) {
	boom := errors.New("boom")
	_, err := UniqueSlug(context.Background(), "x", func(context.Context, string) (bool, error) { return false, boom })
	assert.ErrorIs(t, err, boom)
}

func TestProductFilter(t *testing.T) {
	cat := primitive.NewObjectID()
	yes := true

	f := ProductFilter(productdto.ProductListQuery{CategoryID: cat.Hex(), IsAvailable: &yes, Q: " curry "})
	assert.Equal(t, cat, f["categoryId"])
	assert.Equal(t, true, f["isAvailable"])
	assert.Equal(t, bson.M{"$search": "curry"}, f["$text"])

	f = ProductFilter(productdto.ProductListQuery{CategoryID: "not-an-id"})
	assert.Empty(t, f)
}

func TestBuildVariants(t *testing.T) {
	price := 45000.0
	out := BuildVariants([]productdto.VariantInput{
		{VariantID: " small ", Price: &price},
		{VariantID: "large", Price: &price, Currency: "USD", IsDefault: true},
	})
	require.Len(t, out, 2)
	assert.Equal(t, "small", out[0].VariantID)
	assert.Equal(t, "VND", out[0].Currency)
	assert.Equal(t, 45000.0, out[0].Price)
	assert.Equal(t, "USD", out[1].Currency)
	assert.True(t, out[1].IsDefault)
}

func TestNormalizeKey(t *testing.T) {
	assert.Equal(t, "main-dishes", NormalizeKey("  Main-Dishes "))
}
