package database

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/doilonvl/salathai-be-demo/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IndexSpec một index cần có trên collection
type IndexSpec struct {
	Name   string
	Keys   bson.D
	Unique bool
	Sparse bool
}

// Model chuyển sang mongo.IndexModel
func (s IndexSpec) Model() mongo.IndexModel {
	opts := options.Index().SetName(s.Name)
	if s.Unique {
		opts.SetUnique(true)
	}
	if s.Sparse {
		opts.SetSparse(true)
	}
	return mongo.IndexModel{Keys: s.Keys, Options: opts}
}

// EnsureCollections tạo các collection còn thiếu
func EnsureCollections(ctx context.Context, db *mongo.Database, names ...string) error {
	existing, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}
	have := make(map[string]bool, len(existing))
	for _, n := range existing {
		have[n] = true
	}
	for _, n := range names {
		if have[n] {
			continue
		}
		logger.GetAppLogger().WithField("collection", n).Info("Collection chưa tồn tại, tạo mới")
		if err := db.CreateCollection(ctx, n); err != nil {
			return fmt.Errorf("failed to create collection %s: %w", n, err)
		}
	}
	return nil
}

// CreateIndexes tạo index theo struct tag `index` của model, sau đó tạo các index bổ sung.
//
// Tag hỗ trợ:
//   - index:"single" / index:"single,order:-1"
//   - index:"unique" / index:"unique,sparse"
//   - index:"compound:<tên group>" (thêm "order:-1" để giảm dần, tên group chứa "_unique" thì unique)
//
// Index bổ sung (text, partial, nested field) được truyền qua extra và chỉ tạo khi chưa có tên.
func CreateIndexes(ctx context.Context, collection *mongo.Collection, model interface{}, extra ...mongo.IndexModel) error {
	log := logger.GetAppLogger().WithField("collection", collection.Name())

	existingIndexes, err := listIndexes(ctx, collection)
	if err != nil {
		return err
	}

	for _, spec := range IndexSpecsFromModel(model) {
		if err := checkAndReplaceIndex(ctx, collection, existingIndexes, spec); err != nil {
			return err
		}
	}

	for _, m := range extra {
		name := ""
		if m.Options != nil && m.Options.Name != nil {
			name = *m.Options.Name
		}
		if _, ok := existingIndexes[name]; ok && name != "" {
			continue
		}
		if _, err := collection.Indexes().CreateOne(ctx, m); err != nil && !isIndexExistsError(err) {
			return fmt.Errorf("không thể tạo index %s: %w", name, err)
		}
		log.WithField("index", name).Debug("Đã tạo index bổ sung")
	}

	return nil
}

// IndexSpecsFromModel đọc struct tag `index` và trả về danh sách index theo thứ tự field
func IndexSpecsFromModel(model interface{}) []IndexSpec {
	modelType := reflect.TypeOf(model)
	if modelType == nil {
		return nil
	}
	if modelType.Kind() == reflect.Ptr {
		modelType = modelType.Elem()
	}
	if modelType.Kind() != reflect.Struct {
		return nil
	}

	var specs []IndexSpec
	var groupOrder []string
	groups := map[string]*IndexSpec{}

	for i := 0; i < modelType.NumField(); i++ {
		field := modelType.Field(i)
		tag, ok := field.Tag.Lookup("index")
		if !ok {
			continue
		}
		bsonField := strings.TrimSpace(strings.Split(field.Tag.Get("bson"), ",")[0])
		if bsonField == "" || bsonField == "-" {
			continue
		}

		for _, config := range parseIndexTag(tag) {
			order := parseOrder(config)
			_, sparse := config["sparse"]

			if _, ok := config["single"]; ok {
				specs = append(specs, IndexSpec{
					Name: bsonField + "_single",
					Keys: bson.D{{Key: bsonField, Value: order}},
				})
			}
			if _, ok := config["unique"]; ok {
				specs = append(specs, IndexSpec{
					Name:   bsonField + "_unique",
					Keys:   bson.D{{Key: bsonField, Value: 1}},
					Unique: true,
					Sparse: sparse,
				})
			}
			if groupName, ok := config["compound"]; ok && groupName != "" {
				g, exists := groups[groupName]
				if !exists {
					g = &IndexSpec{Name: groupName, Unique: strings.Contains(groupName, "_unique")}
					groups[groupName] = g
					groupOrder = append(groupOrder, groupName)
				}
				g.Keys = append(g.Keys, bson.E{Key: bsonField, Value: order})
				g.Sparse = g.Sparse || sparse
			}
		}
	}

	for _, name := range groupOrder {
		specs = append(specs, *groups[name])
	}
	return specs
}

// parseOrder thứ tự sắp xếp 1 hoặc -1
func parseOrder(config map[string]string) int {
	if config["order"] == "-1" {
		return -1
	}
	return 1
}

// parseIndexTag tách tag theo ';' (nhiều index) rồi ',' (các tùy chọn key:value)
func parseIndexTag(tag string) []map[string]string {
	var result []map[string]string
	for _, part := range strings.Split(tag, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		entry := map[string]string{}
		for _, sub := range strings.Split(part, ",") {
			kv := strings.SplitN(strings.TrimSpace(sub), ":", 2)
			if len(kv) == 2 {
				entry[kv[0]] = kv[1]
			} else {
				entry[kv[0]] = ""
			}
		}
		result = append(result, entry)
	}
	return result
}

func listIndexes(ctx context.Context, collection *mongo.Collection) (map[string]bson.M, error) {
	cursor, err := collection.Indexes().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("không thể lấy danh sách index: %w", err)
	}
	defer cursor.Close(ctx)

	existing := map[string]bson.M{}
	for cursor.Next(ctx) {
		var info bson.M
		if err := cursor.Decode(&info); err != nil {
			return nil, fmt.Errorf("không thể giải mã thông tin index: %w", err)
		}
		if name, ok := info["name"].(string); ok {
			existing[name] = info
		}
	}
	return existing, cursor.Err()
}

// compareIndex so sánh key, unique và sparse của index đang có với cấu hình mới
func compareIndex(existing bson.M, spec IndexSpec) bool {
	keys, ok := existing["key"].(bson.M)
	if !ok || len(keys) != len(spec.Keys) {
		return false
	}
	for _, k := range spec.Keys {
		want, _ := k.Value.(int)
		if toInt(keys[k.Key]) != want {
			return false
		}
	}
	unique, _ := existing["unique"].(bool)
	sparse, _ := existing["sparse"].(bool)
	return unique == spec.Unique && sparse == spec.Sparse
}

func toInt(v interface{}) int {
	switch n := v.(type) {
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	case int:
		return n
	}
	return 0
}

// checkAndReplaceIndex tạo index, nếu cùng tên mà khác cấu hình thì xóa rồi tạo lại
func checkAndReplaceIndex(ctx context.Context, collection *mongo.Collection, existing map[string]bson.M, spec IndexSpec) error {
	log := logger.GetAppLogger().WithFields(map[string]interface{}{
		"collection": collection.Name(),
		"index":      spec.Name,
	})

	if current, ok := existing[spec.Name]; ok {
		if compareIndex(current, spec) {
			return nil
		}
		if _, err := collection.Indexes().DropOne(ctx, spec.Name); err != nil {
			return fmt.Errorf("không thể xóa index %s: %w", spec.Name, err)
		}
		log.Info("Đã xóa index cũ khác cấu hình")
	}

	if _, err := collection.Indexes().CreateOne(ctx, spec.Model()); err != nil {
		return fmt.Errorf("không thể tạo index %s: %w", spec.Name, err)
	}
	log.Debug("Đã tạo index")
	return nil
}

func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "already exists") || strings.Contains(s, "IndexOptionsConflict")
}
