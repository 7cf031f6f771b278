package convert

import (
	"reflect"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
)

// StructAssign copies same-named fields from src into dst.
// StructAssign 把 src 与 dst 同名字段的值复制到 dst 中
func StructAssign(src any, dst any) any {
	_ = copier.Copy(dst, src)
	return dst
}

// StructToMap converts a struct into a map keyed by JSON field names.
// StructToMap 通过 JSON 序列化把结构体转换为 map
func StructToMap(param any, data map[string]interface{}) error {
	str, err := sonic.Marshal(param)
	if err != nil {
		return err
	}
	return sonic.Unmarshal(str, &data)
}

// StructToModelMap fills data with gorm column names mapped to field
// values, skipping the field named by key (usually the primary key).
// StructToModelMap 按 gorm column 标签生成更新用的 map，跳过 key 指定的字段
func StructToModelMap(param any, data map[string]any, key string) error {
	val := reflect.ValueOf(param)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return errors.New("not struct")
	}

	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		if key != "" && typ.Field(i).Name == key {
			continue
		}
		tags := splitGormTag(typ.Field(i).Tag.Get("gorm"))
		if tags["column"] != "" {
			data[tags["column"]] = val.Field(i).Interface()
		}
	}
	return nil
}

// 分割 GORM 标签
func splitGormTag(tag string) map[string]string {
	parts := make(map[string]string)
	for _, part := range strings.Split(tag, ";") {
		kv := strings.SplitN(part, ":", 2)
		if len(kv) == 2 {
			parts[kv[0]] = kv[1]
		}
	}
	return parts
}
