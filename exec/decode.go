package exec

import (
	"fmt"
	"reflect"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// decodeRow decodes row into T. Structs are matched by their db tags, or
// by field name when untagged. Maps receive every column. Any other T
// needs a single-column row and receives that column's value.
func decodeRow[T any](row Row) (T, error) {
	var out T

	switch dst := any(&out).(type) {
	case *Row:
		*dst = row
		return out, nil
	case *map[string]any:
		*dst = row
		return out, nil
	}

	var input any = map[string]any(row)
	switch reflect.TypeOf(&out).Elem().Kind() {
	case reflect.Struct, reflect.Map:
	default:
		if len(row) != 1 {
			return out, fmt.Errorf("decoding %d columns into %T: scalar destinations need exactly one column", len(row), out)
		}
		for _, v := range row {
			input = v
		}
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "db",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			bytesToString,
			mapstructure.StringToTimeHookFunc(time.RFC3339Nano),
		),
		Result: &out,
	})
	if err != nil {
		return out, err
	}
	if err := dec.Decode(input); err != nil {
		return out, fmt.Errorf("decoding row into %T: %w", out, err)
	}
	return out, nil
}

var bytesType = reflect.TypeOf([]byte(nil))

// bytesToString lets text-protocol columns, which drivers return as
// []byte, decode into strings, numbers and booleans.
func bytesToString(from, to reflect.Type, data any) (any, error) {
	if from != bytesType || to == bytesType || to.Kind() == reflect.Interface {
		return data, nil
	}
	return string(data.([]byte)), nil
}

func decodeRows[T any](rows []Row) ([]T, error) {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		v, err := decodeRow[T](row)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
