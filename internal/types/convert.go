package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"
)

// ValueOf converts a Go value into a Value. It never fails: nil and nil
// pointers become NULL, slices and arrays become Array, maps and structs
// are encoded as JSON, and anything JSON cannot encode falls back to its
// fmt text.
func ValueOf(x any) Value {
	switch v := x.(type) {
	case nil:
		return NullValue()
	case Value:
		return v
	case bool:
		return BoolValue(v)
	case int:
		return I64Value(int64(v))
	case int8:
		return I32Value(int32(v))
	case int16:
		return I32Value(int32(v))
	case int32:
		return I32Value(v)
	case int64:
		return I64Value(v)
	case uint8:
		return I32Value(int32(v))
	case uint16:
		return I32Value(int32(v))
	case uint32:
		return I64Value(int64(v))
	case uint:
		return unsignedValue(uint64(v))
	case uint64:
		return unsignedValue(v)
	case float32:
		return F32Value(v)
	case float64:
		return F64Value(v)
	case string:
		return StringValue(v)
	case []byte:
		if v == nil {
			return NullValue()
		}
		return BytesValue(v)
	case json.RawMessage:
		if v == nil {
			return NullValue()
		}
		return JSONValue(v)
	case time.Time:
		return StringValue(v.Format(time.RFC3339Nano))
	case driver.Valuer:
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return NullValue()
		}
		dv, err := v.Value()
		if err != nil {
			return StringValue(fmt.Sprint(v))
		}
		return ValueOf(dv)
	}
	return reflectValue(reflect.ValueOf(x))
}

func unsignedValue(u uint64) Value {
	if u > math.MaxInt64 {
		return StringValue(strconv.FormatUint(u, 10))
	}
	return I64Value(int64(u))
}

func reflectValue(rv reflect.Value) Value {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return NullValue()
		}
		return ValueOf(rv.Elem().Interface())
	case reflect.Bool:
		return BoolValue(rv.Bool())
	case reflect.Int8, reflect.Int16, reflect.Int32:
		return I32Value(int32(rv.Int()))
	case reflect.Int, reflect.Int64:
		return I64Value(rv.Int())
	case reflect.Uint8, reflect.Uint16:
		return I32Value(int32(rv.Uint()))
	case reflect.Uint, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return unsignedValue(rv.Uint())
	case reflect.Float32:
		return F32Value(float32(rv.Float()))
	case reflect.Float64:
		return F64Value(rv.Float())
	case reflect.String:
		return StringValue(rv.String())
	case reflect.Slice:
		if rv.IsNil() {
			return NullValue()
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return BytesValue(rv.Bytes())
		}
		return arrayOf(rv)
	case reflect.Array:
		return arrayOf(rv)
	case reflect.Map, reflect.Struct:
		raw, err := json.Marshal(rv.Interface())
		if err == nil {
			return JSONValue(raw)
		}
	}
	return StringValue(fmt.Sprint(rv.Interface()))
}

func arrayOf(rv reflect.Value) Value {
	arr := make([]Value, rv.Len())
	for i := range arr {
		arr[i] = ValueOf(rv.Index(i).Interface())
	}
	return Value{kind: KindArray, arr: arr}
}
