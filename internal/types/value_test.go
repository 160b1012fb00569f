package types

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"
)

// =============================================================================
// Value Tests
// =============================================================================

func TestValue_ZeroIsNull(t *testing.T) {
	var v Value
	if !v.IsNull() {
		t.Error("Expected zero Value to be NULL")
	}
	if v.Kind() != KindNull {
		t.Errorf("Kind() = %q, want %q", v.Kind(), KindNull)
	}
	if v.TypeName() != "NULL" {
		t.Errorf("TypeName() = %q, want NULL", v.TypeName())
	}
}

func TestValue_TypeName(t *testing.T) {
	tests := []struct {
		value Value
		want  string
	}{
		{BoolValue(true), "BOOLEAN"},
		{I32Value(1), "INTEGER"},
		{I64Value(1), "BIGINT"},
		{F32Value(1), "REAL"},
		{F64Value(1), "DOUBLE PRECISION"},
		{StringValue("a"), "TEXT"},
		{BytesValue([]byte("a")), "BYTEA"},
		{JSONValue(json.RawMessage(`{}`)), "JSON"},
		{ArrayValue(I64Value(1)), "ARRAY"},
		{SubqueryPlaceholderValue(), "SUBQUERY"},
	}
	for _, tt := range tests {
		if got := tt.value.TypeName(); got != tt.want {
			t.Errorf("TypeName() = %q, want %q", got, tt.want)
		}
	}
}

func TestValue_ArrayIsCopied(t *testing.T) {
	elems := []Value{I64Value(1), I64Value(2)}
	arr := ArrayValue(elems...)
	elems[0] = I64Value(99)

	got, ok := arr.AsArray()
	if !ok {
		t.Fatal("Expected array")
	}
	if n, _ := got[0].AsInt(); n != 1 {
		t.Errorf("array element mutated through caller slice: got %d", n)
	}
}

func TestValue_DriverValue(t *testing.T) {
	v, err := StringValue("jane").Value()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if v != "jane" {
		t.Errorf("Value() = %v, want jane", v)
	}

	v, err = JSONValue(json.RawMessage(`{"a":1}`)).Value()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if v != `{"a":1}` {
		t.Errorf("Value() = %v, want JSON text", v)
	}

	if _, err := ArrayValue(I64Value(1)).Value(); !errors.Is(err, ErrUnbindable) {
		t.Errorf("Expected ErrUnbindable for array, got %v", err)
	}
}

func TestValue_JSONRoundTrip(t *testing.T) {
	values := []Value{
		NullValue(),
		BoolValue(true),
		I32Value(-7),
		I64Value(math.MaxInt64),
		F32Value(1.5),
		F64Value(3.25),
		F64Value(math.NaN()),
		F64Value(math.Inf(1)),
		F64Value(math.Inf(-1)),
		StringValue("O'Brien"),
		BytesValue([]byte{0, 1, 2}),
		JSONValue(json.RawMessage(`{"k":[1,2]}`)),
		ArrayValue(I64Value(1), StringValue("x"), NullValue()),
		SubqueryPlaceholderValue(),
	}

	for _, want := range values {
		raw, err := json.Marshal(want)
		if err != nil {
			t.Fatalf("Marshal(%s) error: %v", want, err)
		}
		var got Value
		if err := json.Unmarshal(raw, &got); err != nil {
			t.Fatalf("Unmarshal(%s) error: %v", raw, err)
		}
		if !got.Equal(want) {
			t.Errorf("round trip of %s = %s (json %s)", want, got, raw)
		}
	}
}

func TestValue_UnmarshalUnknownType(t *testing.T) {
	var v Value
	if err := json.Unmarshal([]byte(`{"type":"decimal","value":"1"}`), &v); err == nil {
		t.Error("Expected error for unknown type")
	}
}

// =============================================================================
// ValueOf Tests
// =============================================================================

type status string

type point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func TestValueOf(t *testing.T) {
	var nilPtr *int
	seven := 7
	when := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name  string
		input any
		want  Value
	}{
		{"nil", nil, NullValue()},
		{"nil pointer", nilPtr, NullValue()},
		{"pointer", &seven, I64Value(7)},
		{"bool", true, BoolValue(true)},
		{"int", 42, I64Value(42)},
		{"int32", int32(42), I32Value(42)},
		{"int16", int16(3), I32Value(3)},
		{"uint64 overflow", uint64(math.MaxUint64), StringValue("18446744073709551615")},
		{"float32", float32(1.5), F32Value(1.5)},
		{"float64", 2.5, F64Value(2.5)},
		{"string", "abc", StringValue("abc")},
		{"named string", status("active"), StringValue("active")},
		{"bytes", []byte("ab"), BytesValue([]byte("ab"))},
		{"json", json.RawMessage(`[1]`), JSONValue(json.RawMessage(`[1]`))},
		{"time", when, StringValue("2024-01-02T03:04:05Z")},
		{"int slice", []int{1, 2}, ArrayValue(I64Value(1), I64Value(2))},
		{"string array", [2]string{"a", "b"}, ArrayValue(StringValue("a"), StringValue("b"))},
		{"struct", point{X: 1, Y: 2}, JSONValue(json.RawMessage(`{"x":1,"y":2}`))},
		{"value", I32Value(9), I32Value(9)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValueOf(tt.input)
			if !got.Equal(tt.want) {
				t.Errorf("ValueOf(%v) = %s (%s), want %s (%s)", tt.input, got, got.Kind(), tt.want, tt.want.Kind())
			}
		})
	}
}

func TestValueOf_NonFiniteFloatsPassThrough(t *testing.T) {
	got := ValueOf(math.Inf(1))
	f, ok := got.AsFloat()
	if !ok || !math.IsInf(f, 1) {
		t.Errorf("ValueOf(+Inf) = %s, want +Inf", got)
	}
}

func TestAppendCopy_DoesNotAlias(t *testing.T) {
	base := make([]int, 1, 4)
	a := AppendCopy(base, 1)
	b := AppendCopy(base, 2)
	if a[1] != 1 || b[1] != 2 {
		t.Errorf("forks share storage: a=%v b=%v", a, b)
	}
}
