package data

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewPrimitives(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  Value
	}{
		{"nil", nil, Null{}},
		{"bool", true, Bool(true)},
		{"int", 5, Int(5)},
		{"int64", int64(-3), Int(-3)},
		{"uint", uint8(200), Int(200)},
		{"float", 1.5, Float(1.5)},
		{"string", "hi", String("hi")},
		{"existing value", String("v"), String("v")},
		{"nil slice", []string(nil), Null{}},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, New(test.input), test.name)
	}
}

func TestNewCollections(t *testing.T) {
	assert.Equal(t,
		List{Int(1), Int(2)},
		New([]int{1, 2}))
	assert.Equal(t,
		Map{"a": String("x"), "n": Int(1)},
		New(map[string]interface{}{"a": "x", "n": 1}))
	assert.Equal(t,
		Map{"rows": List{Map{"id": Int(7)}}},
		New(map[string]interface{}{"rows": []interface{}{map[string]interface{}{"id": 7}}}))
}

func TestNewStruct(t *testing.T) {
	type line struct {
		Sku   string
		Count int
	}
	assert.Equal(t,
		Map{"sku": String("A-1"), "count": Int(3)},
		New(line{"A-1", 3}))

	// pointers drill through; unexported fields are skipped
	type wrapper struct {
		Line   *line
		hidden int
	}
	assert.Equal(t,
		Map{"line": Map{"sku": String(""), "count": Int(0)}},
		New(&wrapper{Line: &line{}}))
}

func TestNewTime(t *testing.T) {
	var ts = time.Date(2024, 5, 17, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, String("2024-05-17T09:30:00Z"), New(ts))
}
