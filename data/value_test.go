package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruthy(t *testing.T) {
	tests := []struct {
		name   string
		value  Value
		truthy bool
	}{
		{"undefined", Undefined{}, false},
		{"null", Null{}, false},
		{"false", Bool(false), false},
		{"true", Bool(true), true},
		{"zero int", Int(0), false},
		{"int", Int(-2), true},
		{"zero float", Float(0), false},
		{"float", Float(0.5), true},
		{"empty string", String(""), false},
		// string truthiness ignores content
		{"zero string", String("0"), true},
		{"false string", String("false"), true},
		{"empty list", List{}, false},
		{"list", List{Int(1)}, true},
		{"empty map", Map{}, false},
		{"map", Map{"a": Null{}}, true},
	}
	for _, test := range tests {
		assert.Equal(t, test.truthy, test.value.Truthy(), test.name)
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		str   string
	}{
		{"undefined", Undefined{}, ""},
		{"null", Null{}, "null"},
		{"bool", Bool(true), "true"},
		{"int", Int(42), "42"},
		{"float", Float(1.5), "1.5"},
		{"float integral", Float(2), "2"},
		{"string is raw", String("a b"), "a b"},
		{"list", List{Int(1), String("x")}, `[1, "x"]`},
		{"map keys sorted", Map{"b": Int(2), "a": String("v")}, `{"a": "v", "b": 2}`},
		{"nested", Map{"l": List{Bool(false)}}, `{"l": [false]}`},
	}
	for _, test := range tests {
		assert.Equal(t, test.str, test.value.String(), test.name)
	}
}

func TestListIndex(t *testing.T) {
	var l = List{Int(1), Int(2)}
	assert.Equal(t, Int(2), l.Index(1))
	assert.Equal(t, Undefined{}, l.Index(2))
	assert.Equal(t, Undefined{}, l.Index(-1))
}

func TestMapKey(t *testing.T) {
	var m = Map{"a": Null{}}
	assert.Equal(t, Null{}, m.Key("a"))
	assert.Equal(t, Undefined{}, m.Key("b"))
}
