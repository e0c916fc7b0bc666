package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var queryContext = Map{
	"a": Map{"b": String("x")},
	"items": List{
		Map{"name": String("one")},
		Map{"name": String("two")},
	},
	"empty": String(""),
	"null":  Null{},
}

func TestQueryResolve(t *testing.T) {
	tests := []struct {
		path string
		want Value
	}{
		{"a", Map{"b": String("x")}},
		{"a.b", String("x")},
		{"items[0].name", String("one")},
		{"items[1]", Map{"name": String("two")}},
		{"empty", String("")},
		{"null", Null{}},

		// absent or untraversable paths resolve to Undefined
		{"missing", Undefined{}},
		{"a.b.c", Undefined{}},
		{"a[0]", Undefined{}},
		{"items[5]", Undefined{}},
		{"items.name", Undefined{}},
		{"", Undefined{}},
		{"a..b", Undefined{}},
		{"items[x]", Undefined{}},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, ParseQuery(test.path).Resolve(queryContext), test.path)
	}
}

func TestQueryRootIndex(t *testing.T) {
	var root = List{String("first"), String("second")}
	assert.Equal(t, String("second"), ParseQuery("[1]").Resolve(root))
}

func TestQueryHead(t *testing.T) {
	assert.Equal(t, "items", ParseQuery("items[0].name").Head())
	assert.Equal(t, "x", ParseQuery("x").Head())
	assert.Equal(t, "", ParseQuery("").Head())
}

func TestQueryResolveFrom(t *testing.T) {
	// ResolveFrom skips the leading key: the value is already bound.
	var item = Map{"name": String("bound")}
	assert.Equal(t, String("bound"), ParseQuery("x.name").ResolveFrom(item))

	// leading indexes still apply to the bound value
	var list = List{String("a"), String("b")}
	assert.Equal(t, String("b"), ParseQuery("x[1]").ResolveFrom(list))
}

func TestQueryResolveList(t *testing.T) {
	list, ok := ParseQuery("items").ResolveList(queryContext)
	assert.True(t, ok)
	assert.Len(t, list, 2)

	_, ok = ParseQuery("a").ResolveList(queryContext)
	assert.False(t, ok)
	_, ok = ParseQuery("missing").ResolveList(queryContext)
	assert.False(t, ok)
}
