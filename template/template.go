// Package template pairs a compiled part tree with the source location it
// was parsed from, and caches compiled templates by path.
package template

import (
	"os"

	"github.com/tmplkit/jsont/ast"
	"github.com/tmplkit/jsont/parse"
)

// Template is a compiled template: the root of its part tree plus the path
// it was parsed from.  The path anchors relative include resolution.  The
// tree is immutable once parsing completes and may be rendered concurrently.
type Template struct {
	Path string
	Root *ast.ListNode
}

// Parse compiles the given source.  path may be empty for in-memory text,
// in which case relative includes are left for the cache to resolve.
// A template that fails to compile is not returned.
func Parse(path, text string) (*Template, error) {
	var root, err = parse.Template(path, text)
	if err != nil {
		return nil, err
	}
	return &Template{Path: path, Root: root}, nil
}

// ParseFile compiles the template stored at path.  A missing file yields an
// empty template rather than an error: a path-addressed template that does
// not exist has nothing to parse.
func ParseFile(path string) (*Template, error) {
	var content, err = os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Template{Path: path, Root: &ast.ListNode{}}, nil
		}
		return nil, err
	}
	return Parse(path, string(content))
}
