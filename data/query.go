package data

import (
	"strconv"
	"strings"
)

// Query is a parsed path locating a value inside a nested context.  Paths
// are dot-separated names with optional bracketed list indexes, e.g.
// "order.lines[2].sku" or "[0]" to index the root.
//
// Queries never fail: a path that does not parse, or that traverses a
// missing key, a non-map, a non-list or an out-of-range index, resolves to
// Undefined.
type Query struct {
	segs []segment
	bad  bool
}

type segment struct {
	key     string // may be empty for a bare index segment
	indexes []int
}

// ParseQuery parses a path into a Query.
func ParseQuery(path string) Query {
	if path == "" {
		return Query{bad: true}
	}
	var q Query
	for _, part := range strings.Split(path, ".") {
		var seg segment
		var bracket = strings.IndexByte(part, '[')
		if bracket == -1 {
			seg.key = part
		} else {
			seg.key = part[:bracket]
			var rest = part[bracket:]
			for rest != "" {
				var end = strings.IndexByte(rest, ']')
				if end == -1 || !strings.HasPrefix(rest, "[") {
					return Query{bad: true}
				}
				var i, err = strconv.Atoi(rest[1:end])
				if err != nil {
					return Query{bad: true}
				}
				seg.indexes = append(seg.indexes, i)
				rest = rest[end+1:]
			}
		}
		if seg.key == "" && seg.indexes == nil {
			return Query{bad: true}
		}
		q.segs = append(q.segs, seg)
	}
	return q
}

// Head returns the name of the leading segment, which the renderer matches
// against loop-variable bindings before falling back to the full context.
func (q Query) Head() string {
	if q.bad || len(q.segs) == 0 {
		return ""
	}
	return q.segs[0].key
}

// Resolve evaluates the full path against root.
func (q Query) Resolve(root Value) Value {
	if q.bad {
		return Undefined{}
	}
	var v = root
	for _, seg := range q.segs {
		v = seg.apply(v, true)
	}
	return v
}

// ResolveFrom evaluates the path against a value already bound to the
// leading segment's name: the leading key lookup is skipped and its indexes
// apply directly to v.
func (q Query) ResolveFrom(v Value) Value {
	if q.bad || len(q.segs) == 0 {
		return Undefined{}
	}
	v = q.segs[0].apply(v, false)
	for _, seg := range q.segs[1:] {
		v = seg.apply(v, true)
	}
	return v
}

// ResolveList evaluates the path and reports whether it reached a list.
func (q Query) ResolveList(root Value) (List, bool) {
	var list, ok = q.Resolve(root).(List)
	return list, ok
}

func (s segment) apply(v Value, useKey bool) Value {
	if useKey && s.key != "" {
		var m, ok = v.(Map)
		if !ok {
			return Undefined{}
		}
		v = m.Key(s.key)
	}
	for _, i := range s.indexes {
		var l, ok = v.(List)
		if !ok {
			return Undefined{}
		}
		v = l.Index(i)
	}
	return v
}
