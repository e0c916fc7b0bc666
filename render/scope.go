package render

import "github.com/tmplkit/jsont/data"

// scope is the stack of loop-variable overlays laid over the base context.
// Each open loop contributes one frame; a binding in a deeper frame shadows
// an outer one of the same name and vanishes when its frame pops.  Binding
// loop variables here, instead of mutating the caller's data, keeps the
// context restored after every loop and makes concurrent renders of a
// shared data value safe.
type scope []data.Map

// push creates a new frame.
func (s *scope) push() {
	*s = append(*s, make(data.Map))
}

// pop discards the last frame pushed.
func (s *scope) pop() {
	*s = (*s)[:len(*s)-1]
}

// set binds k in the deepest frame.
func (s scope) set(k string, v data.Value) {
	s[len(s)-1][k] = v
}

// lookup checks the frames, deepest out, for the given name.
func (s scope) lookup(k string) (data.Value, bool) {
	for i := range s {
		if val, ok := s[len(s)-i-1][k]; ok {
			return val, true
		}
	}
	return data.Undefined{}, false
}
