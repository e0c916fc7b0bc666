// Package render walks a compiled part tree against a data context and
// writes the output text.
//
// Rendering is lenient by design: an absent query path, a loop over
// anything that is not a list, or a loop against a non-map context all
// produce no output rather than an error.  Only collaborator failures (a
// cache returning no template, a writer refusing bytes) abort a render.
package render

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"runtime/debug"

	"github.com/tmplkit/jsont/ast"
	"github.com/tmplkit/jsont/data"
	"github.com/tmplkit/jsont/template"
)

// Renderer provides parameters to template execution.
type Renderer struct {
	tmpl  *template.Template
	cache *template.Cache
	ij    data.Map
}

// NewRenderer returns a renderer for the given compiled template.  Without
// a cache, includes are compiled from disk on every render.
func NewRenderer(tmpl *template.Template) *Renderer {
	return &Renderer{tmpl: tmpl}
}

// WithCache supplies a template cache for include resolution, so each
// included path is compiled at most once across renders.
func (r *Renderer) WithCache(cache *template.Cache) *Renderer {
	r.cache = cache
	return r
}

// Inject supplies fallback data: paths the render context does not satisfy
// are retried against it.  Used for bundle-wide globals.
func (r *Renderer) Inject(ij data.Map) *Renderer {
	r.ij = ij
	return r
}

// Execute renders the template against the given data context, writing
// output to wr.  The context must not be mutated by other goroutines for
// the duration of the call; the renderer itself never mutates it.
func (r *Renderer) Execute(wr io.Writer, obj data.Value) (err error) {
	if r.tmpl == nil || r.tmpl.Root == nil {
		return errors.New("no compiled template to render")
	}
	if obj == nil {
		obj = data.Null{}
	}
	var s = &state{
		tmpl:  r.tmpl,
		wr:    wr,
		base:  obj,
		cache: r.cache,
		ij:    r.ij,
	}
	defer s.errRecover(&err)
	s.walk(r.tmpl.Root)
	return nil
}

// state represents the state of one template execution.
type state struct {
	tmpl    *template.Template
	wr      io.Writer
	node    ast.Node   // current node, for errors
	base    data.Value // the root data context
	context scope      // loop-variable overlays
	cache   *template.Cache
	ij      data.Map
}

// at marks the state to be on node n, for error reporting.
func (s *state) at(node ast.Node) {
	s.node = node
}

// errorf formats the error and terminates processing.
func (s *state) errorf(format string, args ...interface{}) {
	panic(fmt.Errorf("template %s: %s", s.name(), fmt.Sprintf(format, args...)))
}

func (s *state) name() string {
	if s.tmpl.Path == "" {
		return "(inline)"
	}
	return s.tmpl.Path
}

// errRecover turns panics raised by errorf (or the runtime) into error
// returns from Execute.
func (s *state) errRecover(errp *error) {
	if e := recover(); e != nil {
		switch e := e.(type) {
		case runtime.Error:
			*errp = fmt.Errorf("template %s: %v\n%v", s.name(), e, string(debug.Stack()))
		case error:
			*errp = e
		default:
			*errp = fmt.Errorf("template %s: %v", s.name(), e)
		}
	}
}

// walk renders one part and recurses into its children.
func (s *state) walk(node ast.Node) {
	s.at(node)
	switch node := node.(type) {
	case *ast.ListNode:
		for _, n := range node.Nodes {
			s.walk(n)
		}

	case *ast.RawTextNode:
		if _, err := io.WriteString(s.wr, node.Text); err != nil {
			s.errorf("%s", err)
		}

	case *ast.EchoNode:
		var v = s.resolve(node.Query)
		if _, undef := v.(data.Undefined); undef {
			break
		}
		if _, err := io.WriteString(s.wr, v.String()); err != nil {
			s.errorf("%s", err)
		}

	case *ast.IfNode:
		for _, cond := range node.Conds {
			if s.evalGuard(cond) {
				s.walk(cond.Body)
				break
			}
		}

	case *ast.ForNode:
		// Loops bind their variable as a named field over the context,
		// so only an associative context can host one.
		if _, ok := s.base.(data.Map); !ok {
			break
		}
		var list, ok = s.resolve(node.Query).(data.List)
		if !ok {
			break
		}
		s.context.push()
		for _, item := range list {
			s.context.set(node.Var, item)
			s.walk(node.Body)
		}
		s.context.pop()

	case *ast.IncludeNode:
		s.include(node)

	default:
		s.errorf("unknown part type: %T", node)
	}
}

// evalGuard evaluates one conditional branch's guard against the context.
func (s *state) evalGuard(cond *ast.CondNode) bool {
	switch cond.Kind {
	case ast.GuardElse:
		return true
	case ast.GuardExists:
		// Present counts, truthy or not.
		var _, undef = s.resolve(cond.Query).(data.Undefined)
		return !undef
	default:
		return s.resolve(cond.Query).Truthy()
	}
}

// resolve evaluates a query path: the leading segment is matched against
// loop-variable bindings first, then the whole path against the base
// context, then against any injected globals.
func (s *state) resolve(path string) data.Value {
	var q = data.ParseQuery(path)
	if bound, ok := s.context.lookup(q.Head()); ok {
		return q.ResolveFrom(bound)
	}
	var v = q.Resolve(s.base)
	if _, undef := v.(data.Undefined); undef && s.ij != nil {
		return q.Resolve(s.ij)
	}
	return v
}

// include renders the compiled template at node.Path with the same data
// context, through the cache when one is configured and by compiling from
// scratch otherwise.
func (s *state) include(node *ast.IncludeNode) {
	var (
		tpl *template.Template
		err error
	)
	if s.cache != nil {
		tpl, err = s.cache.Get(node.Path)
	} else {
		tpl, err = template.ParseFile(node.Path)
	}
	if err != nil {
		s.errorf("include %q: %s", node.Path, err)
	}
	if tpl == nil || tpl.Root == nil {
		s.errorf("include %q: no compiled template", node.Path)
	}
	var prev = s.tmpl
	s.tmpl = tpl
	s.walk(tpl.Root)
	s.tmpl = prev
}
