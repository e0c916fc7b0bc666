package jsont

import (
	"bytes"
	"io"

	"github.com/tmplkit/jsont/data"
	"github.com/tmplkit/jsont/render"
	"github.com/tmplkit/jsont/template"
)

// Registry is a set of compiled templates plus optional global data, ready
// to render.  It is produced by Bundle.Compile.
type Registry struct {
	cache   *template.Cache
	globals data.Map
}

// Template returns the compiled template for the given path, compiling it
// on first request if it was not part of the bundle.
func (r *Registry) Template(path string) (*template.Template, error) {
	return r.cache.Get(path)
}

// Cache exposes the underlying template cache, for wiring into a custom
// render.Renderer.
func (r *Registry) Cache() *template.Cache {
	return r.cache
}

// Render executes the template at the given path (as added to the bundle)
// against obj, converted through data.New, and writes the output to wr.
func (r *Registry) Render(wr io.Writer, path string, obj interface{}) error {
	var tpl, err = r.cache.Get(path)
	if err != nil {
		return err
	}
	return render.NewRenderer(tpl).
		WithCache(r.cache).
		Inject(r.globals).
		Execute(wr, data.New(obj))
}

// Parse compiles an in-memory template source.  name may be a path, used to
// anchor relative includes, or empty.
func Parse(name, src string) (*template.Template, error) {
	return template.Parse(name, src)
}

// RenderString compiles and renders an in-memory template in one shot.  Any
// includes are compiled on every call; use a Bundle and Registry when the
// same templates render repeatedly.
func RenderString(src string, obj interface{}) (string, error) {
	var tpl, err = template.Parse("", src)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := render.NewRenderer(tpl).Execute(&buf, data.New(obj)); err != nil {
		return "", err
	}
	return buf.String(), nil
}
