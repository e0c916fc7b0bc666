package template

import "sync"

// Cache hands out compiled templates by path, compiling each distinct path
// at most once until it is invalidated or replaced.  Safe for concurrent
// use.  It is an explicit collaborator: pass it to a renderer rather than
// relying on process-wide state, so tests can substitute their own.
type Cache struct {
	mu   sync.Mutex
	tpls map[string]*Template
}

func NewCache() *Cache {
	return &Cache{tpls: make(map[string]*Template)}
}

// Get returns the compiled template for path, compiling it on first
// request.  Repeated calls for the same path return the same instance.
func (c *Cache) Get(path string) (*Template, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if tpl, ok := c.tpls[path]; ok {
		return tpl, nil
	}
	var tpl, err = ParseFile(path)
	if err != nil {
		return nil, err
	}
	c.tpls[path] = tpl
	return tpl, nil
}

// Put stores an already-compiled template under path, replacing any cached
// instance.  Recompilers use this to swap in updated templates.
func (c *Cache) Put(path string, tpl *Template) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tpls[path] = tpl
}

// Invalidate drops the cached template for path; the next Get recompiles.
func (c *Cache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.tpls, path)
}
