package template

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	var path = filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParse(t *testing.T) {
	tpl, err := Parse("", "hello <?= name ?>")
	require.NoError(t, err)
	assert.Equal(t, "", tpl.Path)
	assert.Len(t, tpl.Root.Nodes, 2)
}

func TestParseError(t *testing.T) {
	tpl, err := Parse("", "<? endif ?>")
	require.Error(t, err)
	assert.Nil(t, tpl)
}

func TestParseFile(t *testing.T) {
	var path = writeFile(t, t.TempDir(), "a.tpl", "body")
	tpl, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, tpl.Path)
	assert.Equal(t, "body", tpl.Root.String())
}

func TestParseFileMissing(t *testing.T) {
	// a path-addressed template that does not exist has nothing to
	// parse: empty template, not an error
	tpl, err := ParseFile(filepath.Join(t.TempDir(), "absent.tpl"))
	require.NoError(t, err)
	require.NotNil(t, tpl.Root)
	assert.Empty(t, tpl.Root.Nodes)
}

func TestCacheCompilesOnce(t *testing.T) {
	var path = writeFile(t, t.TempDir(), "a.tpl", "v1")
	var cache = NewCache()

	first, err := cache.Get(path)
	require.NoError(t, err)
	again, err := cache.Get(path)
	require.NoError(t, err)
	assert.Same(t, first, again)

	// the file changing on disk does not affect the cached instance
	writeFile(t, filepath.Dir(path), "a.tpl", "v2")
	again, err = cache.Get(path)
	require.NoError(t, err)
	assert.Same(t, first, again)
}

func TestCacheInvalidate(t *testing.T) {
	var path = writeFile(t, t.TempDir(), "a.tpl", "v1")
	var cache = NewCache()

	first, err := cache.Get(path)
	require.NoError(t, err)

	writeFile(t, filepath.Dir(path), "a.tpl", "v2")
	cache.Invalidate(path)
	second, err := cache.Get(path)
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Equal(t, "v2", second.Root.String())
}

func TestCachePut(t *testing.T) {
	var cache = NewCache()
	tpl, err := Parse("mem.tpl", "in memory")
	require.NoError(t, err)
	cache.Put("mem.tpl", tpl)

	got, err := cache.Get("mem.tpl")
	require.NoError(t, err)
	assert.Same(t, tpl, got)
}

func TestCacheCompileError(t *testing.T) {
	var path = writeFile(t, t.TempDir(), "bad.tpl", "<? if x ?>unclosed")
	var cache = NewCache()
	_, err := cache.Get(path)
	require.Error(t, err)

	// a failed compile is not cached as a template
	_, err = cache.Get(path)
	require.Error(t, err)
}
