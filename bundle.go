package jsont

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/tmplkit/jsont/data"
	"github.com/tmplkit/jsont/template"
)

type templateFile struct{ path, content string }

// Bundle collects template files and global data ahead of compilation.  It
// acts as input to Compile, which produces a Registry.
type Bundle struct {
	files                 []templateFile
	globals               data.Map
	err                   error
	watcher               *fsnotify.Watcher
	logger                *zap.Logger
	recompilationCallback func(*Registry)
}

// NewBundle returns an empty bundle.
func NewBundle() *Bundle {
	return &Bundle{globals: make(data.Map), logger: zap.NewNop()}
}

// Logger sets the logger used for file-watching notices and errors.  The
// default discards everything.
func (b *Bundle) Logger(logger *zap.Logger) *Bundle {
	b.logger = logger
	return b
}

// WatchFiles tells the bundle to watch any template files added to it,
// re-compile them as they change, and swap the updates into the compiled
// registry.  It should be called once, before adding any files.
func (b *Bundle) WatchFiles(watch bool) *Bundle {
	if watch && b.err == nil && b.watcher == nil {
		b.watcher, b.err = fsnotify.NewWatcher()
	}
	return b
}

// AddTemplateDir adds all *.tpl files found within the given directory
// (including sub-directories) to the bundle.
func (b *Bundle) AddTemplateDir(root string) *Bundle {
	var err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".tpl") {
			return nil
		}
		b.AddTemplateFile(path)
		return nil
	})
	if err != nil {
		b.err = err
	}
	return b
}

// AddTemplateFile adds the template stored at the given path to this
// bundle.  If WatchFiles is on, it will be subsequently watched for
// updates.
func (b *Bundle) AddTemplateFile(filename string) *Bundle {
	var content, err = os.ReadFile(filename)
	if err != nil {
		b.err = err
	}
	if b.err == nil && b.watcher != nil {
		b.err = b.watcher.Add(filename)
	}
	return b.AddTemplateString(filename, string(content))
}

// AddTemplateString adds the given template source under the given path.
// The path names the template for rendering and anchors its relative
// includes; it does not need to exist on disk.
func (b *Bundle) AddTemplateString(path, content string) *Bundle {
	b.files = append(b.files, templateFile{path, content})
	return b
}

// AddGlobalsFile opens and parses the given YAML file and adds the
// resulting data map to the bundle's globals.  Globals act as fallback data
// during rendering: paths the render context does not satisfy are retried
// against them.
func (b *Bundle) AddGlobalsFile(filename string) *Bundle {
	var content, err = os.ReadFile(filename)
	if err != nil {
		b.err = err
		return b
	}
	var raw map[string]interface{}
	if err := yaml.Unmarshal(content, &raw); err != nil {
		b.err = err
		return b
	}
	if len(raw) == 0 {
		return b
	}
	return b.AddGlobalsMap(data.New(raw).(data.Map))
}

// AddGlobalsMap adds the given globals to the bundle.  Redefining an
// existing global is an error.
func (b *Bundle) AddGlobalsMap(globals data.Map) *Bundle {
	for k, v := range globals {
		if existing, ok := b.globals[k]; ok {
			b.err = fmt.Errorf("global %q already defined as %q", k, existing)
			return b
		}
		b.globals[k] = v
	}
	return b
}

// SetRecompilationCallback assigns the bundle a function to call after a
// watched template has been recompiled and swapped into the registry.
func (b *Bundle) SetRecompilationCallback(c func(*Registry)) *Bundle {
	b.recompilationCallback = c
	return b
}

// Compile parses every template in this bundle and returns the completed
// registry.  The first file that fails to compile aborts the whole bundle;
// a registry never holds a partially-compiled template.
func (b *Bundle) Compile() (*Registry, error) {
	if b.err != nil {
		return nil, b.err
	}

	var cache = template.NewCache()
	for _, f := range b.files {
		var tpl, err = template.Parse(f.path, f.content)
		if err != nil {
			return nil, err
		}
		cache.Put(f.path, tpl)
	}

	var registry = &Registry{cache: cache}
	if len(b.globals) > 0 {
		registry.globals = b.globals
	}
	if b.watcher != nil {
		go b.recompiler(registry)
	}
	return registry, nil
}

// recompiler services fsnotify events for the life of the registry,
// re-parsing changed files and swapping them into the cache.  A file that
// no longer compiles is logged and the previous version stays in use.
func (b *Bundle) recompiler(registry *Registry) {
	for {
		select {
		case ev := <-b.watcher.Events:
			// A rename or remove drops the watch.  Add it back,
			// after a delay for the editor to finish writing.
			if ev.Op&(fsnotify.Rename|fsnotify.Remove) != 0 {
				time.Sleep(10 * time.Millisecond)
				if err := b.watcher.Add(ev.Name); err != nil {
					b.logger.Warn("re-watch failed", zap.String("path", ev.Name), zap.Error(err))
					continue
				}
			}

			var tpl, err = template.ParseFile(ev.Name)
			if err != nil {
				b.logger.Warn("recompile failed", zap.String("path", ev.Name), zap.Error(err))
				continue
			}
			registry.cache.Put(ev.Name, tpl)

			if b.recompilationCallback != nil {
				b.recompilationCallback(registry)
			}
			b.logger.Info("template updated", zap.String("path", ev.Name))

		case err := <-b.watcher.Errors:
			b.logger.Warn("watch error", zap.Error(err))
		}
	}
}
