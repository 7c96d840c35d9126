// Package spotlight searches the property graph of a Go value for slots
// matching a name, a kind, a value or a custom predicate, and reports each
// hit as a readable path such as `window.a.b.c -> (number)`.
//
// The walk is depth-first and pre-order, enters every container at most
// once and marks back-references to containers on the current descent path
// as `(<path>)` instead of following them.
package spotlight

import (
	"github.com/sirupsen/logrus"

	"github.com/maxw3st/spotlight/api"
	"github.com/maxw3st/spotlight/internal/match"
	"github.com/maxw3st/spotlight/internal/walk"
)

const (
	// DefaultObjectLabel prefixes hits when an explicit object is searched
	// without a path.
	DefaultObjectLabel = "<object>"
	// DefaultGlobalLabel prefixes hits found under the global root.
	DefaultGlobalLabel = "window"
)

// Sink receives one debug line per match. *logrus.Logger, *logrus.Entry and
// *log.Logger all satisfy it.
type Sink interface {
	Println(args ...any)
}

// Config holds the settings of a Finder.
type Config struct {
	// Debug writes every match to Sink as it is returned.
	Debug bool
	// Global is searched when SearchOptions.Object is nil.
	Global any
	// GlobalLabel is the path label of Global.
	GlobalLabel string
}

// Option configures a Finder.
type Option func(*Finder)

// WithDebug toggles debug output.
func WithDebug(on bool) Option {
	return func(f *Finder) { f.cfg.Debug = on }
}

// WithSink sets where debug lines go. The default is logrus' standard logger.
func WithSink(s Sink) Option {
	return func(f *Finder) {
		if s != nil {
			f.sink = s
		}
	}
}

// WithGlobal sets the root searched when no object is given. An empty label
// means DefaultGlobalLabel.
func WithGlobal(root any, label string) Option {
	return func(f *Finder) {
		f.cfg.Global = root
		if label != "" {
			f.cfg.GlobalLabel = label
		}
	}
}

// Finder runs searches. It is immutable once built and may be shared.
type Finder struct {
	cfg    Config
	sink   Sink
	walker *walk.Walker
}

// New returns a Finder configured by opts.
func New(opts ...Option) *Finder {
	f := &Finder{
		cfg:    Config{GlobalLabel: DefaultGlobalLabel},
		sink:   logrus.StandardLogger(),
		walker: walk.NewWalker(walk.ReflectHost{}),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Config returns a copy of the finder's settings.
func (f *Finder) Config() Config {
	return f.cfg
}

// ByName finds every property named name. It returns nil when name is not
// a string.
func (f *Finder) ByName(name any, opts *api.SearchOptions) []api.Match {
	pred, ok := match.ByName(name)
	return f.run(pred, ok, opts)
}

// ByKind finds every value of the given kind. kind is a case-insensitive
// kind or type name ("array", "null", "Widget"), a reflect.Type, or a
// constructor func such as NewWidget. It returns nil for anything else.
func (f *Finder) ByKind(kind any, opts *api.SearchOptions) []api.Match {
	pred, ok := match.ByKind(kind, f.walker.Host())
	return f.run(pred, ok, opts)
}

// ByValue finds every slot holding exactly value, without coercion.
func (f *Finder) ByValue(value any, opts *api.SearchOptions) []api.Match {
	pred, ok := match.ByValue(value)
	return f.run(pred, ok, opts)
}

// Custom finds every slot for which fn returns true. fn is called with the
// value, key and owner of each slot. It returns nil when fn is not a
// supported predicate func.
func (f *Finder) Custom(fn any, opts *api.SearchOptions) []api.Match {
	pred, ok := match.Custom(fn)
	return f.run(pred, ok, opts)
}

func (f *Finder) run(pred walk.Predicate, ok bool, opts *api.SearchOptions) []api.Match {
	if !ok {
		return nil
	}
	root, label := f.resolve(opts)
	matches := f.walker.Search(root, label, pred)
	if f.cfg.Debug {
		for _, m := range matches {
			f.sink.Println(m.String())
		}
	}
	return matches
}

// resolve applies the defaults for a missing object or path.
func (f *Finder) resolve(opts *api.SearchOptions) (any, string) {
	var o api.SearchOptions
	if opts != nil {
		o = *opts
	}

	root, label := o.Object, DefaultObjectLabel
	if root == nil || f.isGlobal(root) {
		root, label = f.cfg.Global, f.cfg.GlobalLabel
	}
	if o.Path != nil {
		label = *o.Path
	}
	return root, label
}

func (f *Finder) isGlobal(v any) bool {
	if f.cfg.Global == nil {
		return false
	}
	host := f.walker.Host()
	a, ok := host.Identity(v)
	if !ok {
		return false
	}
	b, ok := host.Identity(f.cfg.Global)
	return ok && a == b
}
