package ingest

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	billy "github.com/go-git/go-billy/v5"
	"golang.org/x/sync/errgroup"

	"github.com/maxw3st/spotlight/internal/walk"
)

// Decoder turns raw file content into a searchable value.
type Decoder interface {
	Decode(ctx context.Context, name string, content []byte) (any, error)
}

// DecoderFunc adapts a function to Decoder.
type DecoderFunc func(ctx context.Context, name string, content []byte) (any, error)

func (f DecoderFunc) Decode(ctx context.Context, name string, content []byte) (any, error) {
	return f(ctx, name, content)
}

// Loader reads documents from a filesystem and decodes them by extension.
type Loader struct {
	FS billy.Filesystem
	// Resolve, if set, maps a name as given by the user to its path in FS.
	// Names keep labelling the documents.
	Resolve func(name string) (string, error)

	decoders map[string]Decoder
}

// NewLoader returns a Loader reading from fs with every built-in format
// registered.
func NewLoader(fs billy.Filesystem) *Loader {
	l := &Loader{FS: fs, decoders: make(map[string]Decoder)}
	l.Register(DecoderFunc(decodeJSON), ".json")
	l.Register(DecoderFunc(decodeYAML), ".yaml", ".yml")
	l.Register(DecoderFunc(decodeTOML), ".toml")
	l.Register(DecoderFunc(decodeHCL), ".hcl", ".tf")
	l.Register(DecoderFunc(decodeSQLite), ".db", ".sqlite")
	for ext := range syntaxLanguages {
		l.Register(DecoderFunc(decodeSyntax), ext)
	}
	return l
}

// Register installs d for the given file extensions.
func (l *Loader) Register(d Decoder, exts ...string) {
	for _, ext := range exts {
		l.decoders[strings.ToLower(ext)] = d
	}
}

// Supports reports whether name has a registered extension.
func (l *Loader) Supports(name string) bool {
	_, ok := l.decoders[strings.ToLower(filepath.Ext(name))]
	return ok
}

// Load reads and decodes a single file.
func (l *Loader) Load(ctx context.Context, name string) (any, error) {
	d, ok := l.decoders[strings.ToLower(filepath.Ext(name))]
	if !ok {
		return nil, fmt.Errorf("unsupported file type %q", name)
	}
	content, err := l.read(name)
	if err != nil {
		return nil, err
	}
	doc, err := d.Decode(ctx, name, content)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return doc, nil
}

// LoadAll loads names concurrently. A single file yields its document;
// several yield an ordered object keyed by file name in argument order.
func (l *Loader) LoadAll(ctx context.Context, names []string) (any, error) {
	if len(names) == 1 {
		return l.Load(ctx, names[0])
	}

	docs := make([]any, len(names))
	g, ctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			doc, err := l.Load(ctx, name)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	root := walk.NewOrderedObject()
	for i, name := range names {
		root.Set(name, docs[i])
	}
	return root, nil
}

func (l *Loader) read(name string) ([]byte, error) {
	if l.Resolve != nil {
		resolved, err := l.Resolve(name)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", name, err)
		}
		name = resolved
	}
	f, err := l.FS.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer func() { _ = f.Close() }() // safe to ignore

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return content, nil
}
