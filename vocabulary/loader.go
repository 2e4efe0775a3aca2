package vocabulary

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/c360studio/candv/constants"
	"github.com/c360studio/candv/registry"
)

// File is a vocabulary file and the containers compiled from it.
type File struct {
	Path       string
	Containers []*constants.Container
}

// Loader compiles vocabulary documents into containers.
type Loader struct {
	logger   *slog.Logger
	registry *registry.Registry
}

// NewLoader creates a loader. A nil logger falls back to slog.Default() and a
// nil registry to registry.Global().
func NewLoader(logger *slog.Logger, reg *registry.Registry) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	if reg == nil {
		reg = registry.Global()
	}
	return &Loader{logger: logger, registry: reg}
}

// Compile builds the root container declared by doc.
func (l *Loader) Compile(doc *Document) (*constants.Container, error) {
	class, err := classFor(doc.Class)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", doc.Name, err)
	}
	attrs, err := l.attrs(doc.Name, doc.Class, doc.Constants)
	if err != nil {
		return nil, err
	}
	return constants.Define(doc.Name, attrs,
		constants.WithConstantClass(class),
		constants.WithRegistry(l.registry))
}

// attrs creates the constants for entries in order. path names the
// enclosing container for error messages.
func (l *Loader) attrs(path, class string, entries []Entry) (constants.Attrs, error) {
	seen := make(map[string]bool, len(entries))
	attrs := make(constants.Attrs, 0, len(entries))

	for i := range entries {
		e := &entries[i]
		if e.Name == "" {
			return nil, fmt.Errorf("%w: constant %d of %s has no name", ErrInvalidDocument, i+1, path)
		}
		if seen[e.Name] {
			return nil, fmt.Errorf("%w: %s.%s", ErrDuplicateName, path, e.Name)
		}
		seen[e.Name] = true

		kind := e.Kind
		if kind == "" {
			kind = class
		}
		if kind == "" {
			kind = KindSimple
		}
		c, err := l.constant(path, kind, e)
		if err != nil {
			return nil, err
		}

		if e.Group == nil {
			attrs = append(attrs, constants.Attr{Name: e.Name, Value: c})
			continue
		}

		groupClass, err := classFor(e.Group.Class)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", path, e.Name, err)
		}
		members, err := l.attrs(path+"."+e.Name, e.Group.Class, e.Group.Constants)
		if err != nil {
			return nil, err
		}
		g, err := constants.NewGroup(c, members, constants.WithConstantClass(groupClass))
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", path, e.Name, err)
		}
		attrs = append(attrs, constants.Attr{Name: e.Name, Value: g})
	}
	return attrs, nil
}

func (l *Loader) constant(path, kind string, e *Entry) (constants.Constant, error) {
	if !Kinds.Contains(kind) {
		return nil, fmt.Errorf("%w: %q for %s.%s (known: %v)", ErrUnknownKind, kind, path, e.Name, Kinds.Names())
	}

	hasValue := kind == KindValue || kind == KindVerboseValue
	isVerbose := kind == KindVerbose || kind == KindVerboseValue
	switch {
	case e.Value != nil && !hasValue:
		return nil, fmt.Errorf("%w: value on %s constant %s.%s", ErrFieldNotAllowed, kind, path, e.Name)
	case (e.VerboseName != nil || e.HelpText != nil) && !isVerbose:
		return nil, fmt.Errorf("%w: verbose_name/help_text on %s constant %s.%s", ErrFieldNotAllowed, kind, path, e.Name)
	}

	v, err := e.decodeValue()
	if err != nil {
		return nil, err
	}
	return newConstant(kind, e, v), nil
}

// LoadFile parses and compiles every document in path.
func (l *Loader) LoadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vocabulary: %w", err)
	}
	defer f.Close()

	docs, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	file := &File{Path: path}
	for _, doc := range docs {
		c, err := l.Compile(doc)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		file.Containers = append(file.Containers, c)
	}

	l.logger.Debug("Loaded vocabulary",
		slog.String("path", path),
		slog.Int("containers", len(file.Containers)))
	return file, nil
}

// LoadGlob loads every file matching the patterns, which may use "**".
// Files are loaded in lexical order and each file is loaded once.
func (l *Loader) LoadGlob(patterns ...string) ([]*File, error) {
	paths, err := Match(patterns...)
	if err != nil {
		return nil, err
	}

	files := make([]*File, 0, len(paths))
	for _, p := range paths {
		f, err := l.LoadFile(p)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

// Match expands the patterns into a sorted, de-duplicated list of files.
// A pattern without glob characters must name an existing file.
func Match(patterns ...string) ([]string, error) {
	var paths []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob error: %w", err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no vocabulary files match pattern: %s", pattern)
		}
		for _, m := range matches {
			paths = append(paths, filepath.Clean(m))
		}
	}
	slices.Sort(paths)
	return slices.Compact(paths), nil
}

func classFor(kind string) (reflect.Type, error) {
	if kind == "" {
		return constants.BaseClass, nil
	}
	class, ok := classes[kind]
	if !ok {
		return nil, fmt.Errorf("%w: class %q (known: %v)", ErrUnknownKind, kind, Kinds.Names())
	}
	return class, nil
}

// Compile builds doc with a default loader.
func Compile(doc *Document) (*constants.Container, error) {
	return NewLoader(nil, nil).Compile(doc)
}

// Load loads path with a default loader.
func Load(path string) (*File, error) {
	return NewLoader(nil, nil).LoadFile(path)
}
