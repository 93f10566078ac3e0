// internal/app/store/tosdocs/store.go
package tosdocs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "termsvc/tosdocs"

// ErrNotFound is returned when a requested document does not exist, is not
// a regular file, or resolves outside the data directory. Callers cannot
// tell these cases apart.
var ErrNotFound = errors.New("tosdocs: document not found")

// Store provides read-only access to the Terms of Service documents kept in
// a single data directory. Files are populated externally; the store never
// writes.
type Store struct {
	dir    string // canonical absolute path of the data directory
	root   *os.Root
	tracer trace.Tracer
}

// Option configures a Store.
type Option func(*Store)

// WithTracerProvider sets the provider the store's read spans come from.
// The global provider is used otherwise.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Store) {
		s.tracer = tp.Tracer(tracerName)
	}
}

// Open canonicalises dir (absolute, symlinks evaluated) and opens it as the
// store's data directory. dir must exist and be a directory.
func Open(dir string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("tosdocs: data directory is required")
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("tosdocs: resolve %q: %w", dir, err)
	}
	canon, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("tosdocs: resolve %q: %w", dir, err)
	}

	fi, err := os.Stat(canon)
	if err != nil {
		return nil, fmt.Errorf("tosdocs: stat %q: %w", canon, err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("tosdocs: %q is not a directory", canon)
	}

	root, err := os.OpenRoot(canon)
	if err != nil {
		return nil, fmt.Errorf("tosdocs: open %q: %w", canon, err)
	}

	s := &Store{
		dir:    canon,
		root:   root,
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Dir returns the canonical path of the data directory.
func (s *Store) Dir() string {
	return s.dir
}

// Read returns the full content of the named document. name is relative to
// the data directory and is untrusted: any value that does not resolve to a
// regular file inside the directory yields ErrNotFound.
func (s *Store) Read(ctx context.Context, name string) ([]byte, error) {
	_, span := s.tracer.Start(ctx, "tosdocs.Read", trace.WithAttributes(
		attribute.String("tos.file", name),
	))
	defer span.End()

	data, err := s.read(name)
	switch {
	case errors.Is(err, ErrNotFound):
		span.SetAttributes(attribute.Bool("tos.found", false))
	case err != nil:
		span.RecordError(err)
		span.SetStatus(codes.Error, "read failed")
	default:
		span.SetAttributes(
			attribute.Bool("tos.found", true),
			attribute.Int("tos.bytes", len(data)),
		)
	}
	return data, err
}

func (s *Store) read(name string) ([]byte, error) {
	rel, err := s.resolve(name)
	if err != nil {
		return nil, err
	}

	f, err := s.root.Open(rel)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("tosdocs: open %q: %w", rel, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("tosdocs: stat %q: %w", rel, err)
	}
	if !fi.Mode().IsRegular() {
		return nil, ErrNotFound
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("tosdocs: read %q: %w", rel, err)
	}
	return data, nil
}

// resolve maps an untrusted name to a path relative to the data directory.
// The joined path must stay inside the directory both lexically and after
// symlinks are evaluated.
func (s *Store) resolve(name string) (string, error) {
	if name == "" || strings.ContainsRune(name, 0) {
		return "", ErrNotFound
	}
	// Join would drop a trailing separator and turn "tos.txt/" into tos.txt.
	if strings.HasSuffix(name, "/") || strings.HasSuffix(name, string(filepath.Separator)) {
		return "", ErrNotFound
	}

	full := filepath.Join(s.dir, name)
	if !within(s.dir, full) {
		return "", ErrNotFound
	}

	canon, err := filepath.EvalSymlinks(full)
	if err != nil {
		// Permission problems inside the directory are server faults; every
		// other failure (missing, not a directory, symlink loop) is absence.
		if errors.Is(err, fs.ErrPermission) {
			return "", fmt.Errorf("tosdocs: resolve %q: %w", name, err)
		}
		return "", ErrNotFound
	}
	if !within(s.dir, canon) {
		return "", ErrNotFound
	}

	rel, err := filepath.Rel(s.dir, canon)
	if err != nil || rel == "." {
		return "", ErrNotFound
	}
	return rel, nil
}

// Check reports whether the data directory is still present and readable.
func (s *Store) Check() error {
	fi, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("tosdocs: stat data directory: %w", err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("tosdocs: %q is not a directory", s.dir)
	}

	f, err := s.root.Open(".")
	if err != nil {
		return fmt.Errorf("tosdocs: open data directory: %w", err)
	}
	return f.Close()
}

// Close releases the directory handle.
func (s *Store) Close() error {
	return s.root.Close()
}

func within(base, target string) bool {
	rel, err := filepath.Rel(base, target)
	if err != nil || filepath.IsAbs(rel) {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
