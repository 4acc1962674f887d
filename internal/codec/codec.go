// Package codec converts between graph input files and domain.GraphFragment,
// and writes frames and frozen positions for renderers and storage.
package codec

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"forcegraph/internal/domain"
)

// Importer interface for importing graph data from various formats
type Importer interface {
	Parse(r io.Reader) (*domain.GraphFragment, error)
	Format() string
}

// Exporter interface for exporting graph data to various formats
type Exporter interface {
	Export(fragment *domain.GraphFragment, w io.Writer) error
	Format() string
}

// DocumentWriter writes frames and frozen layouts as documents
type DocumentWriter interface {
	WriteFrame(frame domain.Frame, w io.Writer) error
	WriteLayout(layout *domain.Layout, w io.Writer) error
	Format() string
}

// Registry resolves codecs by format name
type Registry struct {
	importers map[string]Importer
	exporters map[string]Exporter
	writers   map[string]DocumentWriter
}

// NewRegistry creates a registry holding the CSV, JSON and YAML codecs
func NewRegistry() *Registry {
	r := &Registry{
		importers: make(map[string]Importer),
		exporters: make(map[string]Exporter),
		writers:   make(map[string]DocumentWriter),
	}

	csvCodec, jsonCodec, yamlCodec := NewCSVCodec(), NewJSONCodec(), NewYAMLCodec()
	for _, c := range []interface {
		Importer
		Exporter
	}{csvCodec, jsonCodec, yamlCodec} {
		r.importers[c.Format()] = c
		r.exporters[c.Format()] = c
	}
	r.writers[jsonCodec.Format()] = jsonCodec
	r.writers[yamlCodec.Format()] = yamlCodec
	r.importers["yml"] = yamlCodec
	r.writers["yml"] = yamlCodec
	return r
}

// Importer returns the importer for format
func (r *Registry) Importer(format string) (Importer, error) {
	if imp, ok := r.importers[normalize(format)]; ok {
		return imp, nil
	}
	return nil, fmt.Errorf("unsupported import format %q (supported: %s)", format, keys(r.importers))
}

// Exporter returns the fragment exporter for format
func (r *Registry) Exporter(format string) (Exporter, error) {
	if exp, ok := r.exporters[normalize(format)]; ok {
		return exp, nil
	}
	return nil, fmt.Errorf("unsupported export format %q (supported: %s)", format, keys(r.exporters))
}

// Writer returns the document writer for format
func (r *Registry) Writer(format string) (DocumentWriter, error) {
	if w, ok := r.writers[normalize(format)]; ok {
		return w, nil
	}
	return nil, fmt.Errorf("unsupported document format %q (supported: %s)", format, keys(r.writers))
}

// FormatFromPath guesses a format from a file extension, defaulting to json
func FormatFromPath(path string) string {
	i := strings.LastIndex(path, ".")
	if i < 0 {
		return "json"
	}
	return normalize(path[i+1:])
}

func normalize(format string) string {
	return strings.ToLower(strings.TrimSpace(format))
}

func keys[V any](m map[string]V) string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
