// Package ingest parses bulk ticket uploads (CSV, JSON, XML, XLSX) into a
// per-record ledger and persists the records that validate.
package ingest

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// ErrUnsupportedFormat is returned for formats or file extensions that no
// registered parser handles.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Parser turns raw upload content into a ledger. Structural problems are
// reported as a single line-0 failure, never as an error.
type Parser interface {
	Info() FormatInfo
	Parse(content []byte) Result
}

// FormatInfo describes a registered format. Exposed via GET /tickets/import/formats.
type FormatInfo struct {
	Format      string   `json:"format"`
	Extensions  []string `json:"extensions"`
	Description string   `json:"description"`
}

// Registry holds parsers by format name.
type Registry struct {
	mu      sync.RWMutex
	parsers map[string]Parser
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		parsers: make(map[string]Parser),
	}
}

// DefaultRegistry returns a Registry with every built-in format.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&CSVParser{})
	r.Register(&JSONParser{})
	r.Register(&XMLParser{})
	r.Register(&XLSXParser{})
	return r
}

// Register adds or replaces the parser for its format.
func (r *Registry) Register(p Parser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parsers[p.Info().Format] = p
}

// Get returns the parser for format.
func (r *Registry) Get(format string) (Parser, error) {
	r.mu.RLock()
	p, ok := r.parsers[format]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	return p, nil
}

// FormatForFilename picks a format by case-insensitive file extension. When
// several parsers claim the extension, the first format name in sorted order wins.
func (r *Registry) FormatForFilename(name string) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return "", fmt.Errorf("%w: %q has no extension", ErrUnsupportedFormat, name)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, format := range r.sortedNames() {
		for _, e := range r.parsers[format].Info().Extensions {
			if e == ext {
				return format, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
}

// ListRegistered returns the registered format names, sorted.
func (r *Registry) ListRegistered() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedNames()
}

// sortedNames expects r.mu to be held.
func (r *Registry) sortedNames() []string {
	names := make([]string, 0, len(r.parsers))
	for name := range r.parsers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AllFormatsInfo returns the description of every registered format, sorted by name.
func (r *Registry) AllFormatsInfo() []FormatInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]FormatInfo, 0, len(r.parsers))
	for _, p := range r.parsers {
		out = append(out, p.Info())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Format < out[j].Format })
	return out
}
