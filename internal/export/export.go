// Package export serializes snapshots of the issue store.
//
// A snapshot pairs the aggregate statistics with every issue ordered most
// recent first. Snapshots encode to JSON, YAML or TOML and decode back to
// equal values.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/steveyegge/civic/internal/storage"
	"github.com/steveyegge/civic/internal/types"
)

// Format represents the serialization format
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"

	// FormatUnknown is for unknown or no extension (caller should decide default)
	FormatUnknown Format = "unknown"
)

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatJSON, FormatYAML, FormatTOML}
}

// ParseFormat maps a user-supplied name to a Format. Matching is case-insensitive
// and accepts "yml" as an alias for yaml.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	}
	return FormatUnknown, fmt.Errorf("unsupported export format %q (valid: %s)", name, formatList())
}

func formatList() string {
	names := make([]string, 0, len(Formats()))
	for _, f := range Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

// DetectFormatFromExtension detects format based on file extension
func DetectFormatFromExtension(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	}
	return FormatUnknown
}

// Snapshot is the exported document.
type Snapshot struct {
	Statistics types.Statistics `json:"statistics" yaml:"statistics" toml:"statistics"`
	Issues     []*types.Issue   `json:"issues" yaml:"issues" toml:"issues"`
}

// Build reads the current statistics and all issues, newest first, from one
// read transaction so the statistics describe exactly the exported issues.
func Build(ctx context.Context, s storage.Storage) (*Snapshot, error) {
	snap := &Snapshot{}
	err := s.RunInReadTransaction(ctx, func(r storage.Reader) error {
		issues, err := r.GetIssues(ctx, types.IssueFilter{Sort: types.SortRecent})
		if err != nil {
			return fmt.Errorf("failed to list issues: %w", err)
		}
		stats, err := r.GetStatistics(ctx)
		if err != nil {
			return fmt.Errorf("failed to get statistics: %w", err)
		}
		snap.Issues = issues
		snap.Statistics = *stats
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// Encode writes snap to w in the given format.
func Encode(w io.Writer, snap *Snapshot, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(snap)
	}
	return fmt.Errorf("unsupported export format %q", format)
}

// Marshal returns snap encoded in the given format.
func Marshal(snap *Snapshot, format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, snap, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads a snapshot previously written by Encode.
func Decode(r io.Reader, format Format) (*Snapshot, error) {
	var snap Snapshot
	var err error
	switch format {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&snap)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&snap)
	case FormatTOML:
		_, err = toml.NewDecoder(r).Decode(&snap)
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s snapshot: %w", format, err)
	}
	if snap.Issues == nil {
		snap.Issues = []*types.Issue{}
	}
	if snap.Statistics.ByCategory == nil {
		snap.Statistics.ByCategory = map[string]int{}
	}
	return &snap, nil
}
