package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentx-labs/recordx/internal/platform"
	"github.com/agentx-labs/recordx/internal/record"
	"github.com/natefinch/atomic"
	"go.yaml.in/yaml/v3"
)

// Format is a snapshot file encoding.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "json"
}

// FormatFor picks the format from path's extension; anything other than
// .yaml or .yml is JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Exists reports whether a snapshot file is present at path.
func Exists(path string) (bool, error) {
	if path == "" {
		return false, nil
	}
	return platform.Exists(path)
}

// Read parses the snapshot at path. Parse failures and schema violations
// are returned as errors; the latter wrap ErrInvalid.
func Read(path string) ([]*record.Record, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(path, data, FormatFor(path))
}

// Decode validates and parses snapshot bytes. name is only used in errors.
func Decode(name string, data []byte, format Format) ([]*record.Record, error) {
	jsonData, err := toJSON(data, format)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot %s: %w", name, err)
	}

	result, err := validateJSON(jsonData)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot %s: %w", name, err)
	}
	if !result.Valid {
		return nil, &InvalidError{Path: name, Issues: result.Issues}
	}

	var recs []*record.Record
	if err := json.Unmarshal(jsonData, &recs); err != nil {
		return nil, fmt.Errorf("decoding snapshot %s: %w", name, err)
	}
	return recs, nil
}

// Encode renders records in the given format with two-space indentation and
// a trailing newline. A nil slice encodes as an empty list.
func Encode(recs []*record.Record, format Format) ([]byte, error) {
	if recs == nil {
		recs = []*record.Record{}
	}

	if format == FormatYAML {
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(recs); err != nil {
			return nil, fmt.Errorf("encoding YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encoding YAML: %w", err)
		}
		return buf.Bytes(), nil
	}

	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// Write replaces the snapshot at path with recs. The file is swapped in
// atomically so readers never observe a partial snapshot.
func Write(path string, recs []*record.Record) error {
	data, err := Encode(recs, FormatFor(path))
	if err != nil {
		return fmt.Errorf("writing snapshot %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing snapshot %s: %w", path, err)
	}
	return platform.Publish(path)
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
