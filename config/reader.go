package config

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/yosuke-furukawa/json5/encoding/json5"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a map file.
type Format string

// Supported map formats. FormatJSON5 accepts comments, unquoted keys and trailing commas, but
// strings must still use double quotes.
const (
	FormatJSON  Format = "json"
	FormatJSON5 Format = "json5"
	FormatYAML  Format = "yaml"
)

// FormatFromPath picks the format from the file extension. Anything that is not .yaml, .yml or
// .json5 is read as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json5":
		return FormatJSON5
	default:
		return FormatJSON
	}
}

// Read reads a map file from disk.
func Read(path string) (*MapConfig, error) {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	cfg, err := FromReader(f, FormatFromPath(path))
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read map %q", path)
	}
	return cfg, nil
}

// FromReader reads a map in the given format.
func FromReader(r io.Reader, format Format) (*MapConfig, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	// YAML and JSON5 go through a generic value and back out as plain JSON so every format shares
	// the obstacle tuple decoding.
	var raw interface{}
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(err, "invalid yaml")
		}
	case FormatJSON5:
		if err := json5.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(err, "invalid json5")
		}
	case FormatJSON:
	}
	if raw != nil {
		if data, err = json.Marshal(raw); err != nil {
			return nil, err
		}
	}

	cfg := &MapConfig{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid map")
	}
	return cfg, nil
}
