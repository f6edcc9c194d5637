package identity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is a structured-text encoding for identity documents.
type Format int

const (
	FormatTOML Format = iota
	FormatJSON
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Ext returns the file extension, dot included.
func (f Format) Ext() string {
	return "." + f.String()
}

// ParseFormat accepts "toml", "json", "yaml" or "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "toml":
		return FormatTOML, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return 0, fmt.Errorf("identity: unknown format %q", s)
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return 0, fmt.Errorf("identity: %s has no extension to pick a format from", path)
	}
	return ParseFormat(ext)
}

// Marshal encodes id. Keys are written with their text codecs.
func Marshal(id Identity, f Format) ([]byte, error) {
	switch f {
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(id); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatJSON:
		by, err := json.MarshalIndent(id, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(by, '\n'), nil
	case FormatYAML:
		return yaml.Marshal(id)
	}
	return nil, fmt.Errorf("identity: unknown format %s", f)
}

// Unmarshal decodes and validates an identity document. On error the
// returned identity is always the zero value.
func Unmarshal(data []byte, f Format) (Identity, error) {
	var id Identity
	var err error
	switch f {
	case FormatTOML:
		_, err = toml.Decode(string(data), &id)
	case FormatJSON:
		err = json.Unmarshal(data, &id)
	case FormatYAML:
		err = yaml.Unmarshal(data, &id)
	default:
		err = fmt.Errorf("identity: unknown format %s", f)
	}
	if err == nil {
		err = id.Validate()
	}
	if err != nil {
		id.Wipe()
		return Identity{}, fmt.Errorf("identity: decoding %s document: %w", f, err)
	}
	return id, nil
}
