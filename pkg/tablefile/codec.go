package tablefile

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/gridtable/pkg/errors"
	"github.com/matzehuels/gridtable/pkg/table"
)

// Format is a definition file format.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "%s: unknown extension (want .json or .toml)", path)
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatTOML:
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown definition format %q", s)
}

// Read decodes a definition in format f from r and builds the table.
func Read(r io.Reader, f Format) (*table.Table, error) {
	d, err := Decode(r, f)
	if err != nil {
		return nil, err
	}
	return d.Build()
}

// Decode decodes a definition without building it. Unknown keys are
// rejected.
func Decode(r io.Reader, f Format) (*Definition, error) {
	var d Definition
	switch f {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&d); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
		}
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&d)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown keys: %s", strings.Join(keys, ", "))
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown definition format %q", f)
	}
	return &d, nil
}

// Write encodes t in format f.
func Write(w io.Writer, t *table.Table, f Format) error {
	d, err := FromTable(t)
	if err != nil {
		return err
	}
	return Encode(w, d, f)
}

// Encode writes d in format f.
func Encode(w io.Writer, d *Definition, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(d); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode json")
		}
		return nil
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(d); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode toml")
		}
		return nil
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unknown definition format %q", f)
}

// Marshal returns t encoded in format f.
func Marshal(t *table.Table, f Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, t, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Load reads the definition file at path. The format follows the file
// extension.
func Load(path string) (*table.Table, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer file.Close()

	t, err := Read(file, f)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "%s", path)
	}
	return t, nil
}

// Save writes t to path in the format given by the extension.
func Save(t *table.Table, path string) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := Marshal(t, f)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}
