// Package planefile reads cutting plane descriptors.
//
// A descriptor names an origin point and a normal vector:
//
//	{"origin": [0, 0, 0.5], "normal": [0, 0, 1]}
//
// The same keys are accepted from YAML and TOML documents. Other keys are
// ignored.
package planefile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/philipparndt/gocut/pkg/geometry"
)

// Format is a descriptor encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

var (
	ErrMissingOrigin = errors.New("plane descriptor has no origin")
	ErrMissingNormal = errors.New("plane descriptor has no normal")
	ErrBadVector     = errors.New("vector must have exactly 3 components")
)

type descriptor struct {
	Origin []float64 `json:"origin" yaml:"origin" toml:"origin"`
	Normal []float64 `json:"normal" yaml:"normal" toml:"normal"`
}

// FormatFromPath picks the format from the file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported plane file type: %s (expected .json, .yaml, .yml or .toml)", filepath.Ext(path))
	}
}

// Load reads a plane descriptor file
func Load(path string) (geometry.Plane, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return geometry.Plane{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return geometry.Plane{}, fmt.Errorf("failed to read plane file: %w", err)
	}
	plane, err := Parse(data, format)
	if err != nil {
		return geometry.Plane{}, fmt.Errorf("%s: %w", path, err)
	}
	return plane, nil
}

// Parse decodes a plane descriptor
func Parse(data []byte, format Format) (geometry.Plane, error) {
	var d descriptor
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &d)
	case FormatYAML:
		err = yaml.Unmarshal(data, &d)
	case FormatTOML:
		err = toml.Unmarshal(data, &d)
	default:
		return geometry.Plane{}, fmt.Errorf("unknown plane format %q", format)
	}
	if err != nil {
		return geometry.Plane{}, fmt.Errorf("failed to decode %s plane: %w", format, err)
	}

	if d.Origin == nil {
		return geometry.Plane{}, ErrMissingOrigin
	}
	if d.Normal == nil {
		return geometry.Plane{}, ErrMissingNormal
	}
	origin, err := toVector(d.Origin)
	if err != nil {
		return geometry.Plane{}, fmt.Errorf("origin: %w", err)
	}
	normal, err := toVector(d.Normal)
	if err != nil {
		return geometry.Plane{}, fmt.Errorf("normal: %w", err)
	}
	return geometry.NewPlane(origin, normal), nil
}

// Marshal encodes a plane in the given format
func Marshal(plane geometry.Plane, format Format) ([]byte, error) {
	o, n := plane.Origin.Array(), plane.Normal.Array()
	d := descriptor{Origin: o[:], Normal: n[:]}
	switch format {
	case FormatJSON:
		return json.MarshalIndent(d, "", "  ")
	case FormatYAML:
		return yaml.Marshal(d)
	case FormatTOML:
		return toml.Marshal(d)
	default:
		return nil, fmt.Errorf("unknown plane format %q", format)
	}
}

func toVector(values []float64) (geometry.Vector3, error) {
	if len(values) != 3 {
		return geometry.Vector3{}, fmt.Errorf("%w, got %d", ErrBadVector, len(values))
	}
	return geometry.NewVector3(values[0], values[1], values[2]), nil
}
