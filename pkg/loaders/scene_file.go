package loaders

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Scene file errors. ParseError wraps exactly one of these.
var (
	ErrUnknownRecord = errors.New("unknown record kind")
	ErrFieldCount    = errors.New("wrong number of fields")
	ErrFieldValue    = errors.New("invalid field value")
	ErrMaterialIndex = errors.New("material index out of range")
	ErrMissingRecord = errors.New("missing required record")
)

// ParseError describes a malformed scene record
type ParseError struct {
	Line int    // 1-based line number, 0 when the error concerns the whole file
	Kind string // Record kind, e.g. "sph"
	Err  error  // One of the Err* sentinels, possibly wrapped
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("scene: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("scene line %d (%s): %v", e.Line, e.Kind, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Record kinds and the number of numeric fields each one takes
const (
	RecordCamera   = "cam"
	RecordSettings = "set"
	RecordMaterial = "mtl"
	RecordSphere   = "sph"
	RecordPlane    = "pln"
	RecordBox      = "box"
	RecordLight    = "lgt"
)

var fieldCounts = map[string]int{
	RecordCamera:   11,
	RecordSettings: 5,
	RecordMaterial: 11,
	RecordSphere:   5,
	RecordPlane:    5,
	RecordBox:      5,
	RecordLight:    9,
}

// surfaceRecord is a shape whose material is resolved once every material
// record has been read
type surfaceRecord struct {
	line     int
	kind     string
	params   []float64
	material int
}

// SceneParser accumulates records from a scene description
type SceneParser struct {
	camera      scene.CameraConfig
	settings    scene.Settings
	hasCamera   bool
	hasSettings bool
	materials   []*material.Material
	surfaces    []surfaceRecord
	lights      []*lights.Light
	line        int
}

// NewSceneParser creates a new scene parser instance
func NewSceneParser() *SceneParser {
	return &SceneParser{
		materials: make([]*material.Material, 0),
		surfaces:  make([]surfaceRecord, 0),
		lights:    make([]*lights.Light, 0),
	}
}

// ParseScene parses a scene description from an io.Reader and returns the
// scene with its acceleration structure built
func ParseScene(reader io.Reader) (*scene.Scene, error) {
	parser := NewSceneParser()

	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		if err := parser.ProcessLine(scanner.Text()); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading scene: %w", err)
	}

	s, err := parser.Scene()
	if err != nil {
		return nil, err
	}
	if err := s.BuildAcceleration(); err != nil {
		return nil, fmt.Errorf("invalid scene: %w", err)
	}
	return s, nil
}

// LoadScene loads and parses a scene file
func LoadScene(filename string) (*scene.Scene, error) {
	if err := validateFilePath(filename); err != nil {
		return nil, err
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	return ParseScene(file)
}

// validateFilePath rejects paths that cannot name a scene file
func validateFilePath(filename string) error {
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}
	if strings.Contains(filename, "\x00") {
		return fmt.Errorf("invalid file path: null bytes not allowed")
	}
	return nil
}

// ProcessLine parses one line of the scene description. Blank lines and
// lines starting with '#' are skipped.
func (p *SceneParser) ProcessLine(line string) error {
	p.line++

	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	fields := strings.Fields(line)
	kind := fields[0]

	want, known := fieldCounts[kind]
	if !known {
		return p.errorf(kind, ErrUnknownRecord, "%q", kind)
	}
	if len(fields)-1 != want {
		return p.errorf(kind, ErrFieldCount, "want %d, got %d", want, len(fields)-1)
	}

	params := make([]float64, want)
	for i, field := range fields[1:] {
		value, err := strconv.ParseFloat(field, 64)
		if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			return p.errorf(kind, ErrFieldValue, "field %d %q is not a finite number", i+1, field)
		}
		params[i] = value
	}

	return p.processRecord(kind, params)
}

func (p *SceneParser) processRecord(kind string, params []float64) error {
	switch kind {
	case RecordCamera:
		p.camera = scene.CameraConfig{
			Position:       vec(params[0:3]),
			LookAt:         vec(params[3:6]),
			Up:             vec(params[6:9]),
			ScreenDistance: params[9],
			ScreenWidth:    params[10],
		}
		p.hasCamera = true

	case RecordSettings:
		shadowRays, err := p.integer(kind, params[3], 4)
		if err != nil {
			return err
		}
		maxRecursion, err := p.integer(kind, params[4], 5)
		if err != nil {
			return err
		}
		p.settings = scene.Settings{
			Background:   vec(params[0:3]),
			ShadowRays:   shadowRays,
			MaxRecursion: maxRecursion,
		}
		p.hasSettings = true

	case RecordMaterial:
		p.materials = append(p.materials, material.NewMaterial(
			vec(params[0:3]), vec(params[3:6]), vec(params[6:9]), params[9], params[10]))

	case RecordSphere, RecordPlane, RecordBox:
		index, err := p.integer(kind, params[4], 5)
		if err != nil {
			return err
		}
		p.surfaces = append(p.surfaces, surfaceRecord{line: p.line, kind: kind, params: params, material: index})

	case RecordLight:
		p.lights = append(p.lights, lights.NewLight(vec(params[0:3]), vec(params[3:6]), params[6], params[7], params[8]))
	}

	return nil
}

// Scene resolves material references and assembles the parsed records. The
// acceleration structure is not built.
func (p *SceneParser) Scene() (*scene.Scene, error) {
	if !p.hasCamera {
		return nil, &ParseError{Kind: RecordCamera, Err: ErrMissingRecord}
	}
	if !p.hasSettings {
		return nil, &ParseError{Kind: RecordSettings, Err: ErrMissingRecord}
	}

	s := scene.NewScene(p.camera, p.settings)
	for _, m := range p.materials {
		s.AddMaterial(m)
	}
	for _, light := range p.lights {
		s.AddLight(light)
	}

	for _, surface := range p.surfaces {
		// Material indices are 1-based
		if surface.material < 1 || surface.material > len(p.materials) {
			return nil, &ParseError{
				Line: surface.line,
				Kind: surface.kind,
				Err:  fmt.Errorf("%w: %d not in 1..%d", ErrMaterialIndex, surface.material, len(p.materials)),
			}
		}
		m := p.materials[surface.material-1]
		params := surface.params

		switch surface.kind {
		case RecordSphere:
			s.AddShapes(geometry.NewSphere(vec(params[0:3]), params[3], m))
		case RecordPlane:
			s.AddShapes(geometry.NewPlane(vec(params[0:3]), params[3], m))
		case RecordBox:
			s.AddShapes(geometry.NewCube(vec(params[0:3]), params[3], m))
		}
	}

	return s, nil
}

// integer converts a whole-number field to int
func (p *SceneParser) integer(kind string, value float64, field int) (int, error) {
	if value != math.Trunc(value) || math.Abs(value) > math.MaxInt32 {
		return 0, p.errorf(kind, ErrFieldValue, "field %d %v is not an integer", field, value)
	}
	return int(value), nil
}

func (p *SceneParser) errorf(kind string, sentinel error, format string, args ...interface{}) error {
	return &ParseError{
		Line: p.line,
		Kind: kind,
		Err:  fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...)),
	}
}

func vec(values []float64) core.Vec3 {
	return core.NewVec3(values[0], values[1], values[2])
}
