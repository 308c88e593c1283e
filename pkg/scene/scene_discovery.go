package scene

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SceneFileExt is the extension of line-oriented scene description files
const SceneFileExt = ".scene"

// BuiltinPrefix marks scene IDs that refer to scenes constructed in code
const BuiltinPrefix = "builtin:"

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string // Unique identifier
	Name        string // Scene name
	DisplayName string // Display name including the variant
	Description string // Optional description
	Group       string // Grouping category
	Type        string // "builtin" or "file"
	FilePath    string // Path to the scene file (file type only)
	Variant     string // Variant name (optional)
}

// builtinScene pairs a built-in scene description with its constructor
type builtinScene struct {
	info  SceneInfo
	build func() *Scene
}

var builtinScenes = []builtinScene{
	{
		info: SceneInfo{
			ID:          BuiltinPrefix + "default",
			Name:        "Default Scene",
			Description: "Spheres, a cube and glass over a ground plane",
		},
		build: NewDefaultScene,
	},
	{
		info: SceneInfo{
			ID:          BuiltinPrefix + "cornell-box",
			Name:        "Cornell Box",
			Description: "Cornell box with a mirror sphere and a glass cube",
		},
		build: NewCornellScene,
	},
	{
		info: SceneInfo{
			ID:          BuiltinPrefix + "sphere-grid",
			Name:        "Sphere Grid",
			Description: "10x10 grid of rainbow-colored reflective spheres",
		},
		build: func() *Scene { return NewSphereGridScene(10) },
	},
}

// NewBuiltinScene constructs the built-in scene with the given ID. The
// prefix is optional.
func NewBuiltinScene(id string) (*Scene, error) {
	id = BuiltinPrefix + strings.TrimPrefix(id, BuiltinPrefix)
	for _, builtin := range builtinScenes {
		if builtin.info.ID == id {
			return builtin.build(), nil
		}
	}
	return nil, fmt.Errorf("unknown built-in scene %q", id)
}

// IsBuiltinID reports whether a scene reference names a built-in scene
func IsBuiltinID(ref string) bool {
	return strings.HasPrefix(ref, BuiltinPrefix)
}

// ListBuiltinScenes returns metadata for every built-in scene
func ListBuiltinScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for _, builtin := range builtinScenes {
		info := builtin.info
		info.DisplayName = info.Name
		info.Group = "Built-in Scenes"
		info.Type = "builtin"
		scenes = append(scenes, info)
	}
	return scenes
}

// ListSceneFiles scans dir for scene files and returns their metadata.
// A missing directory yields an empty list.
func ListSceneFiles(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return []SceneInfo{}, nil
		}
		return nil, fmt.Errorf("failed to stat scenes directory: %w", err)
	}

	files, err := filepath.Glob(filepath.Join(dir, "*"+SceneFileExt))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, filePath := range files {
		sceneInfo, err := ParseSceneMetadata(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to parse metadata for %s: %w", filePath, err)
		}
		scenes = append(scenes, sceneInfo)
	}

	// Sort scenes by display name
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// ParseSceneMetadata extracts metadata from the header comments of a scene file
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	// Fallback values come from the file name
	sceneInfo := SceneInfo{
		ID:          filePath,
		Name:        titleCase(nameWithoutExt),
		DisplayName: titleCase(nameWithoutExt),
		Group:       "Scene Files",
		Type:        "file",
		FilePath:    filePath,
	}

	file, err := os.Open(filePath)
	if err != nil {
		return sceneInfo, err
	}
	defer file.Close()

	// Metadata lives in the leading block of comment lines
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "#") {
			break
		}

		content := strings.TrimSpace(strings.TrimPrefix(line, "#"))
		key, value, found := strings.Cut(content, ":")
		if !found {
			continue
		}
		value = strings.TrimSpace(value)

		switch key {
		case "Scene":
			sceneInfo.Name = value
		case "Variant":
			sceneInfo.Variant = value
		case "Description":
			sceneInfo.Description = value
		case "Group":
			sceneInfo.Group = value
		}
	}

	if sceneInfo.Variant != "" {
		sceneInfo.DisplayName = fmt.Sprintf("%s - %s", sceneInfo.Name, sceneInfo.Variant)
	} else {
		sceneInfo.DisplayName = sceneInfo.Name
	}

	return sceneInfo, scanner.Err()
}

// ListAllScenes returns the built-in scenes followed by the scene files in dir
func ListAllScenes(dir string) ([]SceneInfo, error) {
	files, err := ListSceneFiles(dir)
	if err != nil {
		return nil, err
	}
	return append(ListBuiltinScenes(), files...), nil
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-empty" -> "Cornell Empty"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
