package cmd

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func TestLoadScene(t *testing.T) {
	tests := []struct {
		name        string
		ref         string
		expectError bool
	}{
		// Built-in scenes
		{"default scene", "builtin:default", false},
		{"cornell scene", "builtin:cornell-box", false},
		{"sphere grid scene", "builtin:sphere-grid", false},

		// Scene files
		{"pool scene file", "../scenes/pool.scene", false},
		{"mirrors scene file", "../scenes/mirrors.scene", false},

		// Invalid scenes
		{"unknown builtin", "builtin:nonexistent", true},
		{"missing file", "../scenes/nonexistent.scene", true},
		{"empty reference", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := LoadScene(tt.ref)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for %q, but got none", tt.ref)
				}
				if sc != nil {
					t.Errorf("Expected nil scene for %q, got %T", tt.ref, sc)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for %q: %v", tt.ref, err)
			}
			if _, err := sc.Stats(); err != nil {
				t.Errorf("Expected a built scene for %q: %v", tt.ref, err)
			}
		})
	}
}

func TestDefaultOutputPath(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC)
	tests := []struct {
		ref      string
		expected string
	}{
		{"builtin:cornell-box", filepath.Join("output", "cornell-box", "render_20240309_140506.png")},
		{"scenes/pool.scene", filepath.Join("output", "pool", "render_20240309_140506.png")},
		{"room", filepath.Join("output", "room", "render_20240309_140506.png")},
	}

	for _, tt := range tests {
		if got := defaultOutputPath(tt.ref, now); got != tt.expected {
			t.Errorf("defaultOutputPath(%q) = %q, expected %q", tt.ref, got, tt.expected)
		}
	}
}

func TestScenesTable(t *testing.T) {
	table := scenesTable(scene.ListBuiltinScenes())
	for _, want := range []string{"builtin:default", "Cornell Box", "Built-in Scenes", "Total"} {
		if !strings.Contains(table, want) {
			t.Errorf("Expected table to contain %q:\n%s", want, table)
		}
	}
}
