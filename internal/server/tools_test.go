package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	expectedTools := []string{
		// Space information
		"space_info",
		"space_palette",
		// Viewing
		"space_view",
		"space_cell_color",
		// Navigation
		"space_next",
		"space_prev",
		"space_step",
		"space_random",
		"space_min",
		"space_max",
		// Codec
		"space_validate",
		"space_decode",
		"space_encode",
		"space_image_info",
		"space_from_image",
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		toolMap[tool.Name] = tool
	}

	for _, name := range expectedTools {
		assert.Contains(t, toolMap, name, "expected tool %q not found", name)
	}
	assert.Len(t, tools, len(expectedTools))
}

func TestToolDefinitions_HaveRequiredFields(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			assert.NotEmpty(t, tool.Name)
			assert.NotEmpty(t, tool.Description)
			require.NotNil(t, tool.InputSchema)

			assert.Equal(t, "object", tool.InputSchema["type"])
			_, ok := tool.InputSchema["properties"].(map[string]interface{})
			assert.True(t, ok, "properties should be a map")
		})
	}
}

func TestToolDefinitions_RequiredArguments(t *testing.T) {
	tests := []struct {
		tool     string
		required []string
	}{
		{"space_view", []string{"id"}},
		{"space_cell_color", []string{"id", "x", "y"}},
		{"space_next", []string{"id"}},
		{"space_prev", []string{"id"}},
		{"space_step", []string{"id", "delta"}},
		{"space_validate", []string{"id"}},
		{"space_decode", []string{"id"}},
		{"space_encode", []string{"index"}},
		{"space_image_info", []string{"path"}},
		{"space_from_image", []string{"path"}},
		{"space_info", nil},
		{"space_random", nil},
		{"space_min", nil},
		{"space_max", nil},
	}

	toolMap := make(map[string]Tool)
	for _, tool := range GetToolDefinitions() {
		toolMap[tool.Name] = tool
	}

	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			tool, ok := toolMap[tt.tool]
			require.True(t, ok)

			required, _ := tool.InputSchema["required"].([]string)
			assert.ElementsMatch(t, tt.required, required)

			props := tool.InputSchema["properties"].(map[string]interface{})
			for _, name := range required {
				assert.Contains(t, props, name, "required argument %q has no property", name)
			}
		})
	}
}

func TestToolDefinitions_NavigationCanRender(t *testing.T) {
	toolMap := make(map[string]Tool)
	for _, tool := range GetToolDefinitions() {
		toolMap[tool.Name] = tool
	}

	for _, name := range []string{"space_next", "space_prev", "space_step", "space_random", "space_min", "space_max", "space_encode", "space_from_image"} {
		props := toolMap[name].InputSchema["properties"].(map[string]interface{})
		assert.Contains(t, props, "render", "%s should accept render", name)
	}
}

func TestToolDefinitions_ImageToolsCanReload(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		if tool.Name != "space_image_info" && tool.Name != "space_from_image" {
			continue
		}
		props := tool.InputSchema["properties"].(map[string]interface{})
		assert.Contains(t, props, "reload", "%s should accept reload", tool.Name)
	}
}
