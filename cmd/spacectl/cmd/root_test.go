package cmd

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-space-mcp/internal/canvas"
)

// run executes spacectl with args and returns its trimmed stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return strings.TrimSpace(out.String()), err
}

func TestCommands(t *testing.T) {
	space := []string{"--steps", "2", "--shape", "1x2x1"}

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"next", []string{"next", "01"}, "10"},
		{"next wraps", []string{"next", "11"}, "00"},
		{"prev", []string{"prev", "10"}, "01"},
		{"prev wraps", []string{"prev", "00"}, "11"},
		{"step", []string{"step", "00", "--by", "3"}, "11"},
		{"step backward", []string{"step", "00", "--by=-5"}, "11"},
		{"min", []string{"min"}, "00"},
		{"max", []string{"max"}, "11"},
		{"decode", []string{"decode", "10"}, "2"},
		{"encode", []string{"encode", "1"}, "01"},
		{"validate", []string{"validate", "01"}, "valid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := run(t, append(space, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCommands_Errors(t *testing.T) {
	space := []string{"--steps", "2", "--shape", "1x2x1"}

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"next on bad digit", []string{"next", "02"}, canvas.ErrInvalidIdentifier},
		{"validate short id", []string{"validate", "0"}, canvas.ErrInvalidIdentifier},
		{"encode out of range", []string{"encode", "4"}, canvas.ErrOutOfRange},
		{"encode negative", []string{"encode", "--", "-1"}, canvas.ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, append(space, tt.args...)...)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
		})
	}
}

func TestCommands_BadSpace(t *testing.T) {
	tests := [][]string{
		{"--steps", "1", "min"},
		{"--steps", "63", "min"},
		{"--shape", "0x4x1", "min"},
		{"--shape", "2x2x5", "min"},
	}

	for _, args := range tests {
		_, err := run(t, args...)
		assert.True(t, errors.Is(err, canvas.ErrConfig), "%v: got %v, want ErrConfig", args, err)
	}
}

func TestInfo(t *testing.T) {
	got, err := run(t, "--steps", "8", "--shape", "2x2x3", "info")
	require.NoError(t, err)

	assert.Contains(t, got, "id length:    12")
	assert.Contains(t, got, "alphabet:     01234567")
	assert.Contains(t, got, "8^12 (11 decimal digits)")
}

func TestRandom_Seeded(t *testing.T) {
	args := []string{"--shape", "4x4x3", "--seed", "42", "random", "-n", "3"}

	first, err := run(t, args...)
	require.NoError(t, err)
	second, err := run(t, args...)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	ids := strings.Split(first, "\n")
	require.Len(t, ids, 3)
	for _, id := range ids {
		assert.Len(t, id, 48)
	}
}

func TestRenderThenFromImage(t *testing.T) {
	space := []string{"--steps", "4", "--shape", "2x2x3"}
	path := filepath.Join(t.TempDir(), "space.png")
	id := "300030003333"

	got, err := run(t, append(space, "render", id, "--out", path, "--size", "32")...)
	require.NoError(t, err)
	assert.Equal(t, path, got)
	assert.FileExists(t, path)

	got, err = run(t, append(space, "from-image", path)...)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}
