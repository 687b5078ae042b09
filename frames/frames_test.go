package frames

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jsphweid/notesift/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBareFrames(t *testing.T) {
	frames, err := Parse([]byte(` [[0.1, 0.9], [], [0.5]] `))
	require.NoError(t, err)
	assert.Equal(t, model.FrameCollection{{0.1, 0.9}, {}, {0.5}}, frames)
}

func TestParseModelOutput(t *testing.T) {
	data := `{"frames": [[0.2, 0.3]], "onsets": [[1, 0]], "contours": [[0.5, 0.5, 0.5]]}`
	frames, err := Parse([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, model.FrameCollection{{0.2, 0.3}}, frames)
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, data := range []string{"", "   ", "42", `"frames"`, "[[1,"} {
		_, err := Parse([]byte(data))
		assert.Error(t, err, "input %q", data)
	}
}

func TestRead(t *testing.T) {
	frames, err := Read(strings.NewReader(`{"frames": []}`))
	require.NoError(t, err)
	assert.Empty(t, frames)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frames.json")
	require.NoError(t, os.WriteFile(path, []byte(`[[0, 0.7]]`), 0644))

	frames, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, model.FrameCollection{{0, 0.7}}, frames)
}
