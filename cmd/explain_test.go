package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jsphweid/notesift/midi"
	"github.com/jsphweid/notesift/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExplainInputFromMidi(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chord.mid")
	require.NoError(t, midi.WriteChord(path, model.Notes{67, 60, 64}, time.Second))

	notes, err := explainInput(nil, path)
	require.NoError(t, err)
	assert.Equal(t, model.Notes{60, 64, 67}, notes)
}

func TestExplainInputFromArgs(t *testing.T) {
	notes, err := explainInput([]string{"62", "65"}, "")
	require.NoError(t, err)
	assert.Equal(t, model.Notes{62, 65}, notes)
}

func TestExplainInputErrors(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.mid")
	require.NoError(t, os.WriteFile(garbage, []byte("MThd garbage"), 0644))

	assert := assert.New(t)
	_, err := explainInput(nil, "")
	assert.Error(err)
	_, err = explainInput([]string{"60"}, garbage)
	assert.Error(err)
	_, err = explainInput(nil, garbage)
	assert.Error(err)
	_, err = explainInput(nil, filepath.Join(dir, "missing.mid"))
	assert.Error(err)
}
