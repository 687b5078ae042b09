//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/notesift/cmd"
	"github.com/jsphweid/notesift/db"
	"github.com/jsphweid/notesift/frames"
	"github.com/jsphweid/notesift/history"
	"github.com/jsphweid/notesift/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var server *httptest.Server

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "notesift-e2e")
	if err != nil {
		panic(err.Error())
	}
	store, err := db.NewSQLiteStore(filepath.Join(dir, "history.sqlite"))
	if err != nil {
		panic(err.Error())
	}

	s := &cmd.Server{
		History: history.NewManager(store),
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	server = httptest.NewServer(s.Router())

	exitVal := m.Run()

	server.Close()
	store.Close()
	os.RemoveAll(dir)
	os.Exit(exitVal)
}

// basicPitchOutput mimics a recording of a C major triad with an overtone
// on C5 and a sub-harmonic artifact on C3.
func basicPitchOutput() []byte {
	var out model.ModelOutput
	for i := 0; i < 40; i++ {
		f := make(model.ConfidenceFrame, model.NumPianoKeys)
		f[60-21] = 0.9
		f[64-21] = 0.7
		f[67-21] = 0.65
		f[72-21] = 0.4
		f[48-21] = 0.45
		if i%10 == 0 {
			f[90-21] = 0.95
		}
		out.Frames = append(out.Frames, f)
		out.Onsets = append(out.Onsets, make([]float64, model.NumPianoKeys))
	}
	data, err := json.Marshal(out)
	if err != nil {
		panic(err.Error())
	}
	return data
}

func post(t *testing.T, path string, body any) *http.Response {
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(server.URL+path, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	return resp
}

func TestCMajorFromModelOutputE2E(t *testing.T) {
	collection, err := frames.Parse(basicPitchOutput())
	require.NoError(t, err)

	resp := post(t, "/detect", model.DetectRequestBody{Frames: collection, Save: true})
	defer resp.Body.Close()

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)

	var detectResponse model.DetectResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&detectResponse))
	assert.Equal(model.Notes{60, 64, 67}, detectResponse.DetectedMidiNotes)
	assert.Equal([]int{0, 4, 7}, detectResponse.PitchClasses)
	assert.NotEmpty(detectResponse.HistoryID)

	histResp, err := http.Get(server.URL + "/history")
	require.NoError(t, err)
	defer histResp.Body.Close()

	var items []model.HistoryItem
	require.NoError(t, json.NewDecoder(histResp.Body).Decode(&items))
	require.Len(t, items, 1)
	assert.Equal("Dó, Mi, Sol", items[0].FormattedNotes)
}
