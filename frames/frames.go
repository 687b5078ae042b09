package frames

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/jsphweid/notesift/model"
	"github.com/jsphweid/notesift/util"
)

// Parse accepts either a bare array of frames or a Basic Pitch style
// {"frames": ..., "onsets": ..., "contours": ...} object.
func Parse(data []byte) (model.FrameCollection, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("no frame data")
	}

	switch data[0] {
	case '[':
		var frames model.FrameCollection
		if err := json.Unmarshal(data, &frames); err != nil {
			return nil, fmt.Errorf("could not decode frames: %w", err)
		}
		return frames, nil
	case '{':
		var out model.ModelOutput
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("could not decode model output: %w", err)
		}
		return out.Frames, nil
	}
	return nil, fmt.Errorf("unexpected frame data starting with %q", data[0])
}

func Read(r io.Reader) (model.FrameCollection, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Load(path string) (model.FrameCollection, error) {
	raw, err := util.ReadJSONFile[json.RawMessage](path)
	if err != nil {
		return nil, err
	}
	return Parse(raw)
}
