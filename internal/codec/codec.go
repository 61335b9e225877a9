// Package codec is the versioned persistence encoding for strokes and text
// fields. Each collection round-trips independently as a JSON envelope
// carrying a format version and an array of records.
//
// Decoding is deliberately forgiving: a blank or malformed blob yields an
// empty collection, never an error. The surface must always come up, even
// over a corrupt store.
package codec

import (
	"encoding/json"
	"strings"

	"github.com/bethropolis/slate/internal/core"
	"github.com/bethropolis/slate/internal/logger"
	"github.com/bethropolis/slate/internal/stroke"
	"github.com/bethropolis/slate/internal/types"
)

// Version is the current encoding version. Readers reject envelopes from a
// newer writer instead of guessing at their records.
const Version = 1

type fieldEnvelope struct {
	Version int           `json:"version"`
	Fields  []fieldRecord `json:"fields"`
}

type fieldRecord struct {
	Text         string  `json:"text"`
	PositionX    float64 `json:"x"`
	PositionY    float64 `json:"y"`
	ZIndex       int     `json:"zIndex"`
	LastModified int64   `json:"lastModified,omitempty"`
}

type strokeEnvelope struct {
	Version int            `json:"version"`
	Strokes []strokeRecord `json:"strokes"`
}

type strokeRecord struct {
	Samples      []stroke.InputSample `json:"inputSamples"`
	Brush        *stroke.Brush        `json:"brush,omitempty"`
	ZIndex       int                  `json:"zIndex,omitempty"`
	LastModified int64                `json:"lastModified,omitempty"`
}

// EncodeTextFields serializes the manager's fields in creation order. The
// result reflects every edit applied before the call returns.
func EncodeTextFields(fm *core.FieldManager) string {
	env := fieldEnvelope{Version: Version, Fields: []fieldRecord{}}
	for _, f := range fm.Fields() {
		pos := f.Position()
		env.Fields = append(env.Fields, fieldRecord{
			Text:         f.Value().Text,
			PositionX:    pos.X,
			PositionY:    pos.Y,
			ZIndex:       f.ZIndex(),
			LastModified: f.LastModified(),
		})
	}
	return marshal(env)
}

// DecodeTextFields parses a persisted blob into loaded fields, ready for
// FieldManager.Replace. Blank or malformed input yields an empty slice.
func DecodeTextFields(data string, fm *core.FieldManager) []*core.TextFieldState {
	var env fieldEnvelope
	if !unmarshal(data, &env) {
		return nil
	}
	fields := make([]*core.TextFieldState, 0, len(env.Fields))
	for _, r := range env.Fields {
		f := fm.NewLoadedField(types.Point{X: r.PositionX, Y: r.PositionY}, r.Text, r.ZIndex, r.LastModified)
		fields = append(fields, f)
	}
	return fields
}

// EncodeStrokes serializes the stroke collection in creation order.
func EncodeStrokes(store *stroke.Store) string {
	env := strokeEnvelope{Version: Version, Strokes: []strokeRecord{}}
	for _, s := range store.All() {
		brush := s.Brush
		env.Strokes = append(env.Strokes, strokeRecord{
			Samples:      s.Samples,
			Brush:        &brush,
			ZIndex:       s.ZIndex,
			LastModified: s.LastModified,
		})
	}
	return marshal(env)
}

// DecodeStrokes parses a persisted blob into strokes, ready for
// Store.Replace. A record with no brush descriptor gets the default brush.
func DecodeStrokes(data string) []*stroke.Stroke {
	var env strokeEnvelope
	if !unmarshal(data, &env) {
		return nil
	}
	strokes := make([]*stroke.Stroke, 0, len(env.Strokes))
	for _, r := range env.Strokes {
		brush := stroke.DefaultBrush
		if r.Brush != nil {
			brush = *r.Brush
		}
		strokes = append(strokes, &stroke.Stroke{
			Samples:      r.Samples,
			Brush:        brush,
			ZIndex:       r.ZIndex,
			LastModified: r.LastModified,
		})
	}
	return strokes
}

func marshal(env interface{}) string {
	out, err := json.Marshal(env)
	if err != nil {
		// Only unmarshalable values get here; the record types are plain.
		logger.Errorf("Codec: encode failed: %v", err)
		return ""
	}
	return string(out)
}

// unmarshal reports whether data held a usable envelope. env must point at
// a struct with a Version field handled by the caller's type.
func unmarshal(data string, env interface{}) bool {
	if strings.TrimSpace(data) == "" {
		return false
	}
	if err := json.Unmarshal([]byte(data), env); err != nil {
		logger.Warnf("Codec: malformed blob, loading empty collection: %v", err)
		return false
	}
	version := 0
	switch e := env.(type) {
	case *fieldEnvelope:
		version = e.Version
	case *strokeEnvelope:
		version = e.Version
	}
	if version > Version {
		logger.Warnf("Codec: blob version %d is newer than %d, loading empty collection", version, Version)
		return false
	}
	return true
}
