// Package storage keeps the stroke log in a local key-value store.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"LocalPaint/internal/state"

	"github.com/sirupsen/logrus"
)

const DefaultKey = "savedCanvas"

var (
	// ErrNotFound means nothing has been saved under the key.
	ErrNotFound = errors.New("storage: canvas not found")
	// ErrCorrupt means the stored value is not a valid stroke log.
	ErrCorrupt = errors.New("storage: corrupt canvas data")
)

// KeyValue is the subset of fyne.Preferences the store uses. An empty
// string means the key is absent.
type KeyValue interface {
	String(key string) string
	SetString(key string, value string)
	RemoveValue(key string)
}

type Store struct {
	kv  KeyValue
	key string
}

func New(kv KeyValue, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{kv: kv, key: key}
}

func (s *Store) Key() string { return s.key }

// Save overwrites whatever is stored.
func (s *Store) Save(points []state.StrokePoint) error {
	data, err := Encode(points)
	if err != nil {
		return err
	}
	s.kv.SetString(s.key, string(data))
	logrus.WithFields(logrus.Fields{
		"key":    s.key,
		"points": len(points),
		"bytes":  len(data),
	}).Info("storage: canvas saved")
	return nil
}

// Load returns the stored log, ErrNotFound or an ErrCorrupt-wrapped error.
func (s *Store) Load() ([]state.StrokePoint, error) {
	raw := s.kv.String(s.key)
	if raw == "" {
		return nil, ErrNotFound
	}
	points, err := Decode([]byte(raw))
	if err != nil {
		logrus.WithField("key", s.key).WithError(err).Warn("storage: stored canvas rejected")
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"key":    s.key,
		"points": len(points),
	}).Info("storage: canvas loaded")
	return points, nil
}

func (s *Store) Clear() {
	s.kv.RemoveValue(s.key)
	logrus.WithField("key", s.key).Info("storage: canvas removed")
}

// Encode renders points in the stored JSON shape. A nil log encodes as [].
func Encode(points []state.StrokePoint) ([]byte, error) {
	if points == nil {
		points = []state.StrokePoint{}
	}
	data, err := json.Marshal(points)
	if err != nil {
		return nil, fmt.Errorf("storage: encode canvas: %w", err)
	}
	return data, nil
}

// wirePoint mirrors state.StrokePoint with pointers so missing fields can
// be told apart from zero values.
type wirePoint struct {
	X         *float64 `json:"x"`
	Y         *float64 `json:"y"`
	Size      *float64 `json:"size"`
	Color     *string  `json:"color"`
	Erase     *bool    `json:"erase"`
	NewStroke *bool    `json:"newStroke"`
}

// Decode parses and validates a stored log.
func Decode(data []byte) ([]state.StrokePoint, error) {
	var wire []wirePoint
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if wire == nil {
		return nil, fmt.Errorf("%w: not an array", ErrCorrupt)
	}

	points := make([]state.StrokePoint, 0, len(wire))
	for i, w := range wire {
		p, err := w.validate()
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrCorrupt, i, err)
		}
		points = append(points, p)
	}
	return points, nil
}

func (w wirePoint) validate() (state.StrokePoint, error) {
	switch {
	case w.X == nil || w.Y == nil:
		return state.StrokePoint{}, errors.New("missing position")
	case w.Size == nil:
		return state.StrokePoint{}, errors.New("missing size")
	case *w.Size <= 0:
		return state.StrokePoint{}, fmt.Errorf("size %v is not positive", *w.Size)
	case w.Color == nil:
		return state.StrokePoint{}, errors.New("missing color")
	case w.Erase == nil || w.NewStroke == nil:
		return state.StrokePoint{}, errors.New("missing flags")
	}
	if _, err := state.ParseColor(*w.Color); err != nil {
		return state.StrokePoint{}, err
	}
	return state.StrokePoint{
		X:         *w.X,
		Y:         *w.Y,
		Size:      *w.Size,
		Color:     *w.Color,
		Erase:     *w.Erase,
		NewStroke: *w.NewStroke,
	}, nil
}
