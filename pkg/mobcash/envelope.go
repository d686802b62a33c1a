package mobcash

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Envelope is the paginated list shape. Every list read is normalized to it.
type Envelope[T any] struct {
	Count    int     `json:"count"    yaml:"count"`
	Next     *string `json:"next"     yaml:"next"`
	Previous *string `json:"previous" yaml:"previous"`
	Results  []T     `json:"results"  yaml:"results"`
}

// Shape tags a raw list payload.
type Shape int

// Known list payload shapes.
const (
	ShapeUnknown Shape = iota
	ShapeArray
	ShapeEnvelope
)

// String returns the shape name.
func (s Shape) String() string {
	switch s {
	case ShapeArray:
		return "array"
	case ShapeEnvelope:
		return "envelope"
	default:
		return "unknown"
	}
}

// DetectShape inspects a list payload. Endpoints either answer a bare JSON
// array or an object carrying a "results" array.
func DetectShape(raw []byte) (Shape, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return ShapeUnknown, fmt.Errorf("%w: empty body", ErrUnexpectedShape)
	}

	switch trimmed[0] {
	case '[':
		return ShapeArray, nil
	case '{':
		var head struct {
			Results json.RawMessage `json:"results"`
		}

		if err := json.Unmarshal(trimmed, &head); err != nil {
			return ShapeUnknown, fmt.Errorf("decoding envelope: %w", err)
		}

		if len(head.Results) == 0 || head.Results[0] != '[' {
			return ShapeUnknown, fmt.Errorf("%w: object without results array", ErrUnexpectedShape)
		}

		return ShapeEnvelope, nil
	default:
		return ShapeUnknown, fmt.Errorf("%w: starts with %q", ErrUnexpectedShape, trimmed[0])
	}
}

// Normalize decodes a list payload of either shape into an Envelope. A bare
// array becomes {Count: len, Next: nil, Previous: nil, Results: array}.
func Normalize[T any](raw []byte) (*Envelope[T], error) {
	shape, err := DetectShape(raw)
	if err != nil {
		return nil, err
	}

	if shape == ShapeArray {
		var items []T
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("decoding list: %w", err)
		}

		if items == nil {
			items = []T{}
		}

		return &Envelope[T]{Count: len(items), Results: items}, nil
	}

	var env Envelope[T]
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decoding envelope: %w", err)
	}

	if env.Results == nil {
		env.Results = []T{}
	}

	return &env, nil
}
