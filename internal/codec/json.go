package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"forcegraph/internal/domain"
)

// JSONCodec handles JSON import/export
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// Parse imports graph data from JSON
func (c *JSONCodec) Parse(r io.Reader) (*domain.GraphFragment, error) {
	var wire wireFragment
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&wire); err != nil {
		return nil, &domain.InputError{Reason: fmt.Sprintf("failed to parse JSON: %v", err)}
	}

	return wire.fragment(), nil
}

// Export exports graph data to JSON
func (c *JSONCodec) Export(fragment *domain.GraphFragment, w io.Writer) error {
	return c.encode(fragment, w)
}

// WriteFrame writes one frame as indented JSON
func (c *JSONCodec) WriteFrame(frame domain.Frame, w io.Writer) error {
	return c.encode(frame, w)
}

// WriteLayout writes a frozen layout as indented JSON
func (c *JSONCodec) WriteLayout(layout *domain.Layout, w io.Writer) error {
	return c.encode(layout, w)
}

func (c *JSONCodec) encode(v any, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
