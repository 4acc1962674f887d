package codec

import (
	"errors"
	"fmt"
	"io"

	"forcegraph/internal/domain"

	"gopkg.in/yaml.v3"
)

// YAMLCodec handles generic YAML import/export
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// Parse imports graph data from YAML
func (c *YAMLCodec) Parse(r io.Reader) (*domain.GraphFragment, error) {
	var wire wireFragment
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&wire); err != nil && !errors.Is(err, io.EOF) {
		return nil, &domain.InputError{Reason: fmt.Sprintf("failed to parse YAML: %v", err)}
	}

	return wire.fragment(), nil
}

// Export exports graph data to YAML
func (c *YAMLCodec) Export(fragment *domain.GraphFragment, w io.Writer) error {
	return c.encode(fragment, w)
}

// WriteFrame writes one frame as YAML
func (c *YAMLCodec) WriteFrame(frame domain.Frame, w io.Writer) error {
	return c.encode(frame, w)
}

// WriteLayout writes a frozen layout as YAML
func (c *YAMLCodec) WriteLayout(layout *domain.Layout, w io.Writer) error {
	return c.encode(layout, w)
}

func (c *YAMLCodec) encode(v any, w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}
