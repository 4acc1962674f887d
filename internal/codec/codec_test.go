package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"forcegraph/internal/domain"
)

func weightOf(l domain.LinkSpec) float64 {
	if l.Weight == nil {
		return domain.DefaultWeight
	}
	return *l.Weight
}

func TestCSVParse(t *testing.T) {
	t.Run("source target header", func(t *testing.T) {
		input := "Source,Target\nalice,bob\nbob,carol\n"
		fragment, err := NewCSVCodec().Parse(strings.NewReader(input))
		if err != nil {
			t.Fatalf("Parse() error: %v", err)
		}
		if len(fragment.Links) != 2 || len(fragment.Nodes) != 0 {
			t.Fatalf("expected 2 links and implied nodes, got %d links %d nodes", len(fragment.Links), len(fragment.Nodes))
		}
		if fragment.Links[1].SourceID != "bob" || fragment.Links[1].TargetID != "carol" {
			t.Errorf("unexpected link %+v", fragment.Links[1])
		}
		if fragment.Links[0].Weight != nil {
			t.Error("missing weight should stay nil for the default")
		}

		g, err := domain.NewGraph(fragment)
		if err != nil {
			t.Fatalf("NewGraph() error: %v", err)
		}
		if g.Len() != 3 {
			t.Errorf("expected 3 nodes, got %d", g.Len())
		}
	})

	t.Run("case-insensitive header with weight and extra columns", func(t *testing.T) {
		input := "label,TARGET, source ,Weight\nx,b,a,2.5\ny,c,b,\n"
		fragment, err := NewCSVCodec().Parse(strings.NewReader(input))
		if err != nil {
			t.Fatalf("Parse() error: %v", err)
		}
		if fragment.Links[0].SourceID != "a" || fragment.Links[0].TargetID != "b" {
			t.Errorf("unexpected link %+v", fragment.Links[0])
		}
		if weightOf(fragment.Links[0]) != 2.5 || weightOf(fragment.Links[1]) != 1 {
			t.Error("unexpected weights")
		}
	})

	tests := []struct {
		name  string
		input string
		line  int
	}{
		{"empty input", "", 1},
		{"missing target column", "Source,Other\na,b\n", 1},
		{"short row", "Source,Target\na,b\nc\n", 3},
		{"empty endpoint", "Source,Target\na, \n", 2},
		{"bad weight", "Source,Target,Weight\na,b,heavy\n", 2},
		{"bad quoting", "Source,Target\n\"a,b\n", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCSVCodec().Parse(strings.NewReader(tt.input))
			var inputErr *domain.InputError
			if !errors.As(err, &inputErr) {
				t.Fatalf("expected *InputError, got %v", err)
			}
			if tt.line > 0 && inputErr.Line != tt.line {
				t.Errorf("Line = %d, want %d", inputErr.Line, tt.line)
			}
		})
	}
}

func TestCSVExport(t *testing.T) {
	fragment := domain.NewGraphFragment()
	fragment.AddEdge("a", "b")
	fragment.AddWeightedEdge("b", "c", 0.5)

	var buf bytes.Buffer
	if err := NewCSVCodec().Export(fragment, &buf); err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	expected := "Source,Target,Weight\na,b,1\nb,c,0.5\n"
	if buf.String() != expected {
		t.Errorf("Export() = %q, want %q", buf.String(), expected)
	}
}

func TestJSONParse(t *testing.T) {
	t.Run("explicit nodes and links", func(t *testing.T) {
		input := `{"nodes":[{"id":"a","x":1,"y":2},{"id":"b"}],"links":[{"source_id":"a","target_id":"b","weight":3}]}`
		fragment, err := NewJSONCodec().Parse(strings.NewReader(input))
		if err != nil {
			t.Fatalf("Parse() error: %v", err)
		}
		if len(fragment.Nodes) != 2 || *fragment.Nodes[0].X != 1 || fragment.Nodes[1].X != nil {
			t.Errorf("unexpected nodes %+v", fragment.Nodes)
		}
		if weightOf(fragment.Links[0]) != 3 {
			t.Errorf("unexpected weight %v", weightOf(fragment.Links[0]))
		}
	})

	t.Run("d3 and camel case endpoints", func(t *testing.T) {
		input := `{"links":[{"source":"a","target":"b"},{"sourceId":"b","targetId":"c"}],"edges":[{"source":"c","target":"a"}]}`
		fragment, err := NewJSONCodec().Parse(strings.NewReader(input))
		if err != nil {
			t.Fatalf("Parse() error: %v", err)
		}
		if len(fragment.Links) != 3 {
			t.Fatalf("expected 3 links, got %d", len(fragment.Links))
		}
		if fragment.Links[1].SourceID != "b" || fragment.Links[2].TargetID != "a" {
			t.Errorf("unexpected links %+v", fragment.Links)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := NewJSONCodec().Parse(strings.NewReader(`{"links": [`))
		if !domain.IsInputError(err) {
			t.Errorf("expected input error, got %v", err)
		}
	})
}

func TestYAMLParse(t *testing.T) {
	input := `
nodes:
  - id: a
    fx: 10
    fy: 20
  - id: b
edges:
  - source_id: a
    target_id: b
`
	fragment, err := NewYAMLCodec().Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(fragment.Nodes) != 2 || fragment.Nodes[0].FX == nil || *fragment.Nodes[0].FY != 20 {
		t.Errorf("unexpected nodes %+v", fragment.Nodes)
	}
	if len(fragment.Links) != 1 || fragment.Links[0].TargetID != "b" {
		t.Errorf("unexpected links %+v", fragment.Links)
	}

	if _, err := NewYAMLCodec().Parse(strings.NewReader("nodes: [")); !domain.IsInputError(err) {
		t.Errorf("expected input error, got %v", err)
	}
	empty, err := NewYAMLCodec().Parse(strings.NewReader(""))
	if err != nil || len(empty.Links) != 0 {
		t.Errorf("empty document should parse to an empty fragment, got %v", err)
	}
}

func TestFragmentRoundTrip(t *testing.T) {
	x, y := 1.5, -2.5
	fragment := domain.NewGraphFragment()
	fragment.AddNode(domain.NodeSpec{ID: "a", X: &x, Y: &y})
	fragment.AddNode(domain.NodeSpec{ID: "b"})
	fragment.AddWeightedEdge("a", "b", 4)

	registry := NewRegistry()
	for _, format := range []string{"json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			exp, err := registry.Exporter(format)
			if err != nil {
				t.Fatalf("Exporter() error: %v", err)
			}
			imp, err := registry.Importer(format)
			if err != nil {
				t.Fatalf("Importer() error: %v", err)
			}

			var buf bytes.Buffer
			if err := exp.Export(fragment, &buf); err != nil {
				t.Fatalf("Export() error: %v", err)
			}
			parsed, err := imp.Parse(&buf)
			if err != nil {
				t.Fatalf("Parse() error: %v", err)
			}
			if len(parsed.Nodes) != 2 || *parsed.Nodes[0].Y != -2.5 {
				t.Errorf("nodes did not survive: %+v", parsed.Nodes)
			}
			if parsed.Links[0].SourceID != "a" || weightOf(parsed.Links[0]) != 4 {
				t.Errorf("links did not survive: %+v", parsed.Links)
			}
		})
	}
}

func TestDocumentWriters(t *testing.T) {
	fragment := domain.NewGraphFragment()
	fragment.AddEdge("a", "b")
	g, _ := domain.NewGraph(fragment)
	frame := domain.NewFrame(g, 12, 0.25, false)

	t.Run("json frame", func(t *testing.T) {
		w, _ := NewRegistry().Writer("JSON")
		var buf bytes.Buffer
		if err := w.WriteFrame(frame, &buf); err != nil {
			t.Fatalf("WriteFrame() error: %v", err)
		}
		var decoded domain.Frame
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if decoded.Tick != 12 || len(decoded.Nodes) != 2 || decoded.Links[0].SourceID != "a" {
			t.Errorf("unexpected frame %+v", decoded)
		}
	})

	t.Run("yaml layout", func(t *testing.T) {
		w, _ := NewRegistry().Writer("yml")
		doc := &domain.Layout{
			Name:      "demo",
			Positions: []domain.NodePosition{*domain.NewNodePosition("a", 1, 2)},
			Links:     g.LinkSpecs(),
		}
		var buf bytes.Buffer
		if err := w.WriteLayout(doc, &buf); err != nil {
			t.Fatalf("WriteLayout() error: %v", err)
		}
		var decoded domain.Layout
		if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("invalid YAML: %v", err)
		}
		if decoded.Name != "demo" || decoded.Positions[0].Y != 2 || decoded.Links[0].TargetID != "b" {
			t.Errorf("unexpected layout %+v", decoded)
		}
	})
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Importer("csv"); err != nil {
		t.Errorf("csv importer missing: %v", err)
	}
	if _, err := r.Importer("graphml"); err == nil {
		t.Error("expected unsupported format error")
	}
	if _, err := r.Writer("csv"); err == nil {
		t.Error("csv cannot write frames")
	}

	tests := map[string]string{
		"graph.csv":      "csv",
		"dir/graph.YAML": "yaml",
		"graph":          "json",
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %s, want %s", path, got, want)
		}
	}
}
