package codec

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"forcegraph/internal/domain"
)

// CSVCodec handles edge-list CSV: a header row naming Source and Target,
// plus an optional Weight column. Header names are case-insensitive and
// extra columns are ignored. The node set is the union of endpoints.
type CSVCodec struct{}

// NewCSVCodec creates a new CSV codec
func NewCSVCodec() *CSVCodec {
	return &CSVCodec{}
}

// Format returns the codec format identifier
func (c *CSVCodec) Format() string {
	return "csv"
}

// Parse imports an edge list
func (c *CSVCodec) Parse(r io.Reader) (*domain.GraphFragment, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &domain.InputError{Reason: "CSV is empty", Line: 1}
	}
	if err != nil {
		return nil, csvError(err)
	}

	src, dst, weight := -1, -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))) {
		case "source":
			src = i
		case "target":
			dst = i
		case "weight":
			weight = i
		}
	}
	if src < 0 || dst < 0 {
		return nil, &domain.InputError{Reason: "CSV header needs Source and Target columns", Line: 1}
	}

	fragment := domain.NewGraphFragment()
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvError(err)
		}
		line, _ := reader.FieldPos(0)

		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}
		if len(record) <= src || len(record) <= dst {
			return nil, &domain.InputError{Reason: "row is missing Source or Target", Line: line}
		}

		link := domain.LinkSpec{
			SourceID: strings.TrimSpace(record[src]),
			TargetID: strings.TrimSpace(record[dst]),
		}
		if link.SourceID == "" || link.TargetID == "" {
			return nil, &domain.InputError{Reason: "row has an empty endpoint", Line: line}
		}
		if weight >= 0 && weight < len(record) && strings.TrimSpace(record[weight]) != "" {
			w, err := strconv.ParseFloat(strings.TrimSpace(record[weight]), 64)
			if err != nil {
				return nil, &domain.InputError{Reason: fmt.Sprintf("weight %q is not a number", record[weight]), Line: line}
			}
			link.Weight = &w
		}
		fragment.AddLink(link)
	}

	return fragment, nil
}

// Export writes the links of fragment as an edge list. Isolated nodes and
// positions have no CSV representation and are dropped.
func (c *CSVCodec) Export(fragment *domain.GraphFragment, w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"Source", "Target", "Weight"}); err != nil {
		return fmt.Errorf("failed to encode CSV: %w", err)
	}
	for _, l := range fragment.Links {
		weight := domain.DefaultWeight
		if l.Weight != nil {
			weight = *l.Weight
		}
		row := []string{l.SourceID, l.TargetID, strconv.FormatFloat(weight, 'g', -1, 64)}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to encode CSV: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to encode CSV: %w", err)
	}
	return nil
}

func csvError(err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return &domain.InputError{Reason: parseErr.Err.Error(), Line: parseErr.Line}
	}
	return &domain.InputError{Reason: err.Error()}
}
