package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/san-kum/algoviz/internal/step"
	"gopkg.in/yaml.v3"
)

// Format is an export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatYAML, FormatCSV:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrFormat, s)
}

// Export writes run in the given format. CSV carries only the sequence.
func Export(w io.Writer, format Format, run Run) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, run)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(run); err != nil {
			return err
		}
		return enc.Close()
	case FormatCSV:
		return WriteCSV(w, run.Sequence)
	}
	return fmt.Errorf("%w: %q", ErrFormat, format)
}

// WriteCSV writes one row per step.
func WriteCSV(w io.Writer, seq step.Sequence) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"step", "kind", "indices", "state", "description", "code", "variables"}); err != nil {
		return err
	}

	for i, s := range seq {
		indices := make([]string, len(s.Indices))
		for j, idx := range s.Indices {
			indices[j] = strconv.Itoa(idx)
		}
		names := s.VarNames()
		vars := make([]string, len(names))
		for j, name := range names {
			vars[j] = name + "=" + s.Variables[name].String()
		}
		row := []string{
			strconv.Itoa(i),
			s.Kind.String(),
			strings.Join(indices, " "),
			string(s.EffectiveRole()),
			s.Description,
			s.Code,
			strings.Join(vars, "; "),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
