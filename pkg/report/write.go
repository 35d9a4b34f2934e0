package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/lockgemfile/pkg/errors"
)

// Format selects the report rendering.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists the supported formats.
var Formats = []Format{FormatText, FormatJSON, FormatYAML}

// ParseFormat parses a format name; the empty string means text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown format %q (available: text, json, yaml)", s)
}

// document is the structured form of a report.
type document struct {
	Total       int         `json:"total" yaml:"total"`
	Local       int         `json:"local" yaml:"local"`
	LocalExtra  string      `json:"local_extra" yaml:"local_extra"`
	Remote      int         `json:"remote" yaml:"remote"`
	RemoteExtra string      `json:"remote_extra" yaml:"remote_extra"`
	Gems        []GemCounts `json:"gems" yaml:"gems"`
}

// Write renders r to w in the given format.
func Write(w io.Writer, r *Report, format Format) error {
	switch format {
	case FormatText, "":
		return WriteText(w, r)
	case FormatJSON, FormatYAML:
		doc := document{
			Total:       r.Total,
			Local:       r.Local,
			LocalExtra:  r.LocalExtra(),
			Remote:      r.Remote,
			RemoteExtra: r.RemoteExtra(),
			Gems:        r.Gems,
		}
		if format == FormatJSON {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(doc)
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	}
	return errors.New(errors.ErrCodeInvalidInput, "unknown format %q", format)
}

// WriteText prints the three-line summary.
func WriteText(w io.Writer, r *Report) error {
	_, err := fmt.Fprintf(w,
		"Total gems: %d\nMatching gems locally available: %d (%s extra)\nMatching gems remotely available: %d (%s extra)\n",
		r.Total, r.Local, r.LocalExtra(), r.Remote, r.RemoteExtra())
	return err
}
