package output

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pagecap/pagecap/internal/model"
)

// Format represents the output format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// OutputFormat is the current output format, set by the root command's --format flag.
var OutputFormat Format = FormatYAML

// PrettyOutput enables pretty-printing for JSON output.
var PrettyOutput bool

// WindowsResult is the top-level output of the `windows` command.
type WindowsResult struct {
	TS      int64          `yaml:"ts"      json:"ts"`
	Windows []model.Window `yaml:"windows" json:"windows"`
}

// CalibrateResult is the top-level output of the `calibrate` command.
type CalibrateResult struct {
	Window string `yaml:"window"          json:"window"`
	PID    int    `yaml:"pid,omitempty"   json:"pid,omitempty"`
	DX     int    `yaml:"dx"              json:"dx"`
	DY     int    `yaml:"dy"              json:"dy"`
	Offset string `yaml:"offset"          json:"offset"` // "dx,dy", pasteable into run --offset
}

// AssembleResult is the top-level output of the `assemble` command.
type AssembleResult struct {
	Output  string `yaml:"output"            json:"output"`
	Pages   int    `yaml:"pages"             json:"pages"`
	Skipped int    `yaml:"skipped,omitempty" json:"skipped,omitempty"`
}

// FramesResult is the top-level output of the `frames` command.
type FramesResult struct {
	Dir        string   `yaml:"dir"               json:"dir"`
	Valid      int      `yaml:"valid"             json:"valid"`
	Invalid    []string `yaml:"invalid,omitempty" json:"invalid,omitempty"`
	ResumePage int      `yaml:"resume_page"       json:"resume_page"`
}

// Print serializes v to stdout in the current output format.
func Print(v interface{}) error {
	switch OutputFormat {
	case FormatJSON:
		if PrettyOutput {
			return PrintPrettyJSON(v)
		}
		return PrintJSON(v)
	case FormatYAML:
		return PrintYAML(v)
	default:
		return fmt.Errorf("unsupported output format: %s", OutputFormat)
	}
}

// PrintJSON serializes v to stdout as compact single-line JSON.
func PrintJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// PrintPrettyJSON serializes v to stdout as indented JSON.
func PrintPrettyJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// PrintYAML serializes v to stdout as YAML.
func PrintYAML(v interface{}) error {
	enc := yaml.NewEncoder(os.Stdout)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}
