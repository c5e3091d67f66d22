package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Output formats accepted by --output.
const (
	outputTable    = "table"
	outputMarkdown = "markdown"
	outputJSON     = "json"
)

// tableSpec is a rendered listing: a header, rows and an optional footer.
type tableSpec struct {
	header  []string
	rows    [][]any
	footer  []any
	numeric []int // 1-based columns aligned right
}

func (s *tableSpec) row(vals ...any) {
	s.rows = append(s.rows, vals)
}

// render writes payload as JSON, or spec as a table in the chosen format.
func render(w io.Writer, format string, spec tableSpec, payload any) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	case "":
		format = outputTable
	case outputTable, outputMarkdown:
	default:
		return fmt.Errorf("unknown output format %q", format)
	}

	tw := table.NewWriter()
	header := make(table.Row, len(spec.header))
	for i, h := range spec.header {
		header[i] = h
	}
	tw.AppendHeader(header)
	for _, r := range spec.rows {
		tw.AppendRow(table.Row(r))
	}
	if len(spec.footer) > 0 {
		tw.AppendFooter(table.Row(spec.footer))
	}
	cfgs := make([]table.ColumnConfig, 0, len(spec.numeric))
	for _, n := range spec.numeric {
		cfgs = append(cfgs, table.ColumnConfig{Number: n, Align: text.AlignRight})
	}
	tw.SetColumnConfigs(cfgs)

	if format == outputTable {
		tw.SetStyle(table.StyleLight)
	}
	// keep repository names and messages as written
	tw.Style().Format.Header = text.FormatDefault
	tw.Style().Format.Footer = text.FormatDefault

	var out string
	if format == outputMarkdown {
		out = tw.RenderMarkdown()
	} else {
		out = tw.Render()
	}
	_, err := fmt.Fprintln(w, out)
	return err
}
