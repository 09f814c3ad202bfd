package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"loan-eligibility-workers/internal/eligibility"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// render writes v in the selected output format. text is called for the text format.
func render(cmd *cobra.Command, v interface{}, text func(w io.Writer, st styles)) error {
	w := cmd.OutOrStdout()
	switch outputFormat {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return enc.Close()
	case formatText:
		text(w, newStyles(w))
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want text, json or yaml)", outputFormat)
	}
}

// styles holds the lipgloss styles for text output. Colours are dropped when w is not a
// terminal.
type styles struct {
	title  lipgloss.Style
	label  lipgloss.Style
	muted  lipgloss.Style
	good   lipgloss.Style
	warn   lipgloss.Style
	bad    lipgloss.Style
	accent lipgloss.Style
	header lipgloss.Style
	cell   lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")),
		label:  r.NewStyle().Width(22),
		muted:  r.NewStyle().Foreground(lipgloss.Color("#6C7086")),
		good:   r.NewStyle().Foreground(lipgloss.Color("#A6E3A1")),
		warn:   r.NewStyle().Foreground(lipgloss.Color("#F9E2AF")),
		bad:    r.NewStyle().Foreground(lipgloss.Color("#F38BA8")),
		accent: r.NewStyle().Foreground(lipgloss.Color("#06B6D4")),
		header: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")).Padding(0, 1),
		cell:   r.NewStyle().Padding(0, 1),
	}
}

func (s styles) risk(c eligibility.RiskCategory) lipgloss.Style {
	switch c {
	case eligibility.RiskLow:
		return s.good
	case eligibility.RiskMedium:
		return s.warn
	default:
		return s.bad
	}
}

func (s styles) bankFit(c eligibility.BankFitCategory) lipgloss.Style {
	switch c {
	case eligibility.BankFitGood:
		return s.good
	case eligibility.BankFitModerate:
		return s.warn
	default:
		return s.bad
	}
}

func (s styles) severity(sev eligibility.Severity) lipgloss.Style {
	switch sev {
	case eligibility.SeverityLow:
		return s.good
	case eligibility.SeverityMedium:
		return s.warn
	default:
		return s.bad
	}
}

func (s styles) row(w io.Writer, label, value string) {
	fmt.Fprintf(w, "%s%s\n", s.label.Render(label), value)
}

// table renders rows under headers with a muted border.
func (s styles) table(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(s.muted).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.header
			}
			return s.cell
		}).
		String()
}
