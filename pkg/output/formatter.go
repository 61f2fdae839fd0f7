package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/linearmcp/linear-mcp-go/pkg/batch"
)

// FormatType represents the output format type
type FormatType int

const (
	// FormatTable outputs as a formatted table
	FormatTable FormatType = iota
	// FormatJSON outputs as JSON
	FormatJSON
	// FormatCSV outputs as CSV
	FormatCSV
	// FormatQuiet outputs minimal information
	FormatQuiet
)

// ParseFormat maps a --format flag value to its format type.
func ParseFormat(s string) (FormatType, error) {
	switch s {
	case "", "table":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "quiet":
		return FormatQuiet, nil
	default:
		return FormatTable, fmt.Errorf("unknown format %q: expected table, json, csv or quiet", s)
	}
}

// Formatter handles output formatting
type Formatter struct {
	format FormatType
	writer io.Writer
}

// NewFormatter creates a new formatter
func NewFormatter(format FormatType) *Formatter {
	return &Formatter{
		format: format,
		writer: os.Stdout,
	}
}

// NewFormatterWithWriter creates a new formatter with custom writer
func NewFormatterWithWriter(format FormatType, writer io.Writer) *Formatter {
	return &Formatter{
		format: format,
		writer: writer,
	}
}

// FormatOutcome formats the result of one batch call
func (f *Formatter) FormatOutcome(outcome *batch.Outcome) error {
	switch f.format {
	case FormatQuiet:
		return f.formatOutcomeQuiet(outcome)
	case FormatJSON:
		return f.formatOutcomeJSON(outcome)
	case FormatCSV:
		return f.formatOutcomeCSV(outcome)
	default:
		return f.formatOutcomeTable(outcome)
	}
}

// formatOutcomeQuiet prints only the URLs of succeeded items
func (f *Formatter) formatOutcomeQuiet(outcome *batch.Outcome) error {
	for _, r := range outcome.Results {
		if r.Success && r.URL != "" {
			if _, err := fmt.Fprintln(f.writer, r.URL); err != nil {
				return err
			}
		}
	}
	return nil
}

// formatOutcomeTable formats the outcome as a table
func (f *Formatter) formatOutcomeTable(outcome *batch.Outcome) error {
	w := tabwriter.NewWriter(f.writer, 0, 0, 2, ' ', 0)
	defer w.Flush()

	if outcome.DryRun {
		fmt.Fprintf(w, "Dry Run Complete\n\n")
	} else {
		fmt.Fprintf(w, "Batch Processing Complete\n\n")
	}
	fmt.Fprintf(w, "Total:\t%d\n", outcome.Summary.Total)
	fmt.Fprintf(w, "Succeeded:\t%d\n", outcome.Summary.Succeeded)
	fmt.Fprintf(w, "Failed:\t%d\n", outcome.Summary.Failed)

	var succeeded, failed []batch.ItemResult
	for _, r := range outcome.Results {
		if r.Success {
			succeeded = append(succeeded, r)
		} else {
			failed = append(failed, r)
		}
	}

	if len(succeeded) > 0 && !outcome.DryRun {
		fmt.Fprintf(w, "\nResults:\n")
		fmt.Fprintf(w, "Index\tIdentifier\tURL\n")
		for _, r := range succeeded {
			fmt.Fprintf(w, "%d\t%s\t%s\n", r.Index, r.Identifier, r.URL)
		}
	}

	if len(failed) > 0 {
		fmt.Fprintf(w, "\nErrors:\n")
		for _, r := range failed {
			fmt.Fprintf(w, "  [%d] %s: %s\n", r.Index, r.Error.Code, r.Error.Message)
			for _, s := range r.Error.Suggestions {
				fmt.Fprintf(w, "      %s\n", s)
			}
		}
	}

	return nil
}

// formatOutcomeJSON formats the outcome as JSON
func (f *Formatter) formatOutcomeJSON(outcome *batch.Outcome) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(outcome)
}

// formatOutcomeCSV formats the outcome as CSV
func (f *Formatter) formatOutcomeCSV(outcome *batch.Outcome) error {
	w := csv.NewWriter(f.writer)
	defer w.Flush()

	if err := w.Write([]string{"Index", "Success", "Identifier", "URL", "ErrorCode", "ErrorMessage"}); err != nil {
		return err
	}

	for _, r := range outcome.Results {
		record := []string{
			strconv.Itoa(r.Index),
			strconv.FormatBool(r.Success),
			r.Identifier,
			r.URL,
			"",
			"",
		}
		if r.Error != nil {
			record[4] = r.Error.Code
			record[5] = r.Error.Message
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	return nil
}
