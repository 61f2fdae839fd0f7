package batch

import (
	"fmt"
	"strings"
)

var detailOrder = []string{"state", "project", "labels", "assignee", "due date", "estimate", "cycle"}

// Report renders the outcome as a three-part human-readable text:
// a summary line, detail lines for succeeded items, and remediation tips
// when anything failed.
func Report(o Outcome) string {
	var b strings.Builder

	if o.DryRun {
		fmt.Fprintf(&b, "Dry run: %d item(s) validated, nothing sent.\n", o.Summary.Total)
		return b.String()
	}

	var succeeded []string
	for _, r := range o.Results {
		if r.Success {
			succeeded = append(succeeded, label(r))
		}
	}
	fmt.Fprintf(&b, "%d/%d succeeded, %d failed", o.Summary.Succeeded, o.Summary.Total, o.Summary.Failed)
	if len(succeeded) > 0 {
		fmt.Fprintf(&b, ": %s", strings.Join(succeeded, ", "))
	}
	b.WriteString("\n")

	for _, r := range o.Results {
		if r.Success {
			if line := detailLine(r); line != "" {
				b.WriteString(line)
				b.WriteString("\n")
			}
		}
	}

	for _, r := range o.Results {
		if !r.Success && r.Error != nil {
			fmt.Fprintf(&b, "item %d failed [%s]: %s\n", r.Index, r.Error.Code, r.Error.Message)
			for _, s := range r.Error.Suggestions {
				fmt.Fprintf(&b, "  suggestion: %s\n", s)
			}
		}
	}

	if o.Summary.Failed > 0 {
		b.WriteString("\nTips:\n")
		b.WriteString("  - Re-check identifiers with the listing tools (list_teams, list_projects, list_users).\n")
		b.WriteString("  - Failed items can be resubmitted on their own; succeeded items need no retry.\n")
	}
	return b.String()
}

func label(r ItemResult) string {
	if r.Identifier != "" {
		return r.Identifier
	}
	if r.ID != "" {
		return r.ID
	}
	return fmt.Sprintf("item %d", r.Index)
}

func detailLine(r ItemResult) string {
	if len(r.Detail) == 0 {
		return ""
	}
	parts := make([]string, 0, len(r.Detail))
	for _, key := range detailOrder {
		if v, ok := r.Detail[key]; ok && v != "" {
			parts = append(parts, fmt.Sprintf("%s=%s", key, v))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf("  %s: %s", label(r), strings.Join(parts, " "))
}
