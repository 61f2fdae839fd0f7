package batch

// ItemResult reports the outcome of one item. Index equals the item's
// position in the request regardless of execution order.
type ItemResult struct {
	Index      int        `json:"index"`
	Success    bool       `json:"success"`
	ID         string     `json:"id,omitempty"`
	Identifier string     `json:"identifier,omitempty"`
	URL        string     `json:"url,omitempty"`
	Error      *ItemError `json:"error,omitempty"`

	// Detail carries resolved fields for the report; not part of the
	// structured payload.
	Detail map[string]string `json:"-"`
}

// Summary counts outcomes; Succeeded+Failed always equals Total.
type Summary struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// Outcome is the full return of one batch call.
type Outcome struct {
	Results []ItemResult `json:"results"`
	Summary Summary      `json:"summary"`
	DryRun  bool         `json:"dryRun,omitempty"`
}

func summarize(results []ItemResult) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.Success {
			s.Succeeded++
		} else {
			s.Failed++
		}
	}
	return s
}
