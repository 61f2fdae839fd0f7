package batch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReport(t *testing.T) {
	t.Run("all succeeded", func(t *testing.T) {
		o := Outcome{
			Results: []ItemResult{
				{Index: 0, Success: true, Identifier: "ENG-1", Detail: map[string]string{"state": "Todo"}},
				{Index: 1, Success: true, Identifier: "ENG-2"},
			},
		}
		o.Summary = summarize(o.Results)

		text := Report(o)
		assert.Contains(t, text, "2/2 succeeded, 0 failed: ENG-1, ENG-2")
		assert.Contains(t, text, "ENG-1: state=Todo")
		assert.NotContains(t, text, "Tips:")
	})

	t.Run("failures append tips", func(t *testing.T) {
		o := Outcome{
			Results: []ItemResult{
				{Index: 0, Success: true, Identifier: "ENG-1"},
				{Index: 1, Error: &ItemError{Code: "TEAM_NOT_FOUND", Message: `team "Desgin" not found`, Suggestions: []string{"Design (DES)"}}},
			},
		}
		o.Summary = summarize(o.Results)

		text := Report(o)
		assert.Contains(t, text, "1/2 succeeded, 1 failed")
		assert.Contains(t, text, "item 1 failed [TEAM_NOT_FOUND]")
		assert.Contains(t, text, "suggestion: Design (DES)")
		assert.Contains(t, text, "Tips:")
		assert.Contains(t, text, "list_teams")
	})

	t.Run("dry run", func(t *testing.T) {
		o := Outcome{
			Results: []ItemResult{{Index: 0, Success: true}},
			Summary: Summary{Total: 1, Succeeded: 1},
			DryRun:  true,
		}
		text := Report(o)
		assert.True(t, strings.HasPrefix(text, "Dry run:"))
		assert.Contains(t, text, "1 item(s) validated")
	})
}

func TestSummarize(t *testing.T) {
	s := summarize([]ItemResult{{Success: true}, {}, {Success: true}})
	assert.Equal(t, Summary{Total: 3, Succeeded: 2, Failed: 1}, s)
	assert.Equal(t, s.Total, s.Succeeded+s.Failed)
}
