package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var relativeDatePattern = regexp.MustCompile(`^@today(?:([+-])(\d+)([dw]))?$`)

// ParseDueDate converts a due-date expression to an ISO date.
// Examples:
//
//	2026-03-01  -> 2026-03-01
//	@today      -> 2026-08-30
//	@today+3d   -> 2026-09-02
//	@today-1w   -> 2026-08-23
func ParseDueDate(input string) (string, error) {
	return ParseDueDateWithBase(input, time.Now())
}

// ParseDueDateWithBase converts with a specific base date (for testing).
func ParseDueDateWithBase(input string, base time.Time) (string, error) {
	if matches := relativeDatePattern.FindStringSubmatch(input); matches != nil {
		if matches[1] == "" {
			return base.Format("2006-01-02"), nil
		}
		n, err := strconv.Atoi(matches[2])
		if err != nil {
			return "", fmt.Errorf("invalid date offset: %s", input)
		}
		days := n
		if matches[3] == "w" {
			days = n * 7
		}
		if matches[1] == "-" {
			days = -days
		}
		return base.AddDate(0, 0, days).Format("2006-01-02"), nil
	}

	if _, err := time.Parse("2006-01-02", input); err != nil {
		return "", fmt.Errorf("invalid date %q: expected YYYY-MM-DD or @today[+-N[dw]]", input)
	}
	return input, nil
}
