package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase/core"
)

// formatOrderNumber constructs the order number string from components.
func formatOrderNumber(year, sequence int) string {
	return fmt.Sprintf("OS-%d-%04d", year, sequence)
}

// GenerateOrderNumber returns the next service order number for the year of now.
// Format: OS-{year}-{sequence}, sequence 4-digit zero-padded and restarting
// every calendar year. The sequence follows the highest number in use, so
// numbers freed by deletions are not handed out again.
func GenerateOrderNumber(app core.App, now time.Time) (string, error) {
	year := now.Year()
	prefix := fmt.Sprintf("OS-%d-", year)

	existing, err := app.FindRecordsByFilter(
		"service_orders",
		"number ~ {:prefix}",
		"",
		0,
		0,
		map[string]any{
			"prefix": prefix + "%",
		},
	)
	if err != nil {
		return "", fmt.Errorf("order number: query %s: %w", prefix, err)
	}

	// Compared numerically: past 9999 the text order no longer matches.
	highest := 0
	for _, r := range existing {
		seq, err := strconv.Atoi(strings.TrimPrefix(r.GetString("number"), prefix))
		if err != nil {
			continue
		}
		highest = max(highest, seq)
	}

	return formatOrderNumber(year, highest+1), nil
}
