// Package importer turns an operator-supplied CSV payload into job drafts
// and persists them one at a time with visible progress.
//
// The accepted format is the TalentHub bulk-import dialect, not RFC 4180: a
// double quote anywhere in a field toggles "inside quotes" mode (so commas
// inside quotes stay literal) and quote characters are stripped from the
// final value.
package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"talenthub-backend/internal/domain"
)

// ExpectedHeaders is the exact header row, order- and case-sensitive.
var ExpectedHeaders = []string{
	"Client Name",
	"Position Name",
	"Min Exp",
	"Max Exp",
	"Location",
	"Tech Stack",
	"Domain",
	"Number of positions",
}

// FormatError reports a payload whose header row does not match
// ExpectedHeaders. No drafts are produced.
type FormatError struct {
	Got []string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid CSV format: header %q does not match the required format", strings.Join(e.Got, ","))
}

// Parse splits rawText into job drafts. Both \n and \r\n line endings are
// accepted and blank rows are skipped. Every draft is tagged active with a
// fresh creation timestamp and zero applications; nothing is persisted.
func Parse(rawText string) ([]domain.Job, error) {
	rows := strings.Split(rawText, "\n")
	for i := range rows {
		rows[i] = strings.TrimSuffix(rows[i], "\r")
	}

	if len(rows) == 0 || !headersMatch(rows[0]) {
		got := splitFields(firstRow(rows))
		return nil, &FormatError{Got: got}
	}

	now := time.Now()
	var drafts []domain.Job
	for _, row := range rows[1:] {
		if strings.TrimSpace(row) == "" {
			continue
		}
		values := splitFields(row)
		// Short rows still index safely.
		for len(values) < len(ExpectedHeaders) {
			values = append(values, "")
		}

		drafts = append(drafts, domain.Job{
			ClientName:        values[0],
			PositionName:      values[1],
			ExpMin:            parseIntDefault(values[2], 0),
			ExpMax:            parseIntPtr(values[3]),
			Location:          values[4],
			TechStack:         splitTechStack(values[5]),
			Domain:            values[6],
			NumberOfPositions: parseIntDefault(values[7], 1),
			Status:            domain.JobStatusActive,
			CreatedAt:         now,
			TotalApplications: 0,
		})
	}
	return drafts, nil
}

func firstRow(rows []string) string {
	if len(rows) == 0 {
		return ""
	}
	return rows[0]
}

func headersMatch(headerRow string) bool {
	headers := strings.Split(headerRow, ",")
	if len(headers) != len(ExpectedHeaders) {
		return false
	}
	for i, h := range headers {
		if strings.TrimSpace(h) != ExpectedHeaders[i] {
			return false
		}
	}
	return true
}

// splitFields is a quote-aware comma split: quotes toggle an inside-quotes
// mode and are dropped, commas inside quotes are literal, every value is
// trimmed.
func splitFields(row string) []string {
	var values []string
	var current strings.Builder
	insideQuotes := false

	for _, r := range row {
		switch {
		case r == '"':
			insideQuotes = !insideQuotes
		case r == ',' && !insideQuotes:
			values = append(values, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	values = append(values, strings.TrimSpace(current.String()))
	return values
}

func splitTechStack(value string) []string {
	parts := strings.Split(value, ",")
	stack := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			stack = append(stack, trimmed)
		}
	}
	return stack
}

func parseIntDefault(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

func parseIntPtr(value string) *int {
	if value == "" {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return &n
}
