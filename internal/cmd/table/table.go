// Package table converts salutation values into rows for the table formatter.
package table

import (
	"strconv"
	"strings"
	"time"

	"github.com/productioncity/salutation"
	"github.com/productioncity/salutation/pkg/contacts"
	"github.com/productioncity/salutation/pkg/fields"
	"github.com/productioncity/salutation/pkg/names"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// ContactsToTableData converts contacts to table format. Wide adds the
// locale, title and timestamps.
func ContactsToTableData(cs []contacts.Contact, wide bool) Data {
	headers := []string{"ID", "Category", "Name", "Given", "Family", "Salutation", "Pinned"}
	if wide {
		headers = append(headers, "Locale", "Title", "Updated")
	}

	rows := make([][]string, 0, len(cs))
	for _, c := range cs {
		row := []string{
			c.ID,
			c.Category.String(),
			orDash(c.Name),
			orDash(c.GivenName),
			orDash(c.FamilyName),
			orDash(c.Salutation),
			PinnedString(c),
		}
		if wide {
			row = append(row, orDash(c.Locale), orDash(c.Title), FormatTime(c.UpdatedAt))
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows}
}

// ContactToTableData renders a single contact as property/value rows.
func ContactToTableData(c contacts.Contact) Data {
	rows := [][]string{
		{"ID", c.ID},
		{"Category", c.Category.String()},
		{"Name", orDash(c.Name)},
		{"Locale", orDash(c.Locale)},
		{"Title", orDash(c.Title)},
	}
	for _, f := range contacts.Fields() {
		value := orDash(c.Value(f))
		if c.Manual(f) {
			value += " (pinned)"
		}
		rows = append(rows, []string{f.Label(), value})
	}
	rows = append(rows,
		[]string{"Created", FormatTime(c.CreatedAt)},
		[]string{"Updated", FormatTime(c.UpdatedAt)},
	)

	return Data{Headers: []string{"Property", "Value"}, Rows: rows}
}

// PartsToTableData renders derived name parts.
func PartsToTableData(p names.Parts) Data {
	return Data{
		Headers: []string{"Given", "Family", "Salutation"},
		Rows:    [][]string{{orDash(p.Given), orDash(p.Family), orDash(p.Salutation)}},
	}
}

// FieldsToTableData renders a field list.
func FieldsToTableData(fs []fields.Field) Data {
	rows := make([][]string, 0, len(fs))
	for _, f := range fs {
		rows = append(rows, []string{f.Name, f.Label})
	}
	return Data{Headers: []string{"Name", "Label"}, Rows: rows}
}

// BackfillReportToTableData renders the counters of a backfill run followed
// by one row per failure.
func BackfillReportToTableData(r salutation.BackfillReport) Data {
	rows := [][]string{
		{"Processed", strconv.Itoa(r.Processed)},
		{"Updated", strconv.Itoa(r.Updated)},
		{"Skipped", strconv.Itoa(r.Skipped)},
		{"Failed", strconv.Itoa(r.Failed)},
		{"Duration", r.Duration.Round(time.Millisecond).String()},
	}
	for _, f := range r.Failures {
		rows = append(rows, []string{"Failure " + f.ContactID, f.Error})
	}

	return Data{
		Headers:         []string{"Metric", "Value"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
}

// PinnedString lists the pinned fields of c, or "-".
func PinnedString(c contacts.Contact) string {
	var pinned []string
	for _, f := range contacts.Fields() {
		if c.Manual(f) {
			pinned = append(pinned, f.String())
		}
	}
	if len(pinned) == 0 {
		return "-"
	}
	return strings.Join(pinned, ",")
}

// FormatTime formats a timestamp for tables.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
