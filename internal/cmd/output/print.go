package output

import (
	"io"

	"github.com/productioncity/salutation/internal/cmd/table"
)

// Print writes data in the given format. Table formats render tableData
// when it is non-nil; structured formats always render data itself.
func Print(w io.Writer, format Format, data any, tableData func(wide bool) table.Data) error {
	formatter := NewFormatter(format)

	switch format {
	case FormatTable, FormatWide, "":
		if tableData != nil {
			return formatter.Format(w, tableData(format == FormatWide))
		}
	}

	return formatter.Format(w, data)
}

// Render prints data in the format the user asked for, or the detected one
// when they did not ask.
func Render(w io.Writer, explicit string, data any, tableData func(wide bool) table.Data) error {
	return Print(w, DetectFormat(explicit), data, tableData)
}
