package client

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/term"
)

// RenderStringTable renders a table as a string
func RenderStringTable(headers []string, data [][]string) string {
	tableString := &strings.Builder{}
	table := tablewriter.NewWriter(tableString)
	table.SetHeader(headers)
	table.SetAutoFormatHeaders(false)
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")
	table.AppendBulk(data)
	table.Render()

	return tableString.String()
}

// RenderTable renders a table to w
func RenderTable(w io.Writer, headers []string, data [][]string) {
	fmt.Fprint(w, RenderStringTable(headers, data))
}

// RenderTableTruncateCol renders a table to stdout, truncating the column
// colNum if table does not fit the screen width
func RenderTableTruncateCol(colNum int, headers []string, data [][]string) {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		width = 0
	}
	FitTable(os.Stdout, width, colNum, headers, data)
}

// FitTable renders a table to w, shortening values of column colNum
// (with an ellipsis) so lines fit in width. A width of 0 means no limit.
// Values are never cut under 5 characters.
func FitTable(w io.Writer, width int, colNum int, headers []string, data [][]string) {
	if len(data) == 0 || width == 0 {
		RenderTable(w, headers, data)
		return
	}

	lines := strings.Split(RenderStringTable(headers, data), "\n")
	overflow := utf8.RuneCountInString(lines[0]) - width
	if overflow <= 0 {
		RenderTable(w, headers, data)
		return
	}

	longest := 0
	for _, row := range data {
		if l := utf8.RuneCountInString(row[colNum]); l > longest {
			longest = l
		}
	}

	maxLen := longest - overflow
	if maxLen < 5 {
		maxLen = longest
	}

	fitted := make([][]string, len(data))
	for i, row := range data {
		fitted[i] = append([]string(nil), row...)
		if value := []rune(row[colNum]); len(value) > maxLen {
			fitted[i][colNum] = string(value[:maxLen-1]) + "…"
		}
	}
	RenderTable(w, headers, fitted)
}
