package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/noticer/pkg/gather"
	"github.com/matzehuels/noticer/pkg/library"
)

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleHeader      = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Padding(0, 1)
	styleCell        = lipgloss.NewStyle().Padding(0, 1)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

// printError prints an error message.
func printError(format string, args ...any) {
	fmt.Println(styleIconError.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(fmt.Sprintf(format, args...)))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(14)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// printStats prints run statistics on a single line.
func printStats(s gather.Stats) {
	parts := []string{
		fmt.Sprintf("%s resolved", StyleNumber.Render(fmt.Sprint(s.Resolved))),
		fmt.Sprintf("%d skipped", s.Skipped),
		fmt.Sprintf("%d failed", s.Failed),
	}
	if s.Overrides > 0 {
		parts = append(parts, fmt.Sprintf("%d overrides", s.Overrides))
	}
	fmt.Println("  " + strings.Join(parts, StyleDim.Render(" · ")))
}

// licenseTable renders one row per license with the libraries using it.
func licenseTable(w io.Writer, res *library.Result) {
	users := make(map[string]int)
	for _, lib := range res.Libraries {
		for _, h := range lib.Licenses {
			users[h]++
		}
	}

	hashes := make([]string, 0, len(res.Licenses))
	for h := range res.Licenses {
		hashes = append(hashes, h)
	}
	sort.Slice(hashes, func(i, j int) bool {
		if users[hashes[i]] != users[hashes[j]] {
			return users[hashes[i]] > users[hashes[j]]
		}
		return res.Licenses[hashes[i]].Name < res.Licenses[hashes[j]].Name
	})

	rows := make([][]string, 0, len(hashes))
	for _, h := range hashes {
		l := res.Licenses[h]
		text := ""
		if l.Content != "" {
			text = iconSuccess
		}
		rows = append(rows, []string{l.Name, l.SPDXID, fmt.Sprint(users[h]), text, h[:12]})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("License", "SPDX", "Libraries", "Text", "Hash").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if col == 4 {
				return styleCell.Foreground(colorDim)
			}
			return styleCell
		})
	fmt.Fprintln(w, t.Render())
}
