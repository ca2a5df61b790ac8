package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/ocflkit/ocflkit/validation"
)

var (
	errStyle = lipgloss.NewStyle().
			Width(7).
			Bold(true).
			Foreground(lipgloss.Color("161"))

	warnStyle = lipgloss.NewStyle().
			Width(7).
			Foreground(lipgloss.Color("214"))

	okStyle = lipgloss.NewStyle().
			Width(7).
			Foreground(lipgloss.Color("78"))

	codeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#999999"))
)

// printResult writes all findings in result to w, errors first.
func printResult(w io.Writer, result *validation.Result) {
	for _, err := range result.Fatal() {
		fmt.Fprintln(w, errStyle.Render("error")+findingText(err))
	}
	for _, err := range result.Warn() {
		fmt.Fprintln(w, warnStyle.Render("warning")+findingText(err))
	}
	for _, msg := range result.OK() {
		fmt.Fprintln(w, okStyle.Render("ok")+msg)
	}
}

func findingText(err error) string {
	var coded *validation.CodedErr
	if validation.AsCodedErr(err, &coded) {
		return err.Error() + " " + codeStyle.Render(coded.Code().URL)
	}
	return err.Error()
}
