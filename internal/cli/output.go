package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/ai8future/actual-model/internal/config"
	"github.com/ai8future/actual-model/internal/resolve"
)

var colorAttrs = map[string]color.Attribute{
	"red":     color.FgRed,
	"green":   color.FgGreen,
	"yellow":  color.FgYellow,
	"blue":    color.FgBlue,
	"magenta": color.FgMagenta,
	"cyan":    color.FgCyan,
	"white":   color.FgWhite,
}

// FormatModel renders a resolved model for the status line.
func FormatModel(res resolve.Result, out config.OutputConfig) string {
	text := res.Model
	if attr, ok := colorAttrs[strings.ToLower(out.Color)]; ok {
		c := color.New(attr)
		// Status lines read from a pipe, so TTY detection would always
		// strip the escape codes.
		c.EnableColor()
		text = c.Sprint(text)
	}
	if out.ShowSource {
		text = fmt.Sprintf("%s (%s)", text, res.Source)
	}
	return text
}

// PrintModel writes the model as a single line.
func PrintModel(w io.Writer, res resolve.Result, out config.OutputConfig) error {
	_, err := fmt.Fprintln(w, FormatModel(res, out))
	return err
}
