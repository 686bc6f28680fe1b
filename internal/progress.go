package internal

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// UIManager draws progress and status messages, never results
type UIManager interface {
	NewProgressBar(total int, description string) ProgressBar
	NewSpinner(description string) ProgressBar

	Printf(format string, args ...any)
	Println(args ...any)
}

// ProgressBar is a determinate bar or an indeterminate spinner
type ProgressBar interface {
	Set(current int)
	Advance()
	Describe(description string)
	Finish()
}

// NewUIManager returns a UI drawing on stderr, or one that draws nothing when quiet
func NewUIManager(quiet bool) UIManager {
	if quiet {
		return silentUI{}
	}
	return &TerminalUI{out: os.Stderr}
}

// TerminalUI draws progressbar widgets on a terminal stream
type TerminalUI struct {
	out io.Writer
}

func (ui *TerminalUI) NewProgressBar(total int, description string) ProgressBar {
	return &visibleBar{progressbar.NewOptions(total,
		progressbar.OptionSetWriter(ui.out),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)}
}

func (ui *TerminalUI) NewSpinner(description string) ProgressBar {
	return &visibleBar{progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(ui.out),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)}
}

func (ui *TerminalUI) Printf(format string, args ...any) {
	fmt.Fprintf(ui.out, format, args...)
}

func (ui *TerminalUI) Println(args ...any) {
	fmt.Fprintln(ui.out, args...)
}

type visibleBar struct {
	bar *progressbar.ProgressBar
}

func (v *visibleBar) Set(current int)             { _ = v.bar.Set(current) }
func (v *visibleBar) Advance()                    { _ = v.bar.Add(1) }
func (v *visibleBar) Describe(description string) { v.bar.Describe(description) }
func (v *visibleBar) Finish()                     { _ = v.bar.Finish() }

type silentUI struct{}

func (silentUI) NewProgressBar(int, string) ProgressBar { return SilentProgressBar{} }
func (silentUI) NewSpinner(string) ProgressBar          { return SilentProgressBar{} }
func (silentUI) Printf(string, ...any)                  {}
func (silentUI) Println(...any)                         {}

// SilentProgressBar discards all updates
type SilentProgressBar struct{}

func (SilentProgressBar) Set(int)         {}
func (SilentProgressBar) Advance()        {}
func (SilentProgressBar) Describe(string) {}
func (SilentProgressBar) Finish()         {}
