package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"celeste-saves/internal/save"

	"github.com/mattn/go-isatty"
)

const banner = "****************************************"

const (
	colorRed    = "\x1b[0;31m"
	colorYellow = "\x1b[0;33m"
	colorGreen  = "\x1b[0;32m"
	colorReset  = "\x1b[0m"
)

// Printer renders save summaries as human-readable text.
type Printer struct {
	Out   io.Writer
	Color bool
}

// NewPrinter returns a Printer for out. Color is enabled only when out is a
// terminal and noColor is false.
func NewPrinter(out io.Writer, noColor bool) *Printer {
	color := false
	if f, ok := out.(*os.File); ok && !noColor {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Printer{Out: out, Color: color}
}

// Print writes the report for one save. number is the 1-based position shown
// to the user.
func (p *Printer) Print(number int, s *save.Summary) error {
	var b strings.Builder

	fmt.Fprintln(&b, banner)
	fmt.Fprintf(&b, "Save Number: %d\n", number)
	fmt.Fprintf(&b, "Game Version: %s\n", s.Version)
	fmt.Fprintf(&b, "Player Name: %s\n\n", s.PlayerName)

	if s.CheatMode {
		p.warn(&b, colorRed, "Cheat mode is enabled.")
	}
	if s.AssistMode {
		p.warn(&b, colorYellow, "Assist mode is enabled.")
	}
	if s.VariantMode {
		p.warn(&b, colorGreen, "Variant mode is enabled.")
	}

	fmt.Fprintf(&b, "Strawberries: %s\n", StrawberryLine(s))
	fmt.Fprintf(&b, "Deaths: %d\n\n", s.Deaths)

	fmt.Fprintf(&b, "Total Jumps: %d\n", s.Jumps)
	fmt.Fprintf(&b, "Total Dashes: %d\n", s.Dashes)
	fmt.Fprintf(&b, "Total Wall-jumps: %d\n\n", s.WallJumps)

	for _, entry := range s.Progress.Areas() {
		fmt.Fprintln(&b, ChapterLine(entry))
	}

	fmt.Fprintln(&b, banner)

	_, err := io.WriteString(p.Out, b.String())
	return err
}

func (p *Printer) warn(b *strings.Builder, color, msg string) {
	if p.Color {
		fmt.Fprintf(b, "%s%s%s\n", color, msg, colorReset)
		return
	}
	fmt.Fprintln(b, msg)
}

// StrawberryLine formats strawberries as "regular+golden (total)".
func StrawberryLine(s *save.Summary) string {
	return fmt.Sprintf("%d+%d (%d)", s.RegularStrawberries(), s.GoldenStrawberries, s.Strawberries)
}

// ChapterLine formats one area: completion and deaths per side, then the
// A-side strawberry count.
func ChapterLine(entry save.AreaEntry) string {
	sides := make([]string, 0, save.SideCount)
	for _, side := range save.AllSides() {
		progress := entry.Progress.Side(side)
		sides = append(sides, fmt.Sprintf("%s: %s, %d deaths", side, tick(progress.Completed), progress.Deaths))
	}

	return fmt.Sprintf("Chapter %d: %s, Strawberries: %d",
		entry.Area.Chapter(),
		strings.Join(sides, ", "),
		entry.Progress.Side(save.SideA).Strawberries,
	)
}

func tick(ok bool) string {
	if ok {
		return "✅"
	}
	return "❌"
}

// WaitForEnter blocks until a line is read from in.
func WaitForEnter(in io.Reader, out io.Writer) error {
	if out != nil {
		fmt.Fprint(out, "Press enter to continue...")
	}
	_, err := bufio.NewReader(in).ReadString('\n')
	if err == io.EOF {
		return nil
	}
	return err
}
