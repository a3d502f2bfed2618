package seeder

import (
	"io"
	"os"

	"github.com/Lumos-Labs-HQ/shopseed/internal/batch"
	"github.com/Lumos-Labs-HQ/shopseed/internal/schema"
	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// Reporter observes a run. Calls come from the loader goroutine only.
type Reporter interface {
	PhaseStarted(table string, target int)
	BatchCommitted(table string, w batch.Window, items int64)
	PhaseFinished(table string, rows int64)
}

type NopReporter struct{}

func (NopReporter) PhaseStarted(string, int)                   {}
func (NopReporter) BatchCommitted(string, batch.Window, int64) {}
func (NopReporter) PhaseFinished(string, int64)                {}

// ConsoleReporter prints one line per committed batch.
type ConsoleReporter struct{}

func (ConsoleReporter) PhaseStarted(table string, target int) {
	if target <= 0 {
		color.Yellow("⏭️  Skipping %s (target is 0)", table)
		return
	}
	color.Cyan("📝 Seeding %s (%d records)...", table, target)
}

func (ConsoleReporter) BatchCommitted(table string, w batch.Window, items int64) {
	if table == schema.Orders {
		color.White("  Inserted orders %s (and corresponding items)", w)
		return
	}
	color.White("  Inserted %s %s", table, w)
}

func (ConsoleReporter) PhaseFinished(table string, rows int64) {
	color.Green("✅ %s seeded (%d rows)", table, rows)
}

// ProgressReporter draws a bar per phase instead of a line per batch.
type ProgressReporter struct {
	out io.Writer
	bar *progressbar.ProgressBar
}

func NewProgressReporter(out io.Writer) *ProgressReporter {
	if out == nil {
		out = os.Stderr
	}
	return &ProgressReporter{out: out}
}

func (p *ProgressReporter) PhaseStarted(table string, target int) {
	if target <= 0 {
		p.bar = nil
		return
	}
	p.bar = progressbar.NewOptions(target,
		progressbar.OptionSetWriter(p.out),
		progressbar.OptionSetDescription(table),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

func (p *ProgressReporter) BatchCommitted(_ string, w batch.Window, _ int64) {
	if p.bar != nil {
		p.bar.Add(w.Size)
	}
}

func (p *ProgressReporter) PhaseFinished(table string, rows int64) {
	if p.bar != nil {
		p.bar.Finish()
		p.bar = nil
		io.WriteString(p.out, "\n")
	}
	color.Green("✅ %s seeded (%d rows)", table, rows)
}
