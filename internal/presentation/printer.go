package presentation

import (
	"fmt"
	"io"

	"sbackup/internal/domain"
)

// Printer renders per-entry progress (verbose only) and the end-of-run
// summary on the success stream. Failures never pass through here; the
// walker reports those on the diagnostic stream.
type Printer struct {
	Writer  io.Writer
	Verbose bool
}

func (p Printer) PrintEntry(entry domain.Entry, outcome domain.Outcome) {
	if !p.Verbose || entry.Kind != domain.File {
		return
	}
	switch outcome.Kind {
	case domain.Copied:
		fmt.Fprintf(p.Writer, "Copy %s  %s\n", entry.RelativePath, entry.ModTime.Format("2006-01-02 15:04"))
	case domain.SkippedUpToDate:
		fmt.Fprintf(p.Writer, "Up to date %s\n", entry.RelativePath)
	case domain.SkippedUserDeclined:
		fmt.Fprintf(p.Writer, "Declined %s\n", entry.RelativePath)
	}
}

func (p Printer) PrintSummary(report domain.Report, dryRun bool) {
	verb := "Copied"
	if dryRun {
		verb = "Would copy"
	}
	fmt.Fprintf(p.Writer, "%s %d files across %d directories.\n", verb, report.Copied, report.Dirs)
	if report.UpToDate > 0 {
		fmt.Fprintf(p.Writer, "Skipped %d files already up to date.\n", report.UpToDate)
	}
	if report.Declined > 0 {
		fmt.Fprintf(p.Writer, "Skipped %d files on user request.\n", report.Declined)
	}
	if report.Failed > 0 {
		fmt.Fprintf(p.Writer, "Failed to copy %d entries, see diagnostics above.\n", report.Failed)
	}
	if report.Cycles > 0 {
		fmt.Fprintf(p.Writer, "Broke %d symbolic link cycles.\n", report.Cycles)
	}
	fmt.Fprintln(p.Writer, "ALL DONE")
}
