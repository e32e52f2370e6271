package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/tranvk/selfheal/internal/core/domain"
	"github.com/tranvk/selfheal/internal/stats"
)

// Render formats a statistics snapshot as text tables. The aggregator never
// formats output itself; this is the external renderer over Snapshot().
func Render(w io.Writer, s stats.Statistics) error {
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintln(w, "RESILIENCE TEST STATISTICS")
	fmt.Fprintln(w, strings.Repeat("=", 60))

	fmt.Fprintf(w, "Start: %s\n", s.StartTime.Format(time.RFC3339))
	if s.EndTime != nil {
		fmt.Fprintf(w, "End:   %s\n", s.EndTime.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration: %.2fs\n", s.EndTime.Sub(s.StartTime).Seconds())
	}
	fmt.Fprintln(w)

	if err := renderBuckets(w, s); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nCorrections applied: %d\n", s.CorrectionsApplied)
	fmt.Fprintf(w, "Corrections failed:  %d\n", s.CorrectionsFailed)

	renderOptimizations(w, s.Optimizations)
	return nil
}

func renderBuckets(w io.Writer, s stats.Statistics) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "MODULE\tATTEMPTS\tSUCCESSES\tFAILURES\tRATE\tVERDICT")

	modules := make([]domain.Module, 0, len(s.Modules))
	for m := range s.Modules {
		modules = append(modules, m)
	}
	sort.Slice(modules, func(i, j int) bool { return modules[i] < modules[j] })

	for _, m := range modules {
		renderBucketRow(tw, string(m), s.Modules[m])
	}
	renderBucketRow(tw, string(domain.ModuleGeneral), s.General)

	return tw.Flush()
}

func renderBucketRow(tw *tabwriter.Writer, name string, b *stats.Bucket) {
	rate := 0.0
	if b.Attempts > 0 {
		rate = float64(b.Successes) / float64(b.Attempts) * 100
	}

	verdict := color.New(color.FgGreen).Sprint("PASS")
	if b.Failures > 0 {
		verdict = color.New(color.FgYellow).Sprint("DEGRADED")
	}
	if b.Successes == 0 && b.Failures > 0 {
		verdict = color.New(color.FgRed).Sprint("FAIL")
	}

	fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%.2f%%\t%s\n",
		name, b.Attempts, b.Successes, b.Failures, rate, verdict)
}

func renderOptimizations(w io.Writer, opts []stats.Optimization) {
	if len(opts) == 0 {
		fmt.Fprintln(w, "\nNo optimizations applied.")
		return
	}

	fmt.Fprintln(w, "\nOptimizations applied:")
	for _, opt := range opts {
		marker := color.New(color.FgGreen).Sprint("✓")
		if !opt.Succeeded {
			marker = color.New(color.FgRed).Sprint("✗")
		}
		fmt.Fprintf(w, "  %s [%s] %s", marker, opt.Timestamp.Format(time.RFC3339), opt.Module)
		if opt.Error != "" {
			fmt.Fprintf(w, " (%s)", opt.Error)
		}
		fmt.Fprintf(w, ": %s\n", opt.Action)
	}
}
