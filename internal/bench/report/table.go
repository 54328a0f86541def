package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
)

func WriteTable(r *Report, w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "\n=== Knowledge Base Benchmark ===\n")
	fmt.Fprintf(tw, "%s  %s/%s  %d CPU\n\n",
		r.Meta.Timestamp.Format("2006-01-02 15:04:05"),
		r.Meta.Environment.OS, r.Meta.Environment.Arch, r.Meta.Environment.NumCPU)

	writePerformanceTable(tw, r)
	writeQualityTable(tw, r)
	writeCostTable(tw, r)
	writeRankingTable(tw, r)

	tw.Flush()
}

func writeHeader(tw *tabwriter.Writer, header ...string) {
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	fmt.Fprintln(tw, strings.Join(sep, "\t"))
}

func writePerformanceTable(tw *tabwriter.Writer, r *Report) {
	fmt.Fprintf(tw, "Latency & Throughput\n\n")
	writeHeader(tw, "Adapter", "Mode", "Scale", "Conc", "p50", "p95", "p99", "Mean", "QPS", "Requests", "Errors", "Status")

	for _, o := range r.Outcomes {
		res := o.Result
		if res == nil {
			continue
		}
		status := "OK"
		if o.Failed() {
			status = "SETUP FAILED"
		}
		row := []string{
			res.AdapterName,
			string(o.Capability),
			res.Scale,
			fmt.Sprintf("%d", res.Concurrency),
			fmtMs(res.LatencyPercentiles["p50"]),
			fmtMs(res.LatencyPercentiles["p95"]),
			fmtMs(res.LatencyPercentiles["p99"]),
			fmtMs(res.LatencyPercentiles["mean"]),
			fmt.Sprintf("%.1f", res.Throughput.QPS),
			fmt.Sprintf("%d", res.Throughput.TotalRequests),
			fmtErrors(res.Throughput.ErrorRate, res.Throughput.ErrorsByKind),
			status,
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	fmt.Fprintln(tw)
}

func writeQualityTable(tw *tabwriter.Writer, r *Report) {
	fmt.Fprintf(tw, "Retrieval Quality\n\n")
	writeHeader(tw, "Adapter", "Scale", "Conc", "P@1", "P@5", "P@10", "R@10", "MRR", "NDCG@10")

	for _, o := range r.Outcomes {
		res := o.Result
		if res == nil {
			continue
		}
		row := []string{res.AdapterName, res.Scale, fmt.Sprintf("%d", res.Concurrency)}
		if q := res.Quality; q != nil {
			row = append(row,
				fmt.Sprintf("%.4f", q.PrecisionAt1),
				fmt.Sprintf("%.4f", q.PrecisionAt5),
				fmt.Sprintf("%.4f", q.PrecisionAt10),
				fmt.Sprintf("%.4f", q.RecallAt10),
				fmt.Sprintf("%.4f", q.MRR),
				fmt.Sprintf("%.4f", q.NDCGAt10),
			)
		} else {
			row = append(row, "N/A", "N/A", "N/A", "N/A", "N/A", "N/A")
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	fmt.Fprintln(tw)
}

func writeCostTable(tw *tabwriter.Writer, r *Report) {
	fmt.Fprintf(tw, "Estimated Cost (USD)\n\n")
	writeHeader(tw, "Adapter", "Service", "Per Query", "Run", "Monthly", "Pricing")

	seen := make(map[string]bool)
	for _, o := range r.Outcomes {
		if o.Result == nil || seen[o.Result.AdapterName] {
			continue
		}
		seen[o.Result.AdapterName] = true

		pricing := "list"
		if o.Cost.FallbackPrices {
			pricing = "fallback"
		}
		row := []string{
			o.Result.AdapterName,
			o.Cost.Service,
			fmt.Sprintf("%.6f", o.Cost.CostPerQuery),
			fmt.Sprintf("%.4f", o.Cost.QueryCost+o.Cost.IndexCost),
			fmt.Sprintf("%.2f", o.Cost.MonthlyCost),
			pricing,
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	fmt.Fprintln(tw)
}

func writeRankingTable(tw *tabwriter.Writer, r *Report) {
	fmt.Fprintf(tw, "Rankings (best run per adapter)\n\n")
	writeHeader(tw, "#", "Adapter", "Best p95", "@Conc", "Best QPS", "Best MRR", "Best NDCG@10", "Runs")

	for i, rk := range r.Rankings {
		p95 := "-"
		if rk.Usable() {
			p95 = fmtMs(rk.BestP95Ms)
		}
		row := []string{
			fmt.Sprintf("%d", i+1),
			rk.Adapter,
			p95,
			fmt.Sprintf("%d", rk.BestP95Concurrency),
			fmt.Sprintf("%.1f", rk.BestQPS),
			fmtOptional(rk.BestMRR),
			fmtOptional(rk.BestNDCG10),
			fmt.Sprintf("%d/%d", rk.Runs-rk.FailedRuns, rk.Runs),
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	if best, ok := BestQuality(r.Rankings); ok {
		fmt.Fprintf(tw, "\nBest quality: %s (MRR %.4f)\n", best.Adapter, *best.BestMRR)
	}
	if len(r.Rankings) > 0 && r.Rankings[0].Usable() {
		fmt.Fprintf(tw, "Fastest: %s (p95 %s)\n", r.Rankings[0].Adapter, fmtMs(r.Rankings[0].BestP95Ms))
	}
	fmt.Fprintln(tw)
}

func fmtMs(ms float64) string {
	switch {
	case ms == 0:
		return "-"
	case ms < 1:
		return fmt.Sprintf("%.1fµs", ms*1000)
	case ms < 1000:
		return fmt.Sprintf("%.2fms", ms)
	default:
		return fmt.Sprintf("%.2fs", ms/1000)
	}
}

func fmtErrors(rate float64, byKind map[string]int) string {
	if rate == 0 {
		return "0%"
	}
	kinds := make([]string, 0, len(byKind))
	for k, n := range byKind {
		kinds = append(kinds, fmt.Sprintf("%s:%d", k, n))
	}
	sort.Strings(kinds)
	return fmt.Sprintf("%.1f%% (%s)", rate*100, strings.Join(kinds, ","))
}

func fmtOptional(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.4f", *v)
}
