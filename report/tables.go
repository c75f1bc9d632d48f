package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hupe1980/gsfs/blobstore"
)

// featureSep joins feature names inside a single CSV cell.
const featureSep = ";"

// WriteSummary writes the plain-text run summary.
func WriteSummary(w io.Writer, r *Report) error {
	res, cfg := r.Result, r.Config

	var b strings.Builder
	fmt.Fprintf(&b, "Run: %s\n", r.RunID)
	fmt.Fprintf(&b, "Best score: %s\n", formatFloat(res.BestScore))
	fmt.Fprintf(&b, "Best features: %s\n", strings.Join(res.BestFeatures, ", "))
	fmt.Fprintf(&b, "Longest branch: %d\n", res.LongestPath)
	if cfg.Metric != "" {
		fmt.Fprintf(&b, "Metric name: %s\n", cfg.Metric)
	}
	fmt.Fprintf(&b, "Scoring function: %s\n", cfg.Scoring)
	fmt.Fprintf(&b, "Multiarm strategy: %s\n", cfg.Expansion)
	fmt.Fprintf(&b, "End strategy: %s\n", cfg.Termination)
	fmt.Fprintf(&b, "Calculations done condition: %s\n", cfg.BudgetKind)
	fmt.Fprintf(&b, "Calculations budget: %s\n", cfg.Budget())
	fmt.Fprintf(&b, "Episodes: %d\n", res.Iterations)
	fmt.Fprintf(&b, "Nodes: %d\n", res.Nodes)
	fmt.Fprintf(&b, "Edges: %d\n", res.Edges)
	b.WriteString("Parameters:\n")
	p := cfg.Params
	fmt.Fprintf(&b, "c_e: %s\n", formatFloat(p.CE))
	fmt.Fprintf(&b, "c: %s\n", formatFloat(p.C))
	fmt.Fprintf(&b, "c_l: %s\n", formatFloat(p.CL))
	fmt.Fprintf(&b, "b_T: %s\n", formatFloat(p.BT))
	fmt.Fprintf(&b, "new_node_preference: %s\n", formatFloat(p.NewNodePreference))

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteHistoryCSV writes one row per improvement of the best score.
func WriteHistoryCSV(w io.Writer, r *Report) error {
	rows := [][]string{{"iteration", "elapsed_seconds", "score", "features"}}
	for _, h := range r.Result.History {
		rows = append(rows, []string{
			strconv.Itoa(h.Iteration),
			formatFloat(h.Elapsed.Seconds()),
			formatFloat(h.Score),
			strings.Join(h.Features, featureSep),
		})
	}
	return writeCSV(w, rows)
}

// WriteGlobalRaveCSV writes the g-RAVE table ordered by descending mean.
func WriteGlobalRaveCSV(w io.Writer, r *Report) error {
	rows := [][]string{{"feature", "visits", "score_sum", "mean"}}
	for _, fs := range r.Result.RankedImportances() {
		rows = append(rows, []string{
			fs.Feature,
			strconv.Itoa(fs.Visits),
			formatFloat(fs.ScoreSum),
			formatFloat(fs.Mean),
		})
	}
	return writeCSV(w, rows)
}

// WriteLocalRaveCSV writes the l-RAVE table.
func WriteLocalRaveCSV(w io.Writer, r *Report) error {
	rows := [][]string{{"features", "visits", "score_sum", "mean"}}
	for _, ps := range r.Result.LocalRave {
		rows = append(rows, []string{
			strings.Join(ps.Features, featureSep),
			strconv.Itoa(ps.Visits),
			formatFloat(ps.ScoreSum),
			formatFloat(ps.Mean),
		})
	}
	return writeCSV(w, rows)
}

// SaveTables writes prefix.txt, prefix.csv, prefix_g_rave.csv and
// prefix_l_rave.csv to store.
func SaveTables(ctx context.Context, store blobstore.Store, prefix string, r *Report) error {
	tables := []struct {
		suffix string
		write  func(io.Writer, *Report) error
	}{
		{".txt", WriteSummary},
		{".csv", WriteHistoryCSV},
		{"_g_rave.csv", WriteGlobalRaveCSV},
		{"_l_rave.csv", WriteLocalRaveCSV},
	}

	for _, t := range tables {
		var buf bytes.Buffer
		if err := t.write(&buf, r); err != nil {
			return err
		}
		if err := store.Put(ctx, prefix+t.suffix, buf.Bytes()); err != nil {
			return fmt.Errorf("report: save %s: %w", prefix+t.suffix, err)
		}
	}
	return nil
}

func writeCSV(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("report: write csv: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
