package engine

import (
	"sort"
	"time"
)

// HistoryRecord is appended whenever an episode improves the best score.
type HistoryRecord struct {
	Score     float64       `json:"score"`
	Features  []string      `json:"features"`
	Elapsed   time.Duration `json:"elapsed"`
	Iteration int           `json:"iteration"`
}

// PathScore is one exported l-RAVE entry.
type PathScore struct {
	Features []string `json:"features"`
	Visits   int      `json:"visits"`
	ScoreSum float64  `json:"score_sum"`
	Mean     float64  `json:"mean"`
}

// FeatureScore is one exported g-RAVE entry.
type FeatureScore struct {
	Feature  string  `json:"feature"`
	Visits   int     `json:"visits"`
	ScoreSum float64 `json:"score_sum"`
	Mean     float64 `json:"mean"`
}

// Result is a snapshot of a search.
type Result struct {
	// Found is false until at least one episode completed.
	Found        bool     `json:"found"`
	BestFeatures []string `json:"best_features"`
	BestScore    float64  `json:"best_score"`

	History []HistoryRecord `json:"history"`

	// Importances maps every feature observed in g-RAVE to its mean score.
	Importances map[string]float64 `json:"importances"`

	LocalRave  []PathScore    `json:"l_rave"`
	GlobalRave []FeatureScore `json:"g_rave"`

	// Iterations counts completed episodes over all runs.
	Iterations  int `json:"iterations"`
	LongestPath int `json:"longest_path"`
	Nodes       int `json:"nodes"`
	Edges       int `json:"edges"`
}

// RankedImportances returns the importances ordered by descending score,
// ties broken by name.
func (r *Result) RankedImportances() []FeatureScore {
	out := make([]FeatureScore, len(r.GlobalRave))
	copy(out, r.GlobalRave)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Mean != out[j].Mean {
			return out[i].Mean > out[j].Mean
		}
		return out[i].Feature < out[j].Feature
	})
	return out
}
