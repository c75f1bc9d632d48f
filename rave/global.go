package rave

import (
	"sort"

	"github.com/hupe1980/gsfs/featureset"
)

// FeatureStat is one GlobalTable entry.
type FeatureStat struct {
	Feature  featureset.ID
	Visits   int
	ScoreSum float64
}

// Mean returns ScoreSum/Visits.
func (f FeatureStat) Mean() float64 {
	if f.Visits == 0 {
		return 0
	}
	return f.ScoreSum / float64(f.Visits)
}

// GlobalTable is the g-RAVE table.
type GlobalTable struct {
	stats map[featureset.ID]*FeatureStat
}

// NewGlobalTable returns an empty table.
func NewGlobalTable() *GlobalTable {
	return &GlobalTable{stats: make(map[featureset.ID]*FeatureStat)}
}

// Update adds score once to every feature of s.
func (t *GlobalTable) Update(s featureset.Set, score float64) error {
	if s.IsNil() {
		return ErrInvalidQuery
	}
	for _, id := range s.IDs() {
		t.Observe(id, score)
	}
	return nil
}

// Observe adds a single observation for one feature.
func (t *GlobalTable) Observe(id featureset.ID, score float64) {
	st, ok := t.stats[id]
	if !ok {
		st = &FeatureStat{Feature: id}
		t.stats[id] = st
	}
	st.Visits++
	st.ScoreSum += score
}

// Score returns the mean score of the feature, or 0 if it was never used.
func (t *GlobalTable) Score(id featureset.ID) float64 {
	if st, ok := t.stats[id]; ok {
		return st.Mean()
	}
	return 0
}

// Visits returns how many observations the feature has, or 0.
func (t *GlobalTable) Visits(id featureset.ID) int {
	if st, ok := t.stats[id]; ok {
		return st.Visits
	}
	return 0
}

// Len returns the number of features with at least one observation.
func (t *GlobalTable) Len() int { return len(t.stats) }

// Entries returns a snapshot ordered by feature ID.
func (t *GlobalTable) Entries() []FeatureStat {
	out := make([]FeatureStat, 0, len(t.stats))
	for _, st := range t.stats {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Feature < out[j].Feature })
	return out
}
