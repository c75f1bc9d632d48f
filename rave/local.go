package rave

import (
	"sort"

	"github.com/hupe1980/gsfs/featureset"
)

// PathStat is one LocalTable entry.
type PathStat struct {
	Features featureset.Set
	Visits   int
	ScoreSum float64
}

// Mean returns ScoreSum/Visits.
func (p PathStat) Mean() float64 {
	if p.Visits == 0 {
		return 0
	}
	return p.ScoreSum / float64(p.Visits)
}

// LocalTable is the l-RAVE table.
type LocalTable struct {
	entries []PathStat
	byKey   map[string]int
}

// NewLocalTable returns an empty table.
func NewLocalTable() *LocalTable {
	return &LocalTable{byKey: make(map[string]int)}
}

// Add records score for exactly the given subset.
func (t *LocalTable) Add(s featureset.Set, score float64) error {
	if s.IsNil() {
		return ErrInvalidQuery
	}
	key := s.Key()
	if i, ok := t.byKey[key]; ok {
		t.entries[i].Visits++
		t.entries[i].ScoreSum += score
		return nil
	}
	t.byKey[key] = len(t.entries)
	t.entries = append(t.entries, PathStat{Features: s, Visits: 1, ScoreSum: score})
	return nil
}

// Score returns the mean score over all recorded subsets that contain q,
// or 0 when there are none.
func (t *LocalTable) Score(q featureset.Set) (float64, error) {
	visits, sum, err := t.aggregate(q)
	if err != nil || visits == 0 {
		return 0, err
	}
	return sum / float64(visits), nil
}

// Visits returns the number of recorded scores over all subsets that
// contain q.
func (t *LocalTable) Visits(q featureset.Set) (int, error) {
	visits, _, err := t.aggregate(q)
	return visits, err
}

// Len returns the number of distinct subsets recorded.
func (t *LocalTable) Len() int { return len(t.entries) }

// Entries returns a snapshot of all entries ordered by subset size, then by
// canonical key.
func (t *LocalTable) Entries() []PathStat {
	out := make([]PathStat, len(t.entries))
	copy(out, t.entries)
	sort.SliceStable(out, func(i, j int) bool {
		if li, lj := out[i].Features.Len(), out[j].Features.Len(); li != lj {
			return li < lj
		}
		return out[i].Features.Key() < out[j].Features.Key()
	})
	return out
}

func (t *LocalTable) aggregate(q featureset.Set) (int, float64, error) {
	if q.IsNil() {
		return 0, 0, ErrInvalidQuery
	}
	var (
		visits int
		sum    float64
	)
	for _, e := range t.entries {
		if q.IsSubsetOf(e.Features) {
			visits += e.Visits
			sum += e.ScoreSum
		}
	}
	return visits, sum, nil
}
