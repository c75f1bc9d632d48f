package oracle

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/hupe1980/gsfs/policy"
)

// ErrUndefinedMetric is returned when a metric cannot be computed, e.g.
// ROC AUC on a fold with a single class.
var ErrUndefinedMetric = errors.New("oracle: metric undefined")

// Metric measures predicted class-1 probabilities against 0/1 labels.
// Higher is better for every metric.
type Metric uint8

const (
	// ROCAUC is the area under the ROC curve.
	ROCAUC Metric = iota
	// Accuracy is the share of correct predictions at threshold 0.5.
	Accuracy
	// F1 is the harmonic mean of precision and recall at threshold 0.5.
	F1
)

// ParseMetric resolves "roc_auc" (default for ""), "acc" or "f1".
func ParseMetric(name string) (Metric, error) {
	switch strings.ToLower(name) {
	case "", "roc_auc", "auc":
		return ROCAUC, nil
	case "acc", "accuracy":
		return Accuracy, nil
	case "f1":
		return F1, nil
	}
	return 0, &policy.ConfigError{Field: "metric", Value: name, Reason: "expected roc_auc, acc or f1"}
}

func (m Metric) String() string {
	switch m {
	case ROCAUC:
		return "roc_auc"
	case Accuracy:
		return "acc"
	case F1:
		return "f1"
	default:
		return fmt.Sprintf("Metric(%d)", uint8(m))
	}
}

// Score computes the metric.
func (m Metric) Score(labels, proba []float64) (float64, error) {
	if len(labels) != len(proba) {
		return 0, fmt.Errorf("%w: %d labels, %d predictions", ErrUndefinedMetric, len(labels), len(proba))
	}
	if len(labels) == 0 {
		return 0, fmt.Errorf("%w: no samples", ErrUndefinedMetric)
	}

	switch m {
	case ROCAUC:
		return rocAUC(labels, proba)
	case Accuracy:
		correct := 0
		for i, y := range labels {
			if predict(proba[i]) == y {
				correct++
			}
		}
		return float64(correct) / float64(len(labels)), nil
	case F1:
		var tp, fp, fn float64
		for i, y := range labels {
			switch p := predict(proba[i]); {
			case p == 1 && y == 1:
				tp++
			case p == 1:
				fp++
			case y == 1:
				fn++
			}
		}
		if tp+fp+fn == 0 {
			return 0, nil
		}
		return 2 * tp / (2*tp + fp + fn), nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUndefinedMetric, m)
	}
}

func predict(p float64) float64 {
	if p >= 0.5 {
		return 1
	}
	return 0
}

// rocAUC uses the rank-sum formulation; tied scores share their mean rank.
func rocAUC(labels, proba []float64) (float64, error) {
	idx := make([]int, len(proba))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return proba[idx[a]] < proba[idx[b]] })

	var pos, neg, rankSum float64
	for i := 0; i < len(idx); {
		j := i
		for j < len(idx) && proba[idx[j]] == proba[idx[i]] {
			j++
		}
		rank := float64(i+j+1) / 2 // mean of 1-based ranks i+1..j
		for k := i; k < j; k++ {
			if labels[idx[k]] == 1 {
				pos++
				rankSum += rank
			} else {
				neg++
			}
		}
		i = j
	}

	if pos == 0 || neg == 0 {
		return 0, fmt.Errorf("%w: roc_auc needs both classes", ErrUndefinedMetric)
	}
	return (rankSum - pos*(pos+1)/2) / (pos * neg), nil
}
