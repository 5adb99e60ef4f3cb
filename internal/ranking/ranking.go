// Package ranking scores stored embedding vectors against a query vector
// and selects the most similar candidates.
package ranking

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

const (
	// QAResultLimit is the number of chunks used as context for question answering.
	QAResultLimit = 5
	// ExtractionResultLimit is the number of chunks used for metadata extraction.
	ExtractionResultLimit = 8

	// normEpsilon replaces a zero vector norm so degenerate vectors score ~0.
	normEpsilon = 1e-10
)

var (
	// ErrNoCandidates is returned when there is nothing to rank.
	ErrNoCandidates = errors.New("no candidates to rank")
	// ErrDimensionMismatch is returned when a candidate's length differs from the query's.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
)

// Ranked is a candidate position with its similarity score.
type Ranked struct {
	Index int
	Score float64
}

// cosine returns the cosine similarity of a and b clamped to [-1, 1].
// Callers must pass vectors of equal length.
func cosine(a, b []float32) float64 {
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return math.Max(-1, math.Min(1, dot/(norm(a)*norm(b))))
}

func norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	n := math.Sqrt(sum)
	if n < normEpsilon {
		return normEpsilon
	}
	return n
}

// Similarities scores every candidate against query, in candidate order.
func Similarities(query []float32, candidates [][]float32) ([]float64, error) {
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	scores := make([]float64, len(candidates))
	for i, c := range candidates {
		if len(c) != len(query) {
			return nil, fmt.Errorf("%w: candidate %d has %d dimensions, query has %d",
				ErrDimensionMismatch, i, len(c), len(query))
		}
		scores[i] = cosine(query, c)
	}
	return scores, nil
}

// TopK returns up to k candidate indices ordered by descending score.
// Equal scores keep their original order.
func TopK(scores []float64, k int) ([]Ranked, error) {
	if len(scores) == 0 {
		return nil, ErrNoCandidates
	}

	ranked := make([]Ranked, len(scores))
	for i, s := range scores {
		ranked[i] = Ranked{Index: i, Score: s}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if k < 0 {
		k = 0
	}
	if k < len(ranked) {
		ranked = ranked[:k]
	}
	return ranked, nil
}

// Rank scores candidates against query and returns the top k.
func Rank(query []float32, candidates [][]float32, k int) ([]Ranked, error) {
	scores, err := Similarities(query, candidates)
	if err != nil {
		return nil, err
	}
	return TopK(scores, k)
}
