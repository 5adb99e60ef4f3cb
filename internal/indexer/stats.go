package indexer

import (
	"math"
	"sort"
)

// ChunkStats describes the word counts of the chunks produced for a file.
type ChunkStats struct {
	// Min is the smallest word count.
	Min int `json:"min"`
	// Max is the largest word count.
	Max int `json:"max"`
	// Mean is the mean word count, rounded to two decimals.
	Mean float64 `json:"mean"`
	// P95 is the 95th percentile word count.
	P95 int `json:"p95"`
}

func chunkStats(chunks []Chunk) ChunkStats {
	counts := make([]int, len(chunks))
	for i, c := range chunks {
		counts[i] = c.Words
	}
	return computeStats(counts)
}

// computeStats computes min, max, mean and p95 from counts.
func computeStats(counts []int) ChunkStats {
	if len(counts) == 0 {
		return ChunkStats{}
	}

	sorted := make([]int, len(counts))
	copy(sorted, counts)
	sort.Ints(sorted)

	sum := 0
	for _, n := range sorted {
		sum += n
	}
	mean := float64(sum) / float64(len(sorted))

	p95Index := int(math.Ceil(float64(len(sorted))*0.95)) - 1
	p95Index = max(0, min(p95Index, len(sorted)-1))

	return ChunkStats{
		Min:  sorted[0],
		Max:  sorted[len(sorted)-1],
		Mean: math.Round(mean*100) / 100,
		P95:  sorted[p95Index],
	}
}
