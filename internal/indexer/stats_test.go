package indexer

import "testing"

func TestComputeStats(t *testing.T) {
	tests := []struct {
		name   string
		counts []int
		want   ChunkStats
	}{
		{name: "empty", counts: nil, want: ChunkStats{}},
		{name: "single", counts: []int{42}, want: ChunkStats{Min: 42, Max: 42, Mean: 42, P95: 42}},
		{name: "unsorted", counts: []int{800, 200, 800}, want: ChunkStats{Min: 200, Max: 800, Mean: 600, P95: 800}},
		{name: "rounded mean", counts: []int{1, 2, 2}, want: ChunkStats{Min: 1, Max: 2, Mean: 1.67, P95: 2}},
		{
			name:   "p95 of twenty",
			counts: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 100},
			want:   ChunkStats{Min: 1, Max: 100, Mean: 14.5, P95: 19},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := computeStats(tt.counts); got != tt.want {
				t.Errorf("computeStats() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestComputeStats_DoesNotMutateInput(t *testing.T) {
	counts := []int{3, 1, 2}
	computeStats(counts)
	if counts[0] != 3 || counts[1] != 1 || counts[2] != 2 {
		t.Errorf("input modified: %v", counts)
	}
}

func TestChunkStats(t *testing.T) {
	chunks := []Chunk{{Words: 800}, {Words: 800}, {Words: 200}}
	got := chunkStats(chunks)
	if got.Min != 200 || got.Max != 800 || got.P95 != 800 {
		t.Errorf("chunkStats() = %+v", got)
	}
}
