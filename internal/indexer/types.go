package indexer

// Chunk is a window of words cut from a document's text.
type Chunk struct {
	Index int    // Chunk index within the file (starts at 0)
	Text  string // Words joined by single spaces
	Words int    // Number of words in Text
}

// Result summarises one IndexFile call.
type Result struct {
	FileID  int64      `json:"file_id"`
	CaseID  int64      `json:"case_id"`
	Chunks  int        `json:"chunks"`
	Skipped bool       `json:"skipped"`
	Stats   ChunkStats `json:"chunk_stats"`
}
