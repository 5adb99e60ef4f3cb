package rag

// AnswerRequest represents a question asked about a case.
type AnswerRequest struct {
	// CaseID scopes retrieval to the embeddings of this case's files.
	CaseID int64 `json:"case_id"`
	// SessionID selects the conversation whose recent turns are folded into
	// the prompt. Zero asks a one-off question without history.
	SessionID int64 `json:"session_id,omitempty"`
	// Question is the user's question to answer.
	Question string `json:"question"`
}

// Source identifies a chunk that was given to the model as context.
type Source struct {
	// EmbeddingID is the id of the embedding record.
	EmbeddingID string `json:"embedding_id"`
	// FileID is the file the chunk was cut from.
	FileID int64 `json:"file_id"`
	// ChunkIndex is the chunk position within the file.
	ChunkIndex int `json:"chunk_index"`
	// Score is the cosine similarity to the question.
	Score float64 `json:"score"`
}

// AnswerResponse represents the result of a question.
type AnswerResponse struct {
	// Answer is the generated answer from the LLM.
	Answer string `json:"answer"`
	// SourceChunkIDs are the embedding ids used as context, best match first.
	SourceChunkIDs []string `json:"source_chunks"`
	// Sources carries the same chunks with provenance details.
	Sources []Source `json:"sources"`
}
