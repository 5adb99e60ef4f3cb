package storage

import "time"

// Message roles stored in chat_messages.role.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Case represents a legal case.
type Case struct {
	ID          int64
	CaseNo      string // Format: "CASE-YYYYMMDD-<id>"
	Name        string
	Description string
	CreatedAt   time.Time
}

// CaseFile represents a document uploaded for a case.
type CaseFile struct {
	ID          int64
	CaseID      int64
	Filename    string
	ContentType string
	Processed   bool // True once embeddings exist for the file
	CreatedAt   time.Time
}

// EmbeddingRecord is a chunk of document text with its embedding vector.
// Records are immutable and deleted together with their file.
type EmbeddingRecord struct {
	ID         string // UUID (same as Qdrant point ID)
	FileID     int64
	CaseID     int64 // Owning case, resolved through the file; not stored on the row
	ChunkIndex int
	ChunkText  string
	Vector     []float32
	Metadata   string // Optional free-form JSON
}

// Session is a chat session scoped to a case.
type Session struct {
	ID        int64
	CaseID    int64
	Closed    bool
	CreatedAt time.Time
}

// Message is one immutable conversation turn.
type Message struct {
	ID        int64
	SessionID int64
	Role      string
	Content   string
	CreatedAt time.Time
}

// CaseMetadata is the structured record extracted for a case; exactly one per case.
// Nil pointers mean "unknown".
type CaseMetadata struct {
	ID                  int64
	CaseID              int64
	Parties             Parties
	CourtName           *string
	FilingDate          *time.Time
	Judge               *string
	Attorney            *string
	NextCourtDate       *time.Time
	StrongEvidence      *string
	ApproachingDeadline *bool
	CaseDescription     *string
	CreatedAt           time.Time
	UpdatedAt           *time.Time
}

// DateLayout is the calendar date format used for filing and court dates.
const DateLayout = "2006-01-02"
