package domain

// HistoryRepository defines the interface for download history persistence
type HistoryRepository interface {
	// Create creates a new record
	Create(record *DownloadRecord) error

	// Update updates an existing record
	Update(record *DownloadRecord) error

	// FindByID finds a record by ID
	FindByID(id string) (*DownloadRecord, error)

	// FindAll finds records, newest first, optionally filtered by status.
	// A limit of 0 means no limit.
	FindAll(status DownloadStatus, limit int) ([]*DownloadRecord, error)

	// FindByBatch finds the records of one batch in creation order
	FindByBatch(batchID string) ([]*DownloadRecord, error)

	// GetStats returns download statistics
	GetStats() (*DownloadStats, error)
}

// DownloadStats represents download statistics
type DownloadStats struct {
	Total      int64 `json:"total"`
	Queued     int64 `json:"queued"`
	Processing int64 `json:"processing"`
	Completed  int64 `json:"completed"`
	Failed     int64 `json:"failed"`
}
