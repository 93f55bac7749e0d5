package domain

import (
	"time"

	"github.com/google/uuid"
)

// DownloadStatus represents the current status of a recorded download
type DownloadStatus string

const (
	StatusQueued     DownloadStatus = "queued"
	StatusProcessing DownloadStatus = "processing"
	StatusCompleted  DownloadStatus = "completed"
	StatusFailed     DownloadStatus = "failed"
)

// DownloadRecord is one download attempt kept in the optional history database
type DownloadRecord struct {
	ID           string         `json:"id" gorm:"primaryKey"`
	URL          string         `json:"url" gorm:"not null;index"`
	Platform     Platform       `json:"platform" gorm:"not null"`
	Status       DownloadStatus `json:"status" gorm:"not null;index"`
	Title        string         `json:"title,omitempty"`
	Filename     string         `json:"filename,omitempty"`
	AudioOnly    bool           `json:"audio_only"`
	Quality      string         `json:"quality"`
	BatchID      string         `json:"batch_id,omitempty" gorm:"index"`
	OutputDir    string         `json:"output_dir"`
	ErrorMessage string         `json:"error_message,omitempty"`
	CreatedAt    time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	StartedAt    *time.Time     `json:"started_at,omitempty"`
	CompletedAt  *time.Time     `json:"completed_at,omitempty"`
}

// TableName specifies the table name for GORM
func (DownloadRecord) TableName() string {
	return "downloads"
}

// NewDownloadRecord creates a queued record for url
func NewDownloadRecord(url string, prefs DownloadPreferences) *DownloadRecord {
	now := time.Now()
	return &DownloadRecord{
		ID:        uuid.New().String(),
		URL:       url,
		Platform:  PlatformHint(url),
		Status:    StatusQueued,
		Filename:  prefs.CustomFilename,
		AudioOnly: prefs.AudioOnly,
		Quality:   prefs.Quality,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// MarkProcessing marks the record as processing
func (d *DownloadRecord) MarkProcessing() {
	d.Status = StatusProcessing
	now := time.Now()
	d.StartedAt = &now
	d.UpdatedAt = now
}

// MarkCompleted marks the record as completed
func (d *DownloadRecord) MarkCompleted() {
	d.Status = StatusCompleted
	d.ErrorMessage = ""
	now := time.Now()
	d.CompletedAt = &now
	d.UpdatedAt = now
}

// MarkFailed marks the record as failed
func (d *DownloadRecord) MarkFailed(message string) {
	d.Status = StatusFailed
	d.ErrorMessage = message
	d.UpdatedAt = time.Now()
}

// IsTerminal checks if the record is in a terminal state
func (d *DownloadRecord) IsTerminal() bool {
	return d.Status == StatusCompleted || d.Status == StatusFailed
}

// ValidateStatus checks if a status filter is valid
func ValidateStatus(status DownloadStatus) bool {
	switch status {
	case StatusQueued, StatusProcessing, StatusCompleted, StatusFailed:
		return true
	}
	return false
}
