package models

import (
	"time"

	"github.com/google/uuid"
)

// AnalyticsAction is the kind of interaction being tracked
type AnalyticsAction string

const (
	ActionView     AnalyticsAction = "view"
	ActionDownload AnalyticsAction = "download"
)

// Valid reports whether the action is one the analytics log accepts
func (a AnalyticsAction) Valid() bool {
	return a == ActionView || a == ActionDownload
}

// AnalyticsEvent is one row of the document analytics log
type AnalyticsEvent struct {
	ID         uuid.UUID       `json:"id"`
	DocumentID int64           `json:"document_id"`
	Action     AnalyticsAction `json:"action_type"`
	Timestamp  time.Time       `json:"timestamp"`
}
