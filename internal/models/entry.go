// Package models holds the data shapes shared by the stores, the transfer
// engine and the transports.
package models

import "time"

// Entry is one recorded unit of work time as persisted by the store.
// Optional fields are nil when absent and serialize as JSON null.
type Entry struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"`
	Hours     float64   `json:"hours"`
	Category  string    `json:"category"`
	Note      *string   `json:"note"`
	StartTime *string   `json:"startTime"`
	EndTime   *string   `json:"endTime"`
	CreatedAt time.Time `json:"created_at"`
}

// Input returns the caller-controlled fields of e, e.g. to re-import an
// exported entry.
func (e Entry) Input() EntryInput {
	hours := e.Hours
	return EntryInput{
		Date:      e.Date,
		Hours:     &hours,
		Category:  e.Category,
		Note:      e.Note,
		StartTime: e.StartTime,
		EndTime:   e.EndTime,
	}
}

// EntryInput carries the fields a caller supplies when creating, replacing
// or importing an entry. Hours is a pointer so that a missing value can be
// told apart from zero hours.
type EntryInput struct {
	Date      string   `json:"date" validate:"required"`
	Hours     *float64 `json:"hours" validate:"required"`
	Category  string   `json:"category" validate:"required"`
	Note      *string  `json:"note,omitempty"`
	StartTime *string  `json:"startTime,omitempty"`
	EndTime   *string  `json:"endTime,omitempty"`
}

// Normalized returns a copy where empty optional strings become nil, so
// absent values are stored as NULL and never as "".
func (in EntryInput) Normalized() EntryInput {
	in.Note = nullIfEmpty(in.Note)
	in.StartTime = nullIfEmpty(in.StartTime)
	in.EndTime = nullIfEmpty(in.EndTime)
	return in
}

func nullIfEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// Snapshot is a full dataset: every entry in canonical order plus every
// setting, decoded.
type Snapshot struct {
	Entries  []Entry        `json:"entries"`
	Settings map[string]any `json:"settings"`
}

// ImportRequest is the payload of a bulk replace. A nil Settings map leaves
// stored settings untouched.
type ImportRequest struct {
	Entries  []EntryInput   `json:"entries"`
	Settings map[string]any `json:"settings,omitempty"`
}
