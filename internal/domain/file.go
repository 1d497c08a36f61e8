package domain

import "time"

// StoredFile is an uploaded file record; TicketID is set once the file is
// reconciled into a ticket's folder.
type StoredFile struct {
	ID        int64
	FileName  string
	Path      string
	SizeBytes int64
	MimeType  string
	TicketID  *int64
	IsDeleted bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
