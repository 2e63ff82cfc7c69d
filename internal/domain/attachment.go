package domain

import "time"

// Attachment parent kinds.
const (
	AttachmentParentMine    = "mine"
	AttachmentParentMineral = "mineral"
)

// Attachment is uploaded-document metadata owned by a listing.
type Attachment struct {
	ID         string    `json:"id"`
	ParentType string    `json:"-"`
	ParentID   int64     `json:"-"`
	Filename   string    `json:"filename"`
	URL        string    `json:"url"`
	MimeType   string    `json:"mimetype"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploaded_at"`
}
