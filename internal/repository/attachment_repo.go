package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"minemarket/internal/domain"
)

type attachmentModel struct {
	ID         string    `gorm:"column:id;primaryKey"`
	ParentType string    `gorm:"column:parent_type;index:idx_attachment_parent"`
	ParentID   int64     `gorm:"column:parent_id;index:idx_attachment_parent"`
	Filename   string    `gorm:"column:filename"`
	URL        string    `gorm:"column:url"`
	MimeType   string    `gorm:"column:mime_type"`
	Size       int64     `gorm:"column:size"`
	UploadedAt time.Time `gorm:"column:uploaded_at"`
}

func (attachmentModel) TableName() string { return "attachments" }

func toDomainAttachment(m attachmentModel) domain.Attachment {
	return domain.Attachment{
		ID:         m.ID,
		ParentType: m.ParentType,
		ParentID:   m.ParentID,
		Filename:   m.Filename,
		URL:        m.URL,
		MimeType:   m.MimeType,
		Size:       m.Size,
		UploadedAt: m.UploadedAt,
	}
}

func createAttachment(tx *gorm.DB, a *domain.Attachment) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.UploadedAt.IsZero() {
		a.UploadedAt = time.Now().UTC()
	}
	m := attachmentModel{
		ID:         a.ID,
		ParentType: a.ParentType,
		ParentID:   a.ParentID,
		Filename:   a.Filename,
		URL:        a.URL,
		MimeType:   a.MimeType,
		Size:       a.Size,
		UploadedAt: a.UploadedAt,
	}
	return tx.Create(&m).Error
}

func loadAttachments(ctx context.Context, db *gorm.DB, parentType string, parentID int64) ([]domain.Attachment, error) {
	var rows []attachmentModel
	err := db.WithContext(ctx).
		Where("parent_type = ? AND parent_id = ?", parentType, parentID).
		Order("uploaded_at asc, id asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Attachment, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainAttachment(m))
	}
	return out, nil
}
