package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"minemarket/internal/domain"
)

type MineRepository struct {
	db *gorm.DB
}

func NewMineRepository(db *gorm.DB) *MineRepository {
	return &MineRepository{db: db}
}

type mineModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	OwnerID       int64     `gorm:"column:owner_id;index"`
	Name          string    `gorm:"column:name"`
	Location      string    `gorm:"column:location"`
	CommodityType string    `gorm:"column:commodity_type;index"`
	Status        string    `gorm:"column:status;index"`
	Price         float64   `gorm:"column:price"`
	Description   *string   `gorm:"column:description"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (mineModel) TableName() string { return "mines" }

func toDomainMine(m mineModel) *domain.Mine {
	var desc string
	if m.Description != nil {
		desc = *m.Description
	}

	return &domain.Mine{
		ID:            m.ID,
		OwnerID:       m.OwnerID,
		Name:          m.Name,
		Location:      m.Location,
		CommodityType: m.CommodityType,
		Status:        domain.MineStatus(m.Status),
		Price:         m.Price,
		Description:   desc,
		Attachments:   []domain.Attachment{},
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toMineModel(mn *domain.Mine) mineModel {
	var desc *string
	if mn.Description != "" {
		v := mn.Description
		desc = &v
	}

	return mineModel{
		ID:            mn.ID,
		OwnerID:       mn.OwnerID,
		Name:          mn.Name,
		Location:      mn.Location,
		CommodityType: mn.CommodityType,
		Status:        string(mn.Status),
		Price:         mn.Price,
		Description:   desc,
		CreatedAt:     mn.CreatedAt,
		UpdatedAt:     mn.UpdatedAt,
	}
}

func (r *MineRepository) Create(ctx context.Context, mn *domain.Mine) error {
	m := toMineModel(mn)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*mn = *toDomainMine(m)
	return nil
}

func (r *MineRepository) GetByID(ctx context.Context, id int64) (*domain.Mine, error) {
	var m mineModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}

	mine := toDomainMine(m)
	atts, err := loadAttachments(ctx, r.db, domain.AttachmentParentMine, id)
	if err != nil {
		return nil, err
	}
	mine.Attachments = atts
	return mine, nil
}

type MineFilters struct {
	OwnerID       int64
	Status        string
	CommodityType string
	Query         string
}

func (r *MineRepository) List(ctx context.Context, f MineFilters) ([]domain.Mine, error) {
	q := r.db.WithContext(ctx).Model(&mineModel{})
	if f.OwnerID != 0 {
		q = q.Where("owner_id = ?", f.OwnerID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.CommodityType != "" {
		q = q.Where("commodity_type = ?", f.CommodityType)
	}
	if f.Query != "" {
		like := "%" + f.Query + "%"
		q = q.Where("name LIKE ? OR location LIKE ? OR commodity_type LIKE ?", like, like, like)
	}

	var rows []mineModel
	if err := q.Order("created_at desc, id desc").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Mine, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainMine(m))
	}
	return out, nil
}

// Update writes through a column map so zero values (a cleared description,
// price set to 0 upstream) reach the database. Owner is immutable.
func (r *MineRepository) Update(ctx context.Context, mn *domain.Mine) error {
	m := toMineModel(mn)
	tx := r.db.WithContext(ctx).Model(&mineModel{}).Where("id = ?", mn.ID).Updates(map[string]any{
		"name":           m.Name,
		"location":       m.Location,
		"commodity_type": m.CommodityType,
		"status":         m.Status,
		"price":          m.Price,
		"description":    m.Description,
		"updated_at":     time.Now().UTC(),
	})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *MineRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&mineModel{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("parent_type = ? AND parent_id = ?", domain.AttachmentParentMine, id).
			Delete(&attachmentModel{}).Error
	})
}

func (r *MineRepository) AddAttachment(ctx context.Context, mineID int64, a *domain.Attachment) error {
	var m mineModel
	if err := r.db.WithContext(ctx).First(&m, mineID).Error; err != nil {
		return err
	}
	a.ParentType = domain.AttachmentParentMine
	a.ParentID = mineID
	return createAttachment(r.db.WithContext(ctx), a)
}
