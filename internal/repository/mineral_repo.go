package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"minemarket/internal/domain"
)

type MineralRepository struct {
	db *gorm.DB
}

func NewMineralRepository(db *gorm.DB) *MineralRepository {
	return &MineralRepository{db: db}
}

type mineralModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	CreatedBy     int64     `gorm:"column:created_by;index"`
	Name          string    `gorm:"column:name"`
	MineralType   string    `gorm:"column:mineral_type;index"`
	Grade         *string   `gorm:"column:grade"`
	Form          *string   `gorm:"column:form"`
	MinOrder      float64   `gorm:"column:min_order"`
	MaxOrder      float64   `gorm:"column:max_order"`
	PricePerUnit  float64   `gorm:"column:price_per_unit"`
	Currency      string    `gorm:"column:currency"`
	Location      *string   `gorm:"column:location"`
	Description   *string   `gorm:"column:description"`
	IsActive      bool      `gorm:"column:is_active;index"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	LastUpdatedAt time.Time `gorm:"column:last_updated_at"`
}

func (mineralModel) TableName() string { return "minerals" }

func strOrEmpty(p *string) string {
	if p != nil {
		return *p
	}
	return ""
}

func strOrNil(s string) *string {
	if s == "" {
		return nil
	}
	v := s
	return &v
}

func toDomainMineral(m mineralModel) *domain.Mineral {
	return &domain.Mineral{
		ID:            m.ID,
		CreatedBy:     m.CreatedBy,
		Name:          m.Name,
		MineralType:   domain.MineralType(m.MineralType),
		Grade:         strOrEmpty(m.Grade),
		Form:          strOrEmpty(m.Form),
		MinOrder:      m.MinOrder,
		MaxOrder:      m.MaxOrder,
		PricePerUnit:  m.PricePerUnit,
		Currency:      m.Currency,
		Location:      strOrEmpty(m.Location),
		Description:   strOrEmpty(m.Description),
		Attachments:   []domain.Attachment{},
		IsActive:      m.IsActive,
		CreatedAt:     m.CreatedAt,
		LastUpdatedAt: m.LastUpdatedAt,
	}
}

func toMineralModel(mr *domain.Mineral) mineralModel {
	return mineralModel{
		ID:            mr.ID,
		CreatedBy:     mr.CreatedBy,
		Name:          mr.Name,
		MineralType:   string(mr.MineralType),
		Grade:         strOrNil(mr.Grade),
		Form:          strOrNil(mr.Form),
		MinOrder:      mr.MinOrder,
		MaxOrder:      mr.MaxOrder,
		PricePerUnit:  mr.PricePerUnit,
		Currency:      mr.Currency,
		Location:      strOrNil(mr.Location),
		Description:   strOrNil(mr.Description),
		IsActive:      mr.IsActive,
		CreatedAt:     mr.CreatedAt,
		LastUpdatedAt: mr.LastUpdatedAt,
	}
}

func (r *MineralRepository) Create(ctx context.Context, mr *domain.Mineral) error {
	mr.IsActive = true
	mr.LastUpdatedAt = time.Now().UTC()
	m := toMineralModel(mr)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*mr = *toDomainMineral(m)
	return nil
}

// GetByID applies the is_active predicate explicitly; soft-deleted minerals
// read as not found.
func (r *MineralRepository) GetByID(ctx context.Context, id int64) (*domain.Mineral, error) {
	var m mineralModel
	tx := r.db.WithContext(ctx).Where("is_active = ?", true).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}

	mineral := toDomainMineral(m)
	atts, err := loadAttachments(ctx, r.db, domain.AttachmentParentMineral, id)
	if err != nil {
		return nil, err
	}
	mineral.Attachments = atts
	return mineral, nil
}

type MineralFilters struct {
	CreatedBy   int64
	MineralType string
	Query       string
}

func (r *MineralRepository) List(ctx context.Context, f MineralFilters) ([]domain.Mineral, error) {
	q := r.db.WithContext(ctx).Model(&mineralModel{}).Where("is_active = ?", true)
	if f.CreatedBy != 0 {
		q = q.Where("created_by = ?", f.CreatedBy)
	}
	if f.MineralType != "" {
		q = q.Where("mineral_type = ?", f.MineralType)
	}
	if f.Query != "" {
		like := "%" + f.Query + "%"
		q = q.Where("name LIKE ? OR grade LIKE ? OR location LIKE ?", like, like, like)
	}

	var rows []mineralModel
	if err := q.Order("created_at desc, id desc").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Mineral, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainMineral(m))
	}
	return out, nil
}

// Update writes through a column map so cleared optional fields persist as
// NULL instead of being skipped as zero values. CreatedBy is immutable.
func (r *MineralRepository) Update(ctx context.Context, mr *domain.Mineral) error {
	mr.LastUpdatedAt = time.Now().UTC()
	m := toMineralModel(mr)
	tx := r.db.WithContext(ctx).Model(&mineralModel{}).
		Where("id = ? AND is_active = ?", mr.ID, true).
		Updates(map[string]any{
			"name":            m.Name,
			"mineral_type":    m.MineralType,
			"grade":           m.Grade,
			"form":            m.Form,
			"min_order":       m.MinOrder,
			"max_order":       m.MaxOrder,
			"price_per_unit":  m.PricePerUnit,
			"currency":        m.Currency,
			"location":        m.Location,
			"description":     m.Description,
			"last_updated_at": m.LastUpdatedAt,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SoftDelete flips is_active; the row stays for audit but disappears from
// every read path.
func (r *MineralRepository) SoftDelete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Model(&mineralModel{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(map[string]any{"is_active": false, "last_updated_at": time.Now().UTC()})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *MineralRepository) AddAttachment(ctx context.Context, mineralID int64, a *domain.Attachment) error {
	var m mineralModel
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).First(&m, mineralID).Error; err != nil {
		return err
	}
	a.ParentType = domain.AttachmentParentMineral
	a.ParentID = mineralID
	return createAttachment(r.db.WithContext(ctx), a)
}
