package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"minemarket/internal/domain"
)

type OfferRepository struct {
	db *gorm.DB
}

func NewOfferRepository(db *gorm.DB) *OfferRepository {
	return &OfferRepository{db: db}
}

type offerModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	MineID     int64     `gorm:"column:mine_id;index"`
	InvestorID int64     `gorm:"column:investor_id;index"`
	Amount     float64   `gorm:"column:amount"`
	Message    *string   `gorm:"column:message"`
	Status     string    `gorm:"column:status;index"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (offerModel) TableName() string { return "offers" }

func toDomainOffer(m offerModel) *domain.Offer {
	return &domain.Offer{
		ID:         m.ID,
		MineID:     m.MineID,
		InvestorID: m.InvestorID,
		Amount:     m.Amount,
		Message:    strOrEmpty(m.Message),
		Status:     domain.OfferStatus(m.Status),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func (r *OfferRepository) Create(ctx context.Context, o *domain.Offer) error {
	m := offerModel{
		MineID:     o.MineID,
		InvestorID: o.InvestorID,
		Amount:     o.Amount,
		Message:    strOrNil(o.Message),
		Status:     string(domain.OfferPending),
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*o = *toDomainOffer(m)
	return nil
}

func (r *OfferRepository) GetByID(ctx context.Context, id int64) (*domain.Offer, error) {
	var m offerModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainOffer(m), nil
}

type OfferFilters struct {
	MineID     int64
	InvestorID int64
	Status     string
}

// List returns offers in stable creation order.
func (r *OfferRepository) List(ctx context.Context, f OfferFilters) ([]domain.Offer, error) {
	q := r.db.WithContext(ctx).Model(&offerModel{})
	if f.MineID != 0 {
		q = q.Where("mine_id = ?", f.MineID)
	}
	if f.InvestorID != 0 {
		q = q.Where("investor_id = ?", f.InvestorID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var rows []offerModel
	if err := q.Order("created_at asc, id asc").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Offer, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainOffer(m))
	}
	return out, nil
}

// Accept resolves the offer and every competing Pending offer on the same
// mine in one transaction. The Pending re-check runs inside the transaction
// as a conditional update, so of two concurrent accepts on one mine exactly
// one can win; the loser sees ErrOfferNotPending. A failure anywhere rolls
// the whole unit back.
func (r *OfferRepository) Accept(ctx context.Context, offerID int64) (*domain.Offer, error) {
	var out *domain.Offer
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m offerModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&m, offerID).Error; err != nil {
			return err
		}

		res := tx.Model(&offerModel{}).
			Where("id = ? AND status = ?", offerID, string(domain.OfferPending)).
			Update("status", string(domain.OfferAccepted))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrOfferNotPending
		}

		if err := tx.Model(&offerModel{}).
			Where("mine_id = ? AND id <> ? AND status = ?", m.MineID, offerID, string(domain.OfferPending)).
			Update("status", string(domain.OfferRejected)).Error; err != nil {
			return err
		}

		var fresh offerModel
		if err := tx.First(&fresh, offerID).Error; err != nil {
			return err
		}
		out = toDomainOffer(fresh)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Reject resolves a single Pending offer; no other offer is touched.
func (r *OfferRepository) Reject(ctx context.Context, offerID int64) (*domain.Offer, error) {
	var out *domain.Offer
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m offerModel
		if err := tx.First(&m, offerID).Error; err != nil {
			return err
		}

		res := tx.Model(&offerModel{}).
			Where("id = ? AND status = ?", offerID, string(domain.OfferPending)).
			Update("status", string(domain.OfferRejected))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrOfferNotPending
		}

		var fresh offerModel
		if err := tx.First(&fresh, offerID).Error; err != nil {
			return err
		}
		out = toDomainOffer(fresh)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CountByMineAndStatus supports the single-Accepted invariant checks in
// analytics and tests.
func (r *OfferRepository) CountByMineAndStatus(ctx context.Context, mineID int64, status domain.OfferStatus) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&offerModel{}).
		Where("mine_id = ? AND status = ?", mineID, string(status)).
		Count(&cnt)
	return cnt, tx.Error
}
