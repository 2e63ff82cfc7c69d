package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"minemarket/internal/domain"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	FirstName     string    `gorm:"column:first_name"`
	LastName      string    `gorm:"column:last_name"`
	Email         string    `gorm:"column:email;uniqueIndex"`
	PasswordHash  string    `gorm:"column:password_hash"`
	ContactNumber *string   `gorm:"column:contact_number"`
	Role          string    `gorm:"column:role"`
	IsVerified    bool      `gorm:"column:is_verified"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

func toDomainUser(m userModel) *domain.User {
	var contact string
	if m.ContactNumber != nil {
		contact = *m.ContactNumber
	}

	return &domain.User{
		ID:            m.ID,
		FirstName:     m.FirstName,
		LastName:      m.LastName,
		Email:         m.Email,
		PasswordHash:  m.PasswordHash,
		ContactNumber: contact,
		Role:          domain.UserRole(m.Role),
		IsVerified:    m.IsVerified,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toUserModel(u *domain.User) userModel {
	email := strings.TrimSpace(strings.ToLower(u.Email))

	var contact *string
	if u.ContactNumber != "" {
		v := u.ContactNumber
		contact = &v
	}

	return userModel{
		ID:            u.ID,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Email:         email,
		PasswordHash:  u.PasswordHash,
		ContactNumber: contact,
		Role:          string(u.Role),
		IsVerified:    u.IsVerified,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*u = *toDomainUser(m)
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).Where("email = ?", strings.TrimSpace(strings.ToLower(email))).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&userModel{}).
		Where("email = ?", strings.TrimSpace(strings.ToLower(email))).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}

type UserFilters struct {
	Role       string
	IsVerified *bool
}

func (r *UserRepository) List(ctx context.Context, f UserFilters) ([]domain.User, error) {
	q := r.db.WithContext(ctx).Model(&userModel{})
	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
	}
	if f.IsVerified != nil {
		q = q.Where("is_verified = ?", *f.IsVerified)
	}

	var rows []userModel
	if err := q.Order("created_at asc, id asc").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.User, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainUser(m))
	}
	return out, nil
}

// Update writes through a column map; struct updates would skip zero values
// and drop is_verified=false or a cleared contact number.
func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	tx := r.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", u.ID).Updates(map[string]any{
		"first_name":     m.FirstName,
		"last_name":      m.LastName,
		"email":          m.Email,
		"password_hash":  m.PasswordHash,
		"contact_number": m.ContactNumber,
		"role":           m.Role,
		"is_verified":    m.IsVerified,
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

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&userModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IsUniqueViolation reports whether err is a duplicate-key failure, covering
// both the Postgres error code and the SQLite message used in tests.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique constraint") || strings.Contains(msg, "unique failed")
}
