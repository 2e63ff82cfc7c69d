package user

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"minemarket/internal/domain"
	"minemarket/internal/pkg/authz"
	"minemarket/internal/repository"
)

// Service is the admin-side user management surface.
type Service struct {
	users UserRepository
}

func NewService(users UserRepository) *Service {
	return &Service{users: users}
}

func (s *Service) List(ctx context.Context, actor authz.Actor, f repository.UserFilters) ([]domain.User, error) {
	if !authz.Can(actor, authz.ActionAdminister, authz.Resource{}) {
		return nil, ErrForbidden
	}

	users, err := s.users.List(ctx, f)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

func (s *Service) Get(ctx context.Context, actor authz.Actor, id int64) (*domain.User, error) {
	if !authz.Can(actor, authz.ActionAdminister, authz.Resource{}) {
		return nil, ErrForbidden
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *Service) Update(ctx context.Context, actor authz.Actor, id int64, req UpdateUserRequest) (*domain.User, error) {
	if !authz.Can(actor, authz.ActionAdminister, authz.Resource{}) {
		return nil, ErrForbidden
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		user.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.ContactNumber != nil {
		user.ContactNumber = *req.ContactNumber
	}
	if req.Role != nil {
		role := domain.UserRole(*req.Role)
		if !domain.ValidRole(role) {
			return nil, ErrValidation
		}
		user.Role = role
	}
	if req.IsVerified != nil {
		user.IsVerified = *req.IsVerified
	}
	if user.FirstName == "" || user.LastName == "" {
		return nil, ErrValidation
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// Delete removes a user account; admins cannot delete themselves.
func (s *Service) Delete(ctx context.Context, actor authz.Actor, id int64) error {
	if !authz.Can(actor, authz.ActionAdminister, authz.Resource{}) {
		return ErrForbidden
	}
	if actor.ID == id {
		return ErrValidation
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
