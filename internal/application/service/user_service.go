package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/kogello/mazao-api/internal/domain/entity"
	"github.com/kogello/mazao-api/internal/domain/enum"
	"github.com/kogello/mazao-api/internal/domain/repository"
	"github.com/kogello/mazao-api/pkg/apperror"
	"github.com/kogello/mazao-api/pkg/pagination"
)

// UserService handles operator administration (admin only)
type UserService struct {
	userRepo   repository.UserRepository
	branchRepo repository.BranchRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository, branchRepo repository.BranchRepository) *UserService {
	return &UserService{
		userRepo:   userRepo,
		branchRepo: branchRepo,
	}
}

// UpdateUserInput represents the fields an admin can change on a user
type UpdateUserInput struct {
	Role       *enum.Role
	BranchID   *uuid.UUID
	IsApproved *bool
}

// ListUsers lists all users (admin only)
func (s *UserService) ListUsers(ctx context.Context, actor entity.ActingUser, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.User], error) {
	if !actor.IsAdmin() {
		return nil, apperror.ErrForbidden
	}
	params.Validate()

	users, total, err := s.userRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(users, pag), nil
}

// UpdateUser changes a user's role, branch or approval flag (admin only).
// Admins cannot demote or suspend themselves, so at least one active
// admin always remains.
func (s *UserService) UpdateUser(ctx context.Context, actor entity.ActingUser, id uuid.UUID, input *UpdateUserInput) (*entity.User, error) {
	if !actor.IsAdmin() {
		return nil, apperror.ErrForbidden
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	if actor.ID == user.ID {
		if input.Role != nil && *input.Role != enum.RoleAdmin {
			return nil, apperror.NewBadRequestError("Admins cannot demote themselves")
		}
		if input.IsApproved != nil && !*input.IsApproved {
			return nil, apperror.NewBadRequestError("Admins cannot suspend themselves")
		}
	}

	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.BranchID != nil {
		branch, err := s.branchRepo.GetByID(ctx, *input.BranchID)
		if err != nil {
			return nil, err
		}
		if branch == nil {
			return nil, apperror.NewNotFoundError("Branch")
		}
		user.BranchID = input.BranchID
	}
	if input.IsApproved != nil {
		user.IsApproved = *input.IsApproved
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
