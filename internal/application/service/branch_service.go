package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/kogello/mazao-api/internal/domain/entity"
	"github.com/kogello/mazao-api/internal/domain/repository"
	"github.com/kogello/mazao-api/pkg/apperror"
)

// BranchService handles trading location management (admin only writes)
type BranchService struct {
	branchRepo repository.BranchRepository
}

// NewBranchService creates a new branch service
func NewBranchService(branchRepo repository.BranchRepository) *BranchService {
	return &BranchService{branchRepo: branchRepo}
}

// BranchInput represents create/update input for a branch
type BranchInput struct {
	Name     string
	Location *string
}

// CreateBranch opens a new trading location (admin only)
func (s *BranchService) CreateBranch(ctx context.Context, actor entity.ActingUser, input *BranchInput) (*entity.Branch, error) {
	if !actor.IsAdmin() {
		return nil, apperror.ErrForbidden
	}
	if input.Name == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "name", Message: "name is required"},
		})
	}

	existing, err := s.branchRepo.GetByName(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Branch with this name already exists")
	}

	branch := &entity.Branch{
		Name:     input.Name,
		Location: input.Location,
	}
	if err := s.branchRepo.Create(ctx, branch); err != nil {
		return nil, err
	}
	return branch, nil
}

// GetBranch retrieves a branch by ID
func (s *BranchService) GetBranch(ctx context.Context, id uuid.UUID) (*entity.Branch, error) {
	branch, err := s.branchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, apperror.NewNotFoundError("Branch")
	}
	return branch, nil
}

// UpdateBranch renames or relocates a branch (admin only)
func (s *BranchService) UpdateBranch(ctx context.Context, actor entity.ActingUser, id uuid.UUID, input *BranchInput) (*entity.Branch, error) {
	if !actor.IsAdmin() {
		return nil, apperror.ErrForbidden
	}

	branch, err := s.branchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, apperror.NewNotFoundError("Branch")
	}

	if input.Name != "" && input.Name != branch.Name {
		existing, err := s.branchRepo.GetByName(ctx, input.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("Branch with this name already exists")
		}
		branch.Name = input.Name
	}
	if input.Location != nil {
		branch.Location = input.Location
	}

	if err := s.branchRepo.Update(ctx, branch); err != nil {
		return nil, err
	}
	return branch, nil
}

// DeleteBranch closes a trading location (admin only). The head office
// cannot be deleted.
func (s *BranchService) DeleteBranch(ctx context.Context, actor entity.ActingUser, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return apperror.ErrForbidden
	}

	branch, err := s.branchRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if branch == nil {
		return apperror.NewNotFoundError("Branch")
	}
	if branch.IsHeadOffice {
		return apperror.NewConflictError("Head office branch cannot be deleted")
	}

	return s.branchRepo.Delete(ctx, id)
}

// ListBranches lists all branches
func (s *BranchService) ListBranches(ctx context.Context) ([]entity.Branch, error) {
	return s.branchRepo.List(ctx)
}
