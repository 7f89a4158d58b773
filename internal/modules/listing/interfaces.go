package listing

import (
	"context"

	"github.com/google/uuid"

	"travelnest/internal/domain"
	"travelnest/internal/repository"
)

type ListingRepository interface {
	Create(ctx context.Context, l *domain.Listing) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error)
	Update(ctx context.Context, l *domain.Listing) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByHost(ctx context.Context, hostID uuid.UUID) ([]domain.Listing, error)
	Search(ctx context.Context, f repository.SearchFilter) ([]domain.Listing, error)
}
