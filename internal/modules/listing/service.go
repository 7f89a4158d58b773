package listing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"travelnest/internal/domain"
	"travelnest/internal/platform/logger"
	"travelnest/internal/repository"
)

var minNightlyPrice = decimal.NewFromFloat(0.01)

type Service struct {
	listings ListingRepository
	log      logger.Logger
}

func NewService(listings ListingRepository, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{listings: listings, log: log}
}

func (s *Service) Create(ctx context.Context, hostID uuid.UUID, req CreateListingRequest) (*domain.Listing, error) {
	if req.PricePerNight.LessThan(minNightlyPrice) || req.MaxGuests < 1 {
		return nil, ErrValidation
	}

	pt := domain.PropertyType(req.PropertyType)
	if pt == "" {
		pt = domain.PropertyApartment
	}
	if !domain.ValidPropertyType(pt) {
		return nil, ErrValidation
	}

	l := &domain.Listing{
		HostID:        hostID,
		Title:         req.Title,
		Description:   req.Description,
		Location:      req.Location,
		PricePerNight: req.PricePerNight,
		PropertyType:  pt,
		MaxGuests:     req.MaxGuests,
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		Amenities:     joinAmenities(req.Amenities),
		Available:     true,
	}
	if l.Bedrooms == 0 {
		l.Bedrooms = 1
	}
	if l.Bathrooms == 0 {
		l.Bathrooms = 1
	}

	if err := s.listings.Create(ctx, l); err != nil {
		return nil, err
	}
	s.log.Infof("listing created id=%s host=%s", l.ID, hostID)
	return l, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	l, err := s.listings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return l, nil
}

func (s *Service) Update(ctx context.Context, id, hostID uuid.UUID, req UpdateListingRequest) (*domain.Listing, error) {
	l, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.HostID != hostID {
		return nil, ErrForbidden
	}

	if req.Title != nil {
		l.Title = *req.Title
	}
	if req.Description != nil {
		l.Description = *req.Description
	}
	if req.Location != nil {
		l.Location = *req.Location
	}
	if req.PricePerNight != nil {
		if req.PricePerNight.LessThan(minNightlyPrice) {
			return nil, ErrValidation
		}
		l.PricePerNight = *req.PricePerNight
	}
	if req.PropertyType != nil {
		pt := domain.PropertyType(*req.PropertyType)
		if !domain.ValidPropertyType(pt) {
			return nil, ErrValidation
		}
		l.PropertyType = pt
	}
	if req.MaxGuests != nil {
		if *req.MaxGuests < 1 {
			return nil, ErrValidation
		}
		l.MaxGuests = *req.MaxGuests
	}
	if req.Bedrooms != nil {
		l.Bedrooms = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		l.Bathrooms = *req.Bathrooms
	}
	if req.Amenities != nil {
		l.Amenities = joinAmenities(req.Amenities)
	}
	if req.Available != nil {
		l.Available = *req.Available
	}

	if err := s.listings.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Service) Delete(ctx context.Context, id, hostID uuid.UUID) error {
	l, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if l.HostID != hostID {
		return ErrForbidden
	}
	if err := s.listings.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.log.Infof("listing deleted id=%s host=%s", id, hostID)
	return nil
}

func (s *Service) ListForHost(ctx context.Context, hostID uuid.UUID) ([]domain.Listing, error) {
	return s.listings.ListByHost(ctx, hostID)
}

// Search maps the public query into a repository filter. Malformed prices or
// dates are validation errors rather than silently ignored filters.
func (s *Service) Search(ctx context.Context, q SearchQuery) ([]domain.Listing, error) {
	f := repository.SearchFilter{
		Location:    q.Location,
		MinGuests:   q.Guests,
		MinBedrooms: q.Bedrooms,
		SortBy:      q.SortBy,
		Limit:       q.Limit,
		Offset:      q.Offset,
	}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 50
	}

	if q.PropertyType != "" {
		pt := domain.PropertyType(q.PropertyType)
		if !domain.ValidPropertyType(pt) {
			return nil, ErrValidation
		}
		f.PropertyType = pt
	}
	if q.MinPrice != "" {
		p, err := decimal.NewFromString(q.MinPrice)
		if err != nil {
			return nil, ErrValidation
		}
		f.MinPrice = &p
	}
	if q.MaxPrice != "" {
		p, err := decimal.NewFromString(q.MaxPrice)
		if err != nil {
			return nil, ErrValidation
		}
		f.MaxPrice = &p
	}

	if (q.CheckIn == "") != (q.CheckOut == "") {
		return nil, ErrValidation
	}
	if q.CheckIn != "" {
		in, err := time.Parse("2006-01-02", q.CheckIn)
		if err != nil {
			return nil, ErrValidation
		}
		out, err := time.Parse("2006-01-02", q.CheckOut)
		if err != nil {
			return nil, ErrValidation
		}
		if !out.After(in) {
			return nil, ErrValidation
		}
		f.CheckIn = &in
		f.CheckOut = &out
	}

	return s.listings.Search(ctx, f)
}

// PropertyTypes returns the accepted property type values.
func (s *Service) PropertyTypes() []domain.PropertyType {
	return []domain.PropertyType{
		domain.PropertyApartment,
		domain.PropertyHouse,
		domain.PropertyCondo,
		domain.PropertyVilla,
		domain.PropertyCabin,
		domain.PropertyLoft,
		domain.PropertyStudio,
	}
}
