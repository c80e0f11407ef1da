package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nomadtrail/nomad-backend-go/internal/models"
	"github.com/nomadtrail/nomad-backend-go/internal/presence"
	"github.com/nomadtrail/nomad-backend-go/internal/repository"
	"github.com/nomadtrail/nomad-backend-go/internal/rules"
)

// StayService handles recording and correcting stay history.
type StayService struct {
	repo     *repository.StayRepository
	registry *rules.Registry
}

// NewStayService creates a new stay service
func NewStayService(repo *repository.StayRepository, registry *rules.Registry) *StayService {
	return &StayService{repo: repo, registry: registry}
}

// List retrieves stay records with filtering and pagination
func (s *StayService) List(filter models.StayFilter) ([]models.Stay, int64, error) {
	return s.repo.List(filter)
}

// Get retrieves a single stay record
func (s *StayService) Get(id string) (*models.Stay, error) {
	return s.repo.GetByID(id)
}

// Record validates and stores a new stay. The jurisdiction must exist in
// the rule registry; an unknown code fails closed rather than storing
// untrackable history.
func (s *StayService) Record(req models.CreateStayRequest) (*models.Stay, error) {
	stay, err := s.buildStay(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Insert(stay); err != nil {
		return nil, err
	}
	return stay, nil
}

// Correct supersedes an existing stay with a replacement record. The old
// record stays in the table, marked superseded; history is never edited in
// place.
func (s *StayService) Correct(id string, req models.CreateStayRequest) (*models.Stay, error) {
	replacement, err := s.buildStay(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Supersede(id, replacement); err != nil {
		return nil, err
	}
	return replacement, nil
}

// Remove marks a stay as superseded with no replacement.
func (s *StayService) Remove(id string) error {
	return s.repo.Supersede(id, nil)
}

func (s *StayService) buildStay(req models.CreateStayRequest) (*models.Stay, error) {
	if _, err := s.registry.Lookup(req.Jurisdiction); err != nil {
		return nil, err
	}

	start, err := presence.ParseDate(req.StartDate)
	if err != nil {
		return nil, err
	}

	stay := &models.Stay{
		ID:           uuid.NewString(),
		Jurisdiction: req.Jurisdiction,
		StartDate:    start,
		Notes:        req.Notes,
		CreatedAt:    time.Now().UTC(),
	}

	if req.EndDate != nil && *req.EndDate != "" {
		end, err := presence.ParseDate(*req.EndDate)
		if err != nil {
			return nil, err
		}
		if start.After(end) {
			return nil, fmt.Errorf("%w (%s > %s)", presence.ErrInvalidInterval, start, end)
		}
		stay.EndDate = &end
	}
	return stay, nil
}
