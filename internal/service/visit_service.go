package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kashala/atm-finder-go/internal/models"
	"github.com/kashala/atm-finder-go/internal/repository"
)

// VisitService handles the per-user visit history
type VisitService struct {
	repo *repository.VisitRepository
}

// NewVisitService creates a new visit service
func NewVisitService(repo *repository.VisitRepository) *VisitService {
	return &VisitService{repo: repo}
}

// Record stores a visit entry after the user confirmed a route.
func (s *VisitService) Record(ctx context.Context, userID, atmName, atmAddress string, travelTimeMin *int) (*models.VisitEntry, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}
	if atmName == "" {
		return nil, fmt.Errorf("atm name is required")
	}

	v := &models.VisitEntry{
		ID:            uuid.NewString(),
		UserID:        userID,
		ATMName:       atmName,
		ATMAddress:    atmAddress,
		TravelTimeMin: travelTimeMin,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// History returns a user's visit entries, newest first.
func (s *VisitService) History(ctx context.Context, userID string) ([]models.VisitEntry, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Clear deletes all of a user's visit entries.
func (s *VisitService) Clear(ctx context.Context, userID string) (int64, error) {
	return s.repo.DeleteByUser(ctx, userID)
}
