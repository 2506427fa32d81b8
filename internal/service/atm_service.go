package service

import (
	"context"
	"log"
	"sort"
	"strings"

	"github.com/kashala/atm-finder-go/internal/models"
	"github.com/kashala/atm-finder-go/internal/repository"
	"github.com/kashala/atm-finder-go/internal/spatial"
)

// ATMSearcher is a pluggable nearby-search index. Implemented by the
// Elasticsearch store; nil means the sqlite repository serves every query.
type ATMSearcher interface {
	Nearby(ctx context.Context, filter models.NearbyFilter) ([]models.ATM, error)
}

// ATMService handles listing, ranking and filtering of ATM records
type ATMService struct {
	repo   *repository.ATMRepository
	search ATMSearcher
}

// NewATMService creates a new ATM service
func NewATMService(repo *repository.ATMRepository, search ATMSearcher) *ATMService {
	return &ATMService{repo: repo, search: search}
}

// Rank attaches the distance from ref to every ATM and returns the list
// sorted ascending by distance. The sort is stable, so ranking an already
// ranked list leaves it unchanged.
func Rank(ref models.Coordinate, atms []models.ATM) []models.ATM {
	ranked := make([]models.ATM, len(atms))
	copy(ranked, atms)

	for i := range ranked {
		ranked[i].DistanceKm = spatial.Distance(
			ref.Latitude, ref.Longitude,
			ranked[i].Coordinate.Latitude, ranked[i].Coordinate.Longitude,
		)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceKm < ranked[j].DistanceKm
	})

	return ranked
}

// List retrieves ATMs matching the filter. When the filter carries a valid
// reference point the result is distance-annotated and sorted nearest-first.
func (s *ATMService) List(ctx context.Context, filter models.ATMFilter) ([]models.ATM, error) {
	atms, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	if filter.Service != "" {
		atms = filterByService(atms, filter.Service)
	}

	if spatial.IsValidLatLon(filter.Lat, filter.Lon) {
		atms = Rank(models.Coordinate{Latitude: filter.Lat, Longitude: filter.Lon}, atms)
		if filter.RadiusKm > 0 {
			atms = withinRadius(atms, filter.RadiusKm)
		}
	}

	if filter.Limit > 0 && len(atms) > filter.Limit {
		atms = atms[:filter.Limit]
	}

	return atms, nil
}

// Nearby answers a nearby-place search. The Elasticsearch index is
// preferred when configured; any index failure falls back to the sqlite
// repository plus exact ranking.
func (s *ATMService) Nearby(ctx context.Context, filter models.NearbyFilter) ([]models.ATM, error) {
	if s.search != nil {
		atms, err := s.search.Nearby(ctx, filter)
		if err == nil {
			return Rank(models.Coordinate{Latitude: filter.Lat, Longitude: filter.Lon}, atms), nil
		}
		log.Printf("Nearby search index failed, falling back to repository: %v", err)
	}

	atms, err := s.repo.List(ctx, models.ATMFilter{
		Lat:      filter.Lat,
		Lon:      filter.Lon,
		RadiusKm: filter.RadiusKm,
		Service:  filter.Service,
	})
	if err != nil {
		return nil, err
	}

	if filter.Service != "" {
		atms = filterByService(atms, filter.Service)
	}

	atms = Rank(models.Coordinate{Latitude: filter.Lat, Longitude: filter.Lon}, atms)
	if filter.RadiusKm > 0 {
		atms = withinRadius(atms, filter.RadiusKm)
	}
	if filter.Limit > 0 && len(atms) > filter.Limit {
		atms = atms[:filter.Limit]
	}

	return atms, nil
}

// GetByID retrieves a single ATM record.
func (s *ATMService) GetByID(ctx context.Context, id string) (*models.ATM, error) {
	return s.repo.GetByID(ctx, id)
}

// Banks lists the distinct bank names.
func (s *ATMService) Banks(ctx context.Context) ([]string, error) {
	return s.repo.Banks(ctx)
}

func filterByService(atms []models.ATM, service string) []models.ATM {
	var out []models.ATM
	for _, atm := range atms {
		for _, tag := range atm.Services {
			if strings.EqualFold(tag, service) {
				out = append(out, atm)
				break
			}
		}
	}
	return out
}

// withinRadius assumes the list is distance-annotated and sorted, so it can
// cut at the first ATM past the radius.
func withinRadius(atms []models.ATM, radiusKm float64) []models.ATM {
	for i, atm := range atms {
		if atm.DistanceKm > radiusKm {
			return atms[:i]
		}
	}
	return atms
}
