package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/kashala/atm-finder-go/internal/models"
)

// RouteEstimator returns a travel duration for one origin-destination pair.
// Implemented by the OSRM client; tests use a fake.
type RouteEstimator interface {
	Duration(ctx context.Context, from, to models.Coordinate) (time.Duration, error)
}

// RouteProvider returns the full route geometry for one origin-destination
// pair. Also implemented by the OSRM client.
type RouteProvider interface {
	Route(ctx context.Context, from, to models.Coordinate) (*models.Route, error)
}

// SelectorService picks the candidate with the lowest travel time.
// Routing calls run on a bounded worker pool with a per-request timeout;
// a failed call only removes that candidate from consideration.
type SelectorService struct {
	estimator RouteEstimator
	workers   int
	timeout   time.Duration
}

// NewSelectorService creates a new selector service
func NewSelectorService(estimator RouteEstimator, workers int, timeout time.Duration) *SelectorService {
	if workers < 1 {
		workers = 1
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &SelectorService{estimator: estimator, workers: workers, timeout: timeout}
}

type candidateResult struct {
	index    int
	duration time.Duration
	err      error
}

// Best returns the candidate with the minimum travel time from origin, and
// that travel time. It returns a nil ATM when the candidate list is empty
// or when every routing call failed.
func (s *SelectorService) Best(ctx context.Context, origin models.Coordinate, candidates []models.ATM) (*models.ATM, time.Duration, error) {
	if len(candidates) == 0 {
		return nil, 0, nil
	}

	jobs := make(chan int)
	results := make(chan candidateResult)

	workers := s.workers
	if workers > len(candidates) {
		workers = len(candidates)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				reqCtx, cancel := context.WithTimeout(ctx, s.timeout)
				d, err := s.estimator.Duration(reqCtx, origin, candidates[i].Coordinate)
				cancel()

				select {
				case results <- candidateResult{index: i, duration: d, err: err}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := range candidates {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	bestIdx := -1
	var bestDuration time.Duration
	for res := range results {
		if res.err != nil {
			// Treated as unreachable; the remaining candidates still count.
			log.Printf("Routing call for %s failed: %v", candidates[res.index].ID, res.err)
			continue
		}
		if bestIdx == -1 || res.duration < bestDuration {
			bestIdx = res.index
			bestDuration = res.duration
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	if bestIdx == -1 {
		return nil, 0, nil
	}

	best := candidates[bestIdx]
	return &best, bestDuration, nil
}
