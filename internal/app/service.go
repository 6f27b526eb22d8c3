package app

import (
	"context"
	"sync"
)

// Service caches the latest pipeline result for serving over HTTP.
// The first Latest call triggers a run; Refresh forces a new one.
type Service struct {
	pipeline *Pipeline
	opts     RunOptions

	mu     sync.RWMutex
	latest *Result
}

// NewService wraps a pipeline with result caching. The given options
// are used for every run the service triggers.
func NewService(pipeline *Pipeline, opts RunOptions) *Service {
	return &Service{pipeline: pipeline, opts: opts}
}

// Latest returns the cached result, running the pipeline first if no
// run has happened yet.
func (s *Service) Latest(ctx context.Context) (*Result, error) {
	s.mu.RLock()
	cached := s.latest
	s.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}
	return s.Refresh(ctx)
}

// Refresh runs the pipeline and replaces the cached result.
func (s *Service) Refresh(ctx context.Context) (*Result, error) {
	result, err := s.pipeline.Run(ctx, s.opts)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.latest = result
	s.mu.Unlock()
	return result, nil
}

// Regions returns the regions present in the latest accepted set,
// triggering a run if needed.
func (s *Service) Regions(ctx context.Context) ([]string, error) {
	result, err := s.Latest(ctx)
	if err != nil {
		return nil, err
	}
	if result.Empty() {
		return []string{}, nil
	}
	return result.AvailableRegions, nil
}
