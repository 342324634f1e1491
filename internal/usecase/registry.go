package usecase

import (
	"context"
	"sync"

	"github.com/fadilmartias/resume-scorecard/internal/model"
	"github.com/fadilmartias/resume-scorecard/internal/service"
	"github.com/fadilmartias/resume-scorecard/internal/view"
	"github.com/sirupsen/logrus"
)

// Registry keeps one controller per browser client while that client has a
// submission in flight.
type Registry struct {
	analyzer service.AnalyzerServiceInterface
	log      logrus.FieldLogger

	mu      sync.Mutex
	entries map[string]*registryEntry
}

type registryEntry struct {
	controller *ScorecardController
	inflight   int
}

func NewRegistry(analyzer service.AnalyzerServiceInterface, log logrus.FieldLogger) *Registry {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Registry{
		analyzer: analyzer,
		log:      log,
		entries:  make(map[string]*registryEntry),
	}
}

// Submit runs submission through clientID's controller.
func (r *Registry) Submit(ctx context.Context, clientID string, submission *model.Submission, target view.Target) ([]view.Binding, error) {
	controller := r.acquire(clientID)
	defer r.release(clientID)
	return controller.Submit(ctx, submission, target)
}

// Active returns the number of clients with a submission in flight.
func (r *Registry) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *Registry) acquire(clientID string) *ScorecardController {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[clientID]
	if !ok {
		entry = &registryEntry{
			controller: NewScorecardController(r.analyzer, r.log.WithField("client", clientID)),
		}
		r.entries[clientID] = entry
	}
	entry.inflight++
	return entry.controller
}

func (r *Registry) release(clientID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[clientID]
	if !ok {
		return
	}
	entry.inflight--
	if entry.inflight <= 0 {
		delete(r.entries, clientID)
	}
}
