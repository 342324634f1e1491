package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/fadilmartias/resume-scorecard/internal/model"
	"github.com/fadilmartias/resume-scorecard/internal/service"
	"github.com/fadilmartias/resume-scorecard/internal/view"
	"github.com/sirupsen/logrus"
)

// ErrSuperseded is returned to a submission replaced by a newer one before
// its response arrived. Nothing is rendered for it.
var ErrSuperseded = errors.New("submission superseded by a newer one")

// State of a controller.
type State int

const (
	Idle State = iota
	Pending
)

func (s State) String() string {
	if s == Pending {
		return "pending"
	}
	return "idle"
}

// ScorecardController sends one form submission at a time to the analyzer
// and renders the answer into a page.
//
// A submission made while another is pending cancels the older one, so the
// page always ends up showing the latest submission's result.
type ScorecardController struct {
	analyzer service.AnalyzerServiceInterface
	log      logrus.FieldLogger

	mu     sync.Mutex
	state  State
	seq    uint64
	cancel context.CancelFunc
}

func NewScorecardController(analyzer service.AnalyzerServiceInterface, log logrus.FieldLogger) *ScorecardController {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ScorecardController{analyzer: analyzer, log: log}
}

// State returns the current state.
func (c *ScorecardController) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Submit analyzes submission and, on success, writes the formatted scorecard
// into target's hyphenated elements. Analyzer failures are logged once and
// returned; target is left untouched.
func (c *ScorecardController) Submit(ctx context.Context, submission *model.Submission, target view.Target) ([]view.Binding, error) {
	ctx, seq := c.begin(ctx)

	result, err := c.analyzer.Analyze(ctx, submission)

	if !c.finish(seq) {
		c.log.WithField("submission", seq).Debug("dropping superseded submission")
		return nil, ErrSuperseded
	}
	if err != nil {
		c.log.WithError(err).WithField("submission", seq).Error("resume analysis failed")
		return nil, err
	}

	bindings := view.Scorecard(result)
	if err := view.Apply(target, view.Hyphenated, bindings); err != nil {
		return nil, err
	}
	return bindings, nil
}

func (c *ScorecardController) begin(parent context.Context) (context.Context, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	c.seq++
	c.state = Pending
	c.cancel = cancel
	return ctx, c.seq
}

// finish reports whether seq is still the latest submission and, if so,
// returns the controller to Idle.
func (c *ScorecardController) finish(seq uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		return false
	}
	c.cancel()
	c.cancel = nil
	c.state = Idle
	return true
}
