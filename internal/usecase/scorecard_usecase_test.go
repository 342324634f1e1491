package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/fadilmartias/resume-scorecard/internal/model"
	"github.com/fadilmartias/resume-scorecard/internal/service"
	"github.com/fadilmartias/resume-scorecard/internal/view"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnalyzer struct {
	mu    sync.Mutex
	calls int
	fn    func(ctx context.Context, call int) (*model.AnalysisResult, error)
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, _ *model.Submission) (*model.AnalysisResult, error) {
	f.mu.Lock()
	f.calls++
	call := f.calls
	f.mu.Unlock()
	return f.fn(ctx, call)
}

func (f *fakeAnalyzer) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func sampleResult() *model.AnalysisResult {
	return &model.AnalysisResult{
		KeywordScore:      0.75,
		ExperienceScore:   0.8,
		SkillsScore:       0.7,
		EducationCheck:    model.NumberValue(100),
		FormatCheck:       model.NumberValue(90),
		Achievements:      model.NumberValue(5),
		MisspelledWords:   model.StringValue("None"),
		GrammaticalErrors: model.NumberValue(2),
		DiversityMentions: model.NumberValue(3),
		FinalScore:        82,
	}
}

func succeed(result *model.AnalysisResult) *fakeAnalyzer {
	return &fakeAnalyzer{fn: func(context.Context, int) (*model.AnalysisResult, error) {
		return result, nil
	}}
}

func TestSubmitRendersScorecard(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	analyzer := succeed(sampleResult())
	controller := NewScorecardController(analyzer, logger)
	sheet := view.NewSheet(view.Hyphenated)

	bindings, err := controller.Submit(context.Background(), &model.Submission{}, sheet)
	require.NoError(t, err)

	assert.Len(t, bindings, len(view.Slots))
	assert.Equal(t, 1, analyzer.Calls())
	assert.Equal(t, "75.00%", sheet.Text(view.KeywordScore))
	assert.Equal(t, "100%", sheet.Text(view.EducationCheck))
	assert.Equal(t, "None", sheet.Text(view.MisspelledWords))
	assert.Equal(t, "82.00%", sheet.Text(view.FinalScore))
	assert.Equal(t, Idle, controller.State())
	assert.Empty(t, hook.AllEntries())
}

func TestSubmitFailureLeavesPageAndLogsOnce(t *testing.T) {
	failures := []error{
		service.ErrTransport,
		&service.StatusError{Code: 500, Message: "boom"},
		service.ErrMalformedResponse,
	}
	for _, failure := range failures {
		t.Run(failure.Error(), func(t *testing.T) {
			logger, hook := logtest.NewNullLogger()
			analyzer := &fakeAnalyzer{fn: func(context.Context, int) (*model.AnalysisResult, error) {
				return nil, failure
			}}
			controller := NewScorecardController(analyzer, logger)
			sheet := view.NewSheet(view.Hyphenated)
			require.NoError(t, sheet.SetText("final-score", "previous"))

			_, err := controller.Submit(context.Background(), &model.Submission{}, sheet)
			require.ErrorIs(t, err, failure)

			assert.Equal(t, "previous", sheet.Text(view.FinalScore))
			for _, slot := range view.Slots[:len(view.Slots)-1] {
				assert.Empty(t, sheet.Text(slot))
			}
			require.Len(t, hook.AllEntries(), 1)
			assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
			assert.Equal(t, failure, hook.LastEntry().Data[logrus.ErrorKey])
			assert.Equal(t, Idle, controller.State())
		})
	}
}

func TestSubmitCanRetryAfterFailure(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	analyzer := &fakeAnalyzer{fn: func(_ context.Context, call int) (*model.AnalysisResult, error) {
		if call == 1 {
			return nil, service.ErrTransport
		}
		return sampleResult(), nil
	}}
	controller := NewScorecardController(analyzer, logger)
	sheet := view.NewSheet(view.Hyphenated)

	_, err := controller.Submit(context.Background(), &model.Submission{}, sheet)
	require.Error(t, err)
	_, err = controller.Submit(context.Background(), &model.Submission{}, sheet)
	require.NoError(t, err)
	assert.Equal(t, "80.00%", sheet.Text(view.ExperienceScore))
}

func TestNewerSubmissionReplacesPendingOne(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	firstStarted := make(chan struct{})
	analyzer := &fakeAnalyzer{fn: func(ctx context.Context, call int) (*model.AnalysisResult, error) {
		if call == 1 {
			close(firstStarted)
			<-ctx.Done()
			return nil, ctx.Err()
		}
		result := sampleResult()
		result.FinalScore = 91.5
		return result, nil
	}}
	controller := NewScorecardController(analyzer, logger)

	firstSheet := view.NewSheet(view.Hyphenated)
	firstErr := make(chan error, 1)
	go func() {
		_, err := controller.Submit(context.Background(), &model.Submission{}, firstSheet)
		firstErr <- err
	}()

	select {
	case <-firstStarted:
	case <-time.After(2 * time.Second):
		t.Fatal("first submission never reached the analyzer")
	}
	assert.Equal(t, Pending, controller.State())

	secondSheet := view.NewSheet(view.Hyphenated)
	_, err := controller.Submit(context.Background(), &model.Submission{}, secondSheet)
	require.NoError(t, err)
	assert.Equal(t, "91.50%", secondSheet.Text(view.FinalScore))

	select {
	case err := <-firstErr:
		require.ErrorIs(t, err, ErrSuperseded)
	case <-time.After(2 * time.Second):
		t.Fatal("first submission was not cancelled")
	}
	assert.Empty(t, firstSheet.Text(view.FinalScore))
	assert.Equal(t, Idle, controller.State())
	assert.Empty(t, hook.AllEntries())
}

func TestMissingElementIsReturned(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	controller := NewScorecardController(succeed(sampleResult()), logger)

	_, err := controller.Submit(context.Background(), &model.Submission{}, view.NewSheet(view.Underscored))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "keyword-score")
	assert.Empty(t, hook.AllEntries())
}

func TestRegistryScopesControllersPerClient(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	release := make(chan struct{})
	started := make(chan struct{}, 2)
	analyzer := &fakeAnalyzer{fn: func(ctx context.Context, _ int) (*model.AnalysisResult, error) {
		started <- struct{}{}
		select {
		case <-release:
			return sampleResult(), nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}}
	registry := NewRegistry(analyzer, logger)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, client := range []string{"alice", "bob"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = registry.Submit(context.Background(), client, &model.Submission{}, view.NewSheet(view.Hyphenated))
		}()
	}
	for range 2 {
		<-started
	}
	assert.Equal(t, 2, registry.Active())

	close(release)
	wg.Wait()

	// different clients never cancel each other
	assert.NoError(t, errs[0])
	assert.NoError(t, errs[1])
	assert.Equal(t, 0, registry.Active())
	assert.Empty(t, hook.AllEntries())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "pending", Pending.String())
}

var _ service.AnalyzerServiceInterface = (*fakeAnalyzer)(nil)
