package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/fadilmartias/resume-scorecard/internal/config"
	"github.com/fadilmartias/resume-scorecard/internal/model"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// AnalyzePath is the backend route that scores a resume.
const AnalyzePath = "/analyze"

var (
	// ErrTransport covers failures before any response arrived.
	ErrTransport = errors.New("analyzer request failed")
	// ErrStatus is matched by every *StatusError.
	ErrStatus = errors.New("analyzer returned an error status")
	// ErrMalformedResponse is returned when the body is not an analysis result.
	ErrMalformedResponse = model.ErrMalformedResult
)

// StatusError is a non-2xx answer from the analyzer.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("analyzer returned %d %s", e.Code, http.StatusText(e.Code))
	}
	return fmt.Sprintf("analyzer returned %d: %s", e.Code, e.Message)
}

func (e *StatusError) Unwrap() error {
	return ErrStatus
}

type AnalyzerServiceInterface interface {
	Analyze(ctx context.Context, submission *model.Submission) (*model.AnalysisResult, error)
}

type AnalyzerService struct {
	client *resty.Client
}

func NewAnalyzerService(cfg *config.AnalyzerConfig) *AnalyzerService {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Accept", "application/json")
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}
	return &AnalyzerService{client: client}
}

// Analyze posts the submission as multipart form data and decodes the
// result. It makes exactly one request.
func (s *AnalyzerService) Analyze(ctx context.Context, submission *model.Submission) (*model.AnalysisResult, error) {
	req := s.client.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", uuid.NewString())

	names := make([]string, 0, len(submission.Fields))
	for name := range submission.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, value := range submission.Fields[name] {
			req.SetMultipartField(name, "", "", strings.NewReader(value))
		}
	}
	for _, f := range submission.Files {
		req.SetMultipartField(f.Field, f.Filename, f.ContentType, bytes.NewReader(f.Content))
	}

	resp, err := req.Post(AnalyzePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	if !resp.IsSuccess() {
		return nil, &StatusError{
			Code:    resp.StatusCode(),
			Message: backendMessage(resp.Body()),
		}
	}

	result, err := model.ParseAnalysisResult(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("decode analyzer response: %w", err)
	}
	return result, nil
}

// backendMessage pulls {"error": "..."} out of an error body, falling back
// to a trimmed copy of the body itself.
func backendMessage(body []byte) string {
	if msg := gjson.GetBytes(body, "error").String(); msg != "" {
		return msg
	}
	text := strings.TrimSpace(string(body))
	if len(text) > 200 {
		text = text[:200] + "..."
	}
	return text
}
