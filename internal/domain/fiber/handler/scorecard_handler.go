package handler

import (
	"context"
	"errors"
	"time"

	"github.com/fadilmartias/resume-scorecard/internal/dto"
	"github.com/fadilmartias/resume-scorecard/internal/middleware"
	"github.com/fadilmartias/resume-scorecard/internal/model"
	"github.com/fadilmartias/resume-scorecard/internal/page"
	"github.com/fadilmartias/resume-scorecard/internal/usecase"
	"github.com/fadilmartias/resume-scorecard/internal/util"
	"github.com/fadilmartias/resume-scorecard/internal/view"
	"github.com/gofiber/fiber/v2"
)

// ErrorElementID is the page element that shows a failed submission.
const ErrorElementID = "analysis-error"

const (
	msgAnalysisFailed = "Analysis failed. Please try again."
	msgSuperseded     = "A newer submission replaced this one."
)

// Submitter runs a captured submission for a client.
type Submitter interface {
	Submit(ctx context.Context, clientID string, submission *model.Submission, target view.Target) ([]view.Binding, error)
}

type ScorecardHandler struct {
	submitter      Submitter
	maxUploadBytes int64
	submitLimit    int
}

func NewScorecardHandler(submitter Submitter, maxUploadBytes int64) *ScorecardHandler {
	return &ScorecardHandler{submitter: submitter, maxUploadBytes: maxUploadBytes, submitLimit: 10}
}

func (h *ScorecardHandler) RegisterRoutes(app *fiber.App) {
	limit := middleware.ClientRateLimiter(h.submitLimit, 1*time.Minute)
	app.Get("/", h.Index)
	app.Get("/preview", h.Preview)
	app.Post("/submit", limit, h.Submit)
	app.Post("/api/scorecard", limit, h.SubmitJSON)
}

func (h *ScorecardHandler) Index(c *fiber.Ctx) error {
	doc, err := page.Index()
	if err != nil {
		return err
	}
	return sendPage(c, fiber.StatusOK, doc)
}

func (h *ScorecardHandler) Preview(c *fiber.Ctx) error {
	doc, err := page.PreviewPage()
	if err != nil {
		return err
	}
	if err := view.RenderPreview(doc); err != nil {
		return err
	}
	return sendPage(c, fiber.StatusOK, doc)
}

// Submit is the target of the page's form. It answers with the results page,
// filled in on success and otherwise unchanged apart from a notice.
func (h *ScorecardHandler) Submit(c *fiber.Ctx) error {
	doc, err := page.Index()
	if err != nil {
		return err
	}

	submission, err := h.capture(c)
	if err != nil {
		var formErr *util.FormError
		if errors.As(err, &formErr) {
			return sendNotice(c, fiber.StatusBadRequest, doc, formErr.Message)
		}
		return err
	}

	_, err = h.submitter.Submit(c.UserContext(), middleware.GetClientID(c), submission, doc)
	switch {
	case err == nil:
		return sendPage(c, fiber.StatusOK, doc)
	case errors.Is(err, usecase.ErrSuperseded):
		return sendNotice(c, fiber.StatusConflict, doc, msgSuperseded)
	case errors.Is(err, page.ErrElementNotFound):
		return err
	default:
		return sendNotice(c, fiber.StatusBadGateway, doc, msgAnalysisFailed)
	}
}

// SubmitJSON runs the same flow for script clients and returns the formatted
// slots instead of a page.
func (h *ScorecardHandler) SubmitJSON(c *fiber.Ctx) error {
	submission, err := h.capture(c)
	if err != nil {
		var formErr *util.FormError
		if errors.As(err, &formErr) {
			return util.FormErrorResponse(c, formErr)
		}
		return err
	}

	sheet := view.NewSheet(view.Hyphenated)
	bindings, err := h.submitter.Submit(c.UserContext(), middleware.GetClientID(c), submission, sheet)
	switch {
	case err == nil:
		return util.SuccessResponse(c, util.SuccessResponseFormat{
			Message: "Success analyze resume",
			Data:    dto.NewScorecardDTO(bindings, view.Hyphenated),
		})
	case errors.Is(err, usecase.ErrSuperseded):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusConflict,
			Message: msgSuperseded,
		}, err)
	default:
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadGateway,
			Message: msgAnalysisFailed,
		}, err)
	}
}

func (h *ScorecardHandler) capture(c *fiber.Ctx) (*model.Submission, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, util.NewFormError("No resume file provided.", map[string]string{util.ResumeField: "required"})
	}
	return util.CaptureSubmission(form, h.maxUploadBytes)
}

func sendNotice(c *fiber.Ctx, status int, doc *page.Document, message string) error {
	if err := doc.SetText(ErrorElementID, message); err != nil {
		return err
	}
	return sendPage(c, status, doc)
}

func sendPage(c *fiber.Ctx, status int, doc *page.Document) error {
	body, err := doc.Bytes()
	if err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.Status(status).Send(body)
}
