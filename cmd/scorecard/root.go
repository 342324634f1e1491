package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fadilmartias/resume-scorecard/internal/config"
	"github.com/fadilmartias/resume-scorecard/internal/model"
	"github.com/fadilmartias/resume-scorecard/internal/service"
	"github.com/fadilmartias/resume-scorecard/internal/usecase"
	"github.com/fadilmartias/resume-scorecard/internal/util"
	"github.com/fadilmartias/resume-scorecard/internal/view"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newRootCmd(log *logrus.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:          "scorecard",
		Short:        "Submit resumes to the analysis service and print the scorecard",
		SilenceUsage: true,
	}
	root.AddCommand(newAnalyzeCmd(log), newPreviewCmd())
	return root
}

type analyzeOptions struct {
	resume         string
	jobDescription string
	fields         []string
	analyzerURL    string
	maxUploadMB    int
}

func newAnalyzeCmd(log *logrus.Logger) *cobra.Command {
	opts := analyzeOptions{}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a resume and print the formatted scores",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log.SetOutput(cmd.ErrOrStderr())
			return runAnalyze(cmd.Context(), cmd, opts, log)
		},
	}
	cmd.Flags().StringVarP(&opts.resume, "resume", "r", "", "path to the resume (.pdf or .docx)")
	cmd.Flags().StringVarP(&opts.jobDescription, "job-description", "j", "", "job description to match against")
	cmd.Flags().StringArrayVar(&opts.fields, "field", nil, "extra form field as name=value (repeatable)")
	cmd.Flags().StringVar(&opts.analyzerURL, "analyzer-url", "", "analysis service base URL (default $ANALYZER_URL)")
	cmd.Flags().IntVar(&opts.maxUploadMB, "max-upload-mb", 0, "largest resume accepted (default $MAX_UPLOAD_MB)")
	_ = cmd.MarkFlagRequired("resume")
	return cmd
}

func runAnalyze(ctx context.Context, cmd *cobra.Command, opts analyzeOptions, log *logrus.Logger) error {
	cfg := *config.LoadAnalyzerConfig()
	if opts.analyzerURL != "" {
		cfg.BaseURL = strings.TrimRight(opts.analyzerURL, "/")
	}
	if opts.maxUploadMB > 0 {
		cfg.MaxUploadBytes = int64(opts.maxUploadMB) * 1024 * 1024
	}

	submission, err := buildSubmission(opts, cfg.MaxUploadBytes)
	if err != nil {
		return err
	}

	controller := usecase.NewScorecardController(service.NewAnalyzerService(&cfg), log)
	sheet := view.NewSheet(view.Hyphenated)
	if _, err := controller.Submit(ctx, submission, sheet); err != nil {
		return err
	}
	_, err = sheet.WriteTo(cmd.OutOrStdout())
	return err
}

func buildSubmission(opts analyzeOptions, maxBytes int64) (*model.Submission, error) {
	fields := url.Values{}
	if opts.jobDescription != "" {
		fields.Set("job_description", opts.jobDescription)
	}
	for _, kv := range opts.fields {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid --field %q, want name=value", kv)
		}
		fields.Add(strings.TrimSpace(name), value)
	}

	info, err := os.Stat(opts.resume)
	if err != nil {
		return nil, fmt.Errorf("resume: %w", err)
	}
	if maxBytes > 0 && info.Size() > maxBytes {
		return nil, fmt.Errorf("resume file size is too large (max %dMB)", maxBytes/(1024*1024))
	}
	content, err := os.ReadFile(opts.resume)
	if err != nil {
		return nil, fmt.Errorf("resume: %w", err)
	}
	contentType := util.DetectContentType(content)
	if !util.IsResumeType(contentType) {
		return nil, fmt.Errorf("unsupported file format %s: please use a .docx or .pdf file", contentType)
	}

	return &model.Submission{
		Fields: fields,
		Files: []model.SubmissionFile{{
			Field:       util.ResumeField,
			Filename:    filepath.Base(opts.resume),
			ContentType: contentType,
			Content:     content,
		}},
	}, nil
}

func newPreviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Print the sample scorecard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sheet := view.NewSheet(view.Underscored)
			if err := view.RenderPreview(sheet); err != nil {
				return err
			}
			_, err := sheet.WriteTo(cmd.OutOrStdout())
			return err
		},
	}
}
