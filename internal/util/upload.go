package util

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"path/filepath"
	"sort"

	"github.com/fadilmartias/resume-scorecard/internal/model"
	"github.com/gabriel-vasile/mimetype"
)

// ResumeField is the form field carrying the resume upload.
const ResumeField = "resume"

const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// CaptureSubmission copies a parsed multipart form into a Submission. Every
// file is size-checked and content-sniffed; the resume file is mandatory and
// must be a PDF or DOCX document.
func CaptureSubmission(form *multipart.Form, maxBytes int64) (*model.Submission, error) {
	submission := &model.Submission{Fields: url.Values{}}
	if form == nil {
		return nil, NewFormError("No resume file provided.", map[string]string{ResumeField: "required"})
	}
	for name, values := range form.Value {
		for _, v := range values {
			submission.Fields.Add(name, v)
		}
	}

	names := make([]string, 0, len(form.File))
	for name := range form.File {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		for _, header := range form.File[name] {
			file, err := ReadUpload(name, header, maxBytes)
			if err != nil {
				return nil, err
			}
			submission.Files = append(submission.Files, file)
		}
	}

	resume, ok := submission.File(ResumeField)
	if !ok || len(resume.Content) == 0 {
		return nil, NewFormError("No resume file provided.", map[string]string{ResumeField: "required"})
	}
	if !IsResumeType(resume.ContentType) {
		return nil, NewFormError("Unsupported file format. Please upload a .docx or .pdf file.",
			map[string]string{ResumeField: resume.ContentType})
	}
	return submission, nil
}

// ReadUpload loads one uploaded file and detects its content type.
func ReadUpload(field string, header *multipart.FileHeader, maxBytes int64) (model.SubmissionFile, error) {
	if maxBytes > 0 && header.Size > maxBytes {
		return model.SubmissionFile{}, NewFormError(
			fmt.Sprintf("%s file size is too large (max %dMB)", field, maxBytes/(1024*1024)),
			map[string]string{field: "too large"})
	}
	f, err := header.Open()
	if err != nil {
		return model.SubmissionFile{}, fmt.Errorf("open %s upload: %w", field, err)
	}
	defer f.Close()

	var r io.Reader = f
	if maxBytes > 0 {
		r = io.LimitReader(f, maxBytes+1)
	}
	content, err := io.ReadAll(r)
	if err != nil {
		return model.SubmissionFile{}, fmt.Errorf("read %s upload: %w", field, err)
	}
	if maxBytes > 0 && int64(len(content)) > maxBytes {
		return model.SubmissionFile{}, NewFormError(
			fmt.Sprintf("%s file size is too large (max %dMB)", field, maxBytes/(1024*1024)),
			map[string]string{field: "too large"})
	}

	return model.SubmissionFile{
		Field:       field,
		Filename:    filepath.Base(header.Filename),
		ContentType: DetectContentType(content),
		Content:     content,
	}, nil
}

// DetectContentType sniffs content, ignoring any client-supplied type.
func DetectContentType(content []byte) string {
	return mimetype.Detect(content).String()
}

// IsResumeType reports whether the sniffed type is one the analyzer accepts.
func IsResumeType(contentType string) bool {
	mtype := mimetype.Lookup(contentType)
	if mtype == nil {
		return false
	}
	return mtype.Is(MimePDF) || mtype.Is(MimeDOCX)
}
