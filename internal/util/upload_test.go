package util

import (
	"bytes"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pdfContent = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n%%EOF\n")

type upload struct {
	field, name string
	content     []byte
}

func buildForm(t *testing.T, fields map[string]string, files ...upload) *multipart.Form {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = part.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(10 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form
}

func TestCaptureSubmission(t *testing.T) {
	form := buildForm(t,
		map[string]string{"job_description": "Go developer"},
		upload{"resume", "cv.pdf", pdfContent},
		upload{"cover_letter", "letter.txt", []byte("hello")},
	)

	submission, err := CaptureSubmission(form, 1<<20)
	require.NoError(t, err)

	assert.Equal(t, "Go developer", submission.Fields.Get("job_description"))
	require.Len(t, submission.Files, 2)

	resume, ok := submission.File("resume")
	require.True(t, ok)
	assert.Equal(t, "cv.pdf", resume.Filename)
	assert.Equal(t, MimePDF, resume.ContentType)
	assert.Equal(t, pdfContent, resume.Content)

	letter, ok := submission.File("cover_letter")
	require.True(t, ok)
	assert.Contains(t, letter.ContentType, "text/plain")
}

func TestCaptureSubmissionRejects(t *testing.T) {
	tests := []struct {
		name    string
		form    func(t *testing.T) *multipart.Form
		max     int64
		message string
	}{
		{
			name:    "no form",
			form:    func(*testing.T) *multipart.Form { return nil },
			message: "No resume file provided.",
		},
		{
			name: "no resume",
			form: func(t *testing.T) *multipart.Form {
				return buildForm(t, map[string]string{"job_description": "x"})
			},
			message: "No resume file provided.",
		},
		{
			name: "empty resume",
			form: func(t *testing.T) *multipart.Form {
				return buildForm(t, nil, upload{"resume", "cv.pdf", nil})
			},
			message: "No resume file provided.",
		},
		{
			name: "text resume",
			form: func(t *testing.T) *multipart.Form {
				return buildForm(t, nil, upload{"resume", "cv.pdf", []byte("just some text pretending to be a pdf")})
			},
			message: "Unsupported file format. Please upload a .docx or .pdf file.",
		},
		{
			name: "too large",
			form: func(t *testing.T) *multipart.Form {
				return buildForm(t, nil, upload{"resume", "cv.pdf", pdfContent})
			},
			max:     16,
			message: "resume file size is too large (max 0MB)",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			max := tc.max
			if max == 0 {
				max = 1 << 20
			}
			_, err := CaptureSubmission(tc.form(t), max)

			var formErr *FormError
			require.True(t, errors.As(err, &formErr), "want *FormError, got %v", err)
			assert.Equal(t, tc.message, formErr.Message)
		})
	}
}

func TestIsResumeType(t *testing.T) {
	assert.True(t, IsResumeType(MimePDF))
	assert.True(t, IsResumeType(MimeDOCX))
	assert.False(t, IsResumeType("text/plain; charset=utf-8"))
	assert.False(t, IsResumeType("application/zip"))
	assert.False(t, IsResumeType(""))
}

func TestFormErrorMessage(t *testing.T) {
	err := NewFormError("invalid", map[string]string{"resume": "required", "a": "b"})
	assert.Equal(t, "form error: invalid (a: b; resume: required)", err.Error())
	assert.Equal(t, "form error: bare", NewFormError("bare", nil).Error())
}
