package model

import "net/url"

// Submission is a captured form post: its text fields and uploaded files,
// named as the form names them.
type Submission struct {
	Fields url.Values
	Files  []SubmissionFile
}

type SubmissionFile struct {
	Field       string
	Filename    string
	ContentType string
	Content     []byte
}

// File returns the first uploaded file for field.
func (s *Submission) File(field string) (SubmissionFile, bool) {
	for _, f := range s.Files {
		if f.Field == field {
			return f, true
		}
	}
	return SubmissionFile{}, false
}
