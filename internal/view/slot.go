// Package view maps analysis results onto the display elements of the
// results page without knowing anything about how that page is stored.
package view

import (
	"fmt"
	"strings"

	"github.com/fadilmartias/resume-scorecard/internal/model"
)

// Slot is one display position on the results page.
type Slot int

const (
	KeywordScore Slot = iota
	ExperienceScore
	SkillsScore
	EducationCheck
	FormatCheck
	Achievements
	MisspelledWords
	GrammaticalErrors
	DiversityMentions
	FinalScore
)

// Slots lists every slot in page order.
var Slots = []Slot{
	KeywordScore,
	ExperienceScore,
	SkillsScore,
	EducationCheck,
	FormatCheck,
	Achievements,
	MisspelledWords,
	GrammaticalErrors,
	DiversityMentions,
	FinalScore,
}

var slotFields = map[Slot]string{
	KeywordScore:      model.FieldKeywordScore,
	ExperienceScore:   model.FieldExperienceScore,
	SkillsScore:       model.FieldSkillsScore,
	EducationCheck:    model.FieldEducationCheck,
	FormatCheck:       model.FieldFormatCheck,
	Achievements:      model.FieldAchievements,
	MisspelledWords:   model.FieldMisspelledWords,
	GrammaticalErrors: model.FieldGrammaticalErrors,
	DiversityMentions: model.FieldDiversityMentions,
	FinalScore:        model.FieldFinalScore,
}

// Field returns the backend field name backing the slot.
func (s Slot) Field() string {
	if f, ok := slotFields[s]; ok {
		return f
	}
	return fmt.Sprintf("slot_%d", int(s))
}

func (s Slot) String() string {
	return s.Field()
}

// Namespace decides how a slot's element id is spelled on a page.
type Namespace int

const (
	// Hyphenated ids (keyword-score) are used by the live results page.
	Hyphenated Namespace = iota
	// Underscored ids (keyword_score) are used by the preview page.
	Underscored
)

// ID returns the element id of the slot in the given namespace.
func (s Slot) ID(ns Namespace) string {
	if ns == Hyphenated {
		return strings.ReplaceAll(s.Field(), "_", "-")
	}
	return s.Field()
}

// Binding pairs a slot with the text it should display.
type Binding struct {
	Slot Slot
	Text string
}

// Target is anything with addressable text elements, typically a parsed page.
type Target interface {
	SetText(id, text string) error
}

// Apply writes each binding into target. The first lookup failure stops the
// walk and is returned as is.
func Apply(target Target, ns Namespace, bindings []Binding) error {
	for _, b := range bindings {
		if err := target.SetText(b.Slot.ID(ns), b.Text); err != nil {
			return err
		}
	}
	return nil
}
