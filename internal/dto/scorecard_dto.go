package dto

import "github.com/fadilmartias/resume-scorecard/internal/view"

type SlotDTO struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type ScorecardDTO struct {
	Slots []SlotDTO `json:"slots"`
}

func NewScorecardDTO(bindings []view.Binding, ns view.Namespace) ScorecardDTO {
	slots := make([]SlotDTO, 0, len(bindings))
	for _, b := range bindings {
		slots = append(slots, SlotDTO{ID: b.Slot.ID(ns), Text: b.Text})
	}
	return ScorecardDTO{Slots: slots}
}
