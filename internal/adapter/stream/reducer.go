package stream

import (
	"github.com/google/uuid"

	"github.com/pitch-assistant-team/pitch-assistant/internal/domain/entities"
)

// SlideView is one slide as accumulated from per-slide step updates.
type SlideView struct {
	ID       uuid.UUID
	Title    string
	ImageURL string
}

// Reducer folds a progress event stream into the view a client renders:
// which step is active, how far along the pipeline is, which slides have
// surfaced so far and whether the run ended in success or failure. A
// finished stream without a final payload means the run failed.
type Reducer struct {
	statuses  map[string]string
	messages  map[string]string
	order     []string
	active    string
	completed int
	slides    []SlideView
	slideIdx  map[uuid.UUID]int
	err       string
	final     *entities.FinalData
	done      bool
}

// NewReducer creates an empty reducer.
func NewReducer() *Reducer {
	return &Reducer{
		statuses: make(map[string]string),
		messages: make(map[string]string),
		slideIdx: make(map[uuid.UUID]int),
	}
}

// Apply folds one event into the view state. Events arriving after a
// terminal event are ignored.
func (r *Reducer) Apply(event entities.ProgressEvent) {
	if r.done {
		return
	}

	switch event.Type {
	case entities.EventTypeStepUpdate:
		if _, seen := r.statuses[event.StepID]; !seen {
			r.order = append(r.order, event.StepID)
		}
		prev := r.statuses[event.StepID]
		r.statuses[event.StepID] = event.Status
		if event.Message != "" {
			r.messages[event.StepID] = event.Message
		}
		switch event.Status {
		case entities.StepInProgress:
			r.active = event.StepID
		case entities.StepCompleted, entities.StepError:
			// Completed count only moves forward.
			if prev != entities.StepCompleted && prev != entities.StepError {
				r.completed++
			}
			if r.active == event.StepID {
				r.active = ""
			}
		}
		r.applySlide(event)
	case entities.EventTypeError:
		if event.StepID != "" {
			if _, seen := r.statuses[event.StepID]; !seen {
				r.order = append(r.order, event.StepID)
			}
			r.statuses[event.StepID] = entities.StepError
		}
		r.err = event.Message
		r.done = true
	case entities.EventTypeFinalData:
		if event.Data != nil {
			data := *event.Data
			r.final = &data
		}
		r.done = true
	}
}

// applySlide tracks the slides surfacing through per-slide step updates:
// the in_progress frame names the slide, the completed frame carries its
// image URL.
func (r *Reducer) applySlide(event entities.ProgressEvent) {
	if event.SlideID == nil {
		return
	}
	idx, ok := r.slideIdx[*event.SlideID]
	if !ok {
		idx = len(r.slides)
		r.slideIdx[*event.SlideID] = idx
		r.slides = append(r.slides, SlideView{ID: *event.SlideID, Title: event.SlideTitle})
	}
	if event.SlideTitle != "" && r.slides[idx].Title == "" {
		r.slides[idx].Title = event.SlideTitle
	}
	if event.ImageURL != "" {
		r.slides[idx].ImageURL = event.ImageURL
	}
}

// ActiveStep returns the step currently in progress, or empty.
func (r *Reducer) ActiveStep() string {
	return r.active
}

// StepStatus returns the last seen status for a step.
func (r *Reducer) StepStatus(stepID string) string {
	return r.statuses[stepID]
}

// StepMessage returns the last seen message for a step.
func (r *Reducer) StepMessage(stepID string) string {
	return r.messages[stepID]
}

// Progress returns finished steps over seen steps as a 0-100 percentage.
func (r *Reducer) Progress() int {
	if len(r.order) == 0 {
		return 0
	}
	return r.completed * 100 / len(r.order)
}

// Slides returns the slides seen so far, in arrival order.
func (r *Reducer) Slides() []SlideView {
	return r.slides
}

// Done reports whether a terminal event has arrived.
func (r *Reducer) Done() bool {
	return r.done
}

// Err returns the terminal error message, or empty on success.
func (r *Reducer) Err() string {
	return r.err
}

// Final returns the completion payload. A finished stream with no final
// payload means the run failed.
func (r *Reducer) Final() *entities.FinalData {
	return r.final
}

// Succeeded reports whether the stream ended with a final_data event.
func (r *Reducer) Succeeded() bool {
	return r.done && r.final != nil && r.err == ""
}
