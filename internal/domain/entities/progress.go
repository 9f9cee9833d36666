package entities

import (
	"fmt"

	"github.com/google/uuid"
)

// Event types emitted by the generation pipeline.
const (
	EventTypeStepUpdate = "step_update"
	EventTypeFinalData  = "final_data"
	EventTypeError      = "error"
)

// Step statuses carried by step_update events.
const (
	StepInProgress = "in_progress"
	StepCompleted  = "completed"
	StepError      = "error"
)

// Pipeline step identifiers, in execution order. The crawl step only
// appears in summary mode when the input is a URL. Per-slide image steps
// use ImageStepID.
const (
	StepInit          = "init"
	StepURLCrawl      = "url_crawl"
	StepPromptSetup   = "prompt_setup"
	StepLLMContent    = "llm_content"
	StepSaveSlides    = "save_initial_slides"
	StepImagesOverall = "image_generation_overall"
	StepFinalize      = "finalize"
)

// ImageStepID returns the step identifier for one slide's image generation.
func ImageStepID(slideID uuid.UUID) string {
	return fmt.Sprintf("image_gen_slide_%s", slideID)
}

// SlideResult is one slide as reported in the final_data payload.
// ImageURL stays nil for slides whose image generation failed.
type SlideResult struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Content  string    `json:"content"`
	Order    int       `json:"order"`
	ImageURL *string   `json:"image_url"`
}

// FinalData is the payload of the terminal final_data event. It carries
// the full slide list so the client never has to refetch after a run.
type FinalData struct {
	PresentationID uuid.UUID     `json:"presentation_id"`
	Slides         []SlideResult `json:"slides"`
}

// ProgressEvent is one frame of pipeline progress. step_update frames for
// per-slide image steps also carry SlideID, SlideTitle and, on success,
// ImageURL; error frames carry the step that caused the abort.
type ProgressEvent struct {
	Type       string     `json:"type"`
	StepID     string     `json:"step_id,omitempty"`
	Status     string     `json:"status,omitempty"`
	Message    string     `json:"message,omitempty"`
	SlideID    *uuid.UUID `json:"slide_id,omitempty"`
	SlideTitle string     `json:"slide_title,omitempty"`
	ImageURL   string     `json:"image_url,omitempty"`
	Data       *FinalData `json:"data,omitempty"`
}

// StatusEvent builds a step_update frame for a pipeline step.
func StatusEvent(stepID, status, message string) ProgressEvent {
	return ProgressEvent{Type: EventTypeStepUpdate, StepID: stepID, Status: status, Message: message}
}

// ErrorEvent builds a terminal error frame. stepID names the step the
// pipeline died in, or is empty for failures outside any step.
func ErrorEvent(stepID, message string) ProgressEvent {
	return ProgressEvent{Type: EventTypeError, StepID: stepID, Message: message}
}

// FinalDataEvent builds the terminal success frame.
func FinalDataEvent(data FinalData, message string) ProgressEvent {
	return ProgressEvent{Type: EventTypeFinalData, Message: message, Data: &data}
}
