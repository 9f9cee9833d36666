package stream

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/pitch-assistant-team/pitch-assistant/internal/domain/entities"
)

// chunkReader yields at most n bytes per Read so frame boundaries land
// inside chunks.
type chunkReader struct {
	r io.Reader
	n int
}

func (c *chunkReader) Read(p []byte) (int, error) {
	if len(p) > c.n {
		p = p[:c.n]
	}
	return c.r.Read(p)
}

func slideStepEvent(slideID uuid.UUID, title, status, imageURL string) entities.ProgressEvent {
	return entities.ProgressEvent{
		Type:       entities.EventTypeStepUpdate,
		StepID:     entities.ImageStepID(slideID),
		Status:     status,
		SlideID:    &slideID,
		SlideTitle: title,
		ImageURL:   imageURL,
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	slideID := uuid.New()
	imageURL := "http://storage.local/slide.png"
	events := []entities.ProgressEvent{
		entities.StatusEvent(entities.StepInit, entities.StepInProgress, ""),
		entities.StatusEvent(entities.StepInit, entities.StepCompleted, "Initialization complete."),
		slideStepEvent(slideID, "Opening", entities.StepInProgress, ""),
		slideStepEvent(slideID, "", entities.StepCompleted, imageURL),
		entities.FinalDataEvent(entities.FinalData{
			PresentationID: uuid.New(),
			Slides:         []entities.SlideResult{{ID: slideID, Title: "Opening", Order: 0, ImageURL: &imageURL}},
		}, "Presentation generated successfully!"),
	}

	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	for _, ev := range events {
		if err := enc.Emit(ev); err != nil {
			t.Fatalf("emit failed: %v", err)
		}
	}

	for _, chunk := range []int{1, 3, 7, 4096} {
		dec := NewDecoder(&chunkReader{r: bytes.NewReader(buf.Bytes()), n: chunk})
		for i, want := range events {
			got, err := dec.Next()
			if err != nil {
				t.Fatalf("chunk=%d event %d: %v", chunk, i, err)
			}
			if got.Type != want.Type {
				t.Fatalf("chunk=%d event %d: type %q want %q", chunk, i, got.Type, want.Type)
			}
			if got.StepID != want.StepID || got.Status != want.Status {
				t.Fatalf("chunk=%d event %d: step %q/%q want %q/%q", chunk, i, got.StepID, got.Status, want.StepID, want.Status)
			}
		}
		if _, err := dec.Next(); err != io.EOF {
			t.Fatalf("chunk=%d: expected EOF got %v", chunk, err)
		}
	}
}

func TestDecodeSlidePayloadAndFinalData(t *testing.T) {
	slideID := uuid.New()
	imageURL := "http://storage.local/img.png"

	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	if err := enc.Emit(slideStepEvent(slideID, "Market Size", entities.StepInProgress, "")); err != nil {
		t.Fatalf("emit failed: %v", err)
	}
	if err := enc.Emit(entities.FinalDataEvent(entities.FinalData{
		PresentationID: uuid.New(),
		Slides: []entities.SlideResult{
			{ID: slideID, Title: "Market Size", Order: 0, ImageURL: &imageURL},
			{ID: uuid.New(), Title: "Team", Order: 1, ImageURL: nil},
		},
	}, "Presentation generated successfully!")); err != nil {
		t.Fatalf("emit failed: %v", err)
	}

	dec := NewDecoder(&buf)
	step, err := dec.Next()
	if err != nil {
		t.Fatalf("decode step: %v", err)
	}
	if step.SlideID == nil || *step.SlideID != slideID {
		t.Fatalf("slide id not preserved")
	}
	if step.SlideTitle != "Market Size" {
		t.Fatalf("unexpected title %q", step.SlideTitle)
	}

	final, err := dec.Next()
	if err != nil {
		t.Fatalf("decode final_data: %v", err)
	}
	if final.Type != entities.EventTypeFinalData || final.Data == nil {
		t.Fatalf("unexpected event %+v", final)
	}
	if len(final.Data.Slides) != 2 {
		t.Fatalf("final slide count %d want 2", len(final.Data.Slides))
	}
	if final.Data.Slides[0].ImageURL == nil || *final.Data.Slides[0].ImageURL != imageURL {
		t.Fatalf("image url not preserved: %+v", final.Data.Slides[0])
	}
	if final.Data.Slides[1].ImageURL != nil {
		t.Fatalf("null image url not preserved: %+v", final.Data.Slides[1])
	}
}

func TestDecodeTrailingFrameWithoutBlankLine(t *testing.T) {
	raw := "data: {\"type\":\"step_update\",\"step_id\":\"finalize\",\"status\":\"completed\"}\n"
	dec := NewDecoder(strings.NewReader(raw))

	got, err := dec.Next()
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got.StepID != entities.StepFinalize || got.Status != entities.StepCompleted {
		t.Fatalf("unexpected event %+v", got)
	}
	if _, err := dec.Next(); err != io.EOF {
		t.Fatalf("expected EOF got %v", err)
	}
}

func TestDecodeMultiLineDataFrame(t *testing.T) {
	raw := "data: {\"type\":\"error\",\ndata: \"message\":\"boom\"}\n\n"
	dec := NewDecoder(strings.NewReader(raw))

	got, err := dec.Next()
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got.Type != entities.EventTypeError || got.Message != "boom" {
		t.Fatalf("unexpected event %+v", got)
	}
}
