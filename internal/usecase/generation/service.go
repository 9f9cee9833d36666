package generation

import (
	"context"
	"fmt"
	"sync"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pitch-assistant-team/pitch-assistant/internal/domain/entities"
	"github.com/pitch-assistant-team/pitch-assistant/internal/domain/repositories"
	"github.com/pitch-assistant-team/pitch-assistant/pkg/config"
)

// Sink receives pipeline progress events. The SSE encoder implements it
// for streaming responses; tests collect events in memory.
type Sink interface {
	Emit(event entities.ProgressEvent) error
}

// ChatModel is the LLM collaborator used for slide content.
type ChatModel interface {
	ChatJSON(ctx context.Context, system, user string, temperature float32) (string, error)
}

// ImageModel renders slide images from prompts.
type ImageModel interface {
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)
}

// ImageStore persists rendered images and returns their public URL.
type ImageStore interface {
	UploadSlideImage(ctx context.Context, presentationID, slideID uuid.UUID, data []byte) (string, error)
}

// Service runs the slide generation pipeline
type Service struct {
	presentationRepo repositories.PresentationRepository
	slideRepo        repositories.SlideRepository
	chat             ChatModel
	images           ImageModel
	store            ImageStore
	resolver         *Resolver
	parser           *Parser
	cfg              *config.Config
	logger           *zap.Logger
}

// NewService constructs the generation service
func NewService(
	presentationRepo repositories.PresentationRepository,
	slideRepo repositories.SlideRepository,
	chat ChatModel,
	images ImageModel,
	store ImageStore,
	resolver *Resolver,
	cfg *config.Config,
	logger *zap.Logger,
) *Service {
	return &Service{
		presentationRepo: presentationRepo,
		slideRepo:        slideRepo,
		chat:             chat,
		images:           images,
		store:            store,
		resolver:         resolver,
		parser:           NewParser(),
		cfg:              cfg,
		logger:           logger,
	}
}

// savedSlide pairs a persisted slide with the image prompt that came with
// its draft. Image prompts are never persisted.
type savedSlide struct {
	id       uuid.UUID
	title    string
	content  string
	order    int
	prompt   string
	imageURL *string
}

// Generate runs the full pipeline, emitting progress to the sink. The
// returned error mirrors the terminal error event; a nil return means the
// final_data event was emitted.
func (s *Service) Generate(ctx context.Context, userID *uuid.UUID, req entities.GenerationRequest, sink Sink) error {
	// Stage 1: init. No identity means no pipeline.
	s.emit(sink, entities.StatusEvent(entities.StepInit, entities.StepInProgress, "Initializing generation..."))
	if userID == nil {
		return s.fail(sink, entities.StepInit, fmt.Errorf("user authentication failed"))
	}
	if !req.Mode.Valid() {
		return s.fail(sink, entities.StepInit, fmt.Errorf("invalid mode selected"))
	}
	presentation := entities.NewPresentation(req.Title, userID)
	presentation.Audience = req.Audience
	presentation.Goal = req.Goal
	if err := s.presentationRepo.Create(ctx, presentation); err != nil {
		return s.fail(sink, entities.StepInit, fmt.Errorf("create presentation: %w", err))
	}
	s.emit(sink, entities.StatusEvent(entities.StepInit, entities.StepCompleted, "Initialization complete."))

	// Stage 2: resolve input, crawling URLs in summary mode
	resolved := entities.ResolvedInput{Text: req.Input, SourceKind: entities.SourceLiteral}
	if req.Mode == entities.ModeSummary {
		s.emit(sink, entities.StatusEvent(entities.StepURLCrawl, entities.StepInProgress, "Checking for URL and fetching content if needed..."))
		resolved = s.resolver.Resolve(ctx, req.Mode, req.Input)
		if resolved.SourceKind == entities.SourceCrawled {
			s.emit(sink, entities.StatusEvent(entities.StepURLCrawl, entities.StepCompleted, "URL content fetched."))
		} else {
			s.emit(sink, entities.StatusEvent(entities.StepURLCrawl, entities.StepCompleted, "Proceeding with input as text."))
		}
	}

	// Stage 3: prompt setup
	s.emit(sink, entities.StatusEvent(entities.StepPromptSetup, entities.StepInProgress, "Setting up generation prompts..."))
	slideCount := req.SlideCount
	if slideCount <= 0 {
		slideCount = s.cfg.Generation.DefaultSlideCount
	}
	if slideCount > s.cfg.Generation.MaxSlideCount {
		slideCount = s.cfg.Generation.MaxSlideCount
	}
	prompts, err := BuildPrompts(req, resolved, slideCount)
	if err != nil {
		return s.fail(sink, entities.StepPromptSetup, err)
	}
	s.emit(sink, entities.StatusEvent(entities.StepPromptSetup, entities.StepCompleted, "Prompts configured."))

	// Stage 4: slide content from the LLM, with retry on transient failures
	s.emit(sink, entities.StatusEvent(entities.StepLLMContent, entities.StepInProgress, "Generating slide content with AI..."))
	var raw string
	operation := func() error {
		var chatErr error
		raw, chatErr = s.chat.ChatJSON(ctx, prompts.System, prompts.User, 0.5)
		return chatErr
	}
	if err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 2), ctx)); err != nil {
		return s.fail(sink, entities.StepLLMContent, fmt.Errorf("generate slide content: %w", err))
	}

	outcome, err := s.parser.ParseSlides(raw)
	if err != nil {
		return s.fail(sink, entities.StepLLMContent, fmt.Errorf("parse slide content: %w", err))
	}
	if s.logger != nil {
		s.logger.Info("🧩 Parsed slide drafts",
			zap.Int("count", len(outcome.Slides)),
			zap.String("strategy", outcome.Strategy))
	}
	s.emit(sink, entities.StatusEvent(entities.StepLLMContent, entities.StepCompleted, "Slide content generated."))

	// Stage 5: persist slide skeletons, ordered by position among the
	// drafts that survived validation
	s.emit(sink, entities.StatusEvent(entities.StepSaveSlides, entities.StepInProgress, "Saving slide structure..."))
	saved := make([]*savedSlide, 0, len(outcome.Slides))
	for i, draft := range outcome.Slides {
		slide := entities.NewSlide(presentation.ID, draft.Title, draft.Content, i)
		if err := s.slideRepo.Create(ctx, slide); err != nil {
			if s.logger != nil {
				s.logger.Warn("⚠️ Failed to save slide", zap.Int("order", i), zap.Error(err))
			}
			continue
		}
		saved = append(saved, &savedSlide{
			id:      slide.ID,
			title:   slide.Title,
			content: slide.Content,
			order:   slide.Order,
			prompt:  draft.ImagePrompt,
		})
	}
	if len(saved) == 0 {
		return s.fail(sink, entities.StepSaveSlides, fmt.Errorf("no valid slides could be saved"))
	}
	s.emit(sink, entities.StatusEvent(entities.StepSaveSlides, entities.StepCompleted, "Slide structure saved."))

	// Stage 6: images; per-slide failures never abort the run
	s.generateImages(ctx, presentation.ID, saved, sink)

	// Stage 7: finalize with the full slide list, null image URLs where
	// generation failed
	s.emit(sink, entities.StatusEvent(entities.StepFinalize, entities.StepInProgress, "Finalizing presentation..."))
	results := make([]entities.SlideResult, 0, len(saved))
	for _, sl := range saved {
		results = append(results, entities.SlideResult{
			ID:       sl.id,
			Title:    sl.title,
			Content:  sl.content,
			Order:    sl.order,
			ImageURL: sl.imageURL,
		})
	}
	s.emit(sink, entities.FinalDataEvent(entities.FinalData{
		PresentationID: presentation.ID,
		Slides:         results,
	}, "Presentation generated successfully!"))
	s.emit(sink, entities.StatusEvent(entities.StepFinalize, entities.StepCompleted, "Presentation ready!"))

	return nil
}

// generateImages renders slide images with bounded concurrency. Events
// stay tagged by slide, so the client can match them regardless of
// completion order. Results land on the savedSlide entries themselves.
func (s *Service) generateImages(ctx context.Context, presentationID uuid.UUID, slides []*savedSlide, sink Sink) {
	s.emit(sink, entities.StatusEvent(entities.StepImagesOverall, entities.StepInProgress,
		fmt.Sprintf("Starting image generation for %d slides...", len(slides))))

	workers := s.cfg.Generation.ImageWorkers
	if workers < 1 {
		workers = 1
	}
	semaphore := make(chan struct{}, workers)
	var wg sync.WaitGroup
	var mu sync.Mutex // serializes sink writes from workers

	emit := func(event entities.ProgressEvent) {
		mu.Lock()
		defer mu.Unlock()
		s.emit(sink, event)
	}

	for i, slide := range slides {
		wg.Add(1)
		go func(idx int, sl *savedSlide) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			stepID := entities.ImageStepID(sl.id)
			emit(entities.ProgressEvent{
				Type:       entities.EventTypeStepUpdate,
				StepID:     stepID,
				Status:     entities.StepInProgress,
				Message:    fmt.Sprintf("Generating image %d/%d for slide: %q...", idx+1, len(slides), sl.title),
				SlideID:    &sl.id,
				SlideTitle: sl.title,
			})

			imageURL, err := s.renderAndStore(ctx, presentationID, sl)
			if err != nil {
				if s.logger != nil {
					s.logger.Warn("⚠️ Image generation failed",
						zap.String("slide_id", sl.id.String()),
						zap.Error(err))
				}
				emit(entities.ProgressEvent{
					Type:    entities.EventTypeStepUpdate,
					StepID:  stepID,
					Status:  entities.StepError,
					Message: fmt.Sprintf("Failed to generate image for %q. Skipping.", sl.title),
					SlideID: &sl.id,
				})
				return
			}

			sl.imageURL = &imageURL
			emit(entities.ProgressEvent{
				Type:     entities.EventTypeStepUpdate,
				StepID:   stepID,
				Status:   entities.StepCompleted,
				Message:  fmt.Sprintf("Image for %q ready.", sl.title),
				SlideID:  &sl.id,
				ImageURL: imageURL,
			})
		}(i, slide)
	}
	wg.Wait()

	s.emit(sink, entities.StatusEvent(entities.StepImagesOverall, entities.StepCompleted, "Image generation process finished."))
}

func (s *Service) renderAndStore(ctx context.Context, presentationID uuid.UUID, sl *savedSlide) (string, error) {
	data, err := s.images.GenerateImage(ctx, sl.prompt)
	if err != nil {
		return "", err
	}
	imageURL, err := s.store.UploadSlideImage(ctx, presentationID, sl.id, data)
	if err != nil {
		return "", err
	}
	if err := s.slideRepo.UpdateImageURL(ctx, sl.id, imageURL); err != nil {
		return "", err
	}
	return imageURL, nil
}

// fail emits the terminal error event, tagged with the step the pipeline
// died in, and returns the error for the handler to log.
func (s *Service) fail(sink Sink, stepID string, err error) error {
	if s.logger != nil {
		s.logger.Error("❌ Generation pipeline failed",
			zap.String("step", stepID),
			zap.Error(err))
	}
	s.emit(sink, entities.ErrorEvent(stepID, err.Error()))
	return err
}

func (s *Service) emit(sink Sink, event entities.ProgressEvent) {
	if err := sink.Emit(event); err != nil && s.logger != nil {
		s.logger.Warn("⚠️ Failed to emit progress event", zap.Error(err))
	}
}
