package generation

import (
	"context"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/pitch-assistant-team/pitch-assistant/internal/domain/entities"
	"github.com/pitch-assistant-team/pitch-assistant/internal/infrastructure/cache"
)

// SourceCrawler is the crawling collaborator of the resolver.
type SourceCrawler interface {
	Crawl(ctx context.Context, rawURL string) (string, error)
}

// Resolver turns the raw request input into the text the prompt is built
// from. In summary mode a URL input is crawled, with results cached by
// URL; everything else passes through untouched. A failed crawl falls
// back to treating the input as literal text.
type Resolver struct {
	crawler  SourceCrawler
	store    cache.Store
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewResolver creates a resolver
func NewResolver(crawler SourceCrawler, store cache.Store, cacheTTL time.Duration, logger *zap.Logger) *Resolver {
	return &Resolver{
		crawler:  crawler,
		store:    store,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// Resolve produces the prompt input for the request
func (r *Resolver) Resolve(ctx context.Context, mode entities.GenerationMode, input string) entities.ResolvedInput {
	if mode != entities.ModeSummary || !isCrawlableURL(input) {
		return entities.ResolvedInput{Text: input, SourceKind: entities.SourceLiteral}
	}

	cacheKey := "crawl:" + input
	if r.store != nil {
		if cached, ok := r.store.Get(ctx, cacheKey); ok {
			if r.logger != nil {
				r.logger.Info("📦 Using cached source material", zap.String("url", input))
			}
			return entities.ResolvedInput{Text: cached, SourceKind: entities.SourceCrawled}
		}
	}

	text, err := r.crawler.Crawl(ctx, input)
	if err != nil {
		if r.logger != nil {
			r.logger.Warn("⚠️ Crawl failed, treating input as text",
				zap.String("url", input),
				zap.Error(err))
		}
		return entities.ResolvedInput{Text: input, SourceKind: entities.SourceLiteral}
	}

	if r.store != nil {
		if err := r.store.Set(ctx, cacheKey, text, r.cacheTTL); err != nil && r.logger != nil {
			r.logger.Warn("⚠️ Failed to cache crawled content", zap.Error(err))
		}
	}

	return entities.ResolvedInput{Text: text, SourceKind: entities.SourceCrawled}
}

func isCrawlableURL(input string) bool {
	u, err := url.Parse(input)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
