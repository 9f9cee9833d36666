package generation

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pitch-assistant-team/pitch-assistant/pkg/config"
)

func articlePage(title, body, links string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html><head><title>%s</title></head>
<body>
<article>
<h1>%s</h1>
<p>%s</p>
<p>%s</p>
</article>
%s
</body></html>`, title, title, body, strings.Repeat("More detail about the subject matter to satisfy content extraction. ", 10), links)
}

func crawlerConfig() *config.CrawlerConfig {
	return &config.CrawlerConfig{
		MaxPages:     3,
		MaxDepth:     1,
		MaxChars:     15000,
		FetchTimeout: 5 * time.Second,
	}
}

func TestCrawl_RootAndSameHostLinks(t *testing.T) {
	var hits int64
	mux := http.NewServeMux()
	ts := httptest.NewServer(mux)
	defer ts.Close()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		links := fmt.Sprintf(`<a href="/about">About</a> <a href="%s/offsite">Offsite</a>`, "http://other.invalid")
		fmt.Fprint(w, articlePage("Root Page", "The root body talks about widgets.", links))
	})
	mux.HandleFunc("/about", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		fmt.Fprint(w, articlePage("About Page", "The about body talks about the company.", ""))
	})

	c := NewCrawler(crawlerConfig())
	text, err := c.Crawl(context.Background(), ts.URL+"/")
	if err != nil {
		t.Fatalf("crawl failed: %v", err)
	}

	if !strings.Contains(text, "widgets") {
		t.Fatalf("root content missing: %q", text)
	}
	if !strings.Contains(text, "company") {
		t.Fatalf("linked page content missing: %q", text)
	}
	// Only same-host pages are fetched: root plus /about.
	if got := atomic.LoadInt64(&hits); got != 2 {
		t.Fatalf("fetched %d pages want 2", got)
	}
}

func TestCrawl_PageLimit(t *testing.T) {
	var hits int64
	mux := http.NewServeMux()
	ts := httptest.NewServer(mux)
	defer ts.Close()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		var links strings.Builder
		for i := 0; i < 10; i++ {
			fmt.Fprintf(&links, `<a href="/page%d">Page %d</a> `, i, i)
		}
		fmt.Fprint(w, articlePage("Hub", "Hub body.", links.String()))
	})
	for i := 0; i < 10; i++ {
		path := fmt.Sprintf("/page%d", i)
		title := fmt.Sprintf("Page %d", i)
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt64(&hits, 1)
			fmt.Fprint(w, articlePage(title, "Body text.", ""))
		})
	}

	cfg := crawlerConfig()
	cfg.MaxPages = 3
	c := NewCrawler(cfg)
	if _, err := c.Crawl(context.Background(), ts.URL+"/"); err != nil {
		t.Fatalf("crawl failed: %v", err)
	}

	if got := atomic.LoadInt64(&hits); got != 3 {
		t.Fatalf("fetched %d pages want 3", got)
	}
}

func TestCrawl_OutputCappedAtMaxChars(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, articlePage("Long Page", strings.Repeat("A very long sentence about the topic. ", 500), ""))
	}))
	defer ts.Close()

	cfg := crawlerConfig()
	cfg.MaxChars = 200
	c := NewCrawler(cfg)

	text, err := c.Crawl(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("crawl failed: %v", err)
	}
	if len(text) > 200 {
		t.Fatalf("output length %d exceeds cap", len(text))
	}
}

func TestCrawl_InvalidURL(t *testing.T) {
	c := NewCrawler(crawlerConfig())

	if _, err := c.Crawl(context.Background(), "ftp://example.com/file"); err == nil {
		t.Fatalf("expected error for non-http scheme")
	}
	if _, err := c.Crawl(context.Background(), "just some text"); err == nil {
		t.Fatalf("expected error for non-URL input")
	}
}

func TestCrawl_UnreachableHost(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	c := NewCrawler(crawlerConfig())
	if _, err := c.Crawl(context.Background(), ts.URL); err == nil {
		t.Fatalf("expected error when no page yields content")
	}
}
