package generation

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html"

	"github.com/pitch-assistant-team/pitch-assistant/pkg/config"
)

// Crawler fetches a page and a bounded set of same-host links, extracts
// the main content of each and returns it as markdown. Limits: at most
// MaxPages pages, links followed one level deep, output capped at
// MaxChars characters.
type Crawler struct {
	client    *http.Client
	converter *md.Converter
	maxPages  int
	maxDepth  int
	maxChars  int
}

// NewCrawler creates a crawler with the configured limits
func NewCrawler(cfg *config.CrawlerConfig) *Crawler {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())

	return &Crawler{
		client:    &http.Client{Timeout: cfg.FetchTimeout},
		converter: converter,
		maxPages:  cfg.MaxPages,
		maxDepth:  cfg.MaxDepth,
		maxChars:  cfg.MaxChars,
	}
}

type crawlTarget struct {
	url   *url.URL
	depth int
}

// Crawl fetches the URL and its same-host links breadth-first, returning
// the combined markdown. An error means not even the root page yielded
// content.
func (c *Crawler) Crawl(ctx context.Context, rawURL string) (string, error) {
	root, err := url.Parse(rawURL)
	if err != nil || (root.Scheme != "http" && root.Scheme != "https") {
		return "", fmt.Errorf("not a crawlable URL: %s", rawURL)
	}

	var combined strings.Builder
	visited := map[string]bool{}
	queue := []crawlTarget{{url: root, depth: 0}}
	pages := 0

	for len(queue) > 0 && pages < c.maxPages && combined.Len() < c.maxChars {
		target := queue[0]
		queue = queue[1:]

		key := target.url.String()
		if visited[key] {
			continue
		}
		visited[key] = true

		body, err := c.fetch(ctx, target.url)
		if err != nil {
			continue
		}
		pages++

		if markdown := c.extract(body, target.url); markdown != "" {
			combined.WriteString(markdown)
			combined.WriteString("\n\n")
		}

		if target.depth < c.maxDepth {
			for _, link := range discoverLinks(body, target.url) {
				if !visited[link.String()] {
					queue = append(queue, crawlTarget{url: link, depth: target.depth + 1})
				}
			}
		}
	}

	result := strings.TrimSpace(combined.String())
	if result == "" {
		return "", fmt.Errorf("no content extracted from %s", rawURL)
	}
	if len(result) > c.maxChars {
		result = result[:c.maxChars]
	}
	return result, nil
}

func (c *Crawler) fetch(ctx context.Context, u *url.URL) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "pitch-assistant-crawler/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", u, resp.StatusCode)
	}

	// One extra byte over the cap is enough to know the page was bigger.
	return io.ReadAll(io.LimitReader(resp.Body, int64(c.maxChars)*4))
}

// extract pulls the main article content out of the page and converts it
// to markdown. Pages readability can't handle fall back to nothing rather
// than dumping raw navigation text into the prompt.
func (c *Crawler) extract(body []byte, pageURL *url.URL) string {
	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil || article.Content == "" {
		return ""
	}

	markdown, err := c.converter.ConvertString(article.Content)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(markdown)
}

// discoverLinks returns same-host links found in the page
func discoverLinks(body []byte, base *url.URL) []*url.URL {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil
	}

	var links []*url.URL
	seen := map[string]bool{}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key != "href" {
					continue
				}
				ref, err := url.Parse(attr.Val)
				if err != nil {
					continue
				}
				resolved := base.ResolveReference(ref)
				resolved.Fragment = ""
				if resolved.Host != base.Host {
					continue
				}
				if resolved.Scheme != "http" && resolved.Scheme != "https" {
					continue
				}
				if !seen[resolved.String()] {
					seen[resolved.String()] = true
					links = append(links, resolved)
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	return links
}
