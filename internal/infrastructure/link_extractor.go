package infrastructure

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/yourusername/clipgenius-go/internal/domain"
	"go.uber.org/zap"
)

const maxPageBytes = 10 << 20

// Plain-text patterns for video links that are not in an href or src
var textLinkPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)https?://(?:www\.)?youtube\.com/watch\?v=[\w-]+`),
	regexp.MustCompile(`(?i)https?://youtu\.be/[\w-]+`),
	regexp.MustCompile(`(?i)https?://(?:www\.)?vimeo\.com/\d+`),
	regexp.MustCompile(`(?i)https?://(?:www\.)?dailymotion\.com/video/[\w-]+`),
	regexp.MustCompile(`(?i)https?://(?:www\.)?twitch\.tv/videos/\d+`),
}

// LinkExtractor implements domain.LinkSource by scanning a webpage
type LinkExtractor struct {
	client    *http.Client
	userAgent string
	logger    *zap.Logger
}

// NewLinkExtractor creates a link extractor whose single page fetch is
// bounded by config.FetchTimeout
func NewLinkExtractor(config *domain.BatchConfig, log *zap.Logger) *LinkExtractor {
	if log == nil {
		log = zap.NewNop()
	}
	timeout := config.FetchTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = domain.DefaultUserAgent
	}

	return &LinkExtractor{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		logger:    log,
	}
}

// ExtractVideoLinks fetches pageURL once and returns the distinct video
// links found in anchors, iframes and the raw page text, sorted.
// Any fetch failure is logged and yields an empty slice.
func (x *LinkExtractor) ExtractVideoLinks(ctx context.Context, pageURL string) []string {
	body, err := x.fetch(ctx, pageURL)
	if err != nil {
		x.logger.Warn("Failed to fetch webpage", zap.String("url", pageURL), zap.Error(err))
		return []string{}
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return []string{}
	}

	var found []string
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		x.logger.Warn("Failed to parse webpage", zap.String("url", pageURL), zap.Error(err))
	} else {
		found = append(found, LinksFromAnchors(doc, base)...)
		found = append(found, LinksFromFrames(doc, base)...)
	}
	found = append(found, LinksFromText(string(body))...)

	links := uniqueSorted(found)
	x.logger.Debug("Extracted video links", zap.String("url", pageURL), zap.Int("count", len(links)))
	return links
}

func (x *LinkExtractor) fetch(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", x.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := x.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
}

// LinksFromAnchors returns every a[href] that resolves to a video URL
func LinksFromAnchors(doc *goquery.Document, base *url.URL) []string {
	return linksFromAttr(doc, base, "a[href]", "href")
}

// LinksFromFrames returns every iframe[src] that resolves to a video URL
func LinksFromFrames(doc *goquery.Document, base *url.URL) []string {
	return linksFromAttr(doc, base, "iframe[src]", "src")
}

func linksFromAttr(doc *goquery.Document, base *url.URL, selector, attr string) []string {
	var links []string
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		raw, ok := s.Attr(attr)
		if !ok {
			return
		}
		ref, err := url.Parse(strings.TrimSpace(raw))
		if err != nil {
			return
		}
		full := base.ResolveReference(ref).String()
		if domain.IsLikelyVideoURL(full) {
			links = append(links, full)
		}
	})
	return links
}

// LinksFromText matches well-known video URL shapes in raw text
func LinksFromText(text string) []string {
	var links []string
	for _, re := range textLinkPatterns {
		for _, m := range re.FindAllString(text, -1) {
			if domain.IsLikelyVideoURL(m) {
				links = append(links, m)
			}
		}
	}
	return links
}

func uniqueSorted(links []string) []string {
	seen := make(map[string]struct{}, len(links))
	out := make([]string, 0, len(links))
	for _, l := range links {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}
