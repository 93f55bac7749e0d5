package infrastructure

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/clipgenius-go/internal/domain"
)

const samplePage = `<html><body>
<a href="https://www.youtube.com/watch?v=abc123">watch</a>
<a href="/about">about</a>
<a href="https://example.com/video.mp4">mp4</a>
<iframe src="https://player.vimeo.com/video/76979871"></iframe>
<iframe src="//www.dailymotion.com/embed/video/x7tgad0"></iframe>
<p>Also see https://www.youtube.com/watch?v=abc123 and https://youtu.be/xyz789 and
https://www.twitch.tv/videos/123456.</p>
</body></html>`

func mustDoc(t *testing.T, html string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestLinksFromAnchors(t *testing.T) {
	base, _ := url.Parse("https://blog.example.com/post")
	doc := mustDoc(t, `<a href="https://youtu.be/a1">x</a><a href="/watch">y</a><a>z</a>`)

	assert.Equal(t, []string{"https://youtu.be/a1"}, LinksFromAnchors(doc, base))
}

func TestLinksFromAnchors_RelativeOnVideoHost(t *testing.T) {
	base, _ := url.Parse("https://www.youtube.com/channel/x")
	doc := mustDoc(t, `<a href="/watch?v=rel1">rel</a>`)

	assert.Equal(t, []string{"https://www.youtube.com/watch?v=rel1"}, LinksFromAnchors(doc, base))
}

func TestLinksFromFrames(t *testing.T) {
	base, _ := url.Parse("https://blog.example.com/post")
	doc := mustDoc(t, `<iframe src="//player.vimeo.com/video/1"></iframe><iframe src="/ads"></iframe>`)

	assert.Equal(t, []string{"https://player.vimeo.com/video/1"}, LinksFromFrames(doc, base))
}

func TestLinksFromText(t *testing.T) {
	text := `HTTPS://YOUTU.BE/Up1 https://vimeo.com/42 https://www.dailymotion.com/video/x1
	https://twitch.tv/videos/7 https://example.com/watch?v=1`

	links := LinksFromText(text)

	assert.ElementsMatch(t, []string{
		"HTTPS://YOUTU.BE/Up1",
		"https://vimeo.com/42",
		"https://www.dailymotion.com/video/x1",
		"https://twitch.tv/videos/7",
	}, links)
}

func TestLinkExtractor_ExtractVideoLinks(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(samplePage))
	}))
	defer server.Close()

	extractor := NewLinkExtractor(&domain.BatchConfig{FetchTimeout: time.Second, UserAgent: "test-agent"}, nil)

	links := extractor.ExtractVideoLinks(context.Background(), server.URL+"/page")

	assert.Equal(t, "test-agent", gotUA)
	assert.Equal(t, []string{
		"http://www.dailymotion.com/embed/video/x7tgad0",
		"https://player.vimeo.com/video/76979871",
		"https://www.twitch.tv/videos/123456",
		"https://www.youtube.com/watch?v=abc123",
		"https://youtu.be/xyz789",
	}, links)
}

func TestLinkExtractor_DedupesAcrossPasses(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<a href="https://youtu.be/same">a</a> https://youtu.be/same`))
	}))
	defer server.Close()

	extractor := NewLinkExtractor(&domain.BatchConfig{}, nil)

	assert.Equal(t, []string{"https://youtu.be/same"}, extractor.ExtractVideoLinks(context.Background(), server.URL))
}

func TestLinkExtractor_FetchFailures(t *testing.T) {
	notFound := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer notFound.Close()

	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`https://youtu.be/late`))
	}))
	defer slow.Close()

	extractor := NewLinkExtractor(&domain.BatchConfig{FetchTimeout: 50 * time.Millisecond}, nil)
	ctx := context.Background()

	assert.Empty(t, extractor.ExtractVideoLinks(ctx, notFound.URL))
	assert.Empty(t, extractor.ExtractVideoLinks(ctx, slow.URL))
	assert.Empty(t, extractor.ExtractVideoLinks(ctx, "http://127.0.0.1:1/unreachable"))

	links := extractor.ExtractVideoLinks(ctx, "::bad url")
	assert.NotNil(t, links)
	assert.Empty(t, links)
}
