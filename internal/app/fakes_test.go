package app

import (
	"context"
	"errors"
	"sort"

	"github.com/yourusername/clipgenius-go/internal/domain"
)

// fakeExtractor implements domain.MediaExtractor for testing
type fakeExtractor struct {
	metadata    map[string]*domain.VideoMetadata
	formats     []domain.FormatDescriptor
	downloadErr map[string]error
	subsErr     error
	thumbErr    error
	panicOn     string

	downloads     []string
	options       []domain.DownloadOptions
	subtitleCalls []string
	subtitleLangs []string
	thumbCalls    []string
}

func newFakeExtractor() *fakeExtractor {
	return &fakeExtractor{
		metadata:    make(map[string]*domain.VideoMetadata),
		downloadErr: make(map[string]error),
	}
}

func (f *fakeExtractor) FetchMetadata(_ context.Context, url string) (*domain.VideoMetadata, error) {
	if f.panicOn == url {
		panic("extractor exploded")
	}
	meta, ok := f.metadata[url]
	if !ok {
		return nil, errors.New("Video unavailable")
	}
	return meta, nil
}

func (f *fakeExtractor) ListFormats(_ context.Context, url string) ([]domain.FormatDescriptor, error) {
	if f.formats == nil {
		return nil, errors.New("no formats")
	}
	return f.formats, nil
}

func (f *fakeExtractor) Download(_ context.Context, url string, opts domain.DownloadOptions) error {
	if f.panicOn == url {
		panic("extractor exploded")
	}
	f.downloads = append(f.downloads, url)
	f.options = append(f.options, opts)
	if opts.Progress != nil {
		opts.Progress(512, 1024)
		opts.Progress(1024, 1024)
	}
	return f.downloadErr[url]
}

func (f *fakeExtractor) DownloadSubtitles(_ context.Context, url string, languages []string) error {
	f.subtitleCalls = append(f.subtitleCalls, url)
	f.subtitleLangs = languages
	return f.subsErr
}

func (f *fakeExtractor) DownloadThumbnail(_ context.Context, url string) error {
	f.thumbCalls = append(f.thumbCalls, url)
	return f.thumbErr
}

// fakeCompleter implements domain.Completer for testing
type fakeCompleter struct {
	available bool
	reply     string
	err       error
	prompts   []string
	opts      []domain.CompletionOptions
}

func (f *fakeCompleter) Available() bool { return f.available }

func (f *fakeCompleter) Complete(_ context.Context, prompt string, opts domain.CompletionOptions) (string, error) {
	f.prompts = append(f.prompts, prompt)
	f.opts = append(f.opts, opts)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

// fakeLinkSource implements domain.LinkSource for testing
type fakeLinkSource struct {
	links []string
	pages []string
}

func (f *fakeLinkSource) ExtractVideoLinks(_ context.Context, pageURL string) []string {
	f.pages = append(f.pages, pageURL)
	return f.links
}

// memHistoryRepo implements domain.HistoryRepository for testing
type memHistoryRepo struct {
	records map[string]*domain.DownloadRecord
	order   []string
	updates int
}

func newMemHistoryRepo() *memHistoryRepo {
	return &memHistoryRepo{records: make(map[string]*domain.DownloadRecord)}
}

func (m *memHistoryRepo) Create(record *domain.DownloadRecord) error {
	copied := *record
	m.records[record.ID] = &copied
	m.order = append(m.order, record.ID)
	return nil
}

func (m *memHistoryRepo) Update(record *domain.DownloadRecord) error {
	copied := *record
	m.records[record.ID] = &copied
	m.updates++
	return nil
}

func (m *memHistoryRepo) FindByID(id string) (*domain.DownloadRecord, error) {
	if r, ok := m.records[id]; ok {
		return r, nil
	}
	return nil, errors.New("not found")
}

func (m *memHistoryRepo) FindAll(status domain.DownloadStatus, limit int) ([]*domain.DownloadRecord, error) {
	var out []*domain.DownloadRecord
	for i := len(m.order) - 1; i >= 0; i-- {
		r := m.records[m.order[i]]
		if status != "" && r.Status != status {
			continue
		}
		out = append(out, r)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *memHistoryRepo) FindByBatch(batchID string) ([]*domain.DownloadRecord, error) {
	var out []*domain.DownloadRecord
	for _, id := range m.order {
		if r := m.records[id]; r.BatchID == batchID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memHistoryRepo) GetStats() (*domain.DownloadStats, error) {
	stats := &domain.DownloadStats{}
	for _, r := range m.records {
		stats.Total++
		switch r.Status {
		case domain.StatusQueued:
			stats.Queued++
		case domain.StatusProcessing:
			stats.Processing++
		case domain.StatusCompleted:
			stats.Completed++
		case domain.StatusFailed:
			stats.Failed++
		}
	}
	return stats, nil
}

func (m *memHistoryRepo) statuses() []string {
	var out []string
	for _, r := range m.records {
		out = append(out, string(r.Status))
	}
	sort.Strings(out)
	return out
}

func testDownloadConfig(t interface{ TempDir() string }) *domain.DownloadConfig {
	config := domain.DefaultConfig().Download
	config.OutputDir = t.TempDir()
	return &config
}

func sampleMetadata() *domain.VideoMetadata {
	return &domain.VideoMetadata{
		ID:           "abc",
		Title:        domain.StringPtr("Amazing Video!! #1"),
		Uploader:     domain.StringPtr("Joe Blow Channel Extra Long Name Here"),
		Duration:     domain.IntPtr(125),
		ViewCount:    domain.Int64Ptr(1234567),
		Description:  domain.StringPtr("A video about amazing things."),
		Thumbnail:    domain.StringPtr("https://i.ytimg.com/vi/abc/hq.jpg"),
		HasSubtitles: true,
	}
}
