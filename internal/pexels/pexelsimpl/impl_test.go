package pexelsimpl

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/orgball2608/wallify-bot/internal/metrics"
	"github.com/orgball2608/wallify-bot/internal/pexels"
	"github.com/orgball2608/wallify-bot/pkg/config"
	"github.com/orgball2608/wallify-bot/pkg/errors"
	"github.com/orgball2608/wallify-bot/pkg/logger"
	"github.com/orgball2608/wallify-bot/pkg/retry"
	"github.com/prometheus/client_golang/prometheus"
)

func loadFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatalf("loading fixture %s: %v", name, err)
	}
	return data
}

func newTestClient(t *testing.T, baseURL, apiKey string) *PexelsImpl {
	t.Helper()
	cfg := &config.Config{}
	cfg.Pexels.BaseURL = baseURL
	cfg.Pexels.APIKey = apiKey
	cfg.Pexels.Timeout = 2 * time.Second

	c := New(Opts{
		Config:  cfg,
		Logger:  logger.New(logger.Opts{Env: "production", Level: "error", Writer: io.Discard}),
		Metrics: metrics.New(prometheus.NewRegistry()),
	})
	c.retryCfg = retry.Config{
		MaxRetries:      2,
		InitialInterval: time.Millisecond,
		MaxInterval:     2 * time.Millisecond,
		Multiplier:      1.5,
	}
	return c
}

func TestSearch(t *testing.T) {
	var gotAuth, rawQuery string
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		gotAuth = r.Header.Get("Authorization")
		rawQuery = r.URL.RawQuery
		q := r.URL.Query()
		gotQuery = map[string]string{
			"query":       q.Get("query"),
			"orientation": q.Get("orientation"),
			"per_page":    q.Get("per_page"),
			"page":        q.Get("page"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(loadFixture(t, "search_wallpaper.json"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL+"/", "test-key")
	page, err := c.Search(context.Background(), pexels.SearchParams{
		Query:       "night sky & stars",
		Orientation: "portrait",
		PerPage:     30,
		Page:        2,
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if gotAuth != "test-key" {
		t.Errorf("Authorization = %q, want raw API key", gotAuth)
	}
	if want := "query=night%20sky%20%26%20stars&orientation=portrait&per_page=30&page=2"; rawQuery != want {
		t.Errorf("raw query = %q, want %q", rawQuery, want)
	}
	want := map[string]string{"query": "night sky & stars", "orientation": "portrait", "per_page": "30", "page": "2"}
	for k, v := range want {
		if gotQuery[k] != v {
			t.Errorf("query param %s = %q, want %q", k, gotQuery[k], v)
		}
	}

	if len(page.Photos) != 2 {
		t.Fatalf("expected 2 photos, got %d", len(page.Photos))
	}
	if !page.HasNext() {
		t.Error("expected continuation")
	}
	p := page.Photos[1]
	if p.ID != 1323550 || p.Width != 400 || p.Height != 800 {
		t.Errorf("unexpected photo: %+v", p)
	}
	if p.Photographer != "Simon Berger" {
		t.Errorf("photographer = %q", p.Photographer)
	}
	if p.Src.Portrait == "" || p.Src.Original == "" {
		t.Errorf("src not mapped: %+v", p.Src)
	}
}

func TestSearchDefaultsPaging(t *testing.T) {
	var perPage, pageNum string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		perPage = r.URL.Query().Get("per_page")
		pageNum = r.URL.Query().Get("page")
		w.Write([]byte(`{"page":1,"per_page":30,"photos":[]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, "k")
	page, err := c.Search(context.Background(), pexels.SearchParams{Query: "x", Orientation: "landscape"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if perPage != "30" || pageNum != "1" {
		t.Errorf("per_page=%q page=%q", perPage, pageNum)
	}
	if page.HasNext() || len(page.Photos) != 0 {
		t.Errorf("expected empty terminal page, got %+v", page)
	}
}

func TestSearchMissingCredentialSendsNoRequest(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, "   ")
	_, err := c.Search(context.Background(), pexels.SearchParams{Query: "x"})
	if errors.GetCode(err) != errors.CodeMissingCredential {
		t.Fatalf("code = %q, want %q (err %v)", errors.GetCode(err), errors.CodeMissingCredential, err)
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Errorf("expected no upstream request, got %d", hits)
	}
}

func TestSearchUnauthorizedIsNotRetried(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, "bad-key")
	_, err := c.Search(context.Background(), pexels.SearchParams{Query: "x"})
	if errors.GetCode(err) != errors.CodeAuthRejected {
		t.Fatalf("code = %q, want %q", errors.GetCode(err), errors.CodeAuthRejected)
	}
	if !errors.IsUnauthorized(err) {
		t.Error("expected IsUnauthorized")
	}
	if atomic.LoadInt32(&hits) != 1 {
		t.Errorf("expected exactly 1 request, got %d", hits)
	}
}

func TestSearchServerErrorRetriedThenReported(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, "k")
	_, err := c.Search(context.Background(), pexels.SearchParams{Query: "x"})
	if errors.GetCode(err) != errors.CodeUpstream {
		t.Fatalf("code = %q, want %q", errors.GetCode(err), errors.CodeUpstream)
	}
	if errors.GetStatus(err) != http.StatusBadGateway {
		t.Errorf("status = %d", errors.GetStatus(err))
	}
	if errors.GetMessage(err) != "Bad Gateway" {
		t.Errorf("message = %q, want status text", errors.GetMessage(err))
	}
	if atomic.LoadInt32(&hits) != 3 {
		t.Errorf("expected 3 attempts, got %d", hits)
	}
}

func TestSearchClientErrorNotRetried(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, "k")
	_, err := c.Search(context.Background(), pexels.SearchParams{Query: "x"})
	if errors.GetCode(err) != errors.CodeUpstream {
		t.Fatalf("code = %q", errors.GetCode(err))
	}
	if atomic.LoadInt32(&hits) != 1 {
		t.Errorf("expected 1 attempt, got %d", hits)
	}
}

func TestSearchMalformedBodyIsNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"photos": [`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, "k")
	_, err := c.Search(context.Background(), pexels.SearchParams{Query: "x"})
	if errors.GetCode(err) != errors.CodeNetwork {
		t.Fatalf("code = %q, want %q", errors.GetCode(err), errors.CodeNetwork)
	}
}

func TestSearchUnreachableIsNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := newTestClient(t, url, "k")
	_, err := c.Search(context.Background(), pexels.SearchParams{Query: "x"})
	if errors.GetCode(err) != errors.CodeNetwork {
		t.Fatalf("code = %q, want %q", errors.GetCode(err), errors.CodeNetwork)
	}
}

func TestSearchRejectsOversizedBody(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write(make([]byte, maxBodyBytes+1))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, "test-key")
	_, err := c.Search(context.Background(), pexels.SearchParams{Query: "sky"})
	if err == nil {
		t.Fatal("expected an error for an oversized body")
	}
	if got := errors.GetCode(err); got != errors.CodeNetwork {
		t.Errorf("code = %q, want %q", got, errors.CodeNetwork)
	}
	if got := errors.GetMessage(err); got != "response body exceeds 4194304 bytes" {
		t.Errorf("message = %q", got)
	}
	if hits.Load() != 1 {
		t.Errorf("requests = %d, oversized bodies should not be retried", hits.Load())
	}
}
