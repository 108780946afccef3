package pexelsimpl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/orgball2608/wallify-bot/internal/domain"
	"github.com/orgball2608/wallify-bot/internal/metrics"
	"github.com/orgball2608/wallify-bot/internal/pexels"
	"github.com/orgball2608/wallify-bot/pkg/config"
	"github.com/orgball2608/wallify-bot/pkg/errors"
	"github.com/orgball2608/wallify-bot/pkg/logger"
	"github.com/orgball2608/wallify-bot/pkg/retry"
	"go.uber.org/fx"
	"golang.org/x/time/rate"
)

const maxBodyBytes = 4 * 1024 * 1024

type Opts struct {
	fx.In

	Config  *config.Config
	Logger  logger.Logger
	Metrics *metrics.Metrics
}

type PexelsImpl struct {
	client   *http.Client
	limiter  *rate.Limiter
	logger   logger.Logger
	metrics  *metrics.Metrics
	retryCfg retry.Config
	baseURL  string
	apiKey   string
}

func New(opts Opts) *PexelsImpl {
	limit := rate.Inf
	if opts.Config.Pexels.RPS > 0 {
		limit = rate.Limit(opts.Config.Pexels.RPS)
	}

	timeout := opts.Config.Pexels.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &PexelsImpl{
		client:   &http.Client{Timeout: timeout},
		limiter:  rate.NewLimiter(limit, 1),
		logger:   opts.Logger.WithComponent("PexelsClient"),
		metrics:  opts.Metrics,
		retryCfg: retry.DefaultConfig(),
		baseURL:  strings.TrimRight(opts.Config.Pexels.BaseURL, "/"),
		apiKey:   strings.TrimSpace(opts.Config.Pexels.APIKey),
	}
}

var _ pexels.Client = (*PexelsImpl)(nil)

func (p *PexelsImpl) Search(ctx context.Context, params pexels.SearchParams) (*domain.ResultPage, error) {
	if p.apiKey == "" {
		return nil, errors.NewWithCode(errors.CodeMissingCredential, "pexels API key is not configured")
	}

	if params.PerPage <= 0 {
		params.PerPage = pexels.DefaultPerPage
	}
	if params.Page <= 0 {
		params.Page = 1
	}

	reqURL := p.baseURL + "/search?" + searchQuery(params)

	var body []byte
	op := func() error {
		if err := p.limiter.Wait(ctx); err != nil {
			return retry.Permanent(errors.WrapWithCode(err, errors.CodeNetwork, "rate limiter"))
		}

		b, err := p.doRequest(ctx, reqURL)
		if err != nil {
			if isRetryable(err) {
				return err
			}
			return retry.Permanent(err)
		}
		body = b
		return nil
	}

	if err := retry.Do(ctx, p.logger, "PexelsSearch", op, p.retryCfg); err != nil {
		p.logger.Warn("Search failed", "query", params.Query, "page", params.Page, "error", err)
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeNetwork, "parsing search response")
	}

	page := resp.toResultPage()
	p.logger.Debug("Search completed",
		"query", params.Query,
		"orientation", params.Orientation,
		"page", params.Page,
		"photos", len(page.Photos),
		"has_next", page.HasNext())

	return page, nil
}

func (p *PexelsImpl) doRequest(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeNetwork, "building request")
	}
	req.Header.Set("Authorization", p.apiKey)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		p.metrics.ObserveUpstream("0", time.Since(start))
		return nil, errors.WrapWithCode(err, errors.CodeNetwork, "pexels request failed")
	}
	defer safeClose(resp.Body, p.logger)
	p.metrics.ObserveUpstream(strconv.Itoa(resp.StatusCode), time.Since(start))

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		// continue
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, errors.Upstream(errors.CodeAuthRejected, resp.StatusCode,
			"pexels rejected the API key", errors.ErrUnauthorized)
	default:
		return nil, errors.Upstream(errors.CodeUpstream, resp.StatusCode,
			statusText(resp), fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeNetwork, "reading response body")
	}
	if len(body) > maxBodyBytes {
		return nil, errors.Upstream(errors.CodeNetwork, resp.StatusCode,
			fmt.Sprintf("response body exceeds %d bytes", maxBodyBytes), nil)
	}
	return body, nil
}

// searchQuery lists the parameters in query, orientation, per_page, page
// order with spaces as %20.
func searchQuery(params pexels.SearchParams) string {
	return "query=" + encodeComponent(params.Query) +
		"&orientation=" + encodeComponent(params.Orientation) +
		"&per_page=" + strconv.Itoa(params.PerPage) +
		"&page=" + strconv.Itoa(params.Page)
}

func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// isRetryable reports whether another attempt could succeed: transport
// failures, throttling and server errors. A bad body that arrived with a
// response is not retried.
func isRetryable(err error) bool {
	switch errors.GetCode(err) {
	case errors.CodeNetwork:
		return errors.GetStatus(err) == 0
	case errors.CodeUpstream:
		status := errors.GetStatus(err)
		return status == http.StatusTooManyRequests || status >= 500
	default:
		return false
	}
}

// statusText mirrors the status line reason phrase, e.g. "Too Many Requests".
func statusText(resp *http.Response) string {
	if text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode))); text != "" {
		return text
	}
	return http.StatusText(resp.StatusCode)
}

func safeClose(closer io.Closer, log logger.Logger) {
	if err := closer.Close(); err != nil {
		log.Error("Error closing response body", "error", err)
	}
}
