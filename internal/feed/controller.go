package feed

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/orgball2608/wallify-bot/internal/domain"
	"github.com/orgball2608/wallify-bot/internal/download"
	"github.com/orgball2608/wallify-bot/internal/metrics"
	"github.com/orgball2608/wallify-bot/internal/notify"
	"github.com/orgball2608/wallify-bot/internal/pexels"
	apperrors "github.com/orgball2608/wallify-bot/pkg/errors"
	"github.com/orgball2608/wallify-bot/pkg/logger"
)

const DefaultSelectionClearDelay = 300 * time.Millisecond

var ErrPhotoNotFound = errors.New("photo is not in the current feed")

type Opts struct {
	Searcher   pexels.Client
	Notifier   notify.Notifier
	Downloader download.Downloader
	Logger     logger.Logger
	Metrics    *metrics.Metrics
	Clock      clockwork.Clock

	// Development switches configuration errors to their detailed wording.
	Development         bool
	PerPage             int
	SelectionClearDelay time.Duration

	// Initial is the query the first Refresh runs.
	Initial domain.Query
}

// Outcome is the result of a state-changing call.
type Outcome struct {
	State domain.FeedState
	// Fetched is false when the call was a no-op.
	Fetched bool
	// Applied is false when no fetch ran or its result was superseded by a
	// newer query.
	Applied bool
	// Added holds the photos this fetch put into the feed, in feed order.
	Added []domain.Photo
}

// Controller owns the feed of one chat. Every fetch is tagged with the epoch
// it was issued for; completions from an older epoch are dropped.
type Controller struct {
	searcher   pexels.Client
	notifier   notify.Notifier
	downloader download.Downloader
	logger     logger.Logger
	metrics    *metrics.Metrics
	clock      clockwork.Clock

	development bool
	perPage     int
	clearDelay  time.Duration

	mu         sync.Mutex
	state      domain.FeedState
	selection  domain.Selection
	clearTimer clockwork.Timer
}

func New(opts Opts) *Controller {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	perPage := opts.PerPage
	if perPage <= 0 {
		perPage = pexels.DefaultPerPage
	}
	clearDelay := opts.SelectionClearDelay
	if clearDelay <= 0 {
		clearDelay = DefaultSelectionClearDelay
	}

	initial := opts.Initial
	initial.Term = domain.NormalizeTerm(initial.Term)
	if !initial.Category.Valid() {
		initial.Category = domain.CategorySmartphone
	}

	return &Controller{
		searcher:    opts.Searcher,
		notifier:    opts.Notifier,
		downloader:  opts.Downloader,
		logger:      opts.Logger.WithComponent("FeedController"),
		metrics:     opts.Metrics,
		clock:       clock,
		development: opts.Development,
		perPage:     perPage,
		clearDelay:  clearDelay,
		state: domain.FeedState{
			Query:  initial,
			Status: domain.StatusIdle,
		},
	}
}

// SetQuery starts a new epoch for term and category and fetches its first page.
func (c *Controller) SetQuery(ctx context.Context, term string, category domain.Category) Outcome {
	c.mu.Lock()
	if !category.Valid() {
		category = c.state.Query.Category
	}
	q := domain.Query{Term: domain.NormalizeTerm(term), Category: category}
	epoch := c.state.Epoch + 1
	c.state = domain.FeedState{
		Query:   q,
		Page:    1,
		HasMore: true,
		Loading: true,
		Epoch:   epoch,
		Status:  domain.StatusLoading,
	}
	c.mu.Unlock()

	c.logger.Debug("Query changed", "term", q.Term, "category", q.Category, "epoch", epoch)

	return c.fetchPage(ctx, epoch, q, 1, false)
}

// Refresh re-runs the current query from page one.
func (c *Controller) Refresh(ctx context.Context) Outcome {
	q := c.Query()
	return c.SetQuery(ctx, q.Term, q.Category)
}

// Search changes the term and keeps the category.
func (c *Controller) Search(ctx context.Context, term string) Outcome {
	return c.SetQuery(ctx, term, c.Query().Category)
}

// SelectPreset searches for a canned term from the categories menu.
func (c *Controller) SelectPreset(ctx context.Context, value string) Outcome {
	return c.Search(ctx, value)
}

// SetCategory switches the device category. Choosing the active category of
// a feed that has already been fetched does nothing.
func (c *Controller) SetCategory(ctx context.Context, category domain.Category) Outcome {
	c.mu.Lock()
	unchanged := category == c.state.Query.Category && c.state.Status != domain.StatusIdle
	term := c.state.Query.Term
	st := c.state.Clone()
	c.mu.Unlock()

	if unchanged || !category.Valid() {
		return Outcome{State: st}
	}
	return c.SetQuery(ctx, term, category)
}

// LoadMore fetches the next page of the current epoch. It is a no-op while a
// fetch is in flight or once the feed is exhausted.
func (c *Controller) LoadMore(ctx context.Context) Outcome {
	c.mu.Lock()
	if c.state.Loading || !c.state.HasMore {
		st := c.state.Clone()
		c.mu.Unlock()
		return Outcome{State: st}
	}
	c.state.Page++
	c.state.Loading = true
	c.state.Status = domain.StatusLoading
	epoch, q, page := c.state.Epoch, c.state.Query, c.state.Page
	c.mu.Unlock()

	return c.fetchPage(ctx, epoch, q, page, true)
}

// fetchPage runs one search and applies it if epoch is still current. The
// returned state is taken under the same lock as the result it describes.
func (c *Controller) fetchPage(ctx context.Context, epoch uint64, q domain.Query, page int, appendItems bool) Outcome {
	result, err := c.searcher.Search(ctx, pexels.SearchParams{
		Query:       q.Term,
		Orientation: q.Category.Orientation(),
		PerPage:     c.perPage,
		Page:        page,
	})

	c.mu.Lock()
	if c.state.Epoch != epoch {
		current := c.state.Epoch
		c.mu.Unlock()
		c.metrics.StaleResponse()
		c.logger.Debug("Discarding stale fetch result", "epoch", epoch, "current_epoch", current, "page", page)
		return Outcome{State: domain.FeedState{Query: q, Epoch: epoch}, Fetched: true}
	}

	c.state.Loading = false

	if err != nil {
		hasMore, note := c.classify(err)
		if hasMore != nil {
			c.state.HasMore = *hasMore
		}
		if appendItems {
			// Let the next LoadMore ask for the same page again.
			c.state.Page = page - 1
		}
		c.state.Status = domain.StatusFailed
		st := c.state.Clone()
		c.mu.Unlock()

		c.metrics.FeedFetch(string(domain.StatusFailed))
		c.logger.Error("Error fetching wallpapers", "term", q.Term, "category", q.Category, "page", page, "error", err)
		c.notifier.Notify(ctx, note)
		return Outcome{State: st, Fetched: true, Applied: true}
	}

	var photos []domain.Photo
	if result != nil {
		photos = result.Photos
	}

	var existing []domain.Photo
	if appendItems {
		existing = c.state.Items
	}
	items, added := mergeItems(existing, photos, q.Category)
	c.state.Items = items
	c.state.HasMore = result != nil && result.HasNext() && len(photos) > 0
	if len(items) == 0 {
		c.state.Status = domain.StatusEmpty
	} else {
		c.state.Status = domain.StatusLoaded
	}
	st := c.state.Clone()
	c.mu.Unlock()

	c.metrics.FeedFetch(string(st.Status))
	c.logger.Debug("Fetched page", "term", q.Term, "category", q.Category, "page", page, "received", len(photos), "added", len(added))
	return Outcome{State: st, Fetched: true, Applied: true, Added: added}
}

// mergeItems appends incoming to existing and removes repeated keys. A repeated
// key keeps its first position and takes the latest value.
func mergeItems(existing, incoming []domain.Photo, category domain.Category) ([]domain.Photo, []domain.Photo) {
	out := make([]domain.Photo, 0, len(existing)+len(incoming))
	index := make(map[domain.ItemKey]int, len(existing)+len(incoming))
	for _, p := range existing {
		k := domain.ItemKey{PhotoID: p.ID, Category: category}
		if i, ok := index[k]; ok {
			out[i] = p
			continue
		}
		index[k] = len(out)
		out = append(out, p)
	}

	seenBefore := len(out)
	for _, p := range incoming {
		k := domain.ItemKey{PhotoID: p.ID, Category: category}
		if i, ok := index[k]; ok {
			out[i] = p
			continue
		}
		index[k] = len(out)
		out = append(out, p)
	}

	added := append([]domain.Photo(nil), out[seenBefore:]...)
	return out, added
}

// classify maps a fetch error to its notification. A nil hasMore leaves the
// flag unchanged.
func (c *Controller) classify(err error) (*bool, domain.Notification) {
	no := false
	switch apperrors.GetCode(err) {
	case apperrors.CodeMissingCredential:
		if c.development {
			return &no, destructive("API Key Error",
				"Pexels API key is not configured. Please add PEXELS_API_KEY to your environment variables.")
		}
		return &no, destructive("Configuration Error", "Could not fetch wallpapers due to a configuration issue.")
	case apperrors.CodeAuthRejected:
		if c.development {
			return &no, destructive("API Key Invalid", "The configured Pexels API key is invalid or unauthorized.")
		}
		return &no, destructive("Authentication Error", "Could not authenticate with the image provider.")
	case apperrors.CodeUpstream:
		return nil, destructive("API Error", fmt.Sprintf("Failed to fetch: %s", apperrors.GetMessage(err)))
	default:
		return &no, destructive("Error", "Failed to fetch wallpapers. Please check your connection and try again.")
	}
}

func destructive(title, description string) domain.Notification {
	return domain.Notification{Title: title, Description: description, Severity: domain.SeverityDestructive}
}

// OpenPreview selects a photo of the current feed for the preview.
func (c *Controller) OpenPreview(photoID int64) (domain.Photo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range c.state.Items {
		if p.ID != photoID {
			continue
		}
		if c.clearTimer != nil {
			c.clearTimer.Stop()
			c.clearTimer = nil
		}
		selected := p
		c.selection = domain.Selection{Photo: &selected, Open: true}
		return selected, nil
	}
	return domain.Photo{}, ErrPhotoNotFound
}

// ClosePreview closes the preview at once and forgets the selected photo
// after the clear delay. Reopening inside the delay keeps the selection.
func (c *Controller) ClosePreview() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.selection.Open = false
	if c.clearTimer != nil {
		c.clearTimer.Stop()
	}
	c.clearTimer = c.clock.AfterFunc(c.clearDelay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if !c.selection.Open {
			c.selection.Photo = nil
		}
	})
}

// Download saves the original of photoID and reports progress through the
// notifier. The photo is looked up and selected in one step, so a preview
// opened meanwhile cannot change what is sent. It returns the filename used.
func (c *Controller) Download(ctx context.Context, photoID int64) (string, error) {
	selected, err := c.selectForDownload(photoID)
	if err != nil {
		return "", err
	}

	filename := DownloadFilename(selected)
	c.notifier.Notify(ctx, domain.Notification{
		Title:       "Download Starting",
		Description: fmt.Sprintf("Preparing %s for download...", filename),
		Severity:    domain.SeverityInfo,
	})

	if err := c.downloader.Download(ctx, selected.Src.Original, filename); err != nil {
		c.metrics.Download("failed")
		c.logger.Error("Error downloading wallpaper", "photo_id", selected.ID, "error", err)
		c.notifier.Notify(ctx, destructive("Download Failed", "Could not download the wallpaper. Please try again."))
		return filename, err
	}

	c.metrics.Download("ok")
	c.notifier.Notify(ctx, domain.Notification{
		Title:       "Download Complete",
		Description: fmt.Sprintf("%s has been downloaded.", filename),
		Severity:    domain.SeverityInfo,
	})
	return filename, nil
}

// selectForDownload makes photoID the selection and returns a copy of it.
// The current selection is used even after it left the feed.
func (c *Controller) selectForDownload(photoID int64) (domain.Photo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.selection.Photo != nil && c.selection.Photo.ID == photoID {
		return *c.selection.Photo, nil
	}
	for _, p := range c.state.Items {
		if p.ID != photoID {
			continue
		}
		if c.clearTimer != nil {
			c.clearTimer.Stop()
			c.clearTimer = nil
		}
		selected := p
		c.selection = domain.Selection{Photo: &selected, Open: true}
		return selected, nil
	}
	return domain.Photo{}, ErrPhotoNotFound
}

// Stop releases the pending selection timer.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.clearTimer != nil {
		c.clearTimer.Stop()
		c.clearTimer = nil
	}
}

func (c *Controller) State() domain.FeedState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

func (c *Controller) Query() domain.Query {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Query
}

func (c *Controller) Selection() domain.Selection {
	c.mu.Lock()
	defer c.mu.Unlock()
	sel := c.selection
	if sel.Photo != nil {
		p := *sel.Photo
		sel.Photo = &p
	}
	return sel
}

// PreviewAspect is the aspect of the selected photo, or the grid aspect of
// the current category when nothing is selected.
func (c *Controller) PreviewAspect() domain.Aspect {
	sel := c.Selection()
	if sel.Photo == nil {
		return c.Query().Category.GridAspect()
	}
	return PreviewAspect(*sel.Photo)
}

func (c *Controller) Heading() string {
	return Heading(c.Query())
}

func (c *Controller) EmptyMessage() string {
	return EmptyMessage(c.Query())
}

// Heading is the title shown above the grid of q.
func Heading(q domain.Query) string {
	if q.Term == domain.DefaultSearchTerm {
		return "Discover Your Next Wallpaper"
	}
	return fmt.Sprintf("Results for %q", q.Term)
}

func EmptyMessage(q domain.Query) string {
	return fmt.Sprintf("No %s wallpapers found for %q. Try a different search term or category.", q.Category, q.Term)
}
