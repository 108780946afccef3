package sessionimpl

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/orgball2608/wallify-bot/internal/domain"
	"github.com/orgball2608/wallify-bot/internal/download"
	"github.com/orgball2608/wallify-bot/internal/feed"
	"github.com/orgball2608/wallify-bot/internal/metrics"
	"github.com/orgball2608/wallify-bot/internal/notify"
	"github.com/orgball2608/wallify-bot/internal/pexels"
	"github.com/orgball2608/wallify-bot/internal/repositories/preference"
	"github.com/orgball2608/wallify-bot/internal/session"
	"github.com/orgball2608/wallify-bot/pkg/config"
	"github.com/orgball2608/wallify-bot/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config      *config.Config
	Logger      logger.Logger
	Metrics     *metrics.Metrics
	Clock       clockwork.Clock
	Searcher    pexels.Client
	Notifiers   notify.Factory
	Downloaders download.Factory
	Preferences preference.Repository
}

type entry struct {
	ctrl     *feed.Controller
	lastSeen time.Time
}

type ManagerImpl struct {
	cfg         *config.Config
	logger      logger.Logger
	metrics     *metrics.Metrics
	clock       clockwork.Clock
	searcher    pexels.Client
	notifiers   notify.Factory
	downloaders download.Factory
	preferences preference.Repository

	mu       sync.Mutex
	sessions map[int64]*entry
}

func New(opts Opts) *ManagerImpl {
	return &ManagerImpl{
		cfg:         opts.Config,
		logger:      opts.Logger.WithComponent("SessionManager"),
		metrics:     opts.Metrics,
		clock:       opts.Clock,
		searcher:    opts.Searcher,
		notifiers:   opts.Notifiers,
		downloaders: opts.Downloaders,
		preferences: opts.Preferences,
		sessions:    make(map[int64]*entry),
	}
}

var _ session.Manager = (*ManagerImpl)(nil)

func (m *ManagerImpl) Get(ctx context.Context, chatID int64) *feed.Controller {
	if ctrl := m.lookup(chatID); ctrl != nil {
		return ctrl
	}

	initial := m.restore(ctx, chatID)
	ctrl := feed.New(feed.Opts{
		Searcher:            m.searcher,
		Notifier:            m.notifiers.ForChat(chatID),
		Downloader:          m.downloaders.ForChat(chatID),
		Logger:              m.logger,
		Metrics:             m.metrics,
		Clock:               m.clock,
		Development:         m.cfg.IsDevelopment(),
		PerPage:             m.cfg.Pexels.PerPage,
		SelectionClearDelay: m.cfg.Session.SelectionClearDelay,
		Initial:             initial,
	})

	m.mu.Lock()
	defer m.mu.Unlock()
	// Another update for the same chat may have won the race.
	if e, ok := m.sessions[chatID]; ok {
		e.lastSeen = m.clock.Now()
		ctrl.Stop()
		return e.ctrl
	}
	m.sessions[chatID] = &entry{ctrl: ctrl, lastSeen: m.clock.Now()}
	m.metrics.SetActiveSessions(len(m.sessions))
	m.logger.Debug("Session created", "chat_id", chatID, "term", initial.Term, "category", initial.Category)
	return ctrl
}

func (m *ManagerImpl) lookup(chatID int64) *feed.Controller {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[chatID]
	if !ok {
		return nil
	}
	e.lastSeen = m.clock.Now()
	return e.ctrl
}

func (m *ManagerImpl) restore(ctx context.Context, chatID int64) domain.Query {
	q := domain.Query{Term: domain.DefaultSearchTerm, Category: domain.CategorySmartphone}

	pref, err := m.preferences.Get(ctx, chatID)
	if err != nil {
		if !errors.Is(err, preference.ErrNotFound) {
			m.logger.Warn("Failed to load preference, using defaults", "chat_id", chatID, "error", err)
		}
		return q
	}

	if pref.Category.Valid() {
		q.Category = pref.Category
	}
	q.Term = domain.NormalizeTerm(pref.SearchTerm)
	return q
}

func (m *ManagerImpl) Remember(ctx context.Context, chatID int64, q domain.Query) {
	err := m.preferences.Upsert(ctx, domain.Preference{
		ChatID:     chatID,
		Category:   q.Category,
		SearchTerm: q.Term,
		UpdatedAt:  m.clock.Now(),
	})
	if err != nil {
		m.logger.Warn("Failed to store preference", "chat_id", chatID, "error", err)
	}
}

func (m *ManagerImpl) Forget(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.sessions[chatID]; ok {
		e.ctrl.Stop()
		delete(m.sessions, chatID)
		m.metrics.SetActiveSessions(len(m.sessions))
	}
}

func (m *ManagerImpl) EvictIdle(olderThan time.Duration) int {
	cutoff := m.clock.Now().Add(-olderThan)

	m.mu.Lock()
	defer m.mu.Unlock()

	evicted := 0
	for chatID, e := range m.sessions {
		if e.lastSeen.Before(cutoff) {
			e.ctrl.Stop()
			delete(m.sessions, chatID)
			evicted++
		}
	}
	m.metrics.SetActiveSessions(len(m.sessions))
	return evicted
}

func (m *ManagerImpl) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
