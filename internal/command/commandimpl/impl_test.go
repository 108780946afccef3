package commandimpl

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/mock/gomock"

	"github.com/orgball2608/wallify-bot/internal/domain"
	mock_download "github.com/orgball2608/wallify-bot/internal/download/mocks"
	"github.com/orgball2608/wallify-bot/internal/feed"
	"github.com/orgball2608/wallify-bot/internal/metrics"
	mock_notify "github.com/orgball2608/wallify-bot/internal/notify/mocks"
	mock_pexels "github.com/orgball2608/wallify-bot/internal/pexels/mocks"
	"github.com/orgball2608/wallify-bot/internal/ratelimit"
	mock_downloadrepo "github.com/orgball2608/wallify-bot/internal/repositories/download/mocks"
	mock_session "github.com/orgball2608/wallify-bot/internal/session/mocks"
	"github.com/orgball2608/wallify-bot/internal/telegram"
	mock_telegram "github.com/orgball2608/wallify-bot/internal/telegram/mocks"
	"github.com/orgball2608/wallify-bot/pkg/config"
	"github.com/orgball2608/wallify-bot/pkg/logger"
)

const chatID = int64(42)

type harness struct {
	cmd        *CommandImpl
	telegram   *mock_telegram.MockClient
	searcher   *mock_pexels.MockClient
	notifier   *mock_notify.MockNotifier
	downloader *mock_download.MockDownloader
	downloads  *mock_downloadrepo.MockRepository
}

func newHarness(t *testing.T, limiter ratelimit.Limiter) *harness {
	ctrl := gomock.NewController(t)
	log := logger.New(logger.Opts{Env: "production", Level: "error", Writer: io.Discard})

	h := &harness{
		telegram:   mock_telegram.NewMockClient(ctrl),
		searcher:   mock_pexels.NewMockClient(ctrl),
		notifier:   mock_notify.NewMockNotifier(ctrl),
		downloader: mock_download.NewMockDownloader(ctrl),
		downloads:  mock_downloadrepo.NewMockRepository(ctrl),
	}

	controller := feed.New(feed.Opts{
		Searcher:   h.searcher,
		Notifier:   h.notifier,
		Downloader: h.downloader,
		Logger:     log,
		Metrics:    metrics.New(prometheus.NewRegistry()),
		Clock:      clockwork.NewFakeClock(),
	})

	sessions := mock_session.NewMockManager(ctrl)
	sessions.EXPECT().Get(gomock.Any(), chatID).Return(controller).AnyTimes()
	sessions.EXPECT().Remember(gomock.Any(), chatID, gomock.Any()).AnyTimes()

	if limiter == nil {
		limiter = ratelimit.NewInMemoryLimiter(time.Millisecond, 1000)
	}

	h.cmd = New(Opts{
		Telegram:     h.telegram,
		Sessions:     sessions,
		DownloadRepo: h.downloads,
		Limiter:      limiter,
		Logger:       log,
		Config:       &config.Config{},
	})
	return h
}

func commandUpdate(text, command string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Chat: &tgbotapi.Chat{ID: chatID},
		Text: text,
		Entities: []tgbotapi.MessageEntity{
			{Type: "bot_command", Offset: 0, Length: len(command) + 1},
		},
	}}
}

func callbackUpdate(action, value string) tgbotapi.Update {
	return tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb",
		Data:    encodeCallback(action, value),
		Message: &tgbotapi.Message{MessageID: 9, Chat: &tgbotapi.Chat{ID: chatID}},
	}}
}

func photos(n int) []domain.Photo {
	out := make([]domain.Photo, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, domain.Photo{
			ID:           int64(i),
			Width:        400,
			Height:       800,
			URL:          fmt.Sprintf("https://www.pexels.com/photo/%d/", i),
			Photographer: "Simon Berger",
			Src: domain.PhotoSrc{
				Original: fmt.Sprintf("https://images.example/%d/original.jpg", i),
				Large2x:  fmt.Sprintf("https://images.example/%d/large2x.jpg", i),
				Portrait: fmt.Sprintf("https://images.example/%d/portrait.jpg", i),
			},
		})
	}
	return out
}

// loadFeed runs a search for 12 photos and accepts whatever is rendered.
func (h *harness) loadFeed(t *testing.T, hasNext bool) {
	t.Helper()
	result := &domain.ResultPage{Photos: photos(12)}
	if hasNext {
		result.NextPage = "next"
	}
	h.searcher.EXPECT().Search(gomock.Any(), gomock.Any()).Return(result, nil)
	h.telegram.EXPECT().SendMessage(chatID, gomock.Any()).Return(1, nil)
	h.telegram.EXPECT().SendMediaGroup(chatID, gomock.Any()).Return(nil).Times(2)
	h.telegram.EXPECT().SendMessageWithKeyboard(chatID, gomock.Any(), gomock.Any()).Return(2, nil)

	h.cmd.processUpdate(context.Background(), commandUpdate("/search Nature", "search"))
}

func TestSearchRendersGridInAlbums(t *testing.T) {
	h := newHarness(t, nil)

	h.searcher.EXPECT().Search(gomock.Any(), gomock.Any()).
		Return(&domain.ResultPage{Photos: photos(12), NextPage: "next"}, nil)

	var albums [][]telegram.Media
	var keyboard tgbotapi.InlineKeyboardMarkup
	gomock.InOrder(
		h.telegram.EXPECT().SendMessage(chatID, "*Results for \"Nature\"*\nSmartphone wallpapers").Return(1, nil),
		h.telegram.EXPECT().SendMediaGroup(chatID, gomock.Any()).
			DoAndReturn(func(_ int64, media []telegram.Media) error {
				albums = append(albums, media)
				return nil
			}).Times(2),
		h.telegram.EXPECT().SendMessageWithKeyboard(chatID, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ int64, _ string, kb tgbotapi.InlineKeyboardMarkup) (int, error) {
				keyboard = kb
				return 2, nil
			}),
	)

	h.cmd.processUpdate(context.Background(), commandUpdate("/search Nature", "search"))

	if len(albums) != 2 || len(albums[0]) != 10 || len(albums[1]) != 2 {
		t.Fatalf("unexpected album sizes: %d", len(albums))
	}
	if albums[0][0].URL != "https://images.example/1/portrait.jpg" {
		t.Errorf("thumbnail = %q", albums[0][0].URL)
	}

	rows := keyboard.InlineKeyboard
	if len(rows) != 5 {
		t.Fatalf("rows = %d, want 3 number rows, Load More and category switch", len(rows))
	}
	if rows[3][0].Text != "Load More" {
		t.Errorf("row 4 = %q", rows[3][0].Text)
	}
	if rows[4][0].Text != "Switch to Desktop" {
		t.Errorf("row 5 = %q", rows[4][0].Text)
	}
}

func TestOpenSendsPreview(t *testing.T) {
	h := newHarness(t, nil)
	h.loadFeed(t, false)

	h.telegram.EXPECT().AnswerCallback("cb", "").Return(nil)
	h.telegram.EXPECT().
		SendPhoto(chatID, "https://images.example/3/large2x.jpg", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ int64, _ string, caption string, kb *tgbotapi.InlineKeyboardMarkup) (int, error) {
			want := "*Wallpaper by Simon Berger*\n📷 Simon Berger\n📐 400×800 · Portrait"
			if caption != want {
				t.Errorf("caption = %q, want %q", caption, want)
			}
			if kb == nil || len(kb.InlineKeyboard) != 2 {
				t.Errorf("unexpected preview keyboard: %+v", kb)
			}
			return 10, nil
		})

	h.cmd.processUpdate(context.Background(), callbackUpdate(actionOpen, "3"))
}

func TestOpenUnknownPhoto(t *testing.T) {
	h := newHarness(t, nil)
	h.loadFeed(t, false)

	h.telegram.EXPECT().AnswerCallback("cb", "This wallpaper is no longer in your feed.").Return(nil)

	h.cmd.processUpdate(context.Background(), callbackUpdate(actionOpen, "999"))
}

func TestDownloadRecordsLog(t *testing.T) {
	h := newHarness(t, nil)
	h.loadFeed(t, false)

	h.telegram.EXPECT().AnswerCallback("cb", "").Return(nil)
	h.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Times(2)
	h.downloader.EXPECT().
		Download(gomock.Any(), "https://images.example/5/original.jpg", "wallify_Simon_Berger_5.jpg").
		Return(nil)
	h.downloads.EXPECT().Create(gomock.Any(), domain.DownloadRecord{
		ChatID:   chatID,
		PhotoID:  5,
		Filename: "wallify_Simon_Berger_5.jpg",
	}).Return(nil)

	h.cmd.processUpdate(context.Background(), callbackUpdate(actionDownload, "5"))
}

func TestCloseDeletesPreview(t *testing.T) {
	h := newHarness(t, nil)
	h.loadFeed(t, false)

	h.telegram.EXPECT().AnswerCallback("cb", "").Return(nil)
	h.telegram.EXPECT().DeleteMessage(chatID, 9).Return(nil)

	h.cmd.processUpdate(context.Background(), callbackUpdate(actionClose, "1"))
}

func TestMoreAtEndOfFeed(t *testing.T) {
	h := newHarness(t, nil)
	h.loadFeed(t, false)

	h.telegram.EXPECT().SendMessage(chatID, "You've reached the end of the results\\.").Return(3, nil)

	h.cmd.processUpdate(context.Background(), commandUpdate("/more", "more"))
}

func TestActiveCategoryIsNotRefetched(t *testing.T) {
	h := newHarness(t, nil)
	h.loadFeed(t, false)

	h.telegram.EXPECT().SendMessage(chatID, "Already showing Smartphone wallpapers\\.").Return(3, nil)

	h.cmd.processUpdate(context.Background(), commandUpdate("/smartphone", "smartphone"))
}

func TestRateLimitedMessage(t *testing.T) {
	h := newHarness(t, ratelimit.NewInMemoryLimiter(time.Hour, 1))

	gomock.InOrder(
		h.telegram.EXPECT().SendMessage(chatID, helpMessage).Return(1, nil),
		h.telegram.EXPECT().
			SendMessage(chatID, "You're going a bit fast\\. Please wait a moment and try again\\.").
			Return(2, nil),
	)

	h.cmd.processUpdate(context.Background(), commandUpdate("/help", "help"))
	h.cmd.processUpdate(context.Background(), commandUpdate("/help", "help"))
}

func TestCategoriesKeyboard(t *testing.T) {
	kb := categoriesKeyboard(domain.CategoryDesktop)

	rows := kb.InlineKeyboard
	if len(rows) != 1+len(domain.PresetGroups) {
		t.Fatalf("rows = %d", len(rows))
	}
	if rows[0][0].Text != "✓ Desktop" || rows[0][1].Text != "Smartphone" {
		t.Errorf("category row = %q, %q", rows[0][0].Text, rows[0][1].Text)
	}
	if got := *rows[1][0].CallbackData; got != `{"a":"preset","v":"Nature"}` {
		t.Errorf("preset callback = %s", got)
	}
}

func TestDecodeCallback(t *testing.T) {
	cb, err := decodeCallback(`{"a":"open","v":"12"}`)
	if err != nil || cb.Action != actionOpen || cb.Value != "12" {
		t.Errorf("decode = %+v, %v", cb, err)
	}
	if _, err := decodeCallback(`{"v":"12"}`); err == nil {
		t.Error("expected error for missing action")
	}
	if _, err := decodeCallback("dl_highlight"); err == nil {
		t.Error("expected error for non-JSON data")
	}
}

func TestDownloadSendsTappedPhotoAfterAnotherPreview(t *testing.T) {
	h := newHarness(t, nil)
	h.loadFeed(t, false)

	h.telegram.EXPECT().AnswerCallback("cb", "").Return(nil).Times(3)
	h.telegram.EXPECT().SendPhoto(chatID, gomock.Any(), gomock.Any(), gomock.Any()).Return(10, nil).Times(2)
	h.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Times(2)
	h.downloader.EXPECT().
		Download(gomock.Any(), "https://images.example/5/original.jpg", "wallify_Simon_Berger_5.jpg").
		Return(nil)
	h.downloads.EXPECT().Create(gomock.Any(), domain.DownloadRecord{
		ChatID:   chatID,
		PhotoID:  5,
		Filename: "wallify_Simon_Berger_5.jpg",
	}).Return(nil)

	h.cmd.processUpdate(context.Background(), callbackUpdate(actionOpen, "5"))
	h.cmd.processUpdate(context.Background(), callbackUpdate(actionOpen, "7"))
	h.cmd.processUpdate(context.Background(), callbackUpdate(actionDownload, "5"))
}

func TestDownloadUnknownPhoto(t *testing.T) {
	h := newHarness(t, nil)
	h.loadFeed(t, false)

	h.telegram.EXPECT().AnswerCallback("cb", "").Return(nil)
	h.telegram.EXPECT().SendMessage(chatID, "This wallpaper is no longer in your feed\\.").Return(3, nil)

	h.cmd.processUpdate(context.Background(), callbackUpdate(actionDownload, "999"))
}

func TestMoreCallbackRetiresLoadMoreButton(t *testing.T) {
	h := newHarness(t, nil)
	h.loadFeed(t, true)

	tapped := feedKeyboard(photos(12), 0, domain.FeedState{
		Query:   domain.Query{Term: "Nature", Category: domain.CategorySmartphone},
		HasMore: true,
	})
	update := callbackUpdate(actionMore, "")
	update.CallbackQuery.Message.Text = "Showing 12 wallpapers. Tap a number to preview."
	update.CallbackQuery.Message.ReplyMarkup = &tapped

	var next tgbotapi.InlineKeyboardMarkup
	h.telegram.EXPECT().AnswerCallback("cb", "").Return(nil)
	h.telegram.EXPECT().
		EditMessageText(chatID, 9, "Showing 12 wallpapers\\. Tap a number to preview\\.", gomock.Any()).
		DoAndReturn(func(_ int64, _ int, _ string, kb tgbotapi.InlineKeyboardMarkup) error {
			if len(kb.InlineKeyboard) != 4 {
				t.Errorf("rows = %d, want 3 number rows and the category switch", len(kb.InlineKeyboard))
			}
			for _, row := range kb.InlineKeyboard {
				if row[0].Text == "Load More" {
					t.Error("Load More should be removed from the tapped message")
				}
			}
			return nil
		})
	h.searcher.EXPECT().Search(gomock.Any(), gomock.Any()).
		Return(&domain.ResultPage{Photos: photos(15)[12:], NextPage: "next"}, nil)
	h.telegram.EXPECT().SendMediaGroup(chatID, gomock.Any()).Return(nil)
	h.telegram.EXPECT().SendMessageWithKeyboard(chatID, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ int64, _ string, kb tgbotapi.InlineKeyboardMarkup) (int, error) {
			next = kb
			return 11, nil
		})

	h.cmd.processUpdate(context.Background(), update)

	if got := next.InlineKeyboard[0][0].Text; got != "13" {
		t.Errorf("first number on the new page = %q, want 13", got)
	}
	if next.InlineKeyboard[1][0].Text != "Load More" {
		t.Errorf("new grid should carry Load More, got %q", next.InlineKeyboard[1][0].Text)
	}
}

func TestStatsCommand(t *testing.T) {
	h := newHarness(t, nil)

	h.downloads.EXPECT().CountByChat(gomock.Any(), chatID).Return(int64(3), nil)
	h.telegram.EXPECT().
		SendMessage(chatID, "*Your stats*\nDownloads: 3\nCurrent feed: Smartphone, \"Wallpaper\"").
		Return(1, nil)

	h.cmd.processUpdate(context.Background(), commandUpdate("/stats", "stats"))
}

func TestPreviewKeyboardWithoutPhotographerName(t *testing.T) {
	kb := previewKeyboard(domain.Photo{ID: 1, PhotographerURL: "https://www.pexels.com/@someone"})

	links := kb.InlineKeyboard[1]
	if len(links) != 1 || links[0].Text != "Photographer" {
		t.Errorf("links = %+v", links)
	}
}
