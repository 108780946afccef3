package commandimpl

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/orgball2608/wallify-bot/internal/domain"
	"github.com/orgball2608/wallify-bot/internal/feed"
	"github.com/orgball2608/wallify-bot/internal/telegram"
	"github.com/orgball2608/wallify-bot/pkg/formatter"
)

const buttonsPerRow = 5

func escape(s string) string {
	return formatter.EscapeMarkdownV2(s)
}

func bold(s string) string {
	return "*" + escape(s) + "*"
}

// render shows the result of a fetch. Failures were already reported by the
// feed's notifier and superseded fetches are left to the newer query. Only
// out is read, never the live controller, which a newer update may have moved on.
func (c *CommandImpl) render(chatID int64, out feed.Outcome, fresh bool) error {
	if !out.Applied {
		return nil
	}

	st := out.State
	switch st.Status {
	case domain.StatusEmpty:
		_, err := c.Telegram.SendMessage(chatID, escape(feed.EmptyMessage(st.Query)))
		return err
	case domain.StatusLoaded:
	default:
		return nil
	}

	if fresh {
		heading := bold(feed.Heading(st.Query)) + "\n" + escape(st.Query.Category.Label()+" wallpapers")
		if _, err := c.Telegram.SendMessage(chatID, heading); err != nil {
			return err
		}
	}

	offset := len(st.Items) - len(out.Added)
	c.sendGrid(chatID, out.Added, st.Query.Category, offset)

	text := escape(fmt.Sprintf("Showing %d wallpapers. Tap a number to preview.", len(st.Items)))
	_, err := c.Telegram.SendMessageWithKeyboard(chatID, text, feedKeyboard(out.Added, offset, st))
	return err
}

// sendGrid posts photos as albums of at most telegram.MaxMediaGroup items.
// An album that fails is retried photo by photo.
func (c *CommandImpl) sendGrid(chatID int64, photos []domain.Photo, category domain.Category, offset int) {
	for start := 0; start < len(photos); start += telegram.MaxMediaGroup {
		end := min(start+telegram.MaxMediaGroup, len(photos))

		media := make([]telegram.Media, 0, end-start)
		for i, p := range photos[start:end] {
			media = append(media, telegram.Media{
				URL:     feed.GridImageURL(p, category),
				Caption: escape(fmt.Sprintf("#%d", offset+start+i+1)),
			})
		}

		if err := c.Telegram.SendMediaGroup(chatID, media); err != nil {
			c.Logger.Error("Failed to send media group, falling back to individual sending", "chat_id", chatID, "error", err)
			for _, m := range media {
				if _, err := c.Telegram.SendPhoto(chatID, m.URL, m.Caption, nil); err != nil {
					c.Logger.Warn("Failed to send grid photo", "chat_id", chatID, "url", m.URL, "error", err)
				}
			}
		}
	}
}

func feedKeyboard(added []domain.Photo, offset int, st domain.FeedState) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for i, p := range added {
		label := strconv.Itoa(offset + i + 1)
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, encodeCallback(actionOpen, strconv.FormatInt(p.ID, 10))))
		if len(row) == buttonsPerRow {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	if st.HasMore && !st.Loading {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Load More", encodeCallback(actionMore, "")),
		))
	}

	other := domain.CategoryDesktop
	if st.Query.Category == domain.CategoryDesktop {
		other = domain.CategorySmartphone
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Switch to "+other.Label(), encodeCallback(actionCategory, string(other))),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func categoriesKeyboard(active domain.Category) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	categoryRow := make([]tgbotapi.InlineKeyboardButton, 0, 2)
	for _, cat := range []domain.Category{domain.CategoryDesktop, domain.CategorySmartphone} {
		label := cat.Label()
		if cat == active {
			label = "✓ " + label
		}
		categoryRow = append(categoryRow, tgbotapi.NewInlineKeyboardButtonData(label, encodeCallback(actionCategory, string(cat))))
	}
	rows = append(rows, categoryRow)

	for _, group := range domain.PresetGroups {
		row := make([]tgbotapi.InlineKeyboardButton, 0, len(group.Presets))
		for _, p := range group.Presets {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(p.Label, encodeCallback(actionPreset, p.Value)))
		}
		rows = append(rows, row)
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func previewCaption(p domain.Photo) string {
	return fmt.Sprintf("%s\n📷 %s\n📐 %s · %s",
		bold(p.Title()),
		escape(p.Photographer),
		escape(formatter.FormatDimensions(p.Width, p.Height)),
		escape(aspectLabel(feed.PreviewAspect(p))),
	)
}

func aspectLabel(a domain.Aspect) string {
	switch a {
	case domain.AspectVideo:
		return "Landscape"
	case domain.AspectTall:
		return "Portrait"
	default:
		return "Square"
	}
}

func previewKeyboard(p domain.Photo) tgbotapi.InlineKeyboardMarkup {
	id := strconv.FormatInt(p.ID, 10)
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬇️ Download", encodeCallback(actionDownload, id)),
			tgbotapi.NewInlineKeyboardButtonData("✖️ Close", encodeCallback(actionClose, id)),
		),
	}

	var links []tgbotapi.InlineKeyboardButton
	if p.URL != "" {
		links = append(links, tgbotapi.NewInlineKeyboardButtonURL("View on Pexels", p.URL))
	}
	if p.PhotographerURL != "" {
		label := strings.TrimSpace(p.Photographer)
		if label == "" {
			label = "Photographer"
		}
		links = append(links, tgbotapi.NewInlineKeyboardButtonURL(label, p.PhotographerURL))
	}
	if len(links) > 0 {
		rows = append(rows, links)
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// withoutLoadMore copies a feed keyboard minus its Load More row. Older grid
// messages keep their number buttons but stop offering a second load.
func withoutLoadMore(kb *tgbotapi.InlineKeyboardMarkup) (tgbotapi.InlineKeyboardMarkup, bool) {
	if kb == nil {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}
	more := encodeCallback(actionMore, "")

	found := false
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(kb.InlineKeyboard))
	for _, row := range kb.InlineKeyboard {
		if len(row) == 1 && row[0].CallbackData != nil && *row[0].CallbackData == more {
			found = true
			continue
		}
		rows = append(rows, row)
	}
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}, found
}
