package commandimpl

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/orgball2608/wallify-bot/internal/domain"
	"github.com/orgball2608/wallify-bot/internal/feed"
)

var helpMessage = bold("Welcome to Wallify!") + "\n\n" + escape(strings.Join([]string{
	"Browse high-quality wallpapers for your desktop or phone.",
	"",
	"/search <term> - Search wallpapers, or just type a term.",
	"/desktop - Landscape wallpapers for desktops.",
	"/smartphone - Portrait wallpapers for phones.",
	"/categories - Pick a popular theme.",
	"/more - Load more results.",
	"/stats - Downloads saved from this chat.",
	"/help - Show this guide.",
	"",
	"Tap a number under the grid to preview a wallpaper and download the original.",
	"Photos provided by Pexels.",
}, "\n"))

func (c *CommandImpl) processCommand(ctx context.Context, msg *tgbotapi.Message) error {
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "start":
		if _, err := c.Telegram.SendMessage(chatID, helpMessage); err != nil {
			return err
		}
		ctrl := c.Sessions.Get(ctx, chatID)
		return c.render(chatID, ctrl.Refresh(ctx), true)
	case "help":
		_, err := c.Telegram.SendMessage(chatID, helpMessage)
		return err
	case "search":
		return c.handleSearch(ctx, chatID, msg.CommandArguments())
	case "desktop":
		return c.handleCategory(ctx, chatID, domain.CategoryDesktop)
	case "smartphone":
		return c.handleCategory(ctx, chatID, domain.CategorySmartphone)
	case "categories":
		return c.sendCategories(ctx, chatID)
	case "more":
		return c.handleLoadMore(ctx, chatID)
	case "stats":
		return c.sendStats(ctx, chatID)
	default:
		_, err := c.Telegram.SendMessage(chatID, escape("Unknown command. Type /help to see the list of available commands."))
		return err
	}
}

func (c *CommandImpl) handleSearch(ctx context.Context, chatID int64, term string) error {
	ctrl := c.Sessions.Get(ctx, chatID)
	out := ctrl.Search(ctx, term)
	c.remember(ctx, chatID, out)
	return c.render(chatID, out, true)
}

func (c *CommandImpl) handlePreset(ctx context.Context, chatID int64, value string) error {
	ctrl := c.Sessions.Get(ctx, chatID)
	out := ctrl.SelectPreset(ctx, value)
	c.remember(ctx, chatID, out)
	return c.render(chatID, out, true)
}

func (c *CommandImpl) handleCategory(ctx context.Context, chatID int64, category domain.Category) error {
	ctrl := c.Sessions.Get(ctx, chatID)
	out := ctrl.SetCategory(ctx, category)
	if !out.Fetched {
		_, err := c.Telegram.SendMessage(chatID,
			escape(fmt.Sprintf("Already showing %s wallpapers.", category.Label())))
		return err
	}
	c.remember(ctx, chatID, out)
	return c.render(chatID, out, true)
}

func (c *CommandImpl) handleLoadMore(ctx context.Context, chatID int64) error {
	ctrl := c.Sessions.Get(ctx, chatID)
	out := ctrl.LoadMore(ctx)
	if !out.Fetched {
		text := "You've reached the end of the results."
		if out.State.Loading {
			text = "Still loading, one moment."
		} else if out.State.Status == domain.StatusIdle {
			text = "Nothing to load yet. Try /search first."
		}
		_, err := c.Telegram.SendMessage(chatID, escape(text))
		return err
	}
	return c.render(chatID, out, false)
}

func (c *CommandImpl) sendCategories(ctx context.Context, chatID int64) error {
	active := c.Sessions.Get(ctx, chatID).Query().Category

	var b strings.Builder
	b.WriteString(bold("Categories"))
	for _, group := range domain.PresetGroups {
		labels := make([]string, 0, len(group.Presets))
		for _, p := range group.Presets {
			labels = append(labels, p.Label)
		}
		b.WriteString("\n" + bold(group.Label) + ": " + escape(strings.Join(labels, ", ")))
	}

	_, err := c.Telegram.SendMessageWithKeyboard(chatID, b.String(), categoriesKeyboard(active))
	return err
}

// remember stores the query of an applied outcome. A superseded one would
// overwrite the newer query's preference.
func (c *CommandImpl) remember(ctx context.Context, chatID int64, out feed.Outcome) {
	if out.Applied {
		c.Sessions.Remember(ctx, chatID, out.State.Query)
	}
}

func (c *CommandImpl) sendStats(ctx context.Context, chatID int64) error {
	count, err := c.DownloadRepo.CountByChat(ctx, chatID)
	if err != nil {
		return err
	}
	q := c.Sessions.Get(ctx, chatID).Query()

	text := bold("Your stats") + "\n" + escape(strings.Join([]string{
		fmt.Sprintf("Downloads: %d", count),
		fmt.Sprintf("Current feed: %s, %q", q.Category.Label(), q.Term),
	}, "\n"))
	_, err = c.Telegram.SendMessage(chatID, text)
	return err
}
