package downloadimpl

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/orgball2608/wallify-bot/internal/download"
	"github.com/orgball2608/wallify-bot/internal/telegram"
	"github.com/orgball2608/wallify-bot/pkg/formatter"
	"github.com/orgball2608/wallify-bot/pkg/logger"
	"go.uber.org/fx"
)

const (
	fetchTimeout = 30 * time.Second
	// maxFileSize is the Bot API upload limit for documents.
	maxFileSize = 50 << 20
)

type Opts struct {
	fx.In

	Telegram telegram.Client
	Logger   logger.Logger
}

type FactoryImpl struct {
	telegram telegram.Client
	client   *http.Client
	logger   logger.Logger
}

func New(opts Opts) *FactoryImpl {
	return &FactoryImpl{
		telegram: opts.Telegram,
		client:   &http.Client{Timeout: fetchTimeout},
		logger:   opts.Logger.WithComponent("Downloader"),
	}
}

var _ download.Factory = (*FactoryImpl)(nil)

func (f *FactoryImpl) ForChat(chatID int64) download.Downloader {
	return &ChatDownloader{factory: f, chatID: chatID}
}

// ChatDownloader fetches the image and sends it to the chat as a document.
type ChatDownloader struct {
	factory *FactoryImpl
	chatID  int64
}

var _ download.Downloader = (*ChatDownloader)(nil)

func (d *ChatDownloader) Download(ctx context.Context, url, filename string) error {
	data, err := d.factory.fetch(ctx, url)
	if err != nil {
		return err
	}
	return d.factory.telegram.SendDocument(d.chatID, filename, data, formatter.EscapeMarkdownV2(filename))
}

func (f *FactoryImpl) fetch(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Error("Error downloading image", "url", url, "error", err)
		return nil, fmt.Errorf("downloading image: %w", err)
	}
	defer safeClose(resp.Body, f.logger)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("downloading image: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading image data: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("received empty image data")
	}
	if len(data) > maxFileSize {
		return nil, fmt.Errorf("image exceeds %d bytes", maxFileSize)
	}

	f.logger.Debug("Image fetched", "url", url, "bytes", len(data))
	return data, nil
}

func safeClose(closer io.ReadCloser, log logger.Logger) {
	if err := closer.Close(); err != nil {
		log.Error("Error closing response body", "error", err)
	}
}
