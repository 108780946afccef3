package download

import "context"

//go:generate go run go.uber.org/mock/mockgen -source=download.go -destination=mocks/mock.go
type Downloader interface {
	// Download saves the image at url for the user under filename.
	Download(ctx context.Context, url, filename string) error
}

// Factory binds a Downloader to a chat.
type Factory interface {
	ForChat(chatID int64) Downloader
}
