package domain

import "time"

type DownloadRecord struct {
	ID        int
	ChatID    int64
	PhotoID   int64
	Filename  string
	CreatedAt time.Time
}
