package feed

import (
	"testing"

	"github.com/orgball2608/wallify-bot/internal/domain"
)

func TestGridImageURL(t *testing.T) {
	full := domain.PhotoSrc{
		Original:  "original",
		Large2x:   "large2x",
		Large:     "large",
		Medium:    "medium",
		Portrait:  "portrait",
		Landscape: "landscape",
	}

	tests := []struct {
		name     string
		src      domain.PhotoSrc
		category domain.Category
		want     string
	}{
		{"desktop prefers landscape", full, domain.CategoryDesktop, "landscape"},
		{"desktop falls back to large2x", domain.PhotoSrc{Large2x: "large2x", Large: "large", Original: "original"}, domain.CategoryDesktop, "large2x"},
		{"desktop falls back to original", domain.PhotoSrc{Original: "original"}, domain.CategoryDesktop, "original"},
		{"smartphone prefers portrait", full, domain.CategorySmartphone, "portrait"},
		{"smartphone skips large2x", domain.PhotoSrc{Large2x: "large2x", Medium: "medium", Original: "original"}, domain.CategorySmartphone, "medium"},
		{"unknown category", full, domain.Category("tablet"), "large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GridImageURL(domain.Photo{Src: tt.src}, tt.category); got != tt.want {
				t.Errorf("GridImageURL = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPreviewImageURL(t *testing.T) {
	if got := PreviewImageURL(domain.Photo{Src: domain.PhotoSrc{Large2x: "l2x", Original: "o"}}); got != "l2x" {
		t.Errorf("got %q", got)
	}
	if got := PreviewImageURL(domain.Photo{Src: domain.PhotoSrc{Original: "o"}}); got != "o" {
		t.Errorf("got %q", got)
	}
}

func TestPreviewAspect(t *testing.T) {
	tests := []struct {
		w, h int
		want domain.Aspect
	}{
		{1920, 1080, domain.AspectVideo},
		{400, 800, domain.AspectTall},
		{1000, 1000, domain.AspectSquare},
		{1200, 1000, domain.AspectSquare},
		{1000, 1200, domain.AspectSquare},
		{1201, 1000, domain.AspectVideo},
	}
	for _, tt := range tests {
		if got := PreviewAspect(domain.Photo{Width: tt.w, Height: tt.h}); got != tt.want {
			t.Errorf("PreviewAspect(%dx%d) = %s, want %s", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestDownloadFilename(t *testing.T) {
	tests := []struct {
		photographer string
		want         string
	}{
		{"Simon Berger", "wallify_Simon_Berger_1323550.jpg"},
		{"Zoë O'Brien", "wallify_Zo_OBrien_1323550.jpg"},
		{"a &  b", "wallify_a_b_1323550.jpg"},
	}
	for _, tt := range tests {
		if got := DownloadFilename(domain.Photo{ID: 1323550, Photographer: tt.photographer}); got != tt.want {
			t.Errorf("DownloadFilename(%q) = %q, want %q", tt.photographer, got, tt.want)
		}
	}
}
