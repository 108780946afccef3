package feed

import (
	"fmt"

	"github.com/orgball2608/wallify-bot/internal/domain"
	"github.com/orgball2608/wallify-bot/pkg/formatter"
)

// aspectThreshold is the ratio past which a photo stops being framed as square.
const aspectThreshold = 1.2

// GridImageURL picks the thumbnail crop for the category, falling back through
// progressively less specific sizes.
func GridImageURL(p domain.Photo, category domain.Category) string {
	switch category {
	case domain.CategoryDesktop:
		return firstNonEmpty(p.Src.Landscape, p.Src.Large2x, p.Src.Large, p.Src.Original)
	case domain.CategorySmartphone:
		return firstNonEmpty(p.Src.Portrait, p.Src.Large, p.Src.Medium, p.Src.Original)
	default:
		return p.Src.Large
	}
}

func PreviewImageURL(p domain.Photo) string {
	return firstNonEmpty(p.Src.Large2x, p.Src.Original)
}

func PreviewAspect(p domain.Photo) domain.Aspect {
	w, h := float64(p.Width), float64(p.Height)
	switch {
	case w > aspectThreshold*h:
		return domain.AspectVideo
	case h > aspectThreshold*w:
		return domain.AspectTall
	default:
		return domain.AspectSquare
	}
}

// DownloadFilename is wallify_<photographer>_<id>.jpg with the photographer
// reduced to filename-safe characters.
func DownloadFilename(p domain.Photo) string {
	return fmt.Sprintf("wallify_%s_%d.jpg", formatter.SanitizeFilenamePart(p.Photographer), p.ID)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
