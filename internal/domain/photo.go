package domain

// PhotoSrc holds the pre-cropped image URLs the upstream returns for a photo.
type PhotoSrc struct {
	Original  string
	Large2x   string
	Large     string
	Medium    string
	Small     string
	Portrait  string
	Landscape string
	Tiny      string
}

// Photo is an upstream record. It is displayed and linked, never modified.
type Photo struct {
	ID              int64
	Width           int
	Height          int
	URL             string
	Photographer    string
	PhotographerURL string
	PhotographerID  int64
	AvgColor        string
	Alt             string
	Src             PhotoSrc
}

// Title is the alt text, or an attribution when the photo has none.
func (p Photo) Title() string {
	if p.Alt != "" {
		return p.Alt
	}
	return "Wallpaper by " + p.Photographer
}

// ResultPage is one upstream search response.
type ResultPage struct {
	Photos       []Photo
	Page         int
	PerPage      int
	TotalResults int
	NextPage     string
}

// HasNext reports the upstream continuation indicator.
func (r ResultPage) HasNext() bool {
	return r.NextPage != ""
}

// Aspect is the presentation frame for an image.
type Aspect string

const (
	AspectVideo  Aspect = "video"
	AspectTall   Aspect = "tall"
	AspectSquare Aspect = "square"
)
