package pexelsimpl

import "github.com/orgball2608/wallify-bot/internal/domain"

// searchResponse is the JSON body of GET /v1/search.
type searchResponse struct {
	Page         int           `json:"page"`
	PerPage      int           `json:"per_page"`
	TotalResults int           `json:"total_results"`
	NextPage     string        `json:"next_page,omitempty"`
	PrevPage     string        `json:"prev_page,omitempty"`
	Photos       []photoResult `json:"photos"`
}

type photoResult struct {
	ID              int64     `json:"id"`
	Width           int       `json:"width"`
	Height          int       `json:"height"`
	URL             string    `json:"url"`
	Photographer    string    `json:"photographer"`
	PhotographerURL string    `json:"photographer_url"`
	PhotographerID  int64     `json:"photographer_id"`
	AvgColor        string    `json:"avg_color"`
	Alt             string    `json:"alt"`
	Src             srcResult `json:"src"`
}

type srcResult struct {
	Original  string `json:"original"`
	Large2x   string `json:"large2x"`
	Large     string `json:"large"`
	Medium    string `json:"medium"`
	Small     string `json:"small"`
	Portrait  string `json:"portrait"`
	Landscape string `json:"landscape"`
	Tiny      string `json:"tiny"`
}

func (r searchResponse) toResultPage() *domain.ResultPage {
	photos := make([]domain.Photo, 0, len(r.Photos))
	for _, p := range r.Photos {
		photos = append(photos, domain.Photo{
			ID:              p.ID,
			Width:           p.Width,
			Height:          p.Height,
			URL:             p.URL,
			Photographer:    p.Photographer,
			PhotographerURL: p.PhotographerURL,
			PhotographerID:  p.PhotographerID,
			AvgColor:        p.AvgColor,
			Alt:             p.Alt,
			Src: domain.PhotoSrc{
				Original:  p.Src.Original,
				Large2x:   p.Src.Large2x,
				Large:     p.Src.Large,
				Medium:    p.Src.Medium,
				Small:     p.Src.Small,
				Portrait:  p.Src.Portrait,
				Landscape: p.Src.Landscape,
				Tiny:      p.Src.Tiny,
			},
		})
	}

	return &domain.ResultPage{
		Photos:       photos,
		Page:         r.Page,
		PerPage:      r.PerPage,
		TotalResults: r.TotalResults,
		NextPage:     r.NextPage,
	}
}
