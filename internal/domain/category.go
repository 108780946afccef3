package domain

import (
	"fmt"
	"strings"
)

// Category is the device class a feed is browsed for.
type Category string

const (
	CategoryDesktop    Category = "desktop"
	CategorySmartphone Category = "smartphone"
)

// Orientation values accepted by the upstream search endpoint.
const (
	OrientationLandscape = "landscape"
	OrientationPortrait  = "portrait"
)

// Orientation maps the category to the upstream orientation filter.
func (c Category) Orientation() string {
	if c == CategoryDesktop {
		return OrientationLandscape
	}
	return OrientationPortrait
}

func (c Category) Valid() bool {
	return c == CategoryDesktop || c == CategorySmartphone
}

// GridAspect is the aspect used for thumbnails of this category.
func (c Category) GridAspect() Aspect {
	if c == CategoryDesktop {
		return AspectVideo
	}
	return AspectTall
}

func (c Category) Label() string {
	switch c {
	case CategoryDesktop:
		return "Desktop"
	case CategorySmartphone:
		return "Smartphone"
	default:
		return string(c)
	}
}

func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

// Preset is a canned search term offered in the categories menu.
type Preset struct {
	Label string
	Value string
}

type PresetGroup struct {
	Label   string
	Presets []Preset
}

var PresetGroups = []PresetGroup{
	{
		Label: "Popular",
		Presets: []Preset{
			{Label: "Nature", Value: "Nature"},
			{Label: "Abstract", Value: "Abstract"},
			{Label: "Minimalist", Value: "Minimalist"},
			{Label: "Space", Value: "Space"},
		},
	},
	{
		Label: "Places",
		Presets: []Preset{
			{Label: "City", Value: "City"},
			{Label: "Mountains", Value: "Mountains"},
			{Label: "Ocean", Value: "Ocean"},
			{Label: "Forest", Value: "Forest"},
		},
	},
	{
		Label: "Mood",
		Presets: []Preset{
			{Label: "Dark", Value: "Dark"},
			{Label: "Pastel", Value: "Pastel"},
			{Label: "Neon", Value: "Neon"},
			{Label: "Vintage", Value: "Vintage"},
		},
	},
}
