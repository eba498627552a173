package transformation

import (
	"fmt"
	"time"
)

const (
	GravityNorthWest = "north_west"
	GravityNorthEast = "north_east"
	GravitySouthEast = "south_east"

	ColorWhite = "#ffffff"
	ColorRed   = "#ff0000"

	overlayFontFamily = "Courier"
	overlayFontSize   = 15
	overlayFontWeight = "bold"
	overlayOffset     = 15
)

// TextLayer returns the define/apply step pair that renders one caption at the gravity corner.
func TextLayer(text, gravity, color string) []Step {
	if color == "" {
		color = ColorWhite
	}
	x, y := overlayOffset, overlayOffset
	return []Step{
		{
			Color: color,
			Overlay: &TextOverlay{
				FontFamily: overlayFontFamily,
				FontSize:   overlayFontSize,
				FontWeight: overlayFontWeight,
				Text:       text,
			},
		},
		{
			Flags:   "layer_apply",
			Gravity: gravity,
			X:       &x,
			Y:       &y,
		},
	}
}

// DateText formats t as D-M-YYYY without zero padding.
func DateText(t time.Time) string {
	return fmt.Sprintf("%d-%d-%d", t.Day(), int(t.Month()), t.Year())
}

// CCTV builds the security-camera look applied to every upload: scale, border,
// noise, desaturation, contrast, then the date, REC and camera captions.
func CCTV(now time.Time) Chain {
	chain := Chain{
		{Width: 500, Crop: "scale"},
		{Border: "5px_solid_rgb:00ffffff"},
		{Effect: "noise:50"},
		{Effect: "saturation:-100"},
		{Effect: "contrast:50"},
	}
	chain = append(chain, TextLayer(DateText(now), GravityNorthWest, "")...)
	chain = append(chain, TextLayer("REC", GravityNorthEast, ColorRed)...)
	chain = append(chain, TextLayer("Camera 1", GravitySouthEast, "")...)
	return chain
}
