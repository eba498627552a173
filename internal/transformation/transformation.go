package transformation

import (
	"net/url"
	"strconv"
	"strings"
)

// Step is a single provider transformation. Zero-valued fields are omitted when encoded.
type Step struct {
	Width   int          `json:"width,omitempty"`
	Crop    string       `json:"crop,omitempty"`
	Border  string       `json:"border,omitempty"`
	Effect  string       `json:"effect,omitempty"`
	Color   string       `json:"color,omitempty"`
	Overlay *TextOverlay `json:"overlay,omitempty"`
	Flags   string       `json:"flags,omitempty"`
	Gravity string       `json:"gravity,omitempty"`
	X       *int         `json:"x,omitempty"`
	Y       *int         `json:"y,omitempty"`
}

type TextOverlay struct {
	FontFamily string `json:"font_family"`
	FontSize   int    `json:"font_size"`
	FontWeight string `json:"font_weight,omitempty"`
	Text       string `json:"text"`
}

// Chain is applied by the provider in order.
type Chain []Step

var textEscaper = strings.NewReplacer("%2C", "%252C", "%2F", "%252F")

// String encodes the step as comma separated provider components in key order.
func (s Step) String() string {
	var parts []string
	if s.Border != "" {
		parts = append(parts, "bo_"+s.Border)
	}
	if s.Crop != "" {
		parts = append(parts, "c_"+s.Crop)
	}
	if s.Color != "" {
		parts = append(parts, "co_"+encodeColor(s.Color))
	}
	if s.Effect != "" {
		parts = append(parts, "e_"+s.Effect)
	}
	if s.Flags != "" {
		parts = append(parts, "fl_"+s.Flags)
	}
	if s.Gravity != "" {
		parts = append(parts, "g_"+s.Gravity)
	}
	if s.Overlay != nil {
		parts = append(parts, "l_"+s.Overlay.String())
	}
	if s.Width > 0 {
		parts = append(parts, "w_"+strconv.Itoa(s.Width))
	}
	if s.X != nil {
		parts = append(parts, "x_"+strconv.Itoa(*s.X))
	}
	if s.Y != nil {
		parts = append(parts, "y_"+strconv.Itoa(*s.Y))
	}
	return strings.Join(parts, ",")
}

func (o TextOverlay) String() string {
	style := []string{o.FontFamily, strconv.Itoa(o.FontSize)}
	if o.FontWeight != "" && o.FontWeight != "normal" {
		style = append(style, o.FontWeight)
	}
	return "text:" + strings.Join(style, "_") + ":" + escapeText(o.Text)
}

func (c Chain) String() string {
	steps := make([]string, 0, len(c))
	for _, s := range c {
		if encoded := s.String(); encoded != "" {
			steps = append(steps, encoded)
		}
	}
	return strings.Join(steps, "/")
}

// "#ff0000" becomes "rgb:ff0000"; named colors pass through.
func encodeColor(color string) string {
	if strings.HasPrefix(color, "#") {
		return "rgb:" + strings.TrimPrefix(color, "#")
	}
	return color
}

// commas and slashes must survive the provider's own unescaping of the URL
func escapeText(text string) string {
	return textEscaper.Replace(url.PathEscape(text))
}
