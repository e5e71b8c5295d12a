package blog

import (
	"image/color"

	"github.com/velocidadescape/blog/ogimage"
)

// Preview image size in pixels.
const (
	ImageWidth  = 1200
	ImageHeight = 630
)

// Brand is the signature drawn in the corner of every preview image.
type Brand struct {
	Author string
	Domain string
}

var (
	cardBlue  = ogimage.MustHex("#3b82f6")
	cardBlack = ogimage.MustHex("#000000")

	cardBackground = ogimage.LinearGradient{
		Angle: 180,
		Stops: []color.RGBA{ogimage.MustHex("#dbf4ff"), ogimage.MustHex("#fff1f1")},
	}
	cardDomainFill = ogimage.LinearGradient{
		Angle: 90,
		Stops: []color.RGBA{ogimage.MustHex("#db2777"), ogimage.MustHex("#2563eb")},
	}
)

// PostCard returns the layout of a post's preview image: the title, the
// formatted publish date under it, and the brand in the bottom-right corner.
func PostCard(p Post, brand Brand, locale string) *ogimage.Node {
	heading := ogimage.Box(ogimage.Style{Gap: 8},
		ogimage.Text(ogimage.Style{
			FontSize:   75,
			FontWeight: ogimage.Bold,
			LineHeight: 1,
			Margin:     ogimage.Edges{Bottom: 15},
			Color:      ogimage.Solid{Color: cardBlue},
			MaxLines:   4,
		}, p.Title),
		ogimage.Text(ogimage.Style{
			FontSize:   25,
			LineHeight: 1.4,
			Color:      ogimage.Solid{Color: cardBlack},
		}, FormatDate(p.PubDate, WithLocale(locale))),
	)

	return ogimage.Box(ogimage.Style{
		Padding:    ogimage.All(60),
		Background: cardBackground,
		Color:      ogimage.Solid{Color: cardBlack},
	},
		heading,
		brandNode(brand),
	)
}

func brandNode(brand Brand) *ogimage.Node {
	var parts []*ogimage.Node
	if brand.Author != "" {
		parts = append(parts, ogimage.Text(ogimage.Style{Color: ogimage.Solid{Color: cardBlack}}, brand.Author))
	}
	if brand.Author != "" && brand.Domain != "" {
		parts = append(parts, ogimage.Text(ogimage.Style{
			Color:  ogimage.Solid{Color: cardBlue},
			Margin: ogimage.Horizontal(15),
		}, "•"))
	}
	if brand.Domain != "" {
		parts = append(parts, ogimage.Text(ogimage.Style{Color: cardDomainFill}, brand.Domain))
	}
	return ogimage.Box(ogimage.Style{
		Absolute:   true,
		Right:      30,
		Bottom:     30,
		Direction:  ogimage.Row,
		AlignItems: ogimage.AlignCenter,
		Gap:        2,
		FontSize:   30,
	}, parts...)
}
