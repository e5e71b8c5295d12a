package ogimage

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"strings"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Renderer lays out and paints layout trees with one font family. Faces
// are cached per weight and size; Rasterize calls are serialized because
// font faces are not safe for concurrent use.
type Renderer struct {
	fonts *Fonts

	mu    sync.Mutex
	faces map[faceKey]font.Face
}

type faceKey struct {
	weight Weight
	size   float64
}

// NewRenderer returns a Renderer drawing text with fonts.
func NewRenderer(fonts *Fonts) *Renderer {
	return &Renderer{fonts: fonts, faces: make(map[faceKey]font.Face)}
}

type textProps struct {
	size       float64
	weight     Weight
	lineHeight float64
	color      Fill
}

var defaultProps = textProps{
	size:       16,
	weight:     Regular,
	lineHeight: 1.2,
	color:      Solid{Color: color.RGBA{A: 0xff}},
}

func inherit(parent textProps, s Style) textProps {
	p := parent
	if s.FontSize > 0 {
		p.size = s.FontSize
	}
	if s.FontWeight != 0 {
		p.weight = s.FontWeight
	}
	if s.LineHeight > 0 {
		p.lineHeight = s.LineHeight
	}
	if s.Color != nil {
		p.color = s.Color
	}
	return p
}

// box is a laid-out node: its size after measuring and its position after
// placing.
type box struct {
	node     *Node
	props    textProps
	x, y     int
	w, h     int
	face     font.Face
	lines    []string
	lineH    int
	children []*box
}

// Rasterize lays root out on a width×height canvas and paints it. The root
// always fills the canvas.
func (r *Renderer) Rasterize(root *Node, width, height int) (*image.RGBA, error) {
	if root == nil {
		return nil, errors.New("ogimage: nil root node")
	}
	if width <= 0 || height <= 0 {
		return nil, errors.New("ogimage: canvas size must be positive")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	b, err := r.measure(root, width, defaultProps)
	if err != nil {
		return nil, err
	}
	b.w, b.h = width, height
	place(b, 0, 0)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	paint(dst, b)
	return dst, nil
}

// RenderPNG rasterizes root and writes it to w as PNG.
func (r *Renderer) RenderPNG(w io.Writer, root *Node, width, height int) error {
	img, err := r.Rasterize(root, width, height)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

func (r *Renderer) face(weight Weight, size float64) (font.Face, error) {
	key := faceKey{weight: weight, size: size}
	if f, ok := r.faces[key]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(r.fonts.pick(weight), &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	r.faces[key] = f
	return f, nil
}

// measure sizes n given avail pixels for its margin box.
func (r *Renderer) measure(n *Node, avail int, parent textProps) (*box, error) {
	s := n.Style
	b := &box{node: n, props: inherit(parent, s)}

	outer := avail - s.Margin.Left - s.Margin.Right
	if s.Width > 0 {
		outer = s.Width
	}

	if n.Kind == KindText {
		face, err := r.face(b.props.weight, b.props.size)
		if err != nil {
			return nil, err
		}
		b.face = face
		b.lineH = int(math.Ceil(b.props.size * b.props.lineHeight))
		b.lines = wrap(face, n.Text, outer, s.MaxLines)
		for _, l := range b.lines {
			b.w = max(b.w, font.MeasureString(face, l).Ceil())
		}
		b.h = len(b.lines) * b.lineH
		if s.Width > 0 {
			b.w = s.Width
		}
		if s.Height > 0 {
			b.h = s.Height
		}
		return b, nil
	}

	inner := outer - s.Padding.Left - s.Padding.Right
	contentW, contentH, used, inFlow := 0, 0, 0, 0
	for _, c := range n.Children {
		if c.Style.Absolute {
			cb, err := r.measure(c, inner, b.props)
			if err != nil {
				return nil, err
			}
			b.children = append(b.children, cb)
			continue
		}
		childAvail := inner
		if s.Direction == Row {
			if inFlow > 0 {
				used += s.Gap
			}
			childAvail = inner - used
		}
		cb, err := r.measure(c, childAvail, b.props)
		if err != nil {
			return nil, err
		}
		mw := cb.w + c.Style.Margin.Left + c.Style.Margin.Right
		mh := cb.h + c.Style.Margin.Top + c.Style.Margin.Bottom
		if s.Direction == Row {
			used += mw
			contentW = used
			contentH = max(contentH, mh)
		} else {
			if inFlow > 0 {
				contentH += s.Gap
			}
			contentH += mh
			contentW = max(contentW, mw)
		}
		inFlow++
		b.children = append(b.children, cb)
	}

	b.w = contentW + s.Padding.Left + s.Padding.Right
	if s.Width > 0 {
		b.w = s.Width
	}
	b.h = contentH + s.Padding.Top + s.Padding.Bottom
	if s.Height > 0 {
		b.h = s.Height
	}
	return b, nil
}

// place assigns positions to b's children once b itself sits at (x, y).
func place(b *box, x, y int) {
	b.x, b.y = x, y
	s := b.node.Style
	cx, cy := x+s.Padding.Left, y+s.Padding.Top
	innerW := b.w - s.Padding.Left - s.Padding.Right
	innerH := b.h - s.Padding.Top - s.Padding.Bottom

	first := true
	for _, c := range b.children {
		cs := c.node.Style
		if cs.Absolute {
			place(c,
				b.x+b.w-cs.Right-cs.Margin.Right-c.w,
				b.y+b.h-cs.Bottom-cs.Margin.Bottom-c.h)
			continue
		}
		if s.Direction == Row {
			if !first {
				cx += s.Gap
			}
			off := crossOffset(s.AlignItems, innerH, c.h+cs.Margin.Top+cs.Margin.Bottom)
			place(c, cx+cs.Margin.Left, cy+cs.Margin.Top+off)
			cx += cs.Margin.Left + c.w + cs.Margin.Right
		} else {
			if !first {
				cy += s.Gap
			}
			off := crossOffset(s.AlignItems, innerW, c.w+cs.Margin.Left+cs.Margin.Right)
			place(c, cx+cs.Margin.Left+off, cy+cs.Margin.Top)
			cy += cs.Margin.Top + c.h + cs.Margin.Bottom
		}
		first = false
	}
}

func crossOffset(a Align, avail, size int) int {
	switch a {
	case AlignCenter:
		return max(0, (avail-size)/2)
	case AlignEnd:
		return max(0, avail-size)
	}
	return 0
}

func paint(dst *image.RGBA, b *box) {
	rect := image.Rect(b.x, b.y, b.x+b.w, b.y+b.h)
	if bg := b.node.Style.Background; bg != nil && !rect.Empty() {
		draw.Draw(dst, rect, bg.Image(rect), rect.Min, draw.Over)
	}
	if b.node.Kind == KindText && len(b.lines) > 0 {
		paintText(dst, b)
	}
	for _, c := range b.children {
		paint(dst, c)
	}
}

// paintText draws the lines into an alpha mask, then pushes the text fill
// through it. Glyphs may overflow the line box, so the mask is padded.
func paintText(dst *image.RGBA, b *box) {
	m := b.face.Metrics()
	ascent, descent := m.Ascent.Ceil(), m.Descent.Ceil()
	ov := ascent + descent

	mask := image.NewAlpha(image.Rect(-ov, -ov, b.w+ov, b.h+ov))
	d := &font.Drawer{Dst: mask, Src: image.Opaque, Face: b.face}
	for i, line := range b.lines {
		top := i*b.lineH + (b.lineH-ov)/2
		d.Dot = fixed.P(0, top+ascent)
		d.DrawString(line)
	}

	area := image.Rect(b.x-ov, b.y-ov, b.x+b.w+ov, b.y+b.h+ov)
	draw.DrawMask(dst, area, b.props.color.Image(area), area.Min, mask, image.Pt(-ov, -ov), draw.Over)
}

// wrap breaks text into lines no wider than maxW. A word wider than maxW
// gets a line of its own. With maxLines > 0 the overflow is cut and the
// last line ends in an ellipsis.
func wrap(face font.Face, text string, maxW, maxLines int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	cur := words[0]
	for _, w := range words[1:] {
		candidate := cur + " " + w
		if maxW > 0 && font.MeasureString(face, candidate).Ceil() > maxW {
			lines = append(lines, cur)
			cur = w
			continue
		}
		cur = candidate
	}
	lines = append(lines, cur)

	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
		last := []rune(lines[maxLines-1])
		for len(last) > 0 && maxW > 0 && font.MeasureString(face, string(last)+"…").Ceil() > maxW {
			last = last[:len(last)-1]
		}
		lines[maxLines-1] = strings.TrimRight(string(last), " ") + "…"
	}
	return lines
}
