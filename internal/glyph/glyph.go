// Package glyph renders a Snapshot as the three-bar tray icon and formats
// its tooltip. Every function is pure: the same Snapshot and size always
// produce the same pixels.
package glyph

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/agbru/l3p/internal/snapshot"
)

const (
	// DefaultSize is the edge length of the icon in pixels.
	DefaultSize = 64
	// MinSize is the smallest icon that still leaves room for three bars.
	MinSize = 8
)

var (
	background = color.RGBA{30, 30, 30, 255}
	emptyBar   = color.RGBA{50, 50, 50, 255}
	outline    = color.RGBA{150, 150, 150, 255}
)

// Gradient is the dark-to-bright ramp of one bar, bottom to top.
type Gradient struct {
	From, To color.RGBA
}

// Bar colors in display order: CPU, Mem, Disk.
var Gradients = [3]Gradient{
	{From: color.RGBA{0, 180, 0, 255}, To: color.RGBA{0, 255, 0, 255}},
	{From: color.RGBA{180, 0, 0, 255}, To: color.RGBA{255, 0, 0, 255}},
	{From: color.RGBA{0, 0, 180, 255}, To: color.RGBA{0, 0, 255, 255}},
}

// At returns the gradient color at t in [0, 1].
func (g Gradient) At(t float64) color.RGBA {
	from, _ := colorful.MakeColor(g.From)
	to, _ := colorful.MakeColor(g.To)
	r, gr, b := from.BlendRgb(to, t).RGB255()
	return color.RGBA{r, gr, b, 255}
}

// Layout is the pixel geometry of an icon of a given size.
type Layout struct {
	Size     int
	Pad      int
	BarWidth int
}

// NewLayout computes the geometry for size, raised to MinSize if smaller.
func NewLayout(size int) Layout {
	size = max(size, MinSize)
	pad := max(1, size/16)
	return Layout{Size: size, Pad: pad, BarWidth: (size - pad*4) / 3}
}

// BarX returns the left edge of bar i's interior.
func (l Layout) BarX(i int) int { return l.Pad + i*(l.BarWidth+l.Pad) }

// Top and Bottom bound the bar interior rows as [Top, Bottom).
func (l Layout) Top() int    { return l.Pad }
func (l Layout) Bottom() int { return l.Size - l.Pad }

// MaxExtent is the number of rows a 100% bar fills.
func (l Layout) MaxExtent() int { return l.Bottom() - l.Top() }

// FillExtent returns how many of maxExtent rows a bar at pct fills:
// round(pct/100*maxExtent), with pct clamped to [0, 100].
func FillExtent(pct float64, maxExtent int) int {
	pct = snapshot.ClampPercent(pct)
	return int(math.Round(pct / 100 * float64(maxExtent)))
}

// Render draws s as a size×size icon.
func Render(s snapshot.Snapshot, size int) *image.RGBA {
	l := NewLayout(size)
	img := image.NewRGBA(image.Rect(0, 0, l.Size, l.Size))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	for i, pct := range s.Percents() {
		x := l.BarX(i)
		interior := image.Rect(x, l.Top(), x+l.BarWidth, l.Bottom())
		draw.Draw(img, interior, image.NewUniform(emptyBar), image.Point{}, draw.Src)
		strokeRect(img, interior.Inset(-1), outline)

		fill := FillExtent(pct, l.MaxExtent())
		for row := 0; row < fill; row++ {
			y := l.Bottom() - 1 - row
			c := Gradients[i].At(float64(row) / float64(l.MaxExtent()))
			draw.Draw(img, image.Rect(x, y, x+l.BarWidth, y+1), image.NewUniform(c), image.Point{}, draw.Src)
		}
	}
	return img
}

// strokeRect draws the one-pixel border of r.
func strokeRect(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	r = r.Intersect(img.Bounds())
	for x := r.Min.X; x < r.Max.X; x++ {
		img.SetRGBA(x, r.Min.Y, c)
		img.SetRGBA(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.SetRGBA(r.Min.X, y, c)
		img.SetRGBA(r.Max.X-1, y, c)
	}
}

// Tooltip formats s as "CPU: x.x% | Mem: y.y% | Disk: z.z%".
func Tooltip(s snapshot.Snapshot) string {
	return fmt.Sprintf("CPU: %.1f%% | Mem: %.1f%% | Disk: %.1f%%", s.CPU, s.Mem, s.Disk)
}
