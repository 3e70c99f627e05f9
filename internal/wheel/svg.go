package wheel

import (
	"bufio"
	"fmt"
	"html"
	"io"

	"github.com/Makepad-fr/spinwin/internal/model"
)

// RenderSVG writes a standalone SVG of the wheel turned by rotation, with
// the pointer at the top.
func RenderSVG(w io.Writer, items []model.Item, rotation float64, l Layout) error {
	bw := bufio.NewWriter(w)
	size := 2 * l.Radius
	cx, cy := num(l.CenterX), num(l.CenterY)
	fontSize := l.Radius * 0.08

	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s">`+"\n",
		num(l.CenterX-l.Radius), num(l.CenterY-l.Radius-fontSize), num(size), num(size+fontSize))
	fmt.Fprintf(bw, `  <g transform="rotate(%s, %s, %s)">`+"\n", num(rotation), cx, cy)
	for _, s := range l.Slices(items) {
		fmt.Fprintf(bw, `    <path d="%s" fill="%s" stroke="white" stroke-width="2"/>`+"\n",
			s.Path, html.EscapeString(s.Item.Color))
		fmt.Fprintf(bw, `    <text x="%s" y="%s" fill="white" font-size="%s" font-weight="bold" text-anchor="middle" dominant-baseline="middle" transform="rotate(%s, %s, %s)">%s</text>`+"\n",
			num(s.Label.X), num(s.Label.Y), num(fontSize),
			num(s.Label.Rotation), num(s.Label.X), num(s.Label.Y),
			html.EscapeString(s.Item.Label))
	}
	bw.WriteString("  </g>\n")

	tip := l.PointAt(RestOffset, 0, l.Radius*0.92)
	half := fontSize * 0.6
	top := l.CenterY - l.Radius - fontSize
	fmt.Fprintf(bw, `  <polygon points="%s,%s %s,%s %s,%s" fill="white" stroke="#333" stroke-width="1"/>`+"\n",
		num(tip.X-half), num(top), num(tip.X+half), num(top), num(tip.X), num(tip.Y))
	fmt.Fprintf(bw, `  <circle cx="%s" cy="%s" r="%s" fill="white"/>`+"\n", cx, cy, num(l.Radius*0.08))
	bw.WriteString("</svg>\n")
	return bw.Flush()
}
