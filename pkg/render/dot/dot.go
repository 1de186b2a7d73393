package dot

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/cardspace/pkg/errors"
	"github.com/matzehuels/cardspace/pkg/layout"
	"github.com/matzehuels/cardspace/pkg/records"
	"github.com/matzehuels/cardspace/pkg/scene"
)

// View selects the projection plane.
type View string

const (
	// Front looks down -Z: x right, y up.
	Front View = "front"
	// Top looks down -Y: x right, -z up.
	Top View = "top"
	// Side looks down -X: z right, y up.
	Side View = "side"
)

// Output formats accepted by [Render].
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
)

// Card footprint in world units.
const (
	cardWidth  = 120.0
	cardHeight = 160.0
)

// Node is one card to draw.
type Node struct {
	ID       string
	Label    string
	Group    string
	Position mgl64.Vec3
}

// Options configures DOT generation.
type Options struct {
	View View
	// Scale divides world units into points. Defaults to 4.
	Scale float64
	Title string
}

// ParseView returns the view named s.
func ParseView(s string) (View, error) {
	switch v := View(strings.ToLower(s)); v {
	case Front, Top, Side:
		return v, nil
	case "":
		return Front, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown view %q (want front, top or side)", s)
}

// FromTargets pairs a target set with the records it was computed for.
// Records beyond the target set are ignored.
func FromTargets(set layout.TargetSet, recs []records.Record) []Node {
	nodes := make([]Node, len(set))
	for i, t := range set {
		n := Node{ID: strconv.Itoa(i), Label: strconv.Itoa(i + 1), Position: t.Position}
		if i < len(recs) {
			n.Label = recs[i].Name
			n.Group = recs[i].Fields["group"]
		}
		nodes[i] = n
	}
	return nodes
}

// FromSnapshot converts live card states.
func FromSnapshot(states []scene.CardState) []Node {
	nodes := make([]Node, len(states))
	for i, s := range states {
		nodes[i] = Node{ID: s.ID, Label: s.Name, Position: s.Position}
	}
	return nodes
}

// ToDOT emits an undirected graph with one pinned box per node.
func ToDOT(nodes []Node, opts Options) string {
	if opts.Scale <= 0 {
		opts.Scale = 4
	}
	if opts.View == "" {
		opts.View = Front
	}

	ordered := slices.Clone(nodes)
	slices.SortStableFunc(ordered, func(a, b Node) int {
		return cmp.Compare(depth(a.Position, opts.View), depth(b.Position, opts.View))
	})

	w := cardWidth / opts.Scale / 72
	h := cardHeight / opts.Scale / 72

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=false;\n")
	buf.WriteString("  outputorder=nodesfirst;\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", opts.Title)
	}
	fmt.Fprintf(&buf, "  node [shape=box, style=\"rounded,filled\", fillcolor=\"#0d2b2bcc\", color=\"#7fffffb0\", fontcolor=white, fontsize=8, fixedsize=true, width=%s, height=%s];\n",
		fmtFloat(w), fmtFloat(h))
	buf.WriteString("\n")

	for _, n := range ordered {
		x, y := project(n.Position, opts.View)
		attrs := []string{
			fmt.Sprintf("label=%q", n.Label),
			fmt.Sprintf("pos=\"%s,%s!\"", fmtFloat(x/opts.Scale), fmtFloat(y/opts.Scale)),
		}
		if n.Group != "" {
			attrs = append(attrs, fmt.Sprintf("fillcolor=%q", groupColor(n.Group)))
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func project(p mgl64.Vec3, v View) (x, y float64) {
	switch v {
	case Top:
		return p[0], -p[2]
	case Side:
		return p[2], p[1]
	default:
		return p[0], p[1]
	}
}

// depth grows toward the viewer.
func depth(p mgl64.Vec3, v View) float64 {
	switch v {
	case Top:
		return p[1]
	case Side:
		return p[0]
	default:
		return p[2]
	}
}

var groupPalette = []string{"#1f4e5fcc", "#5f1f4ecc", "#4e5f1fcc", "#1f5f2ecc", "#5f3b1fcc", "#2e1f5fcc"}

func groupColor(g string) string {
	var h uint32
	for i := 0; i < len(g); i++ {
		h = h*31 + uint32(g[i])
	}
	return groupPalette[h%uint32(len(groupPalette))]
}

func fmtFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

// Render produces the DOT source itself or renders it to SVG or PNG.
func Render(ctx context.Context, src, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatDOT:
		return []byte(src), nil
	case FormatSVG:
		return RenderSVG(ctx, src)
	case FormatPNG:
		return RenderPNG(ctx, src)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (want dot, svg or png)", format)
}

// RenderSVG renders DOT source to SVG.
func RenderSVG(ctx context.Context, src string) ([]byte, error) {
	out, err := renderGraphviz(ctx, src, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders DOT source to PNG.
func RenderPNG(ctx context.Context, src string) ([]byte, error) {
	return renderGraphviz(ctx, src, graphviz.PNG)
}

func renderGraphviz(ctx context.Context, src string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(src))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root tag so the SVG scales with its
// container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
