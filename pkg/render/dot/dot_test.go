package dot

import (
	"context"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/matzehuels/cardspace/pkg/errors"
	"github.com/matzehuels/cardspace/pkg/layout"
	"github.com/matzehuels/cardspace/pkg/records"
	"github.com/matzehuels/cardspace/pkg/scene"
)

func TestToDOT(t *testing.T) {
	nodes := []Node{
		{ID: "near", Label: "Near", Position: mgl64.Vec3{400, -200, 100}},
		{ID: "far", Label: "Far", Group: "noble", Position: mgl64.Vec3{0, 0, -100}},
	}
	out := ToDOT(nodes, Options{Title: "helix"})

	for _, want := range []string{
		"graph G {",
		"layout=neato;",
		`label="helix";`,
		`"near" [label="Near", pos="100.00,-50.00!"];`,
		`"far" [label="Far", pos="0.00,0.00!", fillcolor=`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("DOT missing %q\n%s", want, out)
		}
	}

	// Farther cards come first so nearer ones are drawn on top.
	if strings.Index(out, `"far"`) > strings.Index(out, `"near"`) {
		t.Error("far card should be emitted before near card")
	}
}

func TestProject(t *testing.T) {
	p := mgl64.Vec3{1, 2, 3}
	tests := []struct {
		view View
		x, y float64
	}{
		{Front, 1, 2},
		{Top, 1, -3},
		{Side, 3, 2},
	}
	for _, tt := range tests {
		x, y := project(p, tt.view)
		if x != tt.x || y != tt.y {
			t.Errorf("project(%v, %s) = (%v, %v), want (%v, %v)", p, tt.view, x, y, tt.x, tt.y)
		}
	}
}

func TestParseView(t *testing.T) {
	if v, err := ParseView("TOP"); err != nil || v != Top {
		t.Errorf("ParseView(TOP) = %v, %v", v, err)
	}
	if v, err := ParseView(""); err != nil || v != Front {
		t.Errorf("ParseView(\"\") = %v, %v", v, err)
	}
	if _, err := ParseView("iso"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ParseView(iso) error = %v", err)
	}
}

func TestFromTargets(t *testing.T) {
	set, err := layout.Compute(layout.Table, 3, nil)
	if err != nil {
		t.Fatal(err)
	}
	recs := []records.Record{{Name: "H", Fields: map[string]string{"group": "x"}}, {Name: "He"}}

	nodes := FromTargets(set, recs)
	if len(nodes) != 3 {
		t.Fatalf("len = %d, want 3", len(nodes))
	}
	if nodes[0].Label != "H" || nodes[0].Group != "x" || nodes[2].Label != "3" {
		t.Errorf("nodes = %+v", nodes)
	}
	if nodes[1].Position != set[1].Position {
		t.Errorf("position = %v, want %v", nodes[1].Position, set[1].Position)
	}
}

func TestFromSnapshot(t *testing.T) {
	card := scene.NewCard(records.Record{Name: "Li"}, mgl64.Vec3{1, 2, 3})
	nodes := FromSnapshot([]scene.CardState{card.State()})
	if nodes[0].ID != card.ID() || nodes[0].Label != "Li" || nodes[0].Position != (mgl64.Vec3{1, 2, 3}) {
		t.Errorf("node = %+v", nodes[0])
	}
}

func TestRenderFormats(t *testing.T) {
	src := ToDOT(nil, Options{})
	out, err := Render(context.Background(), src, "DOT")
	if err != nil || string(out) != src {
		t.Errorf("Render(dot) = %q, %v", out, err)
	}
	if _, err := Render(context.Background(), src, "gif"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Render(gif) error = %v", err)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 10.00 20.00"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10.00 20.00" width="10" height="20">`) {
		t.Errorf("normalizeViewBox = %s", out)
	}
}
