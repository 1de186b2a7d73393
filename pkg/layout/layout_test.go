package layout

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/matzehuels/cardspace/pkg/errors"
)

func TestComputeLength(t *testing.T) {
	for _, kind := range Kinds() {
		for _, n := range []int{0, 1, 2, 3, 10, 199, 200, 201, 1000} {
			set, err := Compute(kind, n, nil)
			if err != nil {
				t.Fatalf("Compute(%s, %d) error: %v", kind, n, err)
			}
			if len(set) != n {
				t.Errorf("len(Compute(%s, %d)) = %d, want %d", kind, n, len(set), n)
			}
		}
	}
}

func TestComputeErrors(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		n    int
		code errors.Code
	}{
		{"negative count", Table, -1, errors.ErrCodeDegenerateInput},
		{"negative count sphere", Sphere, -5, errors.ErrCodeDegenerateInput},
		{"unknown kind", Kind("cube"), 10, errors.ErrCodeUnknownLayout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute(tt.kind, tt.n, nil)
			if !errors.Is(err, tt.code) {
				t.Errorf("Compute(%s, %d) error = %v, want code %s", tt.kind, tt.n, err, tt.code)
			}
		})
	}
}

func TestComputeFor(t *testing.T) {
	records := []string{"a", "b", "c"}
	set, err := ComputeFor(Helix, records, nil)
	if err != nil {
		t.Fatalf("ComputeFor error: %v", err)
	}
	want, _ := Compute(Helix, 3, nil)
	if diff := cmp.Diff(want, set); diff != "" {
		t.Errorf("ComputeFor mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeAll(t *testing.T) {
	targets, err := ComputeAll(42, nil)
	if err != nil {
		t.Fatalf("ComputeAll error: %v", err)
	}
	if len(targets) != len(Kinds()) {
		t.Fatalf("ComputeAll returned %d sets, want %d", len(targets), len(Kinds()))
	}
	for _, k := range Kinds() {
		if len(targets[k]) != 42 {
			t.Errorf("len(targets[%s]) = %d, want 42", k, len(targets[k]))
		}
	}

	if _, err := ComputeAll(-1, nil); !errors.Is(err, errors.ErrCodeDegenerateInput) {
		t.Errorf("ComputeAll(-1) error = %v, want DEGENERATE_INPUT", err)
	}
}

func TestKinds(t *testing.T) {
	want := []Kind{Table, Sphere, Helix, Grid, Tetrahedron}
	if diff := cmp.Diff(want, Kinds()); diff != "" {
		t.Errorf("Kinds() mismatch (-want +got):\n%s", diff)
	}

	got := Kinds()
	got[0] = "mutated"
	if Kinds()[0] != Table {
		t.Error("Kinds() should return a copy")
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in     string
		want   Kind
		wantOK bool
	}{
		{"table", Table, true},
		{"sphere", Sphere, true},
		{"helix", Helix, true},
		{"grid", Grid, true},
		{"tetrahedron", Tetrahedron, true},
		{"nonexistent", "", false},
		{"Table", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseKind(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseKind(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestTableFirstRow(t *testing.T) {
	set, err := Compute(Table, 20, nil)
	if err != nil {
		t.Fatal(err)
	}

	if got, want := set[0].Position.X(), -(20.0*160)/2; got != want {
		t.Errorf("first x = %v, want %v", got, want)
	}
	for i := 1; i < 20; i++ {
		prev, cur := set[i-1].Position, set[i].Position
		if cur.Y() != prev.Y() {
			t.Errorf("y[%d] = %v, want %v (constant across row)", i, cur.Y(), prev.Y())
		}
		if cur.X()-prev.X() != 160 {
			t.Errorf("x[%d]-x[%d] = %v, want 160", i, i-1, cur.X()-prev.X())
		}
		if cur.Z() != 0 {
			t.Errorf("z[%d] = %v, want 0", i, cur.Z())
		}
	}
	if set[0].LookAt != nil || set[0].Rotation != nil {
		t.Error("table cards should have no orientation")
	}
}

func TestTableOverflow(t *testing.T) {
	set, err := Compute(Table, 260, nil)
	if err != nil {
		t.Fatal(err)
	}
	// Row 12 continues below the centered 10-row block.
	got := set[240].Position
	want := mgl64.Vec3{-1600, -(12 * 180) + 900, 0}
	if got != want {
		t.Errorf("position[240] = %v, want %v", got, want)
	}
}

func TestGridInverts(t *testing.T) {
	const n = 200
	set, err := Compute(Grid, n, nil)
	if err != nil {
		t.Fatal(err)
	}

	for i, tr := range set {
		p := tr.Position
		x := int((p.X() + 10*200/2) / 200)
		y := int((p.Y() + 4*200/2) / 200)
		z := int((p.Z() + 5*200/2) / 200)

		want := GridCell{X: i % 10, Y: (i / 10) / 5, Z: (i / 10) % 5}
		if got := (GridCell{x, y, z}); got != want {
			t.Errorf("cell[%d] = %+v, want %+v", i, got, want)
		}
		if got := GridCellOf(i, nil); got != want {
			t.Errorf("GridCellOf(%d) = %+v, want %+v", i, got, want)
		}
	}
}

func TestTetrahedronLayers(t *testing.T) {
	set, err := Compute(Tetrahedron, 11, nil)
	if err != nil {
		t.Fatal(err)
	}

	layerOf := func(tr Transform) int {
		return int(math.Round((600 - tr.Position.Y()) / 160))
	}

	wantLayers := []int{1, 2, 2, 2, 3, 3, 3, 3, 3, 3, 4}
	for i, tr := range set {
		if got := layerOf(tr); got != wantLayers[i] {
			t.Errorf("layer[%d] = %d, want %d", i, got, wantLayers[i])
		}
	}

	var sizes []int
	for i, tr := range set[:10] {
		if i == 0 || layerOf(tr) != layerOf(set[i-1]) {
			sizes = append(sizes, 0)
		}
		sizes[len(sizes)-1]++
	}
	if diff := cmp.Diff([]int{1, 3, 6}, sizes); diff != "" {
		t.Errorf("layer sizes mismatch (-want +got):\n%s", diff)
	}
}

func TestTetraCursor(t *testing.T) {
	want := []TetraCursor{
		{1, 0, 0},
		{2, 0, 0}, {2, 1, 0}, {2, 1, 1},
		{3, 0, 0}, {3, 1, 0}, {3, 1, 1}, {3, 2, 0}, {3, 2, 1}, {3, 2, 2},
		{4, 0, 0},
	}

	cur := NewTetraCursor()
	var got []TetraCursor
	for range want {
		var slot TetraCursor
		slot, cur = cur.Next()
		got = append(got, slot)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("slots mismatch (-want +got):\n%s", diff)
	}
}

func TestTetrahedronPositions(t *testing.T) {
	set, err := Compute(Tetrahedron, 3, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := []mgl64.Vec3{
		{0, 440, -90},
		{0, 280, -180},
		{-90, 280, 0},
	}
	for i, w := range want {
		if got := set[i].Position; got != w {
			t.Errorf("position[%d] = %v, want %v", i, got, w)
		}
		if set[i].LookAt != nil {
			t.Errorf("LookAt[%d] set with face-center disabled", i)
		}
	}
}

func TestTetrahedronFaceCenter(t *testing.T) {
	opts := DefaultOptions()
	opts.TetraFaceCenter = true

	set, err := Compute(Tetrahedron, 10, &opts)
	if err != nil {
		t.Fatal(err)
	}

	// Layer 3 holds records 4..9; its centroid is the mean of their positions.
	var sum mgl64.Vec3
	for _, tr := range set[4:10] {
		sum = sum.Add(tr.Position)
	}
	centroid := sum.Mul(1.0 / 6)

	for i := 4; i < 10; i++ {
		if set[i].LookAt == nil {
			t.Fatalf("LookAt[%d] = nil with face-center enabled", i)
		}
		if !set[i].LookAt.ApproxEqualThreshold(centroid, 1e-9) {
			t.Errorf("LookAt[%d] = %v, want %v", i, *set[i].LookAt, centroid)
		}
	}
}

func TestSphereRadius(t *testing.T) {
	for _, n := range []int{1, 2, 7, 100, 500} {
		set, err := Compute(Sphere, n, nil)
		if err != nil {
			t.Fatal(err)
		}
		for i, tr := range set {
			d := tr.Position.Len()
			if math.Abs(d-900)/900 > 1e-6 {
				t.Errorf("n=%d: |position[%d]| = %v, want 900", n, i, d)
			}
			if tr.LookAt == nil {
				t.Fatalf("n=%d: LookAt[%d] = nil", n, i)
			}
			if !tr.LookAt.ApproxEqualThreshold(tr.Position.Mul(2), 1e-9) {
				t.Errorf("n=%d: LookAt[%d] = %v, want 2*position", n, i, *tr.LookAt)
			}
		}
	}
}

func TestSphereSingleRecord(t *testing.T) {
	set, err := Compute(Sphere, 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := mgl64.Vec3{0, 900, 0}
	if got := set[0].Position; !got.ApproxEqualThreshold(want, 1e-9) {
		t.Errorf("position = %v, want %v", got, want)
	}
	q := set[0].Orientation()
	if math.IsNaN(q.W) || math.IsNaN(q.V.X()) {
		t.Errorf("orientation = %v, want finite quaternion", q)
	}
}

func TestHelix(t *testing.T) {
	set, err := Compute(Helix, 4, nil)
	if err != nil {
		t.Fatal(err)
	}

	approx := cmpopts.EquateApprox(0, 1e-9)
	want := []mgl64.Vec3{
		{700, 1250, 0},
		{-700, 1250, 0},
		{700 * math.Cos(0.15), 1220, 700 * math.Sin(0.15)},
		{700 * math.Cos(0.15+math.Pi), 1220, 700 * math.Sin(0.15+math.Pi)},
	}
	for i, w := range want {
		if diff := cmp.Diff(w, set[i].Position, approx); diff != "" {
			t.Errorf("position[%d] mismatch (-want +got):\n%s", i, diff)
		}
		p := set[i].Position
		wantTarget := mgl64.Vec3{p.X() * 2, p.Y(), p.Z() * 2}
		if diff := cmp.Diff(wantTarget, *set[i].LookAt, approx); diff != "" {
			t.Errorf("look-at[%d] mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestLookAtQuat(t *testing.T) {
	tests := []struct {
		name        string
		pos, target mgl64.Vec3
	}{
		{"outward x", mgl64.Vec3{700, 0, 0}, mgl64.Vec3{1400, 0, 0}},
		{"outward diagonal", mgl64.Vec3{100, 200, 300}, mgl64.Vec3{200, 400, 600}},
		{"toward viewer", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, 10}},
		{"away from viewer", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, -10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := LookAtQuat(tt.pos, tt.target)
			got := q.Rotate(mgl64.Vec3{0, 0, 1})
			want := tt.target.Sub(tt.pos).Normalize()
			if !got.ApproxEqualThreshold(want, 1e-9) {
				t.Errorf("front = %v, want %v", got, want)
			}
		})
	}
}

func TestLookAtQuatStraightUp(t *testing.T) {
	q := LookAtQuat(mgl64.Vec3{0, 900, 0}, mgl64.Vec3{0, 1800, 0})
	got := q.Rotate(mgl64.Vec3{0, 0, 1})
	if !got.ApproxEqualThreshold(mgl64.Vec3{0, 1, 0}, 1e-3) {
		t.Errorf("front = %v, want ~(0,1,0)", got)
	}
}

func TestOrientation(t *testing.T) {
	flat := Transform{Position: mgl64.Vec3{1, 2, 3}}
	if q := flat.Orientation(); !q.ApproxEqual(mgl64.QuatIdent()) {
		t.Errorf("flat orientation = %v, want identity", q)
	}

	yaw := Transform{Rotation: &Euler{Yaw: math.Pi / 2}}
	got := yaw.Orientation().Rotate(mgl64.Vec3{0, 0, 1})
	if !got.ApproxEqualThreshold(mgl64.Vec3{1, 0, 0}, 1e-9) {
		t.Errorf("yawed front = %v, want (1,0,0)", got)
	}
}
