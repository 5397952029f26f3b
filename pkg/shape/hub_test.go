package shape

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"

	"github.com/Boomstam/dronegen/pkg/geom"
)

func TestBuildHubSphereCounts(t *testing.T) {
	m, err := BuildHub(HubParams{BaseShape: Sphere, Scale: geom.V3(1, 1, 1)})
	if err != nil {
		t.Fatalf("BuildHub: %v", err)
	}
	// 25 latitude rows of 49 columns, seam duplicated.
	if got := m.VertexCount(); got != 1225 {
		t.Errorf("vertex count = %d, want 1225", got)
	}
	// Pole rows contribute one triangle per quad instead of two.
	if got := m.TriangleCount(); got != 2208 {
		t.Errorf("triangle count = %d, want 2208", got)
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestBuildHubCubeCounts(t *testing.T) {
	m, err := BuildHub(HubParams{BaseShape: Cube, Scale: geom.V3(1, 1, 1)})
	if err != nil {
		t.Fatalf("BuildHub: %v", err)
	}
	// 6 faces of 9x9 grids with duplicated borders.
	if got := m.VertexCount(); got != 486 {
		t.Errorf("vertex count = %d, want 486", got)
	}
	if got := m.TriangleCount(); got != 768 {
		t.Errorf("triangle count = %d, want 768", got)
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestBuildHubScaleIsFullExtent(t *testing.T) {
	for _, base := range []BaseShape{Sphere, Cube} {
		t.Run(base.String(), func(t *testing.T) {
			m, err := BuildHub(HubParams{BaseShape: base, Scale: geom.V3(2, 1, 0.5)})
			if err != nil {
				t.Fatalf("BuildHub: %v", err)
			}
			min, max := m.Bounds()
			if math32.Abs(min.X+1) > 1e-4 || math32.Abs(max.X-1) > 1e-4 {
				t.Errorf("X bounds = [%v, %v], want [-1, 1]", min.X, max.X)
			}
			if math32.Abs(min.Y+0.5) > 1e-4 || math32.Abs(max.Y-0.5) > 1e-4 {
				t.Errorf("Y bounds = [%v, %v], want [-0.5, 0.5]", min.Y, max.Y)
			}
			if math32.Abs(min.Z+0.25) > 1e-4 || math32.Abs(max.Z-0.25) > 1e-4 {
				t.Errorf("Z bounds = [%v, %v], want [-0.25, 0.25]", min.Z, max.Z)
			}
		})
	}
}

func TestBuildHubTaperNarrowsTop(t *testing.T) {
	p := HubParams{BaseShape: Cube, Scale: geom.V3(1, 1, 1), Taper: 0.6, TaperDirection: BottomToTop}
	m, err := BuildHub(p)
	if err != nil {
		t.Fatalf("BuildHub: %v", err)
	}

	// Max |x| among top-row vertices is scaled by 1-taper; bottom row
	// keeps the full half extent.
	var topMax, botMax float32
	for i := 0; i < m.VertexCount(); i++ {
		v := m.Vertex(i)
		ax := math32.Abs(v.X)
		switch {
		case math32.Abs(v.Y-0.5) < 1e-4 && ax > topMax:
			topMax = ax
		case math32.Abs(v.Y+0.5) < 1e-4 && ax > botMax:
			botMax = ax
		}
	}
	if math32.Abs(botMax-0.5) > 1e-4 {
		t.Errorf("bottom half extent = %v, want 0.5", botMax)
	}
	if math32.Abs(topMax-0.2) > 1e-4 {
		t.Errorf("top half extent = %v, want 0.2", topMax)
	}
}

func TestBuildHubTaperBackToFront(t *testing.T) {
	p := HubParams{BaseShape: Cube, Scale: geom.V3(1, 1, 1), Taper: 0.5, TaperDirection: BackToFront}
	m, err := BuildHub(p)
	if err != nil {
		t.Fatalf("BuildHub: %v", err)
	}
	// X axis is the taper axis: narrowing applies to Y and Z at +X.
	var frontMaxY float32
	for i := 0; i < m.VertexCount(); i++ {
		v := m.Vertex(i)
		if math32.Abs(v.X-0.5) < 1e-4 && math32.Abs(v.Y) > frontMaxY {
			frontMaxY = math32.Abs(v.Y)
		}
	}
	if math32.Abs(frontMaxY-0.25) > 1e-4 {
		t.Errorf("front half height = %v, want 0.25", frontMaxY)
	}
}

func TestBuildHubInvalidParams(t *testing.T) {
	tests := []struct {
		name string
		p    HubParams
	}{
		{"zero scale", HubParams{Scale: geom.V3(0, 1, 1)}},
		{"negative scale", HubParams{Scale: geom.V3(1, -1, 1)}},
		{"taper above 1", HubParams{Scale: geom.V3(1, 1, 1), Taper: 1.5}},
		{"negative taper", HubParams{Scale: geom.V3(1, 1, 1), Taper: -0.1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := BuildHub(tt.p); !errors.Is(err, geom.ErrInvalidParameter) {
				t.Errorf("got %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestSurfacePoint(t *testing.T) {
	p := HubParams{BaseShape: Sphere, Scale: geom.V3(2, 1, 1)}
	got := SurfacePoint(p, geom.V3(1, 0, 0))
	if math32.Abs(got.X-1) > 1e-5 || got.Y != 0 || got.Z != 0 {
		t.Errorf("SurfacePoint(+X) = %+v, want (1,0,0)", got)
	}

	// With full bottom-to-top taper at the equator the factor is
	// taperFactor(0.5) = 0.75.
	p.Taper = 0.5
	got = SurfacePoint(p, geom.V3(1, 0, 0))
	if math32.Abs(got.X-0.75) > 1e-5 {
		t.Errorf("tapered SurfacePoint X = %v, want 0.75", got.X)
	}
}
