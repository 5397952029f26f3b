// Package arm routes connecting arms from the drone body surface to
// each rotor and builds tube meshes along the resulting polylines.
// Routing consults the rotor's protective ring: an arm that would pass
// through the ring annulus is bowed vertically around it.
package arm

import (
	"github.com/chewxy/math32"

	"github.com/Boomstam/dronegen/pkg/geom"
)

// RingGeometry describes a rotor's protective ring for clearance
// checks. Center.Y is the ring plane height.
type RingGeometry struct {
	Center      geom.Vec3 `json:"center"`
	InnerRadius float32   `json:"innerRadius"`
	OuterRadius float32   `json:"outerRadius"`
	Clearance   float32   `json:"clearance"`
}

// Path is an ordered sequence of at least two waypoints from the body
// surface anchor to the rotor hub anchor.
type Path struct {
	Waypoints []geom.Vec3 `json:"waypoints"`
}

// Length returns the total polyline length.
func (p Path) Length() float32 {
	var sum float32
	for i := 1; i < len(p.Waypoints); i++ {
		sum += p.Waypoints[i].DistanceTo(p.Waypoints[i-1])
	}
	return sum
}

// PointAt returns the point at normalized arc-length position t along
// the polyline.
func (p Path) PointAt(t float32) geom.Vec3 {
	if len(p.Waypoints) == 0 {
		return geom.Vec3{}
	}
	target := geom.Clamp01(t) * p.Length()
	for i := 1; i < len(p.Waypoints); i++ {
		a, b := p.Waypoints[i-1], p.Waypoints[i]
		seg := b.DistanceTo(a)
		if target <= seg || i == len(p.Waypoints)-1 {
			if seg == 0 {
				return a
			}
			return a.Add(b.Sub(a).Scale(target / seg))
		}
		target -= seg
	}
	return p.Waypoints[len(p.Waypoints)-1]
}

// bowFractions are the arc-length positions of the 5-waypoint
// ring-avoiding polyline.
var bowFractions = [5]float32{0, 1.0 / 3, 0.5, 2.0 / 3, 1}

// bowScale converts ring penetration depth into vertical excursion.
const bowScale = 2

// RouteArm computes the arm polyline from the body-surface anchor to
// the rotor-hub anchor. Without a ring, or when the direct segment
// already clears the ring, the path is the two-point segment. When the
// direct segment's closest horizontal approach to the ring center is
// inside OuterRadius+Clearance, the path is replaced by a 5-waypoint
// polyline that bows vertically away from the ring plane, toward
// whichever side the body anchor already favors, with an excursion
// proportional to the penetration depth.
func RouteArm(bodyAnchor, rotorAnchor geom.Vec3, ring *RingGeometry) Path {
	direct := Path{Waypoints: []geom.Vec3{bodyAnchor, rotorAnchor}}
	if ring == nil {
		return direct
	}

	limit := ring.OuterRadius + ring.Clearance
	closest := horizontalSegmentDistance(ring.Center, bodyAnchor, rotorAnchor)
	if closest >= limit {
		return direct
	}

	penetration := limit - closest
	excursion := bowScale * (penetration + ring.Clearance)
	side := float32(1)
	if bodyAnchor.Y < ring.Center.Y {
		side = -1
	}

	wps := make([]geom.Vec3, 0, len(bowFractions))
	span := rotorAnchor.Sub(bodyAnchor)
	for _, t := range bowFractions {
		wp := bodyAnchor.Add(span.Scale(t))
		wp.Y += side * excursion * geom.Bulge(t)
		wps = append(wps, wp)
	}
	// The bulge vanishes at both ends; pin the endpoints so the path
	// terminates exactly on the anchors despite rounding in the lerp.
	wps[0] = bodyAnchor
	wps[len(wps)-1] = rotorAnchor
	return Path{Waypoints: wps}
}

// horizontalSegmentDistance returns the distance from point c to the
// segment (a, b), all projected onto the XZ plane.
func horizontalSegmentDistance(c, a, b geom.Vec3) float32 {
	ax, az := a.X, a.Z
	dx, dz := b.X-ax, b.Z-az
	lenSq := dx*dx + dz*dz
	t := float32(0)
	if lenSq > 0 {
		t = geom.Clamp01(((c.X-ax)*dx + (c.Z-az)*dz) / lenSq)
	}
	px, pz := ax+t*dx, az+t*dz
	return math32.Sqrt((c.X-px)*(c.X-px) + (c.Z-pz)*(c.Z-pz))
}
