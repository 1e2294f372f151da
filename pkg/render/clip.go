package render

import "github.com/taigrr/facet/pkg/math3d"

// ClipTriangle clips tri against plane and returns zero, one or two
// triangles. Vertices on the plane count as inside. Output triangles keep the
// source's winding, normal, colour, shade and world centroid.
func ClipTriangle(tri Triangle, plane Plane) []Triangle {
	var (
		in   [3]bool
		dist [3]float64
	)
	inside := 0
	for i, p := range tri.P {
		dist[i] = plane.SignedDistance(p.Vec3)
		in[i] = dist[i] >= 0
		if in[i] {
			inside++
		}
	}

	switch inside {
	case 3:
		return []Triangle{tri}
	case 0:
		return nil
	case 1:
		// Walk from the inside vertex so the cyclic order survives.
		i := indexOf(in, true)
		j, k := (i+1)%3, (i+2)%3
		a := tri.P[i]
		ab := crossing(a, tri.P[j], dist[i], dist[j])
		ac := crossing(a, tri.P[k], dist[i], dist[k])
		return []Triangle{tri.withVertices(a, ab, ac)}
	default:
		// Two inside: the quad a, b, b→out, a→out, fanned from a.
		o := indexOf(in, false)
		i, j := (o+1)%3, (o+2)%3
		out, a, b := tri.P[o], tri.P[i], tri.P[j]
		bo := crossing(b, out, dist[j], dist[o])
		ao := crossing(a, out, dist[i], dist[o])
		return []Triangle{
			tri.withVertices(a, b, bo),
			tri.withVertices(a, bo, ao),
		}
	}
}

// crossing returns the point where the edge from an inside vertex (dIn >= 0)
// to an outside one (dOut < 0) meets the plane. dIn - dOut is always
// positive, so the parameter stays in [0, 1).
func crossing(in, out math3d.VecUV, dIn, dOut float64) math3d.VecUV {
	return in.Lerp(out, dIn/(dIn-dOut))
}

func indexOf(in [3]bool, want bool) int {
	for i, v := range in {
		if v == want {
			return i
		}
	}
	return -1
}

// ClipAgainstPlanes clips tri against each plane in turn, feeding every
// survivor of one stage into the next.
func ClipAgainstPlanes(tri Triangle, planes ...Plane) []Triangle {
	queue := []Triangle{tri}
	for _, plane := range planes {
		next := make([]Triangle, 0, len(queue)*2)
		for _, t := range queue {
			next = append(next, ClipTriangle(t, plane)...)
		}
		queue = next
		if len(queue) == 0 {
			break
		}
	}
	return queue
}

// ClipAgainstScreenEdges clips a screen-space triangle to the viewport.
// At most 16 triangles come back.
func ClipAgainstScreenEdges(tri Triangle, width, height int) []Triangle {
	edges := ScreenEdges(width, height)
	return ClipAgainstPlanes(tri, edges[:]...)
}

// ClipAgainstNearPlane removes the part of a view-space triangle behind the
// camera (z < 0).
func ClipAgainstNearPlane(tri Triangle) []Triangle {
	return ClipTriangle(tri, NearPlane(0))
}
