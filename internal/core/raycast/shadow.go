package raycast

import "chosenoffset.com/raycaster/internal/core/geom"

// CastShadow casts the secondary ray from a wall hit point towards a light.
func (c *Caster) CastShadow(hitPoint, light geom.Vector2) RayHit {
	return c.Cast(hitPoint, geom.Bearing(hitPoint, light))
}

// InShadow reports whether a primary hit is unlit by a point light. The
// surface is unlit when it faces away from the light, or when the shadow ray
// finds a wall strictly nearer than the light. A light sitting on the hit
// point always lights it.
func (c *Caster) InShadow(hit RayHit, light geom.Vector2) bool {
	if !hit.Solid {
		return false
	}

	toLight := light.Sub(hit.Point)
	lightDistSq := toLight.LenSq()
	if lightDistSq == 0 {
		return false
	}

	// back face: the outward normal points away from the light
	if hit.Normal.Dot(toLight) < 0 {
		return true
	}

	s := c.CastShadow(hit.Point, light)
	return s.Solid && geom.DistanceSq(hit.Point, s.Point) < lightDistSq
}
