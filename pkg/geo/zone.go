package geo

// Zone is a half-open rectangle [MinY,MaxY) x [MinX,MaxX) in absolute
// fractional units (see FractionalCoord.Y and FractionalCoord.X).
type Zone struct {
	MinY, MaxY int64
	MinX, MaxX int64
}

// ZoneFromMicro builds a zone from microdegree bounds.
func ZoneFromMicro(minLat, maxLat, minLon, maxLon int) Zone {
	return Zone{
		MinY: int64(minLat) * LatFractions,
		MaxY: int64(maxLat) * LatFractions,
		MinX: int64(minLon) * LonFractions,
		MaxX: int64(maxLon) * LonFractions,
	}
}

// Empty reports whether the zone contains no point.
func (z Zone) Empty() bool {
	return z.MaxY <= z.MinY || z.MaxX <= z.MinX
}

// Intersect returns the overlap of z and o. The result may be empty.
func (z Zone) Intersect(o Zone) Zone {
	r := z
	if o.MinY > r.MinY {
		r.MinY = o.MinY
	}
	if o.MaxY < r.MaxY {
		r.MaxY = o.MaxY
	}
	if o.MinX > r.MinX {
		r.MinX = o.MinX
	}
	if o.MaxX < r.MaxX {
		r.MaxX = o.MaxX
	}
	return r
}

// Union returns the bounding box of z and o. An empty z yields o.
func (z Zone) Union(o Zone) Zone {
	if z.Empty() {
		return o
	}
	r := z
	if o.MinY < r.MinY {
		r.MinY = o.MinY
	}
	if o.MaxY > r.MaxY {
		r.MaxY = o.MaxY
	}
	if o.MinX < r.MinX {
		r.MinX = o.MinX
	}
	if o.MaxX > r.MaxX {
		r.MaxX = o.MaxX
	}
	return r
}

// Midpoint returns the center of the zone in degrees, normalized.
func (z Zone) Midpoint() (lat, lon float64) {
	y := float64(z.MinY) + float64(z.MaxY-z.MinY)/2
	x := float64(z.MinX) + float64(z.MaxX-z.MinX)/2
	return unitsToDegrees(y, x)
}

// MidpointMicro returns the center of the zone in whole microdegrees,
// rounded towards the lower-left corner.
func (z Zone) MidpointMicro() Coord32 {
	fc := FromUnits(z.MinY+(z.MaxY-z.MinY)/2, z.MinX+(z.MaxX-z.MinX)/2)
	return fc.Coord32
}
