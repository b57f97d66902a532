/*package geodesy converts between geodetic coordinates on the WGS84
reference ellipsoid and Earth-Centered Earth-Fixed (ECEF) cartesian
coordinates.

Latitudes, longitudes, azimuths and elevations are given in degrees.
Altitudes and ECEF coordinates are given in meters.*/
package geodesy

import (
	"math"

	"mutransport/geom"
)

const (
	// SemiMajorAxis is the WGS84 equatorial radius in meters.
	SemiMajorAxis = 6378137.0
	// Flattening is the WGS84 flattening of the ellipsoid.
	Flattening = 1.0 / 298.257223563
)

var (
	e2  = Flattening * (2 - Flattening)
	ep2 = e2 / (1 - e2)
	b   = SemiMajorAxis * (1 - Flattening)
)

func radians(deg float64) float64 { return deg * math.Pi / 180 }

// FromGeodetic returns the ECEF position of the point at the given latitude,
// longitude and altitude above the ellipsoid.
func FromGeodetic(lat, lon, alt float64) geom.Vec {
	phi, lam := radians(lat), radians(lon)
	sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)

	n := SemiMajorAxis / math.Sqrt(1-e2*sinPhi*sinPhi)

	return geom.Vec{
		(n + alt) * cosPhi * math.Cos(lam),
		(n + alt) * cosPhi * math.Sin(lam),
		(n*(1-e2) + alt) * sinPhi,
	}
}

// ToGeodetic returns the latitude, longitude and altitude of the given ECEF
// position. The conversion uses Bowring's closed-form approximation, which is
// accurate to well below a millimeter for positions within a few thousand
// kilometers of the surface.
func ToGeodetic(v *geom.Vec) (lat, lon, alt float64) {
	p := math.Sqrt(v[0]*v[0] + v[1]*v[1])
	lam := math.Atan2(v[1], v[0])

	if p < 1e-9 {
		// On the polar axis the longitude is degenerate.
		phi := math.Pi / 2
		if v[2] < 0 {
			phi = -phi
		}
		return phi * 180 / math.Pi, lam * 180 / math.Pi, math.Abs(v[2]) - b
	}

	theta := math.Atan2(v[2]*SemiMajorAxis, p*b)
	sinTh, cosTh := math.Sin(theta), math.Cos(theta)

	phi := math.Atan2(
		v[2]+ep2*b*sinTh*sinTh*sinTh,
		p-e2*SemiMajorAxis*cosTh*cosTh*cosTh,
	)
	sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)

	n := SemiMajorAxis / math.Sqrt(1-e2*sinPhi*sinPhi)
	if math.Abs(cosPhi) > math.Abs(sinPhi) {
		alt = p/cosPhi - n
	} else {
		alt = v[2]/sinPhi - n*(1-e2)
	}

	return phi * 180 / math.Pi, lam * 180 / math.Pi, alt
}

// Altitude returns the altitude of the given ECEF position above the
// ellipsoid (GPS altitude).
func Altitude(v *geom.Vec) float64 {
	_, _, alt := ToGeodetic(v)
	return alt
}

// Horizontal returns the ECEF unit vector pointing from the given latitude
// and longitude along the given azimuth and elevation. The azimuth is
// measured clockwise from geographic north and the elevation upward from the
// local horizontal plane.
func Horizontal(lat, lon, azimuth, elevation float64) geom.Vec {
	phi, lam := radians(lat), radians(lon)
	az, el := radians(azimuth), radians(elevation)

	sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)
	sinLam, cosLam := math.Sin(lam), math.Cos(lam)

	east := geom.Vec{-sinLam, cosLam, 0}
	north := geom.Vec{-sinPhi * cosLam, -sinPhi * sinLam, cosPhi}
	up := geom.Vec{cosPhi * cosLam, cosPhi * sinLam, sinPhi}

	ce, se := math.Cos(el), math.Sin(el)
	ca, sa := math.Cos(az), math.Sin(az)

	var dir geom.Vec
	for i := 0; i < 3; i++ {
		dir[i] = ce*(sa*east[i]+ca*north[i]) + se*up[i]
	}
	dir.NormalizeSelf()
	return dir
}
