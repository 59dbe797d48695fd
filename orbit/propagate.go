package orbit

import (
	"fmt"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"
)

// Vec3 is an Earth-centred Earth-fixed position in kilometres.
type Vec3 struct {
	X, Y, Z float64
}

// minLineLen is the shortest line go-satellite can slice without panicking.
const minLineLen = 69

// PositionAt runs SGP4 on the retained TLE lines and returns the ECEF
// position at time t. This backs the track command only; the catalog build
// path never propagates.
func PositionAt(line1, line2 string, t time.Time) (Vec3, error) {
	if len(line1) < minLineLen || len(line2) < minLineLen {
		return Vec3{}, fmt.Errorf("TLE lines must be at least %d columns (got %d and %d)",
			minLineLen, len(line1), len(line2))
	}

	sat := satellite.TLEToSat(line1, line2, satellite.GravityWGS72)

	year, month, day := t.UTC().Date()
	hour, min, sec := t.UTC().Clock()

	posECI, _ := satellite.Propagate(sat, year, int(month), day, hour, min, sec)
	jd := satellite.JDay(year, int(month), day, hour, min, sec)
	gmst := satellite.ThetaG_JD(jd)
	posECEF := satellite.ECIToECEF(posECI, gmst)

	// go-satellite works in kilometres already.
	return Vec3{X: posECEF.X, Y: posECEF.Y, Z: posECEF.Z}, nil
}
