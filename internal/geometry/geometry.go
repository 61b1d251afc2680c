// Package geometry maps cursor offsets from a wheel's center to slot
// indices. It is pure math with no input or rendering dependencies.
package geometry

import "math"

const (
	// NumSectors is the number of equal sectors the circle is split into.
	NumSectors = 8

	// SectorAngle is the angular width of one sector in degrees.
	SectorAngle = 360.0 / NumSectors
)

// Point is a position in screen coordinates (y grows downward).
type Point struct {
	X float64
	Y float64
}

// NoSelection is returned by Resolve when the cursor is inside the dead zone.
const NoSelection = -1

// sectorNames, clockwise from sector 0 straight up.
var sectorNames = [NumSectors]string{
	"up", "up-right", "right", "down-right",
	"down", "down-left", "left", "up-left",
}

// SectorName returns a human-readable direction for a sector index, or ""
// for NoSelection.
func SectorName(i int) string {
	if i < 0 || i >= NumSectors {
		return ""
	}
	return sectorNames[i]
}

// Resolve maps the cursor's offset from origin to a sector index. Sector 0
// is centered straight up and sectors proceed clockwise, each covering a
// half-open 45 degree interval, so an exact boundary angle always resolves
// to the clockwise-next sector. Returns NoSelection when the cursor is
// strictly inside deadZone of the origin.
func Resolve(origin, cursor Point, deadZone float64) int {
	dx := cursor.X - origin.X
	dy := cursor.Y - origin.Y

	if math.Hypot(dx, dy) < deadZone {
		return NoSelection
	}

	// atan2 angle in degrees, normalized to [0, 360). With screen
	// coordinates (y down), increasing angle sweeps clockwise from the
	// +x axis.
	theta := math.Atan2(dy, dx) * 180 / math.Pi
	theta = math.Mod(theta+360, 360)
	return sectorFor(theta)
}

// sectorFor maps a normalized angle in degrees to its sector. Sector 0 is
// centered on straight up (270 in the atan2 frame); shifting by half a
// sector makes each sector the half-open interval [start, start+45), so a
// boundary angle lands in the clockwise-next sector.
func sectorFor(theta float64) int {
	shifted := math.Mod(theta+90+SectorAngle/2, 360)
	return int(shifted/SectorAngle) % NumSectors
}
