package kernel

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Coordinate is a real-valued position on one axis of the service area.
type Coordinate float64

const (
	// LocationMinX is the western edge of the service area.
	LocationMinX Coordinate = 0
	// LocationMinY is the southern edge of the service area.
	LocationMinY Coordinate = 0
	// LocationMaxX is the eastern edge of the service area.
	LocationMaxX Coordinate = 10
	// LocationMaxY is the northern edge of the service area.
	LocationMaxY Coordinate = 10

	// GridCells is the number of cells per axis used when sampling random locations.
	// Random locations always fall on a cell centre (0.5+x, 0.5+y).
	GridCells = 10
)

// ErrLocationIsNotConstructed is returned when a zero-value Location is used.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewLocation or NewRandomLocation constructors")

// Location is an immutable point inside the service area.
//
// Coordinates are real numbers in [LocationMin..LocationMax] on both axes, and the
// distance between two locations is the straight-line (Euclidean) distance.
// The zero value is invalid; build locations with NewLocation or NewRandomLocation.
//
// Example:
//
//	loc, err := kernel.NewLocation(2.5, 7.25)
//	if err != nil {
//	    // coordinates outside the service area
//	}
//	fmt.Println(loc) // Location(2.50,7.25)
type Location struct { //nolint:recvcheck //using for validation
	x     Coordinate
	y     Coordinate
	guard guard.ConstructorGuard
}

// NewLocation creates a Location from raw coordinates.
//
// Parameters:
//   - x: position on the X axis, within [LocationMinX..LocationMaxX]
//   - y: position on the Y axis, within [LocationMinY..LocationMaxY]
//
// Returns:
//   - Location: a valid location
//   - error: out-of-range (or NaN) coordinates, both reported when both are wrong
func NewLocation(x Coordinate, y Coordinate) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setX(x), loc.setY(y)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// NewRandomLocation returns the centre of a uniformly chosen grid cell.
func NewRandomLocation() (Location, error) {
	return NewRandomLocationFrom(rand.IntN)
}

// NewRandomLocationFrom is NewRandomLocation with an injectable source of integers,
// typically (*rand.Rand).IntN of a seeded generator.
//
// Example:
//
//	rng := rand.New(rand.NewPCG(42, 0))
//	loc, _ := kernel.NewRandomLocationFrom(rng.IntN)
func NewRandomLocationFrom(intN func(n int) int) (Location, error) {
	return CellCentre(intN(GridCells), intN(GridCells))
}

// CellCentre returns the centre of the grid cell at column cx and row cy (both 0-based).
func CellCentre(cx, cy int) (Location, error) {
	return NewLocation(cellCentre(cx), cellCentre(cy))
}

// SnapToCell returns the grid cell centre closest to (x, y).
// Points exactly on a cell border snap to the lower cell.
func SnapToCell(x, y Coordinate) (Location, error) {
	return CellCentre(nearestCell(x), nearestCell(y))
}

// Validate reports whether the Location was built by a constructor.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// X returns the X coordinate.
func (l Location) X() Coordinate {
	return l.x
}

// Y returns the Y coordinate.
func (l Location) Y() Coordinate {
	return l.y
}

// String implements fmt.Stringer, e.g. "Location(2.50,7.25)".
func (l Location) String() string {
	return fmt.Sprintf("Location(%.2f,%.2f)", l.x, l.y)
}

// IsEqual reports whether both locations have identical coordinates.
// Both locations must be constructed.
func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return l.x == other.x && l.y == other.y, nil
}

// Distance returns the Euclidean distance sqrt(dx²+dy²) between two locations.
//
// Parameters:
//   - other: the location to measure to
//
// Returns:
//   - float64: the straight-line distance, symmetric and zero for equal locations
//   - error: validation error if either location is not constructed
//
// Example:
//
//	a, _ := NewLocation(0, 0)
//	b, _ := NewLocation(3, 4)
//	d, _ := a.Distance(b) // 5
func (l Location) Distance(other Location) (float64, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	dx := float64(l.x - other.x)
	dy := float64(l.y - other.y)
	return math.Sqrt(dx*dx + dy*dy), nil
}

// MoveToward returns the point reached after travelling at most step units
// along the straight line from l to target. The target itself is returned
// when it is no farther than step.
func (l Location) MoveToward(target Location, step float64) (Location, error) {
	distance, err := l.Distance(target)
	if err != nil {
		return Location{}, err
	}
	if step < 0 || math.IsNaN(step) {
		return Location{}, errs.NewValueIsInvalidErrorWithCause("step", fmt.Errorf("%v is negative", step))
	}
	if distance <= step {
		return target, nil
	}

	ratio := Coordinate(step / distance)
	return NewLocation(
		l.x+(target.x-l.x)*ratio,
		l.y+(target.y-l.y)*ratio,
	)
}

// setX sets the x coordinate with validation.
// Private setters use pointer receivers so constructors can validate in place.
func (l *Location) setX(x Coordinate) error {
	if math.IsNaN(float64(x)) || x < LocationMinX || x > LocationMaxX {
		return errs.NewValueIsOutOfRangeError("x", x, LocationMinX, LocationMaxX)
	}

	l.x = x
	return nil
}

// setY sets the y coordinate with validation.
func (l *Location) setY(y Coordinate) error {
	if math.IsNaN(float64(y)) || y < LocationMinY || y > LocationMaxY {
		return errs.NewValueIsOutOfRangeError("y", y, LocationMinY, LocationMaxY)
	}

	l.y = y
	return nil
}

func cellCentre(c int) Coordinate {
	return Coordinate(c) + 0.5
}

func nearestCell(v Coordinate) int {
	c := int(math.Ceil(float64(v))) - 1
	return max(0, min(GridCells-1, c))
}
