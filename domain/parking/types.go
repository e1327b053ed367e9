package parking

import (
	"errors"
	"fmt"
	"image"
)

// ErrNoRegions is returned when a region list is required but none could be read.
var ErrNoRegions = errors.New("parking: no regions")

// Size is the width and height shared by every region.
type Size struct {
	Width  int
	Height int
}

// DefaultSize is the empirically chosen size of one parking space in the reference footage.
var DefaultSize = Size{Width: 106, Height: 46}

// Region marks one parking space by the top-left corner of its rectangle.
// Regions have no identity beyond their position in a list.
type Region struct {
	X, Y int
}

// Origin returns the region's top-left corner.
func (r Region) Origin() image.Point { return image.Pt(r.X, r.Y) }

// Rect returns the region's rectangle for the given size.
func (r Region) Rect(s Size) image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+s.Width, r.Y+s.Height)
}

// Contains reports whether p lies strictly inside the region's rectangle.
// Points on the outline do not count.
func (r Region) Contains(p image.Point, s Size) bool {
	return r.X < p.X && p.X < r.X+s.Width && r.Y < p.Y && p.Y < r.Y+s.Height
}

func (r Region) String() string { return fmt.Sprintf("(%d,%d)", r.X, r.Y) }

// Status is the classification of one region in one frame.
type Status int

const (
	StatusFree Status = iota
	StatusOccupied
)

func (s Status) String() string {
	switch s {
	case StatusFree:
		return "free"
	case StatusOccupied:
		return "occupied"
	default:
		return "unknown"
	}
}

// Space pairs a region with its occupancy count and classification for one frame.
type Space struct {
	Region   Region
	Count    int
	Status   Status
	InBounds bool
}

// Occupancy is the classification of every region in one frame.
type Occupancy struct {
	Spaces []Space
	Free   int
	Total  int
}

// Occupied returns the number of regions classified as occupied.
func (o Occupancy) Occupied() int { return o.Total - o.Free }

// Banner formats the free counter shown over the frame.
func (o Occupancy) Banner() string { return fmt.Sprintf("Free: %d/%d", o.Free, o.Total) }
