package images

import (
	"image"
	"strconv"

	"github.com/soocke/parking-watch-go/domain/parking"
)

// Thickness holds the outline widths for the two occupancy states.
type Thickness struct {
	Free     int
	Occupied int
}

// DefaultThickness matches the reference rendering: free spaces stand out.
var DefaultThickness = Thickness{Free: 4, Occupied: 2}

// BannerOrigin is where the free counter is drawn.
var BannerOrigin = image.Pt(100, 50)

// RenderRegions draws every region outline over a copy of ref, as shown while editing.
func RenderRegions(ref image.Image, regions []parking.Region, size parking.Size) *image.RGBA {
	out := ToRGBA(ref)
	for _, r := range regions {
		DrawRect(out, r.Rect(size), Magenta, 2)
	}
	return out
}

// RenderOccupancy annotates a copy of frame with each space's outline and count
// and with the free counter banner.
func RenderOccupancy(frame image.Image, occ parking.Occupancy, size parking.Size, th Thickness) *image.RGBA {
	out := ToRGBA(frame)
	for _, sp := range occ.Spaces {
		c, t := Red, th.Occupied
		if sp.Status == parking.StatusFree {
			c, t = Green, th.Free
		}
		label := image.Pt(sp.Region.X, sp.Region.Y+size.Height-3)
		PutTextRect(out, strconv.Itoa(sp.Count), label, TextStyle{Scale: 1, Thickness: 2, Box: c, Offset: 0})
		DrawRect(out, sp.Region.Rect(size), c, t)
	}
	PutTextRect(out, occ.Banner(), BannerOrigin, TextStyle{Scale: 3, Thickness: 4, Box: BannerGreen, Offset: 20})
	return out
}
