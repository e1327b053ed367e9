package parking

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/soocke/parking-watch-go/config"
	"github.com/soocke/parking-watch-go/domain/vision"
)

// DefaultThreshold is the occupancy count from which a space is considered taken.
const DefaultThreshold = 850

// Classifier labels each region of a processed frame as free or occupied by
// counting its foreground pixels.
type Classifier struct {
	regions   []Region
	size      Size
	threshold int
	logger    *slog.Logger
	warned    map[int]bool
}

// NewClassifier builds a classifier over a fixed region list. The list is copied.
func NewClassifier(regions []Region, size Size, threshold int, logger *slog.Logger) *Classifier {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	rs := make([]Region, len(regions))
	copy(rs, regions)
	return &Classifier{regions: rs, size: size, threshold: threshold, logger: logger, warned: make(map[int]bool)}
}

// LoadClassifier reads the region list from store and builds a classifier from cfg.
// Unlike the editor, the classifier cannot run without the list.
func LoadClassifier(store Store, cfg *config.Config, logger *slog.Logger) (*Classifier, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	regions, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoRegions, err)
	}
	if logger != nil {
		logger.Info("regions loaded", "count", len(regions))
	}
	size := Size{Width: cfg.RegionWidth, Height: cfg.RegionHeight}
	return NewClassifier(regions, size, cfg.OccupiedThreshold, logger), nil
}

// Regions returns a copy of the classified regions.
func (c *Classifier) Regions() []Region {
	out := make([]Region, len(c.regions))
	copy(out, c.regions)
	return out
}

// Size returns the region size.
func (c *Classifier) Size() Size { return c.size }

// Threshold returns the occupied threshold.
func (c *Classifier) Threshold() int { return c.threshold }

// StatusFor classifies a single occupancy count.
func (c *Classifier) StatusFor(count int) Status {
	if count < c.threshold {
		return StatusFree
	}
	return StatusOccupied
}

// Classify crops every region out of the processed mask and counts its foreground.
// Regions reaching past the mask edge are counted over their visible part and
// reported once through the logger.
func (c *Classifier) Classify(processed *image.Gray) Occupancy {
	occ := Occupancy{Spaces: make([]Space, 0, len(c.regions)), Total: len(c.regions)}
	for i, r := range c.regions {
		crop, inBounds := vision.Crop(processed, r.Rect(c.size))
		count := vision.CountNonZero(crop)
		status := c.StatusFor(count)
		if status == StatusFree {
			occ.Free++
		}
		if !inBounds && !c.warned[i] {
			c.warned[i] = true
			if c.logger != nil {
				c.logger.Warn("region extends past frame", "index", i, "x", r.X, "y", r.Y)
			}
		}
		occ.Spaces = append(occ.Spaces, Space{Region: r, Count: count, Status: status, InBounds: inBounds})
	}
	return occ
}
