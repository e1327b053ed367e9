package parking

import (
	"image"
	"log/slog"
)

// Button identifies the pointer button of a click.
type Button int

const (
	ButtonPrimary Button = iota + 1
	ButtonSecondary
)

// Editor owns the region list being marked on the reference image.
//
// A primary click appends a region at the click point. A secondary click removes
// the first region, in list order, whose rectangle strictly contains the point; when
// regions overlap only the earliest one goes. Every mutation is flushed to the store.
type Editor struct {
	store   Store
	size    Size
	logger  *slog.Logger
	regions []Region
}

// NewEditor loads the current list from store. A missing or unreadable list is
// not an error: the editor starts empty.
func NewEditor(store Store, size Size, logger *slog.Logger) *Editor {
	e := &Editor{store: store, size: size, logger: logger}
	if store == nil {
		return e
	}
	regions, err := store.Load()
	if err != nil {
		if logger != nil {
			logger.Warn("region list unavailable, starting empty", "error", err)
		}
		return e
	}
	e.regions = regions
	if logger != nil {
		logger.Info("regions loaded", "count", len(regions))
	}
	return e
}

// Size returns the region size the editor works with.
func (e *Editor) Size() Size { return e.size }

// Regions returns a copy of the current list.
func (e *Editor) Regions() []Region {
	out := make([]Region, len(e.regions))
	copy(out, e.regions)
	return out
}

// Len returns the number of regions.
func (e *Editor) Len() int { return len(e.regions) }

// Add appends a region with origin p.
func (e *Editor) Add(p image.Point) Region {
	r := Region{X: p.X, Y: p.Y}
	e.regions = append(e.regions, r)
	return r
}

// RemoveAt removes the first region containing p and reports its former index.
func (e *Editor) RemoveAt(p image.Point) (Region, int, bool) {
	for i, r := range e.regions {
		if r.Contains(p, e.size) {
			e.regions = append(e.regions[:i], e.regions[i+1:]...)
			return r, i, true
		}
	}
	return Region{}, -1, false
}

// HandleClick applies a pointer click at p and persists the list when it changed.
// Unknown buttons and secondary clicks that hit no region leave the list untouched.
func (e *Editor) HandleClick(button Button, p image.Point) (changed bool, err error) {
	switch button {
	case ButtonPrimary:
		r := e.Add(p)
		if e.logger != nil {
			e.logger.Info("region added", "x", r.X, "y", r.Y, "count", len(e.regions))
		}
		changed = true
	case ButtonSecondary:
		r, idx, ok := e.RemoveAt(p)
		if !ok {
			return false, nil
		}
		if e.logger != nil {
			e.logger.Info("region removed", "x", r.X, "y", r.Y, "index", idx, "count", len(e.regions))
		}
		changed = true
	default:
		return false, nil
	}
	return changed, e.Save()
}

// Save writes the whole list to the store, replacing its previous contents.
func (e *Editor) Save() error {
	if e.store == nil {
		return nil
	}
	if err := e.store.Save(e.regions); err != nil {
		if e.logger != nil {
			e.logger.Error("region save failed", "error", err)
		}
		return err
	}
	return nil
}
