package model

import (
	"time"

	"github.com/soocke/parking-watch-go/domain/parking"
)

// MonitorStats is a snapshot of the monitor phase.
type MonitorStats struct {
	Frames  int
	Loops   int
	Free    int
	Total   int
	Elapsed time.Duration
}

// FPS returns the average processed frame rate.
func (s MonitorStats) FPS() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Frames) / s.Elapsed.Seconds()
}

// MonitorModel accumulates per-frame results. Presenters push frames with OnFrame
// and poll Values for the status line. The zero value is ready to use.
type MonitorModel struct {
	started time.Time
	last    time.Time
	frames  int
	loops   int
	latest  parking.Occupancy
}

// NewMonitorModel returns a ready-to-use MonitorModel.
func NewMonitorModel() *MonitorModel { return &MonitorModel{} }

// OnFrame records one classified frame. loops is the source's rewind count.
func (m *MonitorModel) OnFrame(occ parking.Occupancy, loops int, now time.Time) {
	if m == nil {
		return
	}
	if m.frames == 0 {
		m.started = now
	}
	m.frames++
	m.loops = loops
	m.last = now
	m.latest = occ
}

// Latest returns the most recent occupancy.
func (m *MonitorModel) Latest() parking.Occupancy {
	if m == nil {
		return parking.Occupancy{}
	}
	return m.latest
}

// Values returns the accumulated statistics.
func (m *MonitorModel) Values() MonitorStats {
	if m == nil {
		return MonitorStats{}
	}
	return MonitorStats{
		Frames:  m.frames,
		Loops:   m.loops,
		Free:    m.latest.Free,
		Total:   m.latest.Total,
		Elapsed: m.last.Sub(m.started),
	}
}
