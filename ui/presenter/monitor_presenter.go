package presenter

import (
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/soocke/parking-watch-go/domain/parking"
	"github.com/soocke/parking-watch-go/ui/images"
	"github.com/soocke/parking-watch-go/ui/model"
)

// FrameSource yields frames forever, rewinding at the end of the stream.
type FrameSource interface {
	Read() (image.Image, error)
	Loops() int
}

// FrameProcessor turns a frame into the binary occupancy map.
type FrameProcessor interface {
	Process(frame image.Image) *image.Gray
}

// OccupancyClassifier classifies every region of a processed frame.
type OccupancyClassifier interface {
	Classify(processed *image.Gray) parking.Occupancy
	Size() parking.Size
}

// MonitorPresenter runs one classification step per tick and shows the result.
type MonitorPresenter struct {
	Source     FrameSource
	Pipeline   FrameProcessor
	Classifier OccupancyClassifier
	View       FrameView
	Model      *model.MonitorModel
	Thickness  images.Thickness
	Now        func() time.Time
	logger     *slog.Logger
}

// NewMonitorPresenter constructs a monitor presenter with default outline thickness.
func NewMonitorPresenter(source FrameSource, pipeline FrameProcessor, classifier OccupancyClassifier, view FrameView, m *model.MonitorModel, logger *slog.Logger) *MonitorPresenter {
	if m == nil {
		m = model.NewMonitorModel()
	}
	return &MonitorPresenter{
		Source:     source,
		Pipeline:   pipeline,
		Classifier: classifier,
		View:       view,
		Model:      m,
		Thickness:  images.DefaultThickness,
		Now:        time.Now,
		logger:     logger,
	}
}

// ProcessFrame reads, classifies and displays one frame. A read error ends the
// monitor and is returned unchanged.
func (p *MonitorPresenter) ProcessFrame() error {
	if p == nil || p.Source == nil || p.Pipeline == nil || p.Classifier == nil {
		return nil
	}
	frame, err := p.Source.Read()
	if err != nil {
		return fmt.Errorf("read frame: %w", err)
	}
	occ := p.Classifier.Classify(p.Pipeline.Process(frame))

	now := time.Now()
	if p.Now != nil {
		now = p.Now()
	}
	p.Model.OnFrame(occ, p.Source.Loops(), now)

	if p.View != nil {
		p.View.ShowFrame(images.RenderOccupancy(frame, occ, p.Classifier.Size(), p.Thickness))
		st := p.Model.Values()
		p.View.SetStatus(fmt.Sprintf("%s   frame %d   loop %d   %.1f fps", occ.Banner(), st.Frames, st.Loops, st.FPS()))
	}
	if p.logger != nil {
		p.logger.Debug("frame classified", "free", occ.Free, "total", occ.Total)
	}
	return nil
}
