package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Frame source kinds accepted in Config.Source.
const (
	SourceVideo  = "video"
	SourceOpenCV = "opencv"
	SourceScreen = "screen"
	SourceImage  = "image"
)

// Config holds runtime configuration for the region editor and the occupancy monitor.
// Fields may be loaded from a JSON file and overridden by command-line flags.
type Config struct {
	Debug    bool   `json:"debug"`
	LogLevel string `json:"log_level" validate:"oneof=debug info warn error"`
	LogFile  string `json:"log_file"`

	// Files
	RegionFile     string `json:"region_file" validate:"required"`
	ReferenceImage string `json:"reference_image" validate:"required"`
	VideoPath      string `json:"video_path"`

	// Frame source
	Source  string `json:"source" validate:"oneof=video opencv screen image"`
	ScreenX int    `json:"screen_x"`
	ScreenY int    `json:"screen_y"`
	ScreenW int    `json:"screen_w" validate:"gte=0"`
	ScreenH int    `json:"screen_h" validate:"gte=0"`

	// Region geometry, shared by every parking space
	RegionWidth  int `json:"region_width" validate:"gt=0"`
	RegionHeight int `json:"region_height" validate:"gt=0"`

	// Classification policy
	OccupiedThreshold int `json:"occupied_threshold" validate:"gt=0"`
	FreeThickness     int `json:"free_thickness" validate:"gt=0"`
	OccupiedThickness int `json:"occupied_thickness" validate:"gt=0"`

	// Pipeline parameters (tuned for the reference lighting; change with care)
	BlurKernel       int     `json:"blur_kernel" validate:"gt=0"`
	BlurSigma        float64 `json:"blur_sigma" validate:"gt=0"`
	AdaptiveBlock    int     `json:"adaptive_block" validate:"gt=1"`
	AdaptiveC        float64 `json:"adaptive_c"`
	MedianAperture   int     `json:"median_aperture" validate:"gt=0"`
	DilateKernel     int     `json:"dilate_kernel" validate:"gt=0"`
	DilateIterations int     `json:"dilate_iterations" validate:"gte=0"`

	// UI
	PollIntervalMS int    `json:"poll_interval_ms" validate:"gt=0"`
	QuitKey        string `json:"quit_key" validate:"len=1"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:             false,
		LogLevel:          "info",
		LogFile:           "",
		RegionFile:        "CarParkPos.json",
		ReferenceImage:    "carParkImg.png",
		VideoPath:         "carPark.mp4",
		Source:            SourceVideo,
		RegionWidth:       106,
		RegionHeight:      46,
		OccupiedThreshold: 850,
		FreeThickness:     4,
		OccupiedThickness: 2,
		BlurKernel:        3,
		BlurSigma:         1,
		AdaptiveBlock:     25,
		AdaptiveC:         16,
		MedianAperture:    5,
		DilateKernel:      3,
		DilateIterations:  1,
		PollIntervalMS:    10,
		QuitKey:           "q",
	}
}

var validate = validator.New()

// Validate clamps/normalizes values to safe ranges and then checks the struct tags.
func (c *Config) Validate() error {
	d := DefaultConfig()
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	c.Source = strings.ToLower(strings.TrimSpace(c.Source))
	if c.Source == "" {
		c.Source = d.Source
	}
	if c.RegionWidth <= 0 {
		c.RegionWidth = d.RegionWidth
	}
	if c.RegionHeight <= 0 {
		c.RegionHeight = d.RegionHeight
	}
	if c.OccupiedThreshold <= 0 {
		c.OccupiedThreshold = d.OccupiedThreshold
	}
	if c.FreeThickness <= 0 {
		c.FreeThickness = d.FreeThickness
	}
	if c.OccupiedThickness <= 0 {
		c.OccupiedThickness = d.OccupiedThickness
	}
	// Kernel sizes must be odd: even values have no centre pixel.
	if !oddPositive(c.BlurKernel) {
		c.BlurKernel = d.BlurKernel
	}
	if c.BlurSigma <= 0 {
		c.BlurSigma = d.BlurSigma
	}
	if !oddPositive(c.AdaptiveBlock) || c.AdaptiveBlock < 3 {
		c.AdaptiveBlock = d.AdaptiveBlock
	}
	if !oddPositive(c.MedianAperture) {
		c.MedianAperture = d.MedianAperture
	}
	if !oddPositive(c.DilateKernel) {
		c.DilateKernel = d.DilateKernel
	}
	if c.DilateIterations < 0 {
		c.DilateIterations = d.DilateIterations
	}
	if c.PollIntervalMS <= 0 {
		c.PollIntervalMS = d.PollIntervalMS
	}
	if c.QuitKey == "" {
		c.QuitKey = d.QuitKey
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func oddPositive(v int) bool { return v > 0 && v%2 == 1 }

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return DefaultConfig(), err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
