package pdf

import (
	"log/slog"
)

// TextFragment is one positioned run of text as emitted by a page's text layer.
// BaselineY is nil when the engine could not position the run and Height is
// zero when the font size is unknown.
type TextFragment struct {
	Text      string
	X         float64
	BaselineY *float64
	Width     float64
	Height    float64
	Font      string
	EndOfLine bool
}

// Baseline returns the fragment baseline and whether it is known
func (f TextFragment) Baseline() (float64, bool) {
	if f.BaselineY == nil {
		return 0, false
	}
	return *f.BaselineY, true
}

// Metadata represents PDF document metadata
type Metadata struct {
	Title    string
	Author   string
	Subject  string
	Creator  string
	Producer string
}

// Engine names a text extraction backend
type Engine string

const (
	EngineAuto       Engine = "auto"
	EngineLedongthuc Engine = "ledongthuc"
	EngineDslipak    Engine = "dslipak"
)

// OpenOption is a function that modifies how a document is opened
type OpenOption func(*openConfig)

type openConfig struct {
	Engine     Engine
	Password   string
	XTolerance float64
	Logger     *slog.Logger
}

func defaultOpenConfig() *openConfig {
	return &openConfig{
		Engine:     EngineAuto,
		XTolerance: 3.0,
		Logger:     slog.Default(),
	}
}

// WithEngine forces a specific text extraction backend
func WithEngine(engine Engine) OpenOption {
	return func(c *openConfig) {
		c.Engine = engine
	}
}

// WithPassword sets the user password for encrypted documents
func WithPassword(password string) OpenOption {
	return func(c *openConfig) {
		c.Password = password
	}
}

// WithXTolerance sets the horizontal gap above which glyphs start a new fragment
func WithXTolerance(tolerance float64) OpenOption {
	return func(c *openConfig) {
		c.XTolerance = tolerance
	}
}

// WithLogger sets the logger used while probing and reading the document
func WithLogger(logger *slog.Logger) OpenOption {
	return func(c *openConfig) {
		if logger != nil {
			c.Logger = logger
		}
	}
}

// Helper functions
func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
