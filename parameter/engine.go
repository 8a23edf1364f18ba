package parameter

import "time"

// Frame Loop Timing
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// CommandQueueSize is the capacity of the configuration command channel
	// Producers drop commands when full rather than stall the input goroutine
	CommandQueueSize = 256

	// PersistDebounce is the quiet window before a configuration snapshot is persisted
	PersistDebounce = 300 * time.Millisecond
)

// Blob position spring (harmonica)
const (
	PositionSpringFrequency = 6.0
	PositionSpringDamping   = 1.0
	PositionSpringFPS       = 60
)

// Viewer defaults
const (
	// DefaultViewportWidth and DefaultViewportHeight match the phone frame of the editor
	DefaultViewportWidth  = 360
	DefaultViewportHeight = 640
)

// MaxPumpInterval caps how much audio one headless frame pulls after a stall
const MaxPumpInterval = 100 * time.Millisecond

// Viewer key steps
const (
	KeyPositionStep    = 5.0
	KeyAmountStep      = 10.0
	KeySensitivityStep = 0.5
	KeyDensityStep     = 1
)
