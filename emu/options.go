package emu

import (
	"strconv"

	"github.com/retroenv/retrogolib/log"
)

// Core option keys.
const (
	OptionBIOS     = "bios"
	OptionParallax = "parallax_offset"
)

// Parallax offset limits.
const (
	MinParallax = -5
	MaxParallax = 5
)

// Preferences are the user settings that take part in load time
// configuration.
type Preferences struct {
	UseBIOS  bool
	BIOSPath string // Path of gba_bios.bin, empty if not found
	Parallax int
}

// ParseParallax converts an option value to an offset. Out of range or
// malformed values yield 0.
func ParseParallax(value string) int {
	v, err := strconv.Atoi(value)
	if err != nil || v < MinParallax || v > MaxParallax {
		return 0
	}
	return v
}

// ParallaxValues returns the selectable parallax option values.
func ParallaxValues() []string {
	values := make([]string, 0, MaxParallax-MinParallax+1)
	for v := MinParallax; v <= MaxParallax; v++ {
		values = append(values, strconv.Itoa(v))
	}
	return values
}

// Option configures an Emulator at construction.
type Option func(*Emulator)

// WithLogger sets the logger used by the session.
func WithLogger(logger *log.Logger) Option {
	return func(e *Emulator) {
		e.logger = logger
	}
}

// WithProfiles replaces the built-in profile database.
func WithProfiles(db ProfileDB) Option {
	return func(e *Emulator) {
		e.profiles = db
	}
}

// WithPreferences sets the user preferences applied at load.
func WithPreferences(prefs Preferences) Option {
	return func(e *Emulator) {
		e.prefs = prefs
	}
}

// WithOptionListener registers fn to be called after every SetOption. The
// factory uses it to carry option changes into the next load.
func WithOptionListener(fn func(key, value string)) Option {
	return func(e *Emulator) {
		e.onOption = fn
	}
}

// NewLogger returns the default session logger. Debug lowers the level so
// per-frame details are reported.
func NewLogger(debug bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	}
	return log.NewWithConfig(cfg)
}
