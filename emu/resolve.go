package emu

import (
	"github.com/retroenv/retrogolib/log"
)

// Defaults applied before the profile lookup.
const (
	defaultFlashSize = flash512K
	defaultSaveType  = SaveTypeAuto
)

// stateScratchSize is the capacity of the buffer used to measure the core's
// save state once per load.
const stateScratchSize = 2000000

// ResolvedConfig is the hardware configuration chosen for one loaded game.
// It is built once at load and not changed afterwards.
type ResolvedConfig struct {
	TitleID   string
	Found     bool // TitleID matched a profile
	SaveType  SaveType
	FlashSize int
	RTC       bool
	Mirroring bool

	// BIOSRequired is the profile's hint that the game misbehaves under
	// the high level BIOS. UseBIOS is what is actually requested.
	BIOSRequired bool
	UseBIOS      bool
	BIOSPath     string
}

// DefaultConfig returns the configuration used when no profile matches.
func DefaultConfig() ResolvedConfig {
	return ResolvedConfig{
		SaveType:  defaultSaveType,
		FlashSize: defaultFlashSize,
	}
}

// Resolve builds the configuration for rom. A missing or unknown title ID
// leaves the defaults in place; it is not an error.
func Resolve(rom []byte, db ProfileDB, prefs Preferences) ResolvedConfig {
	cfg := DefaultConfig()
	cfg.TitleID = TitleID(rom)

	if p, ok := db.Lookup(cfg.TitleID); ok {
		cfg.Found = true
		cfg.RTC = p.RTC
		if p.FlashSize != 0 {
			cfg.FlashSize = p.FlashSize
		} else {
			cfg.FlashSize = flash512K
		}
		cfg.SaveType = p.SaveType
		cfg.Mirroring = p.Mirroring
		cfg.BIOSRequired = p.BIOS
	}

	if prefs.UseBIOS && prefs.BIOSPath != "" {
		cfg.UseBIOS = true
		cfg.BIOSPath = prefs.BIOSPath
	}
	return cfg
}

// Apply pushes cfg into the core and initializes it. The flash size is only
// forwarded when it names a real flash chip.
func Apply(core Core, cfg ResolvedConfig) error {
	if cfg.FlashSize == flash512K || cfg.FlashSize == flash1M {
		core.SetFlashSize(cfg.FlashSize)
	}
	core.EnableRTC(cfg.RTC)
	core.SetMirroring(cfg.Mirroring)

	if err := core.Init(cfg.BIOSPath, cfg.UseBIOS); err != nil {
		return err
	}
	core.Reset()
	return nil
}

// measureStateSize performs one full state write into a scratch buffer and
// returns the number of bytes the core produced.
func measureStateSize(core Core) int {
	scratch := make([]byte, stateScratchSize)
	return core.WriteState(scratch)
}

// logConfig reports the resolved configuration.
func logConfig(logger *log.Logger, cfg ResolvedConfig) {
	logger.Info("GameID in ROM", log.String("id", cfg.TitleID))
	if cfg.Found {
		logger.Info("Found ROM in override list", log.String("id", cfg.TitleID))
	}
	logger.Info("Hardware configuration",
		log.Bool("rtc", cfg.RTC),
		log.Int("flashSize", cfg.FlashSize),
		log.Stringer("saveType", cfg.SaveType),
		log.Bool("mirroring", cfg.Mirroring),
		log.Bool("bios", cfg.UseBIOS))
	if cfg.BIOSRequired && !cfg.UseBIOS {
		logger.Warn("Game expects a real BIOS image, using high level BIOS",
			log.String("id", cfg.TitleID))
	}
}
