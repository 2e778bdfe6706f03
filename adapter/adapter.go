package adapter

import (
	"github.com/retroenv/retrogolib/log"
	"github.com/spf13/afero"
	emucore "github.com/user-none/eblitui/api"
	"github.com/user-none/emgba/emu"
	"github.com/user-none/emgba/memcore"
)

// Compile-time interface check.
var _ emucore.CoreFactory = (*Factory)(nil)

// BIOSFileName is the BIOS image looked up in the system directory.
const BIOSFileName = "gba_bios.bin"

// Factory implements emucore.CoreFactory for the GBA side-by-side core.
// The zero value uses the built-in override list, the OS filesystem and no
// BIOS image.
type Factory struct {
	// Fs is used for the BIOS image and the override list.
	Fs afero.Fs

	// Profiles replaces the built-in override list when non-nil.
	Profiles emu.ProfileDB

	// Preferences are applied to every emulator the factory creates.
	Preferences emu.Preferences

	// NewCore creates the instruction level core. Defaults to memcore.
	NewCore func(fs afero.Fs) emu.Core

	Logger *log.Logger
}

// SystemInfo returns system metadata for UI configuration.
func (f *Factory) SystemInfo() emucore.SystemInfo {
	return emucore.SystemInfo{
		Name:            emu.Name,
		ConsoleName:     "Nintendo Game Boy Advance",
		Extensions:      []string{".gba", ".agb", ".bin"},
		ScreenWidth:     emu.ScreenWidth,
		MaxScreenHeight: emu.ScreenHeight,
		AspectRatio:     3.0 / 2.0,
		SampleRate:      emu.SampleRate,
		Buttons: []emucore.Button{
			{Name: "A", ID: emu.ButtonA, DefaultKey: "K", DefaultPad: "B"},
			{Name: "B", ID: emu.ButtonB, DefaultKey: "J", DefaultPad: "A"},
			{Name: "Select", ID: emu.ButtonSelect, DefaultKey: "Backspace", DefaultPad: "Back"},
			{Name: "Start", ID: emu.ButtonStart, DefaultKey: "Enter", DefaultPad: "Start"},
			{Name: "L", ID: emu.ButtonL, DefaultKey: "U", DefaultPad: "L1"},
			{Name: "R", ID: emu.ButtonR, DefaultKey: "I", DefaultPad: "R1"},
		},
		Players: 1,
		CoreOptions: []emucore.CoreOption{
			{
				Key:         emu.OptionBIOS,
				Label:       "Use BIOS",
				Description: "Boot with gba_bios.bin from the system directory instead of the high level BIOS (applies on next load)",
				Type:        emucore.CoreOptionSelect,
				Default:     "disabled",
				Values:      []string{"disabled", "enabled"},
				Category:    emucore.CoreOptionCategoryCore,
			},
			{
				Key:         emu.OptionParallax,
				Label:       "3D Parallax Offset",
				Description: "Horizontal offset between the left and right eye",
				Type:        emucore.CoreOptionSelect,
				Default:     "0",
				Values:      emu.ParallaxValues(),
				Category:    emucore.CoreOptionCategoryVideo,
			},
		},
		RDBName:       "Nintendo - Game Boy Advance",
		ThumbnailRepo: "Nintendo_-_Game_Boy_Advance",
		DataDirName:   emu.Name,
		ConsoleID:     5,
		CoreName:      emu.Name,
		CoreVersion:   emu.Version,
		SerializeSize: emu.DeclaredStateSize(f.newCore()(f.fs())),
	}
}

// CreateEmulator creates a new emulator instance with the given ROM and region.
func (f *Factory) CreateEmulator(rom []byte, region emucore.Region) (emucore.Emulator, error) {
	opts := []emu.Option{
		emu.WithPreferences(f.Preferences),
		emu.WithOptionListener(f.optionChanged),
	}
	if f.Profiles != nil {
		opts = append(opts, emu.WithProfiles(f.Profiles))
	}
	if f.Logger != nil {
		opts = append(opts, emu.WithLogger(f.Logger))
	}

	e, err := emu.NewEmulator(rom, region, f.newCore()(f.fs()), opts...)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// optionChanged keeps the load time preferences in step with option
// changes made on a running session, so they apply to the next load.
func (f *Factory) optionChanged(key, value string) {
	switch key {
	case emu.OptionBIOS:
		f.Preferences.UseBIOS = value == "enabled"
	case emu.OptionParallax:
		f.Preferences.Parallax = emu.ParseParallax(value)
	}
}

// DetectRegion returns NTSC, the only timing the GBA has. The bool reports
// whether the title ID was found in the override list.
func (f *Factory) DetectRegion(rom []byte) (emucore.Region, bool) {
	db := f.Profiles
	if db == nil {
		db = emu.BuiltinProfiles()
	}
	_, found := db.Lookup(emu.TitleID(rom))
	return emucore.RegionNTSC, found
}

func (f *Factory) newCore() func(fs afero.Fs) emu.Core {
	if f.NewCore != nil {
		return f.NewCore
	}
	return func(fs afero.Fs) emu.Core { return memcore.New(fs) }
}

func (f *Factory) fs() afero.Fs {
	if f.Fs == nil {
		return afero.NewOsFs()
	}
	return f.Fs
}
