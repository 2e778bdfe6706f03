package emu

import (
	"errors"
	"fmt"
	"hash/crc32"

	"github.com/retroenv/retrogolib/log"
	emucore "github.com/user-none/eblitui/api"
)

// Core identity.
const (
	Name    = "emgba"
	Version = "0.1.0"
)

// Output timing. The GBA refreshes at 16777216/280896 Hz (about 59.73).
const (
	SampleRate  = 32000
	FPS         = 60
	Scanlines   = 228
	FrameRateHz = 16777216.0 / 280896.0
)

// Compile-time interface checks.
var _ emucore.Emulator = (*Emulator)(nil)
var _ emucore.SaveStater = (*Emulator)(nil)
var _ emucore.BatterySaver = (*Emulator)(nil)
var _ emucore.MemoryInspector = (*Emulator)(nil)
var _ emucore.MemoryMapper = (*Emulator)(nil)

// Region is an alias for emucore.Region. The GBA has no video region; the
// value is kept only so frontends can query it back.
type Region = emucore.Region

// Emulator is one loaded game. It owns the save buffer, the save
// classification and the resolved configuration, and drives the core.
type Emulator struct {
	core     Core
	logger   *log.Logger
	profiles ProfileDB
	prefs    Preferences
	onOption func(key, value string)

	romCRC uint32
	config ResolvedConfig
	region Region

	saveBuf   []byte
	saveClass Classification

	// stateSize is measured once at load and never changes afterwards.
	stateSize int

	framebuffer []byte
}

// NewEmulator loads rom into core and configures it for the game. Only a
// ROM the core rejects is an error; unknown titles fall back to defaults.
func NewEmulator(rom []byte, region Region, core Core, opts ...Option) (*Emulator, error) {
	e := &Emulator{
		core:        core,
		profiles:    builtinProfiles,
		region:      region,
		saveBuf:     NewSaveBuffer(),
		framebuffer: make([]byte, framebufferSize),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = NewLogger(false)
	}

	if err := core.LoadROM(rom); err != nil {
		return nil, fmt.Errorf("load ROM: %w", err)
	}
	e.romCRC = crc32.ChecksumIEEE(rom)

	e.classifySave()

	e.config = Resolve(rom, e.profiles, e.prefs)
	logConfig(e.logger, e.config)

	if err := Apply(core, e.config); err != nil {
		if !e.config.UseBIOS {
			return nil, fmt.Errorf("init core: %w", err)
		}
		e.logger.Warn("BIOS image rejected, using high level BIOS",
			log.String("path", e.config.BIOSPath), log.Err(err))
		e.config.UseBIOS = false
		e.config.BIOSPath = ""
		if err := Apply(core, e.config); err != nil {
			return nil, fmt.Errorf("init core: %w", err)
		}
	}
	core.SetParallax(e.prefs.Parallax)

	e.stateSize = measureStateSize(core)
	if e.stateSize == 0 {
		e.logger.Warn("Core state does not fit the scratch buffer, save states disabled")
	}

	return e, nil
}

// Config returns the configuration resolved at load.
func (e *Emulator) Config() ResolvedConfig {
	return e.config
}

// SaveClassification returns the current save memory classification.
func (e *Emulator) SaveClassification() Classification {
	return e.saveClass
}

// classifySave classifies the save buffer and attaches it to the matching
// core slot.
func (e *Emulator) classifySave() {
	e.saveClass = Classify(e.saveBuf)
	if e.saveClass == SaveUnknown {
		e.logger.Info("Did not detect any particular save type")
	} else {
		e.logger.Info("Detected save type",
			log.Stringer("type", e.saveClass),
			log.Int("size", e.saveClass.Size()))
	}
	e.core.AttachSaveMemory(e.saveClass.Backing(), e.saveBuf)
}

// saveSize returns the number of save bytes exposed to the frontend.
func (e *Emulator) saveSize() int {
	return e.saveClass.Size()
}

// RunFrame executes one frame of emulation.
func (e *Emulator) RunFrame() {
	e.core.RunFrame()
	left, right := e.core.Eyes()
	mergeEyes(e.framebuffer, left, right)
}

// GetFramebuffer returns the side-by-side frame as RGBA pixel data.
func (e *Emulator) GetFramebuffer() []byte {
	return e.framebuffer
}

// GetFramebufferStride returns the stride (bytes per row) of the framebuffer.
func (e *Emulator) GetFramebufferStride() int {
	return screenStride
}

// GetActiveHeight returns the current active display height.
func (e *Emulator) GetActiveHeight() int {
	return ScreenHeight
}

// GetAudioSamples returns stereo 16-bit PCM audio samples for the frame.
func (e *Emulator) GetAudioSamples() []int16 {
	return e.core.AudioSamples()
}

// GBA KEYINPUT bit positions.
const (
	keyA = iota
	keyB
	keySelect
	keyStart
	keyRight
	keyLeft
	keyUp
	keyDown
	keyR
	keyL
)

// Button bit positions in the frontend bitmask beyond the d-pad.
const (
	ButtonA      = 4
	ButtonB      = 5
	ButtonSelect = 6
	ButtonStart  = 7
	ButtonL      = 8
	ButtonR      = 9
)

var inputMap = [...]struct{ from, to uint }{
	{emucore.ButtonUp, keyUp},
	{emucore.ButtonDown, keyDown},
	{emucore.ButtonLeft, keyLeft},
	{emucore.ButtonRight, keyRight},
	{ButtonA, keyA},
	{ButtonB, keyB},
	{ButtonSelect, keySelect},
	{ButtonStart, keyStart},
	{ButtonL, keyL},
	{ButtonR, keyR},
}

// SetInput unpacks a button bitmask for player 1. The GBA has a single
// controller; other players are ignored.
func (e *Emulator) SetInput(player int, buttons uint32) {
	if player != 0 {
		return
	}
	var keys uint16
	for _, m := range inputMap {
		if buttons&(1<<m.from) != 0 {
			keys |= 1 << m.to
		}
	}
	e.core.SetInput(keys)
}

// GetRegion returns the region the session was created with.
func (e *Emulator) GetRegion() Region {
	return e.region
}

// SetRegion records the region. Timing is the same for every region.
func (e *Emulator) SetRegion(region Region) {
	e.region = region
}

// GetTiming returns FPS and scanline count.
func (e *Emulator) GetTiming() emucore.Timing {
	return emucore.Timing{
		FPS:       FPS,
		Scanlines: Scanlines,
	}
}

// SetOption applies a core option change identified by key. The BIOS
// choice is part of load time configuration and takes effect on the next
// load.
func (e *Emulator) SetOption(key string, value string) {
	switch key {
	case OptionBIOS:
		e.prefs.UseBIOS = value == "enabled"
		e.logger.Info("BIOS option changed, applies on next load", log.String("value", value))
	case OptionParallax:
		e.prefs.Parallax = ParseParallax(value)
		e.core.SetParallax(e.prefs.Parallax)
	}
	if e.onOption != nil {
		e.onOption(key, value)
	}
}

// Close releases any resources held by the emulator.
func (e *Emulator) Close() {}

// HasSRAM reports true: the save buffer is always exposed and classified
// from its contents.
func (e *Emulator) HasSRAM() bool {
	return true
}

// GetSRAM returns a copy of the classified part of the save buffer.
func (e *Emulator) GetSRAM() []byte {
	out := make([]byte, e.saveSize())
	copy(out, e.saveBuf)
	return out
}

// SetSRAM loads a save image, reclassifies it and reattaches the buffer.
// Bytes beyond the buffer capacity are dropped.
func (e *Emulator) SetSRAM(data []byte) {
	eraseSaveBuffer(e.saveBuf)
	copy(e.saveBuf, data)
	e.classifySave()
}

// SetCheat decodes code and adds every valid record to the core cheat
// table under the name for index. Invalid codes are logged and returned
// joined; the valid ones are still added. Disabling is passed straight to
// the core.
func (e *Emulator) SetCheat(index int, enabled bool, code string) error {
	name := CheatName(index)
	if !enabled {
		e.core.SetCheatEnabled(name, false)
		return nil
	}

	records, err := DecodeCheats(code, name)
	for _, fe := range unjoin(err) {
		e.logger.Error("Invalid cheat code", log.String("name", name), log.Err(fe))
	}

	for _, r := range records {
		var addErr error
		switch r.Family {
		case CheatCBA:
			addErr = e.core.AddCBACode(r.Code, r.Name)
		case CheatGSA:
			addErr = e.core.AddGSACode(r.Code, r.Name, r.V3)
		}
		if addErr != nil {
			e.logger.Error("Cheat code rejected by core",
				log.String("code", r.Code), log.Err(addErr))
			err = errors.Join(err, addErr)
			continue
		}
		e.logger.Info("Cheat code added",
			log.String("code", r.Code), log.Stringer("family", r.Family))
	}
	return err
}

// ResetCheats removes every code from the core cheat table.
func (e *Emulator) ResetCheats() {
	e.core.DeleteAllCheats()
}

// unjoin splits an error produced by errors.Join.
func unjoin(err error) []error {
	if err == nil {
		return nil
	}
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}
