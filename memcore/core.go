// Package memcore provides a memory-backed emu.Core. It owns every GBA
// memory region, the backup memory registers and a cheat table, but has no
// CPU: frames show the palette backdrop color and produce silence. Frontends
// use it until an instruction level core is attached, and tests use it as
// the collaborator for the emu package.
package memcore

import (
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"github.com/user-none/emgba/emu"
)

// Compile-time interface check.
var _ emu.Core = (*Core)(nil)

// Region sizes.
const (
	workRAMSize     = 0x40000
	internalRAMSize = 0x8000
	vramSize        = 0x18000
	paletteSize     = 0x400
	oamSize         = 0x400
	ioSize          = 0x400

	biosSize = 0x4000
)

// samplesPerFrame is the stereo sample count of one frame at 32 kHz:
// 280896 cycles per frame on a 16.78 MHz clock.
const samplesPerFrame = emu.SampleRate * 280896 / 16777216 * 2

// ErrNoROM is returned when Init is called before LoadROM.
var ErrNoROM = errors.New("no ROM loaded")

// Core is a CPU-less GBA core.
type Core struct {
	fs afero.Fs

	rom  []byte
	bios []byte

	workRAM     [workRAMSize]byte
	internalRAM [internalRAMSize]byte
	vram        [vramSize]byte
	palette     [paletteSize]byte
	oam         [oamSize]byte
	io          [ioSize]byte

	flashSize int
	rtc       bool
	mirroring bool
	hleBIOS   bool
	parallax  int
	keys      uint16
	frame     uint32

	backing emu.SaveBacking
	eeprom  []byte
	flash   []byte

	cheats cheatTable

	left, right []uint16
	audio       []int16
}

// New creates a core that reads BIOS images from fs.
func New(fs afero.Fs) *Core {
	return &Core{
		fs:        fs,
		flashSize: 0x10000,
		hleBIOS:   true,
		left:      make([]uint16, emu.EyeStride*emu.EyeHeight),
		right:     make([]uint16, emu.EyeStride*emu.EyeHeight),
		audio:     make([]int16, samplesPerFrame),
	}
}

// LoadROM copies a cartridge image into the core.
func (c *Core) LoadROM(rom []byte) error {
	if len(rom) == 0 {
		return errors.New("empty ROM")
	}
	if len(rom) > 0x2000000 {
		return fmt.Errorf("ROM too large (%d bytes)", len(rom))
	}
	c.rom = make([]byte, len(rom))
	copy(c.rom, rom)
	return nil
}

// SetFlashSize selects a 64KB or 128KB flash chip.
func (c *Core) SetFlashSize(size int) {
	c.flashSize = size
}

// FlashSize returns the selected flash chip size.
func (c *Core) FlashSize() int {
	return c.flashSize
}

// EnableRTC turns the cartridge real-time clock on or off.
func (c *Core) EnableRTC(enabled bool) {
	c.rtc = enabled
}

// RTC reports whether the real-time clock is enabled.
func (c *Core) RTC() bool {
	return c.rtc
}

// SetMirroring turns ROM address mirroring on or off.
func (c *Core) SetMirroring(enabled bool) {
	c.mirroring = enabled
}

// Mirroring reports whether ROM mirroring is enabled.
func (c *Core) Mirroring() bool {
	return c.mirroring
}

// Init loads the BIOS image when useBIOS is set, otherwise selects the high
// level BIOS.
func (c *Core) Init(biosPath string, useBIOS bool) error {
	if c.rom == nil {
		return ErrNoROM
	}
	if !useBIOS {
		c.bios = nil
		c.hleBIOS = true
		return nil
	}

	data, err := afero.ReadFile(c.fs, biosPath)
	if err != nil {
		return fmt.Errorf("read BIOS: %w", err)
	}
	if len(data) != biosSize {
		return fmt.Errorf("BIOS image is %d bytes, want %d", len(data), biosSize)
	}
	c.bios = data
	c.hleBIOS = false
	return nil
}

// HLEBIOS reports whether the high level BIOS is in use.
func (c *Core) HLEBIOS() bool {
	return c.hleBIOS
}

// Reset clears volatile memory.
func (c *Core) Reset() {
	clear(c.workRAM[:])
	clear(c.internalRAM[:])
	clear(c.vram[:])
	clear(c.palette[:])
	clear(c.oam[:])
	clear(c.io[:])
	c.keys = 0
	c.frame = 0
}

// AttachSaveMemory makes buf the backing store for one slot and detaches
// the other.
func (c *Core) AttachSaveMemory(backing emu.SaveBacking, buf []byte) {
	c.backing = backing
	c.eeprom = nil
	c.flash = nil
	switch backing {
	case emu.BackingEEPROM:
		c.eeprom = buf
	case emu.BackingFlash:
		c.flash = buf
	}
}

// SaveMemory returns the attached slot and its buffer.
func (c *Core) SaveMemory() (emu.SaveBacking, []byte) {
	switch c.backing {
	case emu.BackingEEPROM:
		return c.backing, c.eeprom
	case emu.BackingFlash:
		return c.backing, c.flash
	default:
		return emu.BackingNone, nil
	}
}

// RunFrame applies the cheat table and draws the backdrop.
func (c *Core) RunFrame() {
	c.cheats.apply(c)

	backdrop := uint16(c.palette[0]) | uint16(c.palette[1])<<8
	for y := 0; y < emu.EyeHeight; y++ {
		row := y * emu.EyeStride
		for x := 0; x < emu.EyeWidth; x++ {
			c.left[row+x] = backdrop
			c.right[row+x] = backdrop
		}
	}
	c.frame++
}

// Frame returns the number of frames run since reset.
func (c *Core) Frame() uint32 {
	return c.frame
}

// Eyes returns the left and right eye framebuffers.
func (c *Core) Eyes() (left, right []uint16) {
	return c.left, c.right
}

// AudioSamples returns one frame of silence.
func (c *Core) AudioSamples() []int16 {
	return c.audio
}

// SetInput sets the pressed button mask and mirrors it, active low, into
// KEYINPUT.
func (c *Core) SetInput(buttons uint16) {
	c.keys = buttons
	keyinput := ^buttons & 0x3FF
	c.io[0x130] = byte(keyinput)
	c.io[0x131] = byte(keyinput >> 8)
}

// SetParallax sets the horizontal offset between the two eyes.
func (c *Core) SetParallax(offset int) {
	c.parallax = offset
}

// Memory returns the live backing slice of a memory region.
func (c *Core) Memory(id emu.MemoryID) []byte {
	switch id {
	case emu.MemWorkRAM:
		return c.workRAM[:]
	case emu.MemInternalRAM:
		return c.internalRAM[:]
	case emu.MemVideoRAM:
		return c.vram[:]
	case emu.MemPaletteRAM:
		return c.palette[:]
	case emu.MemOAM:
		return c.oam[:]
	case emu.MemIO:
		return c.io[:]
	default:
		return nil
	}
}

// write8 stores one byte at a GBA address. Unmapped and read-only
// addresses are ignored.
func (c *Core) write8(addr uint32, v byte) {
	var mem []byte
	switch addr >> 24 {
	case 0x02:
		mem = c.workRAM[:]
	case 0x03:
		mem = c.internalRAM[:]
	case 0x04:
		if addr&0xFFFFFF >= ioSize {
			return
		}
		mem = c.io[:]
	case 0x05:
		mem = c.palette[:]
	case 0x06:
		mem = c.vram[:]
	case 0x07:
		mem = c.oam[:]
	default:
		return
	}
	mem[(addr&0xFFFFFF)%uint32(len(mem))] = v
}

// writeN stores the low n bytes of v little-endian at addr.
func (c *Core) writeN(addr uint32, v uint32, n int) {
	for i := 0; i < n; i++ {
		c.write8(addr+uint32(i), byte(v>>(8*i)))
	}
}
