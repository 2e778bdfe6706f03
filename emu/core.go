package emu

// MemoryID names a GBA memory region owned by the core.
type MemoryID int

const (
	MemWorkRAM     MemoryID = iota // 256KB on-board work RAM
	MemInternalRAM                 // 32KB on-chip work RAM
	MemVideoRAM                    // 96KB VRAM
	MemPaletteRAM                  // 1KB palette RAM
	MemOAM                         // 1KB object attribute memory
	MemIO                          // 1KB memory mapped I/O
)

// Eye buffer geometry. Each eye is GBA native BGR555 with a 256 pixel stride.
const (
	EyeWidth  = 240
	EyeHeight = 160
	EyeStride = 256
)

// Core is the instruction level GBA emulator driven by a session. The
// session configures it at load time and afterwards only steps it.
type Core interface {
	// LoadROM copies a cartridge image into the core.
	LoadROM(rom []byte) error

	// SetFlashSize selects a 64KB or 128KB flash chip.
	SetFlashSize(size int)

	// EnableRTC turns the cartridge real-time clock on or off.
	EnableRTC(enabled bool)

	// SetMirroring turns ROM address mirroring on or off.
	SetMirroring(enabled bool)

	// Init prepares the CPU. With useBIOS set the BIOS image at biosPath
	// is loaded, otherwise the high level BIOS is used.
	Init(biosPath string, useBIOS bool) error

	// Reset performs a power-on reset.
	Reset()

	// AttachSaveMemory makes buf the backing store for the given slot.
	// BackingNone detaches both slots.
	AttachSaveMemory(backing SaveBacking, buf []byte)

	// RunFrame runs until the next frame is complete.
	RunFrame()

	// Eyes returns the left and right eye framebuffers of the last frame.
	Eyes() (left, right []uint16)

	// AudioSamples returns interleaved stereo samples of the last frame.
	AudioSamples() []int16

	// SetInput sets the KEYINPUT button mask.
	SetInput(buttons uint16)

	// WriteState serializes the core into buf and returns the number of
	// bytes written, or 0 if buf is too small.
	WriteState(buf []byte) int

	// ReadState restores the core from buf.
	ReadState(buf []byte) error

	// AddCBACode adds a "XXXXXXXX YYYY" code to the cheat table.
	AddCBACode(code, name string) error

	// AddGSACode adds a 16 digit code to the cheat table. v3 selects the
	// Action Replay v3 encoding.
	AddGSACode(code, name string, v3 bool) error

	// SetCheatEnabled enables or disables every code added under name.
	SetCheatEnabled(name string, enabled bool)

	// DeleteAllCheats empties the cheat table.
	DeleteAllCheats()

	// Memory returns the live backing slice of a memory region.
	Memory(id MemoryID) []byte

	// SetParallax sets the horizontal offset between the two eyes.
	SetParallax(offset int)
}
