package emu

import (
	"errors"
	"testing"
)

// fakeCore records the calls made by the session. State is a fixed
// pattern so round trips can be checked byte for byte.
type fakeCore struct {
	rom       []byte
	loadErr   error
	initErr   error
	biosErr   error
	flashSize int
	flashSet  bool
	rtc       bool
	mirroring bool
	biosPath  string
	useBIOS   bool
	inits     int
	resets    int
	parallax  int
	keys      uint16

	backing SaveBacking
	saveBuf []byte

	stateLen  int
	state     []byte
	readCalls int

	cba      []string
	gsa      []string
	disabled []string
	cleared  bool
	cbaErr   error

	mem  map[MemoryID][]byte
	left []uint16
	rght []uint16
}

func newFakeCore() *fakeCore {
	return &fakeCore{
		stateLen: 64,
		mem: map[MemoryID][]byte{
			MemWorkRAM:     make([]byte, workRAMSize),
			MemInternalRAM: make([]byte, internalRAMSize),
			MemVideoRAM:    make([]byte, vramSize),
			MemPaletteRAM:  make([]byte, paletteSize),
			MemOAM:         make([]byte, oamSize),
			MemIO:          make([]byte, ioSize),
		},
		left: make([]uint16, EyeStride*EyeHeight),
		rght: make([]uint16, EyeStride*EyeHeight),
	}
}

func (f *fakeCore) LoadROM(rom []byte) error {
	if f.loadErr != nil {
		return f.loadErr
	}
	f.rom = rom
	return nil
}

func (f *fakeCore) SetFlashSize(size int) {
	f.flashSize = size
	f.flashSet = true
}

func (f *fakeCore) EnableRTC(enabled bool)    { f.rtc = enabled }
func (f *fakeCore) SetMirroring(enabled bool) { f.mirroring = enabled }

func (f *fakeCore) Init(biosPath string, useBIOS bool) error {
	f.inits++
	if useBIOS && f.biosErr != nil {
		return f.biosErr
	}
	if f.initErr != nil {
		return f.initErr
	}
	f.biosPath = biosPath
	f.useBIOS = useBIOS
	return nil
}

func (f *fakeCore) Reset() { f.resets++ }

func (f *fakeCore) AttachSaveMemory(backing SaveBacking, buf []byte) {
	f.backing = backing
	f.saveBuf = buf
}

func (f *fakeCore) RunFrame() {}

func (f *fakeCore) Eyes() (left, right []uint16) { return f.left, f.rght }

func (f *fakeCore) AudioSamples() []int16 { return nil }

func (f *fakeCore) SetInput(buttons uint16) { f.keys = buttons }

func (f *fakeCore) WriteState(buf []byte) int {
	if len(buf) < f.stateLen {
		return 0
	}
	if f.state == nil {
		f.state = make([]byte, f.stateLen)
		for i := range f.state {
			f.state[i] = byte(i)
		}
	}
	return copy(buf, f.state)
}

func (f *fakeCore) ReadState(buf []byte) error {
	f.readCalls++
	f.state = append([]byte(nil), buf[:f.stateLen]...)
	return nil
}

func (f *fakeCore) AddCBACode(code, name string) error {
	if f.cbaErr != nil {
		return f.cbaErr
	}
	f.cba = append(f.cba, name+":"+code)
	return nil
}

func (f *fakeCore) AddGSACode(code, name string, v3 bool) error {
	if !v3 {
		return errors.New("v1 not expected")
	}
	f.gsa = append(f.gsa, name+":"+code)
	return nil
}

func (f *fakeCore) SetCheatEnabled(name string, enabled bool) {
	if !enabled {
		f.disabled = append(f.disabled, name)
	}
}

func (f *fakeCore) DeleteAllCheats() { f.cleared = true }

func (f *fakeCore) Memory(id MemoryID) []byte { return f.mem[id] }

func (f *fakeCore) SetParallax(offset int) { f.parallax = offset }

// makeGameROM returns a ROM with a valid header carrying id.
func makeGameROM(title, id string) []byte {
	rom := make([]byte, 0x200)
	copy(rom[headerTitle:], title)
	copy(rom[headerTitleID:], id)
	rom[headerFixed] = headerFixedValue
	var sum byte
	for _, b := range rom[headerTitle:headerComplement] {
		sum += b
	}
	rom[headerComplement] = -(sum + 0x19)
	return rom
}

func newTestEmulator(t *testing.T, id string, opts ...Option) (*Emulator, *fakeCore) {
	t.Helper()
	core := newFakeCore()
	e, err := NewEmulator(makeGameROM("TESTGAME", id), 0, core, opts...)
	if err != nil {
		t.Fatalf("NewEmulator: %v", err)
	}
	return e, core
}
