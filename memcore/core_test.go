package memcore

import (
	"bytes"
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/user-none/emgba/emu"
)

func newLoadedCore(t *testing.T, fs afero.Fs) *Core {
	t.Helper()
	c := New(fs)
	if err := c.LoadROM(make([]byte, 0x200)); err != nil {
		t.Fatalf("LoadROM: %v", err)
	}
	if err := c.Init("", false); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return c
}

func TestLoadROM_Rejects(t *testing.T) {
	c := New(afero.NewMemMapFs())
	if err := c.LoadROM(nil); err == nil {
		t.Error("empty ROM accepted")
	}
	if err := c.LoadROM(make([]byte, 0x2000001)); err == nil {
		t.Error("oversized ROM accepted")
	}
}

func TestInit_NoROM(t *testing.T) {
	c := New(afero.NewMemMapFs())
	if err := c.Init("", false); !errors.Is(err, ErrNoROM) {
		t.Errorf("expected ErrNoROM, got %v", err)
	}
}

func TestInit_BIOS(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/sys/gba_bios.bin", make([]byte, biosSize), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(fs, "/sys/short.bin", make([]byte, 16), 0o644); err != nil {
		t.Fatal(err)
	}

	c := newLoadedCore(t, fs)
	if !c.HLEBIOS() {
		t.Error("high level BIOS should be the default")
	}
	if err := c.Init("/sys/gba_bios.bin", true); err != nil {
		t.Fatalf("Init with BIOS: %v", err)
	}
	if c.HLEBIOS() {
		t.Error("BIOS image not selected")
	}
	if err := c.Init("/sys/short.bin", true); err == nil {
		t.Error("short BIOS accepted")
	}
	if err := c.Init("/sys/missing.bin", true); err == nil {
		t.Error("missing BIOS accepted")
	}
}

func TestAttachSaveMemory(t *testing.T) {
	c := newLoadedCore(t, afero.NewMemMapFs())
	buf := make([]byte, 16)

	c.AttachSaveMemory(emu.BackingFlash, buf)
	if b, got := c.SaveMemory(); b != emu.BackingFlash || &got[0] != &buf[0] {
		t.Errorf("flash slot: %v", b)
	}
	if c.eeprom != nil {
		t.Error("EEPROM slot should be detached")
	}

	c.AttachSaveMemory(emu.BackingNone, buf)
	if b, got := c.SaveMemory(); b != emu.BackingNone || got != nil {
		t.Errorf("none: %v", b)
	}
	if c.flash != nil {
		t.Error("flash slot should be detached")
	}
}

func TestSetInput_KeyInput(t *testing.T) {
	c := newLoadedCore(t, afero.NewMemMapFs())
	c.SetInput(1 << 0) // A
	if c.io[0x130] != 0xFE || c.io[0x131] != 0x03 {
		t.Errorf("KEYINPUT: %02x%02x", c.io[0x131], c.io[0x130])
	}
}

func TestRunFrame_Backdrop(t *testing.T) {
	c := newLoadedCore(t, afero.NewMemMapFs())
	c.palette[0] = 0x1F
	c.RunFrame()

	left, right := c.Eyes()
	if left[0] != 0x001F || right[emu.EyeStride*(emu.EyeHeight-1)+emu.EyeWidth-1] != 0x001F {
		t.Error("backdrop not drawn")
	}
	if c.Frame() != 1 {
		t.Errorf("frame: %d", c.Frame())
	}
	if len(c.AudioSamples()) != samplesPerFrame {
		t.Errorf("audio samples: %d", len(c.AudioSamples()))
	}
}

func TestStateRoundTrip(t *testing.T) {
	c := newLoadedCore(t, afero.NewMemMapFs())
	c.SetFlashSize(0x20000)
	c.EnableRTC(true)
	c.SetParallax(-2)
	c.workRAM[100] = 0x42
	c.io[0x200] = 0x99

	buf := make([]byte, StateSize)
	if n := c.WriteState(buf); n != StateSize {
		t.Fatalf("WriteState: got %d, want %d", n, StateSize)
	}

	other := newLoadedCore(t, afero.NewMemMapFs())
	if err := other.ReadState(buf); err != nil {
		t.Fatalf("ReadState: %v", err)
	}
	if other.FlashSize() != 0x20000 || !other.RTC() || other.parallax != -2 {
		t.Errorf("registers: flash=%#x rtc=%v parallax=%d", other.FlashSize(), other.RTC(), other.parallax)
	}
	if other.workRAM[100] != 0x42 || other.io[0x200] != 0x99 {
		t.Error("memory not restored")
	}

	again := make([]byte, StateSize)
	other.WriteState(again)
	if !bytes.Equal(buf, again) {
		t.Error("state not stable across a round trip")
	}
}

func TestState_Rejects(t *testing.T) {
	c := newLoadedCore(t, afero.NewMemMapFs())
	if n := c.WriteState(make([]byte, StateSize-1)); n != 0 {
		t.Errorf("short buffer: wrote %d", n)
	}

	buf := make([]byte, StateSize)
	c.WriteState(buf)
	buf[0] = 'X'
	c.workRAM[0] = 7
	if err := c.ReadState(buf); err == nil {
		t.Error("bad magic accepted")
	}
	if c.workRAM[0] != 7 {
		t.Error("core modified by rejected state")
	}
}
