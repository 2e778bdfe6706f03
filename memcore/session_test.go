package memcore

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/user-none/emgba/emu"
)

func gameROM(id string) []byte {
	rom := make([]byte, 0x400)
	copy(rom[0xAC:], id)
	return rom
}

func TestSession_LoadConfiguresCore(t *testing.T) {
	c := New(afero.NewMemMapFs())
	e, err := emu.NewEmulator(gameROM("BPEE"), 0, c)
	if err != nil {
		t.Fatalf("NewEmulator: %v", err)
	}
	if c.FlashSize() != 0x20000 || !c.RTC() || c.Mirroring() {
		t.Errorf("core: flash=%#x rtc=%v mirroring=%v", c.FlashSize(), c.RTC(), c.Mirroring())
	}
	if e.SerializeSize() <= StateSize {
		t.Errorf("SerializeSize %d should include the envelope", e.SerializeSize())
	}
}

func TestSession_StateRoundTrip(t *testing.T) {
	c := New(afero.NewMemMapFs())
	e, err := emu.NewEmulator(gameROM("QQQQ"), 0, c)
	if err != nil {
		t.Fatalf("NewEmulator: %v", err)
	}

	c.workRAM[0x1234] = 0x77
	state, err := e.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	c.workRAM[0x1234] = 0

	if err := e.Deserialize(state[:len(state)-1]); !errors.Is(err, emu.ErrStateSize) {
		t.Errorf("truncated state: expected ErrStateSize, got %v", err)
	}
	if c.workRAM[0x1234] != 0 {
		t.Error("rejected state modified the core")
	}

	if err := e.Deserialize(state); err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if c.workRAM[0x1234] != 0x77 {
		t.Error("work RAM not restored")
	}
}

func TestSession_SaveAttach(t *testing.T) {
	c := New(afero.NewMemMapFs())
	e, err := emu.NewEmulator(gameROM("QQQQ"), 0, c)
	if err != nil {
		t.Fatalf("NewEmulator: %v", err)
	}

	save := make([]byte, 0x10000)
	for i := range save {
		save[i] = 0xFF
	}
	save[0x8000] = 1
	e.SetSRAM(save)

	backing, buf := c.SaveMemory()
	if backing != emu.BackingFlash || len(buf) != emu.SaveBufferSize || buf[0x8000] != 1 {
		t.Errorf("attached %v len %d", backing, len(buf))
	}
}

func TestSession_Cheats(t *testing.T) {
	c := New(afero.NewMemMapFs())
	e, err := emu.NewEmulator(gameROM("QQQQ"), 0, c)
	if err != nil {
		t.Fatalf("NewEmulator: %v", err)
	}

	if err := e.SetCheat(0, true, "32000010 00AB"); err != nil {
		t.Fatalf("SetCheat: %v", err)
	}
	e.RunFrame()
	if c.workRAM[0x10] != 0xAB {
		t.Errorf("cheat not applied: %#x", c.workRAM[0x10])
	}
	cheats := c.Cheats()
	if len(cheats) != 1 || cheats[0].Name != "cheat_0" || cheats[0].Code != "32000010 00AB" {
		t.Errorf("table: %+v", cheats)
	}

	e.ResetCheats()
	if len(c.Cheats()) != 0 {
		t.Error("ResetCheats left entries")
	}
}

func TestDeclaredStateSize_LoadIndependent(t *testing.T) {
	declared := emu.DeclaredStateSize(New(afero.NewMemMapFs()))
	if declared == 0 {
		t.Fatal("memcore state should fit the scratch buffer")
	}

	e, err := emu.NewEmulator(gameROM("BPEE"), 0, New(afero.NewMemMapFs()))
	if err != nil {
		t.Fatalf("NewEmulator: %v", err)
	}
	state, err := e.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if len(state) != declared {
		t.Errorf("state is %d bytes, declared %d", len(state), declared)
	}
}
