package adapter

import (
	"testing"

	"github.com/spf13/afero"
	emucore "github.com/user-none/eblitui/api"
	"github.com/user-none/emgba/emu"
)

func gameROM(id string) []byte {
	rom := make([]byte, 0x400)
	copy(rom[0xAC:], id)
	return rom
}

func TestDetectRegion(t *testing.T) {
	f := &Factory{Fs: afero.NewMemMapFs()}

	region, found := f.DetectRegion(gameROM("BPEE"))
	if region != emucore.RegionNTSC || !found {
		t.Errorf("BPEE: got %v %v", region, found)
	}
	if _, found := f.DetectRegion(gameROM("QQQQ")); found {
		t.Error("QQQQ should not be found")
	}
}

func TestSystemInfo(t *testing.T) {
	f := &Factory{Fs: afero.NewMemMapFs()}
	info := f.SystemInfo()
	if info.ScreenWidth != 480 || info.MaxScreenHeight != 160 || info.SampleRate != 32000 {
		t.Errorf("geometry: %+v", info)
	}
	if len(info.CoreOptions) != 2 || info.CoreOptions[0].Key != emu.OptionBIOS {
		t.Errorf("options: %+v", info.CoreOptions)
	}
	if info.SerializeSize == 0 {
		t.Error("SerializeSize should be declared before a load")
	}
}

func TestSystemInfo_StateSizeFitsEveryLoad(t *testing.T) {
	f := &Factory{Fs: afero.NewMemMapFs()}
	declared := f.SystemInfo().SerializeSize

	for _, id := range []string{"BPEE", "QQQQ", "FTBJ"} {
		e, err := f.CreateEmulator(gameROM(id), emucore.RegionNTSC)
		if err != nil {
			t.Fatalf("%s: CreateEmulator: %v", id, err)
		}
		saver := e.(emucore.SaveStater)
		state, err := saver.Serialize()
		if err != nil {
			t.Fatalf("%s: Serialize: %v", id, err)
		}
		if len(state) != declared {
			t.Errorf("%s: state is %d bytes, declared %d", id, len(state), declared)
		}
		if got := f.SystemInfo().SerializeSize; got != declared {
			t.Errorf("%s: declared size changed to %d", id, got)
		}
	}
}

func TestSetOption_AppliesToNextLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/sys/gba_bios.bin", make([]byte, 0x4000), 0o644); err != nil {
		t.Fatal(err)
	}
	f := &Factory{Fs: fs}
	if err := f.Configure("/sys"); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	first, err := f.CreateEmulator(gameROM("BPEE"), emucore.RegionNTSC)
	if err != nil {
		t.Fatalf("CreateEmulator: %v", err)
	}
	if first.(*emu.Emulator).Config().UseBIOS {
		t.Fatal("BIOS should be off before the option is set")
	}
	first.SetOption(emu.OptionBIOS, "enabled")
	first.SetOption(emu.OptionParallax, "3")

	second, err := f.CreateEmulator(gameROM("BPEE"), emucore.RegionNTSC)
	if err != nil {
		t.Fatalf("CreateEmulator: %v", err)
	}
	if !second.(*emu.Emulator).Config().UseBIOS {
		t.Error("BIOS option not carried to the next load")
	}
	if f.Preferences.Parallax != 3 {
		t.Errorf("parallax preference: got %d, want 3", f.Preferences.Parallax)
	}

	second.SetOption(emu.OptionBIOS, "disabled")
	third, err := f.CreateEmulator(gameROM("BPEE"), emucore.RegionNTSC)
	if err != nil {
		t.Fatalf("CreateEmulator: %v", err)
	}
	if third.(*emu.Emulator).Config().UseBIOS {
		t.Error("disabling the BIOS option not carried to the next load")
	}
}

func TestConfigure(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/sys/gba_bios.bin", make([]byte, 0x4000), 0o644); err != nil {
		t.Fatal(err)
	}
	ini := "[QQQQ]\nrtcEnabled=1\n"
	if err := afero.WriteFile(fs, "/sys/vba-over.ini", []byte(ini), 0o644); err != nil {
		t.Fatal(err)
	}

	f := &Factory{Fs: fs}
	if err := f.Configure("/sys"); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if f.Preferences.BIOSPath != "/sys/gba_bios.bin" {
		t.Errorf("BIOSPath: %q", f.Preferences.BIOSPath)
	}
	if _, found := f.DetectRegion(gameROM("QQQQ")); !found {
		t.Error("user override not loaded")
	}
	if _, found := f.DetectRegion(gameROM("BPEE")); !found {
		t.Error("builtin rows lost")
	}

	f.Preferences.UseBIOS = true
	e, err := f.CreateEmulator(gameROM("QQQQ"), emucore.RegionNTSC)
	if err != nil {
		t.Fatalf("CreateEmulator: %v", err)
	}
	cfg := e.(*emu.Emulator).Config()
	if !cfg.RTC || !cfg.UseBIOS {
		t.Errorf("config: %+v", cfg)
	}
}

func TestConfigure_Missing(t *testing.T) {
	f := &Factory{Fs: afero.NewMemMapFs()}
	if err := f.Configure("/nowhere"); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if f.Preferences.BIOSPath != "" || f.Profiles != nil {
		t.Errorf("nothing should be configured: %+v", f)
	}
}

func TestConfigure_BadOverrides(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/sys/vba-over.ini", []byte("[TOOLONG]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	f := &Factory{Fs: fs}
	if err := f.Configure("/sys"); err == nil {
		t.Error("expected error")
	}
}
