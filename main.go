package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/user-none/eblitui/rdb"
	"github.com/user-none/eblitui/romloader"
	"github.com/user-none/emgba/adapter"
	"github.com/user-none/emgba/cli"
	"github.com/user-none/emgba/emu"
)

func main() {
	romPath := flag.String("rom", "", "path to ROM file or archive (required)")
	savePath := flag.String("sav", "", "save file to classify (default: ROM path with .sav)")
	cheats := flag.String("cheat", "", "cheat text to decode")
	systemDir := flag.String("system-dir", "", "directory holding gba_bios.bin and vba-over.ini")
	rdbPath := flag.String("rdb", "", "libretro database for title lookup")
	useBIOS := flag.Bool("bios", false, "request the BIOS image")
	verbose := flag.Bool("v", false, "log load time configuration")
	flag.Parse()

	if *romPath == "" {
		log.Fatal("ROM path is required. Usage: emgba -rom <path>")
	}

	romData, romName, err := romloader.Load(*romPath, []string{".gba", ".agb", ".bin"})
	if err != nil {
		log.Fatalf("Failed to load ROM: %v", err)
	}

	fs := afero.NewOsFs()
	factory := &adapter.Factory{Fs: fs}
	if err := factory.Configure(*systemDir); err != nil {
		log.Fatalf("Failed to read system directory: %v", err)
	}
	factory.Preferences.UseBIOS = *useBIOS

	probe := &cli.Probe{
		Fs:          fs,
		Profiles:    factory.Profiles,
		Preferences: factory.Preferences,
	}
	if *verbose {
		probe.Logger = emu.NewLogger(true)
	}
	if *rdbPath != "" {
		db, err := rdb.LoadRDB(*rdbPath)
		if err != nil {
			log.Fatalf("Failed to load database: %v", err)
		}
		probe.DB = db
	}

	// Default to the save file next to the ROM when it exists
	sav := *savePath
	if sav == "" {
		candidate := strings.TrimSuffix(*romPath, filepath.Ext(*romPath)) + ".sav"
		if ok, _ := afero.Exists(fs, candidate); ok {
			sav = candidate
		}
	}

	report, err := probe.Run(romData, romName, sav, *cheats)
	if err != nil {
		log.Fatalf("Probe failed: %v", err)
	}
	if err := report.Print(os.Stdout); err != nil {
		log.Fatal(err)
	}
}
