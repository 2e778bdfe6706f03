//go:build !libretro && !ios

package main

import (
	"flag"
	"log"
	"strconv"

	"github.com/user-none/eblitui/standalone"
	"github.com/user-none/emgba/adapter"
	"github.com/user-none/emgba/emu"
)

func main() {
	romPath := flag.String("rom", "", "path to ROM file (opens UI if not provided)")
	systemDir := flag.String("system-dir", "", "directory holding gba_bios.bin and vba-over.ini")
	useBIOS := flag.Bool("bios", false, "boot with gba_bios.bin instead of the high level BIOS")
	parallax := flag.Int("parallax", 0, "3D parallax offset (-5 to 5)")
	flag.Parse()

	factory := &adapter.Factory{}
	if err := factory.Configure(*systemDir); err != nil {
		log.Fatal(err)
	}
	factory.Preferences.UseBIOS = *useBIOS
	factory.Preferences.Parallax = emu.ParseParallax(strconv.Itoa(*parallax))

	if *romPath != "" {
		options := map[string]string{
			emu.OptionParallax: strconv.Itoa(factory.Preferences.Parallax),
		}
		if *useBIOS {
			options[emu.OptionBIOS] = "enabled"
		} else {
			options[emu.OptionBIOS] = "disabled"
		}
		if err := standalone.RunDirect(factory, *romPath, "auto", options); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := standalone.Run(factory); err != nil {
		log.Fatal(err)
	}
}
