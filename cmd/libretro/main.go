package main

import (
	libretro "github.com/user-none/eblitui/libretro"
	"github.com/user-none/emgba/adapter"
	"github.com/user-none/emgba/emu"
)

func init() {
	libretro.RegisterFactory(&adapter.Factory{}, []libretro.RetropadMapping{
		{RetroID: libretro.JoypadA, BitID: emu.ButtonA},
		{RetroID: libretro.JoypadB, BitID: emu.ButtonB},
		{RetroID: libretro.JoypadSelect, BitID: emu.ButtonSelect},
		{RetroID: libretro.JoypadStart, BitID: emu.ButtonStart},
		{RetroID: libretro.JoypadL, BitID: emu.ButtonL},
		{RetroID: libretro.JoypadR, BitID: emu.ButtonR},
	})
}

func main() {}
