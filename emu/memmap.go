package emu

import (
	emucore "github.com/user-none/eblitui/api"
)

// Base addresses and sizes of the exported memory regions.
const (
	workRAMStart     = 0x02000000
	workRAMSize      = 0x40000
	internalRAMStart = 0x03000000
	internalRAMSize  = 0x8000
	ioStart          = 0x04000000
	ioSize           = 0x400
	paletteStart     = 0x05000000
	paletteSize      = 0x400
	vramStart        = 0x06000000
	vramSize         = 0x18000
	oamStart         = 0x07000000
	oamSize          = 0x400
	saveStart        = 0x0E000000

	// mirrorSelect marks regions that repeat through their 16MB page.
	mirrorSelect = 0xFF000000
)

// MemoryDescriptor describes one region of the GBA address space.
// A nonzero Select means every address with the same Select bits as Start
// maps into the region, wrapping at Len.
type MemoryDescriptor struct {
	Name   string
	Start  uint32
	Len    uint32
	Select uint32
	Data   []byte
}

// contains reports whether addr falls in the region.
func (d MemoryDescriptor) contains(addr uint32) bool {
	if d.Len == 0 {
		return false
	}
	if d.Select != 0 {
		return addr&d.Select == d.Start&d.Select
	}
	return addr >= d.Start && addr-d.Start < d.Len
}

// offset returns the index into Data for addr.
func (d MemoryDescriptor) offset(addr uint32) uint32 {
	if d.Select != 0 {
		return (addr &^ d.Select) % d.Len
	}
	return addr - d.Start
}

// MemoryDescriptors returns the exported memory map. The save region's
// length follows the current save classification.
func (e *Emulator) MemoryDescriptors() []MemoryDescriptor {
	return []MemoryDescriptor{
		{Name: "IWRAM", Start: internalRAMStart, Len: internalRAMSize, Select: mirrorSelect, Data: e.core.Memory(MemInternalRAM)},
		{Name: "WRAM", Start: workRAMStart, Len: workRAMSize, Select: mirrorSelect, Data: e.core.Memory(MemWorkRAM)},
		{Name: "SRAM", Start: saveStart, Len: uint32(e.saveSize()), Data: e.saveBuf[:e.saveSize()]},
		{Name: "VRAM", Start: vramStart, Len: vramSize, Select: mirrorSelect, Data: e.core.Memory(MemVideoRAM)},
		{Name: "PALETTE", Start: paletteStart, Len: paletteSize, Select: mirrorSelect, Data: e.core.Memory(MemPaletteRAM)},
		{Name: "OAM", Start: oamStart, Len: oamSize, Select: mirrorSelect, Data: e.core.Memory(MemOAM)},
		{Name: "IO", Start: ioStart, Len: ioSize, Data: e.core.Memory(MemIO)},
	}
}

// ReadMemory reads from a flat GBA address into buf and returns the number
// of bytes read. Reading stops at the first unmapped address.
func (e *Emulator) ReadMemory(addr uint32, buf []byte) uint32 {
	descs := e.MemoryDescriptors()
	var count uint32
	for i := range buf {
		cur := addr + uint32(i)
		found := false
		for _, d := range descs {
			if !d.contains(cur) {
				continue
			}
			off := d.offset(cur)
			if off >= uint32(len(d.Data)) {
				return count
			}
			buf[i] = d.Data[off]
			found = true
			break
		}
		if !found {
			return count
		}
		count++
	}
	return count
}

// MemoryMap returns a list of available memory regions with sizes.
func (e *Emulator) MemoryMap() []emucore.MemoryRegion {
	return []emucore.MemoryRegion{
		{Type: emucore.MemorySystemRAM, Size: workRAMSize},
		{Type: emucore.MemorySaveRAM, Size: e.saveSize()},
	}
}

// ReadRegion returns a copy of the specified memory region.
func (e *Emulator) ReadRegion(regionType int) []byte {
	switch regionType {
	case emucore.MemorySystemRAM:
		out := make([]byte, workRAMSize)
		copy(out, e.core.Memory(MemWorkRAM))
		return out
	case emucore.MemorySaveRAM:
		return e.GetSRAM()
	default:
		return nil
	}
}

// WriteRegion writes data to the specified memory region.
func (e *Emulator) WriteRegion(regionType int, data []byte) {
	switch regionType {
	case emucore.MemorySystemRAM:
		copy(e.core.Memory(MemWorkRAM), data)
	case emucore.MemorySaveRAM:
		e.SetSRAM(data)
	}
}
