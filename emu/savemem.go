package emu

import "bytes"

// SaveBufferSize is the capacity of the save buffer. It is larger than the
// biggest flash chip because frontends report inconsistent save sizes.
const SaveBufferSize = 0x20000 + 0x2000

// erasedByte is the value unwritten or erased backup memory reads as.
const erasedByte = 0xFF

// Classification is the save memory geometry inferred from a save buffer.
type Classification int

const (
	SaveUnknown      Classification = iota // No specific type, treated as SRAM
	SaveEEPROM512B                         // 4Kbit EEPROM
	SaveEEPROM8KB                          // 64Kbit EEPROM
	SaveFlash512Kbit                       // 64KB flash
	SaveFlash1Mbit                         // 128KB flash
)

// String returns the display name of the classification.
func (c Classification) String() string {
	switch c {
	case SaveEEPROM512B:
		return "EEPROM 512B"
	case SaveEEPROM8KB:
		return "EEPROM 8KB"
	case SaveFlash512Kbit:
		return "Flash 512Kbit"
	case SaveFlash1Mbit:
		return "Flash 1Mbit"
	default:
		return "unknown"
	}
}

// Size returns the number of save bytes the classification covers. Unknown
// covers the whole buffer.
func (c Classification) Size() int {
	switch c {
	case SaveEEPROM512B:
		return 512
	case SaveEEPROM8KB:
		return 0x2000
	case SaveFlash512Kbit:
		return flash512K
	case SaveFlash1Mbit:
		return flash1M
	default:
		return SaveBufferSize
	}
}

// SaveBacking selects which core memory slot the save buffer backs.
type SaveBacking int

const (
	BackingNone SaveBacking = iota
	BackingEEPROM
	BackingFlash
)

// String returns the display name of the backing slot.
func (b SaveBacking) String() string {
	switch b {
	case BackingEEPROM:
		return "EEPROM"
	case BackingFlash:
		return "Flash"
	default:
		return "none"
	}
}

// Backing returns the core memory slot for the classification. At most one
// slot is ever selected.
func (c Classification) Backing() SaveBacking {
	switch c {
	case SaveEEPROM512B, SaveEEPROM8KB:
		return BackingEEPROM
	case SaveFlash512Kbit, SaveFlash1Mbit:
		return BackingFlash
	default:
		return BackingNone
	}
}

// classifyOrder lists the hypotheses in the order they are tested.
var classifyOrder = []Classification{
	SaveEEPROM512B,
	SaveEEPROM8KB,
	SaveFlash512Kbit,
	SaveFlash1Mbit,
}

// Classify inspects a save buffer and returns the first geometry whose
// region holds written data while everything after it is erased. The
// buffer is only read.
func Classify(buf []byte) Classification {
	for _, c := range classifyOrder {
		n := c.Size()
		if n > len(buf) {
			break
		}
		if written(buf[:n]) && !written(buf[n:]) {
			return c
		}
	}
	return SaveUnknown
}

// written reports whether any byte differs from the erased value.
func written(b []byte) bool {
	for _, v := range b {
		if v != erasedByte {
			return true
		}
	}
	return false
}

// NewSaveBuffer returns a full size save buffer in the erased state.
func NewSaveBuffer() []byte {
	return bytes.Repeat([]byte{erasedByte}, SaveBufferSize)
}

// eraseSaveBuffer resets buf to the erased state.
func eraseSaveBuffer(buf []byte) {
	for i := range buf {
		buf[i] = erasedByte
	}
}
