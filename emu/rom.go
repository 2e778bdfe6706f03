package emu

import (
	"fmt"
	"strings"
)

// Cartridge header offsets.
const (
	headerTitle      = 0xA0
	headerTitleID    = 0xAC
	headerFixed      = 0xB2
	headerComplement = 0xBD
	headerSize       = 0xC0
)

// headerFixedValue is the value every retail header carries at 0xB2.
const headerFixedValue = 0x96

// TitleID returns the 4 character game code at 0xAC. A ROM too short to
// hold a header yields an empty ID, which matches no profile.
func TitleID(rom []byte) string {
	if len(rom) < headerTitleID+TitleIDLen {
		return ""
	}
	return string(rom[headerTitleID : headerTitleID+TitleIDLen])
}

// GameTitle returns the 12 character internal title at 0xA0 with NUL and
// space padding removed.
func GameTitle(rom []byte) string {
	if len(rom) < headerTitleID {
		return ""
	}
	return strings.TrimRight(string(rom[headerTitle:headerTitleID]), "\x00 ")
}

// ValidateHeader checks the fixed byte at 0xB2 and the complement check at
// 0xBD. Loading never depends on it; it is informational only.
func ValidateHeader(rom []byte) error {
	if len(rom) < headerSize {
		return fmt.Errorf("ROM too short to contain header (%d bytes)", len(rom))
	}

	if rom[headerFixed] != headerFixedValue {
		return fmt.Errorf("fixed header value: got %02X, want %02X", rom[headerFixed], headerFixedValue)
	}

	var sum byte
	for _, b := range rom[headerTitle:headerComplement] {
		sum += b
	}
	computed := -(sum + 0x19)
	if computed != rom[headerComplement] {
		return fmt.Errorf("header complement mismatch: header=%02X computed=%02X", rom[headerComplement], computed)
	}
	return nil
}
