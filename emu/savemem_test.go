package emu

import (
	"bytes"
	"testing"
)

// saveWith returns an erased buffer with one written byte at each offset.
func saveWith(offsets ...int) []byte {
	buf := NewSaveBuffer()
	for _, off := range offsets {
		buf[off] = 0x00
	}
	return buf
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		buf     []byte
		want    Classification
		backing SaveBacking
	}{
		{"erased", NewSaveBuffer(), SaveUnknown, BackingNone},
		{"eeprom 512", saveWith(0, 511), SaveEEPROM512B, BackingEEPROM},
		{"eeprom 8k", saveWith(0, 600), SaveEEPROM8KB, BackingEEPROM},
		{"eeprom 8k only high", saveWith(0x1FFF), SaveEEPROM8KB, BackingEEPROM},
		{"flash 64k", saveWith(0x2000), SaveFlash512Kbit, BackingFlash},
		{"flash 128k", saveWith(0x10000), SaveFlash1Mbit, BackingFlash},
		{"tail written", saveWith(0x20000), SaveUnknown, BackingNone},
		{"short buffer", []byte{0x00, 0x01}, SaveUnknown, BackingNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.buf)
			if got != tt.want {
				t.Errorf("Classify: got %v, want %v", got, tt.want)
			}
			if got.Backing() != tt.backing {
				t.Errorf("Backing: got %v, want %v", got.Backing(), tt.backing)
			}
		})
	}
}

func TestClassify_ReadOnly(t *testing.T) {
	buf := saveWith(5, 0x3000)
	before := bytes.Clone(buf)

	first := Classify(buf)
	second := Classify(buf)
	if first != second {
		t.Errorf("not idempotent: %v then %v", first, second)
	}
	if !bytes.Equal(buf, before) {
		t.Error("Classify modified the buffer")
	}
}

func TestClassificationSize(t *testing.T) {
	tests := []struct {
		c    Classification
		want int
	}{
		{SaveUnknown, SaveBufferSize},
		{SaveEEPROM512B, 512},
		{SaveEEPROM8KB, 0x2000},
		{SaveFlash512Kbit, 0x10000},
		{SaveFlash1Mbit, 0x20000},
	}
	for _, tt := range tests {
		if got := tt.c.Size(); got != tt.want {
			t.Errorf("%v.Size(): got %#x, want %#x", tt.c, got, tt.want)
		}
	}
}

func TestNewSaveBuffer(t *testing.T) {
	buf := NewSaveBuffer()
	if len(buf) != 0x22000 {
		t.Fatalf("len: got %#x, want 0x22000", len(buf))
	}
	if written(buf) {
		t.Error("new buffer is not erased")
	}
	buf[10] = 1
	eraseSaveBuffer(buf)
	if written(buf) {
		t.Error("eraseSaveBuffer left written bytes")
	}
}
