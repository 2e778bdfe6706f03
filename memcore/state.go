package memcore

import (
	"encoding/binary"
	"errors"
)

// State format constants
const (
	stateMagic   = "MCOR"
	stateVersion = 1

	stateHeaderSize = 4 + 2
	stateRegsSize   = 4 + 1 + 1 + 1 + 1 + 2 + 4 // flashSize, rtc, mirroring, hleBIOS, parallax, keys, frame

	// StateSize is the number of bytes WriteState produces.
	StateSize = stateHeaderSize + stateRegsSize +
		workRAMSize + internalRAMSize + vramSize + paletteSize + oamSize + ioSize
)

// boolByte converts a bool to a uint8 (0 or 1).
func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// regions returns the memory regions in state order.
func (c *Core) regions() [][]byte {
	return [][]byte{
		c.workRAM[:],
		c.internalRAM[:],
		c.vram[:],
		c.palette[:],
		c.oam[:],
		c.io[:],
	}
}

// WriteState serializes the core into buf. It returns 0 when buf is too
// small.
func (c *Core) WriteState(buf []byte) int {
	if len(buf) < StateSize {
		return 0
	}

	copy(buf[0:4], stateMagic)
	binary.LittleEndian.PutUint16(buf[4:6], stateVersion)
	offset := stateHeaderSize

	binary.LittleEndian.PutUint32(buf[offset:], uint32(c.flashSize))
	offset += 4
	buf[offset] = boolByte(c.rtc)
	offset++
	buf[offset] = boolByte(c.mirroring)
	offset++
	buf[offset] = boolByte(c.hleBIOS)
	offset++
	buf[offset] = byte(int8(c.parallax))
	offset++
	binary.LittleEndian.PutUint16(buf[offset:], c.keys)
	offset += 2
	binary.LittleEndian.PutUint32(buf[offset:], c.frame)
	offset += 4

	for _, r := range c.regions() {
		copy(buf[offset:], r)
		offset += len(r)
	}
	return offset
}

// ReadState restores the core from buf. The core is unchanged on error.
func (c *Core) ReadState(buf []byte) error {
	if len(buf) < StateSize {
		return errors.New("core state too short")
	}
	if string(buf[0:4]) != stateMagic {
		return errors.New("invalid core state magic")
	}
	if binary.LittleEndian.Uint16(buf[4:6]) > stateVersion {
		return errors.New("unsupported core state version")
	}
	offset := stateHeaderSize

	c.flashSize = int(binary.LittleEndian.Uint32(buf[offset:]))
	offset += 4
	c.rtc = buf[offset] != 0
	offset++
	c.mirroring = buf[offset] != 0
	offset++
	c.hleBIOS = buf[offset] != 0
	offset++
	c.parallax = int(int8(buf[offset]))
	offset++
	c.keys = binary.LittleEndian.Uint16(buf[offset:])
	offset += 2
	c.frame = binary.LittleEndian.Uint32(buf[offset:])
	offset += 4

	for _, r := range c.regions() {
		copy(r, buf[offset:offset+len(r)])
		offset += len(r)
	}
	return nil
}
