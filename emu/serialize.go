package emu

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
)

// Save state format constants
const (
	stateVersion    = 1
	stateMagic      = "eMGBAState\x00\x00"
	stateHeaderSize = 22 // magic(12) + version(2) + romCRC(4) + dataCRC(4)
)

// ErrStateSize is returned when a save state does not have the size the
// session declared at load.
var ErrStateSize = errors.New("save state size mismatch")

// ErrNoSaveStates is returned when the core's state did not fit the
// scratch buffer at load.
var ErrNoSaveStates = errors.New("save states unavailable")

// DeclaredStateSize returns the save state size every session on core
// will use. It does not depend on the loaded game, so frontends can query
// it before the first load. Zero means save states are unavailable.
func DeclaredStateSize(core Core) int {
	n := measureStateSize(core)
	if n == 0 {
		return 0
	}
	return stateHeaderSize + n
}

// SerializeSize returns the size of every save state for this session. It
// is fixed at load.
func (e *Emulator) SerializeSize() int {
	return stateHeaderSize + e.stateSize
}

// Serialize creates a save state and returns it as a byte slice.
func (e *Emulator) Serialize() ([]byte, error) {
	if e.stateSize == 0 {
		return nil, ErrNoSaveStates
	}

	data := make([]byte, e.SerializeSize())

	// Write header
	copy(data[0:12], stateMagic)
	binary.LittleEndian.PutUint16(data[12:14], stateVersion)
	binary.LittleEndian.PutUint32(data[14:18], e.romCRC)

	if n := e.core.WriteState(data[stateHeaderSize:]); n == 0 || n > e.stateSize {
		return nil, fmt.Errorf("core wrote %d state bytes, declared %d", n, e.stateSize)
	}

	// Calculate and write data CRC32 (over everything after header)
	dataCRC := crc32.ChecksumIEEE(data[stateHeaderSize:])
	binary.LittleEndian.PutUint32(data[18:22], dataCRC)

	return data, nil
}

// Deserialize restores emulator state from a save state byte slice. The
// state is fully verified before the core is touched.
func (e *Emulator) Deserialize(data []byte) error {
	if err := e.VerifyState(data); err != nil {
		return err
	}
	if err := e.core.ReadState(data[stateHeaderSize:]); err != nil {
		return fmt.Errorf("restore core state: %w", err)
	}
	return nil
}

// VerifyState checks if a save state is valid without loading it.
func (e *Emulator) VerifyState(data []byte) error {
	if e.stateSize == 0 {
		return ErrNoSaveStates
	}

	if expected := e.SerializeSize(); len(data) != expected {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrStateSize, len(data), expected)
	}

	if string(data[0:12]) != stateMagic {
		return errors.New("invalid save state magic")
	}

	version := binary.LittleEndian.Uint16(data[12:14])
	if version > stateVersion {
		return errors.New("unsupported save state version")
	}

	romCRC := binary.LittleEndian.Uint32(data[14:18])
	if romCRC != e.romCRC {
		return errors.New("save state is for a different ROM")
	}

	expectedCRC := binary.LittleEndian.Uint32(data[18:22])
	actualCRC := crc32.ChecksumIEEE(data[stateHeaderSize:])
	if expectedCRC != actualCRC {
		return errors.New("save state data is corrupted")
	}

	return nil
}
