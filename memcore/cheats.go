package memcore

import (
	"fmt"
	"strconv"
	"strings"
)

// TEA key schedules used by GameShark v1/v2 and Action Replay v3.
var (
	gsaSeedsV1 = [4]uint32{0x09F4FBBD, 0x9681884A, 0x352027E9, 0xF3DEE5A7}
	gsaSeedsV3 = [4]uint32{0x7AA9648F, 0x7FAE6994, 0xC0EFAAD5, 0x42712C57}
)

const (
	teaDelta = 0x9E3779B9
	teaSum   = 0xC6EF3720
	teaRound = 32
)

// CBA code types this core applies.
const (
	cba8BitWrite  = 0x3
	cba16BitWrite = 0x8
)

// Cheat is one decoded entry of the cheat table. Size is the number of
// bytes written each frame, or 0 for code types this core does not apply.
type Cheat struct {
	Name    string
	Code    string
	Enabled bool
	Address uint32
	Value   uint32
	Size    int
}

type cheatTable struct {
	entries []Cheat
}

// AddCBACode adds a CodeBreaker code in "XXXXXXXX YYYY" form.
func (c *Core) AddCBACode(code, name string) error {
	addrHex, valueHex, ok := strings.Cut(code, " ")
	if !ok || len(addrHex) != 8 || len(valueHex) != 4 {
		return fmt.Errorf("malformed CBA code %q", code)
	}
	addr, err := strconv.ParseUint(addrHex, 16, 32)
	if err != nil {
		return fmt.Errorf("CBA code %q: %w", code, err)
	}
	value, err := strconv.ParseUint(valueHex, 16, 16)
	if err != nil {
		return fmt.Errorf("CBA code %q: %w", code, err)
	}

	ch := Cheat{
		Name:    name,
		Code:    code,
		Enabled: true,
		Address: uint32(addr) & 0x0FFFFFFF,
		Value:   uint32(value),
	}
	switch addr >> 28 {
	case cba8BitWrite:
		ch.Size = 1
		ch.Value &= 0xFF
	case cba16BitWrite:
		ch.Size = 2
		ch.Address &^= 1
	}
	c.cheats.entries = append(c.cheats.entries, ch)
	return nil
}

// AddGSACode adds an encrypted 16 digit GameShark or Action Replay code.
func (c *Core) AddGSACode(code, name string, v3 bool) error {
	if len(code) != 16 {
		return fmt.Errorf("malformed GSA code %q", code)
	}
	addr, err := strconv.ParseUint(code[:8], 16, 32)
	if err != nil {
		return fmt.Errorf("GSA code %q: %w", code, err)
	}
	value, err := strconv.ParseUint(code[8:], 16, 32)
	if err != nil {
		return fmt.Errorf("GSA code %q: %w", code, err)
	}

	a, v := decryptGSA(uint32(addr), uint32(value), v3)
	ch := Cheat{Name: name, Code: code, Enabled: true}
	if v3 {
		ch.Address, ch.Value, ch.Size = decodeARv3(a, v)
	} else {
		ch.Address, ch.Value, ch.Size = decodeGSAv1(a, v)
	}
	c.cheats.entries = append(c.cheats.entries, ch)
	return nil
}

// SetCheatEnabled enables or disables every entry added under name.
func (c *Core) SetCheatEnabled(name string, enabled bool) {
	for i := range c.cheats.entries {
		if c.cheats.entries[i].Name == name {
			c.cheats.entries[i].Enabled = enabled
		}
	}
}

// DeleteAllCheats empties the cheat table.
func (c *Core) DeleteAllCheats() {
	c.cheats.entries = nil
}

// Cheats returns a copy of the cheat table.
func (c *Core) Cheats() []Cheat {
	out := make([]Cheat, len(c.cheats.entries))
	copy(out, c.cheats.entries)
	return out
}

// apply performs the writes of every enabled entry.
func (t *cheatTable) apply(c *Core) {
	for _, ch := range t.entries {
		if ch.Enabled && ch.Size > 0 {
			c.writeN(ch.Address, ch.Value, ch.Size)
		}
	}
}

// decryptGSA reverses the TEA encryption applied to GSA codes.
func decryptGSA(addr, value uint32, v3 bool) (uint32, uint32) {
	seeds := gsaSeedsV1
	if v3 {
		seeds = gsaSeedsV3
	}
	sum := uint32(teaSum)
	for i := 0; i < teaRound; i++ {
		value -= ((addr << 4) + seeds[2]) ^ (addr + sum) ^ ((addr >> 5) + seeds[3])
		addr -= ((value << 4) + seeds[0]) ^ (value + sum) ^ ((value >> 5) + seeds[1])
		sum -= teaDelta
	}
	return addr, value
}

// decodeGSAv1 maps the RAM write types of GameShark v1/v2 codes.
func decodeGSAv1(addr, value uint32) (uint32, uint32, int) {
	target := addr & 0x0FFFFFFF
	switch addr >> 28 {
	case 0:
		return target, value & 0xFF, 1
	case 1:
		return target &^ 1, value & 0xFFFF, 2
	case 2:
		return target &^ 3, value, 4
	default:
		return target, value, 0
	}
}

// decodeARv3 maps the RAM write types of Action Replay v3 codes.
func decodeARv3(addr, value uint32) (uint32, uint32, int) {
	kind := ((addr >> 25) & 0x7F) | ((addr >> 17) & 0x80)
	target := ((addr & 0x00F00000) << 4) | (addr & 0x0003FFFF)
	switch kind {
	case 0x00:
		return target, value & 0xFF, 1
	case 0x02:
		return target &^ 1, value & 0xFFFF, 2
	case 0x04:
		return target &^ 3, value, 4
	default:
		return target, value, 0
	}
}
