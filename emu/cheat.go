package emu

import (
	"errors"
	"fmt"
)

// CheatFamily identifies the cheat device encoding of a record.
type CheatFamily int

const (
	CheatCBA CheatFamily = iota // CodeBreaker, 12 digits
	CheatGSA                    // GameShark / Action Replay, 16 digits
)

// String returns the display name of the family.
func (f CheatFamily) String() string {
	switch f {
	case CheatCBA:
		return "CBA"
	case CheatGSA:
		return "GSA"
	default:
		return fmt.Sprintf("CheatFamily(%d)", int(f))
	}
}

// Digit counts of the two code families.
const (
	cbaDigits = 12
	gsaDigits = 16
)

// cbaSplit is where the CBA address and value halves are separated.
const cbaSplit = 8

// CheatRecord is one decoded code ready for the core cheat table.
type CheatRecord struct {
	Family CheatFamily
	Code   string // "XXXXXXXX YYYY" for CBA, 16 digits for GSA
	Name   string
	V3     bool // GSA only: Action Replay v3 encoding
}

// ErrInvalidCheat is matched by every CheatFormatError.
var ErrInvalidCheat = errors.New("invalid cheat code")

// CheatFormatError reports a hex run whose length is neither 12 nor 16.
type CheatFormatError struct {
	Fragment string
}

func (e *CheatFormatError) Error() string {
	return fmt.Sprintf("invalid cheat code '%s' (%d digits)", e.Fragment, len(e.Fragment))
}

func (e *CheatFormatError) Unwrap() error {
	return ErrInvalidCheat
}

// CheatName returns the table name used for the code at index.
func CheatName(index int) string {
	return fmt.Sprintf("cheat_%d", index)
}

type decoderState int

const (
	stateScanning decoderState = iota // accumulating hex digits
	stateFlushing                     // a complete run waits to be emitted
)

// cheatDecoder splits text into hex runs. Separators only end a run once it
// is long enough to be a code, so "1234 5678 90AB" is a single CBA code.
type cheatDecoder struct {
	name    string
	state   decoderState
	acc     []byte
	records []CheatRecord
	errs    []error
}

// DecodeCheats decodes every code in text. Codes of an unknown length are
// reported in the returned error and skipped; the rest of the text is still
// decoded. A trailing run shorter than 12 digits is dropped silently. Text
// after a NUL byte is ignored.
func DecodeCheats(text, name string) ([]CheatRecord, error) {
	d := &cheatDecoder{
		name: name,
		acc:  make([]byte, 0, len(text)+5),
	}

	for i := 0; i < len(text) && text[i] != 0; i++ {
		d.step(text[i], false)
	}
	d.finish()

	return d.records, errors.Join(d.errs...)
}

// step feeds one input character. A separator after a run of 12 or more
// digits moves to stateFlushing; the run is emitted on the following step.
// end marks the terminator, which behaves like a separator.
func (d *cheatDecoder) step(c byte, end bool) {
	switch d.state {
	case stateFlushing:
		d.flush()
		d.state = stateScanning
		d.step(c, end)
	case stateScanning:
		if !end {
			if v, ok := hexDigit(c); ok {
				d.acc = append(d.acc, v)
				return
			}
		}
		if len(d.acc) >= cbaDigits {
			d.state = stateFlushing
		}
	}
}

// finish feeds the terminator and emits a run still waiting to be flushed.
func (d *cheatDecoder) finish() {
	d.step(0, true)
	if d.state == stateFlushing {
		d.flush()
		d.state = stateScanning
	}
}

// flush emits the accumulated run and starts a new one.
func (d *cheatDecoder) flush() {
	switch len(d.acc) {
	case cbaDigits:
		code := string(d.acc[:cbaSplit]) + " " + string(d.acc[cbaSplit:])
		d.records = append(d.records, CheatRecord{Family: CheatCBA, Code: code, Name: d.name})
	case gsaDigits:
		d.records = append(d.records, CheatRecord{Family: CheatGSA, Code: string(d.acc), Name: d.name, V3: true})
	default:
		d.errs = append(d.errs, &CheatFormatError{Fragment: string(d.acc)})
	}
	d.acc = d.acc[:0]
}

// hexDigit returns c upper-cased if it is a hex digit.
func hexDigit(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9', c >= 'A' && c <= 'F':
		return c, true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 'A', true
	default:
		return 0, false
	}
}
