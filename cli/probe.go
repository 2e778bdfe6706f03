// Package cli provides the command-line probe. It reports what the core
// would configure for a ROM without opening a window: the override list
// match, the save memory classification of a save file and the decoded form
// of cheat text.
package cli

import (
	"fmt"
	"hash/crc32"
	"io"

	"github.com/retroenv/retrogolib/log"
	"github.com/spf13/afero"
	"github.com/user-none/eblitui/rdb"
	"github.com/user-none/emgba/emu"
	"github.com/user-none/emgba/memcore"
)

// Probe holds the inputs shared by every report.
type Probe struct {
	Fs          afero.Fs
	Profiles    emu.ProfileDB
	Preferences emu.Preferences
	DB          *rdb.RDB // optional libretro database
	Logger      *log.Logger
}

// SaveReport describes a classified save file.
type SaveReport struct {
	Path           string
	FileSize       int
	Classification emu.Classification
}

// Report is the result of probing one ROM.
type Report struct {
	ROMName   string
	Title     string
	CRC32     uint32
	HeaderErr error

	// Filled from the libretro database when the CRC is known.
	DBName   string
	DBSerial string

	Config    emu.ResolvedConfig
	StateSize int

	Save *SaveReport

	Cheats   []emu.CheatRecord
	CheatErr error
}

// Run builds the report for rom. savePath and cheats are optional.
func (p *Probe) Run(rom []byte, romName, savePath, cheats string) (*Report, error) {
	r := &Report{
		ROMName:   romName,
		Title:     emu.GameTitle(rom),
		CRC32:     crc32.ChecksumIEEE(rom),
		HeaderErr: emu.ValidateHeader(rom),
	}

	if p.DB != nil {
		if g := p.DB.FindByCRC32(r.CRC32); g != nil {
			r.DBName = g.Name
			r.DBSerial = g.Serial
		}
	}

	opts := []emu.Option{emu.WithPreferences(p.Preferences)}
	if p.Profiles != nil {
		opts = append(opts, emu.WithProfiles(p.Profiles))
	}
	if p.Logger != nil {
		opts = append(opts, emu.WithLogger(p.Logger))
	}
	e, err := emu.NewEmulator(rom, emu.Region(0), memcore.New(p.Fs), opts...)
	if err != nil {
		return nil, err
	}
	defer e.Close()

	if savePath != "" {
		data, err := afero.ReadFile(p.Fs, savePath)
		if err != nil {
			return nil, fmt.Errorf("read save: %w", err)
		}
		e.SetSRAM(data)
		r.Save = &SaveReport{
			Path:           savePath,
			FileSize:       len(data),
			Classification: e.SaveClassification(),
		}
	}

	r.Config = e.Config()
	r.StateSize = e.SerializeSize()

	if cheats != "" {
		r.Cheats, r.CheatErr = emu.DecodeCheats(cheats, emu.CheatName(0))
	}
	return r, nil
}

// Print writes the report in human readable form.
func (r *Report) Print(w io.Writer) error {
	var err error
	printf := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}

	printf("ROM:          %s\n", r.ROMName)
	printf("Title:        %s\n", r.Title)
	printf("Game ID:      %s\n", r.Config.TitleID)
	printf("CRC32:        %08X\n", r.CRC32)
	if r.HeaderErr != nil {
		printf("Header:       %v\n", r.HeaderErr)
	}
	if r.DBName != "" {
		printf("Database:     %s (%s)\n", r.DBName, r.DBSerial)
	}

	if r.Config.Found {
		printf("Override:     found\n")
	} else {
		printf("Override:     not listed, using defaults\n")
	}
	printf("Save type:    %s\n", r.Config.SaveType)
	printf("Flash size:   %d\n", r.Config.FlashSize)
	printf("RTC:          %t\n", r.Config.RTC)
	printf("Mirroring:    %t\n", r.Config.Mirroring)
	printf("BIOS:         %t (required: %t)\n", r.Config.UseBIOS, r.Config.BIOSRequired)
	printf("State size:   %d\n", r.StateSize)

	if r.Save != nil {
		printf("Save file:    %s (%d bytes)\n", r.Save.Path, r.Save.FileSize)
		printf("Detected:     %s, %d bytes, %s backing\n",
			r.Save.Classification, r.Save.Classification.Size(), r.Save.Classification.Backing())
	}

	for _, c := range r.Cheats {
		printf("Cheat:        %s %s\n", c.Family, c.Code)
	}
	if r.CheatErr != nil {
		printf("Cheat errors: %v\n", r.CheatErr)
	}
	return err
}
