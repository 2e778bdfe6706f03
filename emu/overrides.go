package emu

import (
	"fmt"

	"github.com/spf13/afero"
	"gopkg.in/ini.v1"
)

// SaveType is the backup chip override code used by VBA style override
// lists. Code 0 leaves the choice to the core.
type SaveType int

const (
	SaveTypeAuto         SaveType = iota // No override, core decides
	SaveTypeEEPROM                       // EEPROM, 512B or 8KB
	SaveTypeSRAM                         // 32KB battery SRAM
	SaveTypeFlash                        // Flash, 64KB or 128KB
	SaveTypeEEPROMSensor                 // EEPROM with tilt/solar sensor
	SaveTypeNone                         // No backup memory
)

// String returns the display name of the save type.
func (s SaveType) String() string {
	switch s {
	case SaveTypeAuto:
		return "auto"
	case SaveTypeEEPROM:
		return "EEPROM"
	case SaveTypeSRAM:
		return "SRAM"
	case SaveTypeFlash:
		return "Flash"
	case SaveTypeEEPROMSensor:
		return "EEPROM+sensor"
	case SaveTypeNone:
		return "none"
	default:
		return fmt.Sprintf("SaveType(%d)", int(s))
	}
}

// Flash chip sizes in bytes.
const (
	flash512K = 0x10000
	flash1M   = 0x20000
)

// TitleIDLen is the length of the game code in the cartridge header.
const TitleIDLen = 4

// HardwareProfile describes the cartridge hardware of one known release.
// A zero FlashSize means the caller's default applies.
type HardwareProfile struct {
	Title     string
	ID        string
	FlashSize int
	SaveType  SaveType
	RTC       bool
	Mirroring bool
	BIOS      bool
}

// ProfileDB is an ordered list of hardware profiles. Lookups scan from the
// top and the first matching ID wins, so duplicated IDs resolve to the
// earlier row.
type ProfileDB []HardwareProfile

// Lookup returns the first profile whose ID matches id exactly.
func (db ProfileDB) Lookup(id string) (HardwareProfile, bool) {
	if len(id) != TitleIDLen {
		return HardwareProfile{}, false
	}
	for _, p := range db {
		if p.ID == id {
			return p, true
		}
	}
	return HardwareProfile{}, false
}

// Prepend returns a new database with the rows of front ahead of db.
// Neither input is modified.
func (db ProfileDB) Prepend(front ProfileDB) ProfileDB {
	out := make(ProfileDB, 0, len(front)+len(db))
	out = append(out, front...)
	return append(out, db...)
}

// BuiltinProfiles returns a copy of the built-in override list.
func BuiltinProfiles() ProfileDB {
	out := make(ProfileDB, len(builtinProfiles))
	copy(out, builtinProfiles)
	return out
}

// LoadProfilesINI parses a vba-over.ini style override list. Each section
// is named by a title ID and may set saveType, flashSize, rtcEnabled,
// mirroringEnabled, useBios and title. Sections keep file order.
func LoadProfilesINI(data []byte) (ProfileDB, error) {
	cfg, err := ini.Load(data)
	if err != nil {
		return nil, fmt.Errorf("parse override list: %w", err)
	}

	var db ProfileDB
	for _, sec := range cfg.Sections() {
		id := sec.Name()
		if id == ini.DefaultSection {
			continue
		}
		if len(id) != TitleIDLen {
			return nil, fmt.Errorf("override section %q: title id must be %d characters", id, TitleIDLen)
		}

		p := HardwareProfile{
			Title: sec.Key("title").String(),
			ID:    id,
		}
		if sec.HasKey("saveType") {
			saveType, err := sec.Key("saveType").Int()
			if err != nil {
				return nil, fmt.Errorf("override section %q: saveType: %w", id, err)
			}
			if saveType < int(SaveTypeAuto) || saveType > int(SaveTypeNone) {
				return nil, fmt.Errorf("override section %q: saveType %d out of range", id, saveType)
			}
			p.SaveType = SaveType(saveType)
		}
		if sec.HasKey("flashSize") {
			flashSize, err := sec.Key("flashSize").Int()
			if err != nil {
				return nil, fmt.Errorf("override section %q: flashSize: %w", id, err)
			}
			p.FlashSize = flashSize
		}
		p.RTC = sec.Key("rtcEnabled").MustInt(0) != 0
		p.Mirroring = sec.Key("mirroringEnabled").MustInt(0) != 0
		p.BIOS = sec.Key("useBios").MustInt(0) != 0

		db = append(db, p)
	}
	return db, nil
}

// LoadProfilesFile reads an override list from fs.
func LoadProfilesFile(fs afero.Fs, path string) (ProfileDB, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read override list: %w", err)
	}
	return LoadProfilesINI(data)
}

// builtinProfiles is the curated override list. Rows are never reordered:
// FTBJ is listed twice and the first row is the one that applies.
var builtinProfiles = ProfileDB{
	{Title: "2 Games in 1 - Dragon Ball Z - The Legacy of Goku I & II (USA)", ID: "BLFE", SaveType: SaveTypeEEPROM},
	{Title: "2 Games in 1 - Dragon Ball Z - Buu's Fury + Dragon Ball GT - Transformation (USA)", ID: "BUFE", SaveType: SaveTypeEEPROM},
	{Title: "Boktai - The Sun Is in Your Hand (Europe)(En,Fr,De,Es,It)", ID: "U3IP", RTC: true},
	{Title: "Boktai - The Sun Is in Your Hand (USA)", ID: "U3IE", RTC: true},
	{Title: "Boktai 2 - Solar Boy Django (USA)", ID: "U32E", RTC: true},
	{Title: "Boktai 2 - Solar Boy Django (Europe)(En,Fr,De,Es,It)", ID: "U32P", RTC: true},
	{Title: "Bokura no Taiyou - Taiyou Action RPG (Japan)", ID: "U3IJ", RTC: true},
	{Title: "Card e-Reader+ (Japan)", ID: "PSAJ", FlashSize: flash1M},
	{Title: "Classic NES Series - Bomberman (USA, Europe)", ID: "FBME", SaveType: SaveTypeEEPROM, Mirroring: true},
	{Title: "Classic NES Series - Castlevania (USA, Europe)", ID: "FADE", SaveType: SaveTypeEEPROM, Mirroring: true},
	{Title: "Classic NES Series - Donkey Kong (USA, Europe)", ID: "FDKE", SaveType: SaveTypeEEPROM, Mirroring: true},
	{Title: "Classic NES Series - Dr. Mario (USA, Europe)", ID: "FDME", SaveType: SaveTypeEEPROM, Mirroring: true},
	{Title: "Classic NES Series - Excitebike (USA, Europe)", ID: "FEBE", SaveType: SaveTypeEEPROM, Mirroring: true},
	{Title: "Classic NES Series - Legend of Zelda (USA, Europe)", ID: "FZLE", SaveType: SaveTypeEEPROM, Mirroring: true},
	{Title: "Classic NES Series - Ice Climber (USA, Europe)", ID: "FICE", SaveType: SaveTypeEEPROM, Mirroring: true},
	{Title: "Classic NES Series - Metroid (USA, Europe)", ID: "FMRE", SaveType: SaveTypeEEPROM, Mirroring: true},
	{Title: "Classic NES Series - Pac-Man (USA, Europe)", ID: "FP7E", SaveType: SaveTypeEEPROM, Mirroring: true},
	{Title: "Classic NES Series - Super Mario Bros. (USA, Europe)", ID: "FSME", SaveType: SaveTypeEEPROM, Mirroring: true},
	{Title: "Classic NES Series - Xevious (USA, Europe)", ID: "FXVE", SaveType: SaveTypeEEPROM, Mirroring: true},
	{Title: "Classic NES Series - Zelda II - The Adventure of Link (USA, Europe)", ID: "FLBE", SaveType: SaveTypeEEPROM, Mirroring: true},
	{Title: "Digi Communication 2 - Datou! Black Gemagema Dan (Japan)", ID: "BDKJ", SaveType: SaveTypeEEPROM},
	{Title: "e-Reader (USA)", ID: "PSAE", FlashSize: flash1M},
	{Title: "Dragon Ball GT - Transformation (USA)", ID: "BT4E", SaveType: SaveTypeEEPROM},
	{Title: "Dragon Ball Z - Buu's Fury (USA)", ID: "BG3E", SaveType: SaveTypeEEPROM},
	{Title: "Dragon Ball Z - Taiketsu (Europe)(En,Fr,De,Es,It)", ID: "BDBP", SaveType: SaveTypeEEPROM},
	{Title: "Dragon Ball Z - Taiketsu (USA)", ID: "BDBE", SaveType: SaveTypeEEPROM},
	{Title: "Dragon Ball Z - The Legacy of Goku II International (Japan)", ID: "ALFJ", SaveType: SaveTypeEEPROM},
	{Title: "Dragon Ball Z - The Legacy of Goku II (Europe)(En,Fr,De,Es,It)", ID: "ALFP", SaveType: SaveTypeEEPROM},
	{Title: "Dragon Ball Z - The Legacy of Goku II (USA)", ID: "ALFE", SaveType: SaveTypeEEPROM},
	{Title: "Dragon Ball Z - The Legacy Of Goku (Europe)(En,Fr,De,Es,It)", ID: "ALGP", SaveType: SaveTypeEEPROM},
	{Title: "Dragon Ball Z - The Legacy of Goku (USA)", ID: "ALGE", FlashSize: flash1M, SaveType: SaveTypeEEPROM},
	{Title: "F-Zero - Climax (Japan)", ID: "BFTJ", FlashSize: flash1M},
	{Title: "Famicom Mini Vol. 01 - Super Mario Bros. (Japan)", ID: "FMBJ", SaveType: SaveTypeEEPROM, Mirroring: true},
	{Title: "Famicom Mini Vol. 12 - Clu Clu Land (Japan)", ID: "FCLJ", SaveType: SaveTypeEEPROM, Mirroring: true},
	{Title: "Famicom Mini Vol. 13 - Balloon Fight (Japan)", ID: "FBFJ", SaveType: SaveTypeEEPROM, Mirroring: true},
	{Title: "Famicom Mini Vol. 14 - Wrecking Crew (Japan)", ID: "FWCJ", SaveType: SaveTypeEEPROM, Mirroring: true},
	{Title: "Famicom Mini Vol. 15 - Dr. Mario (Japan)", ID: "FDMJ", SaveType: SaveTypeEEPROM, Mirroring: true},
	{Title: "Famicom Mini Vol. 16 - Dig Dug (Japan)", ID: "FTBJ", SaveType: SaveTypeEEPROM, Mirroring: true},
	{Title: "Famicom Mini Vol. 17 - Takahashi Meijin no Boukenjima (Japan)", ID: "FTBJ", SaveType: SaveTypeEEPROM, Mirroring: true},
	{Title: "Famicom Mini Vol. 18 - Makaimura (Japan)", ID: "FMKJ", SaveType: SaveTypeEEPROM, Mirroring: true},
	{Title: "Famicom Mini Vol. 19 - Twin Bee (Japan)", ID: "FTWJ", SaveType: SaveTypeEEPROM, Mirroring: true},
	{Title: "Famicom Mini Vol. 20 - Ganbare Goemon! Karakuri Douchuu (Japan)", ID: "FGGJ", SaveType: SaveTypeEEPROM, Mirroring: true},
	{Title: "Famicom Mini Vol. 21 - Super Mario Bros. 2 (Japan)", ID: "FM2J", SaveType: SaveTypeEEPROM, Mirroring: true},
	{Title: "Famicom Mini Vol. 22 - Nazo no Murasame Jou (Japan)", ID: "FNMJ", SaveType: SaveTypeEEPROM, Mirroring: true},
	{Title: "Famicom Mini Vol. 23 - Metroid (Japan)", ID: "FMRJ", SaveType: SaveTypeEEPROM, Mirroring: true},
	{Title: "Famicom Mini Vol. 24 - Hikari Shinwa - Palthena no Kagami (Japan)", ID: "FPTJ", SaveType: SaveTypeEEPROM, Mirroring: true},
	{Title: "Famicom Mini Vol. 25 - The Legend of Zelda 2 - Link no Bouken (Japan)", ID: "FLBJ", SaveType: SaveTypeEEPROM, Mirroring: true},
	{Title: "Famicom Mini Vol. 26 - Famicom Mukashi Banashi - Shin Onigashima - Zen Kou Hen (Japan)", ID: "FFMJ", SaveType: SaveTypeEEPROM, Mirroring: true},
	{Title: "Famicom Mini Vol. 27 - Famicom Tantei Club - Kieta Koukeisha - Zen Kou Hen (Japan)", ID: "FTKJ", SaveType: SaveTypeEEPROM, Mirroring: true},
	{Title: "Famicom Mini Vol. 28 - Famicom Tantei Club Part II - Ushiro ni Tatsu Shoujo - Zen Kou Hen (Japan)", ID: "FTUJ", SaveType: SaveTypeEEPROM, Mirroring: true},
	{Title: "Famicom Mini Vol. 29 - Akumajou Dracula (Japan)", ID: "FADJ", SaveType: SaveTypeEEPROM, Mirroring: true},
	{Title: "Famicom Mini Vol. 30 - SD Gundam World - Gachapon Senshi Scramble Wars (Japan)", ID: "FSDJ", SaveType: SaveTypeEEPROM, Mirroring: true},
	{Title: "Game Boy Wars Advance 1+2 (Japan)", ID: "BGWJ", FlashSize: flash1M},
	{Title: "Golden Sun - The Lost Age (USA)", ID: "AGFE", FlashSize: flash512K, Mirroring: true},
	{Title: "Golden Sun (USA)", ID: "AGSE", FlashSize: flash512K, Mirroring: true},
	{Title: "Iridion II (Europe) (En,Fr,De)", ID: "AI2P", SaveType: SaveTypeNone},
	{Title: "Iridion II (USA)", ID: "AI2E", SaveType: SaveTypeNone},
	{Title: "Koro Koro Puzzle - Happy Panechu! (Japan)", ID: "KHPJ", SaveType: SaveTypeEEPROMSensor},
	{Title: "Mario vs. Donkey Kong (Europe)", ID: "BM5P", SaveType: SaveTypeFlash},
	{Title: "Pocket Monsters - Emerald (Japan)", ID: "BPEJ", FlashSize: flash1M, RTC: true},
	{Title: "Pocket Monsters - Fire Red (Japan)", ID: "BPRJ", FlashSize: flash1M},
	{Title: "Pocket Monsters - Leaf Green (Japan)", ID: "BPGJ", FlashSize: flash1M},
	{Title: "Pocket Monsters - Ruby (Japan)", ID: "AXVJ", FlashSize: flash1M, RTC: true},
	{Title: "Pocket Monsters - Sapphire (Japan)", ID: "AXPJ", FlashSize: flash1M, RTC: true},
	{Title: "Pokemon Mystery Dungeon - Red Rescue Team (USA, Australia)", ID: "B24E", FlashSize: flash1M},
	{Title: "Pokemon Mystery Dungeon - Red Rescue Team (En,Fr,De,Es,It)", ID: "B24P", FlashSize: flash1M},
	{Title: "Pokemon - Blattgruene Edition (Germany)", ID: "BPGD", FlashSize: flash1M},
	{Title: "Pokemon - Edicion Rubi (Spain)", ID: "AXVS", FlashSize: flash1M, RTC: true},
	{Title: "Pokemon - Edicion Esmeralda (Spain)", ID: "BPES", FlashSize: flash1M, RTC: true},
	{Title: "Pokemon - Edicion Rojo Fuego (Spain)", ID: "BPRS", FlashSize: flash1M, SaveType: SaveTypeEEPROM},
	{Title: "Pokemon - Edicion Verde Hoja (Spain)", ID: "BPGS", FlashSize: flash1M, SaveType: SaveTypeEEPROM},
	{Title: "Pokemon - Eidicion Zafiro (Spain)", ID: "AXPS", FlashSize: flash1M, RTC: true},
	{Title: "Pokemon - Emerald Version (USA, Europe)", ID: "BPEE", FlashSize: flash1M, RTC: true},
	{Title: "Pokemon - Feuerrote Edition (Germany)", ID: "BPRD", FlashSize: flash1M},
	{Title: "Pokemon - Fire Red Version (USA, Europe)", ID: "BPRE", FlashSize: flash1M},
	{Title: "Pokemon - Leaf Green Version (USA, Europe)", ID: "BPGE", FlashSize: flash1M},
	{Title: "Pokemon - Rubin Edition (Germany)", ID: "AXVD", FlashSize: flash1M, RTC: true},
	{Title: "Pokemon - Ruby Version (USA, Europe)", ID: "AXVE", FlashSize: flash1M, RTC: true},
	{Title: "Pokemon - Sapphire Version (USA, Europe)", ID: "AXPE", FlashSize: flash1M, RTC: true},
	{Title: "Pokemon - Saphir Edition (Germany)", ID: "AXPD", FlashSize: flash1M, RTC: true},
	{Title: "Pokemon - Smaragd Edition (Germany)", ID: "BPED", FlashSize: flash1M, RTC: true},
	{Title: "Pokemon - Version Emeraude (France)", ID: "BPEF", FlashSize: flash1M, RTC: true},
	{Title: "Pokemon - Version Rouge Feu (France)", ID: "BPRF", FlashSize: flash1M},
	{Title: "Pokemon - Version Rubis (France)", ID: "AXVF", FlashSize: flash1M, RTC: true},
	{Title: "Pokemon - Version Saphir (France)", ID: "AXPF", FlashSize: flash1M, RTC: true},
	{Title: "Pokemon - Version Vert Feuille (France)", ID: "BPGF", FlashSize: flash1M},
	{Title: "Pokemon - Versione Rubino (Italy)", ID: "AXVI", FlashSize: flash1M, RTC: true},
	{Title: "Pokemon - Versione Rosso Fuoco (Italy)", ID: "BPRI", FlashSize: flash1M},
	{Title: "Pokemon - Versione Smeraldo (Italy)", ID: "BPEI", FlashSize: flash1M, RTC: true},
	{Title: "Pokemon - Versione Verde Foglia (Italy)", ID: "BPGI", FlashSize: flash1M},
	{Title: "Pokemon - Versione Zaffiro (Italy)", ID: "AXPI", FlashSize: flash1M, RTC: true},
	{Title: "Rockman EXE 4.5 - Real Operation (Japan)", ID: "BR4J", RTC: true},
	{Title: "Rocky (Europe)(En,Fr,De,Es,It)", ID: "AROP", SaveType: SaveTypeEEPROM},
	{Title: "Rocky (USA)(En,Fr,De,Es,It)", ID: "AR8e", SaveType: SaveTypeEEPROM},
	{Title: "Sennen Kazoku (Japan)", ID: "BKAJ", FlashSize: flash1M, RTC: true},
	{Title: "Shin Bokura no Taiyou - Gyakushuu no Sabata (Japan)", ID: "U33J", SaveType: SaveTypeEEPROM, RTC: true},
	{Title: "Super Mario Advance 4 (Japan)", ID: "AX4J", FlashSize: flash1M},
	{Title: "Super Mario Advance 4 - Super Mario Bros. 3 (Europe)(En,Fr,De,Es,It)", ID: "AX4P", FlashSize: flash1M},
	{Title: "Super Mario Advance 4 - Super Mario Bros 3 - Super Mario Advance 4 v1.1 (USA)", ID: "AX4E", FlashSize: flash1M},
	{Title: "Top Gun - Combat Zones (USA)(En,Fr,De,Es,It)", ID: "A2YE", SaveType: SaveTypeNone},
	{Title: "Yoshi's Universal Gravitation (Europe)(En,Fr,De,Es,It)", ID: "KYGP", SaveType: SaveTypeEEPROMSensor},
	{Title: "Yoshi no Banyuuinryoku (Japan)", ID: "KYGJ", SaveType: SaveTypeEEPROMSensor},
	{Title: "Yoshi - Topsy-Turvy (USA)", ID: "KYGE", SaveType: SaveTypeEEPROM},
	{Title: "Yu-Gi-Oh! GX - Duel Academy (USA)", ID: "BYGE", SaveType: SaveTypeSRAM, BIOS: true},
	{Title: "Yu-Gi-Oh! - Ultimate Masters - 2006 (Europe)(En,Jp,Fr,De,Es,It)", ID: "BY6P", SaveType: SaveTypeSRAM},
	{Title: "Zoku Bokura no Taiyou - Taiyou Shounen Django (Japan)", ID: "U32J", RTC: true},
}
