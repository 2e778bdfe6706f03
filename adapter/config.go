package adapter

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/user-none/emgba/emu"
)

// OverrideFileName is the user override list looked up in the system
// directory. Its rows take precedence over the built-in list.
const OverrideFileName = "vba-over.ini"

// Configure looks for the BIOS image and the user override list in the
// system directory dir. Missing files are not errors; a malformed override
// list is.
func (f *Factory) Configure(dir string) error {
	if dir == "" {
		return nil
	}
	fs := f.fs()

	biosPath := filepath.Join(dir, BIOSFileName)
	if ok, err := afero.Exists(fs, biosPath); err == nil && ok {
		f.Preferences.BIOSPath = biosPath
	}

	overridePath := filepath.Join(dir, OverrideFileName)
	ok, err := afero.Exists(fs, overridePath)
	if err != nil || !ok {
		return nil
	}
	user, err := emu.LoadProfilesFile(fs, overridePath)
	if err != nil {
		return fmt.Errorf("%s: %w", overridePath, err)
	}

	base := f.Profiles
	if base == nil {
		base = emu.BuiltinProfiles()
	}
	f.Profiles = base.Prepend(user)
	return nil
}
