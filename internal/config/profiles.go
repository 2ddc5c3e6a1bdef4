// ABOUTME: Named endpoint profiles for switching between controllers
// ABOUTME: TOML file mapping profile name to server URL and session file

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Profile is one named controller endpoint. SessionFile, when set, keeps a
// separate login per profile so switching controllers does not clobber the
// default session.
type Profile struct {
	URL         string `toml:"url"`
	SessionFile string `toml:"session_file"`
}

// profilesFile is the on-disk shape of profiles.toml.
type profilesFile struct {
	Profiles map[string]Profile `toml:"profiles"`
}

// ProfilesPath returns the profiles file location under the XDG config dir.
func ProfilesPath() string {
	path := DefaultPath()
	if path == "" {
		return ""
	}
	return filepath.Join(filepath.Dir(path), "profiles.toml")
}

// LoadProfiles reads the profiles file. A missing file yields an empty map.
func LoadProfiles(path string) (map[string]Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]Profile{}, nil
		}
		return nil, fmt.Errorf("reading profiles file: %w", err)
	}

	var pf profilesFile
	if err := toml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parsing profiles file: %w", err)
	}
	if pf.Profiles == nil {
		pf.Profiles = map[string]Profile{}
	}
	return pf.Profiles, nil
}

// Lookup resolves a profile by name from the default profiles file.
func Lookup(name string) (Profile, error) {
	profiles, err := LoadProfiles(ProfilesPath())
	if err != nil {
		return Profile{}, err
	}
	p, ok := profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("unknown profile %q", name)
	}
	if p.URL == "" {
		return Profile{}, fmt.Errorf("profile %q has no url", name)
	}
	return p, nil
}
