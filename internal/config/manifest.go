// Package config reads Fortuna.toml into a typed Manifest and exposes
// the dotted-key Config Provider contract (get_string/get_array) over
// it, so the rest of the engine never imports the TOML library
// directly.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ManifestFileName is the project manifest Fortuna reads from the
// project root.
const ManifestFileName = "Fortuna.toml"

// MissingKeyError reports a required manifest key that was absent or
// empty, per the Config error taxonomy: fatal, reported with the key
// name.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("config: missing required key %q", e.Key)
}

type buildSection struct {
	Target   string   `toml:"target"`
	Compiler string   `toml:"compiler"`
	Flags    []string `toml:"flags"`
	ObjDir   string   `toml:"obj_dir"`
	ModDir   string   `toml:"mod_dir"`
}

type searchSection struct {
	Deep    []string `toml:"deep"`
	Shallow []string `toml:"shallow"`
}

type excludeSection struct {
	Files []string `toml:"files"`
}

type librarySection struct {
	SourceLibs []string `toml:"source-libs"`
}

type libSection struct {
	Target string `toml:"target"`
}

type argsSection struct {
	Cmd string `toml:"cmd"`
}

// Manifest is the parsed form of Fortuna.toml.
type Manifest struct {
	Build   buildSection   `toml:"build"`
	Search  searchSection  `toml:"search"`
	Exclude excludeSection `toml:"exclude"`
	Library librarySection `toml:"library"`
	Lib     libSection     `toml:"lib"`
	Args    argsSection    `toml:"args"`
}

// Load reads and parses the manifest at path, then validates the
// required keys (build.target, build.compiler, build.flags) and
// fills in the defaulted directories (build.obj_dir -> "obj",
// build.mod_dir -> "mod").
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("config: malformed manifest: %w", err)
	}

	if m.Build.Target == "" {
		return nil, &MissingKeyError{Key: "build.target"}
	}
	if m.Build.Compiler == "" {
		return nil, &MissingKeyError{Key: "build.compiler"}
	}
	if len(m.Build.Flags) == 0 {
		return nil, &MissingKeyError{Key: "build.flags"}
	}

	if m.Build.ObjDir == "" {
		m.Build.ObjDir = "obj"
	}
	if m.Build.ModDir == "" {
		m.Build.ModDir = "mod"
	}

	return &m, nil
}

// GetString implements the Config Provider's get_string(key) contract
// for the dotted keys the engine consumes. Unknown keys return "",
// false.
func (m *Manifest) GetString(key string) (string, bool) {
	switch key {
	case "build.target":
		return m.Build.Target, m.Build.Target != ""
	case "build.compiler":
		return m.Build.Compiler, m.Build.Compiler != ""
	case "build.obj_dir":
		return m.Build.ObjDir, m.Build.ObjDir != ""
	case "build.mod_dir":
		return m.Build.ModDir, m.Build.ModDir != ""
	case "lib.target":
		return m.Lib.Target, m.Lib.Target != ""
	case "args.cmd":
		return m.Args.Cmd, m.Args.Cmd != ""
	default:
		return "", false
	}
}

// GetArray implements the Config Provider's get_array(key) contract.
func (m *Manifest) GetArray(key string) ([]string, bool) {
	switch key {
	case "build.flags":
		return m.Build.Flags, len(m.Build.Flags) > 0
	case "search.deep":
		return m.Search.Deep, len(m.Search.Deep) > 0
	case "search.shallow":
		return m.Search.Shallow, len(m.Search.Shallow) > 0
	case "exclude.files":
		return m.Exclude.Files, len(m.Exclude.Files) > 0
	case "library.source-libs":
		return m.Library.SourceLibs, len(m.Library.SourceLibs) > 0
	default:
		return nil, false
	}
}
