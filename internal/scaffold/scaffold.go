// Package scaffold materializes a new project directory: the
// standard subdirectories, a default Fortuna.toml manifest, and a
// minimal src/main.f90.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fortuna-build/fortuna/internal/config"
)

var dirs = []string{"src", "mod", "obj", "data", "lib", "bin"}
var hiddenDirs = []string{".cache"}

const defaultManifest = `[build]
target = "bin/%s"
compiler = "gfortran"
flags = ["-cpp", "-fno-align-commons", "-O3", "-ffpe-trap=zero,invalid,underflow,overflow", "-std=legacy", "-ffixed-line-length-none", "-fall-intrinsics", "-Wno-unused-variable", "-Wno-unused-function", "-Wno-conversion", "-fopenmp", "-Imod"]
obj_dir = "obj"
mod_dir = "mod"

[search]
deep = ["src"]
# shallow = []

[library]
# source-libs = []

[exclude]
# files = []

# [lib]
# target = "lib%s.a"

[args]
# cmd = ""
`

const defaultMain = `program main
    print *, "Hello World"
end program main
`

// New creates the project directory structure, writes the default
// manifest and a starter program. name is both the directory created
// and the default build target's basename.
func New(name string) error {
	if err := os.MkdirAll(name, 0755); err != nil {
		return err
	}

	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(name, d), 0755); err != nil {
			return err
		}
	}
	for _, d := range hiddenDirs {
		if err := os.MkdirAll(filepath.Join(name, d), 0755); err != nil {
			return err
		}
	}

	manifest := []byte(fmt.Sprintf(defaultManifest, name, name))
	if err := os.WriteFile(filepath.Join(name, config.ManifestFileName), manifest, 0644); err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(name, "src", "main.f90"), []byte(defaultMain), 0644)
}
