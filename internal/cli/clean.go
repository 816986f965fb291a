package cli

import (
	"os"
	"path/filepath"

	"github.com/fortuna-build/fortuna/internal/cache"
	"github.com/fortuna-build/fortuna/internal/config"
	"github.com/fortuna-build/fortuna/internal/logger"
	"github.com/spf13/cobra"
)

func newCleanCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove build artifacts and cache state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.NewConsoleLogger(os.Stdout)
			return runClean(".", log)
		},
	}
}

// runClean empties the object and module directories and clears the
// dependency caches, so the next build runs as if from a fresh
// checkout. The directory structure itself is recreated, not removed,
// matching scaffold.New's layout.
func runClean(projectRoot string, log *logger.ConsoleLogger) error {
	m, err := config.Load(filepath.Join(projectRoot, config.ManifestFileName))
	if err != nil {
		log.Error("%v", err)
		return err
	}

	for _, dir := range []string{m.Build.ObjDir, m.Build.ModDir} {
		full := filepath.Join(projectRoot, dir)
		if err := os.RemoveAll(full); err != nil {
			log.Error("%v", err)
			return err
		}
		if err := os.MkdirAll(full, 0755); err != nil {
			log.Error("%v", err)
			return err
		}
	}

	cacheDir := cache.Dir(projectRoot)
	for _, name := range []string{cache.HashFileName, cache.TopoFileName} {
		path := filepath.Join(cacheDir, name)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Error("%v", err)
			return err
		}
		_ = os.Remove(path + ".lock")
	}

	log.OK("cleaned obj, mod, and cache state")
	return nil
}
