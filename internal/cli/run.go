package cli

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/fortuna-build/fortuna/internal/config"
	"github.com/fortuna-build/fortuna/internal/logger"
	"github.com/spf13/cobra"
)

func newRunCommand() *cobra.Command {
	var (
		parallel bool
		rebuild  bool
		libOnly  bool
		binName  string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Build if needed, then launch the target executable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.NewConsoleLogger(os.Stdout)

			if err := runBuild(".", log, buildOptions{
				Parallel:    parallel,
				ForceFull:   rebuild,
				LibOnly:     libOnly,
				RecordStats: true,
			}); err != nil {
				return err
			}

			m, err := config.Load(filepath.Join(".", config.ManifestFileName))
			if err != nil {
				log.Error("%v", err)
				return err
			}

			target := m.Build.Target
			if binName != "" {
				target = binName
			}

			var runArgs []string
			if cmdLine, ok := m.GetString("args.cmd"); ok {
				runArgs = strings.Fields(cmdLine)
			}

			return launch(target, runArgs)
		},
	}

	cmd.Flags().BoolVarP(&parallel, "jobs", "j", false, "compile across a bounded worker pool")
	cmd.Flags().BoolVarP(&rebuild, "rebuild", "r", false, "ignore caches and rebuild everything")
	cmd.Flags().BoolVar(&libOnly, "lib", false, "compile and archive only, skip linking an executable")
	cmd.Flags().StringVar(&binName, "bin", "", "override the configured target binary")

	return cmd
}

// launch execs the built target with its stdio wired straight through
// to the terminal, unlike the compile Runner which captures output for
// error reporting.
func launch(target string, args []string) error {
	abs := target
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(".", target)
	}

	c := exec.Command(abs, args...)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}
