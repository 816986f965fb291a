package cli

import (
	"os"

	"github.com/fortuna-build/fortuna/internal/logger"
	"github.com/spf13/cobra"
)

func newBuildCommand() *cobra.Command {
	var (
		parallel  bool
		rebuild   bool
		libOnly   bool
		showStats bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Scan, plan, and compile a project incrementally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.NewConsoleLogger(os.Stdout)

			if showStats {
				return printStats(log, ".")
			}

			return runBuild(".", log, buildOptions{
				Parallel:    parallel,
				ForceFull:   rebuild,
				LibOnly:     libOnly,
				RecordStats: true,
			})
		},
	}

	cmd.Flags().BoolVarP(&parallel, "jobs", "j", false, "compile across a bounded worker pool")
	cmd.Flags().BoolVarP(&rebuild, "rebuild", "r", false, "ignore caches and rebuild everything")
	cmd.Flags().BoolVar(&libOnly, "lib", false, "compile and archive only, skip linking an executable")
	cmd.Flags().BoolVar(&showStats, "stats", false, "print recent build history instead of building")

	return cmd
}
