package cli

import (
	"os"

	"github.com/fortuna-build/fortuna/internal/logger"
	"github.com/fortuna-build/fortuna/internal/scaffold"
	"github.com/spf13/cobra"
)

func newNewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "new <name>",
		Short: "Scaffold a new Fortuna project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.NewConsoleLogger(os.Stdout)
			name := args[0]
			if err := scaffold.New(name); err != nil {
				log.Error("%v", err)
				return err
			}
			log.OK("created project %s", name)
			return nil
		},
	}
}
