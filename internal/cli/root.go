// Package cli wires the texttocad commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/monicapserrano/text-to-cad/internal/logger"
	"github.com/monicapserrano/text-to-cad/internal/version"
)

// NewRootCmd builds the texttocad command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "texttocad",
		Short:        "Generate, train and serve a text-to-CAD parameter model",
		SilenceUsage: true,
	}

	root.AddCommand(
		newGenerateCmd(),
		newTrainCmd(),
		newPredictCmd(),
		newServeCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "texttocad %s (commit %s, built %s)\n",
				version.Version, version.Commit, version.Date)
		},
	}
}

// newCommandLogger builds a console logger for the offline commands.
func newCommandLogger(level string) (*zap.Logger, error) {
	return logger.NewLogger("local", level)
}
