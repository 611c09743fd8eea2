package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

var verbosity int

func main() {
	rootCmd := &cobra.Command{
		Use:   "mjc",
		Short: "A MiniJava front-end compiler",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Initialize(verbosity, "")
		},
	}

	rootCmd.PersistentFlags().IntVarP(&verbosity, "verbose", "v", 1, "log verbosity (0=quiet, higher is noisier)")

	rootCmd.AddCommand(newCompileCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
