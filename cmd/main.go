package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:          "loadboard",
		Short:        "OnPoint loads board: HTTP API and driver bot",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newResetDBCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
