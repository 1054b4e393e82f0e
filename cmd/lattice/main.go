package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lattice",
	Short: "Geometry queries on strain-scanning sample models",
	Long:  `Lattice inspects STL sample models and runs the kernel's geometric queries: bounding information, plane cross sections and closest-point searches.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
