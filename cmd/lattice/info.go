package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/strainscan/lattice/stl"
)

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Display geometry information about a sample model",
	Args:  cobra.ExactArgs(1),
	Run:   runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) {
	model, err := stl.Load(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading model: %v\n", err)
		os.Exit(1)
	}

	bounds := model.Bounds()
	center := bounds.Center()

	fmt.Printf("File: %s\n\n", args[0])
	fmt.Printf("Triangles: %d\n", model.TriangleCount())
	fmt.Printf("Surface area: %.6f\n\n", model.SurfaceArea())
	fmt.Println("Bounding box:")
	fmt.Printf("  Min:    (%.6f, %.6f, %.6f)\n", bounds.Min.X(), bounds.Min.Y(), bounds.Min.Z())
	fmt.Printf("  Max:    (%.6f, %.6f, %.6f)\n", bounds.Max.X(), bounds.Max.Y(), bounds.Max.Z())
	fmt.Printf("  Center: (%.6f, %.6f, %.6f)\n", center.X(), center.Y(), center.Z())
	fmt.Printf("  Radius: %.6f\n", bounds.Radius())
}
