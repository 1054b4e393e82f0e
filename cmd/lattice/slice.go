package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/strainscan/lattice/geometry"
	"github.com/strainscan/lattice/query"
	"github.com/strainscan/lattice/stl"
)

var slicePlane string

var sliceCmd = &cobra.Command{
	Use:   "slice <file>",
	Short: "Compute the cross section of a model with a plane",
	Long:  "Intersect the model surface with the plane ax+by+cz=d and print the resulting line segments.",
	Args:  cobra.ExactArgs(1),
	Run:   runSlice,
}

func init() {
	sliceCmd.Flags().StringVar(&slicePlane, "plane", "0,0,1,0", "plane coefficients a,b,c,d for ax+by+cz=d")
	rootCmd.AddCommand(sliceCmd)
}

func runSlice(cmd *cobra.Command, args []string) {
	coefficients, err := parseFloats(slicePlane, 4)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid --plane value: %v\n", err)
		os.Exit(1)
	}

	plane, err := geometry.PlaneFromCoefficients(coefficients[0], coefficients[1], coefficients[2], coefficients[3])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid plane: %v\n", err)
		os.Exit(1)
	}

	model, err := stl.Load(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading model: %v\n", err)
		os.Exit(1)
	}

	segments := query.MeshPlaneIntersection(model, plane)
	fmt.Printf("%d segments\n", len(segments))
	for _, s := range segments {
		fmt.Printf("(%.6f, %.6f, %.6f) -> (%.6f, %.6f, %.6f)\n",
			s.Start.X(), s.Start.Y(), s.Start.Z(),
			s.End.X(), s.End.Y(), s.End.Z())
	}
}

// parseFloats splits a comma-separated list into exactly count floats.
func parseFloats(value string, count int) ([]float64, error) {
	parts := strings.Split(value, ",")
	if len(parts) != count {
		return nil, fmt.Errorf("expected %d comma-separated values, got %d", count, len(parts))
	}

	floats := make([]float64, count)
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("bad value %q: %w", part, err)
		}
		floats[i] = f
	}
	return floats, nil
}
