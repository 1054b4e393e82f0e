package main

import (
	"fmt"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/cobra"

	"github.com/strainscan/lattice/query"
	"github.com/strainscan/lattice/stl"
)

var (
	closestPoint   string
	closestWorkers int
)

var closestCmd = &cobra.Command{
	Use:   "closest <file>",
	Short: "Find the model triangle closest to a point",
	Args:  cobra.ExactArgs(1),
	Run:   runClosest,
}

func init() {
	closestCmd.Flags().StringVar(&closestPoint, "point", "0,0,0", "query point x,y,z")
	closestCmd.Flags().IntVar(&closestWorkers, "workers", 1, "number of parallel search workers")
	rootCmd.AddCommand(closestCmd)
}

func runClosest(cmd *cobra.Command, args []string) {
	coords, err := parseFloats(closestPoint, 3)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid --point value: %v\n", err)
		os.Exit(1)
	}
	point := mgl64.Vec3{coords[0], coords[1], coords[2]}

	model, err := stl.Load(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading model: %v\n", err)
		os.Exit(1)
	}

	face, sqDist, ok := query.ClosestTriangleToPointParallel(model.Faces(), point, closestWorkers)
	if !ok {
		fmt.Fprintln(os.Stderr, "Model has no triangles")
		os.Exit(1)
	}

	closest := query.ClosestPointOnTriangle(face[0], face[1], face[2], point)
	fmt.Printf("Point inside bounds: %v\n", model.Bounds().ContainsPoint(point))
	fmt.Printf("Distance: %.6f\n", math.Sqrt(sqDist))
	fmt.Printf("Closest point: (%.6f, %.6f, %.6f)\n", closest.X(), closest.Y(), closest.Z())
	fmt.Println("Triangle:")
	for _, v := range face {
		fmt.Printf("  (%.6f, %.6f, %.6f)\n", v.X(), v.Y(), v.Z())
	}
}
