package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/chazu/geodesic/pkg/geometry"
	"github.com/chazu/geodesic/pkg/meshio"
)

func runInfo(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	return meshInfo(args[0], os.Stdout)
}

// meshInfo loads an OBJ file and prints element counts and basic
// geometric statistics.
func meshInfo(path string, w io.Writer) error {
	m, positions, err := meshio.ReadOBJFile(path)
	if err != nil {
		return err
	}
	geo, err := geometry.NewEmbedded(m, positions)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "vertices        %d\n", m.NVertices())
	fmt.Fprintf(w, "edges           %d\n", m.NEdges())
	fmt.Fprintf(w, "faces           %d\n", m.NFaces())
	fmt.Fprintf(w, "boundary edges  %d\n", m.NBoundaryEdges())
	fmt.Fprintf(w, "euler           %d\n", m.EulerCharacteristic())

	// Areas only exist for triangulated meshes; report when available.
	if err := geo.RequireTotalArea(); err == nil {
		defer geo.UnrequireTotalArea()
		area, err := geo.TotalArea()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "total area      %g\n", area)
	}
	if err := geo.RequireMeanEdgeLength(); err == nil {
		defer geo.UnrequireMeanEdgeLength()
		mean, err := geo.MeanEdgeLength()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "mean edge       %g\n", mean)
	}
	return nil
}
