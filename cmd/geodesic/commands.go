package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags.
var version = "dev"

var (
	rootCmd = &cobra.Command{
		Use:   "geodesic",
		Short: "A cli for building and interrogating surface geometry",
		Long: `Geodesic evaluates Lisp scripts that build triangle meshes from
signed distance fields or OBJ files and query geometric quantities
such as curvature, areas and cotan weights.`,
	}

	evalCmd = &cobra.Command{
		Use:   "eval [script]",
		Short: "Evaluate a geometry script and print its output",
		Args:  cobra.ExactArgs(1),
		RunE:  runEval,
	}

	watchCmd = &cobra.Command{
		Use:   "watch [script]",
		Short: "Re-evaluate a geometry script whenever it changes",
		Args:  cobra.ExactArgs(1),
		RunE:  runWatch,
	}

	infoCmd = &cobra.Command{
		Use:   "info [mesh.obj]",
		Short: "Print element counts and statistics for an OBJ mesh",
		Args:  cobra.ExactArgs(1),
		RunE:  runInfo,
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the geodesic version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("geodesic " + version)
		},
	}
)

func init() {
	rootCmd.AddCommand(evalCmd, watchCmd, infoCmd, versionCmd)
}
