package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/chazu/geodesic/pkg/script"
)

func runEval(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	return evalFile(args[0], os.Stdout)
}

// evalFile runs the script at path and writes its output lines to w.
// Script errors are written to w with the path prefixed; a non-nil
// error is returned so the command exits nonzero.
func evalFile(path string, w io.Writer) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	eng := script.NewEngine()
	res, evalErrs, err := eng.Evaluate(string(src))
	if err != nil {
		return err
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			fmt.Fprintf(w, "%s: %s\n", path, e.Error())
		}
		return fmt.Errorf("%d error(s) in %s", len(evalErrs), path)
	}
	for _, line := range res.Output {
		fmt.Fprintln(w, line)
	}
	return nil
}
