package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// debounceWindow batches rapid editor saves into one re-evaluation.
const debounceWindow = 200 * time.Millisecond

func runWatch(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	path, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}

	// Evaluate once up front so the first result does not wait for a
	// save.
	if err := evalFile(path, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory rather than the file: many editors save by
	// writing a temp file and renaming it over the original, which
	// drops a watch on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "watching %s\n", path)

	timer := time.NewTimer(debounceWindow)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(debounceWindow)

		case <-timer.C:
			fmt.Fprintf(os.Stderr, "-- %s\n", time.Now().Format("15:04:05"))
			if err := evalFile(path, os.Stdout); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}

		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch: %v\n", werr)
		}
	}
}
