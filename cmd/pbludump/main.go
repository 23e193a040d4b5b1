// Command pbludump prints the directory tree of a PBLU archive.
//
// It is a thin, read-only inspection tool: it never extracts files to
// disk. That remains the job of whatever driver actually needs the
// bytes, per the library's own scope.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/tropico5/pblu"
)

func main() {
	filter := flag.String("filter", "", "only print paths matching this doublestar glob")
	verbose := flag.Bool("v", false, "enable debug logging from the archive library")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: pbludump [-filter pattern] [-v] archive.pblu")
		os.Exit(2)
	}
	path := flag.Arg(0)

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	archive, err := pblu.OpenOptions(path, pblu.WithLogger(log))
	if err != nil {
		fmt.Fprintf(os.Stderr, "pbludump: %v\n", err)
		os.Exit(1)
	}

	err = archive.Root().WalkFiles(func(p string, f *pblu.File) error {
		if *filter != "" {
			match, err := doublestar.Match(*filter, p)
			if err != nil {
				return fmt.Errorf("bad -filter pattern: %w", err)
			}
			if !match {
				return nil
			}
		}
		fmt.Printf("%10d  %s\n", f.Size(), p)
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "pbludump: %v\n", err)
		os.Exit(1)
	}
}
