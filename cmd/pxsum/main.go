// Command pxsum computes and verifies checksums of decoded image
// pixel data, rather than encoded file bytes.
//
// Usage:
//
//	pxsum [FLAGS] [OPTIONS] [FILE(S)]...
//	pxsum --help
//	pxsum --version
//
// Exit codes: 0 (success), 1 (fatal error), 2 (no results / no dupes),
// 3 (one or more verifications failed).
package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/karrick/godirwalk"

	"github.com/blobfolio/pxsum/internal/engine"
	"github.com/blobfolio/pxsum/internal/pxerr"
	"github.com/blobfolio/pxsum/internal/pxext"
)

var version = "v0.0.0-dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, _ io.Reader, stdout, stderr io.Writer) int {
	start := time.Now()

	s, err := parseArgs(args)
	if err != nil {
		return handleParseError(err, stdout, stderr)
	}

	paths, err := resolvePaths(s)
	if err != nil {
		return finish(err, s.engine.PrintTime, start, stdout, stderr)
	}

	if s.check {
		err = engine.Verify(paths, s.engine, stdout, stderr)
	} else {
		err = engine.Crunch(paths, s.engine, stdout, stderr)
	}
	return finish(err, s.engine.PrintTime, start, stdout, stderr)
}

func handleParseError(err error, stdout, stderr io.Writer) int {
	pe, ok := err.(*pxerr.Error)
	if !ok {
		fmt.Fprintln(stderr, err)
		return 1
	}
	switch pe.Kind {
	case pxerr.PrintHelp:
		fmt.Fprintln(stdout, pe.Message)
		return 0
	case pxerr.PrintVersion:
		fmt.Fprintln(stdout, pe.Message)
		return 0
	default:
		fmt.Fprintln(stderr, err)
		return pe.ExitCode()
	}
}

// resolvePaths assembles the final, deduplicated, sorted worklist from
// positional arguments and any -d/--dir crawls, per spec.md §6. In
// check mode, directories are ignored and positional arguments are
// used as-is (they name manifest files, not images).
func resolvePaths(s settings) ([]string, error) {
	if s.check {
		if len(s.paths) == 0 {
			return []string{"-"}, nil
		}
		return s.paths, nil
	}

	paths := make([]string, 0, len(s.paths))
	for _, p := range s.paths {
		if pxext.Match(p) {
			paths = append(paths, p)
		}
	}

	for _, dir := range s.dirs {
		if err := godirwalk.Walk(dir, &godirwalk.Options{
			FollowSymbolicLinks: true,
			Unsorted:            true,
			Callback: func(path string, de *godirwalk.Dirent) error {
				if de.IsDir() {
					return nil
				}
				if pxext.Match(path) {
					paths = append(paths, path)
				}
				return nil
			},
			ErrorCallback: func(string, error) godirwalk.ErrorAction {
				return godirwalk.SkipNode
			},
		}); err != nil {
			return nil, pxerr.Wrap(pxerr.Path, "could not crawl directory "+dir, err)
		}
	}

	if len(paths) == 0 {
		return []string{"-"}, nil
	}

	sort.Strings(paths)
	paths = dedupSorted(paths)
	return paths, nil
}

func dedupSorted(paths []string) []string {
	out := paths[:0]
	var last string
	first := true
	for _, p := range paths {
		if first || p != last {
			out = append(out, p)
			last = p
			first = false
		}
	}
	return out
}

func finish(err error, printTime bool, start time.Time, stdout, stderr io.Writer) int {
	if printTime {
		fmt.Fprintf(stderr, "Finished in %s.\n", time.Since(start).Round(time.Millisecond))
	}
	if err == nil {
		return 0
	}
	fmt.Fprintln(stderr, err)
	if pe, ok := err.(*pxerr.Error); ok {
		return pe.ExitCode()
	}
	return 1
}
