package main

import (
	"runtime"
	"strconv"
	"strings"

	"github.com/blobfolio/pxsum/internal/engine"
	"github.com/blobfolio/pxsum/internal/pxerr"
)

// settings is the fully parsed command line: engine.Settings plus the
// flags that only the CLI layer needs to act on.
type settings struct {
	engine  engine.Settings
	check   bool
	dirs    []string
	paths   []string
}

// currentKey tracks which flag, if any, the previous argument was a
// bare key for — so its value can be taken from the *next* argument
// when it wasn't given as "--dir=value" or "-jvalue".
type currentKey int

const (
	keyNone currentKey = iota
	keyDir
	keyThreads
)

// parseArgs parses args (os.Args[1:]) into settings and the list of
// image paths or manifest files to act on, following spec.md §6.
func parseArgs(args []string) (settings, error) {
	s := settings{
		engine: engine.Settings{
			PrintValid:    true,
			PrintWarnings: true,
			Threads:       defaultThreads(),
		},
	}

	last := keyNone
	for _, raw := range args {
		arg := strings.TrimSpace(raw)
		if arg == "" {
			last = keyNone
			continue
		}

		switch {
		case arg == "--bench":
			s.engine.PrintTime = true
		case arg == "-c" || arg == "--check":
			s.check = true
		case arg == "-g" || arg == "--group-by-checksum":
			s.engine.GroupByChecksum = true
		case arg == "--no-warnings":
			s.engine.PrintWarnings = false
		case arg == "--only-dupes":
			s.engine.OnlyDupes = true
			s.engine.GroupByChecksum = true
		case arg == "-q" || arg == "--quiet":
			s.engine.PrintValid = false
		case arg == "--strict":
			s.engine.Strict = true
		case arg == "-h" || arg == "--help":
			return settings{}, pxerr.New(pxerr.PrintHelp, helpText)
		case arg == "-V" || arg == "--version":
			return settings{}, pxerr.New(pxerr.PrintVersion, versionText)

		case arg == "-d" || arg == "--dir":
			last = keyDir
			continue
		case strings.HasPrefix(arg, "--dir="):
			val := strings.TrimSpace(strings.TrimPrefix(arg, "--dir="))
			if val == "" {
				last = keyDir
				continue
			}
			s.dirs = append(s.dirs, val)
		case strings.HasPrefix(arg, "-d") && arg != "-d":
			val := strings.TrimSpace(strings.TrimPrefix(arg, "-d"))
			if val == "" {
				last = keyDir
				continue
			}
			s.dirs = append(s.dirs, val)

		case strings.HasPrefix(arg, "-j"):
			val := strings.TrimSpace(strings.TrimPrefix(arg, "-j"))
			if val == "" {
				last = keyThreads
				continue
			}
			setThreads(&s.engine.Threads, val)

		default:
			switch last {
			case keyDir:
				s.dirs = append(s.dirs, arg)
			case keyThreads:
				setThreads(&s.engine.Threads, arg)
			default:
				s.paths = append(s.paths, arg)
			}
		}

		last = keyNone
	}

	return s, nil
}

// defaultThreads mirrors Rust's std::thread::available_parallelism,
// falling back to 1 if the runtime can't report a useful value.
func defaultThreads() int {
	n := runtime.NumCPU()
	if n < 1 {
		return 1
	}
	return n
}

// setThreads applies a user-supplied -j value. A leading "-" subtracts
// from the current value, clamped to 1; otherwise the value caps
// (but never raises) the current thread count.
func setThreads(threads *int, wanted string) {
	wanted = strings.TrimSpace(wanted)
	if neg, ok := strings.CutPrefix(wanted, "-"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(neg))
		if err != nil || n < 0 {
			return
		}
		*threads -= n
		if *threads < 1 {
			*threads = 1
		}
		return
	}

	n, err := strconv.Atoi(wanted)
	if err != nil || n < 1 {
		return
	}
	if n < *threads {
		*threads = n
	}
}
