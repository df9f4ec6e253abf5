// Package engine runs the bounded worker pools that drive crunch and
// verify mode: one producer feeding a channel, T workers draining it,
// a scoped join before any result is finalized.
package engine

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/blobfolio/pxsum/internal/pxchk"
	"github.com/blobfolio/pxsum/internal/pxerr"
	"github.com/blobfolio/pxsum/internal/pxio"
)

// Settings carries the run-time flags the engine needs. It mirrors
// the CLI's parsed flags but owns none of the argument-parsing logic.
type Settings struct {
	Strict          bool
	GroupByChecksum bool
	OnlyDupes       bool
	PrintValid      bool
	PrintWarnings   bool
	PrintTime       bool
	Threads         int
}

// Crunch computes and reports checksums for paths, writing canonical
// "hash  path" lines (or, in group mode, grouped blocks) to stdout.
func Crunch(paths []string, settings Settings, stdout, stderr io.Writer) error {
	threads := workerCount(settings.Threads, len(paths))

	jobs := make(chan string, threads)
	var any atomic.Bool
	var mu sync.Mutex
	grouped := make(map[[32]byte][]string)

	var out sync.Mutex // serializes direct writes to stdout

	g := new(errgroup.Group)
	for i := 0; i < threads; i++ {
		g.Go(func() error {
			var chk pxchk.Checksum
			for p := range jobs {
				err := chk.Crunch(p, settings.Strict)
				if err == nil {
					if settings.GroupByChecksum {
						mu.Lock()
						grouped[chk.Hash] = append(grouped[chk.Hash], chk.Path)
						mu.Unlock()
					} else {
						any.Store(true)
						out.Lock()
						fmt.Fprintln(stdout, chk.String())
						out.Unlock()
					}
					continue
				}

				if isSilentCrunchError(err) {
					continue
				}
				if settings.PrintWarnings {
					warn(stderr, "Image could not be decoded.", srcOrPath(chk.Path, p))
				}
			}
			return nil
		})
	}

	for _, p := range paths {
		jobs <- p
	}
	close(jobs)
	_ = g.Wait()

	if settings.GroupByChecksum {
		return printGrouped(stdout, grouped, settings.OnlyDupes)
	}
	if any.Load() {
		return nil
	}
	return pxerr.New(pxerr.Noop, "no images were processed")
}

// isSilentCrunchError reports whether err should be swallowed without
// a warning in crunch mode: path-canonicalization failures and empty
// sources are expected background noise, not actionable problems.
func isSilentCrunchError(err error) bool {
	pe, ok := err.(*pxerr.Error)
	return ok && (pe.Kind == pxerr.Path || pe.Kind == pxerr.NoData)
}

func srcOrPath(normalized, fallback string) string {
	if normalized != "" {
		return normalized
	}
	return fallback
}

func warn(w io.Writer, headline, detail string) {
	fmt.Fprintf(w, "warning: %s\n         %s\n", headline, detail)
}

// printGrouped renders the grouped-result map: one hash per line,
// sorted ascending, each followed by its member paths (also sorted)
// indented two spaces. With onlyDupes, singleton groups are skipped.
func printGrouped(w io.Writer, grouped map[[32]byte][]string, onlyDupes bool) error {
	keys := make([][32]byte, 0, len(grouped))
	for k := range grouped {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return string(keys[i][:]) < string(keys[j][:])
	})

	bw := bufio.NewWriter(w)
	any := false
	for _, k := range keys {
		members := grouped[k]
		if onlyDupes && len(members) < 2 {
			continue
		}
		sort.Strings(members)
		any = true
		fmt.Fprintf(bw, "%x\n", k[:])
		for _, p := range members {
			fmt.Fprintf(bw, "  %s\n", p)
		}
	}
	if err := bw.Flush(); err != nil {
		return pxerr.Wrap(pxerr.Read, "could not write grouped output", err)
	}

	switch {
	case any:
		return nil
	case onlyDupes:
		return pxerr.New(pxerr.NoDupes, "no duplicate checksums were found")
	default:
		return pxerr.New(pxerr.Noop, "no images were processed")
	}
}

// Verify reads paths as manifests (or, for "-", standard input as a
// manifest) and checks each referenced image against its stored
// checksum, printing one OK/FAILED line per entry.
func Verify(paths []string, settings Settings, stdout, stderr io.Writer) error {
	threads := workerCount(settings.Threads, len(paths))

	jobs := make(chan string, threads)
	var failed atomic.Uint64
	var out sync.Mutex

	g := new(errgroup.Group)
	for i := 0; i < threads; i++ {
		g.Go(func() error {
			var chk pxchk.Checksum
			for line := range jobs {
				ok, err := chk.Verify(line)
				switch {
				case err == nil && ok:
					if settings.PrintValid {
						out.Lock()
						fmt.Fprintf(stdout, "%s: OK\n", chk.Path)
						out.Unlock()
					}
				case err == nil:
					failed.Add(1)
					out.Lock()
					fmt.Fprintf(stdout, "%s: FAILED\n", chk.Path)
					out.Unlock()
				case isWarnOnlyVerifyError(err):
					if settings.PrintWarnings {
						warn(stderr, "Malformed checksum/path line.", line)
					}
				default:
					failed.Add(1)
					out.Lock()
					fmt.Fprintf(stdout, "%s: FAILED (%s)\n", chk.Path, verifyFailureReason(err, chk.Path))
					out.Unlock()
				}
			}
			return nil
		})
	}

	producerErr := produceManifestLines(paths, jobs)
	close(jobs)
	_ = g.Wait()
	if producerErr != nil {
		return producerErr
	}

	if n := failed.Load(); n > 0 {
		return pxerr.NewFailed(n)
	}
	return nil
}

func isWarnOnlyVerifyError(err error) bool {
	pe, ok := err.(*pxerr.Error)
	return ok && (pe.Kind == pxerr.LineDecode || pe.Kind == pxerr.Path)
}

// verifyFailureReason disambiguates a FAILED line per spec.md §4.10:
// "empty" for a zero-byte source, "missing" if the path no longer
// exists, "read/decode" otherwise.
func verifyFailureReason(err error, path string) string {
	if pe, ok := err.(*pxerr.Error); ok && pe.Kind == pxerr.NoData {
		return "empty"
	}
	if path != "-" {
		if _, statErr := os.Stat(path); statErr != nil {
			return "missing"
		}
	}
	return "read/decode"
}

// produceManifestLines reads each path as a manifest file (or
// standard input for "-"), normalizing its lines and pushing them
// onto jobs.
func produceManifestLines(paths []string, jobs chan<- string) error {
	for _, p := range paths {
		if p == "-" {
			r, err := pxio.Stdin()
			if err != nil {
				return err
			}
			ml := pxchk.NewManifestLines(r)
			for ml.Scan() {
				jobs <- ml.Text()
			}
			continue
		}

		f, err := os.Open(p)
		if err != nil {
			continue
		}
		ml := pxchk.NewManifestLines(f)
		for ml.Scan() {
			jobs <- ml.Text()
		}
		f.Close()
	}
	return nil
}

// workerCount applies the desired/available clamp from spec.md §4.10:
// never more workers than inputs, and at least 1.
func workerCount(desired, inputs int) int {
	if inputs <= 0 {
		return 1
	}
	if desired > inputs {
		return inputs
	}
	if desired < 1 {
		return 1
	}
	return desired
}
