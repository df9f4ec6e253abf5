package pxerr_test

import (
	"errors"
	"testing"

	"github.com/blobfolio/pxsum/internal/pxerr"
)

func TestExitCodes(t *testing.T) {
	cases := []struct {
		kind pxerr.Kind
		want int
	}{
		{pxerr.PrintHelp, 0},
		{pxerr.PrintVersion, 0},
		{pxerr.Noop, 2},
		{pxerr.NoDupes, 2},
		{pxerr.Failed, 3},
		{pxerr.Decode, 1},
		{pxerr.JobServer, 1},
		{pxerr.LineDecode, 1},
		{pxerr.NoData, 1},
		{pxerr.Path, 1},
		{pxerr.Read, 1},
		{pxerr.Stdin, 1},
	}
	for _, tc := range cases {
		if got := tc.kind.ExitCode(); got != tc.want {
			t.Errorf("%s.ExitCode() = %d, want %d", tc.kind, got, tc.want)
		}
	}
}

func TestFailedPluralization(t *testing.T) {
	if got := pxerr.NewFailed(1).Error(); got != "1 file failed verification." {
		t.Errorf("singular message = %q", got)
	}
	if got := pxerr.NewFailed(2).Error(); got != "2 files failed verification." {
		t.Errorf("plural message = %q", got)
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	e := pxerr.Wrap(pxerr.Read, "opening foo.png", cause)
	if !errors.Is(e, cause) {
		t.Fatal("Unwrap did not return cause")
	}
}

func TestErrorAs(t *testing.T) {
	e := pxerr.New(pxerr.Path, "control character in path")
	var target *pxerr.Error
	if !errors.As(e, &target) {
		t.Fatal("errors.As failed")
	}
	if target.Kind != pxerr.Path {
		t.Fatalf("kind = %s, want PATH", target.Kind)
	}
}
