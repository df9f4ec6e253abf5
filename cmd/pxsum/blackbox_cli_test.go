package main

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"
)

var (
	buildBlackboxOnce sync.Once
	blackboxBin       string
	errBlackboxBuild  error
)

func repoRoot(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("resolve caller")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "../.."))
}

func blackboxBinary(t *testing.T) string {
	t.Helper()
	root := repoRoot(t)
	buildBlackboxOnce.Do(func() {
		dir, err := os.MkdirTemp("", "pxsum-blackbox-*")
		if err != nil {
			errBlackboxBuild = err
			return
		}
		blackboxBin = filepath.Join(dir, "pxsum")

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		cmd := exec.CommandContext(
			ctx,
			"go", "build", "-trimpath", "-buildvcs=false", "-o", blackboxBin, "./cmd/pxsum",
		)
		cmd.Dir = root
		errBlackboxBuild = cmd.Run()
	})
	if errBlackboxBuild != nil {
		t.Fatalf("build blackbox binary: %v", errBlackboxBuild)
	}
	return blackboxBin
}

func runBlackbox(t *testing.T, args []string, stdin []byte) (int, []byte, []byte) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, blackboxBinary(t), args...)
	cmd.Stdin = bytes.NewReader(stdin)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err == nil {
		return 0, stdout.Bytes(), stderr.Bytes()
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode(), stdout.Bytes(), stderr.Bytes()
	}
	t.Fatalf("run blackbox: %v", err)
	return 0, nil, nil
}

func writeBlackboxPNG(t *testing.T, dir, name string, seed uint8) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 3, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: seed, G: uint8(x), B: uint8(y), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("could not encode fixture png: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("could not write fixture: %v", err)
	}
	return path
}

func TestBlackboxHelpExitZero(t *testing.T) {
	code, stdout, stderr := runBlackbox(t, []string{"--help"}, nil)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d stderr=%q", code, string(stderr))
	}
	if !bytes.Contains(stdout, []byte("USAGE:")) {
		t.Fatalf("unexpected help output: %q", string(stdout))
	}
}

func TestBlackboxVersionExitZero(t *testing.T) {
	code, stdout, _ := runBlackbox(t, []string{"--version"}, nil)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !bytes.HasPrefix(bytes.TrimSpace(stdout), []byte("pxsum v")) {
		t.Fatalf("unexpected version output: %q", string(stdout))
	}
}

func TestBlackboxCrunchSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := writeBlackboxPNG(t, dir, "a.png", 9)

	code, stdout, stderr := runBlackbox(t, []string{path}, nil)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d stderr=%q", code, string(stderr))
	}
	line := strings.TrimSpace(stdout.String())
	if len(line) < 66 || !strings.HasSuffix(line, path) {
		t.Fatalf("unexpected output: %q", line)
	}
}

func TestBlackboxCrunchNoImagesExitTwo(t *testing.T) {
	dir := t.TempDir()
	textFile := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(textFile, []byte("hello"), 0o644); err != nil {
		t.Fatalf("could not write fixture: %v", err)
	}

	code, stdout, _ := runBlackbox(t, []string{textFile}, nil)
	if code != 2 {
		t.Fatalf("expected exit 2, got %d", code)
	}
	if stdout.Len() != 0 {
		t.Fatalf("expected no output, got %q", stdout.String())
	}
}

func TestBlackboxCrunchThenVerify(t *testing.T) {
	dir := t.TempDir()
	path := writeBlackboxPNG(t, dir, "b.png", 42)

	code, stdout, stderr := runBlackbox(t, []string{path}, nil)
	if code != 0 {
		t.Fatalf("crunch: expected exit 0, got %d stderr=%q", code, string(stderr))
	}

	manifest := filepath.Join(dir, "manifest.chk")
	if err := os.WriteFile(manifest, stdout, 0o644); err != nil {
		t.Fatalf("could not write manifest: %v", err)
	}

	code, stdout, stderr = runBlackbox(t, []string{"--check", manifest}, nil)
	if code != 0 {
		t.Fatalf("verify: expected exit 0, got %d stderr=%q", code, string(stderr))
	}
	if !bytes.Contains(stdout, []byte(": OK")) {
		t.Fatalf("expected an OK line, got %q", string(stdout))
	}
}

func TestBlackboxVerifyReadsManifestFromStdin(t *testing.T) {
	dir := t.TempDir()
	path := writeBlackboxPNG(t, dir, "c.png", 13)

	code, stdout, stderr := runBlackbox(t, []string{path}, nil)
	if code != 0 {
		t.Fatalf("crunch: expected exit 0, got %d stderr=%q", code, string(stderr))
	}

	code, stdout, stderr = runBlackbox(t, []string{"--check", "-"}, stdout)
	if code != 0 {
		t.Fatalf("verify: expected exit 0, got %d stderr=%q", code, string(stderr))
	}
	if !bytes.Contains(stdout, []byte(": OK")) {
		t.Fatalf("expected an OK line, got %q", string(stdout))
	}
}
