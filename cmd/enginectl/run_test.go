package main

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_Run_NoConsole_ExitsCleanlyOnceStarted(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer

	sigCh := make(chan os.Signal)

	done := make(chan int, 1)

	go func() {
		done <- Run(strings.NewReader(""), &stdout, &stderr, []string{"enginectl", "--no-console"}, nil, sigCh)
	}()

	select {
	case code := <-done:
		require.Equal(t, 0, code)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not exit without a console and no signal")
	}

	require.Contains(t, stdout.String(), "asset_root=")
}

func Test_Run_RejectsUnknownFlag(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer

	code := Run(strings.NewReader(""), &stdout, &stderr, []string{"enginectl", "--bogus-flag"}, nil, make(chan os.Signal))

	require.Equal(t, 1, code)
	require.Contains(t, stderr.String(), "error:")
}

func Test_Run_ExplicitMissingConfigFileErrors(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer

	code := Run(strings.NewReader(""), &stdout, &stderr,
		[]string{"enginectl", "--config", "/nonexistent/path.jsonc", "--no-console"}, nil, make(chan os.Signal))

	require.Equal(t, 1, code)
}
