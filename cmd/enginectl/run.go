package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/kestrelgame/enginecore/engconfig"
	"github.com/kestrelgame/enginecore/profiler"
	"github.com/kestrelgame/enginecore/scheduler"
)

// Run is enginectl's entry point. Returns the process exit code.
func Run(_ io.Reader, out, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	flags := flag.NewFlagSet("enginectl", flag.ContinueOnError)
	flags.SetOutput(errOut)

	flagGameRoot := flags.String("game-root", "", "Override the asset root `dir`")
	flagConfig := flags.StringP("config", "c", "", "Use specified config `file`")
	flagProfileHistory := flags.Int("profile-history", 0, "Override the profiler's retained frame history")
	// --singlethreaded is accepted for compatibility with the original
	// engine's launch flags; this scheduler always runs one goroutine
	// per system, so the flag is parsed and otherwise ignored.
	flags.Bool("singlethreaded", false, "Accepted for compatibility; has no effect")
	flagNoConsole := flags.Bool("no-console", false, "Disable the interactive debug console")

	if err := flags.Parse(args[1:]); err != nil {
		if err == flag.ErrHelp {
			return 0
		}

		fmt.Fprintln(errOut, "error:", err)

		return 1
	}

	cfg, err := engconfig.Load(engconfig.LoadInput{
		ConfigPath:        *flagConfig,
		AssetRootOverride: *flagGameRoot,
		Env:               env,
	})
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)

		return 1
	}

	if *flagProfileHistory > 0 {
		cfg.ProfileHistoryLimit = *flagProfileHistory
	}

	fmt.Fprintf(out, "enginectl: asset_root=%s profile_history=%d\n", cfg.AssetRoot, cfg.ProfileHistoryLimit)

	builder := scheduler.NewBuilderWithProfiler(profiler.NewWithHistoryLimit(cfg.ProfileHistoryLimit))
	builder.WithSystem(&heartbeatSystem{})

	runner := builder.Start()

	consoleDone := make(chan struct{})

	if *flagNoConsole {
		close(consoleDone)
	} else {
		go func() {
			defer close(consoleDone)
			runConsole(out, errOut, builder.Context(), builder.Profiler())
		}()
	}

	select {
	case <-sigCh:
		fmt.Fprintln(out, "\nenginectl: shutting down")
	case <-consoleDone:
	}

	builder.Context().RequestShutdown()
	runner.Wait()

	return 0
}

// heartbeatSystem keeps the scheduler's frame clock advancing so the
// profiler and bus have something to report even when no game systems
// are registered. It carries no other state.
type heartbeatSystem struct {
	scheduler.NoopSystem
}

func (s *heartbeatSystem) Label() string { return "heartbeat" }

func printHelp(out io.Writer) {
	fmt.Fprintln(out, "commands: history [n], entities, frames, help, quit")
}

func splitCommand(line string) (string, []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}

	return fields[0], fields[1:]
}
