package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/peterh/liner"

	"github.com/kestrelgame/enginecore/profiler"
	"github.com/kestrelgame/enginecore/scheduler"
)

// runConsole drives an interactive liner-based REPL for inspecting the
// running engine's profiler and universe state. Returns once the user
// quits; does not itself shut the engine down.
func runConsole(out, errOut io.Writer, ec *scheduler.Context, fp *profiler.FrameProfiler) {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(prefix string) []string {
		candidates := []string{"history", "entities", "frames", "help", "quit", "exit"}

		var matches []string

		for _, c := range candidates {
			if len(prefix) <= len(c) && c[:len(prefix)] == prefix {
				matches = append(matches, c)
			}
		}

		return matches
	})

	printHelp(out)

	for {
		input, err := line.Prompt("enginectl> ")
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				return
			}

			fmt.Fprintln(errOut, "error:", err)

			return
		}

		line.AppendHistory(input)

		cmd, rest := splitCommand(input)

		switch cmd {
		case "":
			continue
		case "help":
			printHelp(out)
		case "quit", "exit", "q":
			return
		case "entities":
			fmt.Fprintf(out, "live entities: %d\n", len(ec.Universe.IterEntities()))
		case "frames":
			fmt.Fprintf(out, "frames recorded: %d\n", fp.Len())
		case "history":
			printHistory(out, fp, rest)
		default:
			fmt.Fprintf(out, "unknown command: %s (try \"help\")\n", cmd)
		}
	}
}

func printHistory(out io.Writer, fp *profiler.FrameProfiler, args []string) {
	n := 5

	if len(args) > 0 {
		parsed, err := strconv.Atoi(args[0])
		if err == nil && parsed > 0 {
			n = parsed
		}
	}

	history := fp.History()
	if len(history) == 0 {
		fmt.Fprintln(out, "(no frames recorded yet)")

		return
	}

	start := 0
	if len(history) > n {
		start = len(history) - n
	}

	for _, frame := range history[start:] {
		fmt.Fprintf(out, "frame: controller=%s systems=%d\n", frame.ControllerTime(), len(frame.SystemTimings))
	}
}
