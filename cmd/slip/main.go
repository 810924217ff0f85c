package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/peterh/liner"
	"github.com/xyproto/env/v2"

	slip "github.com/daios-ai/slip"
)

const (
	appName     = "slip"
	historyEnv  = "SLIP_HISTORY"
	historyFile = "~/.slip_history"
	promptMain  = "==> "
	promptCont  = "... "
	farewell    = "So long!"
)

var banner = fmt.Sprintf("slip %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.", slip.Version)

func red(s string) string  { return "\x1b[31m" + s + "\x1b[0m" }
func blue(s string) string { return "\x1b[94m" + s + "\x1b[0m" }

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	switch cmd {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "version":
		fmt.Println(slip.Version)
		return
	case "-h", "--help", "help":
		usage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`slip %s (built %s)

Usage:
  %s run <file.slip>    Run a script.
  %s repl               Start the REPL.
  %s version            Print the compiled version

`, slip.Version, slip.BuildDate, appName, appName, appName)
}

// -----------------------------------------------------------------------------
// run
// -----------------------------------------------------------------------------

func cmdRun(args []string) int {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "usage: %s run <file.slip>\n", appName)
		return 2
	}

	rt, rtErr := slip.NewRuntime()
	if rtErr != nil {
		fmt.Fprintln(os.Stderr, red(rtErr.Error()))
		return 1
	}
	rt.In = slip.NewReader(os.Stdin, "stdin")

	if _, err := rt.LoadFile(args[0]); err != nil {
		fmt.Fprintln(os.Stderr, slip.FormatTraceback(err))
		return 1
	}
	return 0
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func cmdRepl(_ []string) int {
	fmt.Println(banner)

	histPath := env.ExpandUser(env.Str(historyEnv, historyFile))

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	rt, rtErr := slip.NewRuntime()
	if rtErr != nil {
		fmt.Fprintln(os.Stderr, red(rtErr.Error()))
		return 1
	}

	for {
		code, ok := readByParseProbe(ln, promptMain, promptCont)
		if !ok {
			fmt.Println()
			fmt.Println(farewell)
			break
		}

		if strings.HasPrefix(strings.TrimSpace(code), ":") {
			switch strings.TrimSpace(strings.ToLower(code)) {
			case ":quit":
				fmt.Println(farewell)
				return 0
			default:
				fmt.Printf("unknown command. Type :quit to exit.\n")
			}
			continue
		}

		if strings.TrimSpace(code) == "" {
			continue
		}

		forms, perr := slip.NewStringReader(code, "repl").ReadAll()
		if perr != nil {
			fmt.Fprintln(os.Stderr, red(slip.FormatReadError(perr, "repl", code)))
			continue
		}
		for _, form := range forms {
			v, err := rt.EvalTerm(form)
			if err != nil {
				fmt.Fprintln(os.Stderr, red(slip.FormatTraceback(err)))
				break
			}
			fmt.Println(blue(slip.FormatTerm(v)))
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}

	return 0
}

// readByParseProbe accumulates lines until the buffer parses as one or more
// complete forms. Only an incomplete parse keeps the continuation prompt
// going; a hard syntax error returns the buffer so the caller can report it.
func readByParseProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		_, perr := slip.NewStringReader(src, "repl").ReadAll()
		if perr == nil {
			return src, true
		}
		if slip.IsIncomplete(perr) {
			continue
		}
		return src, true
	}
}
