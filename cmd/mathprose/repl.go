package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mathprose/mathprose/core/agent"
	"github.com/mathprose/mathprose/core/extract"
	"github.com/mathprose/mathprose/core/store"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
)

// errExit signals a clean shutdown requested from the prompt.
var errExit = errors.New("exit")

// repl drives the interactive loop. All output goes through out so the loop
// is testable with a buffer.
type repl struct {
	agent   *agent.Agent
	store   *store.Store
	session *agent.Session
	out     io.Writer
}

func (r *repl) run(ctx context.Context, in io.Reader) error {
	fmt.Fprintln(r.out, headerStyle.Render("Math Expression Parser")+faintStyle.Render(" (type 'help' for commands, 'exit' to quit)"))

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(r.out, promptStyle.Render("\n> "))
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		handled, err := r.dispatch(line)
		if errors.Is(err, errExit) {
			fmt.Fprintln(r.out, "Goodbye!")
			return nil
		}
		if err != nil {
			fmt.Fprintln(r.out, errorStyle.Render("Error: "+err.Error()))
			continue
		}
		if handled {
			continue
		}

		r.process(ctx, line)
	}
}

// dispatch runs line as a command when it is one. The returned bool reports
// whether the line was consumed; anything unconsumed is a math query.
func (r *repl) dispatch(line string) (bool, error) {
	fields := strings.Fields(line)
	arg := strings.TrimSpace(strings.TrimPrefix(line, fields[0]))

	switch strings.ToLower(fields[0]) {
	case "exit", "quit":
		return true, errExit

	case "save":
		if r.session.Last == nil {
			fmt.Fprintln(r.out, "No expression to save. Process an expression first.")
			return true, nil
		}
		path, err := r.store.Save(r.session.Last, arg)
		if err != nil {
			return true, err
		}
		fmt.Fprintln(r.out, "Expression saved to: "+path)
		return true, nil

	case "load":
		if arg == "" {
			fmt.Fprintln(r.out, "Please specify a filename to load.")
			return true, nil
		}
		rec, err := r.store.Load(arg)
		if err != nil {
			return true, err
		}
		r.session.Remember(rec)
		fmt.Fprintln(r.out, headerStyle.Render("\nLoaded expression:"))
		fmt.Fprintln(r.out, rec.Display())
		return true, nil

	case "list":
		names, err := r.store.List()
		if err != nil {
			return true, err
		}
		if len(names) == 0 {
			fmt.Fprintln(r.out, "No saved expressions found.")
			return true, nil
		}
		fmt.Fprintln(r.out, headerStyle.Render("Saved expressions:"))
		for i, name := range names {
			fmt.Fprintf(r.out, "%d. %s\n", i+1, name)
		}
		return true, nil

	case "debug":
		if r.session.ToggleDebug() {
			fmt.Fprintln(r.out, "Debug mode enabled")
		} else {
			fmt.Fprintln(r.out, "Debug mode disabled")
		}
		return true, nil

	case "raw":
		raw := r.agent.LastRawReply()
		if raw == "" {
			fmt.Fprintln(r.out, "No previous response to show")
			return true, nil
		}
		fmt.Fprintln(r.out, faintStyle.Render("--- Raw Response ---"))
		fmt.Fprintln(r.out, raw)
		fmt.Fprintln(r.out, faintStyle.Render("--------------------"))
		return true, nil

	case "help", "?":
		r.printHelp()
		return true, nil
	}

	return false, nil
}

func (r *repl) process(ctx context.Context, query string) {
	rec, err := r.agent.Process(ctx, query)
	if err != nil {
		var noPayload *extract.NoPayloadError
		if errors.As(err, &noPayload) {
			fmt.Fprintln(r.out, errorStyle.Render("Could not extract an expression from the reply. Raw response:"))
			fmt.Fprintln(r.out, noPayload.Raw)
			return
		}
		fmt.Fprintln(r.out, errorStyle.Render("Error: "+err.Error()))
		return
	}

	r.session.Remember(rec)
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, rec.Display())

	if r.session.Debug {
		fmt.Fprintln(r.out, faintStyle.Render("\nDEBUG - Raw response:"))
		fmt.Fprintln(r.out, r.agent.LastRawReply())
	}
}

func (r *repl) printHelp() {
	fmt.Fprintln(r.out, headerStyle.Render("Available commands:"))
	fmt.Fprintln(r.out, "  save [filename] - Save the last expression to a file")
	fmt.Fprintln(r.out, "  load <filename> - Load an expression from a file")
	fmt.Fprintln(r.out, "  list            - List all saved expressions")
	fmt.Fprintln(r.out, "  debug           - Toggle debug mode")
	fmt.Fprintln(r.out, "  raw             - Show the raw reply from the last query")
	fmt.Fprintln(r.out, "  help, ?         - Show this help message")
	fmt.Fprintln(r.out, "  exit, quit      - Exit the program")
	fmt.Fprintln(r.out, "\nAny other input is treated as a math expression to process.")
}
