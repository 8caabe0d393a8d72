package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
)

// menuEntry is one line of the interactive menu.
type menuEntry struct {
	key    string
	label  string
	action Action
}

const (
	keyLookup = "6"
	keyExit   = "0"
)

var menuEntries = []menuEntry{
	{key: "1", label: "Display account info", action: ActionBrief},
	{key: "2", label: "Display detailed account info", action: ActionDetailed},
	{key: "3", label: "Display character showcase", action: ActionShowcase},
	{key: "4", label: "Show detailed character builds", action: ActionBuilds},
	{key: "5", label: "Show namecard and profile picture", action: ActionCosmetics},
	{key: keyLookup, label: "Look up another UID"},
	{key: "7", label: "Show recently looked up UIDs", action: ActionHistory},
	{key: keyExit, label: "Exit"},
}

// Runner drives one interactive session over a reader and writer.
type Runner struct {
	Engine  *Engine
	Menu    *MenuExecutor
	Session *Session
	errLog  *log.Logger

	// interrupt scopes Ctrl-C to one fetch. Outside a fetch the default
	// handler stays in place, so an interrupt at a prompt ends the process.
	interrupt func(context.Context) (context.Context, context.CancelFunc)
}

// NewRunner creates a runner with a fresh session. A nil errLog discards
// diagnostics.
func NewRunner(engine *Engine, menu *MenuExecutor, errLog *log.Logger) *Runner {
	if errLog == nil {
		errLog = log.New(io.Discard, "", 0)
	}
	return &Runner{
		Engine:    engine,
		Menu:      menu,
		Session:   NewSession(),
		errLog:    errLog,
		interrupt: interruptOnSignal,
	}
}

func interruptOnSignal(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt)
}

// Run prompts for a UID, loads it, and serves the menu until the user exits
// or input ends. A failed first lookup is printed and ends the run before
// anything is displayed. The returned error is only ever an input error.
func (r *Runner) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)

	fmt.Fprintln(out, "Welcome to HoYo-X!")
	uid, ok := prompt(scanner, out, "Enter Genshin UID: ")
	if !ok {
		return scanner.Err()
	}
	if !r.lookup(ctx, uid, out) {
		return nil
	}

	for {
		printMenu(out)
		choice, ok := prompt(scanner, out, "Choose an option: ")
		if !ok {
			return scanner.Err()
		}

		switch choice {
		case keyExit:
			fmt.Fprintln(out, "Goodbye!")
			return nil
		case keyLookup:
			uid, ok := prompt(scanner, out, "Enter Genshin UID: ")
			if !ok {
				return scanner.Err()
			}
			// A failed lookup keeps the previous profile.
			r.lookup(ctx, uid, out)
			continue
		}

		action, found := actionFor(choice)
		if !found {
			fmt.Fprintf(out, "Invalid choice '%s'.\n", choice)
			continue
		}
		if err := r.Menu.Execute(action, r.Session, out); err != nil {
			r.errLog.Printf("session %s: action %s failed: %v", r.Session.ID, action, err)
			fmt.Fprintln(out, err)
		}
	}
}

// lookup loads uid into the session, printing any error. It reports whether
// the session now holds that profile.
func (r *Runner) lookup(ctx context.Context, uid string, out io.Writer) bool {
	fmt.Fprintln(out, "Fetching data from server...")
	fmt.Fprintln(out, "Please wait...")

	fetchCtx, stop := r.interrupt(ctx)
	profile, err := r.Engine.LoadProfile(fetchCtx, uid)
	stop()
	if err != nil {
		r.errLog.Printf("session %s: lookup of %q failed: %v", r.Session.ID, uid, err)
		fmt.Fprintln(out, err)
		return false
	}
	r.Session.SetProfile(profile)
	return true
}

func prompt(scanner *bufio.Scanner, out io.Writer, label string) (string, bool) {
	fmt.Fprint(out, label)
	if !scanner.Scan() {
		fmt.Fprintln(out)
		return "", false
	}
	return strings.TrimSpace(scanner.Text()), true
}

func printMenu(out io.Writer) {
	fmt.Fprintln(out, "\nMenu:")
	for _, e := range menuEntries {
		fmt.Fprintf(out, "%s. %s\n", e.key, e.label)
	}
}

func actionFor(choice string) (Action, bool) {
	for _, e := range menuEntries {
		if e.key == choice && e.action != "" {
			return e.action, true
		}
	}
	return "", false
}
