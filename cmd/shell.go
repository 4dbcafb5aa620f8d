package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pable/injury-metrics/internal/pipeline"
	"github.com/pable/injury-metrics/internal/storage"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cHeader   = color.New(color.FgCyan, color.Bold)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive REPL session",
	Long:  "Open a persistent session against the database. Type 'help' for available commands.",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

func runShell(_ *cobra.Command, _ []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	cGreeting.Println("injurymetrics shell")
	cMuted.Println("type 'help' or 'exit'")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		cPrompt.Print("injurymetrics")
		cMuted.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tokens := strings.Fields(line)
		cmd, args := tokens[0], tokens[1:]

		switch cmd {
		case "exit", "quit":
			return nil
		case "help":
			shellHelp()
		case "list":
			shellList(db)
		case "show":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: show <hash-prefix> [--club <name>] [--status <name>]")
				continue
			}
			shellShow(db, args)
		case "player":
			if len(args) < 2 {
				cError.Fprintln(os.Stderr, "usage: player <hash-prefix> <player-name>")
				continue
			}
			shellPlayer(db, args[0], strings.Join(args[1:], " "))
		default:
			cWarn.Fprintf(os.Stderr, "unknown command %q, type 'help'\n", cmd)
		}
	}
	return nil
}

func shellHelp() {
	fmt.Println()
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"list", "list all stored datasets"},
		{"show <hash-prefix>", "render a dataset's analysis views"},
		{"show <hash-prefix> --club <name>", "same, restricted to one club"},
		{"show <hash-prefix> --status <name>", "same, restricted to one status"},
		{"player <hash-prefix> <name>", "focused view on one player"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Print("  ")
		cCmd.Printf("%-38s", r.cmd)
		fmt.Println(r.desc)
	}
	fmt.Println()
}

func shellList(db *storage.DB) {
	datasets, err := db.ListDatasets()
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if len(datasets) == 0 {
		cMuted.Println("No datasets stored yet.")
		return
	}
	cHeader.Fprintf(os.Stdout, "%-14s  %-28s  %-20s  %6s  %8s  %6s\n",
		"HASH", "SOURCE", "LOADED", "ROWS", "PLAYERS", "CLUBS")
	cMuted.Fprintf(os.Stdout, "%-14s  %-28s  %-20s  %6s  %8s  %6s\n",
		"──────────────", "────────────────────────────", "────────────────────", "──────", "────────", "──────")
	for _, d := range datasets {
		fmt.Fprintf(os.Stdout, "%-14s  %-28s  %-20s  %6d  %8d  %6d\n",
			d.Hash[:12], truncate(d.Source, 28), d.LoadedAt, d.Rows, d.Players, d.Clubs)
	}
}

func shellShow(db *storage.DB, args []string) {
	prefix := args[0]
	f := &pipeline.Filter{}
	for i := 1; i+1 < len(args); i += 2 {
		switch args[i] {
		case "--club":
			f.Clubs = append(f.Clubs, args[i+1])
		case "--status":
			f.Statuses = append(f.Statuses, args[i+1])
		case "--player":
			f.Players = append(f.Players, args[i+1])
		default:
			cWarn.Fprintf(os.Stderr, "unknown option %q\n", args[i])
			return
		}
	}
	if err := showByHash(db, prefix, f, 10, false); err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
	}
}

func shellPlayer(db *storage.DB, prefix, name string) {
	ds, err := db.GetDatasetByPrefix(prefix)
	if err != nil || ds == nil {
		cError.Fprintf(os.Stderr, "no dataset found with prefix %q\n", prefix)
		return
	}
	events, err := db.GetEvents(ds.Hash)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	f := &pipeline.Filter{Players: []string{name}}
	mine := f.Apply(events)
	if len(mine) == 0 {
		cMuted.Printf("No events for player %q in dataset %s\n", name, ds.Hash[:12])
		return
	}
	cHeader.Fprintf(os.Stdout, "\n--- %s @ %s ---\n", name, ds.Hash[:12])
	if err := showByHash(db, prefix, f, 10, false); err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
	}
}
