// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Command tally runs the election pipeline over an election stored as JSON
// and prints the result.
//
//	tally [-json] [-victory-weight w] [-margin-weight w] [-approval-weight w] election.json
//
// Use "-" to read the election from stdin. Output is an aligned table when
// stdout is a terminal and JSON otherwise, unless -json or -table is given.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/danielhkuo/rank-approve/cliparse"
	"github.com/danielhkuo/rank-approve/election"
	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
)

func main() {
	// A missing .env is fine
	_ = godotenv.Load()

	tty := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	if err := run(os.Args[1:], os.Stdin, os.Stdout, tty); err != nil {
		slog.Error("tally failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer, tty bool) error {
	defaults, err := cliparse.WeightsFromEnv()
	if err != nil {
		return err
	}

	var asJSON, asTable bool
	w := defaults
	fs := flag.NewFlagSet("tally", flag.ContinueOnError)
	fs.BoolVar(&asJSON, "json", false, "Print JSON")
	fs.BoolVar(&asTable, "table", false, "Print a table")
	fs.Float64Var(&w.Victory, "victory-weight", defaults.Victory, "Weight of net victories")
	fs.Float64Var(&w.Margin, "margin-weight", defaults.Margin, "Weight of average margin")
	fs.Float64Var(&w.Approval, "approval-weight", defaults.Approval, "Weight of approvals")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := w.Validate(); err != nil {
		return err
	}
	if asJSON && asTable {
		return errors.New("-json and -table are mutually exclusive")
	}
	if fs.NArg() != 1 {
		return errors.New("usage: tally [flags] election.json")
	}

	e, err := readElection(fs.Arg(0), stdin)
	if err != nil {
		return err
	}

	result, err := election.Tally(e, w)
	if err != nil {
		return err
	}

	if asJSON || (!asTable && !tty) {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	return printTable(stdout, e, result)
}

func readElection(path string, stdin io.Reader) (election.Election, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return election.Election{}, fmt.Errorf("failed to open election: %w", err)
		}
		defer f.Close()
		r = f
	}

	var e election.Election
	if err := json.NewDecoder(r).Decode(&e); err != nil {
		return election.Election{}, fmt.Errorf("failed to decode election: %w", err)
	}
	return e, nil
}

func printTable(out io.Writer, e election.Election, res election.Result) error {
	title := e.Title
	if title == "" {
		title = "(untitled)"
	}
	ballots := "ballots"
	if res.BallotCount == 1 {
		ballots = "ballot"
	}
	fmt.Fprintf(out, "%s: %s %s\n", title, humanize.Comma(int64(res.BallotCount)), ballots)
	fmt.Fprintf(out, "Smith set: %s\n\n", strings.Join(res.SmithSet, ", "))

	if !res.HasVotes() {
		fmt.Fprintln(out, "No votes cast.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tCANDIDATE\tWINS\tLOSSES\tNET\tAVG MARGIN\tAPPROVALS\tSCORE")
	for _, s := range res.Rankings {
		place := humanize.Ordinal(s.Rank)
		if s.IsTied {
			place += " (tie)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%+d\t%.2f\t%s\t%.3f\n",
			place, s.Name, s.Wins, s.Losses, s.NetVictories, s.AvgMargin,
			humanize.Comma(int64(s.ApprovalScore)), s.CompositeScore)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	tw = tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WINNER\tLOSER\tMARGIN")
	for _, v := range res.Victories {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", v.Winner, v.Loser, v.Margin)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	borda := make(map[string]float64, len(res.Borda))
	for _, b := range res.Borda {
		borda[b.Name] = b.Value
	}
	tw = tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CANDIDATE\tAPPROVAL %\tBORDA AVG")
	for _, a := range res.Approval {
		fmt.Fprintf(tw, "%s\t%.1f\t%.1f\n", a.Name, a.Value, borda[a.Name])
	}
	return tw.Flush()
}
