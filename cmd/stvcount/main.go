package main

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/akontos/stvcount/internal/errors"
	"github.com/akontos/stvcount/internal/logger"
	"github.com/akontos/stvcount/internal/models"
	"github.com/akontos/stvcount/internal/services"
	"github.com/akontos/stvcount/pkg/electionfile"
)

var (
	version = "dev"
)

// Exit codes: recoverable input/configuration problems exit 2 so operators
// can correct the document and retry; fatal count failures exit 1.
const (
	exitOK    = 0
	exitFatal = 1
	exitInput = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	inPath := flag.String("in", "", "Election document (JSON or YAML)")
	outPath := flag.String("out", "", "Result output path (default stdout)")
	qrPath := flag.String("qr", "", "Write an audit QR code PNG to this path")
	seed := flag.Uint64("seed", 0, "Override the document's tie-break seed")
	timeout := flag.Duration("timeout", 0, "Time budget for the count (0 = none)")
	logLevel := flag.String("loglevel", "info", "Log level (debug, info, warn, error)")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `stvcount - Single Transferable Vote counter

Usage:
  stvcount -in election.json [options]

Options:
  -in string       Election document, JSON or YAML (required)
  -out string      Result output path (default stdout)
  -qr string       Write an audit QR code PNG to this path
  -seed uint       Override the document's tie-break seed
  -timeout dur     Time budget for the count, e.g. 30s (0 = none)
  -loglevel str    Log level: debug, info, warn, error (default "info")
  -version         Show version and exit
  -help            Show this help message

Exit codes:
  0  count completed
  1  fatal count failure (integrity violation, timeout)
  2  invalid input or configuration (correct and retry)

Examples:
  stvcount -in election.json                    # Count and print the result
  stvcount -in election.yaml -out result.json   # Write the result artifact
  stvcount -in election.json -qr audit.png      # Also emit the audit QR code
  stvcount -in election.json -timeout 1m        # Abort slow counts

`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("stvcount %s\n", version)
		return exitOK
	}
	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "missing required -in flag")
		flag.Usage()
		return exitInput
	}

	appLog := logger.NewWithLevel(logger.ParseLevel(*logLevel))

	el, err := electionfile.ParseFile(*inPath)
	if err != nil {
		color.Red("invalid election document: %v", err)
		return exitInput
	}

	seedOverridden := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			seedOverridden = true
		}
	})
	if seedOverridden {
		el.TieBreakSeed = *seed
	}

	svc := services.NewElectionService(appLog)
	if *timeout > 0 {
		svc.SetBudget(*timeout)
	}

	res, err := svc.RunCount(context.Background(), el)
	if err != nil {
		color.Red("count failed: %v", err)
		var appErr *errors.Error
		if stderrors.As(err, &appErr) && !appErr.Fatal() {
			return exitInput
		}
		return exitFatal
	}

	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		color.Red("failed to encode result: %v", err)
		return exitFatal
	}
	if *outPath == "" {
		fmt.Println(string(data))
	} else if err := os.WriteFile(*outPath, data, 0o644); err != nil {
		color.Red("failed to write result: %v", err)
		return exitFatal
	}

	if *qrPath != "" {
		// The QR encodes the count ID and checksum so a printed report can
		// be verified against the stored artifact.
		content := fmt.Sprintf("stvcount:%s:%s", res.CountID, res.Checksum)
		if err := qrcode.WriteFile(content, qrcode.Medium, 256, *qrPath); err != nil {
			color.Red("failed to write audit QR code: %v", err)
			return exitFatal
		}
	}

	printSummary(res)
	return exitOK
}

// printSummary renders a short human-readable report on stderr; the JSON
// artifact on stdout stays machine-readable.
func printSummary(res *models.Result) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	cyan := color.New(color.FgCyan)

	fmt.Fprintln(os.Stderr)
	bold.Fprintf(os.Stderr, "  %s", res.ElectionName)
	if res.Institution != "" {
		fmt.Fprintf(os.Stderr, " - %s", res.Institution)
	}
	fmt.Fprintln(os.Stderr)
	cyan.Fprintf(os.Stderr, "  quota %d, %d rounds, %d exhausted ballots\n",
		res.Quota, len(res.Rounds), res.ExhaustedCount)

	for i, e := range res.Elected {
		green.Fprintf(os.Stderr, "  %d. %s", i+1, e.Name)
		if e.Constituency != "" {
			fmt.Fprintf(os.Stderr, " (%s)", e.Constituency)
		}
		fmt.Fprintf(os.Stderr, " - round %d\n", e.Round)
	}
	if len(res.Elected) < res.Seats {
		fmt.Fprintf(os.Stderr, "  %d of %d seats filled\n", len(res.Elected), res.Seats)
	}
	fmt.Fprintln(os.Stderr)
}
