package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/bobmcallan/vire-analytics/internal/app"
	"github.com/bobmcallan/vire-analytics/internal/common"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "vire-analytics: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("vire-analytics", flag.ContinueOnError)
	configPath := fs.String("config", "", "TOML config file (default: VIRE_CONFIG, then vire.toml next to the binary)")
	inputPath := fs.String("input", "-", "JSON snapshot file, - for stdin")
	ticker := fs.String("ticker", "", "only report this ticker")
	quiet := fs.Bool("quiet", false, "suppress the startup banner")
	showVersion := fs.Bool("version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		common.LoadVersionFromFile()
		_, err := fmt.Fprintln(stdout, common.GetFullVersion())
		return err
	}

	a, err := app.NewApp(*configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}

	if !*quiet {
		common.PrintBanner(a.Config, a.Logger)
	}

	snapshot, err := app.ReadSnapshotFile(*inputPath)
	if err != nil {
		return err
	}

	out, err := a.Run(snapshot, *ticker)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
