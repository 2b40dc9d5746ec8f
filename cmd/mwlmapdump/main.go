// Command mwlmapdump is the external collaborator around the mwlmap
// package: it owns the CLI surface, file I/O, and logging that the core
// scanner/printer deliberately stays out of.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xyproto/mwlmap"
)

var (
	mode      string
	verbose   bool
	roundTrip bool
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mwlmapdump <file>",
		Short: "Scan and re-print a Metrowerks/CodeWarrior linker map",
		Args:  cobra.ExactArgs(1),
		RunE:  run,
	}
	cmd.Flags().StringVar(&mode, "mode", "", `alternate scan entry mode: "tloztp" or "smgalaxy"`)
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable development logging")
	cmd.Flags().BoolVar(&roundTrip, "round-trip", false, "print the re-emitted map instead of a summary")
	return cmd
}

func newLogger() *zap.Logger {
	if verbose {
		l, _ := zap.NewDevelopment()
		return l
	}
	l, _ := zap.NewProduction()
	return l
}

func run(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	defer logger.Sync() //nolint:errcheck

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	cfg := mwlmap.DefaultWarningConfig()

	var m *mwlmap.Map
	var line int
	switch mode {
	case "tloztp":
		m, line, err = mwlmap.ScanTLOZTP(data, cfg)
	case "smgalaxy":
		m, line, err = mwlmap.ScanSMGalaxy(data, cfg)
	case "":
		m, line, err = mwlmap.Scan(data, cfg)
	default:
		return fmt.Errorf("unknown mode %q, want \"tloztp\" or \"smgalaxy\"", mode)
	}
	if err != nil {
		logger.Error("scan failed", zap.Error(err), zap.Int("line", line))
		return err
	}
	logger.Info("scan complete", zap.Int("line", line), zap.Int("section_layouts", len(m.SectionLayouts)), zap.Int("warnings", len(m.Warnings)))

	for _, w := range m.Warnings {
		logger.Warn(w.Message, zap.Int("line", w.Line))
	}

	if roundTrip {
		out, _ := mwlmap.Print(m)
		_, err := os.Stdout.Write(out)
		return err
	}

	fmt.Printf("entry point: %s\n", m.EntryPointName)
	fmt.Printf("version range: %s .. %s\n", m.Range.Min, m.Range.Max)
	fmt.Printf("section layouts: %d\n", len(m.SectionLayouts))
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
