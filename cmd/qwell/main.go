// Command qwell computes the bound states of a layered quantum well with the
// finite-element method and prints one E[k]=value line per state.
//
//	qwell                                  # reference well, 20 P1 cells on a thin strip
//	qwell --mesh interval --elements 116 --degree 2 --plots --out ./plots
//	qwell --config well.yaml --xlsx run.xlsx --tsv psi.tsv
//	qwell --sweep 40,60,80,100 --workers 4
//
// Exit status is 0 on success, 1 on any failure and 2 when the requested
// eigen backend is unknown or lacks a required capability.
package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/katalvlaran/qwell/config"
	"github.com/katalvlaran/qwell/eigen"
	"github.com/katalvlaran/qwell/pipeline"
	"github.com/katalvlaran/qwell/report"
)

const (
	exitOK         = 0
	exitFailure    = 1
	exitCapability = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("qwell", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	config.BindFlags(fs)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}

		return exitFailure
	}

	logger := log.NewWithOptions(stderr, log.Options{ReportTimestamp: true, Prefix: "qwell"})
	path, _ := fs.GetString(config.FlagConfig)
	cfg, err := config.Load(path, fs)
	if err != nil {
		logger.Error("invalid configuration", "err", err)
		if errors.Is(err, config.ErrBackend) {
			logger.Error("available backends", "backends", eigen.Backends())
			return exitCapability
		}

		return exitFailure
	}
	logger.SetLevel(cfg.Level())

	if err = eigen.CheckCapabilities(cfg.Solver.Backend, cfg.Requirement()); err != nil {
		logger.Error("eigen backend cannot solve this problem", "err", err, "host", eigen.HostFeatures())
		return exitCapability
	}
	if caps, err := eigen.Capabilities(cfg.Solver.Backend); err == nil {
		logger.Debug("backend", "name", caps.Backend, "direct", caps.Direct, "cpu", caps.CPU)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	console := report.Console{W: stdout}
	if len(cfg.Sweep.Widths) > 0 {
		return sweep(ctx, cfg, console, logger)
	}

	res, err := pipeline.Run(ctx, cfg, pipeline.WithLogger(logger), pipeline.WithConsole(stdout))
	if err != nil {
		logger.Error("run failed", "err", err)
		return exitFailure
	}
	if err = console.States(res.States); err != nil {
		logger.Error("write states", "err", err)
		return exitFailure
	}
	if err = writeOutputs(cfg.Output, res, logger); err != nil {
		logger.Error("write outputs", "err", err)
		return exitFailure
	}

	return exitOK
}

func sweep(ctx context.Context, cfg config.Config, console report.Console, logger *log.Logger) int {
	pts, err := pipeline.Sweep(ctx, cfg, cfg.Sweep.Widths, cfg.Sweep.Workers, pipeline.WithLogger(logger))
	if err != nil {
		logger.Error("sweep failed", "err", err)
		return exitFailure
	}
	for _, p := range pts {
		if err = console.Sweep(p.Width, p.Energies); err != nil {
			logger.Error("write sweep", "err", err)
			return exitFailure
		}
	}

	return exitOK
}

func writeOutputs(out config.Output, res *pipeline.Result, logger *log.Logger) error {
	if out.Plots {
		if err := os.MkdirAll(out.Dir, 0o755); err != nil {
			return err
		}
		paths, err := report.PlotAll(out.Dir, res.Mesh, len(res.Structure.Layers), res.States,
			res.Structure.Interfaces(), out.Samples)
		if err != nil {
			return err
		}
		logger.Info("plots written", "dir", out.Dir, "files", len(paths))
	}
	if out.XLSX != "" {
		if err := report.SaveXLSX(out.XLSX, res.Summary(), res.States, out.Samples); err != nil {
			return err
		}
		logger.Info("workbook written", "path", out.XLSX)
	}
	if out.TSV != "" {
		if err := report.SaveTSV(out.TSV, res.States, out.Samples); err != nil {
			return err
		}
		logger.Info("table written", "path", out.TSV)
	}

	return nil
}
