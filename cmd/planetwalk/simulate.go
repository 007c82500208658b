package main

import (
	"context"
	"fmt"
	"io"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/opd-ai/go-planetwalk/pkg/engine"
	"github.com/opd-ai/go-planetwalk/pkg/input"
	"github.com/opd-ai/go-planetwalk/pkg/logging"
	"github.com/opd-ai/go-planetwalk/pkg/render"
)

// Views accepted by --view
const (
	viewNone  = "none"
	viewTrace = "trace"
	viewASCII = "ascii"
	viewLog   = "log"
)

// defaultSteps is the session length when neither --steps nor a script
// sets one
const defaultSteps = 300

// simulateConfig holds configuration for the simulate command.
type simulateConfig struct {
	script  string
	steps   int
	frameDT float64
	view    string
	every   int
	width   int
	height  int
	session string
}

// newSimulateCmd creates the simulate subcommand with all flags configured.
func newSimulateCmd(root *rootOptions) *cobra.Command {
	cfg := &simulateConfig{}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a headless session from an input script",
		Long: `Run a session without a window. Input comes from a YAML script of
timed move, look, jump and dodge entries (or none at all), and each frame
can be printed as a trace row, an ASCII camera view or a log record.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSimulate(cmd, root, cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.script, "script", "", "input script (YAML)")
	cmd.Flags().IntVar(&cfg.steps, "steps", 0, "fixed steps to run (default: script length)")
	cmd.Flags().Float64Var(&cfg.frameDT, "frame-dt", 0, "seconds per rendered frame (default: one fixed step)")
	cmd.Flags().StringVar(&cfg.view, "view", viewTrace, "per-frame output: none, trace, ascii or log")
	cmd.Flags().IntVar(&cfg.every, "every", 1, "render every nth frame")
	cmd.Flags().IntVar(&cfg.width, "width", 72, "ascii view width in columns")
	cmd.Flags().IntVar(&cfg.height, "height", 24, "ascii view height in rows")
	cmd.Flags().StringVar(&cfg.session, "session", "", "session ID for logs (default: generated)")

	return cmd
}

// runSimulate executes the simulate command.
func runSimulate(cmd *cobra.Command, root *rootOptions, cfg *simulateConfig) error {
	gameCfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	logger := root.logger(cmd)

	script := &input.Script{}
	if cfg.script != "" {
		if script, err = input.LoadScript(cfg.script); err != nil {
			return err
		}
	}
	steps := cfg.steps
	if steps <= 0 {
		steps = script.Steps()
	}
	if steps <= 0 {
		steps = defaultSteps
	}

	frameDT := cfg.frameDT
	if frameDT <= 0 {
		frameDT = gameCfg.Simulation.FixedStep
	}

	game, scene, err := engine.NewSceneGame(gameCfg, input.NewReplay(script), logger, nil)
	if err != nil {
		return err
	}

	ctx := logging.WithSessionID(cmd.Context(), cfg.session)
	renderer, flush, err := newView(ctx, cmd.OutOrStdout(), logger, cfg)
	if err != nil {
		return err
	}

	game.Start(ctx)
	obstacles := scene.World.Obstacles()
	for game.CurrentTick < uint64(steps) {
		game.Frame(frameDT)
		if cfg.every > 1 && game.Frames%uint64(cfg.every) != 0 {
			continue
		}
		if err := renderer.Render(render.Capture(game, obstacles)); err != nil {
			return oops.With("frame", game.Frames).Wrap(err)
		}
	}
	game.Stop()
	if err := flush(); err != nil {
		return err
	}

	final := render.Capture(game, obstacles)
	fmt.Fprintf(cmd.OutOrStdout(), "steps=%d frames=%d state=%s position=(%.3f, %.3f, %.3f) altitude=%.3f\n",
		final.Step, final.Frame, final.State,
		final.Player.X(), final.Player.Y(), final.Player.Z(), final.Altitude())
	return nil
}

// newView builds the renderer selected by --view and a function flushing
// its buffered output
func newView(ctx context.Context, out io.Writer, logger *logging.Logger, cfg *simulateConfig) (render.Renderer, func() error, error) {
	noFlush := func() error { return nil }
	switch cfg.view {
	case viewNone:
		return render.Multi{}, noFlush, nil
	case viewTrace:
		t := render.NewTraceRenderer(out, 1)
		return t, t.Flush, nil
	case viewASCII:
		return render.NewTerminalRenderer(out, cfg.width, cfg.height), noFlush, nil
	case viewLog:
		return render.NewLogRenderer(ctx, logger), noFlush, nil
	default:
		return nil, nil, oops.Code("INVALID_FLAG").With("view", cfg.view).
			Errorf("unknown view %q (want none, trace, ascii or log)", cfg.view)
	}
}
