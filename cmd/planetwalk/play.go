package main

import (
	"context"
	"time"

	"github.com/EngoEngine/engo"
	"github.com/spf13/cobra"

	"github.com/opd-ai/go-planetwalk/pkg/engine"
	"github.com/opd-ai/go-planetwalk/pkg/health"
	"github.com/opd-ai/go-planetwalk/pkg/input"
	"github.com/opd-ai/go-planetwalk/pkg/logging"
	"github.com/opd-ai/go-planetwalk/pkg/render"
	planetengo "github.com/opd-ai/go-planetwalk/pkg/render/engo"
)

// frameStallAge is how long the frame loop may pause before readiness fails
const frameStallAge = 2 * time.Second

// playConfig holds configuration for the play command.
type playConfig struct {
	width       int
	height      int
	fov         float64
	lattice     int
	fps         int
	metricsAddr string
	maxMemoryMB int64
}

// newPlayCmd creates the play subcommand with all flags configured.
func newPlayCmd(root *rootOptions) *cobra.Command {
	cfg := &playConfig{}

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Open a window and walk with keyboard and mouse",
		Long: `Open a window showing the planet through the orbit camera.

  W/A/S/D        move
  mouse, arrows  orbit the camera
  space          jump
  shift, E       dodge
  F              toggle turning the player with the camera
  R              reset to spawn
  Esc            quit`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlay(cmd, root, cfg)
		},
	}

	cmd.Flags().IntVar(&cfg.width, "width", 960, "window width in pixels")
	cmd.Flags().IntVar(&cfg.height, "height", 640, "window height in pixels")
	cmd.Flags().Float64Var(&cfg.fov, "fov", 60, "vertical field of view in degrees")
	cmd.Flags().IntVar(&cfg.lattice, "lattice", 400, "surface marker count")
	cmd.Flags().IntVar(&cfg.fps, "fps", 60, "frame rate limit")
	cmd.Flags().StringVar(&cfg.metricsAddr, "metrics-addr", "", "metrics/health HTTP address (empty = disabled)")
	cmd.Flags().Int64Var(&cfg.maxMemoryMB, "max-memory-mb", 512, "heap size above which readiness fails")

	return cmd
}

// runPlay executes the play command. It returns when the window closes.
func runPlay(cmd *cobra.Command, root *rootOptions, cfg *playConfig) error {
	gameCfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	logger := root.logger(cmd)

	queue := input.NewQueue()
	game, scene, err := engine.NewSceneGame(gameCfg, queue, logger, nil)
	if err != nil {
		return err
	}

	ctx := logging.WithSessionID(cmd.Context(), "")
	heartbeat := health.NewHeartbeat()

	if cfg.metricsAddr != "" {
		checker := health.NewHealthChecker()
		checker.AddCheck(health.NewSessionCheck(heartbeat))
		checker.AddCheck(health.NewFrameCheck(heartbeat, frameStallAge))
		checker.AddCheck(health.NewMemoryCheck(cfg.maxMemoryMB, nil))

		srv := health.NewServer(cfg.metricsAddr, checker, logger, engine.RegisterMetrics)
		if _, err := srv.Start(ctx); err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Stop(shutdownCtx); err != nil {
				logger.Error(ctx, "health server shutdown failed", err)
			}
		}()
	}

	game.Start(ctx)
	defer heartbeat.Stop()

	title := "planetwalk: " + game.Planet.Name
	planetScene := planetengo.NewPlanetScene(game, queue, scene.World.Obstacles(), planetengo.SceneOptions{
		Title:     title,
		Width:     float64(cfg.width),
		Height:    float64(cfg.height),
		FOV:       cfg.fov,
		Lattice:   cfg.lattice,
		Renderers: []render.Renderer{heartbeat},
	})

	engo.Run(engo.RunOptions{
		Title:          title,
		Width:          cfg.width,
		Height:         cfg.height,
		FPSLimit:       cfg.fps,
		VSync:          true,
		StandardInputs: false,
	}, planetScene)

	logger.Info(ctx, "window closed", "steps", game.CurrentTick, "frames", game.Frames)
	return nil
}
