package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"liteedit/internal/server"
)

type ServeCmd struct {
	flags *Flags
	addr  string
}

// NewServeCmd creates a new serve command
func NewServeCmd(flags *Flags) *ServeCmd {
	return &ServeCmd{flags: flags}
}

// Register adds the serve command to the application
func (cmd *ServeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "serve",
		Usage:       "Serve read-only previews of the saved document",
		UsageText:   "liteedit serve [--addr host:port]",
		Description: "Serves /document.json, /document.html and /document.png, rendered from the store on every request.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address",
				Sources:     cli.EnvVars("LITEEDIT_ADDR"),
				Value:       "127.0.0.1:8080",
				Destination: &cmd.addr,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ServeCmd) run(ctx context.Context, _ *cli.Command) error {
	cfg := cmd.flags.Config

	st, closer, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closer(); err != nil {
			log.Error().Err(err).Msg("failed to close store")
		}
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(st, cfg.Bounds(), log.With().Str("component", "server").Logger())

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Listen(cmd.addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen on %s: %w", cmd.addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down preview server")
	if err := srv.Shutdown(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return nil
}
