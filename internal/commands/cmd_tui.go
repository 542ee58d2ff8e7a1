package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"liteedit/internal/editor"
	"liteedit/internal/tui"
)

type TuiCmd struct {
	flags *Flags
}

// NewTuiCmd creates the interactive editor command
func NewTuiCmd(flags *Flags) *TuiCmd {
	return &TuiCmd{flags: flags}
}

// Run opens the editor. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	cfg := cmd.flags.Config

	doc, st, closer, err := loadDocument(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closer(); err != nil {
			log.Error().Err(err).Msg("failed to close store")
		}
	}()

	logger := log.With().Str("component", "editor").Logger()
	ed := editor.New(doc, st,
		editor.WithLogger(logger),
		editor.WithHandleReach(cfg.HandleReach()),
	)

	log.Info().
		Int("elements", doc.Len()).
		Str("store", cfg.StorePath()).
		Msg("editor started")

	model := tui.New(ed, cfg, tui.WithLogger(log.With().Str("component", "tui").Logger()))
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run editor: %w", err)
	}
	return nil
}
