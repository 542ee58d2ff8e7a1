package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"liteedit/internal/export"
)

type ExportCmd struct {
	flags  *Flags
	format string
	out    string
}

// NewExportCmd creates a new export command
func NewExportCmd(flags *Flags) *ExportCmd {
	return &ExportCmd{flags: flags}
}

// Register adds the export command to the application
func (cmd *ExportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "export",
		Usage:     "Export the saved document",
		UsageText: "liteedit export [--format json|html|png|txt] [--out path]",
		Description: `Writes the saved document as JSON, a standalone HTML page, a PNG image or
a plain text drawing. Without --out the file goes to the configured export
directory under its default name.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Aliases:     []string{"f"},
				Usage:       "output format (json, html, png, txt)",
				Value:       string(export.FormatJSON),
				Destination: &cmd.format,
			},
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "output file path",
				Destination: &cmd.out,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ExportCmd) run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config

	format, err := export.ParseFormat(cmd.format)
	if err != nil {
		return err
	}

	doc, _, closer, err := loadDocument(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closer() }()

	path := cmd.out
	if path == "" {
		path = cfg.ExportPath(format.DefaultName())
	}

	if err := export.WriteFile(path, format, doc, export.Options{Scale: cfg.Scale()}); err != nil {
		return fmt.Errorf("export %s: %w", format, err)
	}

	log.Info().Str("path", path).Str("format", string(format)).Msg("document exported")
	_, _ = fmt.Fprintln(c.Root().Writer, path)
	return nil
}
