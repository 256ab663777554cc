package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	cli "github.com/urfave/cli/v3"

	"github.com/jorge-barreto/relnotes/internal/config"
	"github.com/jorge-barreto/relnotes/internal/docs"
	"github.com/jorge-barreto/relnotes/internal/ident"
	"github.com/jorge-barreto/relnotes/internal/release"
	"github.com/jorge-barreto/relnotes/internal/render"
	"github.com/jorge-barreto/relnotes/internal/runlog"
	"github.com/jorge-barreto/relnotes/internal/scaffold"
	"github.com/jorge-barreto/relnotes/internal/transform"
	"github.com/jorge-barreto/relnotes/internal/ux"
)

func main() {
	// A missing .env is fine; the real environment still applies.
	_ = godotenv.Load()

	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%serror:%s %v\n", ux.Red, ux.Reset, err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:        "relnotes",
		Usage:       "Render, rewrite, and publish release notes",
		Description: "Run 'relnotes docs' for the record format, configuration, and more.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Value: config.DefaultPath, Usage: "Path to the config file"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "Log debug diagnostics to stderr"},
		},
		Commands: []*cli.Command{
			initCmd(),
			renderCmd(),
			transformCmd(),
			publishCmd(),
			runCmd(),
			identCmd(),
			docsCmd(),
		},
	}
}

func renderCmd() *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     "Render a release record to markdown",
		ArgsUsage: "<input.json> [output.md]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "html", Usage: "Convert HTML in entry prose to markdown first"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			rec, err := loadRecord(cmd)
			if err != nil {
				return err
			}
			if err := writeOutput(cmd.Args().Get(1), "markdown", []byte(render.Markdown(rec))); err != nil {
				return err
			}
			ux.PageName(ident.ForRecord(rec))
			return nil
		},
	}
}

func transformCmd() *cli.Command {
	return &cli.Command{
		Name:      "transform",
		Usage:     "Rewrite features and improvements into customer-facing prose",
		ArgsUsage: "<input.json> [output.json]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			rec, err := loadRecord(cmd)
			if err != nil {
				return err
			}
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.logger.Sync()

			if err := e.cfg.Generator.RequireAPIKey(); err != nil {
				return err
			}

			run := e.newRun("transform", cmd.Args().First(), rec)
			out, err := e.transform(ctx, run, rec)
			if err != nil {
				return err
			}

			data, err := release.Encode(out)
			if err != nil {
				return err
			}
			output := cmd.Args().Get(1)
			if err := writeOutput(output, "transformed content", data); err != nil {
				return err
			}
			run.Output = output
			e.saveRun(run)
			return nil
		},
	}
}

func publishCmd() *cli.Command {
	return &cli.Command{
		Name:      "publish",
		Usage:     "Create a ClickUp page from a rendered markdown file",
		ArgsUsage: "<file.md>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Usage: "Page name (default: identifier read from the document)"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
			if path == "" {
				return fmt.Errorf("markdown file argument is required")
			}
			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.logger.Sync()

			if err := e.cfg.ClickUp.RequireToken(); err != nil {
				return err
			}

			name := cmd.String("name")
			if name == "" {
				name = ident.ForDocument(string(content), path)
			}
			_, err = e.publish(ctx, name, string(content))
			return err
		},
	}
}

func runCmd() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Transform, render, write, and publish a release in one step",
		ArgsUsage: "<input.json>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "skip-transform", Usage: "Render the record without rewriting entries"},
			&cli.BoolFlag{Name: "no-publish", Usage: "Stop after writing the markdown file"},
			&cli.BoolFlag{Name: "html", Usage: "Convert HTML in entry prose to markdown first"},
			&cli.StringFlag{Name: "out", Usage: "Markdown output path (default: <identifier>.md)"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			rec, err := loadRecord(cmd)
			if err != nil {
				return err
			}
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.logger.Sync()

			skipTransform := cmd.Bool("skip-transform")
			publish := !cmd.Bool("no-publish")

			// Credentials are checked before any work starts.
			if !skipTransform {
				if err := e.cfg.Generator.RequireAPIKey(); err != nil {
					return err
				}
			}
			if publish {
				if err := e.cfg.ClickUp.RequireToken(); err != nil {
					return err
				}
			}

			run := e.newRun("run", cmd.Args().First(), rec)
			final := rec
			if skipTransform {
				run.Record(transform.Report{})
			} else {
				out, err := e.transform(ctx, run, rec)
				if err != nil {
					return err
				}
				out.Duration = rec.Duration
				final = out
			}

			output := cmd.String("out")
			if output == "" {
				output = run.Identifier + ".md"
			}
			md := render.Markdown(final)
			if err := writeOutput(output, "markdown", []byte(md)); err != nil {
				run.Fail(err)
				e.saveRun(run)
				return err
			}
			run.Output = output

			if publish {
				page, err := e.publish(ctx, run.Identifier, md)
				if err != nil {
					run.Fail(err)
					e.saveRun(run)
					return err
				}
				run.PageID = page.ID
			}

			path := e.saveRun(run)
			ux.RenderRun(ux.Out, run, path)
			return nil
		},
	}
}

func identCmd() *cli.Command {
	return &cli.Command{
		Name:      "ident",
		Usage:     "Print the canonical release identifier of a record",
		ArgsUsage: "<input.json>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
			if path == "" {
				return fmt.Errorf("input file argument is required")
			}
			rec, err := release.Load(path)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.Root().Writer, ident.ForRecord(rec))
			return nil
		},
	}
}

func initCmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Create an example config and release record",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir, err := os.Getwd()
			if err != nil {
				return err
			}
			return scaffold.Init(dir)
		},
	}
}

func docsCmd() *cli.Command {
	return &cli.Command{
		Name:      "docs",
		Usage:     "Show documentation",
		ArgsUsage: "[topic]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			w := cmd.Root().Writer
			name := cmd.Args().First()
			if name == "" {
				fmt.Fprint(w, "\nAvailable topics:\n\n")
				for _, t := range docs.All() {
					fmt.Fprintf(w, "  %-14s %s\n", t.Name, t.Summary)
				}
				fmt.Fprintln(w, "\nRun 'relnotes docs <topic>' to read a topic.")
				return nil
			}
			t, err := docs.Get(name)
			if err != nil {
				return err
			}
			fmt.Fprint(w, t.Content)
			return nil
		},
	}
}

// loadRecord reads the first argument as a release record, applying --html
// when the command has it.
func loadRecord(cmd *cli.Command) (release.Record, error) {
	path := cmd.Args().First()
	if path == "" {
		return release.Record{}, fmt.Errorf("input file argument is required")
	}
	rec, err := release.Load(path)
	if err != nil {
		return release.Record{}, err
	}
	if cmd.Bool("html") {
		return release.StripHTML(rec)
	}
	return rec, nil
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(path, what string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := runlog.WriteFileAtomic(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	ux.Saved(what, path)
	return nil
}
