package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/paradigms/pkg/engine"
	"github.com/matzehuels/paradigms/pkg/paradigm"
	"github.com/matzehuels/paradigms/pkg/render"
	"github.com/matzehuels/paradigms/pkg/wordclass"
)

// fillOpts holds the command-line flags for the fill command.
type fillOpts struct {
	size        string // BASIC, FULL or LINGUISTIC
	mode        string // join or expand
	format      string // text, json or tsv
	output      string // output file; stdout when empty
	frequencies bool   // annotate forms with frequencies (text)
	border      bool   // draw table borders (text)
}

// fillCommand creates the fill command.
func (c *CLI) fillCommand() *cobra.Command {
	opts := fillOpts{
		size:   "full",
		mode:   paradigm.JoinForms.String(),
		format: string(render.FormatText),
	}

	cmd := &cobra.Command{
		Use:   "fill LEMMA WORDCLASS",
		Short: "Fill the paradigm of a lemma",
		Long: `Fill the paradigm layout of WORDCLASS for LEMMA.

Every analysis in the layout is sent to the generator in a single batch. Cells
whose analysis produced no form show "--". With --mode expand, rows with
several forms in one cell are split so that every form gets its own line.`,
		Example: `  paradigms fill atim NA
  paradigms fill atim NA --size linguistic --mode expand
  paradigms fill nipâw VAI -f json -o nipâw.json`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeWordClass,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFill(cmd.Context(), cmd.OutOrStdout(), args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.size, "size", "s", opts.size, "paradigm size: basic, full, linguistic")
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", opts.mode, "multiple forms per cell: join, expand")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: text, json, tsv")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&opts.frequencies, "frequencies", false, "show form frequencies (text)")
	cmd.Flags().BoolVar(&opts.border, "border", false, "draw table borders (text)")

	return cmd
}

// parseFillRequest validates the positional arguments and flags.
func parseFillRequest(args []string, opts fillOpts) (engine.Request, render.Format, error) {
	lemma, wc, err := lemmaArgs(args)
	if err != nil {
		return engine.Request{}, "", err
	}
	size, err := wordclass.ParseSize(opts.size)
	if err != nil {
		return engine.Request{}, "", err
	}
	mode, err := paradigm.ParseFillMode(opts.mode)
	if err != nil {
		return engine.Request{}, "", err
	}
	format, err := render.ParseFormat(opts.format)
	if err != nil {
		return engine.Request{}, "", err
	}
	req := engine.Request{Lemma: lemma, WordClass: wc, Size: size, Mode: mode}
	return req, format, req.Validate()
}

// runFill fills the paradigm and writes it to stdout or the output file.
func (c *CLI) runFill(ctx context.Context, stdout io.Writer, args []string, opts fillOpts) error {
	req, format, err := parseFillRequest(args, opts)
	if err != nil {
		return err
	}

	rt, err := c.newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Filling %s (%s, %s)...", req.Lemma, req.WordClass, req.Size))
	spinner.Start()

	result, err := rt.engine.Fill(ctx, req)
	if err != nil {
		spinner.StopWithError("Fill failed")
		return err
	}
	spinner.Stop()
	prog.done("filled paradigm", "lemma", req.Lemma, "panes", len(result.Panes))

	renderOpts := []render.Option{render.WithParadigm(req.Lemma, req.WordClass, req.Size)}
	if opts.frequencies {
		renderOpts = append(renderOpts, render.WithFrequencies())
	}
	if opts.border {
		renderOpts = append(renderOpts, render.WithBorder())
	}

	if opts.output == "" {
		return render.Write(stdout, format, result.Panes, renderOpts...)
	}

	f, err := os.Create(opts.output)
	if err != nil {
		return fmt.Errorf("create %s: %w", opts.output, err)
	}
	if err := render.Write(f, format, result.Panes, renderOpts...); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}

	printSuccess("Filled %s (%s, %s)", req.Lemma, req.WordClass, req.Size)
	printFile(opts.output)
	printFillStats(result.Stats)
	return nil
}
