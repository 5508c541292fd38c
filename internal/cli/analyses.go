package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/paradigms/pkg/generator"
)

// analysesCommand creates the analyses command.
func (c *CLI) analysesCommand() *cobra.Command {
	var layoutOrder bool

	cmd := &cobra.Command{
		Use:   "analyses LEMMA WORDCLASS",
		Short: "List the analyses of a lemma's linguistic paradigm",
		Long: `List every analysis of the LINGUISTIC layout of WORDCLASS with LEMMA
substituted, one per line.

By default the analyses are distinct and sorted. With --layout-order they are
printed in layout order with duplicates kept, which is exactly what the
generator receives on stdin; pipe it into the generator to inspect its output.`,
		Example: `  paradigms analyses atim NA
  paradigms analyses atim NA --layout-order | hfst-optimized-lookup -q generator.hfstol`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeWordClass,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAnalyses(cmd.OutOrStdout(), args, layoutOrder)
		},
	}

	cmd.Flags().BoolVar(&layoutOrder, "layout-order", false, "print in layout order, duplicates included")

	return cmd
}

func (c *CLI) runAnalyses(stdout io.Writer, args []string, layoutOrder bool) error {
	lemma, wc, err := lemmaArgs(args)
	if err != nil {
		return err
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	// Listing analyses never calls the generator.
	eng, err := cfg.NewEngine(generator.Static{}, c.Logger)
	if err != nil {
		return err
	}

	if layoutOrder {
		s, err := eng.GenerateAnalysisString(lemma, wc)
		if err != nil {
			return err
		}
		if s == "" {
			return nil
		}
		_, err = io.WriteString(stdout, s+"\n")
		return err
	}

	analyses, err := eng.ExpandAnalyses(lemma, wc)
	if err != nil {
		return err
	}
	for _, a := range analyses {
		fmt.Fprintln(stdout, a)
	}
	return nil
}

// inflectCommand creates the inflect command.
func (c *CLI) inflectCommand() *cobra.Command {
	var byAnalysis bool

	cmd := &cobra.Command{
		Use:   "inflect LEMMA WORDCLASS",
		Short: "Generate every form of a lemma",
		Long: `Generate every form of LEMMA across the LINGUISTIC layout of WORDCLASS in a
single generator call and print the distinct forms, sorted.

With --by-analysis the output is a JSON object mapping every analysis to its
forms; analyses the generator could not produce map to an empty list.`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeWordClass,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInflect(cmd.Context(), cmd.OutOrStdout(), args, byAnalysis)
		},
	}

	cmd.Flags().BoolVar(&byAnalysis, "by-analysis", false, "print forms per analysis as JSON")

	return cmd
}

func (c *CLI) runInflect(ctx context.Context, stdout io.Writer, args []string, byAnalysis bool) error {
	lemma, wc, err := lemmaArgs(args)
	if err != nil {
		return err
	}
	rt, err := c.newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	prog := newProgress(c.Logger)
	if !byAnalysis {
		forms, err := rt.engine.InflectAll(ctx, lemma, wc)
		if err != nil {
			return err
		}
		prog.done("inflected", "lemma", lemma, "forms", len(forms))
		for _, f := range forms {
			fmt.Fprintln(stdout, f)
		}
		return nil
	}

	results, err := rt.engine.InflectAllWithAnalyses(ctx, lemma, wc)
	if err != nil {
		return err
	}
	prog.done("inflected", "lemma", lemma, "analyses", len(results))

	for a, forms := range results {
		if forms == nil {
			results[a] = []string{}
		}
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(results)
}
