package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Alfex4936/gramcheck/gramcheck"
	"github.com/Alfex4936/gramcheck/internal/app"
	"github.com/Alfex4936/gramcheck/internal/ngram"
	"github.com/Alfex4936/gramcheck/internal/render"
)

// readText returns args joined by spaces, else the file, else stdin.
func readText(cmd *cobra.Command, args []string, file string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	var r io.Reader = cmd.InOrStdin()
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func newCorrectCmd(c *cli) *cobra.Command {
	var (
		file    string
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "correct [text...]",
		Short: "Correct text and show the word-level changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(cmd, args, file)
			if err != nil {
				return err
			}
			if timeout <= 0 {
				timeout = c.cfg.GetRequestTimeout()
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			a, err := app.New(ctx, c.cfg, c.logger)
			if err != nil {
				return err
			}
			defer a.Close()

			start := time.Now()
			res, err := gramcheck.Compare(ctx, a.Corrector, text, a.CompareOptions()...)
			if err != nil {
				return err
			}
			c.logger.Debug("corrected",
				zap.String("backend", res.Backend),
				zap.Int("changed", res.Counts.Changed()),
				zap.Duration("took", time.Since(start)),
			)

			out := cmd.OutOrStdout()
			switch {
			case c.jsonOut:
				return printJSON(out, res)
			case c.htmlOut:
				_, err = fmt.Fprintln(out, render.HTML(res.Spans))
			default:
				_, err = fmt.Fprintln(out, c.terminal(out).Result(res))
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "file to read instead of stdin")
	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 0, "overall timeout (default from config)")
	return cmd
}

func newDiffCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "diff <original> <corrected>",
		Short: "Align two versions of a text without running a backend",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, err := gramcheck.ParsePolicy(c.cfg.Align.Policy)
			if err != nil {
				return err
			}
			res := gramcheck.Diff(args[0], args[1],
				gramcheck.WithPolicy(policy), gramcheck.WithRefine(c.cfg.Align.Refine))

			out := cmd.OutOrStdout()
			switch {
			case c.jsonOut:
				return printJSON(out, res)
			case c.htmlOut:
				_, err = fmt.Fprintln(out, render.HTML(res.Spans))
			default:
				_, err = fmt.Fprintln(out, c.terminal(out).Result(res))
			}
			return err
		},
	}
}

func newGrammarCmd(c *cli) *cobra.Command {
	var (
		file   string
		corpus string
		n      int
	)
	cmd := &cobra.Command{
		Use:   "grammar [text...]",
		Short: "Flag word windows that never occur in the reference corpus",
		RunE: func(cmd *cobra.Command, args []string) error {
			if corpus == "" {
				corpus = c.cfg.NGram.CorpusPath
			}
			if corpus == "" {
				return errors.New("no corpus: pass --corpus or set CORPUS_PATH")
			}
			if n == 0 {
				n = c.cfg.NGram.N
			}
			text, err := readText(cmd, args, file)
			if err != nil {
				return err
			}

			lazy := ngram.NewLazyCorpus(ngram.FileCorpus{Path: corpus}, n)
			start := time.Now()
			res, err := gramcheck.CheckGrammar(cmd.Context(), lazy, text, n)
			if err != nil {
				return err
			}
			c.logger.Debug("grammar checked",
				zap.String("corpus", corpus),
				zap.Int("flagged", len(res.Flagged)),
				zap.Duration("took", time.Since(start)),
			)

			out := cmd.OutOrStdout()
			switch {
			case c.jsonOut:
				return printJSON(out, res)
			case c.htmlOut:
				_, err = fmt.Fprintln(out, render.GrammarHTML(res))
			default:
				_, err = fmt.Fprintln(out, c.terminal(out).Grammar(res))
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "file to read instead of stdin")
	cmd.Flags().StringVar(&corpus, "corpus", "", "reference corpus, one sentence per line")
	cmd.Flags().IntVarP(&n, "window", "n", 0, "window size (default from config)")
	return cmd
}
