// Command gramcheck-cli corrects text, diffs two versions of a text and
// checks word sequences against a reference corpus.
//
// Usage:
//
//	echo "I hve an aple." | gramcheck-cli correct --backend dictionary
//	gramcheck-cli correct -f essay.txt --json
//	gramcheck-cli diff "the cat sat" "the cat has sat"
//	gramcheck-cli grammar --corpus corpus.txt -n 2 "The cat ran."
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Alfex4936/gramcheck/internal/config"
	"github.com/Alfex4936/gramcheck/internal/logging"
	"github.com/Alfex4936/gramcheck/internal/render"
	"github.com/Alfex4936/gramcheck/internal/util"
)

type cli struct {
	configPath string
	backend    string
	policy     string
	verbose    bool
	jsonOut    bool
	htmlOut    bool
	noColor    bool

	cfg    *config.Config
	logger *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "gramcheck-cli",
		Short: "Spelling/grammar correction with word-level change reports",
		Long: `gramcheck-cli runs text through a correction backend and shows which
words were kept, removed, added or substituted. It also flags word sequences
that never occur in a reference corpus.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", config.DefaultPath, "config file (YAML)")
	pf.StringVar(&c.backend, "backend", "", "correction backend: nara|hunspell|openai|gemini|dictionary|identity|vote")
	pf.StringVar(&c.policy, "policy", "", "alignment policy: diff|positional")
	pf.BoolVarP(&c.verbose, "verbose", "v", false, "debug logging")
	pf.BoolVar(&c.jsonOut, "json", false, "print JSON")
	pf.BoolVar(&c.htmlOut, "html", false, "print HTML markup")
	pf.BoolVar(&c.noColor, "no-color", false, "disable colors")

	root.AddCommand(newCorrectCmd(c), newDiffCmd(c), newGrammarCmd(c))
	return root
}

// setup loads the configuration, applies flag overrides and builds the logger.
func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if c.backend != "" {
		cfg.Backend.Name = c.backend
	}
	if c.policy != "" {
		cfg.Align.Policy = c.policy
	}

	level := cfg.Logging.Level
	if c.verbose {
		level = "debug"
	}
	logger, err := logging.New(level, true)
	if err != nil {
		return err
	}
	c.cfg, c.logger = cfg, logger
	logger.Debug("config loaded", zap.String("path", c.configPath), zap.String("backend", cfg.Backend.Name))
	return nil
}

func (c *cli) terminal(w io.Writer) *render.Terminal {
	color := false
	if f, ok := w.(*os.File); ok && !c.noColor {
		if fi, err := f.Stat(); err == nil {
			color = fi.Mode()&os.ModeCharDevice != 0
		}
	}
	return render.NewTerminal(color)
}

func printJSON(w io.Writer, v any) error {
	out, err := util.MarshalNoEscape(v, true)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
