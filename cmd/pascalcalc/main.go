package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mgomes/pascalcalc/calc"
	"github.com/sanity-io/litter"
	"github.com/spf13/cobra"
)

const configEnvVar = "PASCALCALC_CONFIG"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type app struct {
	configPath string
	verbose    bool
	division   string
	maxDepth   int

	cfg    fileConfig
	logger *slog.Logger
	engine *calc.Engine
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "pascalcalc",
		Short: "Evaluate arithmetic expressions and BEGIN ... END programs",
		Long: `pascalcalc scans, parses and evaluates a small Pascal-like language:
integer arithmetic with + - * /, parentheses, unary signs, := assignment and
BEGIN ... END blocks. A program is one block followed by a dot.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (.toml, .yaml or .yml; default $"+configEnvVar+")")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log debug records to stderr")
	flags.StringVar(&a.division, "division", "", "integer division mode: truncate or floor")
	flags.IntVar(&a.maxDepth, "max-depth", 0, "maximum nesting depth accepted by the parser")

	root.AddCommand(
		newEvalCmd(a),
		newRunCmd(a),
		newTokensCmd(a),
		newASTCmd(a),
		newFmtCmd(),
		newAnalyzeCmd(a),
		newREPLCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	path := a.configPath
	if path == "" {
		path = os.Getenv(configEnvVar)
	}
	cfg, err := loadFileConfig(path)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("division") {
		cfg.Division = a.division
	}
	if flags.Changed("max-depth") {
		cfg.MaxDepth = a.maxDepth
	}
	if a.verbose {
		cfg.LogLevel = "debug"
	}

	level, err := parseLogLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	engine, err := calc.NewEngine(calc.Config{
		MaxDepth: cfg.MaxDepth,
		Division: calc.DivisionMode(cfg.Division),
		Logger:   a.logger,
	})
	if err != nil {
		return fmt.Errorf("configure engine: %w", err)
	}
	a.cfg = cfg
	a.engine = engine
	a.logger.Debug("engine configured", "config", path, "division", engine.Config().Division, "max_depth", engine.Config().MaxDepth)
	return nil
}

func newEvalCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "eval <expression>...",
		Short: "Evaluate an arithmetic expression and print its value",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			val, err := a.engine.Eval(strings.Join(args, " "))
			if err != nil {
				return fmt.Errorf("evaluation failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), val)
			return nil
		},
	}
}

func newRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run <file|->",
		Short: "Run a program and print its final variables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(cmd, args[0])
			if err != nil {
				return err
			}
			env, err := a.engine.Run(source)
			if err != nil {
				return fmt.Errorf("execution failed: %w", err)
			}
			if env.Len() > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatBindings(env, "\n"))
			}
			return nil
		},
	}
}

func newTokensCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file|->",
		Short: "Print the token stream of a source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(cmd, args[0])
			if err != nil {
				return err
			}
			tokens, err := calc.Tokenize(source)
			out := cmd.OutOrStdout()
			for _, tok := range tokens {
				fmt.Fprintf(out, "%s\t%s\n", tok.Pos, tok)
			}
			if err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}
			a.logger.Debug("scanned source", "tokens", len(tokens))
			return nil
		},
	}
}

func newASTCmd(a *app) *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "ast <file|->",
		Short: "Print the syntax tree of a program or expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(cmd, args[0])
			if err != nil {
				return err
			}
			var node calc.Node
			if calc.DetectMode(source) == calc.ModeProgram {
				node, err = a.engine.Parse(source)
			} else {
				node, err = a.engine.ParseExpression(source)
			}
			if err != nil {
				return fmt.Errorf("parse failed: %w", err)
			}
			if raw {
				fmt.Fprintln(cmd.OutOrStdout(), dumpNode(node))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), calc.FormatNode(node))
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "dump the Go values of the tree")
	return cmd
}

func dumpNode(node calc.Node) string {
	opts := litter.Options{
		StripPackageNames: true,
		HidePrivateFields: true,
		Separator:         " ",
	}
	return opts.Sdump(node)
}

func readSource(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("read source: %s does not exist", path)
		}
		return "", fmt.Errorf("read source: %w", err)
	}
	return string(data), nil
}

// formatBindings renders name = value pairs in name order.
func formatBindings(env *calc.Env, sep string) string {
	names := env.Names()
	lines := make([]string, len(names))
	for i, name := range names {
		val, _ := env.Get(name)
		lines[i] = fmt.Sprintf("%s = %d", name, val)
	}
	return strings.Join(lines, sep)
}
