package calc

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const defaultMaxDepth = 256

// Config controls parsing limits and arithmetic semantics.
type Config struct {
	MaxDepth int
	Division DivisionMode
	Logger   *slog.Logger
}

// Engine parses and evaluates source text with a fixed configuration. It
// holds no per-run state, so one Engine can serve many runs.
type Engine struct {
	config Config
}

// NewEngine constructs an Engine, filling in defaults for zero fields.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = defaultMaxDepth
	}
	switch cfg.Division {
	case "":
		cfg.Division = DivisionTruncate
	case DivisionTruncate, DivisionFloor:
	default:
		return nil, fmt.Errorf("unknown division mode %q", cfg.Division)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{config: cfg}, nil
}

func MustNewEngine(cfg Config) *Engine {
	engine, err := NewEngine(cfg)
	if err != nil {
		panic(err)
	}
	return engine
}

func (e *Engine) Config() Config {
	return e.config
}

func (e *Engine) Parse(source string) (*Program, error) {
	p, err := newParser(source, e.config.MaxDepth)
	if err != nil {
		return nil, err
	}
	return p.ParseProgram()
}

func (e *Engine) ParseExpression(source string) (Node, error) {
	p, err := newParser(source, e.config.MaxDepth)
	if err != nil {
		return nil, err
	}
	return p.ParseExpression()
}

// Eval parses and evaluates a lone expression.
func (e *Engine) Eval(source string) (int64, error) {
	log := e.runLogger(ModeExpression)
	start := time.Now()

	expr, err := e.ParseExpression(source)
	if err != nil {
		log.Debug("parse failed", "error", err)
		return 0, err
	}

	val, err := e.newExecution(source, NewEnv()).evalExpression(expr)
	if err != nil {
		log.Debug("evaluation failed", "error", err, "elapsed", time.Since(start))
		return 0, err
	}
	log.Debug("evaluation finished", "value", val, "elapsed", time.Since(start))
	return val, nil
}

// Run parses and evaluates a program in a fresh environment. The
// environment is returned even when evaluation fails, holding whatever was
// bound before the failure; it is nil only when parsing fails.
func (e *Engine) Run(source string) (*Env, error) {
	log := e.runLogger(ModeProgram)
	start := time.Now()

	program, err := e.Parse(source)
	if err != nil {
		log.Debug("parse failed", "error", err)
		return nil, err
	}
	log.Debug("parsed program", "statements", len(program.Block.Statements))

	env := NewEnv()
	if _, err := e.newExecution(source, env).eval(program); err != nil {
		log.Debug("evaluation failed", "error", err, "bindings", env.Len(), "elapsed", time.Since(start))
		return env, err
	}
	log.Debug("evaluation finished", "bindings", env.Len(), "elapsed", time.Since(start))
	return env, nil
}

// Mode tells which grammar a source text was run under.
type Mode int

const (
	ModeExpression Mode = iota
	ModeProgram
)

func (m Mode) String() string {
	if m == ModeProgram {
		return "program"
	}
	return "expression"
}

// Result holds the outcome of Exec: Value for expressions, Env for programs.
type Result struct {
	Mode  Mode
	Value int64
	Env   *Env
}

// Exec runs source as a program when it starts with BEGIN and as an
// expression otherwise.
func (e *Engine) Exec(source string) (Result, error) {
	if DetectMode(source) == ModeProgram {
		env, err := e.Run(source)
		return Result{Mode: ModeProgram, Env: env}, err
	}
	val, err := e.Eval(source)
	return Result{Mode: ModeExpression, Value: val}, err
}

// DetectMode reports ModeProgram when the first token of source is BEGIN.
func DetectMode(source string) Mode {
	tok, err := NewScanner(source).NextToken()
	if err == nil && tok.Kind == TokenBegin {
		return ModeProgram
	}
	return ModeExpression
}

func (e *Engine) newExecution(source string, env *Env) *Execution {
	return &Execution{env: env, source: source, division: e.config.Division}
}

func (e *Engine) runLogger(mode Mode) *slog.Logger {
	return e.config.Logger.With("run_id", uuid.NewString(), "mode", mode.String())
}
