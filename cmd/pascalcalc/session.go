package main

import (
	"errors"
	"strconv"

	"github.com/mgomes/pascalcalc/calc"
)

// session evaluates REPL entries. Every entry is a separate run with a
// fresh environment; the bindings of the latest program are kept only so
// they can be shown.
type session struct {
	engine  *calc.Engine
	lastEnv *calc.Env
}

func newSession(engine *calc.Engine) *session {
	return &session{engine: engine}
}

func (s *session) evaluate(input string) (string, bool) {
	res, err := s.engine.Exec(input)
	if res.Mode == calc.ModeProgram && res.Env != nil {
		s.lastEnv = res.Env
	}
	if err != nil {
		return err.Error(), true
	}
	if res.Mode == calc.ModeExpression {
		return strconv.FormatInt(res.Value, 10), false
	}
	if res.Env.Len() == 0 {
		return "no variables assigned", false
	}
	return formatBindings(res.Env, ", "), false
}

func (s *session) reset() {
	s.lastEnv = nil
}

func (s *session) names() []string {
	if s.lastEnv == nil {
		return nil
	}
	return s.lastEnv.Names()
}

// isIncomplete reports whether src is a program that ran out of input
// before the parser was satisfied, so a read loop should keep reading.
func isIncomplete(engine *calc.Engine, src string) bool {
	if calc.DetectMode(src) != calc.ModeProgram {
		return false
	}
	_, err := engine.Parse(src)
	var parseErr *calc.ParseError
	return errors.As(err, &parseErr) && parseErr.Msg == "" && parseErr.Actual.Kind == calc.TokenEOF
}
