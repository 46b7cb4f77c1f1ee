// Package script provides a small Lisp for building and interrogating
// surface geometry. It wraps zygomys in a sandboxed environment; each
// evaluation runs in a fresh interpreter with builtins for solid
// modeling, tessellation and quantity queries.
package script

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	zygo "github.com/glycerine/zygomys/zygo"
)

// DefaultTimeout bounds a single evaluation when Engine.Timeout is unset.
// Marching cubes at high resolution dominates runtime, so this is generous.
const DefaultTimeout = 30 * time.Second

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error or a runtime error in user code.
type EvalError struct {
	Line    int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Result holds the output of a successful evaluation: the lines emitted
// by show and report builtins, in order.
type Result struct {
	Output []string
}

// Engine evaluates geometry scripts. Every Evaluate call builds a fresh
// sandboxed interpreter, so an Engine carries no evaluation state and is
// safe for concurrent use.
type Engine struct {
	// Timeout is the hard limit for a single evaluation. Zero or negative
	// means DefaultTimeout.
	Timeout time.Duration
}

// NewEngine creates an Engine with the default timeout.
func NewEngine() *Engine {
	return &Engine{}
}

// Evaluate runs a geometry script.
//
// Return semantics:
//   - On success: result + nil errors + nil error
//   - On parse/eval failure: nil result + eval errors + nil error
//   - On fatal failure (timeout, panic): nil + nil + error
//
// On timeout the interpreter goroutine is abandoned; its eventual result
// is dropped on the buffered channel.
func (e *Engine) Evaluate(source string) (*Result, []EvalError, error) {
	timeout := e.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	type outcome struct {
		result   *Result
		evalErrs []EvalError
		err      error
	}
	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()
		res, evalErrs, err := evaluate(source)
		done <- outcome{result: res, evalErrs: evalErrs, err: err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case o := <-done:
		return o.result, o.evalErrs, o.err
	case <-timer.C:
		return nil, nil, fmt.Errorf("evaluation timed out after %s", timeout)
	}
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func evaluate(source string) (*Result, []EvalError, error) {
	// Empty source is a valid program with no output.
	if strings.TrimSpace(source) == "" {
		return &Result{}, nil, nil
	}

	// Sandbox mode prevents user code from accessing the filesystem or
	// syscalls directly; file access goes through the load-obj and
	// save-obj builtins.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	st := &state{}
	registerBuiltins(env, st)

	if err := env.LoadString(translateSource(source)); err != nil {
		return nil, parseZygomysError(err), nil
	}
	if _, err := env.Run(); err != nil {
		return nil, parseZygomysError(err), nil
	}

	return &Result{Output: st.output}, nil, nil
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError
// values, extracting line numbers from the message where possible.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	// zygomys formats parse errors as "Error on line N: <details>\n"
	if m := linePattern.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
	}
	if m := linePatternShort.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
	}

	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
