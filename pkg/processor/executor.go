// Package processor gates generated script code: a denylist safety filter
// plus syntax check, then interpreted execution against the host document.
package processor

import (
	"fmt"
	"log/slog"
	"reflect"
	"runtime/debug"
	"strings"

	"kritagpt/pkg/host"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// ExecResult is the tagged outcome of an execution attempt.
type ExecResult struct {
	Success  bool
	Message  string
	Code     string
	Executed bool
	Err      string
	// Trace carries the stack for runtime failures, surfaced when the
	// show-code toggle is on.
	Trace string
}

// Operations that only make sense with an open document.
var docRequiredOps = []string{
	"ActiveNode",
	"CreateNode",
	"Selection",
	"RootNode",
	"SetSelection",
	"RefreshProjection",
}

// Executor runs validated script code in an embedded interpreter with the
// krita package bound to the host application.
type Executor struct {
	app   host.App
	saved *savedState
}

type savedState struct {
	document   string
	activeNode string
}

// NewExecutor creates an executor bound to the given host app.
func NewExecutor(app host.App) *Executor {
	return &Executor{app: app}
}

// Execute validates and runs the code. With autoExecute off the code is
// returned untouched. Runtime failures are caught and surfaced with a
// stack; document state is not rolled back.
func (e *Executor) Execute(code string, autoExecute bool) ExecResult {
	if !autoExecute {
		return ExecResult{
			Success: true,
			Message: "Code ready for execution (auto-execute disabled)",
			Code:    code,
		}
	}

	if v := Validate(code); !v.Valid {
		slog.Info("script_rejected", "reason", v.Reason)
		return ExecResult{Err: v.Reason, Code: code}
	}

	if needsDocument(code) && e.app.ActiveDocument() == nil {
		return ExecResult{
			Err:  "No active document. Please open or create a document first.",
			Code: code,
		}
	}

	e.saveState()

	if err, trace := e.run(code); err != nil {
		slog.Error("script_failed", "error", err)
		return ExecResult{
			Err:      err.Error(),
			Trace:    trace,
			Code:     code,
			Executed: true,
		}
	}

	if doc := e.app.ActiveDocument(); doc != nil {
		doc.RefreshProjection()
	}

	slog.Debug("script_ok", "code_len", len(code))
	return ExecResult{
		Success:  true,
		Message:  "Command executed successfully",
		Code:     code,
		Executed: true,
	}
}

// run evaluates the wrapped script in a fresh interpreter.
func (e *Executor) run(code string) (err error, trace string) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
			trace = string(debug.Stack())
		}
	}()

	i := interp.New(interp.Options{})
	if uerr := i.Use(stdlib.Symbols); uerr != nil {
		return fmt.Errorf("load stdlib: %w", uerr), ""
	}
	if uerr := i.Use(e.exports()); uerr != nil {
		return fmt.Errorf("bind host symbols: %w", uerr), ""
	}

	if _, eerr := i.Eval(wrapScript(code)); eerr != nil {
		return eerr, ""
	}

	v, eerr := i.Eval("main.run")
	if eerr != nil {
		return eerr, ""
	}
	fn, ok := v.Interface().(func())
	if !ok {
		return fmt.Errorf("script entry has unexpected type %T", v.Interface()), ""
	}

	fn()
	return nil, ""
}

// exports exposes the host object model to scripts as the krita package.
func (e *Executor) exports() interp.Exports {
	return interp.Exports{
		"krita/krita": {
			"Instance":     reflect.ValueOf(func() host.App { return e.app }),
			"NewSelection": reflect.ValueOf(host.NewSelection),
			"App":          reflect.ValueOf((*host.App)(nil)),
			"Document":     reflect.ValueOf((*host.Document)(nil)),
			"Node":         reflect.ValueOf((*host.Node)(nil)),
			"Selection":    reflect.ValueOf((*host.Selection)(nil)),
		},
	}
}

// wrapScript turns the statement snippet into an interpretable file.
// Imports are injected only when referenced so nothing is left unused.
func wrapScript(code string) string {
	var b strings.Builder
	b.WriteString("package main\n\nimport (\n")
	if strings.Contains(code, "krita.") {
		b.WriteString("\t\"krita\"\n")
	}
	for _, pkg := range []string{"fmt", "math", "strings"} {
		if strings.Contains(code, pkg+".") {
			b.WriteString("\t\"" + pkg + "\"\n")
		}
	}
	b.WriteString(")\n\nfunc run() {\n")
	b.WriteString(code)
	b.WriteString("\n}\n")
	return b.String()
}

func needsDocument(code string) bool {
	for _, op := range docRequiredOps {
		if strings.Contains(code, op) {
			return true
		}
	}
	return false
}

// saveState records a minimal snapshot reference before execution. The
// host's own undo stack is the real recovery path; nothing is restored
// from here.
func (e *Executor) saveState() {
	doc := e.app.ActiveDocument()
	if doc == nil {
		e.saved = nil
		return
	}
	state := &savedState{document: doc.Name()}
	if node := doc.ActiveNode(); node != nil {
		state.activeNode = node.Name()
	}
	e.saved = state
}
