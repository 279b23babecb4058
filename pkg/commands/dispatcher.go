// Package commands implements the slash commands handled locally in the
// input box, without a round trip to the model.
package commands

import (
	"strings"

	"kritagpt/pkg/config"
	"kritagpt/pkg/gpt"
	"kritagpt/pkg/history"
)

// ResultAction tells the UI to perform a follow-up action.
type ResultAction int

const (
	ResultActionNone ResultAction = iota
	ResultActionClearOutput
	ResultActionReinitProvider
)

// Result represents the result of a command execution.
type Result struct {
	Title   string
	Content string
	Action  ResultAction
	IsError bool
}

// Context contains the state slash commands operate on.
type Context struct {
	Config     *config.Config
	ConfigPath string
	Handler    *gpt.Handler
	Commands   *history.CommandLog
}

// Handler is the interface for command handlers.
type Handler interface {
	Execute(ctx *Context, args []string) *Result
	Name() string
	Description() string
}

// Dispatcher routes slash commands to their handlers.
type Dispatcher struct {
	handlers map[string]Handler
	order    []string
}

// NewDispatcher creates a dispatcher with the default handlers registered.
func NewDispatcher() *Dispatcher {
	d := &Dispatcher{
		handlers: make(map[string]Handler),
	}

	d.Register(&HelpHandler{})
	d.Register(&ClearHandler{})
	d.Register(&ResetHandler{})
	d.Register(&ModelsHandler{})
	d.Register(&ModelHandler{})
	d.Register(&ProviderHandler{})
	d.Register(&TempHandler{})
	d.Register(&HistoryHandler{})

	return d
}

// Register adds a handler to the dispatcher.
func (d *Dispatcher) Register(h Handler) {
	if _, exists := d.handlers[h.Name()]; !exists {
		d.order = append(d.order, h.Name())
	}
	d.handlers[h.Name()] = h
}

// IsCommand reports whether the input line is a slash command.
func (d *Dispatcher) IsCommand(input string) bool {
	return strings.HasPrefix(strings.TrimSpace(input), "/")
}

// Dispatch parses and executes a command line.
func (d *Dispatcher) Dispatch(input string, ctx *Context) *Result {
	fields := strings.Fields(strings.TrimSpace(input))
	if len(fields) == 0 {
		return &Result{Title: "Error", Content: "Empty command", IsError: true}
	}

	handler, ok := d.handlers[fields[0]]
	if !ok {
		return &Result{
			Title:   "Error",
			Content: "Unknown command: " + fields[0] + " (try /help)",
			IsError: true,
		}
	}

	return handler.Execute(ctx, fields[1:])
}

// Handlers returns the registered handlers in registration order.
func (d *Dispatcher) Handlers() []Handler {
	out := make([]Handler, 0, len(d.order))
	for _, name := range d.order {
		out = append(out, d.handlers[name])
	}
	return out
}
