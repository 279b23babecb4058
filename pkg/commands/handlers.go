package commands

import (
	"fmt"
	"strconv"
	"strings"

	"kritagpt/pkg/ai"
	"kritagpt/pkg/apidoc"
	"kritagpt/pkg/config"
)

// HelpHandler handles the /help command.
type HelpHandler struct{}

func (h *HelpHandler) Name() string        { return "/help" }
func (h *HelpHandler) Description() string { return "Show help" }

func (h *HelpHandler) Execute(ctx *Context, args []string) *Result {
	return &Result{
		Title: "Help",
		Content: `Type a natural-language command and press Enter to run it.

Slash commands:
  /help            - Show this help
  /clear           - Clear the output panel
  /reset           - Clear conversation and command history
  /models          - List models for the current provider
  /model <name>    - Switch model
  /provider <name> - Switch provider (openai, anthropic, google)
  /temp <value>    - Set temperature (0.0 - 1.0)
  /history         - Show command history

Shortcuts:
  Enter   - Execute command
  Up/Down - Recall command history (empty input)
  Tab     - Next tab
  Ctrl+C  - Quit`,
	}
}

// ClearHandler handles the /clear command.
type ClearHandler struct{}

func (h *ClearHandler) Name() string        { return "/clear" }
func (h *ClearHandler) Description() string { return "Clear the output panel" }

func (h *ClearHandler) Execute(ctx *Context, args []string) *Result {
	return &Result{Title: "Clear", Action: ResultActionClearOutput}
}

// ResetHandler handles the /reset command.
type ResetHandler struct{}

func (h *ResetHandler) Name() string        { return "/reset" }
func (h *ResetHandler) Description() string { return "Clear conversation and command history" }

func (h *ResetHandler) Execute(ctx *Context, args []string) *Result {
	if ctx.Handler != nil {
		ctx.Handler.ClearHistory()
	}
	if ctx.Commands != nil {
		ctx.Commands.Clear()
	}
	return &Result{Title: "Reset", Content: "History cleared."}
}

// ModelsHandler handles the /models command.
type ModelsHandler struct{}

func (h *ModelsHandler) Name() string        { return "/models" }
func (h *ModelsHandler) Description() string { return "List models for the current provider" }

func (h *ModelsHandler) Execute(ctx *Context, args []string) *Result {
	provider := ctx.Config.APIProvider
	models := apidoc.Models[provider]
	if len(models) == 0 {
		return &Result{
			Title:   "Models",
			Content: "No model catalog for provider " + provider,
			IsError: true,
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Models for %s:\n\n", provider)
	for _, m := range models {
		marker := "  "
		if m.Name == ctx.Config.Model {
			marker = "* "
		}
		fmt.Fprintf(&sb, "%s%-28s %s (~$%.5f/1k tokens)\n", marker, m.Name, m.Description, m.CostPer1K)
	}
	return &Result{Title: "Models", Content: sb.String()}
}

// ModelHandler handles the /model command.
type ModelHandler struct{}

func (h *ModelHandler) Name() string        { return "/model" }
func (h *ModelHandler) Description() string { return "Switch model" }

func (h *ModelHandler) Execute(ctx *Context, args []string) *Result {
	if len(args) != 1 {
		return &Result{Title: "Error", Content: "Usage: /model <name>", IsError: true}
	}

	ctx.Config.Model = args[0]
	if ctx.Handler != nil {
		ctx.Handler.SetModel(args[0])
	}
	if err := config.Save(ctx.ConfigPath, *ctx.Config); err != nil {
		return &Result{Title: "Error", Content: "Failed to save config: " + err.Error(), IsError: true}
	}
	return &Result{Title: "Model", Content: "Model set to " + args[0]}
}

// ProviderHandler handles the /provider command.
type ProviderHandler struct{}

func (h *ProviderHandler) Name() string        { return "/provider" }
func (h *ProviderHandler) Description() string { return "Switch provider" }

func (h *ProviderHandler) Execute(ctx *Context, args []string) *Result {
	if len(args) != 1 {
		return &Result{Title: "Error", Content: "Usage: /provider <openai|anthropic|google>", IsError: true}
	}

	name := strings.ToLower(args[0])
	if _, ok := ai.ValidateProviderType(name); !ok {
		return &Result{Title: "Error", Content: "Unknown provider: " + name, IsError: true}
	}

	ctx.Config.APIProvider = name
	// Fall back to the provider's default model so a stale model id from
	// the previous provider is not sent.
	if def := apidoc.DefaultModel(name); def != "" {
		ctx.Config.Model = def
	}
	if err := config.Save(ctx.ConfigPath, *ctx.Config); err != nil {
		return &Result{Title: "Error", Content: "Failed to save config: " + err.Error(), IsError: true}
	}
	return &Result{
		Title:   "Provider",
		Content: fmt.Sprintf("Provider set to %s (model %s)", name, ctx.Config.Model),
		Action:  ResultActionReinitProvider,
	}
}

// TempHandler handles the /temp command.
type TempHandler struct{}

func (h *TempHandler) Name() string        { return "/temp" }
func (h *TempHandler) Description() string { return "Set temperature" }

func (h *TempHandler) Execute(ctx *Context, args []string) *Result {
	if len(args) != 1 {
		return &Result{Title: "Error", Content: "Usage: /temp <0.0-1.0>", IsError: true}
	}

	value, err := strconv.ParseFloat(args[0], 64)
	if err != nil || value < 0 || value > 1 {
		return &Result{Title: "Error", Content: "Temperature must be between 0.0 and 1.0", IsError: true}
	}

	ctx.Config.Temperature = value
	if ctx.Handler != nil {
		ctx.Handler.SetTemperature(value)
	}
	if err := config.Save(ctx.ConfigPath, *ctx.Config); err != nil {
		return &Result{Title: "Error", Content: "Failed to save config: " + err.Error(), IsError: true}
	}
	return &Result{Title: "Temperature", Content: fmt.Sprintf("Temperature set to %.2f", value)}
}

// HistoryHandler handles the /history command.
type HistoryHandler struct{}

func (h *HistoryHandler) Name() string        { return "/history" }
func (h *HistoryHandler) Description() string { return "Show command history" }

func (h *HistoryHandler) Execute(ctx *Context, args []string) *Result {
	if ctx.Commands == nil || ctx.Commands.Len() == 0 {
		return &Result{Title: "History", Content: "No commands in history yet."}
	}

	var sb strings.Builder
	sb.WriteString("Command history:\n\n")
	for i, entry := range ctx.Commands.All() {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, entry)
	}
	return &Result{Title: "History", Content: sb.String()}
}
