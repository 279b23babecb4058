// Package gpt implements the prompt/response pipeline: it interpolates the
// document context into a prompt template, submits it with the rolling
// conversation history, and extracts script code from the reply.
package gpt

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"kritagpt/pkg/ai"
	"kritagpt/pkg/apidoc"
	"kritagpt/pkg/history"
	"kritagpt/pkg/host"
)

// historyWindow is the number of past messages included in each request.
const historyWindow = 10

// Result is the tagged outcome of a code-generation request. Remote-call
// failures are reported in Err; there is no retry.
type Result struct {
	Success bool
	Code    string
	Raw     string
	Err     string
}

// Handler manages communication with the configured model provider.
type Handler struct {
	provider    ai.Provider
	model       string
	temperature float64
	maxTokens   int
	chat        *history.Conversation
}

// NewHandler creates a handler. historySize is the bound in exchanges; each
// exchange stores a user and an assistant message.
func NewHandler(provider ai.Provider, model string, temperature float64, maxTokens, historySize int) *Handler {
	return &Handler{
		provider:    provider,
		model:       model,
		temperature: clampTemperature(temperature),
		maxTokens:   maxTokens,
		chat:        history.NewConversation(2 * historySize),
	}
}

// GetCode asks the model for script code implementing the command.
func (h *Handler) GetCode(ctx context.Context, command string, dctx host.DocumentContext) Result {
	if h == nil || h.provider == nil {
		return Result{Err: "no API key configured; set one in the settings tab"}
	}

	prompt := BuildPrompt(command, dctx)

	messages := make([]ai.Message, 0, historyWindow+2)
	messages = append(messages, ai.Message{Role: "system", Content: apidoc.SystemPrompt})
	for _, msg := range h.chat.LastN(historyWindow) {
		messages = append(messages, ai.Message{Role: msg.Role, Content: msg.Content})
	}
	messages = append(messages, ai.Message{Role: "user", Content: prompt})

	temperature := h.temperature
	maxTokens := h.maxTokens

	resp, err := h.provider.CreateChatCompletion(ctx, ai.ChatRequest{
		Model:       h.model,
		Messages:    messages,
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
	})
	if err != nil {
		slog.Error("completion_failed", "model", h.model, "error", err)
		return Result{Err: err.Error()}
	}

	code := ExtractCode(resp.Content)

	h.chat.Add("user", prompt)
	h.chat.Add("assistant", code)

	slog.Debug("completion_ok",
		"model", resp.Model,
		"response_len", len(resp.Content),
		"code_len", len(code),
	)

	return Result{Success: true, Code: code, Raw: resp.Content}
}

// BuildPrompt builds the user prompt by interpolating the document context
// into the fixed template.
func BuildPrompt(command string, ctx host.DocumentContext) string {
	var b strings.Builder

	fmt.Fprintf(&b, "User command: %s\n\n", command)

	if ctx.HasDocument {
		b.WriteString("Document context:\n")
		fmt.Fprintf(&b, "- Document: %s\n", ctx.Document.Name)
		fmt.Fprintf(&b, "- Size: %dx%d\n", ctx.Document.Width, ctx.Document.Height)

		if ctx.ActiveLayer != nil {
			fmt.Fprintf(&b, "- Active layer: '%s' (type: %s)\n", ctx.ActiveLayer.Name, ctx.ActiveLayer.Type)
		}

		if ctx.Selection != nil {
			fmt.Fprintf(&b, "- Selection: %dx%d at (%d, %d)\n",
				ctx.Selection.Width, ctx.Selection.Height, ctx.Selection.X, ctx.Selection.Y)
		}
	} else {
		b.WriteString("Note: No document is currently open.\n")
	}

	b.WriteString("\nGenerate Go script code to execute this command:")

	return b.String()
}

// SetModel updates the model used for subsequent requests.
func (h *Handler) SetModel(model string) { h.model = model }

// Model returns the current model.
func (h *Handler) Model() string { return h.model }

// SetTemperature updates the sampling temperature, clamped to [0, 1].
func (h *Handler) SetTemperature(t float64) { h.temperature = clampTemperature(t) }

// Temperature returns the current sampling temperature.
func (h *Handler) Temperature() float64 { return h.temperature }

// ClearHistory drops the rolling conversation.
func (h *Handler) ClearHistory() { h.chat.Clear() }

// HistoryLen returns the number of stored conversation messages.
func (h *Handler) HistoryLen() int { return h.chat.Len() }

func clampTemperature(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
