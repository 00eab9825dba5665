package resolvers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Desarso/tradesummit/models"
)

// DefaultRemoteTimeout bounds a single remote generation.
const DefaultRemoteTimeout = 15 * time.Second

// Outcomes reported to RemoteConfig.Observe.
const (
	OutcomeOK       = "ok"
	OutcomeError    = "error"
	OutcomeTimeout  = "timeout"
	OutcomeCanceled = "canceled"
	OutcomeEmpty    = "empty"
)

var errEmptyReply = errors.New("remote returned empty text")

// TextGenerator produces free-form text for a prompt.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type RemoteConfig struct {
	Persona      string
	Timeout      time.Duration
	HistoryLimit int
	Logger       *zap.Logger
	// Observe is called once per Resolve with one of the Outcome values.
	Observe func(outcome string)
}

// Remote asks a text generator for the reply and derives quick replies and
// buttons locally. It never returns an error: every failure becomes Fallback.
type Remote struct {
	generator TextGenerator
	cfg       RemoteConfig
}

func NewRemote(generator TextGenerator, cfg RemoteConfig) *Remote {
	if cfg.Persona == "" {
		cfg.Persona = AriaPersona
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultRemoteTimeout
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = DefaultHistoryLimit
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Remote{generator: generator, cfg: cfg}
}

// Select returns the remote resolver when a generator is configured and
// local otherwise. The choice is made once.
func Select(generator TextGenerator, cfg RemoteConfig, local Resolver) Resolver {
	if generator == nil {
		return local
	}
	return NewRemote(generator, cfg)
}

type generation struct {
	text string
	err  error
}

func (r *Remote) Resolve(ctx context.Context, userText string, audience models.Audience, history []models.HistoryTurn) (models.ResolverResult, error) {
	prompt := BuildPrompt(r.cfg.Persona, userText, audience, TrimHistory(history, r.cfg.HistoryLimit))

	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	// Buffered so the generator goroutine never blocks after a timeout.
	done := make(chan generation, 1)
	go func() {
		text, err := r.generator.GenerateText(ctx, prompt)
		done <- generation{text: text, err: err}
	}()

	var gen generation
	select {
	case gen = <-done:
	case <-ctx.Done():
		r.fail(failureOutcome(ctx.Err()), audience, fmt.Errorf("remote generation: %w", ctx.Err()))
		return Fallback(), nil
	}

	if gen.err != nil {
		r.fail(failureOutcome(gen.err), audience, gen.err)
		return Fallback(), nil
	}

	content := strings.TrimSpace(gen.text)
	if content == "" {
		r.fail(OutcomeEmpty, audience, errEmptyReply)
		return Fallback(), nil
	}

	r.observe(OutcomeOK)
	return models.ResolverResult{
		Content:       content,
		Suggestions:   ContextSuggestions(userText, audience, content),
		ActionButtons: ContextActionButtons(userText, audience),
	}, nil
}

func failureOutcome(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return OutcomeTimeout
	case errors.Is(err, context.Canceled):
		return OutcomeCanceled
	}
	return OutcomeError
}

func (r *Remote) fail(outcome string, audience models.Audience, err error) {
	r.cfg.Logger.Warn("remote resolver failed, using fallback reply",
		zap.String("outcome", outcome),
		zap.String("audience", string(audience)),
		zap.Error(err))
	r.observe(outcome)
}

func (r *Remote) observe(outcome string) {
	if r.cfg.Observe != nil {
		r.cfg.Observe(outcome)
	}
}

func audienceDescription(audience models.Audience) string {
	switch audience {
	case models.AudienceCustomer:
		return "Existing Customer (they already use TradeSummit)"
	case models.AudienceAdmin:
		return "Administrator (they operate the TradeSummit platform)"
	default:
		return "Prospect/Potential Customer (they are evaluating TradeSummit)"
	}
}

// BuildPrompt renders the remote prompt. history must already be trimmed and
// must not include userText.
func BuildPrompt(persona, userText string, audience models.Audience, history []models.HistoryTurn) string {
	var b strings.Builder
	b.WriteString(persona)
	b.WriteString("\n\nUSER TYPE: ")
	b.WriteString(audienceDescription(audience))
	b.WriteString("\n")
	if len(history) > 0 {
		b.WriteString("\nRECENT CONVERSATION:\n")
		for _, turn := range history {
			fmt.Fprintf(&b, "%s: %s\n", strings.ToUpper(string(turn.Role)), turn.Content)
		}
	}
	fmt.Fprintf(&b, "\nCURRENT USER MESSAGE: %q\n\n", userText)
	b.WriteString(responseInstructions)
	return b.String()
}
