package resolvers

import (
	"context"
	"time"

	"github.com/Desarso/tradesummit/models"
)

// DefaultHistoryLimit is the number of trailing turns sent to a remote resolver.
const DefaultHistoryLimit = 6

// Resolver turns one user message into a structured agent reply.
type Resolver interface {
	Resolve(ctx context.Context, userText string, audience models.Audience, history []models.HistoryTurn) (models.ResolverResult, error)
}

// ResolverFunc adapts a plain function to the Resolver interface.
type ResolverFunc func(ctx context.Context, userText string, audience models.Audience, history []models.HistoryTurn) (models.ResolverResult, error)

func (f ResolverFunc) Resolve(ctx context.Context, userText string, audience models.Audience, history []models.HistoryTurn) (models.ResolverResult, error) {
	return f(ctx, userText, audience, history)
}

const fallbackContent = "Oops! I'm having a small technical hiccup right now. 😅 But don't worry - I'm still here to help! " +
	"You can also reach our team directly at support@tradesummit.ai or I can connect you with a human agent. What would you prefer?"

// Fallback is the reply used whenever a resolver cannot produce an answer.
func Fallback() models.ResolverResult {
	return models.ResolverResult{
		Content:     fallbackContent,
		Suggestions: []string{"Try asking again", "Contact human support", "Email support team", "Technical help"},
	}
}

// TrimHistory returns the last limit turns of history. A limit <= 0 keeps everything.
func TrimHistory(history []models.HistoryTurn, limit int) []models.HistoryTurn {
	if limit <= 0 || len(history) <= limit {
		return history
	}
	return history[len(history)-limit:]
}

// Delayed holds every reply back for Delay so a local resolver feels like
// it is thinking. Cancellation of ctx ends the wait early with ctx.Err().
type Delayed struct {
	Resolver Resolver
	Delay    time.Duration
}

func (d Delayed) Resolve(ctx context.Context, userText string, audience models.Audience, history []models.HistoryTurn) (models.ResolverResult, error) {
	if d.Delay > 0 {
		timer := time.NewTimer(d.Delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return models.ResolverResult{}, ctx.Err()
		}
	}
	return d.Resolver.Resolve(ctx, userText, audience, history)
}
