package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pet-care-log/internal/calendar"
	"pet-care-log/internal/domain/feeding"

	"github.com/charmbracelet/huh"
)

// Answer es la respuesta al aviso "¿comió?".
type Answer int

const (
	AnswerLater Answer = iota
	AnswerConsumed
	AnswerNotConsumed
)

// Prompter hace las preguntas interactivas. También sirve de calendar.Confirmer.
type Prompter interface {
	calendar.Confirmer
	Consumption(ctx context.Context, rec feeding.Record, loc *time.Location) (Answer, error)
}

// HuhPrompter pregunta en la terminal con formularios huh.
type HuhPrompter struct{}

var _ Prompter = HuhPrompter{}

func (HuhPrompter) Confirm(ctx context.Context, prompt string) (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(prompt).
				Affirmative("Delete").
				Negative("Cancel").
				Value(&ok),
		),
	).RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}

func (HuhPrompter) Consumption(ctx context.Context, rec feeding.Record, loc *time.Location) (Answer, error) {
	label := "feeding"
	if rec.FeedType != nil {
		label = rec.FeedType.Label()
	}

	answer := AnswerLater
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[Answer]().
				Title(fmt.Sprintf("Did your pet eat the %s at %s?", label, rec.FeedingTime.In(loc).Format("Mon Jan 2 15:04"))).
				Options(
					huh.NewOption("Yes, it was eaten", AnswerConsumed),
					huh.NewOption("No, it was left", AnswerNotConsumed),
					huh.NewOption("Ask me later", AnswerLater),
				).
				Value(&answer),
		),
	).RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		return AnswerLater, nil
	}
	return answer, err
}

// Reconcile corre el aviso de arranque: si la sesión tiene un registro
// pendiente, pregunta una vez y lo resuelve. "Later" lo deja abierto.
func Reconcile(c *Context) error {
	rec, ok := c.Session.PendingReconciliation()
	if !ok || c.Prompt == nil {
		return nil
	}

	answer, err := c.Prompt.Consumption(c.ctx(), rec, c.Session.Location())
	if err != nil {
		return err
	}
	switch answer {
	case AnswerConsumed:
		_, err = c.Session.ResolveReconciliation(c.ctx(), true)
	case AnswerNotConsumed:
		_, err = c.Session.ResolveReconciliation(c.ctx(), false)
	default:
		return nil
	}
	c.report()
	return err
}
