// Package cli contiene los comandos del cliente de terminal petlog.
// Cada comando corre sobre una calendar.Session ya iniciada.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"pet-care-log/internal/calendar"
	"pet-care-log/internal/domain/feeding"
)

type Context struct {
	Ctx     context.Context
	Session *calendar.Session
	Out     io.Writer
	Prompt  Prompter
	State   *State
}

func (c *Context) ctx() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}

func (c *Context) normalizer() calendar.Normalizer {
	return calendar.NewNormalizer(c.Session.Location())
}

// report imprime el mensaje de la última acción, si hay.
func (c *Context) report() {
	msg := c.Session.Message()
	if msg.Kind == calendar.MessageNone {
		return
	}
	fmt.Fprintln(c.Out, messageLine(msg))
}

// parseAt interpreta --at: RFC3339, o HH:mm sobre --date (default hoy local).
// Vacío devuelve fallback.
func (c *Context) parseAt(date, at string, fallback time.Time) (time.Time, error) {
	at = strings.TrimSpace(at)
	if at == "" {
		return fallback, nil
	}
	if t, err := time.Parse(time.RFC3339, at); err == nil {
		return t.UTC(), nil
	}

	day := c.Session.Today()
	if strings.TrimSpace(date) != "" {
		d, err := calendar.ParseDay(date)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", date)
		}
		day = d
	}
	if err := feeding.ValidateScheduleTime(at); err != nil {
		return time.Time{}, fmt.Errorf("invalid --at %q (expected HH:mm or RFC3339)", at)
	}
	return c.normalizer().At(day, at)
}

// showMonth mueve la sesión al mes pedido si no es el visible.
func (c *Context) showMonth(m calendar.Month) error {
	if c.Session.Month() == m {
		return nil
	}
	return c.Session.GoTo(c.ctx(), m)
}

func (c *Context) findFeeding(id string) (feeding.Record, bool) {
	for _, r := range c.Session.Records().Feeding {
		if r.ID == id {
			return r, true
		}
	}
	return feeding.Record{}, false
}
