package cli

import (
	"fmt"

	"pet-care-log/internal/calendar"
)

type CalendarCmd struct {
	Month string `short:"m" help:"Month to show (YYYY-MM). Defaults to the current local month."`
	Prev  bool   `help:"Show the month before --month."`
	Next  bool   `help:"Show the month after --month."`
}

func (c *CalendarCmd) Run(ctx *Context) error {
	m := ctx.Session.Month()
	if c.Month != "" {
		parsed, err := calendar.ParseMonth(c.Month)
		if err != nil {
			return err
		}
		m = parsed
	}
	if err := ctx.showMonth(m); err != nil {
		return err
	}

	switch {
	case c.Prev:
		if err := ctx.Session.PreviousMonth(ctx.ctx()); err != nil {
			return err
		}
	case c.Next:
		if err := ctx.Session.NextMonth(ctx.ctx()); err != nil {
			return err
		}
	}

	fmt.Fprint(ctx.Out, RenderMonth(ctx.Session.Month(), ctx.Session.Cells()))
	if rec, ok := ctx.Session.LatestUnconsumed(); ok {
		fmt.Fprintf(ctx.Out, "%s\n", mutedStyle.Render(fmt.Sprintf(
			"Awaiting consumption: %s (%s)", rec.FeedingTime.In(ctx.Session.Location()).Format("Jan 2 15:04"), rec.ID)))
	}
	return nil
}

type DayCmd struct {
	Date string `arg:"" optional:"" help:"Local date (YYYY-MM-DD). Defaults to today."`
}

func (c *DayCmd) Run(ctx *Context) error {
	day := ctx.Session.Today()
	if c.Date != "" {
		d, err := calendar.ParseDay(c.Date)
		if err != nil {
			return err
		}
		day = d
	}
	if err := ctx.showMonth(day.MonthOf()); err != nil {
		return err
	}

	data := ctx.Session.OpenDay(day)
	fmt.Fprint(ctx.Out, RenderDay(data, ctx.Session.Location(), petNames(ctx.Session.Pets())))
	return nil
}
