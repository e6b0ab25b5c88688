package cli

import (
	"fmt"
	"time"

	"pet-care-log/internal/calendar"
	"pet-care-log/internal/domain/maintenance"
)

type MaintenanceCmd struct {
	Add    MaintenanceAddCmd    `cmd:"" help:"Record a maintenance task."`
	Edit   MaintenanceEditCmd   `cmd:"" help:"Edit a maintenance record."`
	Delete MaintenanceDeleteCmd `cmd:"" help:"Delete a maintenance record."`
	List   MaintenanceListCmd   `cmd:"" help:"List maintenance in the visible month."`
}

type MaintenanceAddCmd struct {
	Type  string `arg:"" enum:"water_filter,litter_box,nail_clipping" help:"Task type (water_filter|litter_box|nail_clipping)."`
	At    string `help:"Time (HH:mm local or RFC3339). Defaults to now."`
	Date  string `help:"Local date for --at HH:mm (YYYY-MM-DD). Defaults to today."`
	Notes string `short:"n" help:"Free-form notes."`
}

func (c *MaintenanceAddCmd) Run(ctx *Context) error {
	at, err := ctx.parseAt(c.Date, c.At, time.Now().UTC().Truncate(time.Minute))
	if err != nil {
		return err
	}
	if err := ctx.showMonth(ctx.normalizer().LocalDay(at).MonthOf()); err != nil {
		return err
	}

	rec, err := ctx.Session.CreateMaintenanceRecord(ctx.ctx(), calendar.MaintenanceInput{
		Type:        maintenance.Type(c.Type),
		PerformedAt: at,
		Notes:       c.Notes,
	})
	ctx.report()
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "%s %s\n", rec.Type.Label(), mutedStyle.Render(rec.ID))
	return nil
}

type MaintenanceEditCmd struct {
	ID    string  `arg:"" help:"Maintenance record ID."`
	Type  string  `help:"New task type (water_filter|litter_box|nail_clipping)."`
	At    string  `help:"New time (HH:mm local or RFC3339)."`
	Date  string  `help:"Local date for --at HH:mm (YYYY-MM-DD)."`
	Notes *string `short:"n" help:"New notes (empty string clears them)."`
}

func (c *MaintenanceEditCmd) Run(ctx *Context) error {
	var (
		current maintenance.Record
		found   bool
	)
	for _, m := range ctx.Session.Records().Maintenance {
		if m.ID == c.ID {
			current, found = m, true
			break
		}
	}
	if !found && (c.Type == "" || c.At == "") {
		return fmt.Errorf("record %s is not in the visible month: pass both --type and --at", c.ID)
	}

	in := calendar.MaintenanceInput{Type: current.Type, Notes: current.Notes}
	if c.Type != "" {
		in.Type = maintenance.Type(c.Type)
	}
	if c.Notes != nil {
		in.Notes = *c.Notes
	}
	date := c.Date
	if date == "" && found {
		date = ctx.normalizer().LocalDay(current.PerformedAt).String()
	}
	at, err := ctx.parseAt(date, c.At, current.PerformedAt)
	if err != nil {
		return err
	}
	in.PerformedAt = at

	_, err = ctx.Session.UpdateMaintenanceRecord(ctx.ctx(), c.ID, in)
	ctx.report()
	return err
}

type MaintenanceDeleteCmd struct {
	ID string `arg:"" help:"Maintenance record ID."`
}

func (c *MaintenanceDeleteCmd) Run(ctx *Context) error {
	_, err := ctx.Session.DeleteMaintenanceRecord(ctx.ctx(), c.ID)
	ctx.report()
	return err
}

type MaintenanceListCmd struct {
	Month string `short:"m" help:"Month (YYYY-MM). Defaults to the visible month."`
}

func (c *MaintenanceListCmd) Run(ctx *Context) error {
	if c.Month != "" {
		m, err := calendar.ParseMonth(c.Month)
		if err != nil {
			return err
		}
		if err := ctx.showMonth(m); err != nil {
			return err
		}
	}

	items := ctx.Session.Records().Maintenance
	if len(items) == 0 {
		fmt.Fprintln(ctx.Out, mutedStyle.Render("No maintenance records."))
		return nil
	}
	loc := ctx.Session.Location()
	for _, m := range items {
		fmt.Fprintf(ctx.Out, "%s  %-22s %s\n", m.PerformedAt.In(loc).Format("2006-01-02 15:04"), m.Type.Label(), mutedStyle.Render(m.ID))
	}
	return nil
}
