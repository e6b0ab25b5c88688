package cli

import "fmt"

type ScheduleCmd struct {
	Add    ScheduleAddCmd    `cmd:"" help:"Add a daily feeding time."`
	List   ScheduleListCmd   `cmd:"" help:"List feeding times."`
	Edit   ScheduleEditCmd   `cmd:"" help:"Change a feeding time."`
	Toggle ScheduleToggleCmd `cmd:"" help:"Pause or resume a feeding time."`
	Delete ScheduleDeleteCmd `cmd:"" help:"Delete a feeding time."`
	Next   ScheduleNextCmd   `cmd:"" help:"Show the suggested time for the next feeding."`
}

type ScheduleAddCmd struct {
	Time string `arg:"" help:"Time of day (HH:mm, 24h)."`
}

func (c *ScheduleAddCmd) Run(ctx *Context) error {
	_, err := ctx.Session.CreateSchedule(ctx.ctx(), c.Time)
	ctx.report()
	if err != nil {
		return err
	}
	fmt.Fprint(ctx.Out, renderSchedules(ctx.Session.Schedules()))
	return nil
}

type ScheduleListCmd struct{}

func (c *ScheduleListCmd) Run(ctx *Context) error {
	fmt.Fprint(ctx.Out, renderSchedules(ctx.Session.Schedules()))
	return nil
}

type ScheduleEditCmd struct {
	ID   string `arg:"" help:"Schedule ID."`
	Time string `arg:"" help:"New time of day (HH:mm, 24h)."`
}

func (c *ScheduleEditCmd) Run(ctx *Context) error {
	_, err := ctx.Session.UpdateSchedule(ctx.ctx(), c.ID, c.Time)
	ctx.report()
	return err
}

type ScheduleToggleCmd struct {
	ID string `arg:"" help:"Schedule ID."`
}

func (c *ScheduleToggleCmd) Run(ctx *Context) error {
	_, err := ctx.Session.ToggleSchedule(ctx.ctx(), c.ID)
	ctx.report()
	return err
}

type ScheduleDeleteCmd struct {
	ID string `arg:"" help:"Schedule ID."`
}

func (c *ScheduleDeleteCmd) Run(ctx *Context) error {
	_, err := ctx.Session.DeleteSchedule(ctx.ctx(), c.ID)
	ctx.report()
	return err
}

type ScheduleNextCmd struct{}

func (c *ScheduleNextCmd) Run(ctx *Context) error {
	at := ctx.Session.SuggestFeedingTime(ctx.ctx())
	fmt.Fprintln(ctx.Out, at.In(ctx.Session.Location()).Format("2006-01-02 15:04"))
	return nil
}
