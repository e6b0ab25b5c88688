package cli

import (
	"fmt"
	"strings"
	"time"
)

type FeedCmd struct {
	Add       FeedAddCmd       `cmd:"" help:"Record a feeding."`
	Edit      FeedEditCmd      `cmd:"" help:"Change feed type or time of a feeding."`
	Toggle    FeedToggleCmd    `cmd:"" help:"Cycle consumption: unknown, eaten, left."`
	Delete    FeedDeleteCmd    `cmd:"" help:"Delete a feeding record."`
	Reconcile FeedReconcileCmd `cmd:"" help:"Answer the pending 'did it eat?' question."`
}

type FeedAddCmd struct {
	FeedType string `short:"t" required:"" help:"Feed type ID."`
	At       string `help:"Time (HH:mm local or RFC3339). Defaults to the next unrecorded schedule."`
	Date     string `help:"Local date for --at HH:mm (YYYY-MM-DD). Defaults to today."`
}

func (c *FeedAddCmd) Run(ctx *Context) error {
	var fallback time.Time
	if strings.TrimSpace(c.At) == "" {
		fallback = ctx.Session.SuggestFeedingTime(ctx.ctx())
	}
	at, err := ctx.parseAt(c.Date, c.At, fallback)
	if err != nil {
		return err
	}
	if err := ctx.showMonth(ctx.normalizer().LocalDay(at).MonthOf()); err != nil {
		return err
	}

	rec, err := ctx.Session.CreateFeedingRecord(ctx.ctx(), c.FeedType, at)
	ctx.report()
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "%s %s\n", rec.FeedingTime.In(ctx.Session.Location()).Format("2006-01-02 15:04"), mutedStyle.Render(rec.ID))
	return nil
}

type FeedEditCmd struct {
	ID       string `arg:"" help:"Feeding record ID."`
	FeedType string `short:"t" help:"New feed type ID."`
	At       string `help:"New time (HH:mm local or RFC3339)."`
	Date     string `help:"Local date for --at HH:mm (YYYY-MM-DD)."`
}

func (c *FeedEditCmd) Run(ctx *Context) error {
	current, found := ctx.findFeeding(c.ID)
	if !found && (c.FeedType == "" || c.At == "") {
		return fmt.Errorf("record %s is not in the visible month: pass both --feed-type and --at", c.ID)
	}

	feedType := strings.TrimSpace(c.FeedType)
	if feedType == "" {
		feedType = current.FeedTypeID
	}
	date := c.Date
	if date == "" && found {
		date = ctx.normalizer().LocalDay(current.FeedingTime).String()
	}
	at, err := ctx.parseAt(date, c.At, current.FeedingTime)
	if err != nil {
		return err
	}

	_, err = ctx.Session.UpdateFeedingRecord(ctx.ctx(), c.ID, feedType, at)
	ctx.report()
	return err
}

type FeedToggleCmd struct {
	ID string `arg:"" help:"Feeding record ID."`
}

func (c *FeedToggleCmd) Run(ctx *Context) error {
	if _, found := ctx.findFeeding(c.ID); !found {
		return fmt.Errorf("record %s is not in the visible month", c.ID)
	}
	rec, err := ctx.Session.ToggleConsumption(ctx.ctx(), c.ID)
	ctx.report()
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "%s %s\n", rec.ID, consumptionMark(rec.Consumed))
	return nil
}

type FeedDeleteCmd struct {
	ID string `arg:"" help:"Feeding record ID."`
}

func (c *FeedDeleteCmd) Run(ctx *Context) error {
	_, err := ctx.Session.DeleteFeedingRecord(ctx.ctx(), c.ID)
	ctx.report()
	return err
}

type FeedReconcileCmd struct {
	Answer string `arg:"" optional:"" help:"eaten or left. Prompts when omitted."`
}

func (c *FeedReconcileCmd) Run(ctx *Context) error {
	if _, ok := ctx.Session.PendingReconciliation(); !ok {
		fmt.Fprintln(ctx.Out, mutedStyle.Render("Nothing to reconcile."))
		return nil
	}

	switch strings.ToLower(strings.TrimSpace(c.Answer)) {
	case "":
		return Reconcile(ctx)
	case "eaten":
		_, err := ctx.Session.ResolveReconciliation(ctx.ctx(), true)
		ctx.report()
		return err
	case "left":
		_, err := ctx.Session.ResolveReconciliation(ctx.ctx(), false)
		ctx.report()
		return err
	default:
		return fmt.Errorf("answer must be eaten or left, got %q", c.Answer)
	}
}

type FeedTypeCmd struct {
	Add  FeedTypeAddCmd  `cmd:"" help:"Add a feed type."`
	List FeedTypeListCmd `cmd:"" help:"List feed types."`
}

type FeedTypeAddCmd struct {
	Manufacturer string `arg:"" help:"Manufacturer."`
	Product      string `arg:"" help:"Product name."`
}

func (c *FeedTypeAddCmd) Run(ctx *Context) error {
	ft, err := ctx.Session.CreateFeedType(ctx.ctx(), c.Manufacturer, c.Product)
	ctx.report()
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "%s %s\n", ft.Label(), mutedStyle.Render(ft.ID))
	return nil
}

type FeedTypeListCmd struct{}

func (c *FeedTypeListCmd) Run(ctx *Context) error {
	fmt.Fprint(ctx.Out, renderFeedTypes(ctx.Session.FeedTypes()))
	return nil
}
