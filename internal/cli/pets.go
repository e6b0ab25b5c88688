package cli

import (
	"fmt"
	"time"

	"pet-care-log/internal/calendar"
)

type PetCmd struct {
	Add    PetAddCmd    `cmd:"" help:"Add a pet."`
	Rename PetRenameCmd `cmd:"" help:"Rename a pet."`
	Delete PetDeleteCmd `cmd:"" help:"Delete a pet and its weight records."`
	List   PetListCmd   `cmd:"" help:"List pets (* marks the selected one)."`
	Select PetSelectCmd `cmd:"" help:"Select the pet used by weight commands."`
}

type PetAddCmd struct {
	Name string `arg:"" help:"Pet name."`
}

func (c *PetAddCmd) Run(ctx *Context) error {
	p, err := ctx.Session.CreatePet(ctx.ctx(), c.Name)
	ctx.report()
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "%s %s\n", p.Name, mutedStyle.Render(p.ID))
	return ctx.saveSelection()
}

type PetRenameCmd struct {
	ID   string `arg:"" help:"Pet ID."`
	Name string `arg:"" help:"New name."`
}

func (c *PetRenameCmd) Run(ctx *Context) error {
	_, err := ctx.Session.UpdatePet(ctx.ctx(), c.ID, c.Name)
	ctx.report()
	return err
}

type PetDeleteCmd struct {
	ID string `arg:"" help:"Pet ID."`
}

func (c *PetDeleteCmd) Run(ctx *Context) error {
	deleted, err := ctx.Session.DeletePet(ctx.ctx(), c.ID)
	ctx.report()
	if err != nil || !deleted {
		return err
	}
	return ctx.saveSelection()
}

type PetListCmd struct{}

func (c *PetListCmd) Run(ctx *Context) error {
	selected, _ := ctx.Session.SelectedPet()
	fmt.Fprint(ctx.Out, renderPets(ctx.Session.Pets(), selected.ID))
	return nil
}

type PetSelectCmd struct {
	ID string `arg:"" help:"Pet ID."`
}

func (c *PetSelectCmd) Run(ctx *Context) error {
	if !ctx.Session.SelectPet(c.ID) {
		return fmt.Errorf("unknown pet %s", c.ID)
	}
	return ctx.saveSelection()
}

// saveSelection guarda la mascota seleccionada para la próxima invocación.
func (c *Context) saveSelection() error {
	if c.State == nil {
		return nil
	}
	p, _ := c.Session.SelectedPet()
	c.State.SelectedPet = p.ID
	return c.State.Save()
}

type WeightCmd struct {
	Add  WeightAddCmd  `cmd:"" help:"Record a weight for the selected pet."`
	List WeightListCmd `cmd:"" help:"List weights in the visible month."`
}

type WeightAddCmd struct {
	Weight float64 `arg:"" help:"Weight in kg."`
	Date   string  `help:"Measured date (YYYY-MM-DD). Defaults to today."`
	Pet    string  `help:"Pet ID. Defaults to the selected pet."`
}

func (c *WeightAddCmd) Run(ctx *Context) error {
	petID := c.Pet
	if petID == "" {
		p, _ := ctx.Session.SelectedPet()
		petID = p.ID
	}

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

	w, err := ctx.Session.CreateWeightRecord(ctx.ctx(), petID, c.Weight, day.Date())
	ctx.report()
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "%s %.2f kg %s\n", w.MeasuredDate.Format(time.DateOnly), w.Weight, mutedStyle.Render(w.ID))
	return nil
}

type WeightListCmd struct {
	Month string `short:"m" help:"Month (YYYY-MM). Defaults to the visible month."`
	All   bool   `help:"Include every pet, not only the selected one."`
}

func (c *WeightListCmd) Run(ctx *Context) error {
	if c.Month != "" {
		m, err := calendar.ParseMonth(c.Month)
		if err != nil {
			return err
		}
		if err := ctx.showMonth(m); err != nil {
			return err
		}
	}

	selected, _ := ctx.Session.SelectedPet()
	names := petNames(ctx.Session.Pets())
	var n int
	for _, w := range ctx.Session.Records().Weights {
		if !c.All && w.PetID != selected.ID {
			continue
		}
		fmt.Fprintf(ctx.Out, "%s  %-12s %.2f kg  %s\n", w.MeasuredDate.Format(time.DateOnly), names[w.PetID], w.Weight, mutedStyle.Render(w.ID))
		n++
	}
	if n == 0 {
		fmt.Fprintln(ctx.Out, mutedStyle.Render("No weight records."))
	}
	return nil
}
