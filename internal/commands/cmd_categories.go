package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

type CategoriesCmd struct {
	flags *Flags
	app   *App
}

// NewCategoriesCmd creates a new categories command
func NewCategoriesCmd(flags *Flags, app *App) *CategoriesCmd {
	return &CategoriesCmd{flags: flags, app: app}
}

// Register adds the categories command to the application
func (cmd *CategoriesCmd) Register(a *cli.Command) *cli.Command {
	a.Commands = append(a.Commands, &cli.Command{
		Name:   "categories",
		Usage:  "List categories in first-use order",
		Action: cmd.run,
	})
	return a
}

func (cmd *CategoriesCmd) run(_ context.Context, c *cli.Command) error {
	out := c.Root().Writer
	for _, name := range cmd.app.Tracker.Categories() {
		if _, err := fmt.Fprintln(out, name); err != nil {
			return err
		}
	}
	return nil
}
