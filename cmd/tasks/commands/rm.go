package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/tasks/internal/app/removetask"
	"github.com/slok/tasks/internal/printer"
)

type RemoveCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	id string
}

// NewRemoveCommand returns the remove command.
func NewRemoveCommand(rootCmd *RootCommand, app *kingpin.Application) *RemoveCommand {
	c := &RemoveCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("rm", "Remove a task.")
	c.Cmd.Arg("id", "Task ID.").Required().StringVar(&c.id)

	return c
}

func (c RemoveCommand) Name() string { return c.Cmd.FullCommand() }

func (c RemoveCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	cl, err := c.rootCmd.newClient(ctx)
	if err != nil {
		return err
	}
	defer cl.Close()

	svc, err := removetask.NewService(removetask.ServiceConfig{
		Executor:   cl.exec,
		Repository: cl.repo,
		Endpoint:   cl.endpoint,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	p := printer.NewTablePrinter(c.rootCmd.Stdout)

	if err := svc.Run(ctx, removetask.Request{ID: c.id}); err != nil {
		if perr := p.PrintError(cl.errorMessage(err)); perr != nil {
			logger.Errorf("could not print error: %s", perr)
		}
		return fmt.Errorf("could not remove task: %w", err)
	}

	if err := p.PrintMessage(fmt.Sprintf("Removed task: %s", c.id)); err != nil {
		return fmt.Errorf("could not print message: %w", err)
	}

	return nil
}
