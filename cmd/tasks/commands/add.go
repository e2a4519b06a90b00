package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/tasks/internal/app/newtask"
	"github.com/slok/tasks/internal/printer"
)

type AddCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	text []string
}

// NewAddCommand returns the add command.
func NewAddCommand(rootCmd *RootCommand, app *kingpin.Application) *AddCommand {
	c := &AddCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("add", "Add a new task.")
	c.Cmd.Arg("text", "Task text.").Required().StringsVar(&c.text)

	return c
}

func (c AddCommand) Name() string { return c.Cmd.FullCommand() }

func (c AddCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	cl, err := c.rootCmd.newClient(ctx)
	if err != nil {
		return err
	}
	defer cl.Close()

	svc, err := newtask.NewService(newtask.ServiceConfig{
		Executor:   cl.exec,
		Repository: cl.repo,
		Endpoint:   cl.endpoint,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	p := printer.NewTablePrinter(c.rootCmd.Stdout)

	task, err := svc.Run(ctx, newtask.Request{Text: strings.Join(c.text, " ")})
	if err != nil {
		// Show the request error as the user would see it.
		if perr := p.PrintError(cl.errorMessage(err)); perr != nil {
			logger.Errorf("could not print error: %s", perr)
		}
		return fmt.Errorf("could not add task: %w", err)
	}

	if err := p.PrintMessage(fmt.Sprintf("Added task: %s", task.ID)); err != nil {
		return fmt.Errorf("could not print message: %w", err)
	}

	return nil
}
