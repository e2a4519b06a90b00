package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/tasks/internal/app/listtasks"
	"github.com/slok/tasks/internal/printer"
)

type ListCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	local  bool
	format string
}

// NewListCommand returns the list command.
func NewListCommand(rootCmd *RootCommand, app *kingpin.Application) *ListCommand {
	c := &ListCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("list", "List all tasks.")
	c.Cmd.Flag("local", "List the local task list without fetching the remote one.").BoolVar(&c.local)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c ListCommand) Name() string { return c.Cmd.FullCommand() }

func (c ListCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	cl, err := c.rootCmd.newClient(ctx)
	if err != nil {
		return err
	}
	defer cl.Close()

	svc, err := listtasks.NewService(listtasks.ServiceConfig{
		Executor:   cl.exec,
		Repository: cl.repo,
		Endpoint:   cl.endpoint,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	var p printer.Printer
	switch c.format {
	case "json":
		p = printer.NewJSONPrinter(c.rootCmd.Stdout)
	default: // table
		p = printer.NewTablePrinter(c.rootCmd.Stdout)
	}

	tasks, err := svc.Run(ctx, listtasks.Request{Local: c.local})
	if err != nil {
		if perr := p.PrintError(cl.errorMessage(err)); perr != nil {
			logger.Errorf("could not print error: %s", perr)
		}
		return fmt.Errorf("could not list tasks: %w", err)
	}

	if err := p.PrintTasks(tasks); err != nil {
		return fmt.Errorf("could not print tasks: %w", err)
	}

	return nil
}
