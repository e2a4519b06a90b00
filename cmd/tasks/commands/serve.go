package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/oklog/run"

	"github.com/slok/tasks/internal/conventions"
	"github.com/slok/tasks/internal/firebase/fake"
)

const serveShutdownTimeout = 5 * time.Second

// ServeCommand runs a local fake task database.
type ServeCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	listenAddr string
}

// NewServeCommand returns the serve command.
func NewServeCommand(rootCmd *RootCommand, app *kingpin.Application) *ServeCommand {
	c := &ServeCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("serve", "Run a local in-memory task database, use it with --endpoint.")
	c.Cmd.Flag("listen", "Address to listen on.").Default(conventions.DefaultListenAddr).StringVar(&c.listenAddr)

	return c
}

func (c ServeCommand) Name() string { return c.Cmd.FullCommand() }

func (c ServeCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	handler, err := fake.NewServer(fake.ServerConfig{Logger: logger})
	if err != nil {
		return fmt.Errorf("could not create fake server: %w", err)
	}

	server := &http.Server{
		Addr:              c.listenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	var g run.Group

	// HTTP server.
	g.Add(
		func() error {
			logger.Infof("listening on http://%s", c.listenAddr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("could not serve: %w", err)
			}
			return nil
		},
		func(_ error) {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), serveShutdownTimeout)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				logger.Errorf("could not shutdown server: %s", err)
			}
		},
	)

	// Context cancellation.
	{
		ctx, cancel := context.WithCancel(ctx)
		g.Add(
			func() error {
				<-ctx.Done()
				logger.Infof("stopping server")
				return nil
			},
			func(_ error) {
				cancel()
			},
		)
	}

	return g.Run()
}
