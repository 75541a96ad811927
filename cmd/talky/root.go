package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"talky-backend/internal/client"
	"talky-backend/internal/config"
	"talky-backend/internal/logger"
)

type rootOptions struct {
	backendURL string
	verbose    bool
	width      int
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "talky",
		Short:         "Chat with Gemini through the Talky relay",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.backendURL, "backend-url", "", "relay base URL (defaults to $BACKEND_URL)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log requests to stderr")
	cmd.PersistentFlags().IntVar(&opts.width, "width", 80, "word wrap width for replies")

	cmd.AddCommand(newAskCmd(opts), newChatCmd(opts))
	return cmd
}

func (o *rootOptions) newClient() (*client.Client, error) {
	baseURL := o.backendURL
	if baseURL == "" {
		cfg, err := config.LoadClient()
		if err != nil {
			return nil, err
		}
		baseURL = cfg.BackendURL
	}

	log := zap.NewNop()
	if o.verbose {
		l, err := logger.New("development", "debug")
		if err != nil {
			return nil, err
		}
		log = l
	}

	return client.New(baseURL, client.WithLogger(log)), nil
}

// execute runs cmd and writes any error the commands did not already show to
// its stderr. Client failures are rendered by the commands themselves.
func execute(cmd *cobra.Command) error {
	err := cmd.Execute()
	if err != nil && !renderedByCommand(err) {
		fmt.Fprintln(cmd.ErrOrStderr(), errorStyle.Render(describeError(err)))
	}
	return err
}

func renderedByCommand(err error) bool {
	var serverErr *client.ServerError
	var connErr *client.ConnectionError
	var setupErr *client.RequestSetupError
	return errors.As(err, &serverErr) || errors.As(err, &connErr) || errors.As(err, &setupErr)
}
