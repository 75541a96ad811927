package main

import (
	"strings"

	"github.com/spf13/cobra"
)

func newAskCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <prompt>",
		Short: "Send a single prompt and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.newClient()
			if err != nil {
				return err
			}
			r, err := newRenderer(cmd.OutOrStdout(), opts.width)
			if err != nil {
				return err
			}

			reply, err := c.SendMessage(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				r.failure(err)
				return err
			}
			r.reply(reply)
			return nil
		},
	}
}
