package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"talky-backend/internal/client"
)

const (
	exitCommand = "/exit"
	maxLineSize = 1 << 20
)

func newChatCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat (type /exit to quit)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.newClient()
			if err != nil {
				return err
			}
			r, err := newRenderer(cmd.OutOrStdout(), opts.width)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			scanner := bufio.NewScanner(cmd.InOrStdin())
			scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)
			for {
				fmt.Fprint(out, promptStyle.Render("you › "))
				if !scanner.Scan() {
					fmt.Fprintln(out)
					return scanner.Err()
				}

				input := strings.TrimSpace(scanner.Text())
				if input == "" {
					continue
				}
				if input == exitCommand {
					return nil
				}

				fmt.Fprintln(out, mutedStyle.Render("typing..."))
				reply, err := c.SendMessage(cmd.Context(), input)
				if err != nil {
					r.failure(err)
					if client.IsConnectionError(err) {
						fmt.Fprintln(out, mutedStyle.Render("is the relay running? set --backend-url or BACKEND_URL"))
					}
					continue
				}
				r.reply(reply)
			}
		},
	}
}
