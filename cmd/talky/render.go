package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"talky-backend/internal/client"
)

var (
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("25"))
	labelStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("31"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
	mutedStyle  = lipgloss.NewStyle().Faint(true)
)

type renderer struct {
	md  *glamour.TermRenderer
	out io.Writer
}

func newRenderer(out io.Writer, width int) (*renderer, error) {
	md, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("create markdown renderer: %w", err)
	}
	return &renderer{md: md, out: out}, nil
}

// reply prints the model's answer rendered as markdown.
func (r *renderer) reply(text string) {
	fmt.Fprintln(r.out, labelStyle.Render("talky"))
	rendered, err := r.md.Render(text)
	if err != nil {
		fmt.Fprintln(r.out, text)
		return
	}
	fmt.Fprint(r.out, rendered)
}

func (r *renderer) failure(err error) {
	fmt.Fprintln(r.out, errorStyle.Render(describeError(err)))
}

// describeError turns a client failure into the line shown to the user.
func describeError(err error) string {
	var serverErr *client.ServerError
	var connErr *client.ConnectionError
	var setupErr *client.RequestSetupError

	switch {
	case errors.As(err, &serverErr):
		if strings.Contains(serverErr.Message, "API key") {
			return "Error: the API key is not valid. Make sure the key is correct."
		}
		return fmt.Sprintf("Sorry, there was a problem responding (%s). Try again later.", serverErr.Message)
	case errors.As(err, &connErr):
		return "Error: " + connErr.Error() + "."
	case errors.As(err, &setupErr):
		return fmt.Sprintf("Error: %s: %v", setupErr.Error(), setupErr.Err)
	}
	return "Error: " + err.Error()
}
