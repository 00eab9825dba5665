package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Desarso/tradesummit"
	"github.com/Desarso/tradesummit/models"
)

var chatAudience string

var chatCmd = &cobra.Command{
	Use:   "chat [name]",
	Short: "Talk to a widget from the terminal",
	Long: `Opens a widget for --audience and reads messages from stdin.
"/action <id>" clicks an action button, "/close" and "/open" toggle the widget.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync()

		app, err := tradesummit.NewApp(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer app.Close()

		var name string
		if len(args) > 0 {
			name = args[0]
		}
		ws, err := app.Manager.Create(models.Audience(chatAudience), name)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		printMessages(out, ws.Transcript())

		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			switch {
			case line == "/close":
				ws.Close()
				fmt.Fprintln(out, "(closed)")
			case line == "/open":
				ws.Open()
				printMessages(out, ws.Transcript())
			case strings.HasPrefix(line, "/action "):
				ack, effect, ok := ws.ClickAction(strings.TrimSpace(strings.TrimPrefix(line, "/action ")))
				if !ok {
					fmt.Fprintln(out, "(widget is closed)")
					continue
				}
				printMessages(out, []models.Message{ack})
				if effect != nil {
					fmt.Fprintf(out, "(effect: %s %s%s in %s)\n", effect.Kind, effect.URL, effect.Anchor, effect.Delay)
				}
			default:
				msgs, ok := ws.Send(cmd.Context(), line)
				if !ok {
					continue
				}
				printMessages(out, msgs[1:])
			}
		}
		return scanner.Err()
	},
}

func init() {
	chatCmd.Flags().StringVarP(&chatAudience, "audience", "a", string(models.AudienceProspect), "customer, prospect or admin")
}

func printMessages(w io.Writer, msgs []models.Message) {
	for _, m := range msgs {
		fmt.Fprintf(w, "[%s] %s\n", m.Type, m.Content)
		if len(m.Suggestions) > 0 {
			fmt.Fprintf(w, "  suggestions: %s\n", strings.Join(m.Suggestions, " | "))
		}
		for _, b := range m.ActionButtons {
			fmt.Fprintf(w, "  [%s] %s (%s)\n", b.Variant, b.Label, b.Action)
		}
	}
}
