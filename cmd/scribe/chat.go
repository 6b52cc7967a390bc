package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/scribe/internal/cli"
	"github.com/aretw0/scribe/internal/presentation/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the assistant in the terminal",
	Long: `Starts an interactive conversation. Each line is one message.
Replies are rendered as Markdown when stdout is a terminal.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID, _ := cmd.Flags().GetString("session")
		articleID, _ := cmd.Flags().GetString("article")
		plain, _ := cmd.Flags().GetBool("plain")

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()
		cmd.SetContext(sigCtx)

		app, err := buildApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close(context.WithoutCancel(sigCtx))

		render := tui.Renderer(tui.Plain)
		fd := int(os.Stdout.Fd())
		interactive := !plain && term.IsTerminal(fd)
		if interactive {
			width, _, err := term.GetSize(fd)
			if err != nil {
				width = 0
			}
			render = tui.NewRenderer(width)
			tui.PrintBanner(os.Stdout, Version)
		}

		if sessionID == "" {
			sessionID = fmt.Sprintf("cli-%d", os.Getpid())
		}

		return cli.RunChat(sigCtx, app.Router, cli.ChatOptions{
			SessionID: sessionID,
			ArticleID: articleID,
			In:        os.Stdin,
			Out:       os.Stdout,
			Render:    render,
			Quiet:     !interactive,
		})
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringP("session", "s", "", "Session ID to resume (default: per-process)")
	chatCmd.Flags().StringP("article", "a", "", "Article to discuss (overrides ARTICLE_ID)")
	chatCmd.Flags().Bool("plain", false, "Disable banner and Markdown rendering")
}
