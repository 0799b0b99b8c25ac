package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/blkdmnd/visual-thesis/internal/chat"
	"github.com/blkdmnd/visual-thesis/internal/content"
	"github.com/blkdmnd/visual-thesis/internal/observability"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the portfolio assistant in the terminal",
	Long:  "Start an interactive session with the recruiter assistant. Type /reset to clear the transcript and /quit to leave.",
	RunE:  runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := content.Default()
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	pipeline, err := chat.NewPipeline(client, chat.GroundingFrom(store), chat.WithMetrics(observability.DefaultMetrics()))
	if err != nil {
		return err
	}
	session := chat.NewSession("cli", pipeline, observability.DefaultMetrics())

	renderer, err := newMarkdownRenderer()
	if err != nil {
		return err
	}

	homeDir, _ := os.UserHomeDir()
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            color.New(color.FgHiYellow, color.Bold).Sprint("you › "),
		HistoryFile:       filepath.Join(homeDir, ".visual-thesis-history"),
		InterruptPrompt:   "^C",
		EOFPrompt:         "/quit",
		HistorySearchFold: true,
		Stdin:             readline.NewCancelableStdin(os.Stdin),
		Stdout:            os.Stdout,
		Stderr:            os.Stderr,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize readline: %w", err)
	}
	defer rl.Close()

	name := store.Identity().Name
	fmt.Printf("Ask anything about %s. Commands: /reset, /quit\n\n", name)

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		switch input := strings.TrimSpace(line); input {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		case "/reset":
			session.Reset()
			fmt.Println(color.New(color.Faint).Sprint("transcript cleared"))
		default:
			if err := sendTurn(ctx, session, renderer, input); err != nil {
				fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("Error:"), err)
			}
		}
	}
}

// sendTurn sends one message; Ctrl+C while waiting cancels the call.
func sendTurn(ctx context.Context, session *chat.Session, renderer *glamour.TermRenderer, input string) error {
	turnCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	fmt.Println(color.New(color.Faint).Sprint("thinking..."))
	reply, _, err := session.Send(turnCtx, input)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return errors.New("cancelled")
		}
		return err
	}

	rendered, err := renderer.Render(reply)
	if err != nil {
		rendered = reply + "\n"
	}
	fmt.Print(rendered)
	return nil
}

// newMarkdownRenderer wraps replies to the terminal width, capped for readability.
func newMarkdownRenderer() (*glamour.TermRenderer, error) {
	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = min(w-4, 120)
	}

	style := glamour.WithStandardStyle("dark")
	if !term.IsTerminal(int(os.Stdout.Fd())) || color.NoColor {
		style = glamour.WithStandardStyle("notty")
	}

	renderer, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return renderer, nil
}
