package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"lumina/internal/chat"
	"lumina/internal/markup"
)

const (
	banner  = "🛍️  Lumina Style | escreva 'sair' para encerrar / type 'exit' to quit"
	prompt  = "Você/You: "
	goodbye = "Até logo! / See you soon! 💙"
)

type turner interface {
	Turn(ctx context.Context, sessionID, message string) (chat.Reply, error)
}

func runSingle(ctx context.Context, svc turner, sessionID, message string, out io.Writer) {
	printReply(ctx, out, svc, sessionID, message)
}

// runInteractive lê uma linha por turno até uma palavra de saída, EOF ou
// cancelamento do contexto (Ctrl+C).
func runInteractive(ctx context.Context, svc turner, sessionID string, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, banner)

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		fmt.Fprint(out, prompt)

		var line string
		var ok bool
		select {
		case <-ctx.Done():
			fmt.Fprintf(out, "\nBot: %s\n", goodbye)
			return nil
		case line, ok = <-lines:
		}
		if !ok {
			fmt.Fprintf(out, "\nBot: %s\n", goodbye)
			select {
			case err := <-readErr:
				if err != nil {
					return fmt.Errorf("read input: %w", err)
				}
			default:
			}
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if isExitCommand(line) {
			fmt.Fprintf(out, "Bot: %s\n", goodbye)
			return nil
		}

		printReply(ctx, out, svc, sessionID, line)
	}
}

func printReply(ctx context.Context, out io.Writer, svc turner, sessionID, message string) {
	reply, err := svc.Turn(ctx, sessionID, message)
	if err != nil {
		var turnErr *chat.TurnError
		if errors.As(err, &turnErr) {
			fmt.Fprintf(out, "Bot: %s\n\n", turnErr.Message())
			return
		}
		fmt.Fprintf(out, "Bot: 🚨 %v\n\n", err)
		return
	}

	fmt.Fprintf(out, "Bot: %s\n\n", markup.Clean(reply.Text))
}

func isExitCommand(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "sair", "tchau", "exit", "quit", "bye":
		return true
	default:
		return false
	}
}
