package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumina/internal/chat"
	"lumina/internal/model"
)

type fakeTurner struct {
	messages []string
	sessions []string
	replies  map[string]chat.Reply
	errs     map[string]error
}

func (f *fakeTurner) Turn(_ context.Context, sessionID, message string) (chat.Reply, error) {
	f.messages = append(f.messages, message)
	f.sessions = append(f.sessions, sessionID)
	if err, ok := f.errs[message]; ok {
		return chat.Reply{}, err
	}
	if reply, ok := f.replies[message]; ok {
		return reply, nil
	}
	return chat.Reply{Text: "eco: " + message}, nil
}

func TestRunInteractiveStopsOnExitWord(t *testing.T) {
	svc := &fakeTurner{replies: map[string]chat.Reply{
		"pagamento": {Text: "Aceitamos **pix**."},
	}}
	in := strings.NewReader("pagamento\n\n   \n  oi  \nTCHAU\nnão deve chegar\n")
	var out bytes.Buffer

	err := runInteractive(context.Background(), svc, "s1", in, &out)

	require.NoError(t, err)
	assert.Equal(t, []string{"pagamento", "oi"}, svc.messages)
	assert.Equal(t, []string{"s1", "s1"}, svc.sessions)
	assert.Contains(t, out.String(), "Bot: Aceitamos pix.\n")
	assert.Contains(t, out.String(), "Bot: eco: oi\n")
	assert.True(t, strings.HasSuffix(out.String(), "Bot: "+goodbye+"\n"))
}

func TestRunInteractiveEOF(t *testing.T) {
	svc := &fakeTurner{}
	var out bytes.Buffer

	err := runInteractive(context.Background(), svc, "s1", strings.NewReader("oi"), &out)

	require.NoError(t, err)
	assert.Equal(t, []string{"oi"}, svc.messages)
	assert.Contains(t, out.String(), goodbye)
}

func TestRunInteractiveContinuesAfterFailure(t *testing.T) {
	svc := &fakeTurner{errs: map[string]error{
		"quebra": &chat.TurnError{Lang: model.English, Cause: "nil map"},
		"falha":  errors.New("store closed"),
	}}
	var out bytes.Buffer

	err := runInteractive(context.Background(), svc, "s1", strings.NewReader("quebra\nfalha\ndepois\nsair\n"), &out)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Bot: 🚨 Unexpected error: nil map\n")
	assert.Contains(t, out.String(), "Bot: 🚨 store closed\n")
	assert.Contains(t, out.String(), "Bot: eco: depois\n")
}

func TestRunInteractiveCancelled(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	var out bytes.Buffer
	go func() { done <- runInteractive(ctx, &fakeTurner{}, "s1", pr, &out) }()

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("runInteractive did not stop after cancellation")
	}
	assert.Contains(t, out.String(), goodbye)
}

func TestRunSingle(t *testing.T) {
	svc := &fakeTurner{}
	var out bytes.Buffer

	runSingle(context.Background(), svc, "s9", "oi", &out)

	assert.Equal(t, "Bot: eco: oi\n\n", out.String())
	assert.Equal(t, []string{"s9"}, svc.sessions)
}

func TestIsExitCommand(t *testing.T) {
	for _, word := range []string{"sair", "Tchau", " exit ", "QUIT", "bye"} {
		assert.True(t, isExitCommand(word), word)
	}
	for _, word := range []string{"sairei", "goodbye", "", "tchau tchau"} {
		assert.False(t, isExitCommand(word), word)
	}
}

func TestResolveMessage(t *testing.T) {
	assert.Equal(t, "do flag", resolveMessage("  do flag ", []string{"ignorado"}))
	assert.Equal(t, "quanto custa", resolveMessage("", []string{"quanto", "custa"}))
	assert.Empty(t, resolveMessage(" ", nil))
}
