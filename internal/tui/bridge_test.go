package tui

import (
	"context"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestProgramRef_DetachedIsNoop(t *testing.T) {
	ref := &programRef{}
	if ref.Attached() {
		t.Fatal("new ref should be detached")
	}
	// Neither call may block or panic without a program.
	ref.Send(LogMsg{Line: "ignored"})
	ref.Quit()
}

func TestLogWriter_SplitsLines(t *testing.T) {
	ref := &programRef{}
	w := newLogWriter(ref)
	defer w.Close()

	n, err := w.Write([]byte("first line\nsecond "))
	if err != nil || n != len("first line\nsecond ") {
		t.Fatalf("Write() = %d, %v", n, err)
	}
	if got := string(w.buf); got != "second " {
		t.Errorf("buffered partial line = %q, want %q", got, "second ")
	}

	if _, err := w.Write([]byte("half\r\n\n")); err != nil {
		t.Fatal(err)
	}
	if len(w.buf) != 0 {
		t.Errorf("buffer should be empty after complete lines, got %q", w.buf)
	}
}

func TestLogWriter_NeverWaitsForProgram(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The program is never run, so nothing drains its message channel.
	p := tea.NewProgram(NewModel(Options{History: 10}), tea.WithContext(ctx))
	ref := &programRef{}
	ref.SetProgram(p)
	w := newLogWriter(ref)

	written := make(chan struct{})
	go func() {
		defer close(written)
		for i := range logBacklog + 10 {
			fmt.Fprintf(w, "line %d\n", i)
		}
	}()

	select {
	case <-written:
	case <-time.After(2 * time.Second):
		t.Fatal("Write blocked on a program that is not running")
	}
	if w.Dropped() == 0 {
		t.Error("expected lines beyond the backlog to be dropped")
	}

	cancel()
	closed := make(chan struct{})
	go func() {
		w.Close()
		close(closed)
	}()
	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not return after the program context ended")
	}
}
