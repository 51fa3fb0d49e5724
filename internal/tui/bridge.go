package tui

import (
	"bytes"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// programRef is a shared reference to the running tea.Program.
// Because bubbletea copies the model on every Update, the scheduler and
// the log writer reach the program through this pointer instead.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference; nil detaches it.
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send delivers msg to the program. It is a no-op when detached.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// Quit asks the program to exit.
func (r *programRef) Quit() {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Quit()
	}
}

// Attached reports whether a program is set.
func (r *programRef) Attached() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.program != nil
}

// logBacklog bounds the lines waiting for the program. Older lines are
// kept; new ones are dropped once it is full.
const logBacklog = 256

// logWriter turns log output into LogMsg values, one per complete line.
// It is installed in the logging.SwitchWriter while the view owns the
// terminal. Write never waits for the program: lines are queued and a
// single goroutine forwards them.
type logWriter struct {
	ref *programRef

	mu      sync.Mutex
	buf     []byte
	dropped int

	lines chan string
	done  chan struct{}
	wg    sync.WaitGroup
}

func newLogWriter(ref *programRef) *logWriter {
	w := &logWriter{
		ref:   ref,
		lines: make(chan string, logBacklog),
		done:  make(chan struct{}),
	}
	w.wg.Add(1)
	go w.forward()
	return w
}

func (w *logWriter) forward() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case line := <-w.lines:
			w.ref.Send(LogMsg{Line: line})
		}
	}
}

// Write implements io.Writer.
func (w *logWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		if line := strings.TrimRight(string(w.buf[:i]), "\r"); line != "" {
			select {
			case w.lines <- line:
			default:
				w.dropped++
			}
		}
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}

// Dropped returns the number of lines discarded because the backlog was full.
func (w *logWriter) Dropped() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dropped
}

// Close stops the forwarding goroutine. Queued lines are discarded. The
// program must have exited, or been detached from ref, for Close to return.
func (w *logWriter) Close() {
	close(w.done)
	w.wg.Wait()
}
