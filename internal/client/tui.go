package client

import (
	"fmt"
	"io"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const (
	readBufferSize = 4096

	// tailSize is how much recent output is kept to spot prompts split
	// across reads.
	tailSize = 64
)

// TUI is a full screen terminal client with a scrolling output pane and an
// input line. Password answers are masked and not echoed.
type TUI struct {
	app    *tview.Application
	output *tview.TextView
	input  *tview.InputField
	conn   io.ReadWriter

	// Only touched on the UI goroutine.
	tail   string
	masked bool
}

func NewTUI(conn io.ReadWriter, screen tcell.Screen) *TUI {
	t := &TUI{
		app:  tview.NewApplication(),
		conn: conn,
	}
	if screen != nil {
		t.app.SetScreen(screen)
	}

	t.output = tview.NewTextView().
		SetScrollable(true).
		SetWordWrap(true)
	t.output.SetBorder(true).SetTitle(" Peake ")

	t.input = tview.NewInputField().
		SetLabel("> ").
		SetFieldWidth(0)
	t.input.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		line := t.input.GetText()
		t.input.SetText("")
		if err := t.submit(line); err != nil {
			t.app.Stop()
		}
	})

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(t.output, 0, 1, false).
		AddItem(t.input, 1, 0, true)
	t.app.SetRoot(layout, true)

	return t
}

// Run shows the client until the server hangs up or the user presses
// Ctrl-C.
func (t *TUI) Run() error {
	errc := make(chan error, 1)
	go func() {
		errc <- t.readServer()
		t.app.Stop()
	}()

	if err := t.app.Run(); err != nil {
		return fmt.Errorf("running terminal ui: %w", err)
	}

	select {
	case err := <-errc:
		return ignoreClosed(err)
	default:
		return nil
	}
}

// readServer copies server output into the output pane.
func (t *TUI) readServer() error {
	buf := make([]byte, readBufferSize)
	for {
		n, err := t.conn.Read(buf)
		if n > 0 {
			chunk := string(buf[:n])
			t.app.QueueUpdateDraw(func() {
				t.show(chunk)
			})
		}
		if err != nil {
			return err
		}
	}
}

// show appends server output and switches masking on for password prompts.
func (t *TUI) show(chunk string) {
	fmt.Fprint(t.output, chunk)
	t.output.ScrollToEnd()

	t.tail += chunk
	if len(t.tail) > tailSize {
		t.tail = t.tail[len(t.tail)-tailSize:]
	}

	t.masked = isPasswordPrompt(t.tail)
	if t.masked {
		t.input.SetMaskCharacter('*')
	} else {
		t.input.SetMaskCharacter(0)
	}
}

// submit sends one line to the server and echoes it unless it is a password.
func (t *TUI) submit(line string) error {
	if !t.masked {
		fmt.Fprintln(t.output, strings.TrimSpace(line))
	}
	_, err := fmt.Fprintf(t.conn, "%s\n", line)
	return err
}
