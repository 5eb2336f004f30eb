package client

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pixil98/go-testutil"
)

func TestPrompt(t *testing.T) {
	tests := map[string]struct {
		input     string
		opts      []PromptOpt
		expAnswer string
		expOutput string
		expErr    string
	}{
		"plain answer": {
			input:     "hello\n",
			expAnswer: "hello",
			expOutput: "Name: ",
		},
		"crlf stripped": {
			input:     "hello\r\n",
			expAnswer: "hello",
			expOutput: "Name: ",
		},
		"last line without newline": {
			input:     "hello",
			expAnswer: "hello",
			expOutput: "Name: ",
		},
		"reprompt until valid": {
			input: "x\nlonger\n",
			opts: []PromptOpt{WithValidator(func(s string) (bool, string) {
				return len(s) > 2, "too short\n"
			})},
			expAnswer: "longer",
			expOutput: "Name: too short\nName: ",
		},
		"too many tries": {
			input: "a\nb\n",
			opts: []PromptOpt{WithMaxTries(2), WithValidator(func(string) (bool, string) {
				return false, "no\n"
			})},
			expOutput: "Name: no\nName: no\n",
			expErr:    "no valid answer after 2 tries",
		},
		"no input": {
			expOutput: "Name: ",
			expErr:    "EOF",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			answer, err := Prompt(bufio.NewReader(strings.NewReader(tt.input)), &out, "Name: ", tt.opts...)
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
			} else {
				testutil.AssertEqual(t, "error", err, nil)
			}
			testutil.AssertEqual(t, "answer", answer, tt.expAnswer)
			testutil.AssertEqual(t, "output", out.String(), tt.expOutput)
		})
	}
}

func TestPromptYN(t *testing.T) {
	tests := map[string]struct {
		input  string
		exp    bool
		expErr string
	}{
		"yes":          {input: "yes\n", exp: true},
		"y upper":      {input: "Y\n", exp: true},
		"no":           {input: "n\n"},
		"retry":        {input: "maybe\ny\n", exp: true},
		"gives up":     {input: "a\nb\nc\n", expErr: "no valid answer"},
		"closed input": {expErr: "EOF"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := PromptYN(bufio.NewReader(strings.NewReader(tt.input)), io.Discard, "Sure? ")
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			testutil.AssertEqual(t, "error", err, nil)
			testutil.AssertEqual(t, "answer", got, tt.exp)
		})
	}
}

func TestIsPasswordPrompt(t *testing.T) {
	tests := map[string]struct {
		output string
		exp    bool
	}{
		"login":    {output: "Username: \nPassword: \n", exp: true},
		"create":   {output: "Enter password: \n", exp: true},
		"confirm":  {output: "Confirm password: ", exp: true},
		"username": {output: "Username: \n"},
		"error":    {output: "Password must be at least 4 characters long.\nEnter desired username: \n"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "password", isPasswordPrompt(tt.output), tt.exp)
		})
	}
}

func TestRunLine(t *testing.T) {
	server, conn := net.Pipe()

	// The server greets, echoes one line and hangs up.
	go func() {
		defer server.Close()
		io.WriteString(server, "Welcome\n")
		line, err := bufio.NewReader(server).ReadString('\n')
		if err != nil {
			return
		}
		io.WriteString(server, "got "+line)
	}()

	var out bytes.Buffer
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := RunLine(ctx, conn, strings.NewReader("look\n"), &out)
	testutil.AssertEqual(t, "error", err, nil)
	testutil.AssertEqual(t, "output", out.String(), "Welcome\ngot look\n")
}

func TestRunLine_Canceled(t *testing.T) {
	server, conn := net.Pipe()
	defer server.Close()
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	blocked, _ := io.Pipe()
	err := RunLine(ctx, conn, blocked, io.Discard)
	testutil.AssertEqual(t, "error", err, context.Canceled, cmpopts.EquateErrors())
}

type recordingConn struct {
	bytes.Buffer
}

func (c *recordingConn) Read([]byte) (int, error) { return 0, io.EOF }

func TestTUI_MasksPasswords(t *testing.T) {
	conn := &recordingConn{}
	tui := NewTUI(conn, nil)

	tui.show("Username: \n")
	testutil.AssertEqual(t, "submit", tui.submit("bob"), nil)

	// Prompt arrives in two reads.
	tui.show("Pass")
	tui.show("word: \n")
	testutil.AssertEqual(t, "masked", tui.masked, true)
	testutil.AssertEqual(t, "submit", tui.submit("secret"), nil)

	tui.show("Login successful! Welcome back, Bob.\n")
	testutil.AssertEqual(t, "masked", tui.masked, false)

	testutil.AssertEqual(t, "sent", conn.String(), "bob\nsecret\n")

	shown := tui.output.GetText(true)
	if !strings.Contains(shown, "bob\n") {
		t.Errorf("username was not echoed: %q", shown)
	}
	if strings.Contains(shown, "secret") {
		t.Errorf("password was echoed: %q", shown)
	}
}
