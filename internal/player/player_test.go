package player

import (
	"context"
	"fmt"
	"io"
	"net"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pixil98/go-peake/internal/commands"
	"github.com/pixil98/go-peake/internal/game"
	"github.com/pixil98/go-peake/internal/messaging"
	"github.com/pixil98/go-peake/internal/storage"
	"github.com/pixil98/go-testutil"
)

const expectTimeout = 5 * time.Second

type testEnv struct {
	pm  *PlayerManager
	dir *game.PlayerDirectory
	reg *game.Registry
}

func newTestEnv(t *testing.T, opts ...PlayerManagerOpt) *testEnv {
	t.Helper()
	store, err := storage.NewFileStore[*game.Record](filepath.Join(t.TempDir(), "players.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dir := game.NewPlayerDirectory(store)
	reg := game.NewRegistry(messaging.NewLocalBus())
	cmds, err := commands.NewHandler(reg, dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return &testEnv{
		pm:  NewPlayerManager(dir, reg, cmds, opts...),
		dir: dir,
		reg: reg,
	}
}

// addPlayer stores a character with the given password hash.
func (e *testEnv) addPlayer(t *testing.T, name, hash string) {
	t.Helper()
	c := game.NewCharacter(name, hash, game.RaceByName("Human"), game.ClassByName("Warrior"), time.Now())
	if err := e.dir.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// testClient is the far end of a session's connection. Everything the
// server writes is collected so tests can wait for expected output.
type testClient struct {
	t    *testing.T
	conn net.Conn

	mu     sync.Mutex
	buf    strings.Builder
	offset int

	done     chan error
	finished chan struct{}
}

func (e *testEnv) connect(t *testing.T) *testClient {
	t.Helper()
	server, client := net.Pipe()
	ctx, cancel := context.WithCancel(context.Background())

	c := &testClient{t: t, conn: client, done: make(chan error, 1), finished: make(chan struct{})}
	go func() {
		err := e.pm.RunSession(ctx, server)
		server.Close()
		c.done <- err
		close(c.finished)
	}()
	go func() {
		b := make([]byte, 1024)
		for {
			n, err := client.Read(b)
			c.mu.Lock()
			c.buf.Write(b[:n])
			c.mu.Unlock()
			if err != nil {
				return
			}
		}
	}()

	// The session saves on exit, so it must finish before the temp dir goes.
	t.Cleanup(func() {
		cancel()
		client.Close()
		select {
		case <-c.finished:
		case <-time.After(expectTimeout):
			t.Error("session did not stop")
		}
	})
	return c
}

func (c *testClient) send(line string) {
	c.t.Helper()
	if _, err := fmt.Fprintf(c.conn, "%s\n", line); err != nil {
		c.t.Fatalf("sending %q: %v", line, err)
	}
}

// expect waits until the unread output contains s and consumes it.
func (c *testClient) expect(s string) {
	c.t.Helper()
	deadline := time.Now().Add(expectTimeout)
	for time.Now().Before(deadline) {
		c.mu.Lock()
		unread := c.buf.String()[c.offset:]
		if i := strings.Index(unread, s); i >= 0 {
			c.offset += i + len(s)
			c.mu.Unlock()
			return
		}
		c.mu.Unlock()
		time.Sleep(5 * time.Millisecond)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t.Fatalf("timed out waiting for %q, unread output:\n%s", s, c.buf.String()[c.offset:])
}

// unread returns output received but not yet consumed by expect.
func (c *testClient) unread() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.String()[c.offset:]
}

func (c *testClient) wait() error {
	c.t.Helper()
	select {
	case err := <-c.done:
		return err
	case <-time.After(expectTimeout):
		c.t.Fatal("timed out waiting for session to end")
		return nil
	}
}

func (c *testClient) login(name, password string) {
	c.t.Helper()
	c.expect("Enter your choice (1-3): ")
	c.send("1")
	c.expect("Username: ")
	c.send(name)
	c.expect("Password: ")
	c.send(password)
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := game.HashPassword(password)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return hash
}

func TestSession_CreateCharacter(t *testing.T) {
	env := newTestEnv(t)
	env.addPlayer(t, "Taken", mustHash(t, "pass"))
	c := env.connect(t)

	c.expect("Enter your choice (1-3): ")
	c.send("2")

	c.expect("Enter desired username: ")
	c.send("Al")
	c.expect("Username must be at least 3 characters long.")

	c.expect("Enter desired username: ")
	c.send("taken")
	c.expect("Username already exists. Please choose another.")

	c.expect("Enter desired username: ")
	c.send("Alice")

	c.expect("Enter password: ")
	c.send("abc")
	c.expect("Password must be at least 4 characters long.")

	c.expect("Enter password: ")
	c.send("abcd")
	c.expect("Confirm password: ")
	c.send("abce")
	c.expect("Passwords don't match. Please try again.")

	c.expect("Enter password: ")
	c.send("abcd")
	c.expect("Confirm password: ")
	c.send("abcd")

	c.expect("=== Choose Your Race ===")
	c.expect("Enter your choice (1-6): ")
	c.send("7")
	c.expect("Invalid choice. Please try again.")
	c.expect("Enter your choice (1-6): ")
	c.send("elf")
	c.expect("Please enter a valid number.")
	c.expect("Enter your choice (1-6): ")
	c.send("2")

	c.expect("=== Choose Your Class ===")
	c.expect("Enter your choice (1-8): ")
	c.send("2")

	c.expect("Character created successfully!")
	c.expect("Name: Alice")
	c.expect("Race: Elf")
	c.expect("Class: Mage")
	c.expect("Health: 120/120")
	c.expect("Mana: 175/175")
	c.expect("Welcome to Peake, Alice!")
	c.expect("=== Game Commands ===")
	c.expect("You are standing in the Town Square.")
	c.expect(promptMarker)

	testutil.AssertEqual(t, "online", env.reg.IsOnline("alice"), true)

	c.send("quit")
	c.expect("Goodbye!")
	testutil.AssertEqual(t, "session error", c.wait(), nil)

	testutil.AssertEqual(t, "online after quit", env.reg.Count(), 0)
	rec := env.dir.Get("ALICE")
	if rec == nil {
		t.Fatal("character was not stored")
	}
	testutil.AssertEqual(t, "race", rec.Race, "Elf")
	testutil.AssertEqual(t, "class", rec.Class, "Mage")
	testutil.AssertEqual(t, "password", game.VerifyPassword(rec.PasswordHash, "abcd"), true)
}

func TestSession_Welcome(t *testing.T) {
	env := newTestEnv(t)
	c := env.connect(t)

	c.expect("1. Login")
	c.expect("Enter your choice (1-3): ")
	c.send("9")
	c.expect("Invalid choice. Please enter 1, 2, or 3: ")
	c.send("3")
	c.expect("Goodbye!")

	testutil.AssertEqual(t, "session error", c.wait(), nil)
}

func TestSession_LineTooLong(t *testing.T) {
	env := newTestEnv(t)
	c := env.connect(t)

	c.expect("Enter your choice (1-3): ")
	c.send(strings.Repeat("x", maxLineLength+1000))
	c.expect(msgLineTooLong)

	c.send("9")
	c.expect("Invalid choice. Please enter 1, 2, or 3: ")
	c.send("3")
	c.expect("Goodbye!")
	testutil.AssertEqual(t, "session error", c.wait(), nil)
}

func TestSession_LineTooLongInGame(t *testing.T) {
	env := newTestEnv(t)
	env.addPlayer(t, "Alice", mustHash(t, "secret"))
	c := env.connect(t)

	c.login("alice", "secret")
	c.expect("Welcome to Peake, Alice!")
	c.expect(promptMarker)

	c.send("say " + strings.Repeat("x", maxLineLength))
	c.expect(msgLineTooLong)
	c.expect(promptMarker)

	c.send("quit")
	c.expect("Goodbye!")
	testutil.AssertEqual(t, "session error", c.wait(), nil)
}

func TestSession_LoginFailure(t *testing.T) {
	env := newTestEnv(t)
	env.addPlayer(t, "Bob", mustHash(t, "secret"))
	c := env.connect(t)

	c.login("bob", "wrong")
	c.expect("Invalid username or password. Returning to main menu...")
	c.expect("Enter your choice (1-3): ")

	c.send("1")
	c.expect("Username: ")
	c.send("nobody")
	c.expect("Password: ")
	c.send("secret")
	c.expect("Invalid username or password. Returning to main menu...")

	c.login("BOB", "secret")
	c.expect("Login successful! Welcome back, Bob.")
	c.expect(promptMarker)

	testutil.AssertEqual(t, "online", env.reg.IsOnline("bob"), true)
}

func TestSession_LegacyPasswordUpgraded(t *testing.T) {
	env := newTestEnv(t)
	// sha256("secret")
	env.addPlayer(t, "Old", "2bb80d537b1da3e38bd30361aa855686bde0eacd7162fef6a25fe97bf527a25b")
	c := env.connect(t)

	c.login("old", "secret")
	c.expect("Login successful! Welcome back, Old.")

	hash := env.dir.Get("old").PasswordHash
	testutil.AssertEqual(t, "legacy", game.IsLegacyHash(hash), false)
	testutil.AssertEqual(t, "verifies", game.VerifyPassword(hash, "secret"), true)
}

func TestSession_SayAndWho(t *testing.T) {
	env := newTestEnv(t)
	hash := mustHash(t, "secret")
	env.addPlayer(t, "Alice", hash)
	env.addPlayer(t, "Bob", hash)

	alice := env.connect(t)
	alice.login("alice", "secret")
	alice.expect("Welcome to Peake, Alice!")
	alice.expect(promptMarker)

	bob := env.connect(t)
	bob.login("bob", "secret")
	bob.expect("Welcome to Peake, Bob!")
	bob.expect(promptMarker)

	alice.send("say Hello there!")
	alice.expect("You say: Hello there!")
	bob.expect("Alice says: Hello there!")

	bob.send("who")
	bob.expect("=== Online Players ===")
	bob.expect("- Alice (Level 1 Human Warrior)")

	alice.send("stats")
	alice.expect("=== Character Stats ===")
	if strings.Contains(alice.unread(), "Alice says") {
		t.Error("sender received their own say")
	}

	alice.send("dance")
	alice.expect("Unknown command. Type 'quit' to leave.")
}

func TestSession_AlreadyOnline(t *testing.T) {
	env := newTestEnv(t)
	env.addPlayer(t, "Alice", mustHash(t, "secret"))

	first := env.connect(t)
	first.login("alice", "secret")
	first.expect("Welcome to Peake, Alice!")

	second := env.connect(t)
	second.login("ALICE", "secret")
	second.expect("That character is already playing. Returning to main menu...")
	second.expect("Enter your choice (1-3): ")

	testutil.AssertEqual(t, "count", env.reg.Count(), 1)
}

func TestSession_Disconnect(t *testing.T) {
	env := newTestEnv(t)
	env.addPlayer(t, "Alice", mustHash(t, "secret"))
	c := env.connect(t)

	c.login("alice", "secret")
	c.expect("Welcome to Peake, Alice!")
	c.expect(promptMarker)
	before := env.dir.Get("alice")

	c.conn.Close()

	// The record must be saved by the time the character shows offline.
	deadline := time.Now().Add(expectTimeout)
	for env.reg.IsOnline("alice") && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if env.dir.Get("alice") == before {
		t.Error("character was not saved before going offline")
	}

	testutil.AssertEqual(t, "session error", c.wait(), nil)
	testutil.AssertEqual(t, "count", env.reg.Count(), 0)
}

func TestSession_SayBurst(t *testing.T) {
	env := newTestEnv(t)
	reg := env.reg
	msgs := make(chan []byte, msgQueueSize)
	listener := game.NewSessionID()
	if _, err := reg.Add(listener, game.NewCharacter("Bob", "h", nil, nil, time.Now()), msgs, time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A listener that is not draining still receives a burst of says.
	const burst = 100
	for i := 0; i < burst; i++ {
		sent, err := reg.Broadcast(game.NewSessionID(), []byte(fmt.Sprintf("Alice says: %d", i)))
		testutil.AssertEqual(t, "error", err, nil)
		testutil.AssertEqual(t, "sent", sent, 1)
	}
	testutil.AssertEqual(t, "queued", len(msgs), burst)
	testutil.AssertEqual(t, "first", string(<-msgs), "Alice says: 0")
}

func TestPlayerManager_IdleKick(t *testing.T) {
	var mu sync.Mutex
	// Far from the wall clock, so only the injected clock can trigger the kick.
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}

	env := newTestEnv(t, WithIdleTimeout(time.Minute), WithClock(clock))
	env.addPlayer(t, "Alice", mustHash(t, "secret"))
	c := env.connect(t)
	c.login("alice", "secret")
	c.expect("Welcome to Peake, Alice!")
	c.expect(promptMarker)

	testutil.AssertEqual(t, "tick", env.pm.Tick(context.Background()), nil)
	if strings.Contains(c.unread(), msgIdle) {
		t.Fatal("active player was kicked")
	}

	mu.Lock()
	now = now.Add(2 * time.Minute)
	mu.Unlock()

	testutil.AssertEqual(t, "tick", env.pm.Tick(context.Background()), nil)
	c.expect(msgIdle)
	testutil.AssertEqual(t, "session error", c.wait(), nil)
	testutil.AssertEqual(t, "count", env.reg.Count(), 0)
}

func TestPlayerManager_Autosave(t *testing.T) {
	env := newTestEnv(t, WithAutosave(true))
	env.addPlayer(t, "Alice", mustHash(t, "secret"))
	c := env.connect(t)
	c.login("alice", "secret")
	c.expect("Welcome to Peake, Alice!")

	before := env.dir.Get("alice").LastSaved.Time
	time.Sleep(10 * time.Millisecond)
	testutil.AssertEqual(t, "tick", env.pm.Tick(context.Background()), nil)

	after := env.dir.Get("alice").LastSaved.Time
	testutil.AssertEqual(t, "saved", after.After(before), true)
}

func TestParseChoice(t *testing.T) {
	tests := map[string]struct {
		input    string
		expIndex int
		expMsg   string
	}{
		"first":        {input: "1", expIndex: 0},
		"last":         {input: "6", expIndex: 5},
		"out of range": {input: "7", expMsg: "Invalid choice. Please try again."},
		"zero":         {input: "0", expMsg: "Invalid choice. Please try again."},
		"not a number": {input: "two", expMsg: "Please enter a valid number."},
		"empty":        {input: "", expMsg: "Please enter a valid number."},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			i, msg := parseChoice(tt.input, 6)
			testutil.AssertEqual(t, "index", i, tt.expIndex)
			testutil.AssertEqual(t, "message", msg, tt.expMsg)
		})
	}
}

func TestLineReader(t *testing.T) {
	lr := newLineReader(strings.NewReader("one\r\ntwo\n\nthree"))
	defer lr.Close()

	var got []string
	for {
		line, err := lr.ReadLine(context.Background())
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got = append(got, line)
	}
	testutil.AssertEqual(t, "lines", strings.Join(got, "|"), "one|two||three")
}

func TestLineReader_TooLong(t *testing.T) {
	input := "short\n" + strings.Repeat("x", maxLineLength*2) + "\r\nafter\n"
	lr := newLineReader(strings.NewReader(input))
	defer lr.Close()

	line, err := lr.ReadLine(context.Background())
	testutil.AssertEqual(t, "error", err, nil)
	testutil.AssertEqual(t, "first", line, "short")

	_, err = lr.ReadLine(context.Background())
	testutil.AssertEqual(t, "too long", err, errLineTooLong, cmpopts.EquateErrors())

	line, err = lr.ReadLine(context.Background())
	testutil.AssertEqual(t, "error", err, nil)
	testutil.AssertEqual(t, "after", line, "after")

	_, err = lr.ReadLine(context.Background())
	testutil.AssertEqual(t, "eof", err, io.EOF, cmpopts.EquateErrors())
}

func TestLineReader_Canceled(t *testing.T) {
	server, client := net.Pipe()
	defer client.Close()
	defer server.Close()

	lr := newLineReader(server)
	defer lr.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := lr.ReadLine(ctx)
	testutil.AssertEqual(t, "error", err, context.Canceled, cmpopts.EquateErrors())
}

func TestState_String(t *testing.T) {
	testutil.AssertEqual(t, "welcome", StateWelcome.String(), "welcome")
	testutil.AssertEqual(t, "terminal", StateQuit.Terminal(), true)
	testutil.AssertEqual(t, "not terminal", StateSelectRace.Terminal(), false)
}
