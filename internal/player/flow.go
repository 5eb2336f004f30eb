package player

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"unicode/utf8"

	"github.com/pixil98/go-peake/internal/display"
	"github.com/pixil98/go-peake/internal/game"
)

const (
	minUsernameLength = 3
	minPasswordLength = 4
)

// State is a step of the login and character creation flow.
type State int

const (
	StateWelcome State = iota
	StateLoginUsername
	StateLoginPassword
	StateCreateUsername
	StateCreatePassword
	StateCreatePasswordConfirm
	StateSelectRace
	StateSelectClass
	StateAuthenticated
	StateQuit
	StateTerminated
)

var stateNames = map[State]string{
	StateWelcome:               "welcome",
	StateLoginUsername:         "login_username",
	StateLoginPassword:         "login_password",
	StateCreateUsername:        "create_username",
	StateCreatePassword:        "create_password",
	StateCreatePasswordConfirm: "create_password_confirm",
	StateSelectRace:            "select_race",
	StateSelectClass:           "select_class",
	StateAuthenticated:         "authenticated",
	StateQuit:                  "quit",
	StateTerminated:            "terminated",
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Terminal reports whether the flow stops in s.
func (s State) Terminal() bool {
	return s == StateAuthenticated || s == StateQuit || s == StateTerminated
}

// authFlow runs a connection from the welcome menu until it has a character
// or leaves. Validation failures re-prompt; only I/O errors end it.
type authFlow struct {
	s *session

	state      State
	showBanner bool

	username string
	password string
	race     *game.Race
	class    *game.Class

	char *game.Character
}

func newAuthFlow(s *session) *authFlow {
	return &authFlow{
		s:          s,
		state:      StateWelcome,
		showBanner: true,
	}
}

// Reset returns the flow to the welcome menu.
func (f *authFlow) Reset() {
	*f = authFlow{s: f.s, state: StateWelcome, showBanner: true}
}

// Run advances the flow until it reaches a terminal state. The character is
// returned in StateAuthenticated and nil otherwise.
func (f *authFlow) Run(ctx context.Context) (*game.Character, error) {
	for !f.state.Terminal() {
		next, err := f.step(ctx)
		if err != nil {
			f.state = StateTerminated
			return nil, err
		}
		f.state = next
	}

	if f.state == StateAuthenticated {
		return f.char, nil
	}
	return nil, nil
}

func (f *authFlow) step(ctx context.Context) (State, error) {
	switch f.state {
	case StateWelcome:
		return f.welcome(ctx)
	case StateLoginUsername:
		return f.loginUsername(ctx)
	case StateLoginPassword:
		return f.loginPassword(ctx)
	case StateCreateUsername:
		return f.createUsername(ctx)
	case StateCreatePassword:
		return f.createPassword(ctx)
	case StateCreatePasswordConfirm:
		return f.createPasswordConfirm(ctx)
	case StateSelectRace:
		return f.selectRace(ctx)
	case StateSelectClass:
		return f.selectClass(ctx)
	default:
		return StateTerminated, fmt.Errorf("no step for state %s", f.state)
	}
}

func (f *authFlow) welcome(ctx context.Context) (State, error) {
	if f.showBanner {
		banner, err := display.Render(display.TemplateWelcome, struct{ Online int }{Online: f.s.registry.Count()})
		if err != nil {
			return StateTerminated, err
		}
		if err := f.s.send(banner); err != nil {
			return StateTerminated, err
		}
		f.showBanner = false
	}

	choice, err := f.s.readLine(ctx)
	if err != nil {
		return StateTerminated, err
	}

	switch choice {
	case "1":
		return StateLoginUsername, nil
	case "2":
		return StateCreateUsername, nil
	case "3":
		return StateQuit, f.s.send("Goodbye!")
	default:
		return StateWelcome, f.s.send("Invalid choice. Please enter 1, 2, or 3: ")
	}
}

func (f *authFlow) loginUsername(ctx context.Context) (State, error) {
	name, err := f.s.prompt(ctx, "Username: ")
	if err != nil {
		return StateTerminated, err
	}
	f.username = name
	return StateLoginPassword, nil
}

func (f *authFlow) loginPassword(ctx context.Context) (State, error) {
	password, err := f.s.prompt(ctx, "Password: ")
	if err != nil {
		return StateTerminated, err
	}

	rec := f.s.directory.Get(f.username)
	if rec == nil || !game.VerifyPassword(rec.PasswordHash, password) {
		slog.InfoContext(ctx, "failed login", "username", f.username)
		return f.backToWelcome("Invalid username or password. Returning to main menu...")
	}

	if f.s.registry.IsOnline(rec.Name) {
		return f.backToWelcome(msgAlreadyOnline)
	}

	char, err := f.s.directory.Load(f.username)
	if err != nil {
		slog.ErrorContext(ctx, "loading character", "username", f.username, "error", err)
		return f.backToWelcome("Your character could not be loaded. Returning to main menu...")
	}

	char.Touch(f.s.now())
	if game.IsLegacyHash(char.PasswordHash()) {
		f.upgradePassword(ctx, char, password)
	}

	f.char = char
	return StateAuthenticated, f.s.send(fmt.Sprintf("Login successful! Welcome back, %s.", char.Name()))
}

// upgradePassword replaces a legacy hash with a bcrypt one.
func (f *authFlow) upgradePassword(ctx context.Context, char *game.Character, password string) {
	hash, err := game.HashPassword(password)
	if err != nil {
		slog.WarnContext(ctx, "rehashing legacy password", "player", char.Name(), "error", err)
		return
	}
	char.SetPasswordHash(hash)
	if err := f.s.directory.Save(char); err == nil {
		slog.InfoContext(ctx, "upgraded legacy password hash", "player", char.Name())
	}
}

func (f *authFlow) createUsername(ctx context.Context) (State, error) {
	name, err := f.s.prompt(ctx, "Enter desired username: ")
	if err != nil {
		return StateTerminated, err
	}

	if utf8.RuneCountInString(name) < minUsernameLength {
		return StateCreateUsername, f.s.send(fmt.Sprintf("Username must be at least %d characters long.", minUsernameLength))
	}
	if f.s.directory.Exists(name) {
		return StateCreateUsername, f.s.send(msgUsernameTaken)
	}

	f.username = name
	return StateCreatePassword, nil
}

func (f *authFlow) createPassword(ctx context.Context) (State, error) {
	password, err := f.s.prompt(ctx, "Enter password: ")
	if err != nil {
		return StateTerminated, err
	}

	if utf8.RuneCountInString(password) < minPasswordLength {
		return StateCreatePassword, f.s.send(fmt.Sprintf("Password must be at least %d characters long.", minPasswordLength))
	}

	f.password = password
	return StateCreatePasswordConfirm, nil
}

func (f *authFlow) createPasswordConfirm(ctx context.Context) (State, error) {
	confirm, err := f.s.prompt(ctx, "Confirm password: ")
	if err != nil {
		return StateTerminated, err
	}

	if confirm != f.password {
		f.password = ""
		return StateCreatePassword, f.s.send("Passwords don't match. Please try again.")
	}
	return StateSelectRace, nil
}

func (f *authFlow) selectRace(ctx context.Context) (State, error) {
	races := game.Races()
	menu, err := display.Render(display.TemplateRaceMenu, struct{ Races []*game.Race }{Races: races})
	if err != nil {
		return StateTerminated, err
	}

	i, ok, err := f.s.choose(ctx, menu, len(races))
	if err != nil {
		return StateTerminated, err
	}
	if !ok {
		return StateSelectRace, nil
	}

	f.race = races[i]
	return StateSelectClass, nil
}

func (f *authFlow) selectClass(ctx context.Context) (State, error) {
	classes := game.Classes()
	menu, err := display.Render(display.TemplateClassMenu, struct{ Classes []*game.Class }{Classes: classes})
	if err != nil {
		return StateTerminated, err
	}

	i, ok, err := f.s.choose(ctx, menu, len(classes))
	if err != nil {
		return StateTerminated, err
	}
	if !ok {
		return StateSelectClass, nil
	}

	f.class = classes[i]
	return f.create(ctx)
}

// create builds and stores the new character.
func (f *authFlow) create(ctx context.Context) (State, error) {
	hash, err := game.HashPassword(f.password)
	if err != nil {
		return StateTerminated, fmt.Errorf("hashing password: %w", err)
	}

	char := game.NewCharacter(f.username, hash, f.race, f.class, f.s.now())
	err = f.s.directory.Create(char)
	if errors.Is(err, game.ErrPlayerExists) {
		// Someone else took the name while this player was choosing.
		return StateCreateUsername, f.s.send(msgUsernameTaken)
	}
	if err != nil {
		// Already logged; the character still plays this session.
		slog.WarnContext(ctx, "new character was not persisted", "player", char.Name())
	}

	summary, err := display.Render(display.TemplateCreated, char.Sheet())
	if err != nil {
		return StateTerminated, err
	}

	slog.InfoContext(ctx, "character created", "player", char.Name(), "race", f.race.Name, "class", f.class.Name)
	f.char = char
	return StateAuthenticated, f.s.send(summary)
}

func (f *authFlow) backToWelcome(msg string) (State, error) {
	f.username = ""
	f.showBanner = true
	return StateWelcome, f.s.send(msg)
}

const (
	msgUsernameTaken = "Username already exists. Please choose another."
	msgAlreadyOnline = "That character is already playing. Returning to main menu..."
)

// parseChoice validates a 1-based menu selection against n entries and
// returns the 0-based index, or the message to show for bad input.
func parseChoice(input string, n int) (int, string) {
	choice, err := strconv.Atoi(input)
	if err != nil {
		return 0, "Please enter a valid number."
	}
	if choice < 1 || choice > n {
		return 0, "Invalid choice. Please try again."
	}
	return choice - 1, ""
}
