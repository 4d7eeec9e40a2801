package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/authkeeper/internal/auth"
	"github.com/dmitrijs2005/authkeeper/internal/config"
	"github.com/dmitrijs2005/authkeeper/internal/kvstore"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/session"
	"github.com/dmitrijs2005/authkeeper/internal/users"
)

// newTestApp builds an App over an in-memory store with scripted stdin and
// captured output.
func newTestApp(t *testing.T, input string) (*App, *bytes.Buffer) {
	t.Helper()
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	kv := kvstore.NewMemoryStore()
	ctrl := session.NewController(
		auth.NewService(users.NewStore(kv, log)),
		session.NewStore(kv),
		log,
	)

	var out bytes.Buffer
	app := &App{
		config: &config.Config{},
		ctrl:   ctrl,
		reader: bufio.NewReader(strings.NewReader(input)),
		out:    &out,
	}
	return app, &out
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })
	readPassword = func(int) ([]byte, error) { return []byte(pw), nil }
}

func TestLoginCommand_SeededAccount(t *testing.T) {
	app, out := newTestApp(t, "test@test.com\n")
	stubPassword(t, "123456")

	ctx := context.Background()
	app.ctrl.Start(ctx)
	app.Login(ctx)

	assert.Contains(t, out.String(), "Welcome back, Test User!")
	require.NotNil(t, app.ctrl.CurrentUser())
}

func TestLoginCommand_InvalidEmailShowsFieldError(t *testing.T) {
	app, out := newTestApp(t, "not-an-email\n")

	ctx := context.Background()
	app.ctrl.Start(ctx)
	app.Login(ctx)

	assert.Contains(t, out.String(), "Please enter a valid email address")
	assert.Nil(t, app.ctrl.CurrentUser())
}

func TestLoginCommand_WrongPasswordShowsCredentialError(t *testing.T) {
	app, out := newTestApp(t, "test@test.com\n")
	stubPassword(t, "wrong-password")

	ctx := context.Background()
	app.ctrl.Start(ctx)
	app.Login(ctx)

	assert.Contains(t, out.String(), "Invalid email or password")
	assert.Nil(t, app.ctrl.CurrentUser())
}

func TestSignupCommand_CreatesAccount(t *testing.T) {
	app, out := newTestApp(t, "New User\nnew@test.com\n")
	stubPassword(t, "password123")

	ctx := context.Background()
	app.ctrl.Start(ctx)
	app.Signup(ctx)

	assert.Contains(t, out.String(), "Account created. Welcome, New User!")
	u := app.ctrl.CurrentUser()
	require.NotNil(t, u)
	assert.Equal(t, "new@test.com", u.Email)
}

func TestSignupCommand_DuplicateEmail(t *testing.T) {
	app, out := newTestApp(t, "Someone\ntest@test.com\n")
	stubPassword(t, "password123")

	ctx := context.Background()
	app.ctrl.Start(ctx)
	app.Signup(ctx)

	assert.Contains(t, out.String(), "This email is already registered")
	assert.Nil(t, app.ctrl.CurrentUser())
}

func TestLogoutAndWhoamiCommands(t *testing.T) {
	app, out := newTestApp(t, "test@test.com\n")
	stubPassword(t, "123456")

	ctx := context.Background()
	app.ctrl.Start(ctx)
	app.Login(ctx)

	app.Whoami()
	assert.Contains(t, out.String(), "Test User <test@test.com> (id 1)")

	app.Logout(ctx)
	assert.Contains(t, out.String(), "Logged out")

	out.Reset()
	app.Whoami()
	assert.Contains(t, out.String(), "Not logged in")
}

func TestRun_ExitCommand(t *testing.T) {
	app, out := newTestApp(t, "help\nexit\n")

	app.Run(context.Background())

	assert.Contains(t, out.String(), "login, signup, exit")
	assert.Contains(t, out.String(), "Bye!")
}

func TestLoginCommand_RejectedWhileSessionActive(t *testing.T) {
	app, out := newTestApp(t, "test@test.com\n")
	stubPassword(t, "123456")

	ctx := context.Background()
	app.ctrl.Start(ctx)
	app.Login(ctx)
	require.NotNil(t, app.ctrl.CurrentUser())

	out.Reset()
	app.Login(ctx)

	assert.Contains(t, out.String(), "Already logged in as test@test.com")
	assert.Equal(t, "test@test.com", app.ctrl.CurrentUser().Email)
}

func TestSignupCommand_RejectedWhileSessionActive(t *testing.T) {
	app, out := newTestApp(t, "test@test.com\n")
	stubPassword(t, "123456")

	ctx := context.Background()
	app.ctrl.Start(ctx)
	app.Login(ctx)
	require.NotNil(t, app.ctrl.CurrentUser())

	out.Reset()
	app.Signup(ctx)

	assert.Contains(t, out.String(), "Already logged in as test@test.com")
	assert.Equal(t, "test@test.com", app.ctrl.CurrentUser().Email)
}

func TestNewApp_RunClosesDatabase(t *testing.T) {
	cfg := &config.Config{
		DatabaseDSN: filepath.Join(t.TempDir(), "authkeeper.db"),
		LogLevel:    "error",
	}

	app, err := NewApp(cfg)
	require.NoError(t, err)

	var out bytes.Buffer
	app.reader = bufio.NewReader(strings.NewReader("exit\n"))
	app.out = &out

	app.Run(context.Background())

	require.Error(t, app.db.Ping(), "database must be closed after Run returns")
}
