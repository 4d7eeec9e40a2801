package session

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/authkeeper/internal/auth"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/users"
)

// User-facing messages returned to the presentation layer. Credential
// failures share one string so login cannot be used to probe which
// emails are registered.
const (
	MsgInvalidCredentials = "Invalid email or password"
	MsgEmailTaken         = "This email is already registered"
	MsgLoginFailed        = "Unable to connect. Please try again."
	MsgSignupFailed       = "Unable to create account. Please try again."
)

// State is the controller lifecycle. Ready is terminal for the process.
type State int

const (
	StateUninitialized State = iota
	StateRestoring
	StateReady
)

// Result is the uniform shape login and signup hand to the presentation
// layer. Error is a displayable message, set only when Success is false.
type Result struct {
	Success bool
	User    *users.User
	Error   string
}

// Authenticator is the slice of the authentication service the controller
// depends on.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*users.User, error)
	Signup(ctx context.Context, name, email, password string) (*users.User, error)
}

// Controller owns the process-wide session state. Start restores a prior
// session once; afterwards the in-memory user mirrors the durable session
// record through every login, signup, and logout.
type Controller struct {
	auth  Authenticator
	store *Store
	log   logging.Logger

	mu      sync.RWMutex
	state   State
	user    *users.User
	loading bool
}

func NewController(a Authenticator, store *Store, log logging.Logger) *Controller {
	return &Controller{
		auth:    a,
		store:   store,
		log:     log.With("component", "session"),
		state:   StateUninitialized,
		loading: true,
	}
}

// Start performs the one-time session restore. Any storage error is
// swallowed and logged; either way the controller ends up Ready with
// loading off. Calling Start again is a no-op.
func (c *Controller) Start(ctx context.Context) {
	c.mu.Lock()
	if c.state != StateUninitialized {
		c.mu.Unlock()
		return
	}
	c.state = StateRestoring
	c.mu.Unlock()

	u, err := c.store.Load(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.log.Warn(ctx, "failed to restore session", "err", err)
	} else if u != nil {
		c.user = u
	}
	c.state = StateReady
	c.loading = false
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// IsLoading reports whether the initial restore is still in flight.
func (c *Controller) IsLoading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// CurrentUser returns a copy of the authenticated user, or nil.
func (c *Controller) CurrentUser() *users.User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.user == nil {
		return nil
	}
	u := *c.user
	return &u
}

// Login delegates to the authentication service and, on success, persists
// the user to the session store and updates in-memory state. On failure
// the in-memory user is left untouched.
func (c *Controller) Login(ctx context.Context, email, password string) Result {
	u, err := c.auth.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return Result{Error: MsgInvalidCredentials}
		}
		c.log.Error(ctx, "unexpected login failure", "err", err)
		return Result{Error: MsgLoginFailed}
	}

	c.setUser(ctx, u)
	return Result{Success: true, User: u}
}

// Signup mirrors Login for account creation.
func (c *Controller) Signup(ctx context.Context, name, email, password string) Result {
	u, err := c.auth.Signup(ctx, name, email, password)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			return Result{Error: MsgEmailTaken}
		}
		c.log.Error(ctx, "unexpected signup failure", "err", err)
		return Result{Error: MsgSignupFailed}
	}

	c.setUser(ctx, u)
	return Result{Success: true, User: u}
}

// Logout clears the in-memory user and removes the session record. Storage
// failures are logged only; the caller always observes a logged-out state.
func (c *Controller) Logout(ctx context.Context) {
	c.mu.Lock()
	c.user = nil
	c.mu.Unlock()

	if err := c.store.Clear(ctx); err != nil {
		c.log.Warn(ctx, "failed to clear stored session", "err", err)
	}
}

func (c *Controller) setUser(ctx context.Context, u *users.User) {
	if err := c.store.Save(ctx, u); err != nil {
		c.log.Warn(ctx, "failed to persist session", "err", err)
	}

	c.mu.Lock()
	c.user = u
	c.mu.Unlock()
}
