// Package cli is the interactive presentation layer: a small REPL over the
// session controller, standing in for the original application's screens.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/authkeeper/internal/auth"
	"github.com/dmitrijs2005/authkeeper/internal/config"
	"github.com/dmitrijs2005/authkeeper/internal/kvstore"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/session"
	"github.com/dmitrijs2005/authkeeper/internal/users"

	_ "modernc.org/sqlite"
)

type App struct {
	config *config.Config
	ctrl   *session.Controller
	db     *sql.DB
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(cfg *config.Config) (*App, error) {
	ctx := context.Background()
	log := logging.New(cfg.LogLevel)

	db, err := kvstore.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Error(ctx, "failed to initialize database", "err", err)
		return nil, err
	}

	kv := kvstore.NewSQLiteStore(db)
	userStore := users.NewStore(kv, log)
	authService := auth.NewService(userStore)
	sessionStore := session.NewStore(kv)
	ctrl := session.NewController(authService, sessionStore, log)

	return &App{
		config: cfg,
		ctrl:   ctrl,
		db:     db,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

// Close releases the underlying database handle.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.ctrl.Start(ctx)

	fmt.Fprintln(a.out, "Welcome to authkeeper (type 'help' for commands)")
	if u := a.ctrl.CurrentUser(); u != nil {
		fmt.Fprintf(a.out, "Welcome back, %s!\n", u.Name)
	}

	for {
		fmt.Fprintf(a.out, "authkeeper %s> ", a.status())

		line, err := a.reader.ReadString('\n')
		if err != nil {
			return
		}
		cmd := strings.TrimSpace(line)
		if cmd == "" {
			continue
		}

		switch cmd {
		case "help":
			if a.ctrl.CurrentUser() != nil {
				fmt.Fprintln(a.out, "Available commands: whoami, logout, exit")
			} else {
				fmt.Fprintln(a.out, "Available commands: login, signup, exit")
			}
		case "login":
			a.Login(ctx)
		case "signup":
			a.Signup(ctx)
		case "logout":
			a.Logout(ctx)
		case "whoami":
			a.Whoami()
		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return
		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}
	}
}

func (a *App) status() string {
	if u := a.ctrl.CurrentUser(); u != nil {
		return fmt.Sprintf("(%s)", u.Email)
	}
	return ""
}
