// Package client wires the configuration, transport, controller and
// terminal UI into a runnable application.
package client

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dmitrijs2005/todokeeper/internal/client/api"
	"github.com/dmitrijs2005/todokeeper/internal/client/config"
	"github.com/dmitrijs2005/todokeeper/internal/client/controller"
	"github.com/dmitrijs2005/todokeeper/internal/client/identity"
	"github.com/dmitrijs2005/todokeeper/internal/client/tui"
)

type App struct {
	config *config.Config
	ctrl   *controller.Controller
}

func NewApp(cfg *config.Config) (*App, error) {
	httpClient := api.NewHTTPClient(cfg.ServerBaseURL, cfg.RequestTimeout)
	return &App{
		config: cfg,
		ctrl:   controller.New(httpClient),
	}, nil
}

// ownerID resolves who is signed in. An explicit user id wins; otherwise
// the owner is extracted from a configured or interactively entered
// access token.
func (a *App) ownerID() (string, error) {
	if a.config.UserID != "" {
		return a.config.UserID, nil
	}

	token := a.config.AccessToken
	if token == "" {
		t, err := identity.ReadToken(os.Stdout)
		if err != nil {
			return "", fmt.Errorf("reading access token: %w", err)
		}
		token = t
	}
	return identity.FromAccessToken(token)
}

func (a *App) Run(ctx context.Context) error {
	ownerID, err := a.ownerID()
	if err != nil {
		return err
	}

	// A failed first load still opens the UI: the error shows in the
	// status line and "r" retries against the server.
	initialStatus := ""
	if err := a.ctrl.Initialize(ctx, ownerID); err != nil {
		initialStatus = err.Error()
	}
	defer a.ctrl.SignOut()

	model := tui.NewModel(ctx, a.ctrl, initialStatus)
	_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
