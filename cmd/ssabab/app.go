package main

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"

	"ssabab/cmd/ssabab/ui"
	"ssabab/internal/api"
	"ssabab/internal/config"
	"ssabab/internal/menu"
	"ssabab/internal/session"
	"ssabab/internal/store"
)

// app is the per-invocation dependency graph: config, session store, backend
// client, and menu cache. Commands build it fresh; nothing is global.
type app struct {
	cfg     *config.Config
	baseURL string
	session *session.Store
	client  *api.Client
	menus   *menu.Cache
}

// newApp loads configuration, hydrates the persisted session, and wires the
// backend client.
func newApp() (*app, error) {
	cfg, err := config.Global()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	baseURL := cfg.GetAPIBaseURL()
	if apiURL != "" {
		baseURL = apiURL
	}

	sess := session.NewStore(config.DefaultConfigDir())
	sess.Initialize()

	client := api.New(baseURL, sess, logger, cfg.GetRequestTimeout())

	return &app{
		cfg:     cfg,
		baseURL: baseURL,
		session: sess,
		client:  client,
		menus:   menu.NewCache(client),
	}, nil
}

// styles resolves the configured theme, falling back to terminal detection.
func (a *app) styles() ui.Styles {
	switch a.cfg.GetTheme() {
	case "dark":
		return ui.NewStyles(ui.DarkTheme())
	case "light":
		return ui.NewStyles(ui.LightTheme())
	default:
		return ui.DefaultStyles()
	}
}

// openLocalStore opens the advisory SQLite store under the config directory.
func (a *app) openLocalStore() (*store.Local, error) {
	return store.NewLocal(filepath.Join(config.DefaultConfigDir(), "local.db"))
}

// openBrowser opens the specified URL in the default browser.
func openBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}
