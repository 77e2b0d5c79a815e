// Command teambox-login is a minimal host application for the Teambox strategy.
// It serves /auth/teambox and /auth/teambox/callback and prints the
// authenticated profile as JSON.
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/teambox/internal/server"
	"github.com/dmitrymomot/teambox/pkg/authflow"
	"github.com/dmitrymomot/teambox/pkg/logger"
	"github.com/dmitrymomot/teambox/pkg/oauth"
)

type config struct {
	Server        server.Config
	Log           logger.Config
	Teambox       oauth.TeamboxConfig
	StateSecret   string `env:"OAUTH_STATE_SECRET,required"`
	SecureCookies bool   `env:"OAUTH_SECURE_COOKIES" envDefault:"true"`
}

type profileView struct {
	Provider    string   `json:"provider"`
	ID          string   `json:"id"`
	DisplayName string   `json:"display_name"`
	Emails      []string `json:"emails,omitempty"`
}

func main() {
	cfg, err := env.ParseAs[config]()
	if err != nil {
		logger.New(logger.Config{}, nil).Error("failed to parse config", slog.Any("error", err))
		os.Exit(1)
	}

	log := logger.New(cfg.Log, nil, logger.RequestIDExtractor).With(slog.String("app", "teambox-login"))

	if err := run(cfg, log); err != nil {
		log.Error("server error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg config, log *slog.Logger) error {
	strategy, err := oauth.NewTeamboxStrategy[*oauth.Profile](cfg.Teambox, verifyProfile, oauth.WithLogger(log))
	if err != nil {
		return err
	}

	states, err := authflow.NewStateStore(cfg.StateSecret, authflow.WithSecureCookie(cfg.SecureCookies))
	if err != nil {
		return err
	}

	login, err := authflow.New[*oauth.Profile](strategy, states, renderProfile, authflow.WithLogger(log))
	if err != nil {
		return err
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<a href="/auth/teambox">Sign in with Teambox</a>`))
	})
	login.Routes(r)

	return server.Run(context.Background(), cfg.Server, r, server.WithLogger(log))
}

// verifyProfile accepts every Teambox account that carries an id.
func verifyProfile(_ context.Context, _, _ string, p *oauth.Profile) (*oauth.Profile, bool, error) {
	return p, p.ID != "", nil
}

func renderProfile(w http.ResponseWriter, _ *http.Request, p *oauth.Profile) {
	view := profileView{
		Provider:    p.Provider,
		ID:          p.ID,
		DisplayName: p.DisplayName,
	}
	for _, e := range p.Emails {
		if e.Value != "" {
			view.Emails = append(view.Emails, e.Value)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(view)
}
