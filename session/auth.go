package session

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
)

// Credentials are the login form values. Server is the universe host as the
// login form expects it, e.g. "s114-br.ogame.gameforge.com".
type Credentials struct {
	Username string
	Password string
	Server   string
}

// Endpoints are the two addresses involved in logging in.
type Endpoints struct {
	Login string // login form target on the lobby host
	Index string // universe index page
}

// Login authenticates s. Stored cookies are reused when present; otherwise
// the login form is posted. The universe index page is returned and the jar
// persisted for the next run.
func Login(ctx context.Context, s Session, ep Endpoints, creds Credentials, logger *slog.Logger) (Document, error) {
	if logger == nil {
		logger = slog.Default()
	}

	restored, err := s.RestoreCredentials()
	if err != nil {
		logger.Warn("ignoring unreadable cookie file", "error", err)
		restored = false
	}

	if restored {
		if _, err := s.Fetch(ctx, ep.Login); err != nil {
			return Document{}, fmt.Errorf("open login page: %w", err)
		}
	} else {
		if creds.Username == "" || creds.Password == "" {
			return Document{}, fmt.Errorf("login: no stored cookies and no credentials configured")
		}
		logger.Info("logging in", "server", creds.Server, "user", creds.Username)
		fields := url.Values{
			"login": {creds.Username},
			"pass":  {creds.Password},
			"uni":   {creds.Server},
		}
		if _, err := s.Submit(ctx, ep.Login, fields); err != nil {
			return Document{}, fmt.Errorf("submit login form: %w", err)
		}
	}

	index, err := s.Fetch(ctx, ep.Index)
	if err != nil {
		return Document{}, fmt.Errorf("open index page: %w", err)
	}
	if err := s.PersistCredentials(); err != nil {
		return Document{}, err
	}
	return index, nil
}
