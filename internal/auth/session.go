package auth

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

var ErrTooManyAttempts = errors.New("too many login attempts")

type TokenStore interface {
	Load() (string, error)
	Save(token string) error
}

type TokenProber interface {
	Probe(ctx context.Context, token string) bool
}

type TokenIssuer interface {
	Login(ctx context.Context) (string, error)
}

type state int

const (
	needCache state = iota
	needValidate
	needLogin
	ready
)

// Session walks cache -> validate -> login until the backend accepts a token,
// then persists it and installs it in Header.
type Session struct {
	Store  TokenStore
	Prober TokenProber
	Issuer TokenIssuer
	Header http.Header

	// MaxAttempts caps the number of logins. Zero means no cap.
	MaxAttempts int

	Log zerolog.Logger

	token string
}

// Token returns the token installed by the last successful Authenticate.
func (s *Session) Token() string {
	return s.token
}

func (s *Session) Authenticate(ctx context.Context) error {
	var (
		candidate string
		logins    int
		err       error
	)

	st := needCache
	for st != ready {
		switch st {
		case needCache:
			s.Log.Info().Msg("reading cached token")

			candidate, err = s.Store.Load()
			if err != nil {
				s.Log.Warn().Err(err).Msg("ignoring unreadable token cache")
				candidate = ""
			}
			st = needValidate

		case needValidate:
			if s.Prober.Probe(ctx, candidate) {
				st = ready
			} else {
				st = needLogin
			}

		case needLogin:
			if err := ctx.Err(); err != nil {
				return err
			}

			if s.MaxAttempts > 0 && logins >= s.MaxAttempts {
				return errors.Wrapf(ErrTooManyAttempts, "gave up after %d", logins)
			}
			logins++

			candidate, err = s.Issuer.Login(ctx)
			if err != nil {
				return err
			}
			st = needValidate
		}
	}

	if err := s.Store.Save(candidate); err != nil {
		return err
	}

	s.token = candidate
	s.Header.Set("Authorization", "Bearer "+candidate)

	s.Log.Info().Int("logins", logins).Msg("session ready")
	return nil
}
