// Package setup wires the application together: identity, relays, store,
// services and the HTTP handler.
package setup

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dempa-dev/dempa/internal/access"
	"github.com/dempa-dev/dempa/internal/handler"
	"github.com/dempa-dev/dempa/internal/markdown"
	"github.com/dempa-dev/dempa/internal/moderation"
	"github.com/dempa-dev/dempa/internal/record"
	"github.com/dempa-dev/dempa/internal/relay"
	"github.com/dempa-dev/dempa/internal/service"
	"github.com/dempa-dev/dempa/internal/store"
	"github.com/dempa-dev/dempa/shared/config"
	"github.com/dempa-dev/dempa/shared/jwt"
	"github.com/dempa-dev/dempa/shared/keystore"
	"github.com/dempa-dev/dempa/shared/logger"
	mw "github.com/dempa-dev/dempa/shared/middleware"
)

// Dependencies holds all initialized dependencies.
type Dependencies struct {
	Config         *config.Config
	Signer         *record.Signer
	Pool           *relay.Pool
	Store          *store.Store
	Handler        *handler.Handler
	AuthMiddleware *mw.Auth
	Jwt            jwt.JwtService
}

// LoadSigner reads the node identity from the keystore, generating and
// persisting a fresh one on first start.
func LoadSigner(path string) (*record.Signer, error) {
	ks, err := keystore.Load(path)
	if err == nil {
		return record.NewSigner(ks.SecretKey)
	}
	if !os.IsNotExist(err) {
		return nil, err
	}

	signer, err := record.GenerateSigner()
	if err != nil {
		return nil, err
	}
	if err := keystore.Save(path, &keystore.Keystore{
		SecretKey: signer.SecretHex(),
		Pubkey:    signer.Pubkey(),
	}); err != nil {
		return nil, fmt.Errorf("persist new identity: %w", err)
	}
	logger.Log.Info("generated new node identity", "pubkey", signer.Pubkey(), "keystore", path)
	return signer, nil
}

// BuildRelays turns configured relay URLs into transports. mem:// relays are
// process-local (dev and tests), redis:// relays are shared.
func BuildRelays(urls []string) ([]relay.Relay, error) {
	relays := make([]relay.Relay, 0, len(urls))
	for _, url := range urls {
		switch {
		case strings.HasPrefix(url, "mem://"):
			relays = append(relays, relay.NewMemory(url))
		case strings.HasPrefix(url, "redis://"), strings.HasPrefix(url, "rediss://"):
			r, err := relay.NewRedisRelay(url)
			if err != nil {
				return nil, fmt.Errorf("relay %s: %w", url, err)
			}
			relays = append(relays, r)
		default:
			return nil, fmt.Errorf("relay %s: unsupported scheme", url)
		}
	}
	return relays, nil
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	signer, err := LoadSigner(cfg.KeystorePath())
	if err != nil {
		return nil, err
	}

	relays, err := BuildRelays(cfg.Public.Relays)
	if err != nil {
		return nil, err
	}
	pool := relay.NewPool(relays, cfg.Public.QueryMaxWait)
	s := store.New(signer, pool, cfg.Public.QueryLimit)

	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())
	authMw := mw.NewAuth(jwtService)

	a := access.New(s)
	text := markdown.New()
	now := func() int64 { return time.Now().Unix() }

	boards := service.NewBoard(s, a, text, now)
	threads := service.NewThread(s, a, text, now)
	comments := service.NewComment(s, a, now)
	users := service.NewUser(s, boards, text)
	mod := moderation.New(s, a, text, now)

	h := handler.New(boards, threads, comments, users, mod, text, cfg, jwtService, signer.Pubkey())

	return &Dependencies{
		Config:         cfg,
		Signer:         signer,
		Pool:           pool,
		Store:          s,
		Handler:        h,
		AuthMiddleware: authMw,
		Jwt:            jwtService,
	}, nil
}
