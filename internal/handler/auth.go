package handler

import (
	"net/http"
	"sync"
	"time"

	"github.com/dempa-dev/dempa/internal/record"
	"github.com/dempa-dev/dempa/shared/api"
	"github.com/dempa-dev/dempa/shared/utils"
)

const challengeTTL = 2 * time.Minute

// challengeStore hands out single-use login nonces. Kept in memory: a nonce
// only needs to outlive the round trip to the client's signer.
type challengeStore struct {
	mu     sync.Mutex
	nonces map[string]time.Time
}

func newChallengeStore() *challengeStore {
	return &challengeStore{nonces: make(map[string]time.Time)}
}

func (c *challengeStore) issue() string {
	nonce := utils.GenerateNonce()
	c.mu.Lock()
	defer c.mu.Unlock()
	for n, exp := range c.nonces {
		if time.Now().After(exp) {
			delete(c.nonces, n)
		}
	}
	c.nonces[nonce] = time.Now().Add(challengeTTL)
	return nonce
}

// consume takes the nonce out of the store; a nonce authenticates one login.
func (c *challengeStore) consume(nonce string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	exp, ok := c.nonces[nonce]
	if !ok {
		return false
	}
	delete(c.nonces, nonce)
	return time.Now().Before(exp)
}

// Challenge issues a nonce the client must sign to log in.
func (h *Handler) Challenge(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, api.ChallengeResponse{Nonce: h.challenges.issue()})
}

// Login verifies a signature over a previously issued nonce and sets the
// session cookie. Only the node's own key may log in: this is a personal
// node, other identities run their own.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var body api.LoginRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if body.Pubkey != h.nodePubkey {
		http.Error(w, "Unknown identity", http.StatusUnauthorized)
		return
	}
	if !h.challenges.consume(body.Nonce) {
		http.Error(w, "Unknown or expired challenge", http.StatusUnauthorized)
		return
	}
	if !record.VerifyNonce(body.Pubkey, body.Nonce, body.Signature) {
		http.Error(w, "Signature does not verify", http.StatusUnauthorized)
		return
	}

	token, err := h.jwt.NewToken(body.Pubkey)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "accessToken",
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.cfg.JwtTTL()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, api.LoginResponse{Message: "Logged in", AccessToken: token})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "accessToken",
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, api.LogoutResponse{Message: "Logged out"})
}
