package handler

import (
	"encoding/json"
	"net/http"

	"github.com/dempa-dev/dempa/internal/markdown"
	"github.com/dempa-dev/dempa/internal/moderation"
	"github.com/dempa-dev/dempa/internal/service"
	"github.com/dempa-dev/dempa/shared/config"
	"github.com/dempa-dev/dempa/shared/jwt"
	"github.com/dempa-dev/dempa/shared/logger"
)

type Handler struct {
	boards     service.BoardService
	threads    service.ThreadService
	comments   service.CommentService
	users      service.UserService
	moderation moderation.Service
	text       *markdown.Renderer
	cfg        *config.Config
	jwt        jwt.JwtService
	nodePubkey string
	challenges *challengeStore
}

func New(
	boards service.BoardService,
	threads service.ThreadService,
	comments service.CommentService,
	users service.UserService,
	mod moderation.Service,
	text *markdown.Renderer,
	cfg *config.Config,
	jwtService jwt.JwtService,
	nodePubkey string,
) *Handler {
	return &Handler{
		boards:     boards,
		threads:    threads,
		comments:   comments,
		users:      users,
		moderation: mod,
		text:       text,
		cfg:        cfg,
		jwt:        jwtService,
		nodePubkey: nodePubkey,
		challenges: newChallengeStore(),
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error(err.Error())
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
}

func writeJSONStatus(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error(err.Error())
	}
}
