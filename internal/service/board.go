package service

import (
	"context"
	"sort"

	"github.com/dempa-dev/dempa/internal/access"
	"github.com/dempa-dev/dempa/internal/markdown"
	"github.com/dempa-dev/dempa/internal/record"
	"github.com/dempa-dev/dempa/internal/store"
	"github.com/dempa-dev/dempa/shared/domain"
	"github.com/dempa-dev/dempa/shared/errors"
)

// to mock service in tests
type BoardService interface {
	Create(ctx context.Context, name, description string, roles []domain.Role) (domain.Board, error)
	Find(ctx context.Context, id domain.EntityId) (domain.Board, error)
	All(ctx context.Context) ([]domain.Board, error)
	Save(ctx context.Context, board domain.Board) error
}

type Board struct {
	store  *store.Store
	access *access.Access
	text   *markdown.Renderer
	now    func() int64
}

func NewBoard(s *store.Store, a *access.Access, text *markdown.Renderer, now func() int64) BoardService {
	return &Board{store: s, access: a, text: text, now: now}
}

// validateRoles rejects role tables a board could not be moderated under:
// duplicate role names, unknown actions, or members bound to missing roles.
func validateRoles(roles []domain.Role, members []domain.Member) error {
	names := make(map[domain.RoleName]struct{}, len(roles))
	for _, role := range roles {
		if role.Name == "" {
			return errors.PreconditionFailed("role name must not be empty")
		}
		if _, dup := names[role.Name]; dup {
			return errors.PreconditionFailed("duplicate role %q", role.Name)
		}
		names[role.Name] = struct{}{}
		for _, action := range role.Actions {
			if !action.Valid() {
				return errors.PreconditionFailed("unknown action %q in role %q", action, role.Name)
			}
		}
	}

	seen := make(map[domain.Pubkey]struct{}, len(members))
	for _, m := range members {
		if _, ok := names[m.Role]; !ok {
			return errors.PreconditionFailed("member %s references undefined role %q", m.Pubkey, m.Role)
		}
		if _, dup := seen[m.Pubkey]; dup {
			return errors.PreconditionFailed("member %s listed twice", m.Pubkey)
		}
		seen[m.Pubkey] = struct{}{}
	}
	return nil
}

// Create publishes a new board owned by this node's key.
func (b *Board) Create(ctx context.Context, name, description string, roles []domain.Role) (domain.Board, error) {
	name = b.text.Plain(name)
	if name == "" {
		return domain.Board{}, errors.PreconditionFailed("board name must not be empty")
	}
	if err := validateRoles(roles, nil); err != nil {
		return domain.Board{}, err
	}

	owner := b.store.Signer().Pubkey()
	board := domain.Board{
		Id:            record.NewEntityID(record.KindBoard, owner),
		Name:          name,
		Description:   b.text.Plain(description),
		CreatedAt:     b.now(),
		Roles:         roles,
		OwnerList:     []domain.Pubkey{owner},
		SchemaVersion: domain.BoardSchemaVersion,
	}

	if err := b.store.Publish(ctx, board, record.KindBoard, board.Id); err != nil {
		return domain.Board{}, err
	}
	return board, nil
}

func (b *Board) Find(ctx context.Context, id domain.EntityId) (domain.Board, error) {
	board, ok, err := store.Get[domain.Board](ctx, b.store, record.KindBoard, id)
	if err != nil {
		return domain.Board{}, err
	}
	if !ok {
		return domain.Board{}, errors.NotFound("board %s not found", id)
	}
	return board, nil
}

func (b *Board) All(ctx context.Context) ([]domain.Board, error) {
	boards, err := store.List[domain.Board](ctx, b.store, record.KindBoard)
	if err != nil {
		return nil, err
	}
	sort.Slice(boards, func(i, j int) bool {
		if boards[i].CreatedAt != boards[j].CreatedAt {
			return boards[i].CreatedAt < boards[j].CreatedAt
		}
		return boards[i].Id < boards[j].Id
	})
	return boards, nil
}

// Save republishes a modified board. Only an owner may change the role
// table, and the edit must not orphan members or drop ownership entirely.
func (b *Board) Save(ctx context.Context, board domain.Board) error {
	current, err := b.Find(ctx, board.Id)
	if err != nil {
		return err
	}
	if !current.IsOwner(b.store.Signer().Pubkey()) {
		return errors.PermissionDenied("only a board owner may edit board %s", board.Id)
	}
	if len(board.OwnerList) == 0 {
		return errors.PreconditionFailed("board must keep at least one owner")
	}
	if err := validateRoles(board.Roles, board.Members); err != nil {
		return err
	}

	board.SchemaVersion = domain.BoardSchemaVersion
	return b.store.Publish(ctx, board, record.KindBoard, board.Id)
}
