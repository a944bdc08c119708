// Package access answers permission questions against a board's role table
// and mutates it on grants. It reads boards through the store, so every
// decision reflects the latest board revision the relays returned.
package access

import (
	"context"

	"github.com/dempa-dev/dempa/internal/record"
	"github.com/dempa-dev/dempa/internal/store"
	"github.com/dempa-dev/dempa/shared/domain"
	"github.com/dempa-dev/dempa/shared/errors"
)

type Access struct {
	store *store.Store
}

func New(s *store.Store) *Access {
	return &Access{store: s}
}

func (a *Access) board(ctx context.Context, boardId domain.EntityId) (domain.Board, error) {
	board, ok, err := store.Get[domain.Board](ctx, a.store, record.KindBoard, boardId)
	if err != nil {
		return domain.Board{}, err
	}
	if !ok {
		return domain.Board{}, errors.NotFound("board %s not found", boardId)
	}
	return board, nil
}

// Can reports whether pubkey may perform action on the board. Owners may do
// anything; everyone else needs a membership whose role grants the action.
func (a *Access) Can(ctx context.Context, boardId domain.EntityId, pubkey domain.Pubkey, action domain.Action) (bool, error) {
	board, err := a.board(ctx, boardId)
	if err != nil {
		return false, err
	}
	return CanOnBoard(&board, pubkey, action), nil
}

// CanOnBoard is the pure decision over an already-resolved board.
func CanOnBoard(board *domain.Board, pubkey domain.Pubkey, action domain.Action) bool {
	if board.IsOwner(pubkey) {
		return true
	}
	member := board.FindMember(pubkey)
	if member == nil {
		return false
	}
	role := board.FindRole(member.Role)
	return role != nil && role.HasAction(action)
}

// Approvers returns everyone who may moderate requests on the board: the
// owners plus every member whose role grants the Board action, deduplicated.
func (a *Access) Approvers(ctx context.Context, boardId domain.EntityId) ([]domain.Pubkey, error) {
	board, err := a.board(ctx, boardId)
	if err != nil {
		return nil, err
	}
	return ApproversOnBoard(&board), nil
}

func ApproversOnBoard(board *domain.Board) []domain.Pubkey {
	seen := make(map[domain.Pubkey]struct{})
	var out []domain.Pubkey
	add := func(pk domain.Pubkey) {
		if _, ok := seen[pk]; ok {
			return
		}
		seen[pk] = struct{}{}
		out = append(out, pk)
	}

	for _, owner := range board.OwnerList {
		add(owner)
	}
	for _, member := range board.Members {
		role := board.FindRole(member.Role)
		if role != nil && role.HasAction(domain.ActionBoard) {
			add(member.Pubkey)
		}
	}
	return out
}

// CanApprove reports whether pubkey moderates the board.
func (a *Access) CanApprove(ctx context.Context, boardId domain.EntityId, pubkey domain.Pubkey) (bool, error) {
	board, err := a.board(ctx, boardId)
	if err != nil {
		return false, err
	}
	return CanOnBoard(&board, pubkey, domain.ActionBoard), nil
}

// Grant gives pubkey the action on the board and republishes it. An existing
// member keeps their role and the action joins that role's set (which widens
// it for everyone holding the role). A non-member is added under the
// action's conventional role, reused when the board already defines it.
// Granting an action the pubkey already holds is a no-op.
func (a *Access) Grant(ctx context.Context, boardId domain.EntityId, pubkey domain.Pubkey, action domain.Action) error {
	board, err := a.board(ctx, boardId)
	if err != nil {
		return err
	}

	if CanOnBoard(&board, pubkey, action) {
		return nil
	}

	if member := board.FindMember(pubkey); member != nil {
		role := board.FindRole(member.Role)
		if role == nil {
			// Membership referencing an undefined role; materialize it.
			board.Roles = append(board.Roles, domain.Role{
				Name:    member.Role,
				Actions: []domain.Action{action},
			})
		} else {
			role.Actions = append(role.Actions, action)
		}
	} else {
		roleName := action.GrantedRoleName()
		role := board.FindRole(roleName)
		if role == nil {
			board.Roles = append(board.Roles, domain.Role{
				Name:    roleName,
				Actions: []domain.Action{action},
			})
		} else if !role.HasAction(action) {
			role.Actions = append(role.Actions, action)
		}
		board.Members = append(board.Members, domain.Member{Pubkey: pubkey, Role: roleName})
	}

	board.SchemaVersion = domain.BoardSchemaVersion
	return a.store.Publish(ctx, board, record.KindBoard, board.Id)
}
