package handler

import (
	"context"

	"github.com/dempa-dev/dempa/shared/domain"
)

type MockBoardService struct {
	MockCreate func(ctx context.Context, name, description string, roles []domain.Role) (domain.Board, error)
	MockFind   func(ctx context.Context, id domain.EntityId) (domain.Board, error)
	MockAll    func(ctx context.Context) ([]domain.Board, error)
	MockSave   func(ctx context.Context, board domain.Board) error
}

func (m *MockBoardService) Create(ctx context.Context, name, description string, roles []domain.Role) (domain.Board, error) {
	if m.MockCreate != nil {
		return m.MockCreate(ctx, name, description, roles)
	}
	return domain.Board{}, nil
}

func (m *MockBoardService) Find(ctx context.Context, id domain.EntityId) (domain.Board, error) {
	if m.MockFind != nil {
		return m.MockFind(ctx, id)
	}
	return domain.Board{}, nil
}

func (m *MockBoardService) All(ctx context.Context) ([]domain.Board, error) {
	if m.MockAll != nil {
		return m.MockAll(ctx)
	}
	return nil, nil
}

func (m *MockBoardService) Save(ctx context.Context, board domain.Board) error {
	if m.MockSave != nil {
		return m.MockSave(ctx, board)
	}
	return nil
}

type MockThreadService struct {
	MockCreate func(ctx context.Context, boardId domain.EntityId, title, content string) (domain.Thread, error)
	MockFind   func(ctx context.Context, id domain.EntityId) (domain.Thread, error)
	MockAll    func(ctx context.Context, boardId domain.EntityId) ([]domain.Thread, error)
	MockDelete func(ctx context.Context, id domain.EntityId) error
}

func (m *MockThreadService) Create(ctx context.Context, boardId domain.EntityId, title, content string) (domain.Thread, error) {
	if m.MockCreate != nil {
		return m.MockCreate(ctx, boardId, title, content)
	}
	return domain.Thread{}, nil
}

func (m *MockThreadService) Find(ctx context.Context, id domain.EntityId) (domain.Thread, error) {
	if m.MockFind != nil {
		return m.MockFind(ctx, id)
	}
	return domain.Thread{}, nil
}

func (m *MockThreadService) All(ctx context.Context, boardId domain.EntityId) ([]domain.Thread, error) {
	if m.MockAll != nil {
		return m.MockAll(ctx, boardId)
	}
	return nil, nil
}

func (m *MockThreadService) Delete(ctx context.Context, id domain.EntityId) error {
	if m.MockDelete != nil {
		return m.MockDelete(ctx, id)
	}
	return nil
}

type MockCommentService struct {
	MockCreate func(ctx context.Context, threadId domain.EntityId, content string) (domain.Comment, error)
	MockFind   func(ctx context.Context, id domain.EntityId) (domain.Comment, error)
	MockAll    func(ctx context.Context, threadId domain.EntityId) ([]domain.Comment, error)
	MockDelete func(ctx context.Context, id domain.EntityId) error
}

func (m *MockCommentService) Create(ctx context.Context, threadId domain.EntityId, content string) (domain.Comment, error) {
	if m.MockCreate != nil {
		return m.MockCreate(ctx, threadId, content)
	}
	return domain.Comment{}, nil
}

func (m *MockCommentService) Find(ctx context.Context, id domain.EntityId) (domain.Comment, error) {
	if m.MockFind != nil {
		return m.MockFind(ctx, id)
	}
	return domain.Comment{}, nil
}

func (m *MockCommentService) All(ctx context.Context, threadId domain.EntityId) ([]domain.Comment, error) {
	if m.MockAll != nil {
		return m.MockAll(ctx, threadId)
	}
	return nil, nil
}

func (m *MockCommentService) Delete(ctx context.Context, id domain.EntityId) error {
	if m.MockDelete != nil {
		return m.MockDelete(ctx, id)
	}
	return nil
}

type MockUserService struct {
	MockRegister     func(ctx context.Context, name string) (domain.User, error)
	MockCurrent      func(ctx context.Context) (domain.User, error)
	MockFindByPubkey func(ctx context.Context, pubkey domain.Pubkey) (domain.User, error)
	MockUpdate       func(ctx context.Context, name string) (domain.User, error)
	MockJoinBoard    func(ctx context.Context, boardId domain.EntityId) (domain.User, error)
	MockJoinedBoards func(ctx context.Context) ([]domain.Board, error)
}

func (m *MockUserService) Register(ctx context.Context, name string) (domain.User, error) {
	if m.MockRegister != nil {
		return m.MockRegister(ctx, name)
	}
	return domain.User{}, nil
}

func (m *MockUserService) Current(ctx context.Context) (domain.User, error) {
	if m.MockCurrent != nil {
		return m.MockCurrent(ctx)
	}
	return domain.User{}, nil
}

func (m *MockUserService) FindByPubkey(ctx context.Context, pubkey domain.Pubkey) (domain.User, error) {
	if m.MockFindByPubkey != nil {
		return m.MockFindByPubkey(ctx, pubkey)
	}
	return domain.User{}, nil
}

func (m *MockUserService) Update(ctx context.Context, name string) (domain.User, error) {
	if m.MockUpdate != nil {
		return m.MockUpdate(ctx, name)
	}
	return domain.User{}, nil
}

func (m *MockUserService) JoinBoard(ctx context.Context, boardId domain.EntityId) (domain.User, error) {
	if m.MockJoinBoard != nil {
		return m.MockJoinBoard(ctx, boardId)
	}
	return domain.User{}, nil
}

func (m *MockUserService) JoinedBoards(ctx context.Context) ([]domain.Board, error) {
	if m.MockJoinedBoards != nil {
		return m.MockJoinedBoards(ctx)
	}
	return nil, nil
}

type MockModerationService struct {
	MockCreateThreadRequest     func(ctx context.Context, boardId domain.EntityId, title, content string) (domain.ThreadRequest, error)
	MockApproveThreadRequest    func(ctx context.Context, requestId domain.EntityId) (domain.ThreadRequest, error)
	MockRejectThreadRequest     func(ctx context.Context, requestId domain.EntityId) (domain.ThreadRequest, error)
	MockPendingThreadRequests   func(ctx context.Context, boardId domain.EntityId) ([]domain.ThreadRequest, error)
	MockProcessedThreadRequests func(ctx context.Context, boardId domain.EntityId) ([]domain.ThreadRequest, error)
	MockThreadRequests          func(ctx context.Context, boardId domain.EntityId) ([]domain.ThreadRequest, error)

	MockCreateCommentRequest     func(ctx context.Context, threadId domain.EntityId, content string) (domain.CommentRequest, error)
	MockApproveCommentRequest    func(ctx context.Context, requestId domain.EntityId) (domain.CommentRequest, error)
	MockRejectCommentRequest     func(ctx context.Context, requestId domain.EntityId) (domain.CommentRequest, error)
	MockPendingCommentRequests   func(ctx context.Context, threadId domain.EntityId) ([]domain.CommentRequest, error)
	MockProcessedCommentRequests func(ctx context.Context, threadId domain.EntityId) ([]domain.CommentRequest, error)
	MockCommentRequests          func(ctx context.Context, threadId domain.EntityId) ([]domain.CommentRequest, error)

	MockApprovers func(ctx context.Context, boardId domain.EntityId) ([]domain.Pubkey, error)
}

func (m *MockModerationService) CreateThreadRequest(ctx context.Context, boardId domain.EntityId, title, content string) (domain.ThreadRequest, error) {
	if m.MockCreateThreadRequest != nil {
		return m.MockCreateThreadRequest(ctx, boardId, title, content)
	}
	return domain.ThreadRequest{}, nil
}

func (m *MockModerationService) ApproveThreadRequest(ctx context.Context, requestId domain.EntityId) (domain.ThreadRequest, error) {
	if m.MockApproveThreadRequest != nil {
		return m.MockApproveThreadRequest(ctx, requestId)
	}
	return domain.ThreadRequest{}, nil
}

func (m *MockModerationService) RejectThreadRequest(ctx context.Context, requestId domain.EntityId) (domain.ThreadRequest, error) {
	if m.MockRejectThreadRequest != nil {
		return m.MockRejectThreadRequest(ctx, requestId)
	}
	return domain.ThreadRequest{}, nil
}

func (m *MockModerationService) PendingThreadRequests(ctx context.Context, boardId domain.EntityId) ([]domain.ThreadRequest, error) {
	if m.MockPendingThreadRequests != nil {
		return m.MockPendingThreadRequests(ctx, boardId)
	}
	return nil, nil
}

func (m *MockModerationService) ProcessedThreadRequests(ctx context.Context, boardId domain.EntityId) ([]domain.ThreadRequest, error) {
	if m.MockProcessedThreadRequests != nil {
		return m.MockProcessedThreadRequests(ctx, boardId)
	}
	return nil, nil
}

func (m *MockModerationService) ThreadRequests(ctx context.Context, boardId domain.EntityId) ([]domain.ThreadRequest, error) {
	if m.MockThreadRequests != nil {
		return m.MockThreadRequests(ctx, boardId)
	}
	return nil, nil
}

func (m *MockModerationService) CreateCommentRequest(ctx context.Context, threadId domain.EntityId, content string) (domain.CommentRequest, error) {
	if m.MockCreateCommentRequest != nil {
		return m.MockCreateCommentRequest(ctx, threadId, content)
	}
	return domain.CommentRequest{}, nil
}

func (m *MockModerationService) ApproveCommentRequest(ctx context.Context, requestId domain.EntityId) (domain.CommentRequest, error) {
	if m.MockApproveCommentRequest != nil {
		return m.MockApproveCommentRequest(ctx, requestId)
	}
	return domain.CommentRequest{}, nil
}

func (m *MockModerationService) RejectCommentRequest(ctx context.Context, requestId domain.EntityId) (domain.CommentRequest, error) {
	if m.MockRejectCommentRequest != nil {
		return m.MockRejectCommentRequest(ctx, requestId)
	}
	return domain.CommentRequest{}, nil
}

func (m *MockModerationService) PendingCommentRequests(ctx context.Context, threadId domain.EntityId) ([]domain.CommentRequest, error) {
	if m.MockPendingCommentRequests != nil {
		return m.MockPendingCommentRequests(ctx, threadId)
	}
	return nil, nil
}

func (m *MockModerationService) ProcessedCommentRequests(ctx context.Context, threadId domain.EntityId) ([]domain.CommentRequest, error) {
	if m.MockProcessedCommentRequests != nil {
		return m.MockProcessedCommentRequests(ctx, threadId)
	}
	return nil, nil
}

func (m *MockModerationService) CommentRequests(ctx context.Context, threadId domain.EntityId) ([]domain.CommentRequest, error) {
	if m.MockCommentRequests != nil {
		return m.MockCommentRequests(ctx, threadId)
	}
	return nil, nil
}

func (m *MockModerationService) Approvers(ctx context.Context, boardId domain.EntityId) ([]domain.Pubkey, error) {
	if m.MockApprovers != nil {
		return m.MockApprovers(ctx, boardId)
	}
	return nil, nil
}
