package usecases

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tracker/internal/application/ticket/dto"
	"tracker/internal/domain/activity"
	"tracker/internal/domain/shared/events"
	"tracker/internal/domain/ticket"
	vo "tracker/internal/domain/ticket/valueobjects"
	"tracker/internal/domain/user"
	"tracker/internal/shared/authorization"
)

type mockTicketRepo struct{ mock.Mock }

func (m *mockTicketRepo) Create(ctx context.Context, t *ticket.Ticket) error {
	return m.Called(ctx, t).Error(0)
}

func (m *mockTicketRepo) Update(ctx context.Context, t *ticket.Ticket) error {
	return m.Called(ctx, t).Error(0)
}

func (m *mockTicketRepo) Touch(ctx context.Context, id uint, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *mockTicketRepo) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ticket.Ticket), args.Error(1)
}

func (m *mockTicketRepo) GetByIDForUpdate(ctx context.Context, id uint) (*ticket.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ticket.Ticket), args.Error(1)
}

func (m *mockTicketRepo) List(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ticket.Ticket), args.Error(1)
}

func (m *mockTicketRepo) CountByStatus(ctx context.Context) (map[vo.TicketStatus]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[vo.TicketStatus]int64), args.Error(1)
}

func (m *mockTicketRepo) CountActiveAssignedTo(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) Update(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uint) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockUserRepo) GetByIDs(ctx context.Context, ids []uint) ([]*user.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*user.User), args.Error(1)
}

func (m *mockUserRepo) List(ctx context.Context) ([]*user.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*user.User), args.Error(1)
}

type mockActivityRepo struct{ mock.Mock }

func (m *mockActivityRepo) Append(ctx context.Context, e *activity.Entry) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockActivityRepo) ListForTicket(ctx context.Context, ticketID uint) ([]*activity.Record, error) {
	args := m.Called(ctx, ticketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*activity.Record), args.Error(1)
}

func (m *mockActivityRepo) List(ctx context.Context, filter activity.Filter) ([]*activity.Record, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*activity.Record), args.Error(1)
}

type mockNumberGenerator struct{ mock.Mock }

func (m *mockNumberGenerator) Next(ctx context.Context, year int) (string, error) {
	args := m.Called(ctx, year)
	return args.String(0), args.Error(1)
}

type mockStatsCache struct{ mock.Mock }

func (m *mockStatsCache) Get(ctx context.Context) (*dto.StatsDTO, bool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*dto.StatsDTO), args.Bool(1), args.Error(2)
}

func (m *mockStatsCache) Set(ctx context.Context, stats dto.StatsDTO) error {
	return m.Called(ctx, stats).Error(0)
}

func (m *mockStatsCache) Invalidate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// passthroughTx runs fn directly with the caller's context.
type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type denyChecker struct{ err error }

func (d denyChecker) Check(context.Context, Actor, Capability) error { return d.err }

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, evts ...events.DomainEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evts...)
}

func (p *recordingPublisher) Actions() []activity.Action {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]activity.Action, 0, len(p.events))
	for _, e := range p.events {
		if re, ok := e.(activity.RecordedEvent); ok {
			out = append(out, re.Action)
		}
	}
	return out
}

type memBlobStore struct {
	mu    sync.Mutex
	seq   int
	blobs map[string][]byte
	err   error
}

func newMemBlobStore() *memBlobStore {
	return &memBlobStore{blobs: make(map[string][]byte)}
}

func (s *memBlobStore) Save(_ context.Context, data []byte, ext string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	s.seq++
	name := fmt.Sprintf("blob%d.%s", s.seq, ext)
	s.blobs[name] = append([]byte(nil), data...)
	return name, nil
}

func (s *memBlobStore) Read(_ context.Context, name string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.blobs[name]
	if !ok {
		return nil, fmt.Errorf("blob %s missing", name)
	}
	return data, nil
}

func (s *memBlobStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blobs)
}

func uintPtr(v uint) *uint { return &v }

func mustUser(t *testing.T, id uint, username, fullName string) *user.User {
	t.Helper()
	u, err := user.ReconstructUser(id, username, fullName, username+"@example.com", authorization.RoleTechnician, "hash", testNow, testNow)
	require.NoError(t, err)
	return u
}

func mustTicket(t *testing.T, id uint, status vo.TicketStatus, priority vo.Priority, assigneeID *uint) *ticket.Ticket {
	t.Helper()
	tk, err := ticket.ReconstructTicket(id, "TKT-2026-0001", "Router down", "", status, priority, vo.CategoryNetwork, 1, assigneeID, testNow, testNow, nil)
	require.NoError(t, err)
	return tk
}

type mockAttachmentRepo struct{ mock.Mock }

func (m *mockAttachmentRepo) Create(ctx context.Context, a *ticket.Attachment) error {
	return m.Called(ctx, a).Error(0)
}

func (m *mockAttachmentRepo) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.Attachment, error) {
	args := m.Called(ctx, ticketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ticket.Attachment), args.Error(1)
}

func (m *mockAttachmentRepo) GetByStoredName(ctx context.Context, storedName string) (*ticket.Attachment, error) {
	args := m.Called(ctx, storedName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ticket.Attachment), args.Error(1)
}
