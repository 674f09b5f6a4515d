package usecases

import (
	"context"

	"tracker/internal/application/ticket/dto"
	"tracker/internal/shared/authorization"
)

// Actor is the authenticated user performing a request.
type Actor struct {
	ID   uint
	Name string
	Role authorization.UserRole
}

type Capability string

const (
	CapabilityCreate  Capability = "ticket:create"
	CapabilityUpdate  Capability = "ticket:update"
	CapabilityComment Capability = "ticket:comment"
	CapabilityAttach  Capability = "ticket:attach"
)

var AllCapabilities = []Capability{CapabilityCreate, CapabilityUpdate, CapabilityComment, CapabilityAttach}

func (c Capability) String() string { return string(c) }

// CapabilityChecker is consulted by every mutating use case before any state
// changes. A non-nil error (normally a ForbiddenError) aborts the operation.
type CapabilityChecker interface {
	Check(ctx context.Context, actor Actor, capability Capability) error
}

// AllowAllChecker grants every capability.
type AllowAllChecker struct{}

func (AllowAllChecker) Check(context.Context, Actor, Capability) error { return nil }

// BlobStore keeps attachment bytes outside the database. Save returns a
// generated, collision-resistant name ending in "."+ext.
type BlobStore interface {
	Save(ctx context.Context, data []byte, ext string) (string, error)
	Read(ctx context.Context, storedName string) ([]byte, error)
}

// StatsCache caches the global dashboard counts.
type StatsCache interface {
	Get(ctx context.Context) (*dto.StatsDTO, bool, error)
	Set(ctx context.Context, stats dto.StatsDTO) error
	Invalidate(ctx context.Context) error
}

// NopStatsCache never hits.
type NopStatsCache struct{}

func (NopStatsCache) Get(context.Context) (*dto.StatsDTO, bool, error) { return nil, false, nil }
func (NopStatsCache) Set(context.Context, dto.StatsDTO) error          { return nil }
func (NopStatsCache) Invalidate(context.Context) error                 { return nil }

// TxRunner runs fn in one storage transaction.
type TxRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
