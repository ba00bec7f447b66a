package mirror

import (
	"context"
	"fmt"
	"log"

	"github.com/Taiyi-94/prun-universe-map/internal/application/tracking"
	"github.com/Taiyi-94/prun-universe-map/internal/domain/contract"
)

// Repository is the shared store the mirror writes into.
type Repository interface {
	Upsert(ctx context.Context, c *contract.Contract, snapshotVersion string) error
	DeleteStale(ctx context.Context, snapshotVersion string) error
}

// Service mirrors the contract data of a snapshot into the shared store on a
// schedule. The mirror is write-only from this side; other consumers read it.
type Service struct {
	repo Repository
}

// NewService creates a mirror service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// MirrorSnapshot upserts every contract of the snapshot and prunes mirrors
// from earlier snapshots. Individual upsert failures abort the pass; the next
// scheduled pass starts over from the then-current snapshot.
func (s *Service) MirrorSnapshot(ctx context.Context, snap *tracking.Snapshot) error {
	for _, c := range snap.Contracts {
		if err := s.repo.Upsert(ctx, c, snap.Version); err != nil {
			return fmt.Errorf("mirror pass aborted: %w", err)
		}
	}

	if err := s.repo.DeleteStale(ctx, snap.Version); err != nil {
		return fmt.Errorf("mirror prune failed: %w", err)
	}

	log.Printf("mirror: %d contracts mirrored (snapshot %s)", len(snap.Contracts), snap.Version)
	return nil
}
