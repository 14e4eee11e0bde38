package seed

import (
	"context"
	"errors"
	"fmt"
)

// seedLockKey is distinct from the migration lock so a long seed never blocks
// a migrator on another node, and vice versa.
const seedLockKey int64 = 6_204_118_337

type unlockFunc func(ctx context.Context) error

func noopUnlock(context.Context) error { return nil }

// acquireSeedLock serializes the check-then-act seeding sequence across
// concurrently starting processes. Dialects without advisory locks (the
// sqlite test store) skip locking; tests run single-process.
func (s *Seeder) acquireSeedLock(ctx context.Context) (unlockFunc, error) {
	if s.db.Dialector.Name() != "postgres" {
		return noopUnlock, nil
	}

	sqlDB, err := s.db.DB()
	if err != nil {
		return nil, fmt.Errorf("seed lock: %w", err)
	}

	var locked bool
	if err := sqlDB.QueryRowContext(ctx, "SELECT pg_try_advisory_lock($1)", seedLockKey).Scan(&locked); err != nil {
		return nil, fmt.Errorf("acquire seed lock: %w", err)
	}
	if !locked {
		return nil, errors.New("another process holds the seed lock")
	}

	return func(unlockCtx context.Context) error {
		var released bool
		if err := sqlDB.QueryRowContext(unlockCtx, "SELECT pg_advisory_unlock($1)", seedLockKey).Scan(&released); err != nil {
			return fmt.Errorf("release seed lock: %w", err)
		}
		if !released {
			return errors.New("seed lock was not held by this session")
		}
		return nil
	}, nil
}
