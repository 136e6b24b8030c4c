package unitofwork

import "context"

// RepositoryFactory opens units of work. Services hold the factory and open
// a fresh unit per request so transactional and non-transactional access to
// the interview repositories share one code path.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
