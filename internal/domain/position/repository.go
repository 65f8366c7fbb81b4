package position

import "context"

type PositionRepository interface {
	Create(ctx context.Context, p Position) (Position, error)
	GetByID(ctx context.Context, id string) (Position, error)
	GetByName(ctx context.Context, name string) (Position, error)
	List(ctx context.Context) ([]PositionDetail, error)
	ListAll(ctx context.Context) ([]Position, error)
	Update(ctx context.Context, req UpdatePositionRequest) error
	// ListByBossPosition returns the positions whose boss position is the
	// given one: a single hop down the hierarchy, not the full subtree.
	ListByBossPosition(ctx context.Context, bossPositionID string) ([]Position, error)
}
