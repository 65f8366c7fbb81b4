package postgresql

import (
	"context"
	"fmt"

	"github.com/kpimanager/kpi-backend-go/internal/domain/position"
	"github.com/kpimanager/kpi-backend-go/internal/pkg/database"
)

type positionRepositoryImpl struct {
	db *database.DB
}

func NewPositionRepository(db *database.DB) position.PositionRepository {
	return &positionRepositoryImpl{db: db}
}

// Create implements position.PositionRepository.
func (r *positionRepositoryImpl) Create(ctx context.Context, p position.Position) (position.Position, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO positions (id, name, department_id, boss_position_id, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, NOW(), NOW())
		RETURNING id, name, department_id, boss_position_id
	`

	var result position.Position
	err := q.QueryRow(ctx, query, p.Name, p.DepartmentID, p.BossPositionID).Scan(
		&result.ID,
		&result.Name,
		&result.DepartmentID,
		&result.BossPositionID,
	)

	if err != nil {
		return position.Position{}, fmt.Errorf("failed to create position: %w", err)
	}

	return result, nil
}

// GetByID implements position.PositionRepository.
func (r *positionRepositoryImpl) GetByID(ctx context.Context, id string) (position.Position, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, department_id, boss_position_id
		FROM positions
		WHERE id = $1
	`

	var result position.Position
	err := q.QueryRow(ctx, query, id).Scan(
		&result.ID,
		&result.Name,
		&result.DepartmentID,
		&result.BossPositionID,
	)

	if err != nil {
		return position.Position{}, fmt.Errorf("failed to get position: %w", err)
	}

	return result, nil
}

// GetByName implements position.PositionRepository.
func (r *positionRepositoryImpl) GetByName(ctx context.Context, name string) (position.Position, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, department_id, boss_position_id
		FROM positions
		WHERE name = $1
	`

	var result position.Position
	err := q.QueryRow(ctx, query, name).Scan(
		&result.ID,
		&result.Name,
		&result.DepartmentID,
		&result.BossPositionID,
	)

	if err != nil {
		return position.Position{}, fmt.Errorf("failed to get position by name: %w", err)
	}

	return result, nil
}

// List implements position.PositionRepository.
func (r *positionRepositoryImpl) List(ctx context.Context) ([]position.PositionDetail, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.id, p.name, p.department_id, d.name, p.boss_position_id, b.name
		FROM positions p
		LEFT JOIN departments d ON p.department_id = d.id
		LEFT JOIN positions b ON p.boss_position_id = b.id
		ORDER BY p.name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}
	defer rows.Close()

	var positions []position.PositionDetail
	for rows.Next() {
		var p position.PositionDetail
		err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.DepartmentID,
			&p.DepartmentName,
			&p.BossPositionID,
			&p.BossName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		positions = append(positions, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return positions, nil
}

// ListAll implements position.PositionRepository.
func (r *positionRepositoryImpl) ListAll(ctx context.Context) ([]position.Position, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, department_id, boss_position_id
		FROM positions
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}
	defer rows.Close()

	var positions []position.Position
	for rows.Next() {
		var p position.Position
		err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.DepartmentID,
			&p.BossPositionID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		positions = append(positions, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return positions, nil
}

// Update implements position.PositionRepository.
func (r *positionRepositoryImpl) Update(ctx context.Context, req position.UpdatePositionRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE positions
		SET name = $1, department_id = $2, boss_position_id = $3, updated_at = NOW()
		WHERE id = $4
	`

	commandTag, err := q.Exec(ctx, query, req.Name, req.DepartmentID, req.BossPositionID, req.ID)
	if err != nil {
		return fmt.Errorf("failed to update position: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return position.ErrPositionNotFound
	}

	return nil
}

// ListByBossPosition implements position.PositionRepository.
func (r *positionRepositoryImpl) ListByBossPosition(ctx context.Context, bossPositionID string) ([]position.Position, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, department_id, boss_position_id
		FROM positions
		WHERE boss_position_id = $1
	`

	rows, err := q.Query(ctx, query, bossPositionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subordinate positions: %w", err)
	}
	defer rows.Close()

	var positions []position.Position
	for rows.Next() {
		var p position.Position
		err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.DepartmentID,
			&p.BossPositionID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		positions = append(positions, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return positions, nil
}
