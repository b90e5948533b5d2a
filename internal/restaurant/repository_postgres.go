package restaurant

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// List all restaurants
// --------------------------------------------------
func (r *PostgresRepository) List(ctx context.Context) ([]*Restaurant, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
			id,
			name,
			description,
			address,
			type,
			image,
			created_at
		FROM restaurants
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var restaurants []*Restaurant

	for rows.Next() {
		var res Restaurant
		if err := rows.Scan(
			&res.ID,
			&res.Name,
			&res.Description,
			&res.Address,
			&res.Type,
			&res.Image,
			&res.CreatedAt,
		); err != nil {
			return nil, err
		}
		restaurants = append(restaurants, &res)
	}

	return restaurants, rows.Err()
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Restaurant, error) {
	var res Restaurant

	err := r.db.QueryRow(ctx, `
		SELECT
			id,
			name,
			description,
			address,
			type,
			image,
			created_at
		FROM restaurants
		WHERE id = $1
	`, id).Scan(
		&res.ID,
		&res.Name,
		&res.Description,
		&res.Address,
		&res.Type,
		&res.Image,
		&res.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &res, nil
}

// --------------------------------------------------
// ADMIN
// --------------------------------------------------
func (r *PostgresRepository) Create(ctx context.Context, restaurant *Restaurant) error {
	if restaurant.ID == "" {
		restaurant.ID = uuid.New().String()
	}

	return r.db.QueryRow(ctx, `
		INSERT INTO restaurants (
			id,
			name,
			description,
			address,
			type,
			image
		)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`,
		restaurant.ID,
		restaurant.Name,
		restaurant.Description,
		restaurant.Address,
		restaurant.Type,
		restaurant.Image,
	).Scan(&restaurant.CreatedAt)
}

func (r *PostgresRepository) Update(ctx context.Context, restaurant *Restaurant) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE restaurants
		SET name = $2,
		    description = $3,
		    address = $4,
		    type = $5,
		    image = $6
		WHERE id = $1
	`,
		restaurant.ID,
		restaurant.Name,
		restaurant.Description,
		restaurant.Address,
		restaurant.Type,
		restaurant.Image,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM restaurants WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
