package menu

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

const dishColumns = `
	id,
	name,
	category,
	type,
	price,
	image,
	description,
	restaurant_ids,
	rating,
	available,
	created_at,
	updated_at
`

func scanDish(row pgx.Row) (*Dish, error) {
	var d Dish
	var restaurantIDs []string

	if err := row.Scan(
		&d.ID,
		&d.Name,
		&d.Category,
		&d.Type,
		&d.Price,
		&d.Image,
		&d.Description,
		&restaurantIDs,
		&d.Rating,
		&d.Available,
		&d.CreatedAt,
		&d.UpdatedAt,
	); err != nil {
		return nil, err
	}

	d.RestaurantIDs = restaurantIDs
	d.Normalize()
	return &d, nil
}

// --------------------------------------------------
// List all dishes (storefront filters availability)
// --------------------------------------------------
func (r *PostgresRepository) List(ctx context.Context) ([]Dish, error) {
	rows, err := r.db.Query(ctx, `SELECT `+dishColumns+` FROM dishes ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dishes []Dish
	for rows.Next() {
		d, err := scanDish(rows)
		if err != nil {
			return nil, err
		}
		dishes = append(dishes, *d)
	}

	return dishes, rows.Err()
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Dish, error) {
	d, err := scanDish(r.db.QueryRow(ctx, `SELECT `+dishColumns+` FROM dishes WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

// --------------------------------------------------
// ADMIN
// --------------------------------------------------
func (r *PostgresRepository) Create(ctx context.Context, dish *Dish) error {
	if dish.ID == "" {
		dish.ID = uuid.New().String()
	}

	err := r.db.QueryRow(ctx, `
		INSERT INTO dishes (
			id,
			name,
			category,
			type,
			price,
			image,
			description,
			restaurant_ids,
			available,
			created_at,
			updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
		RETURNING created_at, updated_at
	`,
		dish.ID,
		dish.Name,
		dish.Category,
		dish.Type,
		dish.Price,
		dish.Image,
		dish.Description,
		[]string(dish.RestaurantIDs),
		dish.Available,
	).Scan(&dish.CreatedAt, &dish.UpdatedAt)
	if err != nil {
		return err
	}

	dish.Normalize()
	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, dish *Dish) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE dishes
		SET name = $2,
		    category = $3,
		    type = $4,
		    price = $5,
		    image = $6,
		    description = $7,
		    restaurant_ids = $8,
		    available = $9,
		    updated_at = now()
		WHERE id = $1
	`,
		dish.ID,
		dish.Name,
		dish.Category,
		dish.Type,
		dish.Price,
		dish.Image,
		dish.Description,
		[]string(dish.RestaurantIDs),
		dish.Available,
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
	cmd, err := r.db.Exec(ctx, `DELETE FROM dishes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) SetAvailability(ctx context.Context, id string, available bool) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE dishes
		SET available = $2,
		    updated_at = now()
		WHERE id = $1
	`, id, available)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
