package review

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	ListByDish(ctx context.Context, dishID string) ([]Review, error)
	Create(ctx context.Context, r *Review) error
}

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByDish(ctx context.Context, dishID string) ([]Review, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, dish_id, user_id, user_name, rating, comment, created_at
		FROM reviews
		WHERE dish_id = $1
		ORDER BY created_at DESC
	`, dishID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []Review{}
	for rows.Next() {
		var rv Review
		if err := rows.Scan(
			&rv.ID,
			&rv.DishID,
			&rv.UserID,
			&rv.UserName,
			&rv.Rating,
			&rv.Comment,
			&rv.CreatedAt,
		); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *PostgresRepository) Create(ctx context.Context, rv *Review) error {
	if rv.ID == "" {
		rv.ID = uuid.New().String()
	}

	return r.db.QueryRow(ctx, `
		INSERT INTO reviews (id, dish_id, user_id, user_name, rating, comment)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, rv.ID, rv.DishID, rv.UserID, rv.UserName, rv.Rating, rv.Comment).Scan(&rv.CreatedAt)
}

type InMemoryRepository struct {
	mu      sync.Mutex
	reviews []Review
	now     func() time.Time
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{now: time.Now}
}

func (r *InMemoryRepository) ListByDish(ctx context.Context, dishID string) ([]Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []Review{}
	for _, rv := range r.reviews {
		if rv.DishID == dishID {
			out = append(out, rv)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *InMemoryRepository) Create(ctx context.Context, rv *Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rv.ID == "" {
		rv.ID = uuid.New().String()
	}
	rv.CreatedAt = r.now()
	r.reviews = append(r.reviews, *rv)
	return nil
}
