package promotion

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("promotion not found")

type Repository interface {
	List(ctx context.Context) ([]Promotion, error)
	Create(ctx context.Context, p *Promotion) error
	Delete(ctx context.Context, id string) error
}

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]Promotion, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, title, description, discount_percent, created_at
		FROM promotions
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	promotions := []Promotion{}
	for rows.Next() {
		var p Promotion
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.DiscountPercent, &p.CreatedAt); err != nil {
			return nil, err
		}
		promotions = append(promotions, p)
	}
	return promotions, rows.Err()
}

func (r *PostgresRepository) Create(ctx context.Context, p *Promotion) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	return r.db.QueryRow(ctx, `
		INSERT INTO promotions (id, title, description, discount_percent)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, p.ID, p.Title, p.Description, p.DiscountPercent).Scan(&p.CreatedAt)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM promotions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type InMemoryRepository struct {
	mu         sync.Mutex
	promotions []Promotion
}

func NewInMemoryRepository(seed ...Promotion) *InMemoryRepository {
	return &InMemoryRepository{promotions: seed}
}

func (r *InMemoryRepository) List(ctx context.Context) ([]Promotion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Promotion, len(r.promotions))
	copy(out, r.promotions)
	return out, nil
}

func (r *InMemoryRepository) Create(ctx context.Context, p *Promotion) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.CreatedAt = time.Now()
	r.promotions = append(r.promotions, *p)
	return nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.promotions {
		if p.ID == id {
			r.promotions = append(r.promotions[:i], r.promotions[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
