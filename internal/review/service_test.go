package review

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeDishes map[string]bool

func (f fakeDishes) Exists(ctx context.Context, dishID string) (bool, error) {
	return f[dishID], nil
}

type fakeUsers map[string]string

func (f fakeUsers) DisplayName(ctx context.Context, userID string) (string, error) {
	name, ok := f[userID]
	if !ok {
		return "", errors.New("user not found")
	}
	return name, nil
}

func newTestService() (*Service, *InMemoryRepository) {
	repo := NewInMemoryRepository()
	return NewService(repo, fakeDishes{"d1": true}, fakeUsers{"u1": "Lan"}), repo
}

func TestCreateReview_Success(t *testing.T) {
	service, _ := newTestService()

	rv, err := service.Create(context.Background(), "d1", "u1", 5, "  Ngon tuyệt  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rv.ID == "" || rv.UserName != "Lan" || rv.Comment != "Ngon tuyệt" {
		t.Fatalf("unexpected review %+v", rv)
	}
}

func TestCreateReview_Validation(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	if _, err := service.Create(ctx, "d1", "u1", 0, "ok"); !errors.Is(err, ErrInvalidRating) {
		t.Errorf("expected ErrInvalidRating, got %v", err)
	}
	if _, err := service.Create(ctx, "d1", "u1", 6, "ok"); !errors.Is(err, ErrInvalidRating) {
		t.Errorf("expected ErrInvalidRating, got %v", err)
	}
	if _, err := service.Create(ctx, "d1", "u1", 3, "   "); !errors.Is(err, ErrEmptyComment) {
		t.Errorf("expected ErrEmptyComment, got %v", err)
	}
	if _, err := service.Create(ctx, "missing", "u1", 3, "ok"); !errors.Is(err, ErrUnknownDish) {
		t.Errorf("expected ErrUnknownDish, got %v", err)
	}
}

func TestListByDish_NewestFirstAndSummary(t *testing.T) {
	service, repo := newTestService()
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	repo.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	service.Create(ctx, "d1", "u1", 4, "first")
	service.Create(ctx, "d1", "u1", 5, "second")

	reviews, err := service.ListByDish(ctx, "d1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reviews) != 2 || reviews[0].Comment != "second" {
		t.Fatalf("expected newest first, got %+v", reviews)
	}

	sum, _ := service.Summary(ctx, "d1")
	if sum.Count != 2 || sum.Average != 4.5 {
		t.Fatalf("unexpected summary %+v", sum)
	}

	empty, _ := service.Summary(ctx, "d2")
	if empty.Count != 0 || empty.Average != 0 {
		t.Fatalf("unexpected empty summary %+v", empty)
	}
}
