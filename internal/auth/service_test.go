package auth

import (
	"context"
	"errors"
	"testing"
)

func registerDemo(t *testing.T, service *Service) *User {
	t.Helper()
	user, err := service.Register(context.Background(), RegisterInput{
		Name:     "Người Dùng Demo",
		Email:    "demo@demo.com",
		Phone:    "0989000000",
		Password: "demo123",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return user
}

func TestPasswordIsHashedBeforeSaving(t *testing.T) {
	repo := NewInMemoryUserRepository()
	service := NewService(repo)

	registerDemo(t, service)

	user := repo.users["demo@demo.com"]
	if user == nil {
		t.Fatalf("user not found")
	}

	if user.Password == "demo123" {
		t.Fatalf("password was stored in plain text")
	}
	if user.Role != RoleCustomer {
		t.Fatalf("expected role %s, got %s", RoleCustomer, user.Role)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	service := NewService(NewInMemoryUserRepository())
	registerDemo(t, service)

	_, err := service.Register(context.Background(), RegisterInput{
		Name: "Other", Email: "demo@demo.com", Phone: "0911111111", Password: "other123",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegister_DuplicatePhone(t *testing.T) {
	service := NewService(NewInMemoryUserRepository())
	registerDemo(t, service)
	ctx := context.Background()

	_, err := service.Register(ctx, RegisterInput{
		Name: "B", Email: "b@b.com", Phone: "0989 000 000", Password: "bpass123",
	})
	if !errors.Is(err, ErrPhoneTaken) {
		t.Fatalf("expected ErrPhoneTaken, got %v", err)
	}

	user, err := service.Login(ctx, "0989000000", "demo123")
	if err != nil {
		t.Fatalf("original owner can no longer log in by phone: %v", err)
	}
	if user.Email != "demo@demo.com" {
		t.Fatalf("phone login resolved to %s", user.Email)
	}
}

func TestRegister_Validation(t *testing.T) {
	valid := RegisterInput{Name: "Lan", Email: "lan@popfood.vn", Phone: "+84 901 234 567", Password: "secret"}

	tests := []struct {
		name   string
		mutate func(in *RegisterInput)
		want   error
	}{
		{"missing phone", func(in *RegisterInput) { in.Phone = "  " }, ErrMissingFields},
		{"missing name", func(in *RegisterInput) { in.Name = "" }, ErrMissingFields},
		{"malformed email", func(in *RegisterInput) { in.Email = "lan@popfood" }, ErrInvalidInput},
		{"phone with letters", func(in *RegisterInput) { in.Phone = "0901-abc-567" }, ErrInvalidInput},
		{"phone too short", func(in *RegisterInput) { in.Phone = "12345" }, ErrInvalidInput},
		{"short password", func(in *RegisterInput) { in.Password = "12345" }, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			_, err := NewService(NewInMemoryUserRepository()).Register(context.Background(), in)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}

	user, err := NewService(NewInMemoryUserRepository()).Register(context.Background(), valid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Phone != "+84901234567" {
		t.Fatalf("expected normalized phone, got %q", user.Phone)
	}
}

func TestUpdateProfile_PhoneTaken(t *testing.T) {
	service := NewService(NewInMemoryUserRepository())
	registerDemo(t, service)
	ctx := context.Background()

	other, err := service.Register(ctx, RegisterInput{
		Name: "B", Email: "b@b.com", Phone: "0911111111", Password: "bpass123",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	taken := "0989000000"
	if _, err := service.UpdateProfile(ctx, other.ID, ProfilePatch{Phone: &taken}); !errors.Is(err, ErrPhoneTaken) {
		t.Fatalf("expected ErrPhoneTaken, got %v", err)
	}

	same := "0911 111 111"
	if _, err := service.UpdateProfile(ctx, other.ID, ProfilePatch{Phone: &same}); err != nil {
		t.Fatalf("keeping own phone should succeed, got %v", err)
	}

	bad := "abc"
	if _, err := service.UpdateProfile(ctx, other.ID, ProfilePatch{Phone: &bad}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLogin_ByEmailOrPhone(t *testing.T) {
	service := NewService(NewInMemoryUserRepository())
	registerDemo(t, service)
	ctx := context.Background()

	if _, err := service.Login(ctx, "demo@demo.com", "demo123"); err != nil {
		t.Fatalf("login by email failed: %v", err)
	}
	if _, err := service.Login(ctx, " 0989000000 ", "demo123"); err != nil {
		t.Fatalf("login by phone failed: %v", err)
	}
	if _, err := service.Login(ctx, "demo@demo.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := service.Login(ctx, "nobody", "demo123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	service := NewService(NewInMemoryUserRepository())
	user := registerDemo(t, service)

	name := "Lan"
	updated, err := service.UpdateProfile(context.Background(), user.ID, ProfilePatch{Name: &name})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Name != "Lan" || updated.Phone != "0989000000" {
		t.Fatalf("unexpected profile %+v", updated)
	}

	got, _ := service.DisplayName(context.Background(), user.ID)
	if got != "Lan" {
		t.Fatalf("expected display name Lan, got %s", got)
	}
}

func TestPromoteToAdmin(t *testing.T) {
	service := NewService(NewInMemoryUserRepository())
	user := registerDemo(t, service)
	ctx := context.Background()

	if _, err := service.PromoteToAdmin(ctx, user.ID, "demo@demo.com", "wrong"); !errors.Is(err, ErrConfirmationFailed) {
		t.Fatalf("expected ErrConfirmationFailed, got %v", err)
	}
	if _, err := service.PromoteToAdmin(ctx, user.ID, "someone@else.com", "demo123"); !errors.Is(err, ErrConfirmationFailed) {
		t.Fatalf("expected ErrConfirmationFailed, got %v", err)
	}

	promoted, err := service.PromoteToAdmin(ctx, user.ID, "0989000000", "demo123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if promoted.Role != RoleAdmin {
		t.Fatalf("expected admin role, got %s", promoted.Role)
	}

	me, _ := service.Me(ctx, user.ID)
	if me.Role != RoleAdmin {
		t.Fatalf("role was not persisted")
	}
}
