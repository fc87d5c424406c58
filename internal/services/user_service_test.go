package services

import (
	"context"
	"testing"

	"bus_logistics/internal/apperr"
	"bus_logistics/internal/models"
	"bus_logistics/internal/repository"
)

func seededRepo(t *testing.T) *repository.Memory {
	t.Helper()
	repo := repository.NewMemory()
	if err := SeedRoles(context.Background(), repo); err != nil {
		t.Fatalf("seed roles: %v", err)
	}
	return repo
}

func signup(username string, roles ...string) SignupRequest {
	return SignupRequest{
		EmployeeID: "EMP-" + username,
		Username:   username,
		Email:      username + "@example.com",
		Password:   "s3cret",
		Roles:      roles,
	}
}

func TestSeedRolesIdempotent(t *testing.T) {
	repo := repository.NewMemory()
	ctx := context.Background()

	if err := SeedRoles(ctx, repo); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if err := SeedRoles(ctx, repo); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	for _, name := range models.AllRoleNames() {
		role, err := repo.Roles().FindByName(ctx, name)
		if err != nil {
			t.Fatalf("find %s: %v", name, err)
		}
		if role == nil {
			t.Fatalf("role %s missing after seed", name)
		}
	}
}

func TestRegisterDefaultsToEmployeeRoleAndActiveStatus(t *testing.T) {
	svc := NewUserService(seededRepo(t))
	ctx := context.Background()

	user, err := svc.Register(ctx, signup("wanjiku"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if !user.HasRole(models.RoleEmployee) {
		t.Fatalf("expected default employee role, got %+v", user.Roles)
	}
	if user.Status != models.StatusActive {
		t.Fatalf("expected ACTIVE status, got %s", user.Status)
	}
	if user.Password == "s3cret" {
		t.Fatal("password stored in the clear")
	}
}

func TestRegisterRejectsDuplicatesAndBadStatus(t *testing.T) {
	svc := NewUserService(seededRepo(t))
	ctx := context.Background()

	if _, err := svc.Register(ctx, signup("wanjiku")); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(ctx, signup("wanjiku")); !apperr.IsConflict(err) {
		t.Fatalf("expected conflict for duplicate username, got %v", err)
	}

	bad := signup("otieno")
	bad.Status = "RETIRED"
	if _, err := svc.Register(ctx, bad); !apperr.IsInvalid(err) {
		t.Fatalf("expected invalid for unknown status, got %v", err)
	}
}

func TestRegisterBulkAllOrNothing(t *testing.T) {
	svc := NewUserService(seededRepo(t))
	ctx := context.Background()

	bad := signup("kamau")
	bad.Status = "RETIRED"
	if _, err := svc.RegisterBulk(ctx, []SignupRequest{signup("wanjiku"), bad}); !apperr.IsInvalid(err) {
		t.Fatalf("expected invalid, got %v", err)
	}

	users, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("expected no users after failed bulk import, got %d", len(users))
	}
}

func TestAuthenticate(t *testing.T) {
	svc := NewUserService(seededRepo(t))
	ctx := context.Background()

	if _, err := svc.Register(ctx, signup("wanjiku", "driver")); err != nil {
		t.Fatalf("register: %v", err)
	}

	user, err := svc.Authenticate(ctx, "wanjiku", "s3cret")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if !user.HasRole(models.RoleDriver) {
		t.Fatalf("expected driver role, got %+v", user.Roles)
	}

	if _, err := svc.Authenticate(ctx, "wanjiku", "wrong"); !apperr.IsInvalid(err) {
		t.Fatalf("expected invalid for wrong password, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "ghost", "s3cret"); !apperr.IsInvalid(err) {
		t.Fatalf("expected invalid for unknown username, got %v", err)
	}
}
