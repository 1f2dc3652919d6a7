package users

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BE-BINAR-ACADEMY-FGA/challeng5/internal/domain"
)

type fakeUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*domain.User), nextID: 1}
}

func (r *fakeUserRepo) Create(_ context.Context, _ domain.Querier, user *domain.User) (int64, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return 0, domain.ErrEmailExists
		}
	}
	id := r.nextID
	r.nextID++
	copied := *user
	copied.ID = id
	r.users[id] = &copied
	return id, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, _ domain.Querier, id int64) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, _ domain.Querier, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) List(_ context.Context, _ domain.Querier) ([]domain.User, error) {
	var list []domain.User
	for _, user := range r.users {
		list = append(list, *user)
	}
	return list, nil
}

func (r *fakeUserRepo) Update(_ context.Context, _ domain.Querier, user *domain.User) error {
	existing, ok := r.users[user.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	for _, other := range r.users {
		if other.ID != user.ID && other.Email == user.Email {
			return domain.ErrEmailExists
		}
	}
	existing.Name = user.Name
	existing.Email = user.Email
	existing.IdentityType = user.IdentityType
	existing.IdentityNumber = user.IdentityNumber
	existing.Address = user.Address
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, _ domain.Querier, id int64) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func newTestService() (UserService, *fakeUserRepo) {
	repo := newFakeUserRepo()
	return NewUserService(nil, repo, zap.NewNop()), repo
}

func TestCreateHashesPassword(t *testing.T) {
	service, repo := newTestService()

	user, err := service.Create(context.Background(), &domain.User{
		Name:  "Budi Santoso",
		Email: "budi@example.com",
	}, "s3cret")
	if err != nil {
		t.Fatalf("Create() err=%v", err)
	}
	if user.ID == 0 {
		t.Fatal("Create() returned zero user id")
	}

	stored := repo.users[user.ID]
	if stored.Password == "s3cret" {
		t.Fatal("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("s3cret")); err != nil {
		t.Fatalf("stored password is not a bcrypt hash of the original: %v", err)
	}
}

func TestCreateDuplicateEmail(t *testing.T) {
	service, _ := newTestService()

	if _, err := service.Create(context.Background(), &domain.User{Email: "dup@example.com"}, "pw"); err != nil {
		t.Fatal(err)
	}

	_, err := service.Create(context.Background(), &domain.User{Email: "dup@example.com"}, "pw")
	if !errors.Is(err, domain.ErrEmailExists) {
		t.Fatalf("want ErrEmailExists, got %v", err)
	}
}

func TestGetAndList(t *testing.T) {
	service, _ := newTestService()

	created, err := service.Create(context.Background(), &domain.User{Email: "a@example.com"}, "pw")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := service.Create(context.Background(), &domain.User{Email: "b@example.com"}, "pw"); err != nil {
		t.Fatal(err)
	}

	got, err := service.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Email != "a@example.com" {
		t.Fatalf("Get() email=%q want=%q", got.Email, "a@example.com")
	}

	if _, err := service.Get(context.Background(), 999); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("want ErrUserNotFound, got %v", err)
	}

	list, err := service.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("List() len=%d want=2", len(list))
	}
}

func TestUpdate(t *testing.T) {
	service, _ := newTestService()

	created, err := service.Create(context.Background(), &domain.User{Name: "Old", Email: "old@example.com"}, "pw")
	if err != nil {
		t.Fatal(err)
	}

	updated, err := service.Update(context.Background(), &domain.User{
		ID:    created.ID,
		Name:  "New",
		Email: "new@example.com",
	})
	if err != nil {
		t.Fatalf("Update() err=%v", err)
	}
	if updated.Name != "New" || updated.Email != "new@example.com" {
		t.Fatalf("Update() = %q/%q, want New/new@example.com", updated.Name, updated.Email)
	}

	_, err = service.Update(context.Background(), &domain.User{ID: 999, Email: "x@example.com"})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("want ErrUserNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	service, repo := newTestService()

	created, err := service.Create(context.Background(), &domain.User{Email: "gone@example.com"}, "pw")
	if err != nil {
		t.Fatal(err)
	}

	if err := service.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete() err=%v", err)
	}
	if _, ok := repo.users[created.ID]; ok {
		t.Fatal("user still present after delete")
	}

	if err := service.Delete(context.Background(), created.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("want ErrUserNotFound, got %v", err)
	}
}
