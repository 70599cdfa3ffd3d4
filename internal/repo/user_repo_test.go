package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/tbourn/foodgram-backend/internal/domain"
)

func TestCreateUser_Error_NoTable(t *testing.T) {
	db := newTestDB(t /* no migrations */)
	u := domain.User{Email: "x@example.com", Username: "x"}
	if err := CreateUser(context.Background(), db, &u); err == nil {
		t.Fatalf("expected error creating without table")
	}
}

func TestCreateUser_DuplicateEmailOrUsername(t *testing.T) {
	db := newSchemaDB(t)
	ctx := context.Background()
	a := mkUser(t, db, "alice")
	if a.ID == 0 {
		t.Fatalf("expected ID to be assigned")
	}

	dupEmail := domain.User{Email: "alice@example.com", Username: "other", PasswordHash: "x"}
	if err := CreateUser(ctx, db, &dupEmail); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("duplicate email: err = %v; want ErrDuplicate", err)
	}
	dupName := domain.User{Email: "other@example.com", Username: "alice", PasswordHash: "x"}
	if err := CreateUser(ctx, db, &dupName); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("duplicate username: err = %v; want ErrDuplicate", err)
	}
}

func TestUserTaken(t *testing.T) {
	db := newSchemaDB(t)
	ctx := context.Background()
	mkUser(t, db, "alice")

	cases := []struct {
		email, username string
		wantE, wantU    bool
	}{
		{"alice@example.com", "new", true, false},
		{"new@example.com", "alice", false, true},
		{"alice@example.com", "alice", true, true},
		{"new@example.com", "new", false, false},
	}
	for _, tc := range cases {
		e, u, err := UserTaken(ctx, db, tc.email, tc.username)
		if err != nil {
			t.Fatalf("UserTaken: %v", err)
		}
		if e != tc.wantE || u != tc.wantU {
			t.Fatalf("UserTaken(%q,%q) = %v,%v; want %v,%v", tc.email, tc.username, e, u, tc.wantE, tc.wantU)
		}
	}
}

func TestGetUser_AndNotFound(t *testing.T) {
	db := newSchemaDB(t)
	ctx := context.Background()
	a := mkUser(t, db, "alice")

	got, err := GetUser(ctx, db, a.ID)
	if err != nil || got.Username != "alice" {
		t.Fatalf("GetUser = %+v, %v", got, err)
	}
	if _, err := GetUser(ctx, db, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserExists(t *testing.T) {
	db := newSchemaDB(t)
	ctx := context.Background()
	a := mkUser(t, db, "alice")

	if ok, err := UserExists(ctx, db, a.ID); err != nil || !ok {
		t.Fatalf("UserExists(alice) = %v, %v", ok, err)
	}
	if ok, err := UserExists(ctx, db, a.ID+100); err != nil || ok {
		t.Fatalf("UserExists(missing) = %v, %v", ok, err)
	}
}

func TestListUsersPage_OrderedByUsername(t *testing.T) {
	db := newSchemaDB(t)
	ctx := context.Background()
	for _, n := range []string{"carol", "alice", "bob"} {
		mkUser(t, db, n)
	}

	total, err := CountUsers(ctx, db)
	if err != nil || total != 3 {
		t.Fatalf("CountUsers = %d, %v", total, err)
	}
	page, err := ListUsersPage(ctx, db, 1, 2)
	if err != nil {
		t.Fatalf("ListUsersPage: %v", err)
	}
	if len(page) != 2 || page[0].Username != "bob" || page[1].Username != "carol" {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestUpdateUserAvatarAndPassword(t *testing.T) {
	db := newSchemaDB(t)
	ctx := context.Background()
	a := mkUser(t, db, "alice")

	if err := UpdateUserAvatar(ctx, db, a.ID, "avatars/a.png"); err != nil {
		t.Fatalf("UpdateUserAvatar: %v", err)
	}
	if err := UpdateUserPassword(ctx, db, a.ID, "newhash"); err != nil {
		t.Fatalf("UpdateUserPassword: %v", err)
	}
	got, _ := GetUser(ctx, db, a.ID)
	if got.Avatar != "avatars/a.png" || got.PasswordHash != "newhash" {
		t.Fatalf("unexpected user: %+v", got)
	}

	if err := UpdateUserAvatar(ctx, db, 999, "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFollows(t *testing.T) {
	db := newSchemaDB(t)
	ctx := context.Background()
	alice := mkUser(t, db, "alice")
	bob := mkUser(t, db, "bob")
	carol := mkUser(t, db, "carol")

	if err := CreateFollow(ctx, db, alice.ID, carol.ID); err != nil {
		t.Fatalf("CreateFollow: %v", err)
	}
	if err := CreateFollow(ctx, db, alice.ID, bob.ID); err != nil {
		t.Fatalf("CreateFollow: %v", err)
	}
	if err := CreateFollow(ctx, db, alice.ID, bob.ID); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("duplicate follow: err = %v; want ErrDuplicate", err)
	}
	if err := CreateFollow(ctx, db, alice.ID, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing author: err = %v; want ErrNotFound", err)
	}

	n, err := CountFollowedAuthors(ctx, db, alice.ID)
	if err != nil || n != 2 {
		t.Fatalf("CountFollowedAuthors = %d, %v", n, err)
	}
	authors, err := ListFollowedAuthorsPage(ctx, db, alice.ID, 0, 10)
	if err != nil {
		t.Fatalf("ListFollowedAuthorsPage: %v", err)
	}
	if len(authors) != 2 || authors[0].Username != "bob" || authors[1].Username != "carol" {
		t.Fatalf("unexpected authors: %+v", authors)
	}

	set, err := FollowingSet(ctx, db, alice.ID, []uint{bob.ID, carol.ID, alice.ID})
	if err != nil {
		t.Fatalf("FollowingSet: %v", err)
	}
	if !set[bob.ID] || !set[carol.ID] || set[alice.ID] {
		t.Fatalf("unexpected set: %v", set)
	}
	if set, _ := FollowingSet(ctx, db, 0, []uint{bob.ID}); len(set) != 0 {
		t.Fatalf("anonymous viewer should follow nobody: %v", set)
	}

	ok, err := DeleteFollow(ctx, db, alice.ID, bob.ID)
	if err != nil || !ok {
		t.Fatalf("DeleteFollow = %v, %v", ok, err)
	}
	ok, err = DeleteFollow(ctx, db, alice.ID, bob.ID)
	if err != nil || ok {
		t.Fatalf("second DeleteFollow = %v, %v; want false", ok, err)
	}
}
