package database

import (
	"errors"
	"testing"

	"gorm.io/gorm"
)

func TestFollowUnfollow(t *testing.T) {
	d := newTestDB(t)

	john := mustUser(t, d, "john", "john@example.com")
	susan := mustUser(t, d, "susan", "susan@example.com")

	following, err := d.IsFollowing(john.ID, susan.ID)
	if err != nil {
		t.Fatalf("is following: %v", err)
	}
	if following {
		t.Fatal("new users should not follow each other")
	}

	if err := d.Follow(john.ID, susan.ID); err != nil {
		t.Fatalf("follow: %v", err)
	}

	following, err = d.IsFollowing(john.ID, susan.ID)
	if err != nil {
		t.Fatalf("is following: %v", err)
	}
	if !following {
		t.Fatal("john should follow susan")
	}

	if n, _ := d.FollowingCount(john.ID); n != 1 {
		t.Fatalf("john following count = %d, want 1", n)
	}
	if n, _ := d.FollowersCount(susan.ID); n != 1 {
		t.Fatalf("susan followers count = %d, want 1", n)
	}

	followingUsers, err := d.FollowingOf(john.ID)
	if err != nil {
		t.Fatalf("following of: %v", err)
	}
	if len(followingUsers) != 1 || followingUsers[0].Username != "susan" {
		t.Fatalf("john follows %v, want [susan]", followingUsers)
	}

	followers, err := d.FollowersOf(susan.ID)
	if err != nil {
		t.Fatalf("followers of: %v", err)
	}
	if len(followers) != 1 || followers[0].Username != "john" {
		t.Fatalf("susan followers %v, want [john]", followers)
	}

	if err := d.Unfollow(john.ID, susan.ID); err != nil {
		t.Fatalf("unfollow: %v", err)
	}

	following, err = d.IsFollowing(john.ID, susan.ID)
	if err != nil {
		t.Fatalf("is following: %v", err)
	}
	if following {
		t.Fatal("john should no longer follow susan")
	}
	if n, _ := d.FollowingCount(john.ID); n != 0 {
		t.Fatalf("john following count = %d, want 0", n)
	}
	if n, _ := d.FollowersCount(susan.ID); n != 0 {
		t.Fatalf("susan followers count = %d, want 0", n)
	}
}

func TestFollowIdempotent(t *testing.T) {
	d := newTestDB(t)

	john := mustUser(t, d, "john", "john@example.com")
	susan := mustUser(t, d, "susan", "susan@example.com")

	// Following twice must leave exactly one edge, the second call
	// resolving as "already following".
	if err := d.Follow(john.ID, susan.ID); err != nil {
		t.Fatalf("first follow: %v", err)
	}
	if err := d.Follow(john.ID, susan.ID); err != nil {
		t.Fatalf("second follow: %v", err)
	}

	if n, _ := d.FollowingCount(john.ID); n != 1 {
		t.Fatalf("following count = %d, want 1", n)
	}

	// Unfollowing twice is equally harmless.
	if err := d.Unfollow(john.ID, susan.ID); err != nil {
		t.Fatalf("first unfollow: %v", err)
	}
	if err := d.Unfollow(john.ID, susan.ID); err != nil {
		t.Fatalf("second unfollow: %v", err)
	}

	following, _ := d.IsFollowing(john.ID, susan.ID)
	if following {
		t.Fatal("edge should be gone")
	}
}

func TestSelfFollowRejected(t *testing.T) {
	d := newTestDB(t)

	john := mustUser(t, d, "john", "john@example.com")

	if err := d.Follow(john.ID, john.ID); !errors.Is(err, ErrSelfFollow) {
		t.Fatalf("self follow err = %v, want ErrSelfFollow", err)
	}

	following, _ := d.IsFollowing(john.ID, john.ID)
	if following {
		t.Fatal("self edge must never exist")
	}
}

func TestFollowMissingUser(t *testing.T) {
	d := newTestDB(t)

	john := mustUser(t, d, "john", "john@example.com")

	if err := d.Follow(john.ID, 9999); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("follow missing user err = %v, want ErrRecordNotFound", err)
	}
	if err := d.Unfollow(9999, john.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("unfollow missing user err = %v, want ErrRecordNotFound", err)
	}
}

func TestCountSymmetry(t *testing.T) {
	d := newTestDB(t)

	john := mustUser(t, d, "john", "john@example.com")
	susan := mustUser(t, d, "susan", "susan@example.com")
	mary := mustUser(t, d, "mary", "mary@example.com")

	pairs := [][2]uint{
		{john.ID, susan.ID},
		{john.ID, mary.ID},
		{susan.ID, mary.ID},
	}
	for _, p := range pairs {
		if err := d.Follow(p[0], p[1]); err != nil {
			t.Fatalf("follow: %v", err)
		}
	}

	users := []uint{john.ID, susan.ID, mary.ID}
	for _, a := range users {
		var out int64
		for _, b := range users {
			if ok, _ := d.IsFollowing(a, b); ok {
				out++
			}
		}
		n, err := d.FollowingCount(a)
		if err != nil {
			t.Fatalf("following count: %v", err)
		}
		if n != out {
			t.Fatalf("user %d following count = %d, edges say %d", a, n, out)
		}
	}
	for _, b := range users {
		var in int64
		for _, a := range users {
			if ok, _ := d.IsFollowing(a, b); ok {
				in++
			}
		}
		n, err := d.FollowersCount(b)
		if err != nil {
			t.Fatalf("followers count: %v", err)
		}
		if n != in {
			t.Fatalf("user %d followers count = %d, edges say %d", b, n, in)
		}
	}
}

func TestFollowerIDs(t *testing.T) {
	d := newTestDB(t)

	john := mustUser(t, d, "john", "john@example.com")
	susan := mustUser(t, d, "susan", "susan@example.com")
	mary := mustUser(t, d, "mary", "mary@example.com")

	if err := d.Follow(susan.ID, john.ID); err != nil {
		t.Fatalf("follow: %v", err)
	}
	if err := d.Follow(mary.ID, john.ID); err != nil {
		t.Fatalf("follow: %v", err)
	}

	ids, err := d.FollowerIDs(john.ID)
	if err != nil {
		t.Fatalf("follower ids: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("got %d follower ids, want 2", len(ids))
	}
	seen := map[uint]bool{}
	for _, id := range ids {
		seen[id] = true
	}
	if !seen[susan.ID] || !seen[mary.ID] {
		t.Fatalf("follower ids = %v, want susan and mary", ids)
	}
}
