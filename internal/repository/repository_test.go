package repository

import (
	"context"
	"fmt"
	"testing"

	"borsabot/internal/model"
)

var testDBSeq int

func openTestDB(t *testing.T) (users *UserRepository, settings *SettingRepository, joins *JoinRequestRepository, favorites *FavoriteRepository) {
	t.Helper()
	testDBSeq++
	dsn := fmt.Sprintf("file:repotest%d?mode=memory&cache=shared", testDBSeq)
	db, err := NewDB(dsn)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	return NewUserRepository(db), NewSettingRepository(db), NewJoinRequestRepository(db), NewFavoriteRepository(db)
}

func TestUserUpsertIsIdempotent(t *testing.T) {
	users, _, _, _ := openTestDB(t)
	ctx := context.Background()

	first, err := users.UpsertFromTelegram(ctx, 42, "Ali", "Veli", "ali")
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := users.UpdateMembership(ctx, 42, true); err != nil {
		t.Fatalf("promote: %v", err)
	}

	second, err := users.UpsertFromTelegram(ctx, 42, "Ali", "Veli", "ali_yeni")
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("upsert created a second row: %d vs %d", first.ID, second.ID)
	}

	got, err := users.FindByTelegramID(ctx, 42)
	if err != nil || got == nil {
		t.Fatalf("find: %v", err)
	}
	if got.Username != "ali_yeni" {
		t.Errorf("username not refreshed: %q", got.Username)
	}
	if !got.IsMember {
		t.Errorf("membership flag lost across profile update")
	}
}

func TestFindUnknownUserReturnsNil(t *testing.T) {
	users, _, _, _ := openTestDB(t)
	got, err := users.FindByTelegramID(context.Background(), 7777)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for unknown user, got %+v", got)
	}
}

func TestSettingSetOverwrites(t *testing.T) {
	_, settings, _, _ := openTestDB(t)
	ctx := context.Background()

	if v, err := settings.Get(ctx, model.SettingInviteLink); err != nil || v != "" {
		t.Fatalf("unset key: v=%q err=%v", v, err)
	}
	if err := settings.Set(ctx, model.SettingInviteLink, "https://t.me/+eski"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := settings.Set(ctx, model.SettingInviteLink, "https://t.me/+yeni"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	v, err := settings.Get(ctx, model.SettingInviteLink)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if v != "https://t.me/+yeni" {
		t.Errorf("last write did not win: %q", v)
	}

	all, err := settings.All(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != 1 || all[model.SettingInviteLink] != "https://t.me/+yeni" {
		t.Errorf("All() = %+v", all)
	}
}

func TestJoinRequestUpsertResetsStatus(t *testing.T) {
	_, _, joins, _ := openTestDB(t)
	ctx := context.Background()

	first, err := joins.Upsert(ctx, model.JoinRequest{UserID: 42, ChatID: -100123, FirstName: "Ali"})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if first.Status != model.JoinStatusPending {
		t.Errorf("new request status = %q", first.Status)
	}

	admin := int64(99)
	if err := joins.UpdateStatus(ctx, 42, -100123, model.JoinStatusDeclined, &admin); err != nil {
		t.Fatalf("decline: %v", err)
	}

	second, err := joins.Upsert(ctx, model.JoinRequest{UserID: 42, ChatID: -100123, FirstName: "Ali"})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("repeated request created a second row")
	}

	got, err := joins.Find(ctx, 42, -100123)
	if err != nil || got == nil {
		t.Fatalf("find: %v", err)
	}
	if got.Status != model.JoinStatusPending {
		t.Errorf("repeated request did not reset status: %q", got.Status)
	}
	if got.ProcessedAt != nil || got.ProcessedBy != nil {
		t.Errorf("processing fields not cleared: %+v", got)
	}
	if !got.RequestedAt.After(first.RequestedAt) && !got.RequestedAt.Equal(first.RequestedAt) {
		t.Errorf("requested_at went backwards")
	}
}

func TestJoinRequestFindMissesAreNil(t *testing.T) {
	_, _, joins, _ := openTestDB(t)

	got, err := joins.Find(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing request, got %+v", got)
	}
}

func TestListPendingSkipsProcessed(t *testing.T) {
	_, _, joins, _ := openTestDB(t)
	ctx := context.Background()

	if _, err := joins.Upsert(ctx, model.JoinRequest{UserID: 1, ChatID: -100123}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if _, err := joins.Upsert(ctx, model.JoinRequest{UserID: 2, ChatID: -100123}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := joins.UpdateStatus(ctx, 1, -100123, model.JoinStatusApproved, nil); err != nil {
		t.Fatalf("approve: %v", err)
	}

	pending, err := joins.ListPending(ctx)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 1 || pending[0].UserID != 2 {
		t.Errorf("pending = %+v, want only user 2", pending)
	}
}

func TestFavoriteDuplicatesCollapse(t *testing.T) {
	_, _, _, favorites := openTestDB(t)
	ctx := context.Background()

	if err := favorites.Add(ctx, 42, "THYAO"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := favorites.Add(ctx, 42, "thyao"); err != nil {
		t.Fatalf("duplicate add should be a no-op: %v", err)
	}
	if err := favorites.Add(ctx, 42, "ASELS"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := favorites.Add(ctx, 77, "THYAO"); err != nil {
		t.Fatalf("other user may track the same stock: %v", err)
	}

	favs, err := favorites.ListByUser(ctx, 42)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(favs) != 2 {
		t.Errorf("got %d favorites, want 2: %+v", len(favs), favs)
	}

	if err := favorites.Remove(ctx, 42, "THYAO"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := favorites.Clear(ctx, 42); err != nil {
		t.Fatalf("clear: %v", err)
	}
	favs, err = favorites.ListByUser(ctx, 42)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(favs) != 0 {
		t.Errorf("favorites remain after clear: %+v", favs)
	}

	other, err := favorites.ListByUser(ctx, 77)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(other) != 1 {
		t.Errorf("clear leaked into another user's list: %+v", other)
	}
}
