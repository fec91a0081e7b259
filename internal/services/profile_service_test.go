package services

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"confeitaria/internal/storage"
	"confeitaria/internal/testutil"
)

func avatarPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 320, 200))
	for x := 0; x < 320; x++ {
		img.Set(x, 100, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return buf.Bytes()
}

func TestGetProfile(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewProfileService(db, nil, 1<<20, nopLogger())
	user := testutil.CreateTestUser(t, db)

	profile, err := svc.GetProfile(user.ID)
	testutil.AssertNoError(t, err)
	if profile.Email != user.Email {
		t.Errorf("expected email %s, got %s", user.Email, profile.Email)
	}

	_, err = svc.GetProfile("00000000-0000-0000-0000-000000000000")
	testutil.AssertAppError(t, err, "NOT_FOUND")
}

func TestUpdateProfile(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewProfileService(db, nil, 1<<20, nopLogger())
	user := testutil.CreateTestUser(t, db)

	name, city := "Carla Confeiteira", " Campinas "
	profile, err := svc.UpdateProfile(user.ID, ProfileUpdate{FullName: &name, City: &city})
	testutil.AssertNoError(t, err)
	if profile.FullName != name || profile.City != "Campinas" {
		t.Errorf("unexpected profile %+v", profile)
	}

	empty := " "
	_, err = svc.UpdateProfile(user.ID, ProfileUpdate{FullName: &empty})
	testutil.AssertAppError(t, err, "VALIDATION_ERROR")
}

func TestUploadAvatar(t *testing.T) {
	t.Run("stores_and_replaces", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		dir := t.TempDir()
		store, err := storage.NewLocalAvatarStore(dir, "/uploads/avatars")
		testutil.AssertNoError(t, err)
		svc := NewProfileService(db, store, 1<<20, nopLogger())
		user := testutil.CreateTestUser(t, db)

		first, err := svc.UploadAvatar(context.Background(), user.ID, avatarPNG(t))
		testutil.AssertNoError(t, err)
		if !strings.HasPrefix(first.AvatarURL, "/uploads/avatars/"+user.ID+"/") {
			t.Errorf("unexpected avatar url %s", first.AvatarURL)
		}
		if _, err := os.Stat(filepath.Join(dir, first.AvatarKey)); err != nil {
			t.Fatalf("expected avatar file: %v", err)
		}

		oldKey := user.ID + "/old.jpg"
		if err := os.WriteFile(filepath.Join(dir, oldKey), []byte("old"), 0o644); err != nil {
			t.Fatalf("failed to write old avatar: %v", err)
		}
		db.Exec("UPDATE profiles SET avatar_key = ? WHERE id = ?", oldKey, user.ID)

		second, err := svc.UploadAvatar(context.Background(), user.ID, avatarPNG(t))
		testutil.AssertNoError(t, err)
		if second.AvatarKey == oldKey {
			t.Fatal("expected a new key")
		}
		if _, err := os.Stat(filepath.Join(dir, oldKey)); !os.IsNotExist(err) {
			t.Error("expected previous avatar to be deleted")
		}
	})

	t.Run("too_large", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		store, _ := storage.NewLocalAvatarStore(t.TempDir(), "/a")
		svc := NewProfileService(db, store, 10, nopLogger())
		user := testutil.CreateTestUser(t, db)

		_, err := svc.UploadAvatar(context.Background(), user.ID, avatarPNG(t))
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})

	t.Run("not_an_image", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		store, _ := storage.NewLocalAvatarStore(t.TempDir(), "/a")
		svc := NewProfileService(db, store, 1<<20, nopLogger())
		user := testutil.CreateTestUser(t, db)

		_, err := svc.UploadAvatar(context.Background(), user.ID, []byte("hello"))
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})
}
