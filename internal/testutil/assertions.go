package testutil

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	apperrors "confeitaria/internal/errors"
)

// AssertAppError fails unless err is an *AppError carrying code. The
// failure names the message and the wrapped cause so a wrong sentinel is
// easy to trace.
func AssertAppError(t *testing.T, err error, code string) {
	t.Helper()

	var appErr *apperrors.AppError
	switch {
	case err == nil:
		t.Fatalf("want %s error, got success", code)
	case !errors.As(err, &appErr):
		t.Fatalf("want %s error, got plain %T: %v", code, err, err)
	case appErr.Code != code:
		t.Errorf("want %s error, got %s %q (cause: %v)", code, appErr.Code, appErr.Message, appErr.Internal)
	}
}

// AssertNoError stops the test on err, showing the error code for app
// errors.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		t.Fatalf("unexpected %s error %q (cause: %v)", appErr.Code, appErr.Message, appErr.Internal)
	}
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertRowCount counts live rows of model matching query and fails when
// the count differs from want.
func AssertRowCount(t *testing.T, db *gorm.DB, model any, want int64, query string, args ...any) {
	t.Helper()

	var got int64
	if err := db.Model(model).Where(query, args...).Count(&got).Error; err != nil {
		t.Fatalf("count %T: %v", model, err)
	}
	if got != want {
		t.Errorf("want %d %T rows where %s, got %d", want, model, query, got)
	}
}
