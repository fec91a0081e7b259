package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "confeitaria/internal/errors"
	"confeitaria/internal/models"
	"confeitaria/internal/services"
)

type mockInviteService struct {
	inviteFn func(callerID string, input services.InviteInput) (*services.InviteResult, error)
}

func (m *mockInviteService) InviteMember(callerID string, input services.InviteInput) (*services.InviteResult, error) {
	if m.inviteFn != nil {
		return m.inviteFn(callerID, input)
	}
	return &services.InviteResult{}, nil
}

var _ services.InviteServicer = (*mockInviteService)(nil)

func setupInviteRouter(handler *InviteHandler) *gin.Engine {
	r := gin.New()
	r.POST("/users/invites", injectUserID(testUserID), handler.InviteMember)
	return r
}

func TestInviteHandler_InviteMember(t *testing.T) {
	t.Run("returns 201 with temporary password", func(t *testing.T) {
		var gotInput services.InviteInput
		invites := &mockInviteService{
			inviteFn: func(callerID string, input services.InviteInput) (*services.InviteResult, error) {
				gotInput = input
				return &services.InviteResult{
					ID:                testOtherID,
					Email:             input.Email,
					Role:              input.Role,
					FullName:          "Ana",
					TemporaryPassword: "0123456789abcdef0123456789abcdef",
				}, nil
			},
		}
		activities := &mockActivityService{}
		r := setupInviteRouter(NewInviteHandler(invites, activities))

		rec := doRequest(r, "POST", "/users/invites", `{"email":"ana@example.com","role":"admin","full_name":"Ana"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotInput.Role != models.RoleAdmin {
			t.Errorf("expected admin role, got %s", gotInput.Role)
		}
		result := parseJSON(t, rec)
		if result["temporaryPassword"] != "0123456789abcdef0123456789abcdef" {
			t.Errorf("expected temporary password in body, got %v", result)
		}
		if logged := activities.logged(); len(logged) != 1 || logged[0].ResourceID != testOtherID {
			t.Errorf("unexpected activity %+v", logged)
		}
	})

	t.Run("returns 400 on unknown role", func(t *testing.T) {
		r := setupInviteRouter(NewInviteHandler(&mockInviteService{}, nil))

		rec := doRequest(r, "POST", "/users/invites", `{"email":"ana@example.com","role":"owner"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 403 for members", func(t *testing.T) {
		invites := &mockInviteService{
			inviteFn: func(string, services.InviteInput) (*services.InviteResult, error) {
				return nil, apperrors.ErrForbidden
			},
		}
		r := setupInviteRouter(NewInviteHandler(invites, nil))

		rec := doRequest(r, "POST", "/users/invites", `{"email":"ana@example.com"}`)

		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "FORBIDDEN")
	})

	t.Run("returns 500 with invite code on profile failure", func(t *testing.T) {
		invites := &mockInviteService{
			inviteFn: func(string, services.InviteInput) (*services.InviteResult, error) {
				return nil, apperrors.ErrInviteFailed
			},
		}
		r := setupInviteRouter(NewInviteHandler(invites, nil))

		rec := doRequest(r, "POST", "/users/invites", `{"email":"ana@example.com"}`)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVITE_FAILED")
	})
}
