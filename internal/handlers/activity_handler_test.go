package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"confeitaria/internal/models"
	"confeitaria/internal/pagination"
	"confeitaria/internal/services"
)

func setupActivityRouter(handler *ActivityHandler) *gin.Engine {
	r := gin.New()
	r.GET("/activities", injectUserID(testUserID), handler.ListActivities)
	return r
}

func TestActivityHandler_ListActivities(t *testing.T) {
	t.Run("passes filter and page", func(t *testing.T) {
		var gotFilter services.ActivityFilter
		var gotPage pagination.PageRequest
		activities := &mockActivityService{
			listFn: func(userID string, filter services.ActivityFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Activity], error) {
				gotFilter, gotPage = filter, page
				resp := pagination.NewPageResponse([]models.Activity{{Action: "Pedido criado"}}, page.Page, page.PageSize, 1)
				return &resp, nil
			},
		}
		r := setupActivityRouter(NewActivityHandler(activities))

		rec := doRequest(r, "GET", "/activities?category=pedido&search=bolo&page=1&page_size=5", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotFilter.Category == nil || *gotFilter.Category != models.ActivityOrder {
			t.Error("expected pedido category")
		}
		if gotFilter.Search != "bolo" || gotPage.PageSize != 5 {
			t.Errorf("unexpected filter %+v page %+v", gotFilter, gotPage)
		}
	})

	t.Run("returns 400 on unknown category", func(t *testing.T) {
		r := setupActivityRouter(NewActivityHandler(&mockActivityService{}))

		rec := doRequest(r, "GET", "/activities?category=estoque", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
