package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-finances/internal/application/favored"
	"github.com/oksasatya/go-finances/internal/application/mediator"
	"github.com/oksasatya/go-finances/internal/interface/middleware"
)

type FavoredHandler struct {
	M *mediator.Mediator
}

func NewFavoredHandler(m *mediator.Mediator) *FavoredHandler {
	return &FavoredHandler{M: m}
}

// Create registers the favored for the signed-in user, whatever the body says.
func (h *FavoredHandler) Create(c *gin.Context) {
	var req favored.CreateFavored
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	req.BelongToUserID = c.GetString(middleware.CtxUserIDKey)
	res := mediator.Send[favored.CreateFavored, favored.Registered](c.Request.Context(), h.M, req)
	reply(c, http.StatusCreated, res)
}

func (h *FavoredHandler) List(c *gin.Context) {
	req := favored.GetFavoredsByUserId{UserID: c.GetString(middleware.CtxUserIDKey)}
	res := mediator.Send[favored.GetFavoredsByUserId, []favored.View](c.Request.Context(), h.M, req)
	reply(c, http.StatusOK, res)
}

// Search reads ?q= and an optional ?size=.
func (h *FavoredHandler) Search(c *gin.Context) {
	req := favored.SearchFavoreds{UserID: c.GetString(middleware.CtxUserIDKey), Query: c.Query("q")}
	if s := c.Query("size"); s != "" {
		size, err := strconv.Atoi(s)
		if err != nil {
			badPayload(c, err)
			return
		}
		req.Size = size
	}
	res := mediator.Send[favored.SearchFavoreds, []favored.Document](c.Request.Context(), h.M, req)
	reply(c, http.StatusOK, res)
}
