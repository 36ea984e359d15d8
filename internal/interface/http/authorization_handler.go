package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-finances/internal/application/authorization"
	"github.com/oksasatya/go-finances/internal/application/mediator"
	"github.com/oksasatya/go-finances/internal/interface/middleware"
	"github.com/oksasatya/go-finances/pkg/helpers"
	"github.com/oksasatya/go-finances/pkg/response"
)

type AuthorizationHandler struct {
	M       *mediator.Mediator
	Cookies *helpers.Manager
}

func NewAuthorizationHandler(m *mediator.Mediator, cookieDomain string, cookieSecure bool) *AuthorizationHandler {
	return &AuthorizationHandler{M: m, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

func (h *AuthorizationHandler) CreateAccount(c *gin.Context) {
	var req authorization.CreateAccount
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	res := mediator.Send[authorization.CreateAccount, authorization.AccountCreated](c.Request.Context(), h.M, req)
	reply(c, http.StatusCreated, res)
}

// SignIn returns the session in the body and also sets it as cookies.
func (h *AuthorizationHandler) SignIn(c *gin.Context) {
	var req authorization.SignIn
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	res := mediator.Send[authorization.SignIn, authorization.Session](c.Request.Context(), h.M, req)
	if res.Success {
		h.Cookies.SetPair(c, res.Payload.Token, res.Payload.ExpiresAt, res.Payload.RefreshToken, res.Payload.RefreshExpiresAt)
	}
	reply(c, http.StatusOK, res)
}

// Refresh takes the refresh token from the body or, failing that, the cookie.
func (h *AuthorizationHandler) Refresh(c *gin.Context) {
	var req authorization.RefreshSession
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badPayload(c, err)
			return
		}
	}
	if req.RefreshToken == "" {
		req.RefreshToken, _ = c.Cookie(helpers.RefreshCookie)
	}
	res := mediator.Send[authorization.RefreshSession, authorization.Session](c.Request.Context(), h.M, req)
	if res.Success {
		h.Cookies.SetPair(c, res.Payload.Token, res.Payload.ExpiresAt, res.Payload.RefreshToken, res.Payload.RefreshExpiresAt)
	}
	reply(c, http.StatusOK, res)
}

func (h *AuthorizationHandler) SignOut(c *gin.Context) {
	req := authorization.SignOut{UserID: c.GetString(middleware.CtxUserIDKey)}
	res := mediator.Send[authorization.SignOut, authorization.Empty](c.Request.Context(), h.M, req)
	if res.Success {
		h.Cookies.Clear(c)
	}
	reply(c, http.StatusOK, res)
}

// UploadImage expects a multipart form with the picture in the "file" field.
func (h *AuthorizationHandler) UploadImage(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"file": "is required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"file": "cannot be read"})
		return
	}
	defer func() { _ = f.Close() }()

	req := authorization.UploadUserImage{
		UserID:      c.GetString(middleware.CtxUserIDKey),
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	}
	res := mediator.Send[authorization.UploadUserImage, authorization.ImageUploaded](c.Request.Context(), h.M, req)
	reply(c, http.StatusCreated, res)
}
