package handlers

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/kwame-ansah/gameday/internal/config"
	"github.com/kwame-ansah/gameday/internal/models"
	"github.com/kwame-ansah/gameday/internal/services"
	"github.com/kwame-ansah/gameday/internal/session"
)

func errorRedirect(code, description string) string {
	q := url.Values{}
	q.Set("error", code)
	if description != "" {
		q.Set("description", description)
	}
	return "/error?" + q.Encode()
}

func SignUp(as *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		res, err := as.SignUpWithEmail(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(models.NormalizeError(err)))
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(res, "Account created successfully"))
	}
}

func SignIn(as *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		tokenRes, err := as.SignInWithEmail(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("invalid email or password"))
			return
		}
		if tokenRes == nil || tokenRes.AccessToken == "" {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse("invalid token response"))
			return
		}

		sess := session.FromRequest(c)
		sess.SetAuthCookies(tokenRes.AccessToken, tokenRes.ExpiresIn, tokenRes.RefreshToken)

		// Tokens travel in cookies only, never in the body.
		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{"user": tokenRes.User}, "Signed in successfully"))
	}
}

// SignOut revokes the session best-effort and always lands on /login. A
// failed revocation is logged and swallowed.
func SignOut(as *services.AuthService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := session.FromRequest(c)

		if err := as.SignOut(c.Request.Context(), sess.AccessToken()); err != nil {
			logger.Error("Sign-out failed", "error", err)
		}

		sess.ClearAuthCookies()
		c.Redirect(http.StatusSeeOther, "/login")
	}
}

// GoogleAuth starts the browser-driven OAuth handoff: the PKCE verifier goes
// into a cookie and the user agent is sent to the provider authorize URL.
func GoogleAuth(as *services.AuthService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		redirectTo := c.Query("redirect_to")
		if redirectTo == "" {
			redirectTo = cfg.SiteURL + "/auth/callback"
		}

		authURL, verifier, err := as.GoogleAuthURL(c.Request.Context(), redirectTo)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(models.NormalizeError(err)))
			return
		}

		session.FromRequest(c).SetCodeVerifier(verifier)
		c.Redirect(http.StatusTemporaryRedirect, authURL)
	}
}

// AuthCallback handles the redirect back from the identity provider. Strict
// decision tree, one redirect per terminal branch, no retries.
func AuthCallback(as *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if errParam := c.Query("error"); errParam != "" {
			c.Redirect(http.StatusTemporaryRedirect, errorRedirect(errParam, c.Query("error_description")))
			return
		}

		code := c.Query("code")
		if code == "" {
			c.Redirect(http.StatusTemporaryRedirect, errorRedirect("no_code", "no authorization code was provided"))
			return
		}

		sess := session.FromRequest(c)
		tokenRes, err := as.ExchangeCode(c.Request.Context(), code, sess.Cookie(session.CodeVerifierCookie))
		if err != nil {
			c.Redirect(http.StatusTemporaryRedirect, errorRedirect("exchange_failed", models.NormalizeError(err)))
			return
		}
		if tokenRes == nil || tokenRes.AccessToken == "" {
			c.Redirect(http.StatusTemporaryRedirect, errorRedirect("no_session", "code exchange returned no session"))
			return
		}

		sess.SetAuthCookies(tokenRes.AccessToken, tokenRes.ExpiresIn, tokenRes.RefreshToken)

		next := c.DefaultQuery("next", "/dashboard")
		c.Redirect(http.StatusTemporaryRedirect, next)
	}
}

// ErrorPage renders the (error, description) pair from a failed OAuth flow
// verbatim; these never go through the normalizer.
func ErrorPage() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"error":       c.Query("error"),
			"description": c.Query("description"),
		})
	}
}
