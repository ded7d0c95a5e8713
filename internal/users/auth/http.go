// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/bookwise/internal/platform/constants"
	"github.com/taibuivan/bookwise/internal/platform/middleware"
	requestutil "github.com/taibuivan/bookwise/internal/platform/request"
	"github.com/taibuivan/bookwise/internal/platform/respond"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
type Handler struct {
	authService  *Service
	cookieSecure bool
}

// NewHandler constructs a new [Handler]. cookieSecure is false only for
// plain-HTTP local development.
func NewHandler(service *Service, cookieSecure bool) *Handler {
	return &Handler{authService: service, cookieSecure: cookieSecure}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /signup : Creates a new account.
//   - POST /login  : Opens a session (cookie) and returns a bearer token.
//   - POST /logout : Revokes the session cookie.
//   - GET  /me     : Current account.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/signup", handler.signup)
	router.Post("/login", handler.login)
	router.Post("/logout", handler.logout)

	router.With(middleware.RequireAuth).Get("/me", handler.me)

	return router
}

/*
Signup handles the creation of a new user account.

POST /api/v1/auth/signup

Response:
  - 201: User: Created user profile
  - 400: VALIDATION_ERROR or CONFLICT (email already registered)
  - 403: READ_ONLY_MODE
*/
func (handler *Handler) signup(writer http.ResponseWriter, request *http.Request) {
	var input SignupInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Signup(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
Login authenticates a user and establishes a session.

POST /api/v1/auth/login

Description: Sets the HttpOnly session cookie for browsers and returns a
short-lived bearer token for API clients.

Response:
  - 200: {user, accessToken, tokenType, expiresIn}
  - 401: UNAUTHORIZED: Invalid credentials
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input LoginInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	http.SetCookie(writer, handler.sessionCookie(session.SessionToken, session.SessionExpiresAt))

	respond.OK(writer, map[string]any{
		FieldUser:        session.User,
		FieldAccessToken: session.AccessToken,
		FieldTokenType:   "Bearer",
		FieldExpiresIn:   int(AccessTokenTTL / time.Second),
	})
}

/*
Logout terminates the current session.

POST /api/v1/auth/logout

Response:
  - 200: {message}
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	if cookie, err := request.Cookie(constants.SessionCookieName); err == nil {
		if err := handler.authService.Logout(request.Context(), cookie.Value); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	expired := handler.sessionCookie("", time.Unix(0, 0))
	expired.MaxAge = -1
	http.SetCookie(writer, expired)

	respond.Message(writer, "Logged out successfully")
}

/*
Me returns the authenticated account.

GET /api/v1/auth/me

Response:
  - 200: User (email and isAdmin included)
  - 401: UNAUTHORIZED
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Me(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

func (handler *Handler) sessionCookie(value string, expiresAt time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    value,
		Path:     constants.SessionCookiePath,
		Expires:  expiresAt,
		Secure:   handler.cookieSecure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
