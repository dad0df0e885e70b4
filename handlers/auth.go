package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/andrewpaige1/learning-tracker/access"
	"github.com/andrewpaige1/learning-tracker/auth"
	"github.com/andrewpaige1/learning-tracker/models"
	"github.com/andrewpaige1/learning-tracker/utils"
	"github.com/andrewpaige1/learning-tracker/validation"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const kindUser access.Kind = "User"

var (
	errEmailTaken = &utils.APIError{
		Message:    "User with this email already exists",
		StatusCode: http.StatusBadRequest,
	}
	errInvalidCredentials = &utils.APIError{
		Message:    "Invalid email or password",
		StatusCode: http.StatusUnauthorized,
	}
)

type sessionUser struct {
	ID    string  `json:"id"`
	Email string  `json:"email"`
	Name  string  `json:"name"`
	Image *string `json:"image"`
}

func toSessionUser(u *models.User) sessionUser {
	return sessionUser{ID: u.ID, Email: u.Email, Name: u.Name, Image: u.Image}
}

// POST /api/auth/register
func (db *DBHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req validation.RegisterRequest
	if err := decode(w, r, &req); err != nil {
		fail(w, r, "Register", kindUser, err)
		return
	}

	user, err := db.Auth.Register(r.Context(), req)
	if errors.Is(err, auth.ErrEmailTaken) {
		utils.WriteError(w, errEmailTaken)
		return
	}
	if err != nil {
		fail(w, r, "Register", kindUser, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User created successfully",
		"user": map[string]interface{}{
			"id":        user.ID,
			"name":      user.Name,
			"email":     user.Email,
			"createdAt": user.CreatedAt,
		},
	})
}

// POST /api/auth/login
func (db *DBHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req validation.LoginRequest
	if err := decode(w, r, &req); err != nil {
		fail(w, r, "Login", kindUser, err)
		return
	}

	user, err := db.Auth.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		utils.WriteError(w, errInvalidCredentials)
		return
	}
	if err != nil {
		fail(w, r, "Login", kindUser, err)
		return
	}

	if !db.startSession(w, r, user) {
		return
	}
	utils.WriteJSON(w, http.StatusOK, toSessionUser(user))
}

func (db *DBHandler) startSession(w http.ResponseWriter, r *http.Request, user *models.User) bool {
	token, err := db.Sessions.CreateToken(user.ID, user.Email, user.Name)
	if err != nil {
		fail(w, r, "startSession", kindUser, err)
		return false
	}
	db.Sessions.SetCookie(w, token)
	return true
}

// POST /api/auth/logout
func (db *DBHandler) Logout(w http.ResponseWriter, r *http.Request) {
	db.Sessions.ClearCookie(w)
	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Signed out"})
}

// GET /api/auth/session
func (db *DBHandler) Session(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	user, err := db.Auth.Get(r.Context(), userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Token outlived its account
		db.Sessions.ClearCookie(w)
		utils.WriteError(w, utils.ErrUnauthorized)
		return
	}
	if err != nil {
		fail(w, r, "Session", kindUser, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"user": toSessionUser(user)})
}

// GET /api/auth/google
func (db *DBHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	if db.Google == nil {
		utils.WriteError(w, utils.ErrNotFound.WithMessage("Google sign-in is not configured"))
		return
	}

	state, err := auth.NewState()
	if err != nil {
		fail(w, r, "GoogleLogin", kindUser, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     auth.OAuthStateCookie,
		Value:    state,
		Path:     "/api/auth/google",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int((10 * time.Minute).Seconds()),
	})
	http.Redirect(w, r, db.Google.AuthCodeURL(state), http.StatusFound)
}

// GET /api/auth/google/callback
func (db *DBHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	if db.Google == nil {
		utils.WriteError(w, utils.ErrNotFound.WithMessage("Google sign-in is not configured"))
		return
	}

	stateCookie, err := r.Cookie(auth.OAuthStateCookie)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		http.Redirect(w, r, "/login?error=OAuthState", http.StatusFound)
		return
	}
	http.SetCookie(w, &http.Cookie{Name: auth.OAuthStateCookie, Path: "/api/auth/google", MaxAge: -1})

	profile, err := db.Google.Exchange(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		log.Warn().Err(err).Msg("GoogleCallback: exchange failed")
		http.Redirect(w, r, "/login?error=OAuthCallback", http.StatusFound)
		return
	}

	user, err := db.Auth.FindOrCreate(r.Context(), profile.Email, profile.Name, profile.Picture)
	if err != nil {
		fail(w, r, "GoogleCallback", kindUser, err)
		return
	}

	if !db.startSession(w, r, user) {
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}
