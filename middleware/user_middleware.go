package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/andrewpaige1/learning-tracker/models"
	"github.com/andrewpaige1/learning-tracker/utils"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SyncUser ensures the Auth0 user exists in the DB and attaches its id to
// the context. Accounts are matched by Auth0 subject first, then by email so
// an existing password account gets linked.
func SyncUser(db *gorm.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := utils.GetAuth0Claims(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			auth0ID := claims.RegisteredClaims.Subject
			profile := &CustomClaims{}
			if custom, ok := claims.CustomClaims.(*CustomClaims); ok && custom != nil {
				profile = custom
			}

			user, err := syncAuth0User(db.WithContext(r.Context()), auth0ID, profile)
			if err != nil {
				log.Error().Err(err).Str("auth0_id", auth0ID).Msg("failed to sync user")
				utils.WriteError(w, utils.ErrInternal)
				return
			}

			ctx := utils.WithUserID(r.Context(), user.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

var errNoEmail = errors.New("auth0 token carries no email")

func syncAuth0User(db *gorm.DB, auth0ID string, profile *CustomClaims) (*models.User, error) {
	var user models.User
	err := db.Where("auth0_id = ?", auth0ID).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(profile.Email))
	if email == "" {
		return nil, errNoEmail
	}

	err = db.Where("email = ?", email).First(&user).Error
	switch {
	case err == nil:
		if err := db.Model(&user).Update("auth0_id", auth0ID).Error; err != nil {
			return nil, err
		}
		log.Info().Str("user_id", user.ID).Msg("linked auth0 identity")
		return &user, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	name := profile.Name
	if name == "" {
		name = profile.Nickname
	}
	user = models.User{Email: email, Name: name, Auth0ID: &auth0ID}
	if profile.Picture != "" {
		user.Image = &profile.Picture
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	log.Info().Str("user_id", user.ID).Msg("created user from auth0")
	return &user, nil
}
