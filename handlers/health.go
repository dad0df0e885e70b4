package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/andrewpaige1/learning-tracker/utils"
	"github.com/rs/zerolog/log"
)

// GET /healthz
func (db *DBHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	sqlDB, err := db.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		log.Error().Err(err).Msg("database ping failed")
		utils.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
