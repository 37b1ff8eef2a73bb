package handler

import (
	"context"
	"net/http"
	"time"
)

type healthStatus struct {
	Environment string `json:"environment"`
	Database    string `json:"database"`
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Database.QueryTimeout)*time.Second)
	defer cancel()

	status := healthStatus{Environment: h.config.Environment, Database: "ok"}
	if err := h.db.Ping(ctx); err != nil {
		h.logInternalServerError(r, err)
		status.Database = "unavailable"
		h.writeJSON(w, r, http.StatusServiceUnavailable, Response{
			Success: false,
			Message: "数据库不可用",
			Data:    status,
		})
		return
	}

	h.successResponse(w, r, "服务正常", status)
}
