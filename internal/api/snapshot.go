package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SnapshotHandler reports on the persisted border snapshot.
type SnapshotHandler struct {
	repo SnapshotRepository
	log  *logrus.Logger
}

// NewSnapshotHandler creates a SnapshotHandler.
func NewSnapshotHandler(repo SnapshotRepository, log *logrus.Logger) *SnapshotHandler {
	return &SnapshotHandler{repo: repo, log: log}
}

// Stats handles GET /api/v1/snapshot.
func (h *SnapshotHandler) Stats(c *gin.Context) {
	snap, err := h.repo.Stats(c.Request.Context())
	if err != nil {
		h.log.WithError(err).Error("reading snapshot stats")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, snap)
}
