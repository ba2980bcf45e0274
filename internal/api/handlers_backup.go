package api

import (
	"io"
	"net/http"
	"time"

	"github.com/icalorie/icalorie-server/internal/api/respond"
	"github.com/icalorie/icalorie-server/internal/backup"
)

// maxImportBytes caps the accepted snapshot size. Entries may embed base64
// photos, so the limit is generous.
const maxImportBytes = 64 << 20

type BackupHandler struct {
	engine *backup.Engine
}

func NewBackupHandler(engine *backup.Engine) *BackupHandler {
	return &BackupHandler{engine: engine}
}

func (h *BackupHandler) Export(w http.ResponseWriter, r *http.Request) {
	snap, err := h.engine.Export(r.Context())
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="`+backup.Filename(time.Now())+`"`)
	respond.WriteJSON(w, http.StatusOK, snap)
}

func (h *BackupHandler) Import(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		respond.WriteBadRequest(w, "failed to read body")
		return
	}

	res, err := h.engine.Import(r.Context(), raw)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, res)
}
