// internal/app/features/resumes/handler.go
package resumes

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	uierrors "github.com/shreshthUnderscore/agile-ai/internal/app/features/errors"
	"github.com/shreshthUnderscore/agile-ai/internal/app/policy/teampolicy"
	resumestore "github.com/shreshthUnderscore/agile-ai/internal/app/store/resumes"
	teamstore "github.com/shreshthUnderscore/agile-ai/internal/app/store/teams"
	"github.com/shreshthUnderscore/agile-ai/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// DefaultMaxUploadBytes bounds resume uploads when no limit is
// configured.
const DefaultMaxUploadBytes = 10 << 20 // 10 MiB

type Handler struct {
	Resumes        *resumestore.Store
	Teams          *teamstore.Store
	MaxUploadBytes int64
	ErrLog         *uierrors.ErrorLogger
	Log            *zap.Logger
}

// NewHandler constructs a resumes Handler. maxUploadBytes <= 0 falls
// back to DefaultMaxUploadBytes.
func NewHandler(resumes *resumestore.Store, teams *teamstore.Store, maxUploadBytes int64, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &Handler{
		Resumes:        resumes,
		Teams:          teams,
		MaxUploadBytes: maxUploadBytes,
		ErrLog:         errLog,
		Log:            logger,
	}
}

// Upload handles POST /api/team/members/{id}/resume. Lead-only. The
// multipart field is named "resume"; on success the member's
// resume_ref points at the stored blob and the reference is returned.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if !teampolicy.CanManageRoster(r) {
		h.ErrLog.Write(w, http.StatusForbidden, "only the team lead can upload resumes")
		return
	}

	memberID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.Write(w, http.StatusBadRequest, "invalid member id")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.MaxUploadBytes); err != nil {
		h.ErrLog.Write(w, http.StatusBadRequest, "upload too large or malformed")
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		h.ErrLog.Write(w, http.StatusBadRequest, `multipart field "resume" is required`)
		return
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	// Verify the member exists before storing the blob, so a typo'd id
	// doesn't leave an orphan on every attempt.
	team, err := h.Teams.Get(ctx)
	if err != nil {
		h.ErrLog.StoreError(w, r, err, "resumes.upload.team")
		return
	}
	if _, ok := team.Member(memberID); !ok {
		h.ErrLog.Write(w, http.StatusBadRequest, teamstore.ErrUnknownMember.Error())
		return
	}

	ref, err := h.Resumes.Put(ctx, header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		h.ErrLog.ServerError(w, r, err, "resumes.upload.put")
		return
	}

	if err := h.Teams.SetMemberResume(ctx, memberID, ref); err != nil {
		h.ErrLog.StoreError(w, r, err, "resumes.upload.link")
		return
	}

	h.Log.Info("resume uploaded",
		zap.String("member_id", memberID.Hex()),
		zap.String("ref", ref),
		zap.Int64("size", header.Size))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]string{"ref": ref})
}

// Download handles GET /api/resumes/{ref}, streaming the stored blob.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	stream, info, err := h.Resumes.Open(ctx, ref)
	if err != nil {
		if errors.Is(err, resumestore.ErrBadRef) {
			h.ErrLog.Write(w, http.StatusNotFound, "not found")
			return
		}
		h.ErrLog.ServerError(w, r, err, "resumes.download")
		return
	}
	defer stream.Close()

	contentType := info.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.FormatInt(info.Length, 10))
	w.Header().Set("Content-Disposition", `attachment; filename="`+info.Name+`"`)

	if _, err := io.Copy(w, stream); err != nil {
		// Headers are already out; all we can do is log.
		h.Log.Warn("resume stream interrupted", zap.String("ref", ref), zap.Error(err))
	}
}
