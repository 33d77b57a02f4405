package resumes_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	uierrors "github.com/shreshthUnderscore/agile-ai/internal/app/features/errors"
	"github.com/shreshthUnderscore/agile-ai/internal/app/features/resumes"
	resumestore "github.com/shreshthUnderscore/agile-ai/internal/app/store/resumes"
	teamstore "github.com/shreshthUnderscore/agile-ai/internal/app/store/teams"
	"github.com/shreshthUnderscore/agile-ai/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func setup(t *testing.T) (*resumes.Handler, *teamstore.Store) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	store, err := resumestore.New(db)
	if err != nil {
		t.Fatalf("resume store: %v", err)
	}
	teams := teamstore.New(db)
	h := resumes.NewHandler(store, teams, 1<<20, uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())
	return h, teams
}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func TestUploadAndDownload(t *testing.T) {
	h, teams := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := teams.Create(ctx, "Apollo", primitive.NewObjectID()); err != nil {
		t.Fatalf("team create: %v", err)
	}
	alice, err := teams.AddMember(ctx, "Alice", "Engineer")
	if err != nil {
		t.Fatalf("add member: %v", err)
	}

	content := []byte("%PDF-1.4 resume body")
	body, contentType := multipartBody(t, "resume", "resume.pdf", content)

	req := httptest.NewRequest(http.MethodPost, "/api/team/members/x/resume", body)
	req.Header.Set("Content-Type", contentType)
	req = testutil.WithUser(req, testutil.LeadUser())
	req = testutil.WithChiURLParam(req, "id", alice.ID.Hex())
	rec := testutil.NewRecorder()

	h.Upload(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusCreated)

	var resp struct {
		Ref string `json:"ref"`
	}
	rec.DecodeJSON(t, &resp)
	if resp.Ref == "" {
		t.Fatal("expected a blob reference")
	}

	// The roster entry now points at the blob.
	team, err := teams.Get(ctx)
	if err != nil {
		t.Fatalf("team get: %v", err)
	}
	m, ok := team.Member(alice.ID)
	if !ok || m.ResumeRef != resp.Ref {
		t.Errorf("resume_ref: got %q, want %q", m.ResumeRef, resp.Ref)
	}

	// Round-trip the bytes through the download endpoint.
	dreq := testutil.NewAuthenticatedRequest(http.MethodGet, "/api/resumes/x", testutil.MemberUser())
	dreq = testutil.WithChiURLParam(dreq, "ref", resp.Ref)
	drec := testutil.NewRecorder()

	h.Download(drec.ResponseRecorder, dreq)

	drec.AssertStatus(t, http.StatusOK)
	got, err := io.ReadAll(drec.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("downloaded %d bytes, want the %d uploaded", len(got), len(content))
	}
}

func TestUpload_MemberForbidden(t *testing.T) {
	h, _ := setup(t)

	body, contentType := multipartBody(t, "resume", "resume.pdf", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/api/team/members/x/resume", body)
	req.Header.Set("Content-Type", contentType)
	req = testutil.WithUser(req, testutil.MemberUser())
	req = testutil.WithChiURLParam(req, "id", primitive.NewObjectID().Hex())
	rec := testutil.NewRecorder()

	h.Upload(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusForbidden)
}

func TestUpload_UnknownMember(t *testing.T) {
	h, teams := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := teams.Create(ctx, "Apollo", primitive.NewObjectID()); err != nil {
		t.Fatalf("team create: %v", err)
	}

	body, contentType := multipartBody(t, "resume", "resume.pdf", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/api/team/members/x/resume", body)
	req.Header.Set("Content-Type", contentType)
	req = testutil.WithUser(req, testutil.LeadUser())
	req = testutil.WithChiURLParam(req, "id", primitive.NewObjectID().Hex())
	rec := testutil.NewRecorder()

	h.Upload(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "not on the roster")
}

func TestDownload_UnknownRef(t *testing.T) {
	h, _ := setup(t)

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/api/resumes/x", testutil.MemberUser())
	req = testutil.WithChiURLParam(req, "ref", primitive.NewObjectID().Hex())
	rec := testutil.NewRecorder()

	h.Download(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusNotFound)
}
