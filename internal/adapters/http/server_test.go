package http_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpAdapter "github.com/cybercell/helpline/internal/adapters/http"
	"github.com/cybercell/helpline/internal/logging"
	"github.com/cybercell/helpline/pkg/domain"
)

type fakeConversation struct {
	replies  []string
	err      error
	identity string
	body     string
}

func (f *fakeConversation) Handle(ctx context.Context, identity, body string) ([]string, error) {
	f.identity = identity
	f.body = body
	if f.err != nil {
		return nil, f.err
	}
	return f.replies, nil
}

type fakeComplaints struct {
	records    []domain.Complaint
	claimed    map[int64]string
	statuses   map[int64]string
	missingIDs map[int64]bool
}

func newFakeComplaints() *fakeComplaints {
	return &fakeComplaints{
		claimed:    make(map[int64]string),
		statuses:   make(map[int64]string),
		missingIDs: make(map[int64]bool),
	}
}

func (f *fakeComplaints) Insert(ctx context.Context, c *domain.Complaint) (int64, error) {
	f.records = append(f.records, *c)
	return int64(len(f.records)), nil
}

func (f *fakeComplaints) ListAll(ctx context.Context) ([]domain.Complaint, error) {
	return f.records, nil
}

func (f *fakeComplaints) UpdateStatus(ctx context.Context, id int64, status string, transactions []domain.Transaction) error {
	if f.missingIDs[id] {
		return domain.ErrComplaintNotFound
	}
	f.statuses[id] = status
	return nil
}

func (f *fakeComplaints) UpdateHandler(ctx context.Context, id int64, handler, status string) error {
	if f.missingIDs[id] {
		return domain.ErrComplaintNotFound
	}
	f.claimed[id] = handler
	f.statuses[id] = status
	return nil
}

func newServer(conversation *fakeConversation, complaints *fakeComplaints, spoolDir string) http.Handler {
	return httpAdapter.NewHandler(conversation, complaints, spoolDir, logging.NewNop())
}

func postForm(handler http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestWebhook_RepliesAsTwiML(t *testing.T) {
	conversation := &fakeConversation{replies: []string{"first reply", "second reply"}}
	handler := newServer(conversation, newFakeComplaints(), t.TempDir())

	rec := postForm(handler, "/webhook", url.Values{
		"From": {"whatsapp:+919876543210"},
		"Body": {"Hi"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/xml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<Message>first reply</Message>")
	assert.Contains(t, rec.Body.String(), "<Message>second reply</Message>")
	assert.Equal(t, "whatsapp:+919876543210", conversation.identity)
	assert.Equal(t, "Hi", conversation.body)
}

func TestWebhook_MissingFromRejected(t *testing.T) {
	handler := newServer(&fakeConversation{}, newFakeComplaints(), t.TempDir())

	rec := postForm(handler, "/webhook", url.Values{"Body": {"Hi"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWebhook_EngineErrorStillAnswers(t *testing.T) {
	conversation := &fakeConversation{err: errors.New("redis down")}
	handler := newServer(conversation, newFakeComplaints(), t.TempDir())

	rec := postForm(handler, "/webhook", url.Values{"From": {"whatsapp:+911"}, "Body": {"Hi"}})

	require.Equal(t, http.StatusOK, rec.Code, "the provider retries non-200 responses; degrade in-band instead")
	assert.Contains(t, rec.Body.String(), "Something went wrong")
}

func TestDownload_ServesArchivedDocument(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "complaint_1.pdf"), []byte("%PDF-1.4 test"), 0o644))
	handler := newServer(&fakeConversation{}, newFakeComplaints(), dir)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/download/complaint_1.pdf", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, "%PDF-1.4 test", rec.Body.String())
}

func TestDownload_UnknownFileIs404(t *testing.T) {
	handler := newServer(&fakeConversation{}, newFakeComplaints(), t.TempDir())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/download/nope.pdf", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListComplaints(t *testing.T) {
	complaints := newFakeComplaints()
	complaints.records = []domain.Complaint{{ID: 1, Identity: "whatsapp:+911", Status: domain.StatusPending}}
	handler := newServer(&fakeConversation{}, complaints, t.TempDir())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/complaints", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"phone_number":"whatsapp:+911"`)
}

func TestClaimComplaint(t *testing.T) {
	t.Run("assigns handler and status", func(t *testing.T) {
		complaints := newFakeComplaints()
		handler := newServer(&fakeConversation{}, complaints, t.TempDir())

		req := httptest.NewRequest(http.MethodPost, "/complaints/7/claim",
			strings.NewReader(`{"handler":"Inspector Devi","status":"In Progress"}`))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Inspector Devi", complaints.claimed[7])
		assert.Equal(t, "In Progress", complaints.statuses[7])
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		handler := newServer(&fakeConversation{}, newFakeComplaints(), t.TempDir())

		req := httptest.NewRequest(http.MethodPost, "/complaints/7/claim",
			strings.NewReader(`{"handler":"Inspector Devi"}`))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown complaint is 404", func(t *testing.T) {
		complaints := newFakeComplaints()
		complaints.missingIDs[9] = true
		handler := newServer(&fakeConversation{}, complaints, t.TempDir())

		req := httptest.NewRequest(http.MethodPost, "/complaints/9/claim",
			strings.NewReader(`{"handler":"X","status":"Y"}`))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestUpdateStatus(t *testing.T) {
	complaints := newFakeComplaints()
	handler := newServer(&fakeConversation{}, complaints, t.TempDir())

	req := httptest.NewRequest(http.MethodPost, "/complaints/3/status",
		strings.NewReader(`{"status":"Resolved"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Resolved", complaints.statuses[3])
}

func TestHealth(t *testing.T) {
	handler := newServer(&fakeConversation{}, newFakeComplaints(), t.TempDir())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
