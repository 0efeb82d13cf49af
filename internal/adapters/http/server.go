// Package http exposes the inbound webhook, document downloads and the
// attender admin API.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/twilio/twilio-go/twiml"

	"github.com/cybercell/helpline/pkg/domain"
	"github.com/cybercell/helpline/pkg/ports"
)

// Conversation is the turn-based engine behind the webhook.
type Conversation interface {
	Handle(ctx context.Context, identity, body string) ([]string, error)
}

// Server routes inbound messages to the conversation engine and serves the
// complaint records to attenders.
type Server struct {
	conversation Conversation
	complaints   ports.ComplaintStore
	spoolDir     string
	logger       *slog.Logger
}

// NewHandler builds the full HTTP routing table.
func NewHandler(conversation Conversation, complaints ports.ComplaintStore, spoolDir string, logger *slog.Logger) http.Handler {
	s := &Server{
		conversation: conversation,
		complaints:   complaints,
		spoolDir:     spoolDir,
		logger:       logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Post("/webhook", s.webhook)
	r.Get("/download/{filename}", s.download)

	r.Get("/complaints", s.listComplaints)
	r.Post("/complaints/{id}/claim", s.claimComplaint)
	r.Post("/complaints/{id}/status", s.updateStatus)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// webhook receives one inbound message from the provider and answers with a
// TwiML document carrying the ordered replies.
func (s *Server) webhook(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form body", http.StatusBadRequest)
		return
	}

	identity := r.FormValue("From")
	if identity == "" {
		http.Error(w, "Missing From", http.StatusBadRequest)
		return
	}
	body := r.FormValue("Body")

	replies, err := s.conversation.Handle(r.Context(), identity, body)
	if err != nil {
		s.logger.Error("turn failed", "identity", identity, "err", err)
		replies = []string{"Something went wrong. Please try again in a moment."}
	}

	elements := make([]twiml.Element, 0, len(replies))
	for _, reply := range replies {
		elements = append(elements, &twiml.MessagingMessage{Body: reply})
	}

	doc, err := twiml.Messages(elements)
	if err != nil {
		s.logger.Error("twiml encoding failed", "err", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml")
	w.Write([]byte(doc))
}

// download serves an archived complaint document. The provider fetches media
// from here when delivering the form.
func (s *Server) download(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "filename")
	if name == "" || name != filepath.Base(name) {
		http.Error(w, "Invalid file name", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	http.ServeFile(w, r, filepath.Join(s.spoolDir, name))
}

func (s *Server) listComplaints(w http.ResponseWriter, r *http.Request) {
	complaints, err := s.complaints.ListAll(r.Context())
	if err != nil {
		s.logger.Error("failed to list complaints", "err", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, complaints)
}

type claimRequest struct {
	Handler string `json:"handler"`
	Status  string `json:"status"`
}

func (s *Server) claimComplaint(w http.ResponseWriter, r *http.Request) {
	id, ok := s.complaintID(w, r)
	if !ok {
		return
	}

	var req claimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Handler == "" || req.Status == "" {
		http.Error(w, "handler and status are required", http.StatusBadRequest)
		return
	}

	if err := s.complaints.UpdateHandler(r.Context(), id, req.Handler, req.Status); err != nil {
		s.complaintError(w, id, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

type statusRequest struct {
	Status       string               `json:"status"`
	Transactions []domain.Transaction `json:"transactions,omitempty"`
}

func (s *Server) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := s.complaintID(w, r)
	if !ok {
		return
	}

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Status == "" {
		http.Error(w, "status is required", http.StatusBadRequest)
		return
	}

	if err := s.complaints.UpdateStatus(r.Context(), id, req.Status, req.Transactions); err != nil {
		s.complaintError(w, id, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) complaintID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid complaint ID", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func (s *Server) complaintError(w http.ResponseWriter, id int64, err error) {
	if errors.Is(err, domain.ErrComplaintNotFound) {
		http.Error(w, "Complaint not found", http.StatusNotFound)
		return
	}
	s.logger.Error("complaint update failed", "complaint_id", id, "err", err)
	http.Error(w, "Internal error", http.StatusInternalServerError)
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
