package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cybercell/helpline/internal/logging"
	"github.com/cybercell/helpline/internal/metrics"
	"github.com/cybercell/helpline/pkg/domain"
	"github.com/cybercell/helpline/pkg/ports"
	"github.com/cybercell/helpline/pkg/session"
	"github.com/cybercell/helpline/pkg/validate"
)

// restartKeywords reset the conversation from any state, discarding progress.
var restartKeywords = map[string]bool{
	"hi":    true,
	"hello": true,
	"start": true,
}

// Engine is the transition engine: it loads the session for an identity,
// dispatches the inbound text to the handler for the stored state tag,
// persists the mutated session and returns 1-2 outbound messages.
type Engine struct {
	sessions   *session.Manager
	complaints ports.ComplaintStore
	renderer   ports.Renderer
	archive    ports.DocumentArchive
	messenger  ports.Messenger

	clock  func() time.Time
	logger *slog.Logger
}

// Option configures the Engine.
type Option func(*Engine)

// WithClock overrides the time source. Used by tests to control expiry.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		e.clock = clock
	}
}

// WithLogger configures a logger for the Engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New creates a transition engine. All collaborators are injected; the engine
// keeps no global state.
func New(sessions *session.Manager, complaints ports.ComplaintStore, renderer ports.Renderer, archive ports.DocumentArchive, messenger ports.Messenger, opts ...Option) *Engine {
	e := &Engine{
		sessions:   sessions,
		complaints: complaints,
		renderer:   renderer,
		archive:    archive,
		messenger:  messenger,
		clock:      time.Now,
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Handle processes one inbound message and returns the ordered outbound
// replies for the turn. Session mutations are persisted before the replies
// are handed to the transport.
func (e *Engine) Handle(ctx context.Context, identity, body string) ([]string, error) {
	msg := strings.TrimSpace(body)
	now := e.clock()
	metrics.InboundTurns.Inc()

	var replies []string
	err := e.sessions.WithLock(ctx, identity, func(ctx context.Context) error {
		store := e.sessions.Store()

		sess, err := store.Get(ctx, identity)
		if err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
			return fmt.Errorf("failed to load session: %w", err)
		}

		// Own-session expiry is checked before anything else so the timeout
		// notice wins over restart keywords and the bulk sweep.
		if err == nil && e.sessions.Expired(sess, now) {
			if err := store.Delete(ctx, identity); err != nil {
				return fmt.Errorf("failed to delete expired session: %w", err)
			}
			metrics.SessionsExpired.Inc()
			e.logger.Info("session timed out", "identity", identity)
			replies = []string{msgTimeout}
			return nil
		}

		if err != nil || restartKeywords[strings.ToLower(msg)] {
			sess = domain.NewSession(identity, now)
			if err := store.Save(ctx, sess); err != nil {
				return fmt.Errorf("failed to initialize session: %w", err)
			}
			replies = []string{msgGreeting}
			return nil
		}

		// Last activity refreshes on every turn regardless of outcome and is
		// persisted together with any data mutation.
		sess.LastActivity = now

		replies, err = e.dispatch(ctx, store, sess, msg)
		return err
	})
	if err != nil {
		return nil, err
	}

	// Lazy sweep of everyone else's stale sessions. It only targets sessions
	// already expired against its own threshold snapshot, so racing with
	// in-flight turns for other identities is harmless.
	if removed := e.sessions.SweepExpired(ctx, now); removed > 0 {
		metrics.SessionsExpired.Add(float64(removed))
	}

	return replies, nil
}

// dispatch routes the message to exactly one handler for the stored state.
func (e *Engine) dispatch(ctx context.Context, store ports.SessionStore, sess *domain.Session, msg string) ([]string, error) {
	switch sess.State {
	case domain.StateMoneyLoss:
		return e.handleMoneyLoss(ctx, store, sess, msg)
	case domain.StateName:
		return e.collect(ctx, store, sess, msg, validate.Name,
			func(s *domain.Session, v string) { s.Personal.Name = v },
			domain.StateMobile, promptMobile, "Please enter a valid name:")
	case domain.StateMobile:
		return e.collect(ctx, store, sess, msg, validate.Mobile,
			func(s *domain.Session, v string) { s.Personal.Mobile = v },
			domain.StateDOB, promptDOB, "Please enter a valid mobile number:")
	case domain.StateDOB:
		return e.collect(ctx, store, sess, msg, e.dobValidator(),
			func(s *domain.Session, v string) { s.Personal.DOB = v },
			domain.StateFatherName, promptFatherName, "Please enter date in D-M-YYYY format:")
	case domain.StateFatherName:
		return e.collect(ctx, store, sess, msg, validate.Name,
			func(s *domain.Session, v string) { s.Personal.FatherName = v },
			domain.StateDistrict, promptDistrict, "Please enter a valid name:")
	case domain.StateDistrict:
		return e.collect(ctx, store, sess, msg, validate.District,
			func(s *domain.Session, v string) { s.Personal.District = v },
			domain.StatePinCode, promptPinCode, "Please enter a valid district name:")
	case domain.StatePinCode:
		return e.collect(ctx, store, sess, msg, validate.PinCode,
			func(s *domain.Session, v string) { s.Personal.PinCode = v },
			domain.StateTransactionCount, promptTransactionCount, "Please enter a valid PIN code:")
	case domain.StateTransactionCount:
		return e.handleTransactionCount(ctx, store, sess, msg)
	case domain.StateTransDate:
		return e.collect(ctx, store, sess, msg, e.dateValidator(),
			func(s *domain.Session, v string) { s.CurrentTx().Date = v },
			domain.StateTransTime, promptTransTime, "Please enter date in D-M-YYYY format:")
	case domain.StateTransTime:
		return e.collect(ctx, store, sess, msg, validate.ClockTime,
			func(s *domain.Session, v string) { s.CurrentTx().Time = v },
			domain.StateTransBank, promptTransBank, "Please enter time (Examples: 14:30, 2:30 PM, 02:03 pm):")
	case domain.StateTransBank:
		return e.collect(ctx, store, sess, msg, validate.BankName,
			func(s *domain.Session, v string) { s.CurrentTx().BankName = v },
			domain.StateTransAccount, promptTransAccount, "Please enter a valid bank name:")
	case domain.StateTransAccount:
		return e.collect(ctx, store, sess, msg, validate.AccountNumber,
			func(s *domain.Session, v string) { s.CurrentTx().AccountNo = v },
			domain.StateTransAmount, promptTransAmount, "Please enter a valid account number:")
	case domain.StateTransAmount:
		return e.collect(ctx, store, sess, msg, validate.Amount,
			func(s *domain.Session, v string) { s.CurrentTx().Amount = v },
			domain.StateTransID, promptTransID, "Please enter a valid amount:")
	case domain.StateTransID:
		return e.handleTransID(ctx, store, sess, msg)
	case domain.StateConfirm:
		return e.handleConfirm(ctx, store, sess, msg)
	case domain.StateEdit:
		return e.handleEdit(ctx, store, sess, msg)
	default:
		// Corrupted or unknown state tag: fatal for the session, never
		// repaired in place.
		e.logger.Error("unrecognized session state, discarding session",
			"identity", sess.Identity, "state", string(sess.State))
		if err := store.Delete(ctx, sess.Identity); err != nil {
			return nil, fmt.Errorf("failed to delete corrupted session: %w", err)
		}
		return []string{msgRestart}, nil
	}
}

// collect runs the common field pattern: validate free text, store the
// canonical value, advance to the next state. On rejection the state stays
// put, nothing but last activity changes, and the clarifying prompt repeats.
func (e *Engine) collect(ctx context.Context, store ports.SessionStore, sess *domain.Session, msg string,
	validator func(string) (string, error), set func(*domain.Session, string),
	next domain.State, prompt, hint string) ([]string, error) {

	value, err := validator(msg)
	if err != nil {
		return e.reject(ctx, store, sess, err, hint)
	}

	set(sess, value)
	sess.State = next
	if err := store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	return []string{prompt}, nil
}

// reject persists the refreshed activity timestamp and re-emits the prompt
// with the validator's reason. No field is mutated on failure.
func (e *Engine) reject(ctx context.Context, store ports.SessionStore, sess *domain.Session, reason error, hint string) ([]string, error) {
	metrics.ValidationFailures.WithLabelValues(string(sess.State)).Inc()
	if err := store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	return []string{retryPrompt(reason, hint)}, nil
}

func (e *Engine) dobValidator() func(string) (string, error) {
	return func(raw string) (string, error) {
		return validate.DOB(raw, e.clock())
	}
}

func (e *Engine) dateValidator() func(string) (string, error) {
	return func(raw string) (string, error) {
		return validate.TransactionDate(raw, e.clock())
	}
}

func (e *Engine) handleMoneyLoss(ctx context.Context, store ports.SessionStore, sess *domain.Session, msg string) ([]string, error) {
	switch strings.ToLower(msg) {
	case "yes", "1", "yes.":
		sess.State = domain.StateName
		if err := store.Save(ctx, sess); err != nil {
			return nil, fmt.Errorf("failed to persist session: %w", err)
		}
		return []string{promptName}, nil
	case "no", "2", "no.":
		// Explicit decline ends the session.
		if err := store.Delete(ctx, sess.Identity); err != nil {
			return nil, fmt.Errorf("failed to delete session: %w", err)
		}
		return []string{msgTracking}, nil
	default:
		if err := store.Save(ctx, sess); err != nil {
			return nil, fmt.Errorf("failed to persist session: %w", err)
		}
		return []string{msgMoneyLossRetry}, nil
	}
}

func (e *Engine) handleTransactionCount(ctx context.Context, store ports.SessionStore, sess *domain.Session, msg string) ([]string, error) {
	count, err := validate.Count(msg, "Transaction count")
	if err != nil {
		return e.reject(ctx, store, sess, err, "Please enter a valid number:")
	}

	sess.TransactionCount = count
	sess.Transactions = nil
	sess.CurrentTransaction = 0
	sess.State = domain.StateTransDate
	if err := store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	return []string{promptTransDate(1)}, nil
}

func (e *Engine) handleTransID(ctx context.Context, store ports.SessionStore, sess *domain.Session, msg string) ([]string, error) {
	value, err := validate.TransactionID(msg)
	if err != nil {
		return e.reject(ctx, store, sess, err, "Please enter a valid transaction ID:")
	}

	sess.CurrentTx().TransactionID = value
	sess.CurrentTransaction++

	if sess.CurrentTransaction < sess.TransactionCount {
		sess.State = domain.StateTransDate
		if err := store.Save(ctx, sess); err != nil {
			return nil, fmt.Errorf("failed to persist session: %w", err)
		}
		return []string{promptTransDate(sess.CurrentTransaction + 1)}, nil
	}

	// Final transaction complete: transactions length now equals the count.
	sess.State = domain.StateConfirm
	if err := store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	return []string{Summary(sess), msgConfirmPrompt}, nil
}

func (e *Engine) handleConfirm(ctx context.Context, store ports.SessionStore, sess *domain.Session, msg string) ([]string, error) {
	switch strings.ToLower(msg) {
	case "yes", "confirm":
		return e.finalize(ctx, store, sess)
	case "no", "edit":
		sess.State = domain.StateEdit
		if err := store.Save(ctx, sess); err != nil {
			return nil, fmt.Errorf("failed to persist session: %w", err)
		}
		return []string{msgEditInstructions}, nil
	default:
		if err := store.Save(ctx, sess); err != nil {
			return nil, fmt.Errorf("failed to persist session: %w", err)
		}
		return []string{msgConfirmRetry}, nil
	}
}

func (e *Engine) handleEdit(ctx context.Context, store ports.SessionStore, sess *domain.Session, msg string) ([]string, error) {
	switch strings.ToLower(msg) {
	case "done":
		sess.State = domain.StateConfirm
		if err := store.Save(ctx, sess); err != nil {
			return nil, fmt.Errorf("failed to persist session: %w", err)
		}
		return []string{Summary(sess), msgConfirmUpdated}, nil

	case "summary":
		if err := store.Save(ctx, sess); err != nil {
			return nil, fmt.Errorf("failed to persist session: %w", err)
		}
		return []string{Summary(sess) + "\n\n*To edit:* type serial_number = new_value\n" +
			"Examples: 1.1 = New Name or 2.1.2 = 02:03 PM\n" +
			"Type 'done' when finished"}, nil
	}

	if path, value, ok := strings.Cut(msg, "="); ok {
		confirmation, err := EditField(sess, strings.TrimSpace(path), strings.TrimSpace(value), e.clock())
		if err != nil {
			metrics.ValidationFailures.WithLabelValues(string(sess.State)).Inc()
			if err := store.Save(ctx, sess); err != nil {
				return nil, fmt.Errorf("failed to persist session: %w", err)
			}
			return []string{fmt.Sprintf("❌ %s\n\n%s", err, msgEditRetryFormat)}, nil
		}

		if err := store.Save(ctx, sess); err != nil {
			return nil, fmt.Errorf("failed to persist session: %w", err)
		}
		return []string{confirmation + "\n\n" + msgEditContinue}, nil
	}

	if err := store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	return []string{msgEditFormatHelp}, nil
}
