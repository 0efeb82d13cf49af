package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/cybercell/helpline/internal/metrics"
	"github.com/cybercell/helpline/pkg/domain"
	"github.com/cybercell/helpline/pkg/ports"
)

// finalize converts the completed session into an immutable complaint record,
// renders and delivers the document, and deletes the session. The record is
// durable before delivery is attempted; a delivery failure only degrades the
// reply, it never rolls the record back.
func (e *Engine) finalize(ctx context.Context, store ports.SessionStore, sess *domain.Session) ([]string, error) {
	record := &domain.Complaint{
		Identity:     sess.Identity,
		Personal:     sess.Personal,
		Transactions: sess.Transactions,
		CreatedAt:    e.clock(),
		Status:       domain.StatusPending,
	}

	id, err := e.complaints.Insert(ctx, record)
	if err != nil {
		// Session is untouched; the user can confirm again.
		return nil, fmt.Errorf("failed to store complaint: %w", err)
	}
	record.ID = id
	metrics.ComplaintsFinalized.Inc()
	e.logger.Info("complaint finalized", "complaint_id", id, "transactions", len(record.Transactions))

	deliveryErr := e.deliver(ctx, record)

	if err := store.Delete(ctx, sess.Identity); err != nil {
		e.logger.Warn("failed to delete session after finalization", "identity", sess.Identity, "err", err)
	}

	if deliveryErr != nil {
		metrics.DeliveryFailures.Inc()
		e.logger.Warn("complaint document delivery failed", "complaint_id", id, "err", deliveryErr)
		return []string{msgGenerating, msgDeliveryFallback(id)}, nil
	}
	return []string{msgGenerating, msgSuccess}, nil
}

// deliver renders the complaint, archives the document and sends it through
// the messaging channel.
func (e *Engine) deliver(ctx context.Context, record *domain.Complaint) error {
	document, err := e.renderer.Render(ctx, record)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	name := fmt.Sprintf("complaint_%s_%s.pdf", e.clock().Format("20060102150405"), uuid.NewString()[:8])
	url, err := e.archive.Store(ctx, name, document)
	if err != nil {
		return fmt.Errorf("archive: %w", err)
	}

	deliveryID, err := e.messenger.SendDocument(ctx, record.Identity, url)
	if err != nil {
		return fmt.Errorf("send: %w", err)
	}
	e.logger.Info("complaint document delivered", "complaint_id", record.ID, "delivery_id", deliveryID)
	return nil
}
