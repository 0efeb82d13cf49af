package ports

import (
	"context"

	"github.com/cybercell/helpline/pkg/domain"
)

// Renderer produces the complaint document from a finalized record.
type Renderer interface {
	Render(ctx context.Context, complaint *domain.Complaint) ([]byte, error)
}

// DocumentArchive stores a rendered document and returns a URL the messaging
// channel can fetch it from.
type DocumentArchive interface {
	Store(ctx context.Context, name string, data []byte) (url string, err error)
}

// Messenger delivers a stored document to an identity out of band of the
// turn-based reply. Returns the provider's delivery ID on success.
type Messenger interface {
	SendDocument(ctx context.Context, identity, documentURL string) (deliveryID string, err error)
}
