package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/mattn/go-sqlite3"

	"github.com/cybercell/helpline/pkg/domain"
)

// complaintRow is the storage model for one finalized complaint. Transactions
// are serialized as a JSON column, matching the shape the dashboard consumes.
type complaintRow struct {
	bun.BaseModel `bun:"table:complaints,alias:c"`

	ID           int64     `bun:"id,pk,autoincrement"`
	PhoneNumber  string    `bun:"phone_number,notnull"`
	Name         string    `bun:"name,notnull"`
	MobileNo     string    `bun:"mobile_no,notnull"`
	DOB          string    `bun:"dob,notnull"`
	FatherName   string    `bun:"father_name,notnull"`
	District     string    `bun:"district,notnull"`
	PinCode      string    `bun:"pin_code,notnull"`
	Transactions string    `bun:"transactions,notnull"`
	CreatedAt    time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	Handler      string    `bun:"handler"`
	Status       string    `bun:"status,notnull"`
}

// Store implements ports.ComplaintStore on SQLite via bun.
type Store struct {
	db *bun.DB
}

// Open opens (creating if needed) the SQLite database at path.
func Open(path string) (*bun.DB, error) {
	sqldb, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// NewStore creates a complaint store on an open database.
func NewStore(db *bun.DB) *Store {
	return &Store{db: db}
}

// Init creates the complaints table if it does not exist.
func (s *Store) Init(ctx context.Context) error {
	if _, err := s.db.NewCreateTable().Model((*complaintRow)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("failed to create complaints table: %w", err)
	}
	return nil
}

// Insert stores a new complaint and returns its assigned ID.
func (s *Store) Insert(ctx context.Context, complaint *domain.Complaint) (int64, error) {
	transactions, err := json.Marshal(complaint.Transactions)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal transactions: %w", err)
	}

	status := complaint.Status
	if status == "" {
		status = domain.StatusPending
	}

	row := &complaintRow{
		PhoneNumber:  complaint.Identity,
		Name:         complaint.Personal.Name,
		MobileNo:     complaint.Personal.Mobile,
		DOB:          complaint.Personal.DOB,
		FatherName:   complaint.Personal.FatherName,
		District:     complaint.Personal.District,
		PinCode:      complaint.Personal.PinCode,
		Transactions: string(transactions),
		CreatedAt:    complaint.CreatedAt,
		Handler:      complaint.Handler,
		Status:       status,
	}

	if _, err := s.db.NewInsert().Model(row).Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to insert complaint: %w", err)
	}
	return row.ID, nil
}

// ListAll returns every complaint, newest first.
func (s *Store) ListAll(ctx context.Context) ([]domain.Complaint, error) {
	var rows []complaintRow
	if err := s.db.NewSelect().Model(&rows).OrderExpr("created_at DESC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list complaints: %w", err)
	}

	complaints := make([]domain.Complaint, 0, len(rows))
	for _, row := range rows {
		complaint, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		complaints = append(complaints, complaint)
	}
	return complaints, nil
}

func (r complaintRow) toDomain() (domain.Complaint, error) {
	var transactions []domain.Transaction
	if r.Transactions != "" {
		if err := json.Unmarshal([]byte(r.Transactions), &transactions); err != nil {
			return domain.Complaint{}, fmt.Errorf("failed to unmarshal transactions for complaint %d: %w", r.ID, err)
		}
	}
	return domain.Complaint{
		ID:       r.ID,
		Identity: r.PhoneNumber,
		Personal: domain.PersonalInfo{
			Name:       r.Name,
			Mobile:     r.MobileNo,
			DOB:        r.DOB,
			FatherName: r.FatherName,
			District:   r.District,
			PinCode:    r.PinCode,
		},
		Transactions: transactions,
		CreatedAt:    r.CreatedAt,
		Handler:      r.Handler,
		Status:       r.Status,
	}, nil
}

// UpdateStatus sets the status and, when transactions is non-nil, replaces
// the stored transaction list.
func (s *Store) UpdateStatus(ctx context.Context, id int64, status string, transactions []domain.Transaction) error {
	query := s.db.NewUpdate().Model((*complaintRow)(nil)).
		Set("status = ?", status).
		Where("id = ?", id)

	if transactions != nil {
		data, err := json.Marshal(transactions)
		if err != nil {
			return fmt.Errorf("failed to marshal transactions: %w", err)
		}
		query = query.Set("transactions = ?", string(data))
	}

	res, err := query.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update complaint status: %w", err)
	}
	return checkAffected(res)
}

// UpdateHandler assigns a handler and status to a complaint.
func (s *Store) UpdateHandler(ctx context.Context, id int64, handler, status string) error {
	res, err := s.db.NewUpdate().Model((*complaintRow)(nil)).
		Set("handler = ?", handler).
		Set("status = ?", status).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update complaint handler: %w", err)
	}
	return checkAffected(res)
}

func checkAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrComplaintNotFound
	}
	return nil
}
