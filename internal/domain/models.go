package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Organization represents an isolated production company account.
// SeatLimit caps active members plus pending invites; 0 means unlimited.
// When AllowSeatOverage is set, invites past the limit succeed with a warning.
type Organization struct {
	ID                   uuid.UUID  `db:"id" json:"id"`
	Name                 string     `db:"name" json:"name"`
	Slug                 string     `db:"slug" json:"slug"`
	Currency             string     `db:"currency" json:"currency"`
	SeatLimit            int        `db:"seat_limit" json:"seat_limit"`
	AllowSeatOverage     bool       `db:"allow_seat_overage" json:"allow_seat_overage"`
	CNPJTaxRatePct       float64    `db:"cnpj_tax_rate_pct" json:"cnpj_tax_rate_pct"`
	ProdutoraTaxRatePct  float64    `db:"produtora_tax_rate_pct" json:"produtora_tax_rate_pct"`
	MasterOwnerProfileID *uuid.UUID `db:"master_owner_profile_id" json:"master_owner_profile_id"`
	IsActive             bool       `db:"is_active" json:"is_active"`
	CreatedAt            time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time  `db:"updated_at" json:"updated_at"`
}

// Member represents a profile belonging to an organization with an effective role.
type Member struct {
	ID            uuid.UUID `db:"id" json:"id"`
	OrgID         uuid.UUID `db:"org_id" json:"org_id"`
	Email         string    `db:"email" json:"email"`
	PasswordHash  string    `db:"password_hash" json:"-"`
	FullName      string    `db:"full_name" json:"full_name"`
	EffectiveRole Role      `db:"effective_role" json:"effective_role"`
	IsMasterOwner bool      `db:"is_master_owner" json:"is_master_owner"`
	IsActive      bool      `db:"is_active" json:"is_active"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// Invite represents a pending grant of a role to an email address.
// The raw token is emailed to the invitee; only its hash is stored.
type Invite struct {
	ID         uuid.UUID    `db:"id" json:"id"`
	OrgID      uuid.UUID    `db:"org_id" json:"org_id"`
	Email      string       `db:"email" json:"email"`
	Role       Role         `db:"role" json:"role"`
	Status     InviteStatus `db:"status" json:"status"`
	TokenHash  string       `db:"token_hash" json:"-"`
	InvitedBy  uuid.UUID    `db:"invited_by" json:"invited_by"`
	ExpiresAt  time.Time    `db:"expires_at" json:"expires_at"`
	AcceptedAt *time.Time   `db:"accepted_at" json:"accepted_at,omitempty"`
	CreatedAt  time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time    `db:"updated_at" json:"updated_at"`
}

// IsExpired reports whether the invite's expiry has passed.
func (i *Invite) IsExpired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// Client represents a customer of the organization.
type Client struct {
	ID        uuid.UUID `db:"id" json:"id"`
	OrgID     uuid.UUID `db:"org_id" json:"org_id"`
	Name      string    `db:"name" json:"name"`
	Company   string    `db:"company" json:"company"`
	Email     string    `db:"email" json:"email"`
	Phone     string    `db:"phone" json:"phone"`
	Notes     string    `db:"notes" json:"notes"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// CatalogService is an organization-level catalog entry with a fixed rate.
// Proposals reference catalog services by id; they never own them.
type CatalogService struct {
	ID          uuid.UUID `db:"id" json:"id"`
	OrgID       uuid.UUID `db:"org_id" json:"org_id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	RateCents   Cents     `db:"rate_cents" json:"rate_cents"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// LineItem is an ad-hoc charge or credit on a proposal. Value is signed;
// credits are negative. Line items have no identity beyond array position.
type LineItem struct {
	Label      string `json:"label"`
	ValueCents Cents  `json:"value_cents"`
}

// LineItems is a jsonb-persisted list of line items.
type LineItems []LineItem

// Value implements driver.Valuer for jsonb storage.
func (l LineItems) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("marshaling line items: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner for jsonb storage.
func (l *LineItems) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	case nil:
		*l = nil
		return nil
	default:
		return fmt.Errorf("unsupported line items source type %T", src)
	}
}

// UUIDList is a jsonb-persisted list of referenced ids.
type UUIDList []uuid.UUID

// Value implements driver.Valuer for jsonb storage.
func (u UUIDList) Value() (driver.Value, error) {
	if u == nil {
		return "[]", nil
	}
	b, err := json.Marshal(u)
	if err != nil {
		return nil, fmt.Errorf("marshaling uuid list: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner for jsonb storage.
func (u *UUIDList) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, u)
	case string:
		return json.Unmarshal([]byte(v), u)
	case nil:
		*u = nil
		return nil
	default:
		return fmt.Errorf("unsupported uuid list source type %T", src)
	}
}

// Proposal is an offer made to a client. Totals are server-computed from
// the selected services, line items, discount and the organization's tax
// rates on every financial write. Financial fields are locked once the
// proposal leaves the editable states.
type Proposal struct {
	ID            uuid.UUID      `db:"id" json:"id"`
	OrgID         uuid.UUID      `db:"org_id" json:"org_id"`
	ClientID      uuid.UUID      `db:"client_id" json:"client_id"`
	Title         string         `db:"title" json:"title"`
	Currency      string         `db:"currency" json:"currency"`
	Status        ProposalStatus `db:"status" json:"status"`
	ServiceIDs    UUIDList       `db:"service_ids" json:"service_ids"`
	LineItems     LineItems      `db:"line_items" json:"line_items"`
	DiscountCents Cents          `db:"discount_cents" json:"discount_cents"`
	SubtotalCents Cents          `db:"subtotal_cents" json:"subtotal_cents"`
	TaxCents      Cents          `db:"tax_cents" json:"tax_cents"`
	TotalCents    Cents          `db:"total_cents" json:"total_cents"`
	ProjectID     *uuid.UUID     `db:"project_id" json:"project_id,omitempty"`
	SentAt        *time.Time     `db:"sent_at" json:"sent_at,omitempty"`
	ValidUntil    *time.Time     `db:"valid_until" json:"valid_until,omitempty"`
	DecidedAt     *time.Time     `db:"decided_at" json:"decided_at,omitempty"`
	CreatedBy     uuid.UUID      `db:"created_by" json:"created_by"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}

// IsExpired reports whether a sent proposal's validity window has
// passed. Proposals without a ValidUntil never expire.
func (p *Proposal) IsExpired(now time.Time) bool {
	return p.ValidUntil != nil && now.After(*p.ValidUntil)
}

// Project is spawned when a proposal is approved, or created standalone.
type Project struct {
	ID          uuid.UUID     `db:"id" json:"id"`
	OrgID       uuid.UUID     `db:"org_id" json:"org_id"`
	ClientID    uuid.UUID     `db:"client_id" json:"client_id"`
	ProposalID  *uuid.UUID    `db:"proposal_id" json:"proposal_id,omitempty"`
	Name        string        `db:"name" json:"name"`
	Status      ProjectStatus `db:"status" json:"status"`
	BudgetCents Cents         `db:"budget_cents" json:"budget_cents"`
	StartDate   *time.Time    `db:"start_date" json:"start_date,omitempty"`
	EndDate     *time.Time    `db:"end_date" json:"end_date,omitempty"`
	CreatedBy   uuid.UUID     `db:"created_by" json:"created_by"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at" json:"updated_at"`
}

// ShootingDay is a scheduled production day. Call and wrap times are
// stored and transmitted as HH:MM:SS strings.
type ShootingDay struct {
	ID        uuid.UUID `db:"id" json:"id"`
	OrgID     uuid.UUID `db:"org_id" json:"org_id"`
	ProjectID uuid.UUID `db:"project_id" json:"project_id"`
	Date      time.Time `db:"date" json:"date"`
	CallTime  string    `db:"call_time" json:"call_time"`
	WrapTime  string    `db:"wrap_time" json:"wrap_time"`
	Location  string    `db:"location" json:"location"`
	Notes     string    `db:"notes" json:"notes"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// CallSheet is the crew-facing schedule document for a shooting day.
type CallSheet struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	OrgID         uuid.UUID       `db:"org_id" json:"org_id"`
	ProjectID     uuid.UUID       `db:"project_id" json:"project_id"`
	ShootingDayID uuid.UUID       `db:"shooting_day_id" json:"shooting_day_id"`
	Title         string          `db:"title" json:"title"`
	Status        CallSheetStatus `db:"status" json:"status"`
	CrewCallTime  string          `db:"crew_call_time" json:"crew_call_time"`
	Notes         string          `db:"notes" json:"notes"`
	CreatedBy     uuid.UUID       `db:"created_by" json:"created_by"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
}

// Supplier is a category-tagged external party. ProfileID links the
// supplier to a platform member once an invite has been accepted.
type Supplier struct {
	ID        uuid.UUID        `db:"id" json:"id"`
	OrgID     uuid.UUID        `db:"org_id" json:"org_id"`
	Name      string           `db:"name" json:"name"`
	Category  SupplierCategory `db:"category" json:"category"`
	Email     string           `db:"email" json:"email"`
	Phone     string           `db:"phone" json:"phone"`
	ProfileID *uuid.UUID       `db:"profile_id" json:"profile_id,omitempty"`
	Notes     string           `db:"notes" json:"notes"`
	CreatedAt time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt time.Time        `db:"updated_at" json:"updated_at"`
}

// BankAccount holds a running balance derived from transactions.
// BalanceCents is server-computed and never written directly by clients.
type BankAccount struct {
	ID           uuid.UUID `db:"id" json:"id"`
	OrgID        uuid.UUID `db:"org_id" json:"org_id"`
	Name         string    `db:"name" json:"name"`
	Currency     string    `db:"currency" json:"currency"`
	BalanceCents Cents     `db:"balance_cents" json:"balance_cents"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Transaction is a signed movement on a bank account. Positive amounts
// are inflows, negative are outflows.
type Transaction struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	OrgID         uuid.UUID  `db:"org_id" json:"org_id"`
	BankAccountID uuid.UUID  `db:"bank_account_id" json:"bank_account_id"`
	SupplierID    *uuid.UUID `db:"supplier_id" json:"supplier_id,omitempty"`
	ProjectID     *uuid.UUID `db:"project_id" json:"project_id,omitempty"`
	Description   string     `db:"description" json:"description"`
	AmountCents   Cents      `db:"amount_cents" json:"amount_cents"`
	OccurredAt    time.Time  `db:"occurred_at" json:"occurred_at"`
	CreatedBy     uuid.UUID  `db:"created_by" json:"created_by"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}

// Notification is an in-app message for a member.
type Notification struct {
	ID        uuid.UUID        `db:"id" json:"id"`
	OrgID     uuid.UUID        `db:"org_id" json:"org_id"`
	MemberID  uuid.UUID        `db:"member_id" json:"member_id"`
	Kind      NotificationKind `db:"kind" json:"kind"`
	Message   string           `db:"message" json:"message"`
	ReadAt    *time.Time       `db:"read_at" json:"read_at,omitempty"`
	CreatedAt time.Time        `db:"created_at" json:"created_at"`
}

// FileMeta stores metadata about an uploaded call sheet attachment.
type FileMeta struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	OrgID        uuid.UUID  `db:"org_id" json:"org_id"`
	CallSheetID  *uuid.UUID `db:"call_sheet_id" json:"call_sheet_id,omitempty"`
	UploadedBy   uuid.UUID  `db:"uploaded_by" json:"uploaded_by"`
	FileName     string     `db:"file_name" json:"file_name"`
	OriginalName string     `db:"original_name" json:"original_name"`
	FileType     FileType   `db:"file_type" json:"file_type"`
	FileSize     int64      `db:"file_size" json:"file_size"`
	S3Bucket     string     `db:"s3_bucket" json:"s3_bucket"`
	S3Key        string     `db:"s3_key" json:"s3_key"`
	ContentType  string     `db:"content_type" json:"content_type"`
	Status       FileStatus `db:"status" json:"status"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}
