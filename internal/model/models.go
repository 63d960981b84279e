// Package model defines the data models for the auction storefront.
package model

import "time"

// Role identifies the privilege level of a user account.
type Role string

// User roles.
const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User represents a storefront account as returned from read APIs.
// The password hash is intentionally absent; see DatabaseUser.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
	Coins int64  `json:"coins"`
}

// DatabaseUser is the persisted user record, password hash included.
// Only the repository layer handles this type; everything above it
// works with the sanitized User.
type DatabaseUser struct {
	User
	Password string `json:"password"`
}

// Sanitized returns the user without the password hash.
func (u *DatabaseUser) Sanitized() User {
	return u.User
}

// Product represents an auction item. The auction is live while
// now < EndTime; LowestBid and LowestBidder are display values updated
// by bid placement, not an arbitrated auction outcome.
type Product struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Image        string    `json:"image"`
	EndTime      time.Time `json:"endTime"`
	LowestBid    float64   `json:"lowestBid"`
	LowestBidder string    `json:"lowestBidder"`
	AIHint       string    `json:"aiHint"`
}

// Ended reports whether the auction has ended at the given time.
func (p *Product) Ended(now time.Time) bool {
	return !now.Before(p.EndTime)
}

// CoinPackage is a purchasable bundle of coins. Only active packages are
// offered to end users; admins see all of them.
type CoinPackage struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Coins         int64    `json:"coins"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"originalPrice,omitempty"`
	Bonus         *int64   `json:"bonus,omitempty"`
	Popular       bool     `json:"popular,omitempty"`
	Description   string   `json:"description,omitempty"`
	IsActive      bool     `json:"isActive"`
}

// TransactionStatus describes the state of a coin transaction.
type TransactionStatus string

// Transaction states. The only transitions are pending -> completed and
// pending -> failed.
const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusFailed    TransactionStatus = "failed"
	// StatusCancelled is kept for compatibility with persisted data but is
	// intentionally unreachable: no operation assigns it.
	StatusCancelled TransactionStatus = "cancelled"
)

// PaymentMethodBid marks self-approving bid debit records. It is a
// sentinel, not a real payment rail.
const PaymentMethodBid = "bid_placement"

// CoinTransaction is the central ledger entity: either a coin-package
// purchase awaiting admin verification or a bid-placement debit. Amount
// and Coins are signed; both are negative on bid debits.
type CoinTransaction struct {
	ID                 string            `json:"id"`
	UserID             int64             `json:"userId"`
	PackageID          int64             `json:"packageId"`
	Amount             float64           `json:"amount"`
	Coins              int64             `json:"coins"`
	PaymentMethod      string            `json:"paymentMethod"`
	PaymentReference   string            `json:"paymentReference"`
	VodafoneNumber     string            `json:"vodafoneNumber,omitempty"`
	PaymentScreenshot  string            `json:"paymentScreenshot,omitempty"`
	ScreenshotFileName string            `json:"screenshotFileName,omitempty"`
	Status             TransactionStatus `json:"status"`
	CreatedAt          time.Time         `json:"createdAt"`
	CompletedAt        *time.Time        `json:"completedAt,omitempty"`
	AdminNotes         string            `json:"adminNotes,omitempty"`

	// Bid tracking fields, set only on bid_placement records.
	AuctionID int64   `json:"auctionId,omitempty"`
	BidAmount float64 `json:"bidAmount,omitempty"`
}

// IsBidDebit reports whether the transaction records a bid placement.
func (t *CoinTransaction) IsBidDebit() bool {
	return t.PaymentMethod == PaymentMethodBid
}

// PaymentMethod is a configuration record consumed read-only by the
// payment submission flow.
type PaymentMethod struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Type           string   `json:"type"`
	IsActive       bool     `json:"isActive"`
	Instructions   []string `json:"instructions"`
	AccountNumbers []string `json:"accountNumbers,omitempty"`
}

// StoreSettings holds storefront-wide toggles.
type StoreSettings struct {
	IsStoreEnabled     bool   `json:"isStoreEnabled"`
	MaintenanceMessage string `json:"maintenanceMessage,omitempty"`
	SupportContact     string `json:"supportContact"`
}

// Settings is the singleton settings record.
type Settings struct {
	VodafoneCashNumbers []string      `json:"vodafoneCashNumbers"`
	StoreSettings       StoreSettings `json:"storeSettings"`
}
