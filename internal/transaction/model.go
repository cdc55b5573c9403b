package transaction

import (
	"errors"
	"strings"
	"time"
)

var (
	// ErrInvalidStatus indicates a status string that does not name a known
	// transaction status.
	ErrInvalidStatus = errors.New("invalid transaction status")

	// ErrNotFound indicates no transaction exists for the given id.
	ErrNotFound = errors.New("transaction not found")

	// ErrWalletNotFound indicates the wallet scoping a query or movement does
	// not exist.
	ErrWalletNotFound = errors.New("wallet not found")
)

// Status describes the lifecycle state of a transaction record.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusCompleted  Status = "COMPLETED"
	StatusFailed     Status = "FAILED"
	StatusCancelled  Status = "CANCELLED"
	StatusRefunded   Status = "REFUNDED"
	StatusProcessing Status = "PROCESSING"
)

// ParseStatus maps a raw string (case-insensitive) onto a Status.
func ParseStatus(raw string) (Status, error) {
	switch Status(strings.ToUpper(strings.TrimSpace(raw))) {
	case StatusPending:
		return StatusPending, nil
	case StatusCompleted:
		return StatusCompleted, nil
	case StatusFailed:
		return StatusFailed, nil
	case StatusCancelled:
		return StatusCancelled, nil
	case StatusRefunded:
		return StatusRefunded, nil
	case StatusProcessing:
		return StatusProcessing, nil
	default:
		return "", ErrInvalidStatus
	}
}

// PaymentType classifies what a transaction paid for.
type PaymentType string

const (
	TypeSchoolOrder      PaymentType = "SCHOOL_ORDER"
	TypePlatformDesigner PaymentType = "PLATFORM_DESIGNER"
	TypeDeposit          PaymentType = "DEPOSIT"
	TypeWithdraw         PaymentType = "WITHDRAW"
	TypeTransfer         PaymentType = "TRANSFER"
)

// SystemParty labels the counterparty of deposits and withdrawals, which have
// no account on the other side.
const SystemParty = "System"

// Transaction is an immutable record of a balance-affecting event. Only the
// status and gateway fields may change after creation.
type Transaction struct {
	ID             string
	SenderID       *string
	ReceiverID     *string
	SenderName     string
	ReceiverName   string
	Amount         int64
	PaymentType    PaymentType
	Note           string
	CreatedAt      time.Time
	Status         Status
	GatewayCode    *string
	GatewayMessage *string
	WalletID       string
}
