package recon

import (
	"time"

	"github.com/LavaJover/shvark-recon-service/internal/domain"
)

// PaymentWindow is the fixed time a transaction may stay unpaid before it is
// flagged as expired. Expiry is advisory: nothing transitions automatically.
const PaymentWindow = 48 * time.Hour

func Deadline(tx *domain.Transaction) time.Time {
	return tx.CreatedAt.Add(PaymentWindow)
}

func IsExpired(tx *domain.Transaction, now time.Time) bool {
	return now.After(Deadline(tx))
}

// Remaining returns the time left until the payment deadline. The second
// return value is false once the window has elapsed.
func Remaining(tx *domain.Transaction, now time.Time) (time.Duration, bool) {
	left := Deadline(tx).Sub(now)
	if left <= 0 {
		return 0, false
	}
	return left, true
}
