package publisher

import "time"

// InvalidationEvent tells other processes that a transaction-affecting change
// happened and their reconciled views are stale.
type InvalidationEvent struct {
	TxID    string    `json:"tx_id,omitempty"`
	Command string    `json:"command,omitempty"`
	Origin  string    `json:"origin"`
	At      time.Time `json:"at"`
}
