package blockchain

import (
	"fmt"
	"time"
)

// Transaction moves Amount from Sender to Recipient. Signature stays empty
// until the transaction is added to a Blockchain.
type Transaction struct {
	Sender    string
	Recipient string
	Amount    uint64
	Timestamp time.Time
	Signature string
}

// NewTransaction returns an unsigned transaction stamped with the current
// time.
func NewTransaction(sender, recipient string, amount uint64) *Transaction {
	return &Transaction{
		Sender:    sender,
		Recipient: recipient,
		Amount:    amount,
		Timestamp: time.Now(),
	}
}

// Message is the plaintext that gets encrypted and signed when the
// transaction enters the pending pool.
func (tx *Transaction) Message() string {
	return fmt.Sprintf("%s->%s:%d", tx.Sender, tx.Recipient, tx.Amount)
}

// Signed reports whether a signature has been assigned.
func (tx *Transaction) Signed() bool {
	return tx.Signature != ""
}

// Hash returns the leaf hash of the transaction.
func (tx *Transaction) Hash() Hash {
	return hashBytes(tx.canonical())
}

func (tx *Transaction) String() string {
	return fmt.Sprintf("%s (%s) sig=%q", tx.Message(), tx.Timestamp.Format(TimeFormat), tx.Signature)
}
