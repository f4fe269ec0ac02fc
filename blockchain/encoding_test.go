package blockchain

import (
	"crypto/sha256"
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTransactionCanonical(t *testing.T) {
	tx := Transaction{
		Sender:    "A",
		Recipient: "B",
		Amount:    10,
		Timestamp: time.Unix(0, 5),
	}
	expected := []byte{
		0x01, 0x00, 0x00, 0x00, // version
		0x01, 0x00, 0x00, 0x00, 'A',
		0x01, 0x00, 0x00, 0x00, 'B',
		0x0a, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x05, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, // empty signature
	}
	require.Equal(t, expected, tx.canonical())

	// Length prefixes keep field boundaries apart.
	other := tx
	other.Sender, other.Recipient = "AB", ""
	require.NotEqual(t, tx.Hash(), other.Hash())
}

func TestBlockHashLayout(t *testing.T) {
	var root Hash
	root[0] = 0xff
	prefix := headerPrefix(7, 2, root)
	suffix := headerSuffix("prev")

	var data []byte
	data = append(data, 0x01, 0x00, 0x00, 0x00)
	data = append(data, 0x07, 0, 0, 0, 0, 0, 0, 0)
	data = append(data, 0x02, 0, 0, 0)
	data = append(data, root[:]...)
	nonce := make([]byte, 8)
	binary.LittleEndian.PutUint64(nonce, 42)
	data = append(data, nonce...)
	data = append(data, 0x04, 0, 0, 0, 'p', 'r', 'e', 'v')

	require.Equal(t, Hash(sha256.Sum256(data)), blockHash(prefix, 42, suffix))
}
