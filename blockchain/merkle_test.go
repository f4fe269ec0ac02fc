package blockchain

import (
	"crypto/sha256"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testTime = time.Unix(1597680000, 0)

func testTransactions(n int) []Transaction {
	names := []string{"Alice", "Bob", "Charlie", "Dave", "Eve"}
	txs := make([]Transaction, n)
	for i := range txs {
		txs[i] = Transaction{
			Sender:    names[i%len(names)],
			Recipient: names[(i+1)%len(names)],
			Amount:    uint64(10 + i),
			Timestamp: testTime.Add(time.Duration(i) * time.Second),
			Signature: "1 2 3",
		}
	}
	return txs
}

func TestMerkleEmpty(t *testing.T) {
	tree := NewMerkleTree(nil)
	_, ok := tree.Root()
	require.False(t, ok)
	require.Equal(t, "", tree.String())
}

func TestMerkleSingle(t *testing.T) {
	txs := testTransactions(1)
	root, ok := NewMerkleTree(txs).Root()
	require.True(t, ok)
	require.Equal(t, Hash(sha256.Sum256(txs[0].canonical())), root)
}

func TestMerkleTwo(t *testing.T) {
	txs := testTransactions(2)
	h0 := sha256.Sum256(txs[0].canonical())
	h1 := sha256.Sum256(txs[1].canonical())
	expected := sha256.Sum256(append(h0[:], h1[:]...))

	root, ok := NewMerkleTree(txs).Root()
	require.True(t, ok)
	require.Equal(t, Hash(expected), root)
}

func TestMerkleOddDuplicatesLast(t *testing.T) {
	txs := testTransactions(3)
	h := make([]Hash, 3)
	for i := range txs {
		h[i] = txs[i].Hash()
	}
	expected := hashPair(hashPair(h[0], h[1]), hashPair(h[2], h[2]))

	root, _ := NewMerkleTree(txs).Root()
	require.Equal(t, expected, root)
}

func TestMerkleDeterminism(t *testing.T) {
	txs := testTransactions(5)
	first := NewMerkleTree(txs).String()
	require.Len(t, first, 2*HashSize)
	for i := 0; i < 3; i++ {
		require.Equal(t, first, NewMerkleTree(txs).String())
	}

	for i := range txs {
		changed := testTransactions(5)
		changed[i].Amount++
		require.NotEqual(t, first, NewMerkleTree(changed).String(), "change at %d", i)
	}

	swapped := testTransactions(5)
	swapped[0], swapped[1] = swapped[1], swapped[0]
	require.NotEqual(t, first, NewMerkleTree(swapped).String())
}
