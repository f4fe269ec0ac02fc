package blockchain

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
)

// The canonical encodings are explicit field concatenations. All integers
// are little endian and strings carry a uint32 length prefix.

func writeUint32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func writeUint64(buf *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}

func writeString(buf *bytes.Buffer, s string) {
	writeUint32(buf, uint32(len(s)))
	buf.WriteString(s)
}

// canonical is version ∥ sender ∥ recipient ∥ amount ∥ timestamp ∥ signature.
func (tx *Transaction) canonical() []byte {
	var buf bytes.Buffer
	writeUint32(&buf, EncodingVersion)
	writeString(&buf, tx.Sender)
	writeString(&buf, tx.Recipient)
	writeUint64(&buf, tx.Amount)
	writeUint64(&buf, uint64(tx.Timestamp.UnixNano()))
	writeString(&buf, tx.Signature)
	return buf.Bytes()
}

// headerPrefix encodes everything a block hash covers that precedes the
// nonce: version ∥ timestamp ∥ tx count ∥ merkle root. headerSuffix is the
// previous hash that follows it.
func headerPrefix(timestamp int64, txCount int, root Hash) []byte {
	var buf bytes.Buffer
	writeUint32(&buf, EncodingVersion)
	writeUint64(&buf, uint64(timestamp))
	writeUint32(&buf, uint32(txCount))
	buf.Write(root[:])
	return buf.Bytes()
}

func headerSuffix(previousHash string) []byte {
	var buf bytes.Buffer
	writeString(&buf, previousHash)
	return buf.Bytes()
}

// blockHash is sha256(prefix ∥ nonce ∥ suffix).
func blockHash(prefix []byte, nonce uint64, suffix []byte) Hash {
	var n [8]byte
	binary.LittleEndian.PutUint64(n[:], nonce)
	h := sha256.New()
	h.Write(prefix)
	h.Write(n[:])
	h.Write(suffix)
	var out Hash
	copy(out[:], h.Sum(nil))
	return out
}

func hashBytes(data []byte) Hash {
	return sha256.Sum256(data)
}
