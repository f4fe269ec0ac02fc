package blockchain

// Config holds the sealing parameters of a Blockchain.
type Config struct {
	// Difficulty is the number of leading zero hex digits of a sealed
	// block hash.
	Difficulty Difficulty `toml:"difficulty"`
	// MaxAttempts bounds the proof-of-work search; 0 is unbounded.
	MaxAttempts uint64 `toml:"max_attempts"`
}

// DefaultConfig returns four leading zeros and no attempt bound.
func DefaultConfig() Config {
	return Config{Difficulty: DefaultDifficulty}
}
