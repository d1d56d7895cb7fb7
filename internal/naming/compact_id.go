package naming

import (
	"crypto/rand"
	"fmt"
	"strconv"
	"time"
)

// NewCompactID returns a time-ordered compact ID (12 chars, base36) for
// resource naming. Format: 7-char timestamp (base36) + 5-char random
// (base36). Lowercase characters only; second-level ordering holds until
// year ~4454.
func NewCompactID() (string, error) {
	timestamp := time.Now().UTC().Unix()

	// 36^7 = 78,364,164,096 is the first value that no longer fits 7 chars.
	if timestamp < 0 {
		return "", fmt.Errorf("negative timestamp not supported")
	}
	if timestamp >= 78364164096 {
		return "", fmt.Errorf("timestamp too large for 7-char base36 encoding")
	}

	ts := fmt.Sprintf("%07s", strconv.FormatInt(timestamp, 36))

	// 3 random bytes carry enough entropy for 5 base36 chars.
	buf := make([]byte, 3)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate random bytes: %w", err)
	}
	var n uint64
	for _, b := range buf {
		n = n*256 + uint64(b)
	}
	n %= 36 * 36 * 36 * 36 * 36

	return ts + fmt.Sprintf("%05s", strconv.FormatUint(n, 36)), nil
}
