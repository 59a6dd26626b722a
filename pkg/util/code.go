package util

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// NumericCode returns a uniformly random decimal code with exactly the
// given number of digits and no leading zero, e.g. 1000..9999 for 4.
// Codes are meant to be typed in by humans so they come from crypto/rand,
// not the fast string generator above
func NumericCode(digits int) (string, error) {
	if digits < 1 || digits > 18 {
		return "", fmt.Errorf("invalid code length %d", digits)
	}

	low := int64(1)
	for i := 1; i < digits; i++ {
		low *= 10
	}

	// Range [low, low*10), so the first digit is never zero
	n, err := rand.Int(rand.Reader, big.NewInt(low*9))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%d", n.Int64()+low), nil
}
