package store

import "math/rand"

// randomCode draws a 6-digit test code. Leading zeros are allowed; the
// code is an identifier, not a number.
func randomCode(rng *rand.Rand) string {
	buf := make([]byte, 6)
	for i := range buf {
		buf[i] = byte('0' + rng.Intn(10))
	}
	return string(buf)
}
