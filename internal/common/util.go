package common

// WipeByteArray zeroes b in place. Used for passwords read from the terminal
// once they have been copied into the form.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
