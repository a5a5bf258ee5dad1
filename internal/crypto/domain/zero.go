package domain

// Zero overwrites b in place so key bytes do not linger on the heap after
// the material is no longer needed. Safe on nil slices.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
