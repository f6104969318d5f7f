package logicsim

// A Bit is a single logic level. Only the values 0 and 1 are meaningful.
type Bit uint8

// Logic levels.
const (
	Low  Bit = 0
	High Bit = 1
)

// equalBits reports whether two output vectors are identical.
func equalBits(a, b []Bit) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
