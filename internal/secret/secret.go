package secret

// Mask is the placeholder emitted instead of the underlying value
const Mask = "******"

// Redacted represents a credential value that must never appear in log or format output.
// Every common formatting path (fmt verbs, JSON, text marshalling) yields the mask;
// the underlying value is only accessible through an explicit Reveal call.
type Redacted string

// String implements fmt.Stringer and returns the mask
func (secret Redacted) String() string {
	return Mask
}

// GoString implements fmt.GoStringer so that '%#v' does not leak the value either
func (secret Redacted) GoString() string {
	return Mask
}

// MarshalText implements encoding.TextMarshaler and returns the mask
func (secret Redacted) MarshalText() ([]byte, error) {
	return []byte(Mask), nil
}

// IsEmpty returns whether no value is set
func (secret Redacted) IsEmpty() bool {
	return len(secret) == 0
}

// Reveal returns the underlying value
func (secret Redacted) Reveal() string {
	return string(secret)
}
