package domain

// AuthorKey identifies an author group. It is either Known(name) or Unknown.
//
// The zero value is Unknown. Two keys are equal when both are Unknown, or
// both are Known with byte-identical names, so AuthorKey is comparable with ==
// and usable as a map key.
type AuthorKey struct {
	name  string
	known bool
}

// Known returns the key for a present author value. The empty string is a
// present value and is distinct from Unknown.
func Known(name string) AuthorKey {
	return AuthorKey{name: name, known: true}
}

// Unknown returns the key shared by all records without an author.
func Unknown() AuthorKey {
	return AuthorKey{}
}

// AuthorKeyOf builds a key from an optional author field.
func AuthorKeyOf(author *string) AuthorKey {
	if author == nil {
		return Unknown()
	}
	return Known(*author)
}

// IsKnown reports whether the key carries an author value.
func (k AuthorKey) IsKnown() bool {
	return k.known
}

// String returns the author name, or "" for Unknown.
func (k AuthorKey) String() string {
	return k.name
}

// Ptr converts the key back to an optional author field.
func (k AuthorKey) Ptr() *string {
	if !k.known {
		return nil
	}
	name := k.name
	return &name
}

// MarshalText encodes Unknown as the empty string. API views that must
// tell the two apart use Ptr, which yields null for Unknown.
func (k AuthorKey) MarshalText() ([]byte, error) {
	return []byte(k.name), nil
}
