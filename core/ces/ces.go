// Package ces defines the small value types shared by cause-effect
// structure instances: a typed name wrapper used everywhere a Rex refers
// to a named thing by identity rather than by a bare string.
package ces

// Name is a typed instance or node name, so that name comparisons and
// context lookups go through one conversion point instead of passing raw
// strings around.
type Name string

// ToName converts any string-like value to a Name.
func ToName[S ~string](s S) Name {
	return Name(string(s))
}

func (n Name) String() string {
	return string(n)
}

// Instance is an invocation of a named CES component with its invocation
// arguments, e.g. g!(h, i) or d().
type Instance struct {
	Name Name
	Args []string
}

// NewInstance builds an argument-less instance reference.
func NewInstance(name Name) Instance {
	return Instance{Name: name}
}

// WithArgs returns a copy of the instance with args appended.
func (i Instance) WithArgs(args ...string) Instance {
	i.Args = append(append([]string(nil), i.Args...), args...)
	return i
}
