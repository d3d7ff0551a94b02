package paramid

// Address identifies one scalar parameter of one component in a model.
type Address struct {
	// Component is the display name, e.g. "powerlaw_1".
	Component string
	// Param is the declared parameter name, e.g. "alpha".
	Param string
}

// New returns the address of param on the component with the given display
// name.
func New(component, param string) Address {
	return Address{Component: component, Param: param}
}

// String serializes the Address into its canonical `component.param` form.
func (a Address) String() string {
	if a.Component == "" && a.Param == "" {
		return ""
	}
	return a.Component + "." + a.Param
}

// IsZero reports whether a is the zero Address.
func (a Address) IsZero() bool {
	return a == Address{}
}
