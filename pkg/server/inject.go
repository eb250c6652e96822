package server

// Injectable is implemented by parameter types a handler can request beyond
// its view state, an auth session for example. Each type declares which
// pipeline stage supplies it, replacing matching on type names.
type Injectable interface {
	// SuppliedBy names the stage that hydrates this value.
	SuppliedBy() StageName

	// Hydrate fills the value from the request. Returning an error aborts
	// the pipeline; for the authorize stage this is how requests are
	// rejected.
	Hydrate(ctx *Ctx) error
}

// inject records a hydrated injectable on the context.
func (c *Ctx) inject(i Injectable) {
	c.injected = append(c.injected, i)
}

// Injected returns the hydrated injectable of type I for this request.
func Injected[I Injectable](ctx *Ctx) (I, bool) {
	for _, candidate := range ctx.injected {
		if v, ok := candidate.(I); ok {
			return v, true
		}
	}
	var zero I
	return zero, false
}
