package middleware

// AccessPolicy is an explicit registry of public routes. Routes are keyed by
// "METHOD /route/pattern" using Echo's registered path (e.g. "/users/:id").
// Anything not registered is protected: the gate fails closed.
type AccessPolicy struct {
	public map[string]struct{}
}

func NewAccessPolicy() *AccessPolicy {
	return &AccessPolicy{public: make(map[string]struct{})}
}

// Public marks a route as exempt from authentication.
func (p *AccessPolicy) Public(method, path string) *AccessPolicy {
	p.public[method+" "+path] = struct{}{}
	return p
}

// IsPublic reports whether the route was registered as public.
func (p *AccessPolicy) IsPublic(method, path string) bool {
	_, ok := p.public[method+" "+path]
	return ok
}
