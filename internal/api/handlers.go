package api

// Handlers bundles the HTTP handlers with their injected dependencies.
type Handlers struct {
	deps *Dependencies
}

func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		deps: deps,
	}
}
