package server

// Server bundles the entity-specific HTTP servers.
type Server struct {
	DealServer
	OrderServer
}

func NewServer(
	dealServer DealServer,
	orderServer OrderServer,
) Server {
	return Server{
		DealServer:  dealServer,
		OrderServer: orderServer,
	}
}
