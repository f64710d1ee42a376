package model

import (
	"context"
	"net"
)

// SecurityLayer opens the listener a transport server accepts connections on.
type SecurityLayer interface {
	Listen(protocol, addr string) (net.Listener, error)
}

// Server is a transport server with an explicit lifecycle. Both the gRPC and
// the HTTP servers implement it.
type Server interface {
	Start(securityLayer SecurityLayer) error
	Stop(ctx context.Context) error
	Address() string
}
