package session

import (
	"net"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// Options are the connection parameters for a standalone Redis server.
type Options struct {
	Host     string
	Port     int
	DB       int
	Password string
}

// Addr returns host:port.
func (o Options) Addr() string {
	return net.JoinHostPort(o.Host, strconv.Itoa(o.Port))
}

// NewClient dials nothing; go-redis connects lazily on first command.
func NewClient(o Options) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     o.Addr(),
		DB:       o.DB,
		Password: o.Password,
	})
}
