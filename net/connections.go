package net

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"sync"

	"github.com/autonity/autonity/ethclient"
	"github.com/autonity/autonity/rpc"

	"logsync/interfaces"
)

var ErrNoConnection = errors.New("no rpc connection available")

type Connection struct {
	Client *ethclient.Client
	URL    string
	rpc    *rpc.Client
}

// ConnectionPool keeps one client per reachable endpoint and hands out a
// random one per call, so a dead endpoint only affects part of the traffic.
type ConnectionPool struct {
	urls        []string
	connections []*Connection
	sync.RWMutex
}

func (cp *ConnectionPool) newConnection(ctx context.Context, url string) *Connection {
	rpcClient, err := rpc.DialContext(ctx, url)
	if err != nil {
		slog.Error("dial error", "err", err, "url", url)
		return nil
	}

	cp.Lock()
	defer cp.Unlock()
	con := &Connection{Client: ethclient.NewClient(rpcClient), URL: url, rpc: rpcClient}
	cp.connections = append(cp.connections, con)
	return con
}

func NewConnectionPool(ctx context.Context, urls []string) *ConnectionPool {
	cp := &ConnectionPool{
		urls:        urls,
		connections: make([]*Connection, 0, len(urls)),
	}
	for _, url := range urls {
		cp.newConnection(ctx, url)
	}
	return cp
}

func (cp *ConnectionPool) Get() *Connection {
	cp.RLock()
	defer cp.RUnlock()

	if len(cp.connections) == 0 {
		return nil
	}
	return cp.connections[rand.Intn(len(cp.connections))]
}

// Client returns a client from the pool or ErrNoConnection.
func (cp *ConnectionPool) Client() (interfaces.EthClient, error) {
	con := cp.Get()
	if con == nil {
		return nil, ErrNoConnection
	}
	return con.Client, nil
}

func (cp *ConnectionPool) Close() {
	cp.Lock()
	defer cp.Unlock()
	for _, c := range cp.connections {
		c.rpc.Close()
	}
	cp.connections = nil
}
