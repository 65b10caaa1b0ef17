package database

import (
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// ConnectNATS dials the NATS server used to hand contact messages to the operator.
func ConnectNATS(url, clientName string, timeout time.Duration) (*nats.Conn, error) {
	if url == "" {
		return nil, fmt.Errorf("nats url must not be empty")
	}

	opts := []nats.Option{nats.Name(clientName)}
	if timeout > 0 {
		opts = append(opts, nats.Timeout(timeout))
	}

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to nats: %w", err)
	}

	return conn, nil
}
