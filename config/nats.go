package config

import (
	"github.com/nats-io/nats.go"
)

var Nats *nats.Conn

func ConnectNats() error {
	options := []nats.Option{nats.Name("rebate")}
	if len(Env.Nats.User) > 0 {
		options = append(options, nats.UserInfo(Env.Nats.User, Env.Nats.Pass))
	}

	n, err := nats.Connect(Env.Nats.URL, options...)
	if err != nil {
		return err
	}

	Nats = n

	return nil
}
