package daemons

import (
	"encoding/json"
	"sync"

	"github.com/nats-io/nats.go"
	"github.com/volatiletech/null"

	"github.com/zsmartex/rebate/config"
)

const UserRegisteredSubject = "rebate.user.registered"

type registeredUser struct {
	UID        string      `json:"uid"`
	Email      string      `json:"email"`
	InviterUID null.String `json:"inviter_uid"`
}

// StatsInvalidator is satisfied by referral_service.ReferralService.
type StatsInvalidator interface {
	InvalidateUserStats(uid string)
}

// RegistrationListener drops the cached stats of inviters when one of their
// invitees registers through any API instance.
type RegistrationListener struct {
	Conn  *nats.Conn
	Stats StatsInvalidator

	done chan struct{}
	stop sync.Once
}

func NewRegistrationListener(conn *nats.Conn, stats StatsInvalidator) *RegistrationListener {
	return &RegistrationListener{
		Conn:  conn,
		Stats: stats,
		done:  make(chan struct{}),
	}
}

func (l *RegistrationListener) Handle(payload []byte) {
	var user registeredUser
	if err := json.Unmarshal(payload, &user); err != nil {
		config.Logger.Errorf("Failed to decode %s message, Error: %v", UserRegisteredSubject, err)
		return
	}

	config.Logger.Infof("User %s registered", user.UID)

	if user.InviterUID.Valid {
		l.Stats.InvalidateUserStats(user.InviterUID.String)
	}
}

func (l *RegistrationListener) Start() {
	subscription, err := l.Conn.Subscribe(UserRegisteredSubject, func(msg *nats.Msg) {
		l.Handle(msg.Data)
	})
	if err != nil {
		config.Logger.Errorf("Failed to subscribe %s, Error: %v", UserRegisteredSubject, err)
		return
	}

	<-l.done
	subscription.Unsubscribe()
}

func (l *RegistrationListener) Stop() {
	l.stop.Do(func() { close(l.done) })
}
