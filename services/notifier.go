package services

import (
	"log"
)

// Notifier is the fire-and-forget notification sink. Implementations must
// never fail checkout or webhook handling; there is no error return on
// purpose.
type Notifier interface {
	Notify(channel string, payload any)
}

// LogNotifier writes notifications to the process log. It stands in for the
// push/email channels the wider system owns.
type LogNotifier struct{}

func (LogNotifier) Notify(channel string, payload any) {
	log.Printf("notify [%s]: %+v", channel, payload)
}
