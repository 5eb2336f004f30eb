package game

// Publisher delivers a message to every subscriber of a subject.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Subscriber provides the ability to subscribe to message subjects
type Subscriber interface {
	Subscribe(subject string, handler func(data []byte)) (unsubscribe func(), err error)
}

// Bus is a message transport that can both publish and subscribe.
type Bus interface {
	Publisher
	Subscriber
}

// SessionSubject returns the subject a session receives its messages on.
func SessionSubject(id SessionID) string {
	return "session-" + id.String()
}
