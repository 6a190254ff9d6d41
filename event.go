package remit

import (
	"strings"

	"github.com/tendermint/tendermint/libs/common"
)

// Event is a notification about a state change that happened while
// processing a transaction. Events are not persisted in the state but
// returned together with the transaction result, so that off-chain
// clients can follow what is going on.
type Event struct {
	// Type is the name of the event, for example "TransferCreated".
	Type string
	// Attributes carry the event arguments in their emission order.
	Attributes []EventAttr
}

// EventAttr is a single named value attached to an event.
type EventAttr struct {
	Key   string
	Value string
}

// NewEvent builds an event from alternating key and value strings.
func NewEvent(typ string, keyvals ...string) Event {
	if len(keyvals)%2 != 0 {
		panic("event attributes must be key value pairs")
	}
	e := Event{Type: typ}
	for i := 0; i < len(keyvals); i += 2 {
		e.Attributes = append(e.Attributes, EventAttr{Key: keyvals[i], Value: keyvals[i+1]})
	}
	return e
}

// Attr returns the value of the first attribute with given key.
func (e Event) Attr(key string) (string, bool) {
	for _, a := range e.Attributes {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// TagsToEvents reverses EventsToTags. Consecutive tags with the same type
// prefix are grouped into one event, as long as a key does not repeat.
func TagsToEvents(tags []common.KVPair) []Event {
	var events []Event
	for _, t := range tags {
		key := string(t.Key)
		i := strings.IndexByte(key, '.')
		if i < 0 {
			continue
		}
		typ, attr := key[:i], key[i+1:]
		n := len(events)
		if n == 0 || events[n-1].Type != typ {
			events = append(events, Event{Type: typ})
			n++
		} else if _, dup := events[n-1].Attr(attr); dup {
			events = append(events, Event{Type: typ})
			n++
		}
		events[n-1].Attributes = append(events[n-1].Attributes, EventAttr{Key: attr, Value: string(t.Value)})
	}
	return events
}
