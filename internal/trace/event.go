package trace

import "time"

// Kind is the shape of an event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

var kindNames = [...]string{
	KindSpanBegin: "begin",
	KindSpanEnd:   "end",
	KindPoint:     "point",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// Scope is the granularity of an event; smaller is coarser.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // whole audit run
	ScopePass                    // load, index, reconcile, report
	ScopeItem                    // one signal or finding
	ScopeDebug                   // per-item chatter
)

var scopeNames = [...]string{
	ScopeDriver: "driver",
	ScopePass:   "pass",
	ScopeItem:   "item",
	ScopeDebug:  "debug",
}

func (s Scope) String() string {
	if int(s) < len(scopeNames) && scopeNames[s] != "" {
		return scopeNames[s]
	}
	return "unknown"
}

// Event is one trace record.
type Event struct {
	Time     time.Time
	Seq      uint64 // assigned by the sink that stores the event
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for root spans and free-standing points
	Name     string // "audit", "reconcile", "locate.fallback", ...
	Detail   string
	Dur      time.Duration // set on span ends
	Extra    map[string]string
}

// clone copies ev including its Extra map, so sinks may keep it.
func (ev *Event) clone() Event {
	cp := *ev
	if ev.Extra != nil {
		cp.Extra = make(map[string]string, len(ev.Extra))
		for k, v := range ev.Extra {
			cp.Extra[k] = v
		}
	}
	return cp
}
