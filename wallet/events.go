package wallet

import (
	"sync"

	"github.com/google/uuid"
	"github.com/holiman/uint256"
	"go.uber.org/zap"
)

// Event is a record of a state-mutating wallet operation. Every mutating
// operation emits exactly one event after its state is committed.
type Event interface {
	// Kind returns the event name.
	Kind() string
	// EventID returns the unique ID assigned at emission.
	EventID() uuid.UUID
}

// Deposited is emitted when value enters the wallet, including unconditional
// value receipt.
type Deposited struct {
	ID      uuid.UUID
	Account Account
	Amount  *uint256.Int
}

// Withdrew is emitted on withdrawal. Amount is the net paid out to the
// account after the fee.
type Withdrew struct {
	ID      uuid.UUID
	Account Account
	Amount  *uint256.Int
}

// Transferred is emitted on internal transfer.
type Transferred struct {
	ID     uuid.UUID
	From   Account
	To     Account
	Amount *uint256.Int
}

// ProfitSwept is emitted when the owner drains the profit pool.
type ProfitSwept struct {
	ID     uuid.UUID
	Owner  Account
	Amount *uint256.Int
}

// TaxRateChanged is emitted when the owner replaces the tax rate.
type TaxRateChanged struct {
	ID   uuid.UUID
	Rate uint64
}

func (e Deposited) Kind() string      { return "Deposited" }
func (e Withdrew) Kind() string       { return "Withdrew" }
func (e Transferred) Kind() string    { return "Transferred" }
func (e ProfitSwept) Kind() string    { return "ProfitSwept" }
func (e TaxRateChanged) Kind() string { return "TaxRateChanged" }

func (e Deposited) EventID() uuid.UUID      { return e.ID }
func (e Withdrew) EventID() uuid.UUID       { return e.ID }
func (e Transferred) EventID() uuid.UUID    { return e.ID }
func (e ProfitSwept) EventID() uuid.UUID    { return e.ID }
func (e TaxRateChanged) EventID() uuid.UUID { return e.ID }

// Sink receives emitted events. Notify is called inside the wallet's
// critical section and must not call back into the wallet.
type Sink interface {
	Notify(Event)
}

// MemorySink records events in emission order. Safe for concurrent use.
type MemorySink struct {
	mu     sync.Mutex
	events []Event
}

// Notify implements Sink.
func (s *MemorySink) Notify(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

// Events returns a copy of the recorded history.
func (s *MemorySink) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

// LogSink writes events to a zap logger.
type LogSink struct {
	Log *zap.Logger
}

// Notify implements Sink.
func (s LogSink) Notify(ev Event) {
	fields := []zap.Field{zap.Stringer("id", ev.EventID())}
	switch e := ev.(type) {
	case Deposited:
		fields = append(fields, zap.String("account", AccountString(e.Account)), zap.String("amount", e.Amount.Dec()))
	case Withdrew:
		fields = append(fields, zap.String("account", AccountString(e.Account)), zap.String("amount", e.Amount.Dec()))
	case Transferred:
		fields = append(fields, zap.String("from", AccountString(e.From)), zap.String("to", AccountString(e.To)), zap.String("amount", e.Amount.Dec()))
	case ProfitSwept:
		fields = append(fields, zap.String("owner", AccountString(e.Owner)), zap.String("amount", e.Amount.Dec()))
	case TaxRateChanged:
		fields = append(fields, zap.Uint64("rate", e.Rate))
	}
	s.Log.Info(ev.Kind(), fields...)
}
