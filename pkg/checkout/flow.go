// Package checkout sequences a package purchase as a two-phase commit
// against a payment gateway, with a confirmation gate when the purchase
// would replace an active subscription.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// State of one checkout attempt.
type State string

const (
	StateIdle                     State = "IDLE"
	StateCheckingActive           State = "CHECKING_ACTIVE"
	StateNoActive                 State = "NO_ACTIVE"
	StateHasActive                State = "HAS_ACTIVE"
	StateAwaitingUserConfirmation State = "AWAITING_USER_CONFIRMATION"
	StateSubmitting               State = "SUBMITTING"
	StateConfirming               State = "CONFIRMING"
	StateDone                     State = "DONE"
	StateFailed                   State = "FAILED"
)

// ErrActivePackageConflict is returned when the gateway reports an
// active package the flow did not know about on a non-forced submit.
// The user must re-confirm; the flow never retries with force on its own.
var ErrActivePackageConflict = errors.New("an active package exists; upgrade must be confirmed")

var (
	errNotIdle       = errors.New("checkout already started")
	errNotConfirming = errors.New("no pending confirmation to answer")
	errNoPayment     = errors.New("no created payment to confirm")
)

// ActivePackage is the subscription a purchase may replace.
type ActivePackage struct {
	TokenID     uuid.UUID
	PackageID   uuid.UUID
	PackageName string
	ActivatedAt time.Time
	ExpiredAt   time.Time
}

// Active reports whether the package is still valid: expiry strictly
// after now.
func (p *ActivePackage) Active(now time.Time) bool {
	return p != nil && p.ExpiredAt.After(now)
}

// DaysRemaining is the number of whole or partial days until expiry,
// rounded up, never negative.
func DaysRemaining(expiredAt, now time.Time) int {
	ms := expiredAt.Sub(now).Milliseconds()
	if ms <= 0 {
		return 0
	}
	const dayMs = 24 * 60 * 60 * 1000
	return int((ms + dayMs - 1) / dayMs)
}

// Target describes the package being purchased.
type Target struct {
	PackageID    uuid.UUID
	PackageName  string
	DurationDays int
	Price        float64
}

// Comparison is what the UI shows before a destructive upgrade.
type Comparison struct {
	CurrentName     string
	CurrentExpires  time.Time
	CurrentDaysLeft int
	NewName         string
	NewDurationDays int
	NewPrice        float64
}

// ContactInfo travels with the confirm call.
type ContactInfo struct {
	Email string
	Phone string
}

// ProofFile is the uploaded proof of payment.
type ProofFile struct {
	Name        string
	ContentType string
	Size        int64
	Data        []byte
}

// CreateResult is the gateway's answer to a create call. HasActive set
// with no PaymentID means the server independently found an active
// package on a non-forced submit.
type CreateResult struct {
	PaymentID     uuid.UUID
	HasActive     bool
	ActivePackage *ActivePackage
	Message       string
}

// PaymentGateway is the backend the flow drives. Implementations call
// the payment service (or an HTTP API); tests use a fake.
type PaymentGateway interface {
	CheckActivePackage(ctx context.Context, userID uuid.UUID) (*ActivePackage, error)
	CreatePayment(ctx context.Context, userID uuid.UUID, packageID uuid.UUID, method string, forceUpgrade bool) (*CreateResult, error)
	ConfirmPayment(ctx context.Context, paymentID uuid.UUID, contact ContactInfo, proof ProofFile) error
}

// pendingPayment holds the submitted form between start and the user's
// confirmation answer. Discarded on cancel, success, or reset.
type pendingPayment struct {
	target  Target
	method  string
	contact ContactInfo
	proof   ProofFile
}

// Flow runs one checkout attempt. It is not safe for concurrent use;
// each attempt gets its own Flow.
type Flow struct {
	gateway PaymentGateway
	now     func() time.Time

	state     State
	userID    uuid.UUID
	pending   *pendingPayment
	active    *ActivePackage
	paymentID uuid.UUID
	failure   string
}

func NewFlow(gateway PaymentGateway) *Flow {
	return &Flow{
		gateway: gateway,
		now:     time.Now,
		state:   StateIdle,
	}
}

// NewFlowAt fixes the clock, for tests and replays.
func NewFlowAt(gateway PaymentGateway, now func() time.Time) *Flow {
	f := NewFlow(gateway)
	f.now = now
	return f
}

func (f *Flow) State() State { return f.state }

// PaymentID is set once the gateway has created the payment.
func (f *Flow) PaymentID() uuid.UUID { return f.paymentID }

// FailureMessage carries the gateway's message verbatim after FAILED.
func (f *Flow) FailureMessage() string { return f.failure }

// Comparison is only meaningful in AWAITING_USER_CONFIRMATION.
func (f *Flow) Comparison() *Comparison {
	if f.state != StateAwaitingUserConfirmation || f.active == nil || f.pending == nil {
		return nil
	}
	return &Comparison{
		CurrentName:     f.active.PackageName,
		CurrentExpires:  f.active.ExpiredAt,
		CurrentDaysLeft: DaysRemaining(f.active.ExpiredAt, f.now()),
		NewName:         f.pending.target.PackageName,
		NewDurationDays: f.pending.target.DurationDays,
		NewPrice:        f.pending.target.Price,
	}
}

// Start checks for an active package and either proceeds straight to
// submission or parks at the confirmation gate. Expired tokens count as
// absent.
func (f *Flow) Start(ctx context.Context, userID uuid.UUID, target Target, method string, contact ContactInfo, proof ProofFile) error {
	if f.state != StateIdle {
		return errNotIdle
	}
	f.userID = userID
	f.pending = &pendingPayment{target: target, method: method, contact: contact, proof: proof}

	f.state = StateCheckingActive
	active, err := f.gateway.CheckActivePackage(ctx, userID)
	if err != nil {
		return f.fail(err.Error())
	}

	if !active.Active(f.now()) {
		f.state = StateNoActive
		return f.submit(ctx, false)
	}

	f.active = active
	f.state = StateHasActive
	f.state = StateAwaitingUserConfirmation
	return nil
}

// Confirm answers the confirmation gate positively: the pending form is
// replayed with forceUpgrade set.
func (f *Flow) Confirm(ctx context.Context) error {
	if f.state != StateAwaitingUserConfirmation {
		return errNotConfirming
	}
	return f.submit(ctx, true)
}

// Cancel discards the pending form without any backend call.
func (f *Flow) Cancel() error {
	if f.state != StateAwaitingUserConfirmation {
		return errNotConfirming
	}
	f.pending = nil
	f.active = nil
	f.state = StateIdle
	return nil
}

func (f *Flow) submit(ctx context.Context, forceUpgrade bool) error {
	f.state = StateSubmitting

	result, err := f.gateway.CreatePayment(ctx, f.userID, f.pending.target.PackageID, f.pending.method, forceUpgrade)
	if err != nil {
		return f.fail(err.Error())
	}

	// Another session activated a package between our check and this
	// submit. Park back at the gate; the user decides about force.
	if result.HasActive && result.PaymentID == uuid.Nil {
		if result.ActivePackage != nil {
			f.active = result.ActivePackage
		} else if f.active == nil {
			// Conflict payload without details. Re-check so the gate can
			// still show the comparison.
			if active, err := f.gateway.CheckActivePackage(ctx, f.userID); err == nil {
				f.active = active
			}
		}
		f.state = StateAwaitingUserConfirmation
		return ErrActivePackageConflict
	}

	if result.PaymentID == uuid.Nil {
		return f.fail(result.Message)
	}
	f.paymentID = result.PaymentID

	f.state = StateConfirming
	if err := f.gateway.ConfirmPayment(ctx, f.paymentID, f.pending.contact, f.pending.proof); err != nil {
		return f.fail(err.Error())
	}

	f.pending = nil
	f.state = StateDone
	return nil
}

func (f *Flow) fail(message string) error {
	f.state = StateFailed
	f.failure = message
	if message == "" {
		f.failure = "payment request failed"
	}
	return fmt.Errorf("checkout failed: %s", f.failure)
}

// ConfirmStandalone drives only the second phase, for flows where the
// payment was created earlier and the proof arrives later. It refuses
// to run without a payment id.
func (f *Flow) ConfirmStandalone(ctx context.Context, paymentID uuid.UUID, contact ContactInfo, proof ProofFile) error {
	if paymentID == uuid.Nil {
		return errNoPayment
	}
	f.paymentID = paymentID
	f.state = StateConfirming
	if err := f.gateway.ConfirmPayment(ctx, paymentID, contact, proof); err != nil {
		return f.fail(err.Error())
	}
	f.state = StateDone
	return nil
}
