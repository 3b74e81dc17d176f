package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

type gatewayCall struct {
	op           string
	forceUpgrade bool
	paymentID    uuid.UUID
}

// fakeGateway records every call and serves scripted responses.
type fakeGateway struct {
	calls []gatewayCall

	activePackage *ActivePackage
	checkErr      error

	createResult *CreateResult
	createErr    error

	confirmErr error
}

func (g *fakeGateway) CheckActivePackage(ctx context.Context, userID uuid.UUID) (*ActivePackage, error) {
	g.calls = append(g.calls, gatewayCall{op: "check"})
	return g.activePackage, g.checkErr
}

func (g *fakeGateway) CreatePayment(ctx context.Context, userID uuid.UUID, packageID uuid.UUID, method string, forceUpgrade bool) (*CreateResult, error) {
	g.calls = append(g.calls, gatewayCall{op: "create", forceUpgrade: forceUpgrade})
	if g.createErr != nil {
		return nil, g.createErr
	}
	return g.createResult, nil
}

func (g *fakeGateway) ConfirmPayment(ctx context.Context, paymentID uuid.UUID, contact ContactInfo, proof ProofFile) error {
	g.calls = append(g.calls, gatewayCall{op: "confirm", paymentID: paymentID})
	return g.confirmErr
}

func (g *fakeGateway) ops() []string {
	ops := make([]string, 0, len(g.calls))
	for _, c := range g.calls {
		ops = append(ops, c.op)
	}
	return ops
}

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func newTarget() Target {
	return Target{
		PackageID:    uuid.New(),
		PackageName:  "Premium",
		DurationDays: 30,
		Price:        99000,
	}
}

func equalOps(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// No active package: the flow runs straight through with exactly one
// create and one confirm call.
func TestFlowNoActivePackage(t *testing.T) {
	paymentID := uuid.New()
	gw := &fakeGateway{
		createResult: &CreateResult{PaymentID: paymentID},
	}
	f := NewFlowAt(gw, clock)

	err := f.Start(context.Background(), uuid.New(), newTarget(), "BCA", ContactInfo{Email: "a@b.c", Phone: "+628111"}, ProofFile{Name: "proof.png"})
	if err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	if f.State() != StateDone {
		t.Errorf("state = %q, want %q", f.State(), StateDone)
	}
	if f.PaymentID() != paymentID {
		t.Errorf("payment id = %v, want %v", f.PaymentID(), paymentID)
	}
	if !equalOps(gw.ops(), []string{"check", "create", "confirm"}) {
		t.Errorf("calls = %v, want check, create, confirm", gw.ops())
	}
	if gw.calls[1].forceUpgrade {
		t.Error("non-forced purchase submitted with forceUpgrade")
	}
}

// An expired token routes to NO_ACTIVE exactly like no token at all.
func TestFlowExpiredTokenTreatedAsAbsent(t *testing.T) {
	gw := &fakeGateway{
		activePackage: &ActivePackage{
			PackageName: "Basic",
			ExpiredAt:   fixedNow.Add(-time.Hour),
		},
		createResult: &CreateResult{PaymentID: uuid.New()},
	}
	f := NewFlowAt(gw, clock)

	if err := f.Start(context.Background(), uuid.New(), newTarget(), "QRIS", ContactInfo{}, ProofFile{}); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	if f.State() != StateDone {
		t.Errorf("state = %q, want %q", f.State(), StateDone)
	}
}

// Token expiring exactly now is not active; strictly-after wins.
func TestFlowTokenExpiringNowIsInactive(t *testing.T) {
	gw := &fakeGateway{
		activePackage: &ActivePackage{PackageName: "Basic", ExpiredAt: fixedNow},
		createResult:  &CreateResult{PaymentID: uuid.New()},
	}
	f := NewFlowAt(gw, clock)

	if err := f.Start(context.Background(), uuid.New(), newTarget(), "BCA", ContactInfo{}, ProofFile{}); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	if f.State() != StateDone {
		t.Errorf("state = %q, want %q", f.State(), StateDone)
	}
}

// An active package parks the flow at the gate with zero writes, showing
// current vs new package data; cancelling returns to IDLE still with
// zero writes.
func TestFlowActivePackageGateAndCancel(t *testing.T) {
	gw := &fakeGateway{
		activePackage: &ActivePackage{
			PackageName: "Basic",
			ExpiredAt:   fixedNow.Add(10 * 24 * time.Hour),
		},
	}
	f := NewFlowAt(gw, clock)

	err := f.Start(context.Background(), uuid.New(), newTarget(), "BCA", ContactInfo{}, ProofFile{})
	if err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	if f.State() != StateAwaitingUserConfirmation {
		t.Fatalf("state = %q, want %q", f.State(), StateAwaitingUserConfirmation)
	}

	cmp := f.Comparison()
	if cmp == nil {
		t.Fatal("Comparison() = nil at confirmation gate")
	}
	if cmp.CurrentName != "Basic" || cmp.CurrentDaysLeft != 10 {
		t.Errorf("current = {%s %d}, want {Basic 10}", cmp.CurrentName, cmp.CurrentDaysLeft)
	}
	if cmp.NewName != "Premium" || cmp.NewDurationDays != 30 || cmp.NewPrice != 99000 {
		t.Errorf("new = {%s %d %v}", cmp.NewName, cmp.NewDurationDays, cmp.NewPrice)
	}

	if err := f.Cancel(); err != nil {
		t.Fatalf("Cancel() error: %v", err)
	}
	if f.State() != StateIdle {
		t.Errorf("state after cancel = %q, want %q", f.State(), StateIdle)
	}
	if !equalOps(gw.ops(), []string{"check"}) {
		t.Errorf("calls = %v, want only the active-package check", gw.ops())
	}
}

// Confirming at the gate replays the pending form with forceUpgrade.
func TestFlowConfirmedUpgradeForces(t *testing.T) {
	gw := &fakeGateway{
		activePackage: &ActivePackage{
			PackageName: "Basic",
			ExpiredAt:   fixedNow.Add(48 * time.Hour),
		},
		createResult: &CreateResult{PaymentID: uuid.New()},
	}
	f := NewFlowAt(gw, clock)

	if err := f.Start(context.Background(), uuid.New(), newTarget(), "BCA", ContactInfo{}, ProofFile{}); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	if err := f.Confirm(context.Background()); err != nil {
		t.Fatalf("Confirm() error: %v", err)
	}
	if f.State() != StateDone {
		t.Errorf("state = %q, want %q", f.State(), StateDone)
	}
	if !gw.calls[1].forceUpgrade {
		t.Error("confirmed upgrade submitted without forceUpgrade")
	}
}

// forceUpgrade must never be sent without the gate transition in this
// attempt.
func TestFlowNeverForcesWithoutConfirmation(t *testing.T) {
	gw := &fakeGateway{
		createResult: &CreateResult{PaymentID: uuid.New()},
	}
	f := NewFlowAt(gw, clock)

	if err := f.Start(context.Background(), uuid.New(), newTarget(), "BCA", ContactInfo{}, ProofFile{}); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	for _, c := range gw.calls {
		if c.op == "create" && c.forceUpgrade {
			t.Error("create issued with forceUpgrade without user confirmation")
		}
	}
}

// The server detecting an active package the client missed is a
// retryable conflict: back to the gate, no auto-retry, no confirm call.
func TestFlowServerSideActiveConflict(t *testing.T) {
	gw := &fakeGateway{
		createResult: &CreateResult{
			HasActive: true,
			ActivePackage: &ActivePackage{
				PackageName: "Basic",
				ExpiredAt:   fixedNow.Add(72 * time.Hour),
			},
		},
	}
	f := NewFlowAt(gw, clock)

	err := f.Start(context.Background(), uuid.New(), newTarget(), "BCA", ContactInfo{}, ProofFile{})
	if !errors.Is(err, ErrActivePackageConflict) {
		t.Fatalf("Start() error = %v, want ErrActivePackageConflict", err)
	}
	if f.State() != StateAwaitingUserConfirmation {
		t.Errorf("state = %q, want %q", f.State(), StateAwaitingUserConfirmation)
	}
	if !equalOps(gw.ops(), []string{"check", "create"}) {
		t.Errorf("calls = %v, flow must not auto-retry or confirm", gw.ops())
	}
}

// racingGateway simulates another session activating a package between
// the initial check and the create call: the first check sees nothing,
// later checks see the new package.
type racingGateway struct {
	fakeGateway
	lateActive *ActivePackage
}

func (g *racingGateway) CheckActivePackage(ctx context.Context, userID uuid.UUID) (*ActivePackage, error) {
	g.calls = append(g.calls, gatewayCall{op: "check"})
	if len(g.calls) == 1 {
		return nil, nil
	}
	return g.lateActive, nil
}

// A conflict payload without package details still yields a usable gate:
// the flow re-checks so Comparison has current-package data.
func TestFlowConflictWithoutDetailsRechecks(t *testing.T) {
	gw := &racingGateway{
		fakeGateway: fakeGateway{
			createResult: &CreateResult{HasActive: true},
		},
		lateActive: &ActivePackage{
			PackageName: "Basic",
			ExpiredAt:   fixedNow.Add(72 * time.Hour),
		},
	}
	f := NewFlowAt(gw, clock)

	err := f.Start(context.Background(), uuid.New(), newTarget(), "BCA", ContactInfo{}, ProofFile{})
	if !errors.Is(err, ErrActivePackageConflict) {
		t.Fatalf("Start() error = %v, want ErrActivePackageConflict", err)
	}
	if f.State() != StateAwaitingUserConfirmation {
		t.Fatalf("state = %q, want %q", f.State(), StateAwaitingUserConfirmation)
	}

	cmp := f.Comparison()
	if cmp == nil {
		t.Fatal("Comparison() = nil after conflict without details")
	}
	if cmp.CurrentName != "Basic" || cmp.CurrentDaysLeft != 3 {
		t.Errorf("current = {%s %d}, want {Basic 3}", cmp.CurrentName, cmp.CurrentDaysLeft)
	}
	if !equalOps(gw.ops(), []string{"check", "create", "check"}) {
		t.Errorf("calls = %v, want a re-check and no confirm", gw.ops())
	}
}

// Gateway failure messages surface verbatim and the flow stays FAILED,
// not silently reset.
func TestFlowCreateFailureSurfacesMessage(t *testing.T) {
	gw := &fakeGateway{
		createErr: errors.New("insufficient funds on gateway"),
	}
	f := NewFlowAt(gw, clock)

	err := f.Start(context.Background(), uuid.New(), newTarget(), "BCA", ContactInfo{}, ProofFile{})
	if err == nil {
		t.Fatal("Start() should fail")
	}
	if f.State() != StateFailed {
		t.Errorf("state = %q, want %q", f.State(), StateFailed)
	}
	if f.FailureMessage() != "insufficient funds on gateway" {
		t.Errorf("failure = %q, message must be kept verbatim", f.FailureMessage())
	}
}

// Confirm is never called before create returns a payment id.
func TestFlowConfirmNeverPrecedesCreate(t *testing.T) {
	paymentID := uuid.New()
	gw := &fakeGateway{
		createResult: &CreateResult{PaymentID: paymentID},
	}
	f := NewFlowAt(gw, clock)

	if err := f.Start(context.Background(), uuid.New(), newTarget(), "QRIS", ContactInfo{}, ProofFile{}); err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	sawCreate := false
	for _, c := range gw.calls {
		if c.op == "create" {
			sawCreate = true
		}
		if c.op == "confirm" {
			if !sawCreate {
				t.Fatal("confirm issued before create")
			}
			if c.paymentID != paymentID {
				t.Errorf("confirm used payment id %v, want %v", c.paymentID, paymentID)
			}
		}
	}
}

func TestFlowConfirmStandaloneRequiresPaymentID(t *testing.T) {
	gw := &fakeGateway{}
	f := NewFlowAt(gw, clock)

	if err := f.ConfirmStandalone(context.Background(), uuid.Nil, ContactInfo{}, ProofFile{}); err == nil {
		t.Fatal("ConfirmStandalone() with nil payment id should fail")
	}
	if len(gw.calls) != 0 {
		t.Errorf("calls = %v, want none", gw.ops())
	}
}

func TestDaysRemaining(t *testing.T) {
	tests := []struct {
		name      string
		expiredAt time.Time
		want      int
	}{
		{name: "ten full days", expiredAt: fixedNow.Add(10 * 24 * time.Hour), want: 10},
		{name: "partial day rounds up", expiredAt: fixedNow.Add(25 * time.Hour), want: 2},
		{name: "one millisecond rounds up", expiredAt: fixedNow.Add(time.Millisecond), want: 1},
		{name: "expired is zero", expiredAt: fixedNow.Add(-time.Hour), want: 0},
		{name: "expiring now is zero", expiredAt: fixedNow, want: 0},
		{name: "long expired never negative", expiredAt: fixedNow.Add(-90 * 24 * time.Hour), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysRemaining(tt.expiredAt, fixedNow); got != tt.want {
				t.Errorf("DaysRemaining() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestActivePackageActive(t *testing.T) {
	var nilPkg *ActivePackage
	if nilPkg.Active(fixedNow) {
		t.Error("nil package reported active")
	}
	pkg := &ActivePackage{ExpiredAt: fixedNow}
	if pkg.Active(fixedNow) {
		t.Error("package expiring exactly now reported active")
	}
	pkg.ExpiredAt = fixedNow.Add(time.Second)
	if !pkg.Active(fixedNow) {
		t.Error("unexpired package reported inactive")
	}
}
