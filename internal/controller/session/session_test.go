package session

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/dmitrijs2005/autolock/internal/common"
	"github.com/dmitrijs2005/autolock/internal/controller/display"
	"github.com/dmitrijs2005/autolock/internal/controller/models"
	"github.com/dmitrijs2005/autolock/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCapturer struct {
	result models.MatchResult
	err    error
}

func (f *fakeCapturer) Run(ctx context.Context) (models.MatchResult, error) {
	return f.result, f.err
}

type fakeUsers struct {
	records map[int]*models.User
	err     error
	calls   int
}

func (f *fakeUsers) GetByFingerprintID(ctx context.Context, id int) (*models.User, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.records[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

type fakeLogs struct {
	entries []*models.LogEntry
	err     error
}

func (f *fakeLogs) Append(ctx context.Context, e *models.LogEntry) error {
	if f.err != nil {
		return f.err
	}
	e.ID = int64(len(f.entries) + 1)
	f.entries = append(f.entries, e)
	return nil
}

type fakeActuator struct {
	busy        bool
	busyCalls   []bool
	grantPulses int
	denyPulses  int
	grantErr    error
}

func (f *fakeActuator) SetBusy(on bool) error {
	f.busy = on
	f.busyCalls = append(f.busyCalls, on)
	return nil
}

func (f *fakeActuator) PulseGrant(ctx context.Context, d time.Duration) error {
	f.grantPulses++
	return f.grantErr
}

func (f *fakeActuator) PulseDeny(ctx context.Context, d time.Duration) error {
	f.denyPulses++
	return nil
}

func validUser() *models.User {
	return &models.User{
		FingerprintID:      1,
		Name:               "A",
		LicenseExpiry:      "2099-01-01",
		EmissionsExpiry:    "2099-01-01",
		InsuranceExpiry:    "2099-01-01",
		RegistrationExpiry: "2099-01-01",
	}
}

type fixture struct {
	capture  *fakeCapturer
	users    *fakeUsers
	logs     *fakeLogs
	actuator *fakeActuator
	session  *Session
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		capture:  &fakeCapturer{result: models.MatchResult{Matched: true, FingerprintID: 1}},
		users:    &fakeUsers{records: map[int]*models.User{1: validUser()}},
		logs:     &fakeLogs{},
		actuator: &fakeActuator{},
	}
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	f.session = New(f.capture, f.users, f.logs, f.actuator, display.Nop{}, logger,
		WithGrantDuration(time.Millisecond), WithDenyDuration(time.Millisecond))
	// Pin the reference date and skip the progress holds.
	f.session.now = func() time.Time {
		return time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC)
	}
	f.session.hold = func(context.Context, time.Duration) {}
	return f
}

func TestRun_ValidDocumentsGranted(t *testing.T) {
	f := newFixture(t)

	outcome, err := f.session.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.OutcomeGranted, outcome.Kind)
	assert.Equal(t, "A", outcome.Name)
	assert.NotEmpty(t, outcome.SessionID)
	assert.Equal(t, 1, f.actuator.grantPulses)
	assert.Zero(t, f.actuator.denyPulses)

	require.Len(t, f.logs.entries, 1, "exactly one log row for a grant")
	assert.Equal(t, "A", f.logs.entries[0].Name)
	assert.Equal(t, "2024-01-01 10:30:00", f.logs.entries[0].Timestamp)
}

func TestRun_ExpiredLicenseDenied(t *testing.T) {
	f := newFixture(t)
	f.users.records[1].LicenseExpiry = "2020-01-01"

	outcome, err := f.session.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.OutcomeDeniedExpired, outcome.Kind)
	assert.Equal(t, models.FieldLicense, outcome.ExpiredField)
	assert.Zero(t, f.actuator.grantPulses, "relay must never energize on a denial")
	assert.Equal(t, 1, f.actuator.denyPulses)
	assert.Empty(t, f.logs.entries, "denials are never logged")
}

func TestRun_NoMatchSkipsResolver(t *testing.T) {
	f := newFixture(t)
	f.capture.result = models.MatchResult{Failure: models.CaptureFailureSearch}

	outcome, err := f.session.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.OutcomeDeniedBiometric, outcome.Kind)
	assert.Equal(t, models.CaptureFailureSearch, outcome.Failure)
	assert.Zero(t, f.users.calls, "resolver must not run after a biometric failure")
	assert.Equal(t, 1, f.actuator.denyPulses)
	assert.Empty(t, f.logs.entries)
}

func TestRun_UnknownIdentityDenied(t *testing.T) {
	f := newFixture(t)
	f.capture.result = models.MatchResult{Matched: true, FingerprintID: 99}

	outcome, err := f.session.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.OutcomeDeniedUnknownIdentity, outcome.Kind)
	assert.Equal(t, 99, outcome.FingerprintID)
	assert.Zero(t, f.actuator.grantPulses)
	assert.Empty(t, f.logs.entries)
}

func TestRun_BusyClearedOnEveryPath(t *testing.T) {
	paths := map[string]func(f *fixture){
		"granted": func(f *fixture) {},
		"denied expired": func(f *fixture) {
			f.users.records[1].LicenseExpiry = "2020-01-01"
		},
		"denied biometric": func(f *fixture) {
			f.capture.result = models.MatchResult{Failure: models.CaptureFailureTemplate}
		},
		"store fault": func(f *fixture) {
			f.users.err = errors.New("database is locked")
		},
	}

	for name, setup := range paths {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			setup(f)

			_, _ = f.session.Run(context.Background())

			require.NotEmpty(t, f.actuator.busyCalls)
			assert.True(t, f.actuator.busyCalls[0], "busy set at session start")
			assert.False(t, f.actuator.busy, "busy cleared at terminal")
		})
	}
}

func TestRun_StoreFaultIsAnErrorNotADenial(t *testing.T) {
	f := newFixture(t)
	fault := errors.New("database is locked")
	f.users.err = fault

	outcome, err := f.session.Run(context.Background())

	require.ErrorIs(t, err, fault)
	assert.Nil(t, outcome)
	assert.Zero(t, f.actuator.denyPulses, "faults are not masked as denials")
	assert.Empty(t, f.logs.entries)
}

func TestRun_InterruptedCaptureBecomesBiometricDenial(t *testing.T) {
	f := newFixture(t)
	f.capture.result = models.MatchResult{Failure: models.CaptureFailureNoImage}
	f.capture.err = context.Canceled

	outcome, err := f.session.Run(context.Background())
	require.NoError(t, err, "interrupt must not surface as a fatal error")

	assert.Equal(t, models.OutcomeDeniedBiometric, outcome.Kind)
	assert.Equal(t, models.CaptureFailureNoImage, outcome.Failure)
	assert.Zero(t, f.actuator.denyPulses, "no deny pulse while the process is exiting")
}

func TestRun_InterruptedGrantPulseStillLogs(t *testing.T) {
	f := newFixture(t)
	f.actuator.grantErr = context.Canceled

	outcome, err := f.session.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.OutcomeGranted, outcome.Kind)
	require.Len(t, f.logs.entries, 1, "log row must survive a signal mid-pulse")
}
