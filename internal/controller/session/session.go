// Package session orchestrates one complete verification attempt: capture,
// identity resolution, expiry evaluation, actuation, and logging.
//
// A session is a single-pass state machine with no retries and no backward
// transitions. Every attempt ends in exactly one terminal outcome; denials
// are ordinary values, and only collaborator faults surface as errors.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/autolock/internal/common"
	"github.com/dmitrijs2005/autolock/internal/controller/display"
	"github.com/dmitrijs2005/autolock/internal/controller/expiry"
	"github.com/dmitrijs2005/autolock/internal/controller/models"
	"github.com/dmitrijs2005/autolock/internal/logging"
	"github.com/google/uuid"
)

// State names one phase of the session state machine.
type State string

const (
	StateIdle       State = "idle"
	StateCapturing  State = "capturing"
	StateResolving  State = "resolving"
	StateEvaluating State = "evaluating"
	StateActuating  State = "actuating"
	StateDone       State = "done"
)

// Default pulse durations, matching the vehicle unit's hold times.
const (
	DefaultGrantDuration = 10 * time.Second
	DefaultDenyDuration  = 5 * time.Second
)

// fieldProgressHold paces the per-field "Checking ..." display lines.
const fieldProgressHold = 2 * time.Second

// Capturer yields one biometric match result per call.
type Capturer interface {
	Run(ctx context.Context) (models.MatchResult, error)
}

// CredentialSource resolves a sensor slot to a credential record.
// common.ErrorNotFound means "no record", a legitimate outcome.
type CredentialSource interface {
	GetByFingerprintID(ctx context.Context, fingerprintID int) (*models.User, error)
}

// AccessLogger appends grant entries to the access log.
type AccessLogger interface {
	Append(ctx context.Context, entry *models.LogEntry) error
}

// Actuator exposes the timed grant/deny effects and the busy indicator.
type Actuator interface {
	SetBusy(on bool) error
	PulseGrant(ctx context.Context, d time.Duration) error
	PulseDeny(ctx context.Context, d time.Duration) error
}

// Session runs one verification attempt. All collaborator handles are
// borrowed from the runner; the session holds no cross-session state.
type Session struct {
	capture  Capturer
	users    CredentialSource
	logs     AccessLogger
	actuator Actuator
	display  display.Display
	logger   logging.Logger

	grantFor time.Duration
	denyFor  time.Duration

	// now and hold are injected for deterministic tests.
	now  func() time.Time
	hold func(ctx context.Context, d time.Duration)
}

// Option configures a Session.
type Option func(*Session)

// WithGrantDuration overrides how long a grant keeps the relay energized.
func WithGrantDuration(d time.Duration) Option {
	return func(s *Session) { s.grantFor = d }
}

// WithDenyDuration overrides how long the deny indicator stays lit.
func WithDenyDuration(d time.Duration) Option {
	return func(s *Session) { s.denyFor = d }
}

// New wires a session. All collaborators are required.
func New(capture Capturer, users CredentialSource, logs AccessLogger,
	actuator Actuator, d display.Display, logger logging.Logger, opts ...Option) *Session {

	if capture == nil || users == nil || logs == nil || actuator == nil {
		panic("session.New: all collaborators are required")
	}
	if d == nil {
		d = display.Nop{}
	}

	s := &Session{
		capture:  capture,
		users:    users,
		logs:     logs,
		actuator: actuator,
		display:  d,
		logger:   logger,
		grantFor: DefaultGrantDuration,
		denyFor:  DefaultDenyDuration,
		now:      time.Now,
		hold:     defaultHold,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func defaultHold(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

// Run executes the full state machine and returns the terminal outcome.
// A returned error means a collaborator fault ("system broken"); the
// outcome is still non-nil whenever a terminal classification was reached
// before the fault. The busy indicator is cleared on every path.
func (s *Session) Run(ctx context.Context) (*models.Outcome, error) {
	outcome := &models.Outcome{SessionID: uuid.NewString()}

	s.transition(ctx, StateIdle, StateCapturing)
	if err := s.actuator.SetBusy(true); err != nil {
		return nil, fmt.Errorf("session start: %w", err)
	}
	defer func() {
		_ = s.actuator.SetBusy(false)
	}()

	match, err := s.capture.Run(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			// Interrupted wait: classify as a biometric-failure denial and
			// let the runner's cleanup handle the rest. No deny pulse, the
			// process is exiting.
			s.finish(ctx, outcome, models.OutcomeDeniedBiometric, func(o *models.Outcome) {
				o.Failure = models.CaptureFailureNoImage
			})
			return outcome, nil
		}
		return nil, fmt.Errorf("capture: %w", err)
	}
	if !match.Matched {
		s.finish(ctx, outcome, models.OutcomeDeniedBiometric, func(o *models.Outcome) {
			o.Failure = match.Failure
		})
		return outcome, s.deny(ctx, "Fingerprint Error")
	}
	outcome.FingerprintID = match.FingerprintID

	s.transition(ctx, StateCapturing, StateResolving)
	user, err := s.users.GetByFingerprintID(ctx, match.FingerprintID)
	if errors.Is(err, common.ErrorNotFound) {
		s.finish(ctx, outcome, models.OutcomeDeniedUnknownIdentity, nil)
		return outcome, s.deny(ctx, "User Not Found")
	}
	if err != nil {
		return nil, fmt.Errorf("resolve identity %d: %w", match.FingerprintID, err)
	}
	outcome.Name = user.Name

	_ = s.display.Text(fmt.Sprintf("Welcome %s", user.Name), 1)
	s.logger.Info(ctx, "identity resolved", "name", user.Name, "fingerprint_id", user.FingerprintID)

	s.transition(ctx, StateResolving, StateEvaluating)
	verdict := expiry.Evaluate(*user, s.now())
	s.showChecks(ctx, *user, verdict)

	s.transition(ctx, StateEvaluating, StateActuating)
	if !verdict.Valid {
		s.finish(ctx, outcome, models.OutcomeDeniedExpired, func(o *models.Outcome) {
			o.ExpiredField = verdict.ExpiredField
		})
		return outcome, s.deny(ctx, "Invalid Documents")
	}

	return outcome, s.grant(ctx, outcome, user)
}

// grant pulses the relay and unconditionally appends the log entry once the
// pulse has been initiated, even if the hold was cut short.
func (s *Session) grant(ctx context.Context, outcome *models.Outcome, user *models.User) error {
	_ = s.display.Text("Documents Valid", 1)
	_ = s.display.Text("Engine Started", 2)

	grantedAt := s.now()
	pulseErr := s.actuator.PulseGrant(ctx, s.grantFor)
	if pulseErr != nil && !errors.Is(pulseErr, context.Canceled) {
		s.logger.Error(ctx, "grant pulse fault", "error", pulseErr)
	}

	s.finish(ctx, outcome, models.OutcomeGranted, func(o *models.Outcome) {
		o.Timestamp = grantedAt
	})

	// Log append uses a context detached from the session's so a signal
	// arriving mid-pulse cannot suppress the audit row.
	entry := models.NewLogEntry(user.Name, grantedAt)
	if err := s.logs.Append(context.WithoutCancel(ctx), entry); err != nil {
		return fmt.Errorf("append access log: %w", err)
	}
	s.logger.Info(ctx, "access granted", "name", user.Name, "log_id", entry.ID)
	return nil
}

// deny lights the deny indicator. The relay is never touched on this path.
func (s *Session) deny(ctx context.Context, reason string) error {
	_ = s.display.Text(reason, 2)
	if err := s.actuator.PulseDeny(ctx, s.denyFor); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("deny pulse: %w", err)
	}
	return nil
}

// showChecks renders the per-field progress lines the unit shows while
// documents are being checked. Purely presentational: the verdict is
// already decided and the trail stops where evaluation stopped.
func (s *Session) showChecks(ctx context.Context, u models.User, v models.Verdict) {
	for _, fd := range expiry.Trail(u, v) {
		_ = s.display.Text(fmt.Sprintf("Checking %s: %s", fd.Field, fd.Date), 1)
		s.hold(ctx, fieldProgressHold)
	}
}

func (s *Session) transition(ctx context.Context, from, to State) {
	s.logger.Info(ctx, "session state", "from", string(from), "to", string(to))
}

// finish stamps the terminal classification exactly once.
func (s *Session) finish(ctx context.Context, o *models.Outcome, kind models.OutcomeKind, fill func(*models.Outcome)) {
	o.Kind = kind
	if o.Timestamp.IsZero() {
		o.Timestamp = s.now()
	}
	if fill != nil {
		fill(o)
	}
	s.logger.Info(ctx, "session done",
		"session_id", o.SessionID,
		"outcome", string(o.Kind),
		"name", o.Name,
		"expired_field", string(o.ExpiredField),
		"capture_failure", string(o.Failure),
	)
}
