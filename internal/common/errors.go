// Package common defines shared sentinel errors used across the controller
// layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Hardware collaborator errors (sensor/display/GPIO faults).
	// These indicate "system broken", never "access refused".
	ErrSensorFault  = errors.New("sensor fault")
	ErrDisplayFault = errors.New("display fault")
	ErrOutputFault  = errors.New("output fault")
)
