package geom

import "errors"

// ErrInvalidParameter marks out-of-range numeric input: non-positive
// scale/length/radius, blade count outside [2,8], rotor count not in
// {4,6,8}. Builders fail fast and return no partial mesh.
var ErrInvalidParameter = errors.New("invalid parameter")

// ErrMissingCollaborator marks a call that depends on output another
// component never produced, such as solving a layout for zero rotors.
// It is surfaced to the caller rather than papered over with defaults.
var ErrMissingCollaborator = errors.New("missing collaborator")
