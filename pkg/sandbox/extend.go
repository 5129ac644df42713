package sandbox

import (
	"github.com/arthur-debert/sandbox/pkg/errors"
)

// Extend adds a member visible to every Toolbox built from now on. A name
// already present, including the built-in lib and instance members, is
// rejected with ErrExtensionConflict.
func (s *Sandbox) Extend(name string, member any) error {
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "extension name cannot be empty")
	}
	if s.proto.Has(name) {
		return errors.Newf(errors.ErrExtensionConflict, "member %s is already added to the toolbox", name).
			WithDetail("key", name)
	}

	s.proto.Set(name, member)
	s.logger.Debug().Str("member", name).Msg("Toolbox extended")
	return nil
}

// ExtendFunc hands the Prototype to fn so it can add several members at once.
// No conflict check is made.
func (s *Sandbox) ExtendFunc(fn func(*Prototype)) error {
	if fn == nil {
		return errors.New(errors.ErrInvalidInput, "extension function cannot be nil")
	}
	fn(s.proto)
	return nil
}
