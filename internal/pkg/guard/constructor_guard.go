// Package guard provides a construction check for value objects, commands,
// and entities that must be created through their constructor functions
// rather than as zero values.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific
// error is supplied and the guarded object was not constructed properly.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard distinguishes objects built through a constructor from
// zero-value instances. Embed one in a struct and set it with
// NewConstructorGuard inside the constructor; Validate then fails for any
// instance that bypassed it.
//
// Example:
//
//	type Command struct {
//	    target string
//	    guard  guard.ConstructorGuard
//	}
//
//	func NewCommand(target string) (Command, error) {
//	    if target == "" {
//	        return Command{}, errors.New("target is required")
//	    }
//	    return Command{target: target, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (c Command) Validate() error {
//	    return c.guard.Validate(ErrCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks an object as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for properly constructed objects. For zero-value
// guards it returns validationError, or ErrDefaultConstructorGuard when
// validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
