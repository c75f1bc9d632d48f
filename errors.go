package gsfs

import (
	"errors"
	"fmt"

	"github.com/hupe1980/gsfs/engine"
	"github.com/hupe1980/gsfs/featureset"
	"github.com/hupe1980/gsfs/lattice"
	"github.com/hupe1980/gsfs/policy"
	"github.com/hupe1980/gsfs/rave"
)

var (
	// ErrNotFitted is returned by read accessors and Refit before Fit.
	ErrNotFitted = errors.New("gsfs: selector is not fitted")

	// ErrConfiguration matches every invalid variant name, parameter or budget.
	ErrConfiguration = policy.ErrConfiguration

	// ErrInvalidQuery is returned when a RAVE table is queried with an
	// undefined feature set.
	ErrInvalidQuery = rave.ErrInvalidQuery

	// ErrUnknownFeature is returned for a feature name outside the universe.
	ErrUnknownFeature = featureset.ErrUnknownFeature

	// ErrInvalidScore is returned when the oracle yields NaN or ±Inf.
	ErrInvalidScore = engine.ErrInvalidScore

	// ErrOracle wraps every error returned by the oracle.
	ErrOracle = engine.ErrOracle

	// ErrInvariant is returned when the search graph violates its DAG
	// invariants.
	ErrInvariant = errors.New("gsfs: search graph invariant violated")
)

// OraclePanicError is returned, wrapped in ErrOracle, when the oracle panics.
type OraclePanicError = engine.PanicError

// ErrDuplicateFeature indicates a feature name that occurs twice.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDuplicateFeature struct {
	Name  string
	cause error
}

func (e *ErrDuplicateFeature) Error() string {
	return fmt.Sprintf("duplicate feature: %q", e.Name)
}

func (e *ErrDuplicateFeature) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var df *featureset.ErrDuplicateFeature
	if errors.As(err, &df) {
		return &ErrDuplicateFeature{Name: df.Name, cause: err}
	}
	if errors.Is(err, featureset.ErrEmptyUniverse) || errors.Is(err, featureset.ErrEmptyName) {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	var ie *lattice.InvariantError
	if errors.As(err, &ie) {
		return fmt.Errorf("%w: %w", ErrInvariant, err)
	}
	var dn *lattice.ErrDuplicateNode
	if errors.As(err, &dn) {
		return fmt.Errorf("%w: %w", ErrInvariant, err)
	}

	return err
}
