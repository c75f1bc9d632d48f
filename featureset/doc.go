// Package featureset provides the feature-subset value that every other
// gsfs package is keyed on.
//
// A Universe interns the dataset's feature names into dense IDs. A Set is an
// immutable-by-convention roaring bitmap over those IDs, so equality and
// subset tests are cheap bitmap operations instead of string comparisons:
//
//	u, _ := featureset.NewUniverse([]string{"age", "income", "zip"})
//	s := u.MustSetOf("age").With(u.MustID("zip"))
//	s.IsSubsetOf(u.Full()) // true
//	u.Label(s)             // "age,zip"
//
// The zero Set is the undefined set. It is distinct from Empty(), which is a
// defined set with no members. Consumers that must reject missing input
// (the RAVE tables) check IsNil.
package featureset
