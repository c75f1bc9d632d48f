// Package policy contains the per-step decisions of a search episode.
//
//   - Scorer rates an existing child (UCB1, UCB1 with variance, or UCB1
//     blended with l-RAVE and g-RAVE) and a not-yet-materialised extension.
//   - Expander picks the next node of a descent: either an existing child or
//     a new node it materialises through the lattice index. The discrete
//     strategy expands under progressive widening, the continuous strategy
//     lets new features compete with children at every step.
//   - Terminator decides when a descent has reached its leaf.
//
// Variant names are parsed once into closed enums; an unknown name or an
// out-of-range parameter is a *ConfigError.
package policy
