// Package reconcile applies virtual tree changes to a live display tree.
//
// The live tree is reached only through Host, the capability set a display
// environment must expose (create, attribute, child and listener operations
// plus the live value property). Host is generic over the live node type so
// that each environment keeps its own node representation.
//
// # Materialize
//
// Materialize builds a live subtree for a virtual subtree: one live node per
// virtual node and one listener per event attribute.
//
// # Patch
//
// Patcher.Patch walks an old and a new virtual tree in lock-step. At every
// position it classifies the pair with vdom.Classify and either appends,
// removes, replaces, writes the live value, rewrites attributes, or does
// nothing, then recurses into children using the configured Strategy.
//
// Listeners are bound only when a node is materialized. A node whose
// handler changes keeps its original listener until it is replaced.
package reconcile
