// Package order contains the Order aggregate: the order header, its child
// order items, the item and order status state machines, the station type
// enumeration, and the domain events raised by every mutation.
//
// The aggregate is the sole source of truth for the order total. All
// transitions are validated here; the persistence layer additionally guards
// item transitions with conditional updates so concurrent actors cannot both
// win the same transition.
package order
