// Package menu provides the immutable item catalog for the canteen counter.
// The catalog maps canonical item names to unit prices and is loaded once at
// process start; lookups are pure and side-effect free.
package menu
