// Package geometry samples points in a square Domain and classifies them
// against the Domain's inscribed circle.
//
// The circle has radius Size/2 and is centred at (Size/2, Size/2). Distances
// are measured with the numeric package's iterative solver. A point exactly on
// the circle is a tie; the Classifier's Boundary policy decides it, and the
// default counts ties as inside.
package geometry
