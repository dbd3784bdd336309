// Package transform moves coordinates between projections: pipelines that
// couple an input and an output projection, parallel batch transforms over
// immutable projections, and a cache of compiled projections.
package transform
