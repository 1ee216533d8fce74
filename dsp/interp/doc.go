// Package interp provides interpolation primitives used to move a sampled
// spectrum between wavelength grids.
//
// Available methods, from cheapest to highest quality:
//
//   - [Linear2]:  2-point linear interpolation (any grid)
//   - [Hermite4]: 4-point cubic Hermite (uniform source grids)
//
// [Locate] finds the bracketing interval of a point on a sorted grid, and
// [LagrangeInterpolator] selects linear or cubic evaluation at construction
// time.
package interp
