// Package grid defines the board coordinate system and the fixed regions each
// player owns on it.
//
// Cells are addressed either by Coords (column x, row y, origin top-left) or by
// a dense row-major Index. Every function here is pure: geometry is a function
// of compile-time constants, so callers may share results across goroutines
// without coordination.
//
// Conversion between Coords and Index is unchecked arithmetic. Passing an
// out-of-grid value to CoordsToIndex or IndexToCoords is a precondition
// violation and yields an aliased or out-of-range result; use IndexOf at trust
// boundaries. Region predicates and adjacency queries reject invalid indices
// before converting them and report "not a member" or an empty set.
package grid
