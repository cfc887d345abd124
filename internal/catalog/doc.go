// Package catalog holds the movie model and the pure logic that turns a movie
// collection into what the list screen shows: the category options offered by
// the filter, and the filtered, paginated slice for the current view state.
//
// Nothing here mutates a collection. Callers own their slices; every function
// returns fresh slices or sub-slices of its input.
package catalog
