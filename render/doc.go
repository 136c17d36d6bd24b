// Package render draws a tree.View in a terminal: the visible sibling group
// laid out in a square grid around its parent, each node coloured by type.
package render
