// Package corridor inserts passages between facing rows of placed units.
//
// Units are first grouped into rows by a single greedy pass over the units
// sorted by y: a unit joins the first row whose running average y lies
// within the unit's own height, otherwise it opens a new row. Adjacent rows
// that are at least one corridor width apart and share an x-span get a
// horizontal corridor along the top of the lower row.
//
// With [Options.Vertical] set, the same procedure runs on columns and emits
// vertical corridors as well.
package corridor
