// Package tables holds the immutable lookup data behind character
// derivation: per-sign ability modifiers, per-planet and per-house class
// weights, narrative trait phrases and the class catalog.
//
// All tables are package-level values initialized once and never mutated.
// Accessors are total over astro.Sign and astro.House: values outside the
// enumerations yield an empty contribution or the documented default phrase.
package tables
