// Package schema models the EVI schema document produced from a data
// dictionary: a named, described envelope carrying a JSON-LD @context and an
// ordered set of property descriptors, one per dictionary row.
//
// Properties keep insertion order end to end. Serialization writes keys in a
// fixed order and omits every optional attribute left unset.
package schema
