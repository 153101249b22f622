// Package merge resolves Reference components against the External
// components registered for the same type.
//
// An Index is built once per compilation from the External components. Each
// compiled class is then resolved against it:
//
//	Reference(Address) + External(Address) -> Reference identity,
//	                                          Reference children ++ External children
//
// Resolution never mutates its inputs; merged nodes are fresh copies. It also
// enforces that member names are unique per mapping node, and rejects
// ambiguous (several Externals for one type) and recursive expansions.
package merge
