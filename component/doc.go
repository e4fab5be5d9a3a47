// Package component defines the data model shared by every measurement
// layer: component [Name] identifiers, the ordered [Set] of names a marker
// measures with, the [Component] and [Registry] interfaces implemented by
// measurement backends, and the [Sample] records backends aggregate.
//
// The package holds no behavior beyond the [Set] container; backends live
// in the registry package and consumers in mark, timer, and session.
package component
