// Package model defines the mapping-model tree produced by the fluent
// builders and consumed by an ORM runtime or a document writer.
//
// The tree is plain data:
//
//	HibernateMapping
//	  └── ClassMapping
//	        ├── Id
//	        ├── Properties      []*PropertyMapping
//	        ├── Components      []*ComponentMapping (Reference or External)
//	        ├── Collections     []*CollectionMapping
//	        ├── References      []*ManyToOneMapping
//	        ├── OneToOnes       []*OneToOneMapping
//	        ├── Anys            []*AnyMapping
//	        ├── StoredProcedures []*StoredProcedureMapping
//	        └── Tuplizer        *TuplizerMapping
//
// Values are freshly allocated by every build and never mutated afterwards by
// this module, so a built document may be shared freely.
package model
