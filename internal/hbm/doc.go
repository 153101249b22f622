// Package hbm serialises mapping documents.
//
// Two formats are supported: the hbm XML vocabulary of the
// urn:nhibernate-mapping-2.2 schema, and a YAML rendering of the model tree.
// WriteFiles writes one file per document, named after its class:
//
//	store.Order.hbm.xml
//	store.Customer.hbm.yaml
package hbm
