// Package automap builds fluent ClassMaps by convention from a set of Go
// types, either described through reflection (Types) or loaded from source
// (FromGraph).
//
// Conventions cover the common shapes; anything they get wrong is corrected
// per type with Override, which runs after automapping on the generated
// ClassMap:
//
//	m := automap.Source(automap.FromGraph(graph), fluent.WithConventions(naming.SnakeCase))
//	automap.Override[store.Order](m, func(c *fluent.ClassMap) {
//		c.SqlInsert("INSERT INTO orders (customer_id, status) VALUES (?, ?)")
//	})
//
//	docs, err := m.BuildMappings()
package automap
