// Package fluent is the builder API describing how Go struct types map onto
// an ORM mapping model.
//
// Builders name members by their Go field name. A name that does not resolve
// to an exported field of the mapped type panics at the call with an
// *errors.MappingError wrapping errors.ErrMemberResolution; wrap builder code
// in Try to get it back as an error. Configuration that can only be judged
// complete later, such as the columns of a ReferencesAny, is checked when the
// mappings are compiled.
//
// Typical use:
//
//	address := fluent.NewComponentMap[store.Address]()
//	address.Map("Street")
//	address.Map("City")
//
//	customer := fluent.NewClassMap[store.Customer]()
//	customer.Id("ID").GeneratedBy(fluent.GeneratorIdentity)
//	customer.Map("Email").NotNull().Unique()
//	customer.Component("Address") // merged with the External component above
//	customer.HasMany("Orders").Inverse()
//
//	pm := fluent.NewPersistenceModel(fluent.WithConventions(naming.SnakeCase))
//	if err := pm.Add(address, customer); err != nil {
//		return err
//	}
//
//	docs, err := pm.BuildMappings()
//
// BuildMappings returns one document per class. A class that fails to compile
// is left out and its errors are joined into err; the other classes are still
// returned.
package fluent
