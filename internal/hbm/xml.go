package hbm

import (
	"encoding/xml"
	"fmt"
	"strconv"

	"fluentmap/model"
)

type xmlMapping struct {
	XMLName       xml.Name   `xml:"urn:nhibernate-mapping-2.2 hibernate-mapping"`
	DefaultAccess string     `xml:"default-access,attr,omitempty"`
	DefaultLazy   bool       `xml:"default-lazy,attr"`
	AutoImport    bool       `xml:"auto-import,attr"`
	Classes       []xmlClass `xml:"class"`
}

type xmlClass struct {
	Name     string       `xml:"name,attr"`
	Table    string       `xml:"table,attr,omitempty"`
	Tuplizer *xmlTuplizer `xml:"tuplizer,omitempty"`
	Id       *xmlId       `xml:"id,omitempty"`
	xmlMembers
	SQL []xmlSQL
}

// xmlMembers is shared by classes and components.
type xmlMembers struct {
	Properties  []xmlProperty  `xml:"property"`
	ManyToOnes  []xmlManyToOne `xml:"many-to-one"`
	OneToOnes   []xmlOneToOne  `xml:"one-to-one"`
	Components  []xmlComponent `xml:"component"`
	Anys        []xmlAny       `xml:"any"`
	Collections []xmlCollection
}

type xmlTuplizer struct {
	EntityMode string `xml:"entity-mode,attr"`
	Class      string `xml:"class,attr"`
}

type xmlId struct {
	Name      string        `xml:"name,attr"`
	Type      string        `xml:"type,attr,omitempty"`
	Column    xmlColumn     `xml:"column"`
	Generator *xmlGenerator `xml:"generator,omitempty"`
}

type xmlGenerator struct {
	Class string `xml:"class,attr"`
}

type xmlColumn struct {
	Name    string `xml:"name,attr"`
	Length  int    `xml:"length,attr,omitempty"`
	NotNull bool   `xml:"not-null,attr,omitempty"`
	Unique  bool   `xml:"unique,attr,omitempty"`
	Index   string `xml:"index,attr,omitempty"`
}

type xmlProperty struct {
	Name    string     `xml:"name,attr"`
	Type    string     `xml:"type,attr,omitempty"`
	Formula string     `xml:"formula,attr,omitempty"`
	Insert  string     `xml:"insert,attr,omitempty"`
	Update  string     `xml:"update,attr,omitempty"`
	Column  *xmlColumn `xml:"column,omitempty"`
}

type xmlManyToOne struct {
	Name       string `xml:"name,attr"`
	Class      string `xml:"class,attr"`
	Column     string `xml:"column,attr,omitempty"`
	Cascade    string `xml:"cascade,attr,omitempty"`
	NotNull    bool   `xml:"not-null,attr,omitempty"`
	Unique     bool   `xml:"unique,attr,omitempty"`
	ForeignKey string `xml:"foreign-key,attr,omitempty"`
}

type xmlOneToOne struct {
	Name        string `xml:"name,attr"`
	Class       string `xml:"class,attr"`
	Cascade     string `xml:"cascade,attr,omitempty"`
	Constrained bool   `xml:"constrained,attr,omitempty"`
	PropertyRef string `xml:"property-ref,attr,omitempty"`
	ForeignKey  string `xml:"foreign-key,attr,omitempty"`
}

type xmlComponent struct {
	Name  string `xml:"name,attr"`
	Class string `xml:"class,attr"`
	xmlMembers
}

type xmlAny struct {
	Name       string         `xml:"name,attr"`
	IdType     string         `xml:"id-type,attr"`
	MetaType   string         `xml:"meta-type,attr,omitempty"`
	Cascade    string         `xml:"cascade,attr,omitempty"`
	MetaValues []xmlMetaValue `xml:"meta-value"`
	Columns    []xmlColumn    `xml:"column"`
}

type xmlMetaValue struct {
	Value string `xml:"value,attr"`
	Class string `xml:"class,attr"`
}

type xmlCollection struct {
	XMLName    xml.Name
	Name       string         `xml:"name,attr"`
	Table      string         `xml:"table,attr,omitempty"`
	Inverse    bool           `xml:"inverse,attr,omitempty"`
	Cascade    string         `xml:"cascade,attr,omitempty"`
	Key        xmlKey         `xml:"key"`
	Index      *xmlKey        `xml:"index,omitempty"`
	OneToMany  *xmlClassRef   `xml:"one-to-many,omitempty"`
	ManyToMany *xmlManyToMany `xml:"many-to-many,omitempty"`
	SQL        []xmlSQL
}

type xmlKey struct {
	Column string `xml:"column,attr"`
}

type xmlClassRef struct {
	Class string `xml:"class,attr"`
}

type xmlManyToMany struct {
	Class  string `xml:"class,attr"`
	Column string `xml:"column,attr,omitempty"`
}

type xmlSQL struct {
	XMLName xml.Name
	Check   string `xml:"check,attr,omitempty"`
	Query   string `xml:",chardata"`
}

func marshalXML(doc *model.HibernateMapping) ([]byte, error) {
	out := xmlMapping{
		DefaultAccess: doc.DefaultAccess,
		DefaultLazy:   doc.DefaultLazy,
		AutoImport:    doc.AutoImport,
	}

	for _, c := range doc.Classes {
		out.Classes = append(out.Classes, toXMLClass(c))
	}

	body, err := xml.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding xml: %w", err)
	}

	return append(append([]byte(xml.Header), body...), '\n'), nil
}

func toXMLClass(c *model.ClassMapping) xmlClass {
	out := xmlClass{Name: c.Name, Table: c.Table}
	out.xmlMembers = toXMLMembers(c.Properties, c.References, c.OneToOnes, c.Components, c.Anys, c.Collections)

	if c.Tuplizer != nil {
		out.Tuplizer = &xmlTuplizer{EntityMode: string(c.Tuplizer.Mode), Class: c.Tuplizer.Type}
	}

	if c.Id != nil {
		out.Id = &xmlId{Name: c.Id.Name, Type: c.Id.Type, Column: xmlColumn{Name: c.Id.Column}}
		if c.Id.Generator != "" {
			out.Id.Generator = &xmlGenerator{Class: c.Id.Generator}
		}
	}

	for _, sp := range c.StoredProcedures {
		out.SQL = append(out.SQL, toXMLSQL(sp))
	}

	return out
}

func toXMLMembers(
	properties []*model.PropertyMapping,
	references []*model.ManyToOneMapping,
	oneToOnes []*model.OneToOneMapping,
	components []*model.ComponentMapping,
	anys []*model.AnyMapping,
	collections []*model.CollectionMapping,
) xmlMembers {
	var out xmlMembers

	for _, p := range properties {
		out.Properties = append(out.Properties, toXMLProperty(p))
	}

	for _, r := range references {
		out.ManyToOnes = append(out.ManyToOnes, xmlManyToOne{
			Name:       r.Name,
			Class:      r.Class,
			Column:     r.Column,
			Cascade:    string(r.Cascade),
			NotNull:    r.NotNull,
			Unique:     r.Unique,
			ForeignKey: r.ForeignKey,
		})
	}

	for _, o := range oneToOnes {
		out.OneToOnes = append(out.OneToOnes, xmlOneToOne{
			Name:        o.Name,
			Class:       o.Class,
			Cascade:     string(o.Cascade),
			Constrained: o.Constrained,
			PropertyRef: o.PropertyRef,
			ForeignKey:  o.ForeignKey,
		})
	}

	for _, c := range components {
		comp := xmlComponent{Name: c.Name, Class: c.Type}
		comp.xmlMembers = toXMLMembers(c.Properties, c.References, c.OneToOnes, c.Components, c.Anys, c.Collections)

		out.Components = append(out.Components, comp)
	}

	for _, a := range anys {
		// the discriminator column comes first
		x := xmlAny{
			Name:     a.Name,
			IdType:   a.IdType,
			MetaType: a.MetaType,
			Cascade:  string(a.Cascade),
			Columns:  []xmlColumn{{Name: a.TypeColumn}, {Name: a.IdentifierColumn}},
		}

		for _, mv := range a.MetaValues {
			x.MetaValues = append(x.MetaValues, xmlMetaValue(mv))
		}

		out.Anys = append(out.Anys, x)
	}

	for _, c := range collections {
		out.Collections = append(out.Collections, toXMLCollection(c))
	}

	return out
}

func toXMLProperty(p *model.PropertyMapping) xmlProperty {
	out := xmlProperty{Name: p.Name, Type: p.Type, Formula: p.Formula}
	if p.CustomType != "" {
		out.Type = p.CustomType
	}

	if p.ReadOnly {
		out.Insert = strconv.FormatBool(false)
		out.Update = strconv.FormatBool(false)
	}

	if p.Formula == "" {
		out.Column = &xmlColumn{
			Name:    p.Column,
			Length:  p.Length,
			NotNull: p.NotNull,
			Unique:  p.Unique,
			Index:   p.Index,
		}
	}

	return out
}

func toXMLCollection(c *model.CollectionMapping) xmlCollection {
	out := xmlCollection{
		XMLName: xml.Name{Local: string(c.Kind)},
		Name:    c.Name,
		Table:   c.Table,
		Inverse: c.Inverse,
		Cascade: string(c.Cascade),
		Key:     xmlKey{Column: c.KeyColumn},
	}

	if c.IndexColumn != "" {
		out.Index = &xmlKey{Column: c.IndexColumn}
	}

	switch c.Relationship {
	case model.ManyToMany:
		out.ManyToMany = &xmlManyToMany{Class: c.ChildClass, Column: c.ChildColumn}
	default:
		out.OneToMany = &xmlClassRef{Class: c.ChildClass}
	}

	if sp := c.SqlDeleteAll; sp != nil {
		out.SQL = append(out.SQL, toXMLSQL(sp))
	}

	return out
}

func toXMLSQL(sp *model.StoredProcedureMapping) xmlSQL {
	return xmlSQL{
		XMLName: xml.Name{Local: string(sp.Kind)},
		Check:   string(sp.Check),
		Query:   sp.Query,
	}
}
