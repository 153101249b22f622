package naming

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Convention derives database names from Go names when a builder leaves
// them unset. Arguments are unqualified Go identifiers.
type Convention interface {
	// TableName names the table of a class.
	TableName(typeName string) string
	// ColumnName names the column of a property.
	ColumnName(member string) string
	// ForeignKeyColumn names the column holding a many-to-one reference.
	ForeignKeyColumn(member string) string
	// KeyColumn names the collection key column pointing back at owner.
	KeyColumn(owner string) string
}

const idSuffix = "_id"

// Default keeps Go names as they are.
var Default Convention = defaultConvention{}

// SnakeCase lower-cases names and joins their tokens with underscores.
var SnakeCase Convention = snakeCase{}

// LowerCase lower-cases names without inserting separators.
var LowerCase Convention = lowerCase{}

// ByName returns the built-in convention called name ("default",
// "snake_case" or "lower_case").
func ByName(name string) (Convention, bool) {
	switch strings.ToLower(name) {
	case "", "default":
		return Default, true
	case "snake", "snake_case", "snakecase":
		return SnakeCase, true
	case "lower", "lower_case", "lowercase":
		return LowerCase, true
	default:
		return nil, false
	}
}

type defaultConvention struct{}

func (defaultConvention) TableName(typeName string) string { return typeName }
func (defaultConvention) ColumnName(member string) string { return member }
func (defaultConvention) ForeignKeyColumn(member string) string { return member + idSuffix }
func (defaultConvention) KeyColumn(owner string) string { return owner + idSuffix }

type snakeCase struct{}

func (snakeCase) TableName(typeName string) string { return ToSnake(typeName) }
func (snakeCase) ColumnName(member string) string { return ToSnake(member) }

func (snakeCase) ForeignKeyColumn(member string) string {
	return ToSnake(member) + idSuffix
}

func (snakeCase) KeyColumn(owner string) string {
	return ToSnake(owner) + idSuffix
}

type lowerCase struct{}

// A Caser is stateful, so each call builds its own.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

func (lowerCase) TableName(typeName string) string { return lower(typeName) }
func (lowerCase) ColumnName(member string) string { return lower(member) }
func (lowerCase) ForeignKeyColumn(member string) string { return lower(member) + idSuffix }
func (lowerCase) KeyColumn(owner string) string { return lower(owner) + idSuffix }

// ToSnake converts an identifier to snake_case: "OrderItemID" -> "order_item_id".
func ToSnake(s string) string {
	tokens := Tokenize(s)
	for i, t := range tokens {
		tokens[i] = strings.ToLower(t)
	}

	return strings.Join(tokens, "_")
}
