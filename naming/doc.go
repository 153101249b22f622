// Package naming provides the naming conventions applied when builders leave
// table and column names unset, plus identifier helpers shared by the
// builders (tokenizing, normalizing and near-miss suggestions for member
// names).
//
// Conventions:
//
//	Default    Order -> Order, CustomerID -> CustomerID, Customer -> Customer_id
//	SnakeCase  OrderItem -> order_item, CustomerID -> customer_id, Customer -> customer_id
//	LowerCase  OrderItem -> orderitem, Customer -> customer_id
package naming
