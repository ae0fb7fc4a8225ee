package models

// Category classifies a transaction's spending type. Closed set; request
// validation must reject anything outside it.
type Category string

const (
	CategoryFood          Category = "FOOD"
	CategoryEntertainment Category = "ENTERTAINMENT"
	CategoryTransport     Category = "TRANSPORT"
	CategoryShopping      Category = "SHOPPING"
	CategoryUtilities     Category = "UTILITIES"
	CategoryOther         Category = "OTHER"
)

// Categories lists every valid category in declaration order.
var Categories = []Category{
	CategoryFood,
	CategoryEntertainment,
	CategoryTransport,
	CategoryShopping,
	CategoryUtilities,
	CategoryOther,
}

func (c Category) Valid() bool {
	switch c {
	case CategoryFood, CategoryEntertainment, CategoryTransport,
		CategoryShopping, CategoryUtilities, CategoryOther:
		return true
	}
	return false
}

// TransactionType distinguishes how a transaction was made.
type TransactionType string

const (
	TransactionOnline  TransactionType = "ONLINE"
	TransactionOffline TransactionType = "OFFLINE"
)

func (t TransactionType) Valid() bool {
	return t == TransactionOnline || t == TransactionOffline
}
