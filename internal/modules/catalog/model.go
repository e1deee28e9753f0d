package catalog

// Store is a seller storefront. Products reference it by StoreID.
type Store struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Address     string `json:"address,omitempty"`
	IsOpen      bool   `json:"isOpen"`
}

// Product is a stocked item owned by exactly one store.
// Stock never goes below zero; every decrement checks first.
type Product struct {
	ID      string  `json:"id"`
	StoreID string  `json:"storeId"`
	Name    string  `json:"name"`
	Price   float64 `json:"price"`
	Stock   int     `json:"stock"`
}

// StoreWithProducts is the public view of a store and its catalog.
type StoreWithProducts struct {
	Store
	Products []*Product `json:"products"`
}

// Availability answers a stock query for one product.
type Availability struct {
	ProductID string `json:"productId"`
	Stock     int    `json:"stock"`
	Available bool   `json:"available"`
}

// Line is one {product, qty} pair of a reservation request.
type Line struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

// PriceSnapshot is the per-line price captured when a reservation commits.
// Later price changes on the product never alter it.
type PriceSnapshot struct {
	ProductID string
	Qty       int
	Price     float64
}

// CreateStoreRequest holds data for registering a store. ID may be
// pre-assigned by a caller that has already bound a credential to it.
type CreateStoreRequest struct {
	ID          string `json:"-"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Address     string `json:"address"`
}

// CreateProductRequest holds data for listing a product in a store.
type CreateProductRequest struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}
