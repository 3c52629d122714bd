// Package catalog provides the category, product-type, product and car
// accessors plus the hierarchical aggregation over them. The backend
// only exposes list-by-parent endpoints below the category level, so the
// flat collections are reconstructed here.
package catalog

// Category is the root of the catalog hierarchy.
//
// The backend is inconsistent about identifier casing (id/Id/ID);
// encoding/json matches field names case-insensitively when no exact tag
// match exists, so decoding normalises the shape once and no probing
// leaks past this package.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ProductType belongs to exactly one Category. CategoryID is stamped by
// the accessor from the parent used to fetch it; the backend does not
// return it inline.
type ProductType struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	CategoryID int64  `json:"categoryId"`
}

// Product belongs to exactly one ProductType. ProductTypeID and the
// transitive CategoryID are stamped during aggregation.
type Product struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Stock         int64  `json:"stock"`
	CarModel      string `json:"carModel"`
	ProductTypeID int64  `json:"productTypeId"`
	CategoryID    int64  `json:"categoryId"`
}

// Car is a vehicle compatibility record attached to a product. The
// accessor layer is read-only for cars, mirroring the backend surface.
type Car struct {
	ID          int64  `json:"id"`
	Make        string `json:"make"`
	Model       string `json:"model"`
	Year        int    `json:"year"`
	PlateNumber string `json:"plateNumber"`
	Color       string `json:"color"`
	Notes       string `json:"notes"`
	ProductID   int64  `json:"productId"`
}

// ProductInput is the create/update payload for products.
type ProductInput struct {
	Name     string `json:"name" validate:"required"`
	Stock    int64  `json:"stock" validate:"gte=0"`
	CarModel string `json:"carModel"`
}
