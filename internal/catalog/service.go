package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/partsdesk/partsdesk/internal/platform/rest"
)

// Service exposes the catalog accessors. Category and product-type
// create/update send the name as a bare JSON string; the backend rejects
// object-shaped payloads for those with a 400.
type Service struct {
	api      *rest.Client
	logger   *slog.Logger
	validate *validator.Validate
}

// NewService constructs a Service.
func NewService(api *rest.Client, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{api: api, logger: logger, validate: validator.New()}
}

// Categories lists all categories.
func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := s.api.Get(ctx, "/Categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateCategory creates a category from its bare name.
func (s *Service) CreateCategory(ctx context.Context, name string) error {
	if name == "" {
		return rest.Validationf("category name is required")
	}
	return s.api.Post(ctx, "/Categories", name, nil)
}

// UpdateCategory renames a category.
func (s *Service) UpdateCategory(ctx context.Context, id int64, name string) error {
	if id <= 0 {
		return rest.Validationf("missing category id")
	}
	if name == "" {
		return rest.Validationf("category name is required")
	}
	return s.api.Put(ctx, fmt.Sprintf("/Categories/%d", id), name, nil)
}

// DeleteCategory removes a category.
func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	if id <= 0 {
		return rest.Validationf("missing category id")
	}
	return s.api.Delete(ctx, fmt.Sprintf("/Categories/%d", id))
}

// ProductTypesByCategory lists a category's product types, stamping the
// parent id onto every child before returning them. Downstream category
// filtering depends on the stamp.
func (s *Service) ProductTypesByCategory(ctx context.Context, categoryID int64) ([]ProductType, error) {
	if categoryID <= 0 {
		return nil, rest.Validationf("missing category id")
	}
	var kinds []ProductType
	if err := s.api.Get(ctx, fmt.Sprintf("/ProductTypes/%d", categoryID), &kinds); err != nil {
		return nil, err
	}
	for i := range kinds {
		kinds[i].CategoryID = categoryID
	}
	return kinds, nil
}

// CreateProductType creates a product type under a category from its
// bare name.
func (s *Service) CreateProductType(ctx context.Context, categoryID int64, name string) error {
	if categoryID <= 0 {
		return rest.Validationf("missing category id")
	}
	if name == "" {
		return rest.Validationf("product type name is required")
	}
	return s.api.Post(ctx, fmt.Sprintf("/ProductTypes/%d", categoryID), name, nil)
}

// UpdateProductType renames a product type.
func (s *Service) UpdateProductType(ctx context.Context, typeID int64, name string) error {
	if typeID <= 0 {
		return rest.Validationf("missing product type id")
	}
	if name == "" {
		return rest.Validationf("product type name is required")
	}
	return s.api.Put(ctx, fmt.Sprintf("/ProductTypes/%d", typeID), name, nil)
}

// DeleteProductType removes a product type.
func (s *Service) DeleteProductType(ctx context.Context, typeID int64) error {
	if typeID <= 0 {
		return rest.Validationf("missing product type id")
	}
	return s.api.Delete(ctx, fmt.Sprintf("/ProductTypes/%d", typeID))
}

// ProductsByType lists a product type's products with the parent id
// stamped. The category id is only known when aggregating, since the
// flat call has no category in scope.
func (s *Service) ProductsByType(ctx context.Context, typeID int64) ([]Product, error) {
	if typeID <= 0 {
		return nil, rest.Validationf("missing product type id")
	}
	var products []Product
	if err := s.api.Get(ctx, fmt.Sprintf("/Products/%d", typeID), &products); err != nil {
		return nil, err
	}
	for i := range products {
		products[i].ProductTypeID = typeID
	}
	return products, nil
}

// CreateProduct creates a product under a product type.
func (s *Service) CreateProduct(ctx context.Context, typeID int64, input ProductInput) error {
	if typeID <= 0 {
		return rest.Validationf("missing product type id")
	}
	if err := s.validate.Struct(input); err != nil {
		return rest.Validationf(err.Error())
	}
	return s.api.Post(ctx, fmt.Sprintf("/Products/%d", typeID), input, nil)
}

// UpdateProduct updates a product in place.
func (s *Service) UpdateProduct(ctx context.Context, id int64, input ProductInput) error {
	if id <= 0 {
		return rest.Validationf("missing product id")
	}
	if err := s.validate.Struct(input); err != nil {
		return rest.Validationf(err.Error())
	}
	return s.api.Put(ctx, fmt.Sprintf("/Products/%d", id), input, nil)
}

// DeleteProduct removes a product.
func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	if id <= 0 {
		return rest.Validationf("missing product id")
	}
	return s.api.Delete(ctx, fmt.Sprintf("/Products/%d", id))
}

// CarsByProduct lists the cars recorded against a product.
func (s *Service) CarsByProduct(ctx context.Context, productID int64) ([]Car, error) {
	if productID <= 0 {
		return nil, rest.Validationf("missing product id")
	}
	var cars []Car
	if err := s.api.Get(ctx, fmt.Sprintf("/Cars/%d", productID), &cars); err != nil {
		return nil, err
	}
	for i := range cars {
		cars[i].ProductID = productID
	}
	return cars, nil
}
