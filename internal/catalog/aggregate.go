package catalog

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// FetchState tags the outcome of one per-parent fetch, so callers can
// tell "no children" from "fetch failed" instead of conflating both as
// an empty slice.
type FetchState string

const (
	FetchOK     FetchState = "ok"
	FetchEmpty  FetchState = "empty"
	FetchFailed FetchState = "failed"
)

// FetchStatus reports the outcome for a single parent entity.
type FetchStatus struct {
	ParentID int64      `json:"parentId"`
	State    FetchState `json:"state"`
	Err      error      `json:"-"`
}

// AllProductTypes reconstructs the flat product-type collection by
// fanning out one list call per category. A failing per-parent fetch
// degrades to an empty list for that parent; only a failure to list the
// categories themselves fails the aggregation. Merge order follows
// category iteration order, then within-parent response order.
func (s *Service) AllProductTypes(ctx context.Context) ([]ProductType, []FetchStatus, error) {
	categories, err := s.Categories(ctx)
	if err != nil {
		return nil, nil, err
	}
	if len(categories) == 0 {
		return []ProductType{}, nil, nil
	}

	perParent := make([][]ProductType, len(categories))
	statuses := make([]FetchStatus, len(categories))

	var g errgroup.Group
	for i, cat := range categories {
		g.Go(func() error {
			kinds, err := s.ProductTypesByCategory(ctx, cat.ID)
			statuses[i] = statusFor(cat.ID, len(kinds), err)
			if err != nil {
				s.logger.Warn("product types fetch degraded to empty",
					"categoryId", cat.ID, "error", err)
				return nil
			}
			perParent[i] = kinds
			return nil
		})
	}
	_ = g.Wait()

	merged := make([]ProductType, 0, len(categories))
	for _, kinds := range perParent {
		merged = append(merged, kinds...)
	}
	return merged, statuses, nil
}

// AllProducts reconstructs the flat product collection by driving the
// product-type aggregation and fanning out one list call per type. Every
// product is stamped with its product-type id and, transitively, the
// grandparent category id carried by the parent.
func (s *Service) AllProducts(ctx context.Context) ([]Product, []FetchStatus, error) {
	kinds, _, err := s.AllProductTypes(ctx)
	if err != nil {
		return nil, nil, err
	}
	if len(kinds) == 0 {
		return []Product{}, nil, nil
	}

	perParent := make([][]Product, len(kinds))
	statuses := make([]FetchStatus, len(kinds))

	var g errgroup.Group
	for i, kind := range kinds {
		g.Go(func() error {
			products, err := s.ProductsByType(ctx, kind.ID)
			statuses[i] = statusFor(kind.ID, len(products), err)
			if err != nil {
				s.logger.Warn("products fetch degraded to empty",
					"productTypeId", kind.ID, "error", err)
				return nil
			}
			for j := range products {
				products[j].CategoryID = kind.CategoryID
			}
			perParent[i] = products
			return nil
		})
	}
	_ = g.Wait()

	merged := make([]Product, 0, len(kinds))
	for _, products := range perParent {
		merged = append(merged, products...)
	}
	return merged, statuses, nil
}

// AllCars reconstructs the flat car collection across every product.
func (s *Service) AllCars(ctx context.Context) ([]Car, []FetchStatus, error) {
	products, _, err := s.AllProducts(ctx)
	if err != nil {
		return nil, nil, err
	}
	if len(products) == 0 {
		return []Car{}, nil, nil
	}

	perParent := make([][]Car, len(products))
	statuses := make([]FetchStatus, len(products))

	var g errgroup.Group
	for i, product := range products {
		g.Go(func() error {
			cars, err := s.CarsByProduct(ctx, product.ID)
			statuses[i] = statusFor(product.ID, len(cars), err)
			if err != nil {
				s.logger.Warn("cars fetch degraded to empty",
					"productId", product.ID, "error", err)
				return nil
			}
			perParent[i] = cars
			return nil
		})
	}
	_ = g.Wait()

	merged := make([]Car, 0, len(products))
	for _, cars := range perParent {
		merged = append(merged, cars...)
	}
	return merged, statuses, nil
}

func statusFor(parentID int64, count int, err error) FetchStatus {
	switch {
	case err != nil:
		return FetchStatus{ParentID: parentID, State: FetchFailed, Err: err}
	case count == 0:
		return FetchStatus{ParentID: parentID, State: FetchEmpty}
	default:
		return FetchStatus{ParentID: parentID, State: FetchOK}
	}
}
