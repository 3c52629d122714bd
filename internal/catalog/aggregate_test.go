package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/partsdesk/partsdesk/internal/platform/rest"
)

func newTestService(t *testing.T, handler http.Handler) (*Service, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := rest.NewClient(server.URL, 5*time.Second, nil, nil, nil)
	return NewService(client, nil), server
}

func catalogBackend(t *testing.T) *http.ServeMux {
	t.Helper()
	mux := http.NewServeMux()
	// Mixed identifier casing on purpose; the backend is not consistent.
	mux.HandleFunc("GET /Categories", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"Id":1,"Name":"Brakes"},{"id":2,"name":"Filters"}]`))
	})
	mux.HandleFunc("GET /ProductTypes/1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"ID":5,"name":"Discs"},{"id":6,"name":"Pads"}]`))
	})
	mux.HandleFunc("GET /ProductTypes/2", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":7,"name":"Oil Filters"}]`))
	})
	mux.HandleFunc("GET /Products/5", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":9,"name":"Front Disc","stock":4,"carModel":"Golf"}]`))
	})
	mux.HandleFunc("GET /Products/6", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	mux.HandleFunc("GET /Products/7", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":11,"name":"OF-220","stock":12,"carModel":""}]`))
	})
	return mux
}

func TestAllProductTypesMergesInCategoryOrder(t *testing.T) {
	svc, _ := newTestService(t, catalogBackend(t))

	kinds, statuses, err := svc.AllProductTypes(context.Background())
	require.NoError(t, err)
	require.Len(t, kinds, 3)

	require.Equal(t, int64(5), kinds[0].ID)
	require.Equal(t, int64(1), kinds[0].CategoryID)
	require.Equal(t, int64(6), kinds[1].ID)
	require.Equal(t, int64(1), kinds[1].CategoryID)
	require.Equal(t, int64(7), kinds[2].ID)
	require.Equal(t, int64(2), kinds[2].CategoryID)

	require.Len(t, statuses, 2)
	require.Equal(t, FetchOK, statuses[0].State)
	require.Equal(t, FetchOK, statuses[1].State)
}

func TestAllProductsStampsBothParentIDs(t *testing.T) {
	svc, _ := newTestService(t, catalogBackend(t))

	products, statuses, err := svc.AllProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)

	front := products[0]
	require.Equal(t, int64(9), front.ID)
	require.Equal(t, int64(5), front.ProductTypeID)
	require.Equal(t, int64(1), front.CategoryID)

	filter := products[1]
	require.Equal(t, int64(11), filter.ID)
	require.Equal(t, int64(7), filter.ProductTypeID)
	require.Equal(t, int64(2), filter.CategoryID)

	require.Len(t, statuses, 3)
	require.Equal(t, FetchEmpty, statuses[1].State)
}

func TestAllProductTypesIsolatesFailingCategory(t *testing.T) {
	mux := catalogBackend(t)
	// Shadow category 2 with a hard failure.
	failing := http.NewServeMux()
	failing.HandleFunc("GET /ProductTypes/2", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend down", http.StatusInternalServerError)
	})
	failing.Handle("/", mux)

	svc, _ := newTestService(t, failing)

	kinds, statuses, err := svc.AllProductTypes(context.Background())
	require.NoError(t, err)

	// Category 1's children survive; category 2 contributes nothing.
	require.Len(t, kinds, 2)
	require.Equal(t, int64(5), kinds[0].ID)
	require.Equal(t, int64(6), kinds[1].ID)

	require.Equal(t, FetchOK, statuses[0].State)
	require.Equal(t, FetchFailed, statuses[1].State)
	require.Equal(t, int64(2), statuses[1].ParentID)
	require.ErrorIs(t, statuses[1].Err, rest.ErrUpstream)
}

func TestAllProductTypesFailsWhenCategoriesFail(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /Categories", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	})
	svc, _ := newTestService(t, mux)

	_, _, err := svc.AllProductTypes(context.Background())
	require.ErrorIs(t, err, rest.ErrUpstream)
}

func TestAllProductTypesEmptyRootSkipsChildFetches(t *testing.T) {
	var childCalls atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("GET /Categories", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		childCalls.Add(1)
		w.Write([]byte(`[]`))
	})
	svc, _ := newTestService(t, mux)

	kinds, statuses, err := svc.AllProductTypes(context.Background())
	require.NoError(t, err)
	require.Empty(t, kinds)
	require.Empty(t, statuses)
	require.Zero(t, childCalls.Load())
}

func TestAllCarsStampsProductID(t *testing.T) {
	mux := catalogBackend(t)
	cars := http.NewServeMux()
	cars.HandleFunc("GET /Cars/9", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":21,"make":"VW","model":"Golf","year":2019}]`))
	})
	cars.HandleFunc("GET /Cars/11", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	cars.Handle("/", mux)

	svc, _ := newTestService(t, cars)

	got, statuses, err := svc.AllCars(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, int64(21), got[0].ID)
	require.Equal(t, int64(9), got[0].ProductID)

	require.Len(t, statuses, 2)
	require.Equal(t, FetchOK, statuses[0].State)
	require.Equal(t, FetchEmpty, statuses[1].State)
}
