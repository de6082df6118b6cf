package customer_test

import (
	"encoding/json"
	"errors"
	"iter"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/0x0FACED/northwind/internal/customer"
	"github.com/0x0FACED/northwind/internal/customer/mocks"
	"github.com/0x0FACED/zlog"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupHandler(t *testing.T) (*http.ServeMux, *mocks.MockStore) {
	t.Helper()

	store := new(mocks.MockStore)
	repo := newMemoryRepo(t, store, customer.Config{InvalidateOnWrite: true})

	mux := http.NewServeMux()
	customer.NewCustomerHandler(repo, zlog.NewTestLogger()).RegisterRoutes(mux)

	return mux, store
}

func serve(mux *http.ServeMux, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Get(t *testing.T) {
	mux, store := setupHandler(t)

	c := alfki()
	store.On("Get", mock.Anything, "ALFKI").Return(&c, nil)
	store.On("Get", mock.Anything, "NOPE").Return(nil, nil)

	rec := serve(mux, http.MethodGet, "/customers/ALFKI", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var got customer.Customer
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, c, got)

	rec = serve(mux, http.MethodGet, "/customers/NOPE", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_Exist(t *testing.T) {
	mux, store := setupHandler(t)

	store.On("Exists", mock.Anything, "ALFKI").Return(true, nil)
	store.On("Exists", mock.Anything, "NOPE").Return(false, nil)

	assert.Equal(t, http.StatusOK, serve(mux, http.MethodHead, "/customers/ALFKI", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(mux, http.MethodHead, "/customers/NOPE", "").Code)
}

func TestHandler_ExistStoreFailure(t *testing.T) {
	mux, store := setupHandler(t)

	store.On("Exists", mock.Anything, "ALFKI").Return(false, errors.New("connection refused"))

	rec := serve(mux, http.MethodHead, "/customers/ALFKI", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, rec.Body.String())
	store.AssertExpectations(t)
}

func TestHandler_Create(t *testing.T) {
	mux, store := setupHandler(t)

	store.On("Insert", mock.Anything, mock.MatchedBy(func(c *customer.Customer) bool {
		return c.CustomerID == "ALFKI"
	})).Return(nil)
	store.On("Insert", mock.Anything, mock.MatchedBy(func(c *customer.Customer) bool {
		return c.CustomerID == "DUPLI"
	})).Return(&pq.Error{Code: "23505"})

	rec := serve(mux, http.MethodPost, "/customers", `{"customerId":"ALFKI","companyName":"Alfreds Futterkiste"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = serve(mux, http.MethodPost, "/customers", `{"customerId":"DUPLI","companyName":"Duplicate"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = serve(mux, http.MethodPost, "/customers", `{"customerId":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(mux, http.MethodPost, "/customers", `{"companyName":"No Id"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(mux, http.MethodPost, "/customers", `{"customerId":"TOOLONG","companyName":"Long Id Ltd"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "at most 5 characters")
	store.AssertNotCalled(t, "Insert", mock.Anything, mock.MatchedBy(func(c *customer.Customer) bool {
		return c.CustomerID == "TOOLONG"
	}))
}

func TestHandler_Update(t *testing.T) {
	mux, store := setupHandler(t)

	store.On("Replace", mock.Anything, mock.MatchedBy(func(c customer.Customer) bool {
		return c.CustomerID == "ALFKI"
	})).Return(nil)
	store.On("Replace", mock.Anything, mock.MatchedBy(func(c customer.Customer) bool {
		return c.CustomerID == "NOPE"
	})).Return(customer.ErrCustomerNotFound)

	rec := serve(mux, http.MethodPut, "/customers/ALFKI", `{"companyName":"Alfreds GmbH"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(mux, http.MethodPut, "/customers/NOPE", `{"companyName":"Nobody"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(mux, http.MethodPut, "/customers/ALFKI", `{"customerId":"ANATR","companyName":"Ana"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Delete(t *testing.T) {
	mux, store := setupHandler(t)

	c := alfki()
	store.On("DeleteSingle", mock.Anything, "ALFKI").Return(&c, nil)
	store.On("DeleteSingle", mock.Anything, "NOPE").Return(nil, customer.ErrCustomerNotFound)
	store.On("DeleteSingle", mock.Anything, "DUPLI").Return(nil, customer.ErrMultipleCustomers)

	assert.Equal(t, http.StatusOK, serve(mux, http.MethodDelete, "/customers/ALFKI", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(mux, http.MethodDelete, "/customers/NOPE", "").Code)
	assert.Equal(t, http.StatusConflict, serve(mux, http.MethodDelete, "/customers/DUPLI", "").Code)
}

func TestHandler_ListPage(t *testing.T) {
	mux, store := setupHandler(t)

	page := []customer.Customer{{CustomerID: "ANATR"}, {CustomerID: "ANTON"}}
	store.On("Page", mock.Anything, 2, 2).Return(page, nil)

	rec := serve(mux, http.MethodGet, "/customers?page=2&size=2", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var got []customer.Customer
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, page, got)

	rec = serve(mux, http.MethodGet, "/customers?page=x", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_ListAllStreams(t *testing.T) {
	mux, store := setupHandler(t)

	var seq iter.Seq2[customer.Customer, error] = func(yield func(customer.Customer, error) bool) {
		for _, id := range []string{"ALFKI", "ANATR", "ANTON"} {
			if !yield(customer.Customer{CustomerID: id, CompanyName: id}, nil) {
				return
			}
		}
	}
	store.On("All", mock.Anything).Return(seq)

	rec := serve(mux, http.MethodGet, "/customers", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var got []customer.Customer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 3)
	assert.Equal(t, "ANTON", got[2].CustomerID)
}

func TestHandler_ListAllEmptyAndFailing(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		mux, store := setupHandler(t)

		var seq iter.Seq2[customer.Customer, error] = func(func(customer.Customer, error) bool) {}
		store.On("All", mock.Anything).Return(seq)

		rec := serve(mux, http.MethodGet, "/customers", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("query error", func(t *testing.T) {
		mux, store := setupHandler(t)

		var seq iter.Seq2[customer.Customer, error] = func(yield func(customer.Customer, error) bool) {
			yield(customer.Customer{}, errors.New("connection refused"))
		}
		store.On("All", mock.Anything).Return(seq)

		rec := serve(mux, http.MethodGet, "/customers", "")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
