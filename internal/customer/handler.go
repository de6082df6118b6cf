package customer

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/0x0FACED/northwind/internal/pkg/httpcommon"
	"github.com/0x0FACED/zlog"
	"github.com/lib/pq"
)

// unique_violation
const pqUniqueViolation = "23505"

// width of customers.customer_id
const maxCustomerIDLen = 5

type CustomerHandler struct {
	repository *Repository
	log        *zlog.ZerologLogger
}

func NewCustomerHandler(repository *Repository, log *zlog.ZerologLogger) *CustomerHandler {
	return &CustomerHandler{
		repository: repository,
		log:        log,
	}
}

func (h *CustomerHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /customers", h.List)
	mux.HandleFunc("POST /customers", h.Create)
	mux.HandleFunc("GET /customers/{id}", h.Get)
	mux.HandleFunc("HEAD /customers/{id}", h.Exist)
	mux.HandleFunc("PUT /customers/{id}", h.Update)
	mux.HandleFunc("DELETE /customers/{id}", h.Delete)
}

func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var c Customer
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		httpcommon.JSONError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	if c.CustomerID == "" || c.CompanyName == "" {
		httpcommon.JSONError(w, http.StatusBadRequest, errors.New("customerId and companyName are required"))
		return
	}
	if utf8.RuneCountInString(c.CustomerID) > maxCustomerIDLen {
		httpcommon.JSONError(w, http.StatusBadRequest, fmt.Errorf("customerId must be at most %d characters", maxCustomerIDLen))
		return
	}

	created, err := h.repository.Add(r.Context(), c)
	if err != nil {
		h.writeError(w, err)
		return
	}

	httpcommon.JSONResponse(w, http.StatusCreated, created)
}

func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httpcommon.JSONError(w, http.StatusBadRequest, errors.New("invalid request"))
		return
	}

	c, err := h.repository.Find(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if c == nil {
		httpcommon.EmptyResponse(w, http.StatusNotFound)
		return
	}

	httpcommon.JSONResponse(w, http.StatusOK, c)
}

func (h *CustomerHandler) Exist(w http.ResponseWriter, r *http.Request) {
	exists, err := h.repository.Exist(r.Context(), r.PathValue("id"))
	if err != nil {
		h.log.Error().Err(err).Msg("[Customer] request failed")
		httpcommon.EmptyResponse(w, http.StatusInternalServerError)
		return
	}

	if !exists {
		httpcommon.EmptyResponse(w, http.StatusNotFound)
		return
	}

	httpcommon.EmptyResponse(w, http.StatusOK)
}

// List returns one page when page or size is given and streams every
// customer otherwise.
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	params, paged, err := ParsePagination(r.URL.Query())
	if err != nil {
		httpcommon.JSONError(w, http.StatusBadRequest, err)
		return
	}

	if paged {
		customers, err := h.repository.GetCustomersPage(r.Context(), params)
		if err != nil {
			h.writeError(w, err)
			return
		}

		httpcommon.JSONResponse(w, http.StatusOK, customers)
		return
	}

	h.stream(w, r)
}

func (h *CustomerHandler) stream(w http.ResponseWriter, r *http.Request) {
	enc := json.NewEncoder(w)
	started := false

	for c, err := range h.repository.GetAll(r.Context()) {
		if err != nil {
			if !started {
				h.writeError(w, err)
				return
			}
			// status is already sent, the client sees a truncated array
			h.log.Error().Err(err).Msg("[Customer] listing aborted")
			return
		}

		if !started {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("["))
			started = true
		} else {
			_, _ = w.Write([]byte(","))
		}

		if err := enc.Encode(c); err != nil {
			h.log.Error().Err(err).Msg("[Customer] listing aborted")
			return
		}
	}

	if !started {
		httpcommon.JSONResponse(w, http.StatusOK, []Customer{})
		return
	}

	_, _ = w.Write([]byte("]"))
}

func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	var c Customer
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		httpcommon.JSONError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	id := r.PathValue("id")
	if c.CustomerID == "" {
		c.CustomerID = id
	}
	if c.CustomerID != id {
		httpcommon.JSONError(w, http.StatusBadRequest, errors.New("customer id does not match path"))
		return
	}

	updated, err := h.repository.Update(r.Context(), c)
	if err != nil {
		h.writeError(w, err)
		return
	}

	httpcommon.JSONResponse(w, http.StatusOK, updated)
}

func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httpcommon.JSONError(w, http.StatusBadRequest, errors.New("invalid request"))
		return
	}

	removed, err := h.repository.Remove(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	httpcommon.JSONResponse(w, http.StatusOK, removed)
}

func (h *CustomerHandler) writeError(w http.ResponseWriter, err error) {
	var pqErr *pq.Error

	switch {
	case errors.Is(err, ErrCustomerNotFound):
		httpcommon.JSONError(w, http.StatusNotFound, err)
	case errors.Is(err, ErrMultipleCustomers):
		httpcommon.JSONError(w, http.StatusConflict, err)
	case errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation:
		httpcommon.JSONError(w, http.StatusConflict, errors.New("customer already exists"))
	default:
		h.log.Error().Err(err).Msg("[Customer] request failed")
		httpcommon.JSONError(w, http.StatusInternalServerError, err)
	}
}
