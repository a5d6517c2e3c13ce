package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/ashidadhich33-source/MY-erp-sub000/transport"
)

var (
	bindingCustomersList   = Binding{Name: "customers.list", Method: "GET", Path: "/customers"}
	bindingCustomersGet    = Binding{Name: "customers.get", Method: "GET", Path: "/customers/{id}"}
	bindingCustomersCreate = Binding{Name: "customers.create", Method: "POST", Path: "/customers"}
	bindingCustomersUpdate = Binding{Name: "customers.update", Method: "PUT", Path: "/customers/{id}"}
	bindingCustomersDelete = Binding{Name: "customers.delete", Method: "DELETE", Path: "/customers/{id}"}
)

var customersBindings = []Binding{
	bindingCustomersList,
	bindingCustomersGet,
	bindingCustomersCreate,
	bindingCustomersUpdate,
	bindingCustomersDelete,
}

// CustomersGroup covers the /customers endpoints.
type CustomersGroup struct {
	t *transport.Client
}

// Customer is a loyalty program member.
type Customer struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone,omitempty"`
	LoyaltyPoints int    `json:"loyalty_points"`
	Tier          string `json:"tier,omitempty"`
}

// CustomerPage is the paginated list envelope.
type CustomerPage struct {
	Data  []Customer `json:"data"`
	Total int        `json:"total"`
	Page  int        `json:"page"`
	Limit int        `json:"limit"`
}

// CustomerListParams filters and paginates List. Zero values are omitted.
type CustomerListParams struct {
	Skip   int
	Limit  int
	Search string
}

func (p CustomerListParams) query() url.Values {
	q := url.Values{}
	if p.Skip > 0 {
		q.Set("skip", strconv.Itoa(p.Skip))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	return q
}

// CustomerInput is the create/update payload. Semantic validation is the
// server's responsibility.
type CustomerInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// List returns a page of customers.
func (g *CustomersGroup) List(ctx context.Context, params CustomerListParams) (CustomerPage, error) {
	return call[CustomerPage](ctx, g.t, bindingCustomersList, nil, params.query(), nil)
}

// Get returns one customer by ID.
func (g *CustomersGroup) Get(ctx context.Context, id int64) (Customer, error) {
	return call[Customer](ctx, g.t, bindingCustomersGet, pathID(id), nil, nil)
}

// Create adds a customer.
func (g *CustomersGroup) Create(ctx context.Context, input CustomerInput) (Customer, error) {
	return call[Customer](ctx, g.t, bindingCustomersCreate, nil, nil, input)
}

// Update replaces a customer's details.
func (g *CustomersGroup) Update(ctx context.Context, id int64, input CustomerInput) (Customer, error) {
	return call[Customer](ctx, g.t, bindingCustomersUpdate, pathID(id), nil, input)
}

// Delete removes a customer.
func (g *CustomersGroup) Delete(ctx context.Context, id int64) error {
	_, err := call[struct{}](ctx, g.t, bindingCustomersDelete, pathID(id), nil, nil)
	return err
}

func pathID(id int64) map[string]string {
	return map[string]string{"id": strconv.FormatInt(id, 10)}
}
