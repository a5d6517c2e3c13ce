package api

import (
	"context"

	"github.com/ashidadhich33-source/MY-erp-sub000/transport"
)

var (
	bindingUsersList           = Binding{Name: "users.list", Method: "GET", Path: "/users"}
	bindingUsersGet            = Binding{Name: "users.get", Method: "GET", Path: "/users/{id}"}
	bindingUsersUpdate         = Binding{Name: "users.update", Method: "PUT", Path: "/users/{id}"}
	bindingUsersDelete         = Binding{Name: "users.delete", Method: "DELETE", Path: "/users/{id}"}
	bindingUsersChangePassword = Binding{Name: "users.change_password", Method: "POST", Path: "/users/change-password"}
)

var usersBindings = []Binding{
	bindingUsersList,
	bindingUsersGet,
	bindingUsersUpdate,
	bindingUsersDelete,
	bindingUsersChangePassword,
}

// UsersGroup covers the admin-facing /users endpoints.
type UsersGroup struct {
	t *transport.Client
}

// UserUpdate is the PUT payload; empty fields are left unchanged.
type UserUpdate struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role,omitempty"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// List returns all users. Admin only; a non-admin token gets Forbidden.
func (g *UsersGroup) List(ctx context.Context) ([]User, error) {
	return call[[]User](ctx, g.t, bindingUsersList, nil, nil, nil)
}

// Get returns one user by ID.
func (g *UsersGroup) Get(ctx context.Context, id int64) (User, error) {
	return call[User](ctx, g.t, bindingUsersGet, pathID(id), nil, nil)
}

// Update modifies a user.
func (g *UsersGroup) Update(ctx context.Context, id int64, update UserUpdate) (User, error) {
	return call[User](ctx, g.t, bindingUsersUpdate, pathID(id), nil, update)
}

// Delete removes a user.
func (g *UsersGroup) Delete(ctx context.Context, id int64) error {
	_, err := call[struct{}](ctx, g.t, bindingUsersDelete, pathID(id), nil, nil)
	return err
}

// ChangePassword changes the calling user's password.
func (g *UsersGroup) ChangePassword(ctx context.Context, current, updated string) error {
	_, err := call[struct{}](ctx, g.t, bindingUsersChangePassword, nil, nil, changePasswordRequest{
		CurrentPassword: current,
		NewPassword:     updated,
	})
	return err
}
