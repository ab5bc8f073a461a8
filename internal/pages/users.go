package pages

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MrJinPro/SVOD/internal/client"
	"github.com/MrJinPro/SVOD/internal/fetch"
	"github.com/MrJinPro/SVOD/pkg/models"
)

var (
	ErrUsernameRequired = errors.New("Username is required")
	ErrPasswordRequired = errors.New("Password is required")
)

// UsersPage manages accounts. Every successful mutation refetches the list;
// nothing is patched locally.
type UsersPage struct {
	client *client.SvodClient
	res    *fetch.Resource[[]models.User]
}

func NewUsersPage(ctx context.Context, c *client.SvodClient, opts ...fetch.Option) *UsersPage {
	get := func(ctx context.Context, _ string) ([]models.User, error) {
		return c.GetUsers(ctx)
	}
	return &UsersPage{
		client: c,
		res:    fetch.Use(ctx, get, client.PathUsers, []models.User{}, opts...),
	}
}

// Create adds an account. An empty role becomes operator.
func (p *UsersPage) Create(ctx context.Context, req models.CreateUserRequest) (models.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" {
		return models.User{}, ErrUsernameRequired
	}
	if req.Password == "" {
		return models.User{}, ErrPasswordRequired
	}
	if req.Role == "" {
		req.Role = models.RoleOperator
	}
	if !models.ValidRole(req.Role) {
		return models.User{}, fmt.Errorf("unknown role %q", req.Role)
	}

	user, err := p.client.CreateUser(ctx, req)
	if err != nil {
		return user, err
	}
	p.res.Refetch()
	return user, nil
}

func (p *UsersPage) Update(ctx context.Context, id string, req models.UpdateUserRequest) (models.User, error) {
	if req.Role != nil && !models.ValidRole(*req.Role) {
		return models.User{}, fmt.Errorf("unknown role %q", *req.Role)
	}
	user, err := p.client.UpdateUser(ctx, id, req)
	if err != nil {
		return user, err
	}
	p.res.Refetch()
	return user, nil
}

func (p *UsersPage) SetPassword(ctx context.Context, id, password string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	if _, err := p.client.SetUserPassword(ctx, id, password); err != nil {
		return err
	}
	p.res.Refetch()
	return nil
}

// ToggleActive flips the isActive flag of u as last fetched.
func (p *UsersPage) ToggleActive(ctx context.Context, u models.User) (models.User, error) {
	active := !u.IsActive
	return p.Update(ctx, u.ID, models.UpdateUserRequest{IsActive: &active})
}

// Find looks a user up in the last fetched list by id or username.
func (p *UsersPage) Find(key string) (models.User, bool) {
	for _, u := range p.State().Data {
		if u.ID == key || u.Username == key {
			return u, true
		}
	}
	return models.User{}, false
}

func (p *UsersPage) Refetch() { p.res.Refetch() }

func (p *UsersPage) State() fetch.State[[]models.User] {
	return p.res.Snapshot()
}

func (p *UsersPage) Wait()  { p.res.Wait() }
func (p *UsersPage) Close() { p.res.Close() }
