package client

import (
	"context"
	"fmt"

	"github.com/MrJinPro/SVOD/pkg/models"
)

// GetUsers lists all accounts (admin only).
func (c *SvodClient) GetUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.Get(ctx, PathUsers, &users); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// CreateUser registers a new account. Role defaults to operator server-side.
func (c *SvodClient) CreateUser(ctx context.Context, req models.CreateUserRequest) (models.User, error) {
	var user models.User
	if err := c.Post(ctx, PathUsers, req, &user); err != nil {
		return user, err
	}
	return user, nil
}

// UpdateUser patches only the non-nil fields of req.
func (c *SvodClient) UpdateUser(ctx context.Context, id string, req models.UpdateUserRequest) (models.User, error) {
	var user models.User
	if err := c.Patch(ctx, UserPath(id), req, &user); err != nil {
		return user, err
	}
	return user, nil
}

func (c *SvodClient) SetUserPassword(ctx context.Context, id, password string) (models.SetPasswordResult, error) {
	var res models.SetPasswordResult
	err := c.Post(ctx, UserPasswordPath(id), models.SetPasswordRequest{Password: password}, &res)
	return res, err
}
