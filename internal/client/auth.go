package client

import (
	"context"

	"github.com/MrJinPro/SVOD/pkg/models"
)

// Login exchanges credentials for an access token. The token is not stored here.
func (c *SvodClient) Login(ctx context.Context, username, password string) (models.TokenResponse, error) {
	var res models.TokenResponse
	err := c.Post(ctx, PathAuthLogin, models.LoginRequest{Username: username, Password: password}, &res)
	return res, err
}

func (c *SvodClient) Register(ctx context.Context, req models.RegisterRequest) (models.TokenResponse, error) {
	var res models.TokenResponse
	err := c.Post(ctx, PathAuthRegister, req, &res)
	return res, err
}

// Me returns the principal the current token belongs to.
func (c *SvodClient) Me(ctx context.Context) (models.User, error) {
	var me models.User
	err := c.Get(ctx, PathAuthMe, &me)
	return me, err
}
