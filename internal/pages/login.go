package pages

import (
	"context"
	"errors"
	"strings"

	"github.com/MrJinPro/SVOD/internal/auth"
	"github.com/MrJinPro/SVOD/internal/client"
	"github.com/MrJinPro/SVOD/pkg/models"
)

type LoginMode int

const (
	ModeLogin LoginMode = iota
	ModeRegister
)

// ErrMissingCredentials is returned without contacting the server.
var ErrMissingCredentials = errors.New("username and password are required")

// LoginPage signs in or registers and stores the issued token. A failed
// attempt leaves the token store untouched.
type LoginPage struct {
	Mode     LoginMode
	Username string
	Password string
	Email    string

	client *client.SvodClient
	tokens auth.TokenStore
}

func NewLoginPage(c *client.SvodClient, tokens auth.TokenStore) *LoginPage {
	return &LoginPage{client: c, tokens: tokens}
}

func (p *LoginPage) ToggleMode() {
	if p.Mode == ModeLogin {
		p.Mode = ModeRegister
	} else {
		p.Mode = ModeLogin
	}
}

func (p *LoginPage) Submit(ctx context.Context) (models.TokenResponse, error) {
	username := strings.TrimSpace(p.Username)
	if username == "" || p.Password == "" {
		return models.TokenResponse{}, ErrMissingCredentials
	}

	var (
		res models.TokenResponse
		err error
	)
	if p.Mode == ModeRegister {
		res, err = p.client.Register(ctx, models.RegisterRequest{
			Username: username,
			Password: p.Password,
			Email:    strings.TrimSpace(p.Email),
		})
	} else {
		res, err = p.client.Login(ctx, username, p.Password)
	}
	if err != nil {
		return res, err
	}

	p.tokens.Set(res.AccessToken)
	return res, nil
}

// Title is the heading of the error or success notice for the current mode.
func (p *LoginPage) Title(failed bool) string {
	switch {
	case p.Mode == ModeLogin && failed:
		return "Ошибка входа"
	case p.Mode == ModeLogin:
		return "Вход выполнен"
	case failed:
		return "Ошибка регистрации"
	default:
		return "Регистрация выполнена"
	}
}

// Logout forgets the stored token.
func Logout(tokens auth.TokenStore) {
	tokens.Clear()
}
