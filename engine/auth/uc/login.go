package uc

import (
	"context"

	"github.com/integraph/integraph/engine/auth"
	"github.com/integraph/integraph/engine/core"
	"github.com/integraph/integraph/pkg/logger"
)

// LoginInput carries the submitted credentials.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginOutput carries the issued bearer token.
type LoginOutput struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login checks the credentials and issues a token. Unknown users and wrong
// passwords are indistinguishable to the caller.
type Login struct {
	repo   auth.Repository
	tokens *auth.TokenManager
	input  *LoginInput
}

func NewLogin(repo auth.Repository, tokens *auth.TokenManager, input *LoginInput) *Login {
	return &Login{repo: repo, tokens: tokens, input: input}
}

func (uc *Login) Execute(ctx context.Context) (*LoginOutput, error) {
	user, err := uc.repo.GetByUsername(ctx, uc.input.Username)
	if err != nil || !user.CheckPassword(uc.input.Password) {
		logger.FromContext(ctx).Warn("login rejected", "username", uc.input.Username)
		return nil, core.Invalidf("auth", "incorrect username or password")
	}
	token, err := uc.tokens.Issue(user.Username)
	if err != nil {
		return nil, core.StorageFailure("auth", err)
	}
	logger.FromContext(ctx).Info("login succeeded", "username", user.Username)
	return &LoginOutput{AccessToken: token, TokenType: "bearer"}, nil
}
