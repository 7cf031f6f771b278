package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillnotes/quill-notes-service/internal/dto"
	"github.com/quillnotes/quill-notes-service/pkg/code"
)

func TestUserRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	registered, err := env.userService.Register(ctx, &dto.UserRegisterRequest{
		Email:    "Alice@Example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.NotZero(t, registered.UID)
	assert.Equal(t, "alice@example.com", registered.Email)
	assert.Equal(t, "alice", registered.Nickname)
	assert.NotEmpty(t, registered.Token)

	logged, err := env.userService.Login(ctx, &dto.UserLoginRequest{
		Email:    "alice@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.UID, logged.UID)
	assert.NotEmpty(t, logged.Token)
}

func TestUserRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	_, err := env.userService.Register(ctx, &dto.UserRegisterRequest{Email: "bob@example.com", Password: "password"})
	require.NoError(t, err)

	_, err = env.userService.Register(ctx, &dto.UserRegisterRequest{Email: "BOB@example.com", Password: "password"})
	assert.ErrorIs(t, err, code.ErrorUserEmailExists)
}

func TestUserRegisterDisabled(t *testing.T) {
	cfg := DefaultServiceConfig()
	cfg.RegisterEnabled = false
	env := newTestEnv(t, cfg)

	_, err := env.userService.Register(context.Background(), &dto.UserRegisterRequest{
		Email:    "carol@example.com",
		Password: "password",
	})
	assert.ErrorIs(t, err, code.ErrorUserRegisterDisabled)
}

func TestUserLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	_, err := env.userService.Register(ctx, &dto.UserRegisterRequest{Email: "dave@example.com", Password: "correct"})
	require.NoError(t, err)

	_, err = env.userService.Login(ctx, &dto.UserLoginRequest{Email: "dave@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, code.ErrorUserLoginFailed)

	// 未注册邮箱返回同一错误
	_, err = env.userService.Login(ctx, &dto.UserLoginRequest{Email: "nobody@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, code.ErrorUserLoginFailed)
}

func TestUserInfo(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	registered, err := env.userService.Register(ctx, &dto.UserRegisterRequest{
		Email:    "erin@example.com",
		Password: "password",
		Nickname: "Erin",
	})
	require.NoError(t, err)

	info, err := env.userService.Info(ctx, registered.UID)
	require.NoError(t, err)
	assert.Equal(t, "erin@example.com", info.Email)
	assert.Equal(t, "Erin", info.Nickname)
	assert.Empty(t, info.Token)

	_, err = env.userService.Info(ctx, 9999)
	assert.ErrorIs(t, err, code.ErrorUserNotFound)
}
