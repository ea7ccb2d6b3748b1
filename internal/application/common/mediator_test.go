package common_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielp299/ogamecloneapp-sub000/internal/application/common"
)

type pingRequest struct {
	Value string
}

type pongResponse struct {
	Value string
}

type pingHandler struct {
	fail bool
}

func (h *pingHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	if h.fail {
		return nil, errors.New("handler failed")
	}
	req := request.(*pingRequest)
	return &pongResponse{Value: req.Value}, nil
}

func TestMediator_SendRoutesByRequestType(t *testing.T) {
	// Arrange
	m := common.NewMediator()
	require.NoError(t, common.RegisterHandler[*pingRequest](m, &pingHandler{}))

	// Act
	resp, err := m.Send(context.Background(), &pingRequest{Value: "hello"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "hello", resp.(*pongResponse).Value)
}

func TestMediator_UnregisteredRequestFails(t *testing.T) {
	// Arrange
	m := common.NewMediator()

	// Act
	_, err := m.Send(context.Background(), &pingRequest{})

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no handler registered")
}

func TestMediator_NilRequestFails(t *testing.T) {
	// Arrange
	m := common.NewMediator()

	// Act
	_, err := m.Send(context.Background(), nil)

	// Assert
	require.Error(t, err)
}

func TestMediator_DoubleRegistrationFails(t *testing.T) {
	// Arrange
	m := common.NewMediator()
	require.NoError(t, common.RegisterHandler[*pingRequest](m, &pingHandler{}))

	// Act
	err := common.RegisterHandler[*pingRequest](m, &pingHandler{})

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestMediator_NilHandlerFails(t *testing.T) {
	// Arrange
	m := common.NewMediator()

	// Act
	err := m.Register(reflect.TypeOf(&pingRequest{}), nil)

	// Assert
	require.Error(t, err)
}

func TestMediator_HandlerErrorsPropagate(t *testing.T) {
	// Arrange
	m := common.NewMediator()
	require.NoError(t, common.RegisterHandler[*pingRequest](m, &pingHandler{fail: true}))

	// Act
	_, err := m.Send(context.Background(), &pingRequest{})

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "handler failed")
}
