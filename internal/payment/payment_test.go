package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestRegistryResolve(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	provider := NewMockProvider(ctrl)
	provider.EXPECT().Name().Return("yoco")

	registry := NewRegistry(provider)

	resolved, err := registry.Resolve("yoco")
	assert.NoError(t, err)
	assert.Equal(t, provider, resolved)

	_, err = registry.Resolve("paypal")
	assert.ErrorIs(t, err, ErrUnknownProvider)

	assert.Equal(t, []string{"yoco"}, registry.Names())
}
