package application

import (
	"context"
	"testing"

	"github.com/coinshop/recharge-system/checkout-service/domain"
	"github.com/coinshop/recharge-system/checkout-service/mocks"
	"github.com/coinshop/recharge-system/shared/events"
	"github.com/coinshop/recharge-system/shared/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestStartCheckout_Execute(t *testing.T) {
	tests := []struct {
		name          string
		command       *StartCheckoutCommand
		setupMocks    func(*mocks.MockCheckoutRepository, *mocks.MockPublisher)
		expectedError string
	}{
		{
			name:    "successful checkout start",
			command: &StartCheckoutCommand{},
			setupMocks: func(repo *mocks.MockCheckoutRepository, publisher *mocks.MockPublisher) {
				repo.EXPECT().Save(mock.Anything, mock.MatchedBy(func(c *domain.Checkout) bool {
					return c.Phase == domain.PhaseCatalog && c.Vault.Len() == 1
				})).Return(nil).Once()
				publisher.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(evt *events.Event) bool {
					return evt.Topic == events.CheckoutStartedEvent
				})).Return(nil).Once()
			},
			expectedError: "",
		},
		{
			name:    "recipient handle is normalized",
			command: &StartCheckoutCommand{RecipientHandle: "@someuser"},
			setupMocks: func(repo *mocks.MockCheckoutRepository, publisher *mocks.MockPublisher) {
				repo.EXPECT().Save(mock.Anything, mock.MatchedBy(func(c *domain.Checkout) bool {
					return c.RecipientHandle == "someuser"
				})).Return(nil).Once()
				publisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil).Once()
			},
			expectedError: "",
		},
		{
			name:    "repository save error",
			command: &StartCheckoutCommand{},
			setupMocks: func(repo *mocks.MockCheckoutRepository, publisher *mocks.MockPublisher) {
				repo.EXPECT().Save(mock.Anything, mock.Anything).
					Return(errors.New("store full")).Once()
			},
			expectedError: "failed to save checkout",
		},
		{
			name:    "event publisher error",
			command: &StartCheckoutCommand{},
			setupMocks: func(repo *mocks.MockCheckoutRepository, publisher *mocks.MockPublisher) {
				repo.EXPECT().Save(mock.Anything, mock.Anything).Return(nil).Once()
				publisher.EXPECT().Publish(mock.Anything, mock.Anything).
					Return(errors.New("publisher down")).Once()
			},
			expectedError: "failed to publish events",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := mocks.NewMockCheckoutRepository(t)
			mockPublisher := mocks.NewMockPublisher(t)

			tt.setupMocks(mockRepo, mockPublisher)

			useCase := NewStartCheckout(mockRepo, mockPublisher)

			result, err := useCase.Execute(context.Background(), tt.command)

			if tt.expectedError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, result)
				assert.NotEmpty(t, result.CheckoutID)

				_, err := models.NewID(result.CheckoutID)
				assert.NoError(t, err)
			}
		})
	}
}
