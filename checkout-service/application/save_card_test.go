package application

import (
	"context"
	"testing"

	"github.com/coinshop/recharge-system/checkout-service/domain"
	"github.com/coinshop/recharge-system/checkout-service/mocks"
	"github.com/coinshop/recharge-system/shared/events"
	"github.com/coinshop/recharge-system/shared/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSaveCard_Execute(t *testing.T) {
	tests := []struct {
		name          string
		command       *SaveCardCommand
		setupMocks    func(*mocks.MockCheckoutRepository, *mocks.MockPublisher)
		expectedError string
	}{
		{
			name: "new card is merged into the vault",
			command: &SaveCardCommand{
				CheckoutID: "550e8400-e29b-41d4-a716-446655440001",
				CardID:     models.GenerateUUID(),
				Number:     "5105105105105100",
				Name:       "NEW USER",
				Expiry:     "01/30",
			},
			setupMocks: func(repo *mocks.MockCheckoutRepository, publisher *mocks.MockPublisher) {
				checkout := domain.CreateCheckout(domain.NewPackageCatalog(), domain.SeedCard())
				checkout.ClearEvents()

				repo.EXPECT().FindByID(mock.Anything, models.ID("550e8400-e29b-41d4-a716-446655440001")).
					Return(checkout, nil).Once()
				repo.EXPECT().Save(mock.Anything, mock.MatchedBy(func(c *domain.Checkout) bool {
					return c.Vault.Len() == 2
				})).Return(nil).Once()
				publisher.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(evt *events.Event) bool {
					return evt.Topic == events.CardSavedEvent
				})).Return(nil).Once()
			},
			expectedError: "",
		},
		{
			name: "duplicate number is dropped silently",
			command: &SaveCardCommand{
				CheckoutID: "550e8400-e29b-41d4-a716-446655440001",
				CardID:     models.GenerateUUID(),
				Number:     "4242424242424242",
				Name:       "TEST USER",
				Expiry:     "12/27",
			},
			setupMocks: func(repo *mocks.MockCheckoutRepository, publisher *mocks.MockPublisher) {
				checkout := domain.CreateCheckout(domain.NewPackageCatalog(), domain.SeedCard())
				checkout.ClearEvents()

				repo.EXPECT().FindByID(mock.Anything, models.ID("550e8400-e29b-41d4-a716-446655440001")).
					Return(checkout, nil).Once()
				// No Save, no Publish: the vault did not change
			},
			expectedError: "",
		},
		{
			name: "unknown checkout",
			command: &SaveCardCommand{
				CheckoutID: "550e8400-e29b-41d4-a716-446655440099",
				CardID:     models.GenerateUUID(),
				Number:     "5105105105105100",
				Name:       "NEW USER",
				Expiry:     "01/30",
			},
			setupMocks: func(repo *mocks.MockCheckoutRepository, publisher *mocks.MockPublisher) {
				repo.EXPECT().FindByID(mock.Anything, models.ID("550e8400-e29b-41d4-a716-446655440099")).
					Return(nil, nil).Once()
			},
			expectedError: domain.ErrCheckoutClosed.Error(),
		},
		{
			name: "incomplete card details",
			command: &SaveCardCommand{
				CheckoutID: "550e8400-e29b-41d4-a716-446655440001",
				CardID:     models.GenerateUUID(),
				Number:     "5105105105105100",
			},
			setupMocks: func(repo *mocks.MockCheckoutRepository, publisher *mocks.MockPublisher) {
				// No expectations, fails validation first
			},
			expectedError: "card number, name and expiry are required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := mocks.NewMockCheckoutRepository(t)
			mockPublisher := mocks.NewMockPublisher(t)

			tt.setupMocks(mockRepo, mockPublisher)

			useCase := NewSaveCard(mockRepo, mockPublisher)

			err := useCase.Execute(context.Background(), tt.command)

			if tt.expectedError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
