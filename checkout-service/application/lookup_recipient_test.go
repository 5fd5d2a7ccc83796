package application

import (
	"context"
	"testing"

	"github.com/coinshop/recharge-system/checkout-service/domain"
	"github.com/coinshop/recharge-system/checkout-service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestLookupRecipient_Execute(t *testing.T) {
	profile := &domain.RecipientProfile{
		Handle:      "someuser",
		DisplayName: "Some User",
		Followers:   12500,
		AvatarURL:   "https://unavatar.io/tiktok/someuser",
	}

	tests := []struct {
		name           string
		query          *LookupRecipientQuery
		setupMocks     func(*mocks.MockProfileLookup)
		expectedError  string
		expectedResult *LookupRecipientResponse
	}{
		{
			name:  "successful lookup",
			query: &LookupRecipientQuery{Handle: "someuser"},
			setupMocks: func(lookup *mocks.MockProfileLookup) {
				lookup.EXPECT().Lookup(mock.Anything, "someuser").Return(profile, nil).Once()
			},
			expectedResult: &LookupRecipientResponse{
				Handle:    "someuser",
				Available: true,
				Profile:   profile,
			},
		},
		{
			name:  "leading at sign is stripped before lookup",
			query: &LookupRecipientQuery{Handle: "@someuser"},
			setupMocks: func(lookup *mocks.MockProfileLookup) {
				lookup.EXPECT().Lookup(mock.Anything, "someuser").Return(profile, nil).Once()
			},
			expectedResult: &LookupRecipientResponse{
				Handle:    "someuser",
				Available: true,
				Profile:   profile,
			},
		},
		{
			name:  "collaborator failure degrades without error",
			query: &LookupRecipientQuery{Handle: "someuser"},
			setupMocks: func(lookup *mocks.MockProfileLookup) {
				lookup.EXPECT().Lookup(mock.Anything, "someuser").
					Return(nil, domain.ErrLookupUnavailable).Once()
			},
			expectedResult: &LookupRecipientResponse{
				Handle:    "someuser",
				Available: false,
				Note:      "Details unavailable",
			},
		},
		{
			name:  "empty handle",
			query: &LookupRecipientQuery{Handle: "  "},
			setupMocks: func(lookup *mocks.MockProfileLookup) {
				// No expectations, fails validation first
			},
			expectedError: "handle is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockLookup := mocks.NewMockProfileLookup(t)

			tt.setupMocks(mockLookup)

			useCase := NewLookupRecipient(mockLookup)

			result, err := useCase.Execute(context.Background(), tt.query)

			if tt.expectedError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedResult, result)
			}
		})
	}
}
