package config

import (
	"context"
	"fmt"
	"time"

	"github.com/coinshop/recharge-system/checkout-service/application"
	"github.com/coinshop/recharge-system/checkout-service/handlers"
	"github.com/coinshop/recharge-system/checkout-service/infrastructure"
	sharedinfra "github.com/coinshop/recharge-system/shared/infrastructure"
	"github.com/coinshop/recharge-system/shared/telemetry"
	"github.com/coinshop/recharge-system/shared/timers"
	"github.com/sirupsen/logrus"
)

type Dependencies struct {
	// Repositories
	CheckoutRepository *infrastructure.MemoryCheckoutRepository

	// Use Cases
	StartCheckout      *application.StartCheckout
	GetCheckout        *application.GetCheckout
	SelectPackage      *application.SelectPackage
	BuySelected        *application.BuySelected
	EnterAmount        *application.EnterAmount
	SelectMethod       *application.SelectPaymentMethod
	EditCard           *application.EditCard
	SubmitPayment      *application.SubmitPayment
	SaveCardNow        *application.SaveCardNow
	SaveCard           *application.SaveCard
	AcknowledgeSuccess *application.AcknowledgeSuccess
	GoBack             *application.GoBack
	SetRecipient       *application.SetRecipient
	LookupRecipient    *application.LookupRecipient

	// HTTP Handlers
	CheckoutHandlers *handlers.CheckoutHandlers

	// Event Handlers
	CheckoutEventHandlers *handlers.CheckoutEventHandlers

	// Infrastructure
	EventBus  *sharedinfra.MemoryEventBus
	Scheduler timers.Scheduler
	Logger    *logrus.Logger

	// Telemetry
	Telemetry         *telemetry.Telemetry
	TelemetryShutdown func()
}

func BuildDependencies(ctx context.Context, config *Config) (*Dependencies, error) {
	deps := &Dependencies{}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	deps.Logger = logger

	// Initialize telemetry first
	if config.Telemetry.Enabled {
		telConfig := telemetry.CheckoutServiceConfig.WithOTLPEndpoint(config.Telemetry.OTLPEndpoint)
		tel, telemetryShutdown, err := telemetry.Init(ctx, telConfig)
		if err != nil {
			logger.WithError(err).Warn("Failed to initialize telemetry")
			// Continue without telemetry rather than failing
		} else {
			deps.Telemetry = tel
			deps.TelemetryShutdown = telemetryShutdown
		}
	}

	// Initialize infrastructure
	deps.EventBus = sharedinfra.NewMemoryEventBus()
	deps.Scheduler = timers.NewWallScheduler()
	deps.CheckoutRepository = infrastructure.NewMemoryCheckoutRepository()

	profileLookup := infrastructure.NewHTTPProfileLookup(
		config.Lookup.BaseURL,
		config.Lookup.APIKey,
		time.Duration(config.Lookup.TimeoutMS)*time.Millisecond,
	)

	// Initialize use cases
	deps.StartCheckout = application.NewStartCheckout(deps.CheckoutRepository, deps.EventBus)
	deps.GetCheckout = application.NewGetCheckout(deps.CheckoutRepository)
	deps.SelectPackage = application.NewSelectPackage(deps.CheckoutRepository, deps.EventBus)
	deps.BuySelected = application.NewBuySelected(deps.CheckoutRepository, deps.EventBus)
	deps.EnterAmount = application.NewEnterAmount(deps.CheckoutRepository, deps.EventBus)
	deps.SelectMethod = application.NewSelectPaymentMethod(deps.CheckoutRepository, deps.EventBus)
	deps.EditCard = application.NewEditCard(deps.CheckoutRepository, deps.EventBus)
	deps.SubmitPayment = application.NewSubmitPayment(deps.CheckoutRepository, deps.EventBus, deps.Scheduler)
	deps.SaveCardNow = application.NewSaveCardNow(deps.CheckoutRepository, deps.EventBus)
	deps.SaveCard = application.NewSaveCard(deps.CheckoutRepository, deps.EventBus)
	deps.AcknowledgeSuccess = application.NewAcknowledgeSuccess(deps.CheckoutRepository, deps.EventBus)
	deps.GoBack = application.NewGoBack(deps.CheckoutRepository, deps.EventBus)
	deps.SetRecipient = application.NewSetRecipient(deps.CheckoutRepository, deps.EventBus)
	deps.LookupRecipient = application.NewLookupRecipient(profileLookup)

	// Initialize handlers
	deps.CheckoutHandlers = handlers.NewCheckoutHandlers(
		deps.StartCheckout,
		deps.GetCheckout,
		deps.SelectPackage,
		deps.BuySelected,
		deps.EnterAmount,
		deps.SelectMethod,
		deps.EditCard,
		deps.SubmitPayment,
		deps.SaveCardNow,
		deps.AcknowledgeSuccess,
		deps.GoBack,
		deps.SetRecipient,
		deps.LookupRecipient,
	)
	deps.CheckoutEventHandlers = handlers.NewCheckoutEventHandlers(deps.SaveCard, logger)

	// Wire event choreography
	if err := deps.EventBus.Subscribe(ctx, "card.#", deps.CheckoutEventHandlers); err != nil {
		return nil, fmt.Errorf("failed to subscribe event handlers: %w", err)
	}

	return deps, nil
}

// Close closes all dependencies
func (d *Dependencies) Close() error {
	if d.EventBus != nil {
		d.EventBus.Close()
	}

	if d.TelemetryShutdown != nil {
		d.TelemetryShutdown()
	}

	return nil
}
