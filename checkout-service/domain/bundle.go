package domain

import (
	"math"
	"strconv"
	"time"

	"github.com/coinshop/recharge-system/shared/models"
)

// Pricing and entry bounds for custom bundles. These are product
// constants, not configuration.
const (
	CoinRate        = 0.0104
	MinCustomAmount = 1
	MaxCustomAmount = 100000
	Currency        = "USD"
)

// customPlaceholderID is the catalog entry that opens custom amount entry
const customPlaceholderID int64 = 8

// Bundle is a purchasable unit of coins, fixed or custom
type Bundle struct {
	ID       int64        `json:"id"`
	Coins    int          `json:"coins"`
	Price    models.Money `json:"price"`
	IsCustom bool         `json:"is_custom"`
}

// IsPlaceholder reports whether the bundle is the catalog's custom entry
// rather than an instantiated custom bundle.
func (b Bundle) IsPlaceholder() bool {
	return b.IsCustom && b.Coins == 0
}

// CoinsLabel renders the coin count, with the custom placeholder shown as
// "Custom".
func (b Bundle) CoinsLabel() string {
	if b.IsPlaceholder() {
		return "Custom"
	}
	return strconv.Itoa(b.Coins)
}

// CustomPriceCents computes the price in cents for a custom coin amount:
// round(amount x rate, 2 decimals).
func CustomPriceCents(amount int) int64 {
	return int64(math.Round(float64(amount) * CoinRate * 100))
}

// PackageCatalog exposes the fixed, ordered bundle menu and the custom
// bundle factory.
type PackageCatalog struct {
	bundles      []Bundle
	quickAmounts []int
	now          func() time.Time
}

// NewPackageCatalog creates the default catalog
func NewPackageCatalog() *PackageCatalog {
	return &PackageCatalog{
		bundles: []Bundle{
			{ID: 1, Coins: 30, Price: models.NewMoney(31, Currency)},
			{ID: 2, Coins: 350, Price: models.NewMoney(365, Currency)},
			{ID: 3, Coins: 700, Price: models.NewMoney(725, Currency)},
			{ID: 4, Coins: 1400, Price: models.NewMoney(1449, Currency)},
			{ID: 5, Coins: 3500, Price: models.NewMoney(3620, Currency)},
			{ID: 6, Coins: 7000, Price: models.NewMoney(7240, Currency)},
			{ID: 7, Coins: 17500, Price: models.NewMoney(18100, Currency)},
			{ID: customPlaceholderID, Coins: 0, Price: models.NewMoney(0, Currency), IsCustom: true},
		},
		quickAmounts: []int{100, 500, 1000, 5000},
		now:          time.Now,
	}
}

// Bundles returns the ordered catalog entries
func (c *PackageCatalog) Bundles() []Bundle {
	out := make([]Bundle, len(c.bundles))
	copy(out, c.bundles)
	return out
}

// QuickAmounts returns the quick-select coin amounts for custom entry
func (c *PackageCatalog) QuickAmounts() []int {
	out := make([]int, len(c.quickAmounts))
	copy(out, c.quickAmounts)
	return out
}

// FindByID returns the catalog entry with the given id
func (c *PackageCatalog) FindByID(id int64) (Bundle, bool) {
	for _, b := range c.bundles {
		if b.ID == id {
			return b, true
		}
	}
	return Bundle{}, false
}

// First returns the first catalog entry
func (c *PackageCatalog) First() Bundle {
	return c.bundles[0]
}

// MakeCustomBundle builds a bundle for an already-validated coin amount.
// The id is time-derived so it never collides with the fixed ids.
func (c *PackageCatalog) MakeCustomBundle(amount int) Bundle {
	return Bundle{
		ID:       c.now().UnixMilli(),
		Coins:    amount,
		Price:    models.NewMoney(CustomPriceCents(amount), Currency),
		IsCustom: true,
	}
}
