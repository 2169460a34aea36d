package app

import (
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
	"github.com/volubiks/storefront/internal/domain"
	"github.com/volubiks/storefront/internal/localstore"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// checkDataFiles seeds a starter products.json into the data dir when no
// catalog feed has been provisioned, so a fresh install serves something.
func (a *Application) checkDataFiles() {
	if a.appConfig.Catalog.JsonURL != "" {
		return
	}
	path := filepath.Join(a.appConfig.GetDataDir(), "products.json")
	if _, err := os.Stat(path); err == nil {
		return
	}

	defaultProducts := []domain.Product{
		{
			ID: "1", Name: "Royal Gold Ring", Slug: "royal-gold-ring",
			Price: 45000, Currency: "NGN", Category: "jewelries",
			Description: "Handcrafted 18k gold ring.", Featured: true,
			Inventory: 12, Tags: []string{"gold", "ring"},
			Images: []string{"/images/4.jpg", "/images/4-1.jpg", "/images/4-2.jpg", "/images/4-3.jpg"},
			Image:  "/images/4.jpg",
		},
		{
			ID: "2", Name: "Volubiks Signature Necklace", Slug: "volubiks-signature-necklace",
			Price: 68000, Currency: "NGN", Category: "jewelries",
			Description: "Signature pendant necklace.", Featured: true,
			Inventory: 8, Tags: []string{"necklace"},
			Images: []string{"/images/IMG-1.jpg", "/images/IMG-2.jpg", "/images/IMG-3.jpg"},
			Image:  "/images/IMG-1.jpg",
		},
		{
			ID: "3", Name: "Golden Green Chain", Slug: "golden-green-chain",
			Price: 32000, Currency: "NGN", Category: "jewelries",
			Description: "Two-tone chain, green inlay.", Featured: false,
			Inventory: 20, Tags: []string{"chain"},
			Images: []string{"/images/golden_green_chain_1.jpg", "/images/golden_green_chain_2.jpg"},
			Image:  "/images/golden_green_chain_1.jpg",
		},
		{
			ID: "4", Name: "Ojaja Royal Agbada", Slug: "ojaja-royal-agbada",
			Price: 55000, Currency: "NGN", Category: "clothings",
			Description: "Embroidered ceremonial agbada.", Featured: true,
			Inventory: 5, Tags: []string{"apparel"},
			Images: []string{"/images/Screenshot_20251225-175416.jpg"},
			Image:  "/images/Screenshot_20251225-175416.jpg",
		},
	}

	data, err := json.MarshalIndent(defaultProducts, "", "  ")
	if err != nil {
		zap.L().Error("failed to encode default products", zap.Error(err))
		return
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		zap.L().Error("failed to seed default products", zap.Error(err))
		return
	}
	zap.L().Info("initialized default catalog", zap.String("path", path), zap.Int("products", len(defaultProducts)))
}

// checkPaymentConfig seeds the demo payment configuration once.
func (a *Application) checkPaymentConfig() {
	var cfg domain.PaymentConfig
	if a.kv.GetJSON(localstore.KeyPaymentConfig, &cfg) {
		return
	}
	a.kv.PutJSON(localstore.KeyPaymentConfig, domain.PaymentConfig{
		OpayMerchant: "9047393086",
	})
	zap.L().Info("initialized default payment config")
}
