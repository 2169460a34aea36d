package domain

// ShippingProfile is the user-entered delivery form, optionally persisted.
type ShippingProfile struct {
	FullName string `json:"fullName" form:"fullName"`
	Address  string `json:"address" form:"address"`
	City     string `json:"city" form:"city"`
	Postal   string `json:"postal" form:"postal"`
	Country  string `json:"country" form:"country"`
	Email    string `json:"email" form:"email"`
}

// PaymentConfig is the provider configuration entered through the admin
// widget. Stored unencrypted in the local store, demo only.
type PaymentConfig struct {
	PaystackWebhook string `json:"paystackWebhook" form:"paystackWebhook"`
	OpayMerchant    string `json:"opayMerchant" form:"opayMerchant"`
	Whatsapp        string `json:"whatsapp" form:"whatsapp"`
}

// LastView is the weak preference signal recorded when a product detail
// screen is opened.
type LastView struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Name     string `json:"name"`
}
