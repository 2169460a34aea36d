package storeapi

// InitRouter registers all storefront routes on the global web server.
func InitRouter() {
	registerProductRoutes()
	registerCartRoutes()
	registerPaymentRoutes()
	registerPromoRoutes()
	registerAdminRoutes()
}
