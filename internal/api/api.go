package api

import (
	"net/http"

	authHandler "storefront-server/internal/auth/handler"
	campaignHandler "storefront-server/internal/campaign/handler"
	catalogHandler "storefront-server/internal/catalog/handler"
	i18nHandler "storefront-server/internal/i18n/handler"
	"storefront-server/internal/leaderboard"
	ledgerHandler "storefront-server/internal/ledger/handler"
	"storefront-server/internal/ratelimit"
	storefrontHandler "storefront-server/internal/storefront/handler"
	voucherHandler "storefront-server/internal/vouchers/handler"

	"github.com/gin-gonic/gin"
)

// Handlers groups every route handler the API mounts.
type Handlers struct {
	Auth        authHandler.Handler
	Catalog     catalogHandler.Handler
	Storefront  storefrontHandler.Handler
	Ledger      ledgerHandler.Handler
	Vouchers    voucherHandler.Handler
	Campaign    campaignHandler.Handler
	Leaderboard *leaderboard.Handler
	RateLimit   *ratelimit.Service
}

type API struct {
	router   *gin.RouterGroup
	handlers Handlers
}

func New(router *gin.RouterGroup, handlers Handlers) API {
	return API{
		router:   router,
		handlers: handlers,
	}
}

func (a *API) RegisterRoutes() {
	a.Health()
	h := &a.handlers

	apiGroup := a.router.Group("/api")
	{
		apiGroup.GET("/i18n/:lang", i18nHandler.HandleGetCatalog)
		apiGroup.GET("/storefronts/:code", h.Storefront.HandleGetPublicStorefront)
		apiGroup.GET("/products", h.Catalog.HandleListProducts)
		apiGroup.GET("/products/:product_id", h.Catalog.HandleGetProduct)
		apiGroup.GET("/leaderboard", h.Leaderboard.HandleGetLeaderboard)
	}

	sessionGroup := apiGroup.Group("", h.Auth.HandleSessionMiddleware)
	{
		authGroup := sessionGroup.Group("/auth", h.RateLimit.Middleware("auth"))
		authGroup.POST("/register", h.Auth.HandleRegister)
		authGroup.POST("/login", h.Auth.HandleLogin)
		authGroup.POST("/logout", h.Auth.HandleLogout)

		sessionGroup.GET("/profile", h.Auth.HandleGetProfile)
		sessionGroup.PUT("/profile", h.Auth.HandleUpdateProfile)
		sessionGroup.PUT("/profile/language", h.Auth.HandleSetLanguage)

		storeGroup := sessionGroup.Group("/store")
		storeGroup.POST("", h.Storefront.HandleCreateStore)
		storeGroup.GET("", h.Storefront.HandleGetStore)
		storeGroup.PUT("", h.Storefront.HandleUpdateStore)
		storeGroup.POST("/products/:product_id", h.Storefront.HandleSelectProduct)
		storeGroup.DELETE("/products/:product_id", h.Storefront.HandleDeselectProduct)
		storeGroup.GET("/link", h.Storefront.HandleGetReferralLink)
		storeGroup.GET("/points", h.Storefront.HandleGetPointsSummary)
		storeGroup.GET("/orders", h.Ledger.HandleListMyOrders)

		sessionGroup.POST("/checkout", h.RateLimit.Middleware("checkout"), h.Ledger.HandleCheckout)

		offersGroup := sessionGroup.Group("/offers")
		offersGroup.GET("", h.Vouchers.HandleGetOffers)
		offersGroup.POST("/welcome/claim", h.Vouchers.HandleClaimWelcome)
		offersGroup.POST("/referral/claim", h.Vouchers.HandleClaimReferral)

		campaignsGroup := sessionGroup.Group("/campaigns")
		campaignsGroup.GET("", h.Campaign.HandleListAvailable)
		campaignsGroup.POST("/:campaign_id/start", h.Campaign.HandleStart)
		campaignsGroup.POST("/:campaign_id/submit", h.Campaign.HandleSubmit)
		campaignsGroup.POST("/:campaign_id/withdraw", h.Campaign.HandleWithdraw)
	}

	adminGroup := sessionGroup.Group("/admin", h.Auth.HandleRequireAdmin)
	{
		adminGroup.POST("/products", h.Catalog.HandleCreateProduct)

		ordersGroup := adminGroup.Group("/orders")
		ordersGroup.GET("", h.Ledger.HandleListOrders)
		ordersGroup.GET("/remote", h.Ledger.HandleListRemoteOrders)
		ordersGroup.POST("", h.Ledger.HandleRecordOrder)
		ordersGroup.PATCH("/:order_id/status", h.Ledger.HandleUpdateOrderStatus)

		campaignsGroup := adminGroup.Group("/campaigns")
		campaignsGroup.GET("", h.Campaign.HandleListCampaigns)
		campaignsGroup.POST("", h.Campaign.HandleCreateCampaign)
		campaignsGroup.PUT("/:campaign_id", h.Campaign.HandleUpdateCampaign)
		campaignsGroup.DELETE("/:campaign_id", h.Campaign.HandleDeleteCampaign)
		campaignsGroup.POST("/:campaign_id/toggle", h.Campaign.HandleToggleCampaign)
		campaignsGroup.POST("/:campaign_id/participants/:session_id/approve", h.Campaign.HandleApprove)
	}
}

func (a *API) Health() {
	a.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
}
