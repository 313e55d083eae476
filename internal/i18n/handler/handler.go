package handler

import (
	"net/http"

	"storefront-server/internal/apierrors"
	"storefront-server/internal/i18n"

	"github.com/gin-gonic/gin"
)

// HandleGetCatalog handles GET /api/i18n/:lang
func HandleGetCatalog(c *gin.Context) {
	lang := i18n.Normalize(c.Param("lang"))

	catalog, err := i18n.Catalog(lang)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"language":     lang,
		"translations": catalog,
	})
}
