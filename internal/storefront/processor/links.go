package processor

import (
	"context"
	"fmt"
	"net/url"

	catalogProcessor "storefront-server/internal/catalog/processor"
	"storefront-server/internal/observability"
)

// ReferralLinkResponse represents the share data for the session's store
type ReferralLinkResponse struct {
	StoreLink    string     `json:"store_link"`
	ReferralCode string     `json:"referral_code"`
	ShareLinks   ShareLinks `json:"share_links"`
}

// ShareLinks contains pre-formatted sharing links for various platforms
type ShareLinks struct {
	Twitter  string `json:"twitter"`
	Facebook string `json:"facebook"`
	LinkedIn string `json:"linkedin"`
	WhatsApp string `json:"whatsapp"`
	Email    string `json:"email"`
}

// GetReferralLink builds the public store link and social share links.
func (p *StorefrontProcessor) GetReferralLink(ctx context.Context, sessionID string) (ReferralLinkResponse, error) {
	current, err := p.GetCurrentStore(ctx, sessionID)
	if err != nil {
		return ReferralLinkResponse{}, err
	}

	link := p.StoreLink(current.ReferralCode)
	message := fmt.Sprintf("Shop at %s and support me with code %s", current.Name, current.ReferralCode)

	return ReferralLinkResponse{
		StoreLink:    link,
		ReferralCode: current.ReferralCode,
		ShareLinks:   buildShareLinks(link, message),
	}, nil
}

// StoreLink is the public URL of the store with the given code.
func (p *StorefrontProcessor) StoreLink(code string) string {
	return fmt.Sprintf("%s/store/%s", p.webAppURI, url.PathEscape(code))
}

func buildShareLinks(link, message string) ShareLinks {
	text := url.QueryEscape(message + " " + link)

	return ShareLinks{
		Twitter:  "https://twitter.com/intent/tweet?text=" + text,
		Facebook: "https://www.facebook.com/sharer/sharer.php?u=" + url.QueryEscape(link),
		LinkedIn: "https://www.linkedin.com/sharing/share-offsite/?url=" + url.QueryEscape(link),
		WhatsApp: "https://wa.me/?text=" + text,
		Email:    fmt.Sprintf("mailto:?subject=%s&body=%s", url.QueryEscape(message), url.QueryEscape(link)),
	}
}

// PublicStorefront is what a visitor of a store link sees. It carries no
// order or billing data.
type PublicStorefront struct {
	Name         string                     `json:"name"`
	ReferralCode string                     `json:"referral_code"`
	StoreLink    string                     `json:"store_link"`
	Products     []catalogProcessor.Product `json:"products"`
}

// GetPublicStorefront resolves a store link to the store's selected products,
// in selection order. Products that left the catalog are skipped.
func (p *StorefrontProcessor) GetPublicStorefront(ctx context.Context, code string) (PublicStorefront, error) {
	st, err := p.GetStoreByReferralCode(ctx, code)
	if err != nil {
		return PublicStorefront{}, err
	}
	ctx = observability.WithFields(ctx, observability.Field{Key: "referral_code", Value: st.ReferralCode})

	products := []catalogProcessor.Product{}
	if len(st.SelectedProducts) > 0 {
		all, err := p.catalog.ListProducts(ctx)
		if err != nil {
			p.logger.Error(ctx, "failed to load catalog for storefront", err)
			return PublicStorefront{}, err
		}
		byID := make(map[string]catalogProcessor.Product, len(all))
		for _, product := range all {
			byID[product.ID] = product
		}
		for _, id := range st.SelectedProducts {
			if product, ok := byID[id]; ok {
				products = append(products, product)
			}
		}
	}

	return PublicStorefront{
		Name:         st.Name,
		ReferralCode: st.ReferralCode,
		StoreLink:    p.StoreLink(st.ReferralCode),
		Products:     products,
	}, nil
}
