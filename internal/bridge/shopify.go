package bridge

import (
	"context"
	"log"

	"github.com/palstyle/storefront/internal/domain"
)

// ShopifyBridge is the deterministic stand-in for the Shopify Storefront
// API. Shopify is pull-oriented; PushCatalog only refreshes local stock
// bookkeeping.
type ShopifyBridge struct {
	FailAuth bool
}

func (b *ShopifyBridge) Platform() domain.Platform {
	return domain.PlatformShopify
}

func (b *ShopifyBridge) Authenticate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if b.FailAuth {
		return ErrAuthFailed
	}
	log.Printf("shopify bridge: storefront token verified")
	return nil
}

func (b *ShopifyBridge) PushCatalog(ctx context.Context, products []*domain.Product) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	log.Printf("shopify bridge: synced %d SKUs", len(products))
	return len(products), nil
}

func (b *ShopifyBridge) FetchOrders(ctx context.Context) ([]domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []domain.Order{
		channelOrder("SH-1023", "#1023", "John Doe", domain.PlatformShopify, domain.OrderStatusShipped, 120.00, "USD", "2024-05-19"),
		channelOrder("SH-1024", "#1024", "Sarah Smith", domain.PlatformShopify, domain.OrderStatusPending, 450.00, "USD", "2024-05-20"),
		channelOrder("SH-1025", "#1025", "Mike Ross", domain.PlatformShopify, domain.OrderStatusDelivered, 890.00, "USD", "2024-05-21"),
		channelOrder("SH-1026", "#1026", "Emma Watson", domain.PlatformShopify, domain.OrderStatusPending, 210.00, "USD", "2024-05-22"),
	}, nil
}

func (b *ShopifyBridge) FetchCustomers(ctx context.Context) ([]domain.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []domain.Customer{
		{ID: "C-002", Name: "John Doe", Email: "john@example.com", TotalSpent: 120, LastOrderDate: "2024-05-19", Tier: domain.CustomerNew, Platform: domain.PlatformShopify},
		{ID: "C-004", Name: "Mike Ross", Email: "mike.r@pearson.com", TotalSpent: 3500, LastOrderDate: "2024-05-21", Tier: domain.CustomerVIP, Platform: domain.PlatformShopify},
		{ID: "C-005", Name: "Emma Watson", Email: "emma@hollywood.com", TotalSpent: 210, LastOrderDate: "2024-05-22", Tier: domain.CustomerRegular, Platform: domain.PlatformShopify},
	}, nil
}
