package bridge

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/palstyle/storefront/internal/domain"
)

// TrendyolBridge is the deterministic stand-in for the Trendyol supplier
// API. It reports a fixed channel-side order and customer book until the
// real integration lands.
type TrendyolBridge struct {
	// FailAuth makes Authenticate return ErrAuthFailed
	FailAuth bool
}

func (b *TrendyolBridge) Platform() domain.Platform {
	return domain.PlatformTrendyol
}

func (b *TrendyolBridge) Authenticate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if b.FailAuth {
		return ErrAuthFailed
	}
	log.Printf("trendyol bridge: handshake successful")
	return nil
}

func (b *TrendyolBridge) PushCatalog(ctx context.Context, products []*domain.Product) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	log.Printf("trendyol bridge: pushed %d products", len(products))
	return len(products), nil
}

func (b *TrendyolBridge) FetchOrders(ctx context.Context) ([]domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []domain.Order{
		channelOrder("TY-928374", "72839412", "Ahmet Yılmaz", domain.PlatformTrendyol, domain.OrderStatusPending, 1499.00, "TRY", "2024-05-20"),
		channelOrder("TY-928375", "72839415", "Ayşe Kaya", domain.PlatformTrendyol, domain.OrderStatusShipped, 899.00, "TRY", "2024-05-19"),
		channelOrder("TY-928376", "72839418", "Mehmet Demir", domain.PlatformTrendyol, domain.OrderStatusDelivered, 299.00, "TRY", "2024-05-18"),
		channelOrder("TY-928377", "72839420", "Zeynep Çelik", domain.PlatformTrendyol, domain.OrderStatusPending, 599.00, "TRY", "2024-05-20"),
	}, nil
}

func (b *TrendyolBridge) FetchCustomers(ctx context.Context) ([]domain.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []domain.Customer{
		{ID: "C-001", Name: "Ahmet Yılmaz", Email: "ahmet.y@gmail.com", TotalSpent: 4500, LastOrderDate: "2024-05-20", Tier: domain.CustomerVIP, Platform: domain.PlatformTrendyol},
		{ID: "C-003", Name: "Ayşe Kaya", Email: "ayse.k@hotmail.com", TotalSpent: 2100, LastOrderDate: "2024-05-19", Tier: domain.CustomerRegular, Platform: domain.PlatformTrendyol},
	}, nil
}

// channelOrder builds a marketplace order with an id derived from the
// channel reference, so repeated pulls yield the same order identity.
func channelOrder(ref, number, customer string, platform domain.Platform, status domain.OrderStatus, total float64, currency, date string) domain.Order {
	placedAt, err := time.Parse("2006-01-02", date)
	if err != nil {
		placedAt = time.Now()
	}
	return domain.Order{
		ID:          uuid.NewSHA1(uuid.NameSpaceOID, []byte(ref)),
		OrderNumber: number,
		Customer:    customer,
		Platform:    platform,
		Status:      status,
		TotalAmount: total,
		Currency:    currency,
		PlacedAt:    placedAt,
	}
}
