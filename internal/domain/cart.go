package domain

import "time"

type SizeVariant string

const (
	SizeS  SizeVariant = "S"
	SizeM  SizeVariant = "M"
	SizeL  SizeVariant = "L"
	SizeXL SizeVariant = "XL"

	// DefaultSize is used when a shopper adds a product without picking a size.
	DefaultSize = SizeM
)

func (s SizeVariant) Valid() bool {
	switch s {
	case SizeS, SizeM, SizeL, SizeXL:
		return true
	}
	return false
}

// LineKey identifies a cart line item. Two adds with the same key merge
// into one line; distinct sizes of the same product stay separate lines.
type LineKey struct {
	ProductID string      `bson:"product_id"`
	Size      SizeVariant `bson:"size"`
}

// LineItem is a quantity of one product at one size. Product fields are
// copied in at add time; later catalog edits do not reach the cart.
type LineItem struct {
	ProductID   string      `json:"product_id" bson:"product_id"`
	Name        string      `json:"name" bson:"name"`
	Description string      `json:"description" bson:"description"`
	Price       float64     `json:"price" bson:"price"`
	Category    string      `json:"category" bson:"category"`
	ImageURL    string      `json:"image_url" bson:"image_url"`
	Stock       int         `json:"stock" bson:"stock"`
	Size        SizeVariant `json:"size" bson:"size"`
	Quantity    int         `json:"quantity" bson:"quantity"`
	AddedAt     time.Time   `json:"added_at" bson:"added_at"`
}

func (li LineItem) Key() LineKey {
	return LineKey{ProductID: li.ProductID, Size: li.Size}
}

func (li LineItem) Subtotal() float64 {
	return li.Price * float64(li.Quantity)
}

type Cart struct {
	UserID    string     `json:"user_id" bson:"user_id"`
	Items     []LineItem `json:"items" bson:"items"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" bson:"updated_at"`
}

// Total sums price times quantity over all line items. Rounding happens at
// presentation time only.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Subtotal()
	}
	return total
}

// ItemCount is the number of distinct (product, size) lines, not the sum
// of quantities. The cart badge counts lines.
func (c *Cart) ItemCount() int {
	return len(c.Items)
}

func (c *Cart) Find(key LineKey) *LineItem {
	for i := range c.Items {
		if c.Items[i].Key() == key {
			return &c.Items[i]
		}
	}
	return nil
}
