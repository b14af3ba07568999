package domain

type RuleChannel string

const (
	ChannelWhatsApp RuleChannel = "WHATSAPP"
	ChannelEmail    RuleChannel = "EMAIL"
	ChannelSystem   RuleChannel = "SYSTEM"
)

type RuleTrigger string

const (
	TriggerOrderCreated    RuleTrigger = "ORDER_CREATED"
	TriggerStockLow        RuleTrigger = "STOCK_LOW"
	TriggerCustomerVIP     RuleTrigger = "CUSTOMER_VIP"
	TriggerAbandonedCart   RuleTrigger = "ABANDONED_CART"
	TriggerIncomingMessage RuleTrigger = "INCOMING_MESSAGE"
)

type AutomationRule struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Channel  RuleChannel `json:"channel"`
	Trigger  RuleTrigger `json:"trigger"`
	Active   bool        `json:"active"`
	Template string      `json:"template"`
	Executed int         `json:"executed"`
}

type LogStatus string

const (
	LogSuccess    LogStatus = "SUCCESS"
	LogFailed     LogStatus = "FAILED"
	LogProcessing LogStatus = "PROCESSING"
)

type AutomationLog struct {
	ID        string    `json:"id"`
	Timestamp string    `json:"timestamp"`
	RuleName  string    `json:"rule_name"`
	Action    string    `json:"action"`
	Status    LogStatus `json:"status"`
	Details   string    `json:"details"`
}
