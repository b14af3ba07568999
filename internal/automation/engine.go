package automation

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/palstyle/storefront/internal/domain"
)

// maxLogEntries caps the in-memory execution log; older entries roll off.
const maxLogEntries = 50

var ErrRuleNotFound = errors.New("automation rule not found")

// DefaultRules returns the built-in rule set the engine starts with.
func DefaultRules() []domain.AutomationRule {
	return []domain.AutomationRule{
		{
			ID:       "AUTO-001",
			Name:     "Order Confirmation (WhatsApp)",
			Channel:  domain.ChannelWhatsApp,
			Trigger:  domain.TriggerOrderCreated,
			Active:   true,
			Template: "Hello {{name}}, your order #{{orderId}} from PALSTYLE48 is confirmed. We are preparing your armor.",
		},
		{
			ID:       "AUTO-002",
			Name:     "Low Stock Alert (Admin)",
			Channel:  domain.ChannelSystem,
			Trigger:  domain.TriggerStockLow,
			Active:   true,
			Template: "ALERT: Product {{productName}} has dropped below safe levels ({{stock}} remaining).",
		},
		{
			ID:       "AUTO-003",
			Name:     "VIP Welcome Protocol (Email)",
			Channel:  domain.ChannelEmail,
			Trigger:  domain.TriggerCustomerVIP,
			Active:   true,
			Template: "Welcome to the Inner Circle. Your loyalty has been noted. Exclusive access granted.",
		},
		{
			ID:       "AUTO-004",
			Name:     "Shipping Update (WhatsApp)",
			Channel:  domain.ChannelWhatsApp,
			Trigger:  domain.TriggerOrderCreated,
			Active:   false,
			Template: "Your package is on the move. Tracking: {{tracking}}. Expect arrival in 2 days.",
		},
		{
			ID:       "AUTO-005",
			Name:     "AI Smart Auto-Reply",
			Channel:  domain.ChannelWhatsApp,
			Trigger:  domain.TriggerIncomingMessage,
			Active:   true,
			Template: "AI_GENERATED_RESPONSE",
		},
	}
}

// Engine matches domain events against its rule set and records every
// execution in a rolling log. It is the storefront's stand-in for a real
// messaging/automation backend; dispatch never leaves the process.
type Engine struct {
	mu    sync.Mutex
	rules []domain.AutomationRule
	logs  []domain.AutomationLog

	wg sync.WaitGroup
}

func NewEngine(rules []domain.AutomationRule) *Engine {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Engine{rules: rules}
}

// Rules returns a copy of the current rule set.
func (e *Engine) Rules() []domain.AutomationRule {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]domain.AutomationRule(nil), e.rules...)
}

// Logs returns the execution log, newest first.
func (e *Engine) Logs() []domain.AutomationLog {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]domain.AutomationLog(nil), e.logs...)
}

// ToggleRule flips a rule between active and inactive.
func (e *Engine) ToggleRule(id string) (domain.AutomationRule, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.rules {
		if e.rules[i].ID == id {
			e.rules[i].Active = !e.rules[i].Active
			return e.rules[i], nil
		}
	}
	return domain.AutomationRule{}, ErrRuleNotFound
}

// Dispatch runs every active rule bound to the trigger against the given
// event context and returns how many rules fired.
func (e *Engine) Dispatch(trigger domain.RuleTrigger, context string) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	fired := 0
	for i := range e.rules {
		rule := &e.rules[i]
		if rule.Trigger != trigger || !rule.Active {
			continue
		}
		rule.Executed++
		e.appendLog(domain.AutomationLog{
			ID:        uuid.NewString(),
			Timestamp: time.Now().Format("15:04:05"),
			RuleName:  rule.Name,
			Action:    actionFor(rule.Channel),
			Status:    domain.LogSuccess,
			Details:   context + " >> [SENT]",
		})
		log.Printf("automation: rule %s fired for %s", rule.ID, context)
		fired++
	}
	return fired
}

// ProcessIncomingMessage feeds a customer message through the
// INCOMING_MESSAGE rules.
func (e *Engine) ProcessIncomingMessage(sender, text string) int {
	if runes := []rune(text); len(runes) > 20 {
		text = string(runes[:20]) + "..."
	}
	return e.Dispatch(domain.TriggerIncomingMessage, fmt.Sprintf("MSG from %s: %q", sender, text))
}

// appendLog pushes newest-first and trims to maxLogEntries. Caller holds mu.
func (e *Engine) appendLog(entry domain.AutomationLog) {
	e.logs = append([]domain.AutomationLog{entry}, e.logs...)
	if len(e.logs) > maxLogEntries {
		e.logs = e.logs[:maxLogEntries]
	}
}

func actionFor(ch domain.RuleChannel) string {
	switch ch {
	case domain.ChannelWhatsApp:
		return "DISPATCH_MSG"
	case domain.ChannelEmail:
		return "SEND_SMTP"
	default:
		return "SYS_NOTIFY"
	}
}

// OnLowStock implements domain.EventSink. Dispatch runs off the caller's
// goroutine so the cart path never waits on rule execution.
func (e *Engine) OnLowStock(ev domain.LowStockEvent) {
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		e.Dispatch(domain.TriggerStockLow, fmt.Sprintf("SKU: %s", ev.Product.Name))
	}()
}

// OnOrderPlaced implements domain.EventSink.
func (e *Engine) OnOrderPlaced(ev domain.OrderPlacedEvent) {
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		e.Dispatch(domain.TriggerOrderCreated, fmt.Sprintf("Order #%s", ev.Order.OrderNumber))
	}()
}

// Close waits for in-flight async dispatches to finish.
func (e *Engine) Close() error {
	e.wg.Wait()
	return nil
}
