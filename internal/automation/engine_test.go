package automation

import (
	"fmt"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palstyle/storefront/internal/domain"
)

func TestEngine_DefaultRules(t *testing.T) {
	engine := NewEngine(nil)

	rules := engine.Rules()
	require.Len(t, rules, 5)
	assert.Equal(t, "AUTO-001", rules[0].ID)
	// Shipping update ships disabled
	assert.False(t, rules[3].Active)
}

func TestEngine_DispatchMatchesTriggerAndActive(t *testing.T) {
	engine := NewEngine(nil)

	// AUTO-001 active, AUTO-004 inactive; both bound to ORDER_CREATED
	fired := engine.Dispatch(domain.TriggerOrderCreated, "Order #PAL-00001")
	assert.Equal(t, 1, fired)

	logs := engine.Logs()
	require.Len(t, logs, 1)
	assert.Equal(t, "Order Confirmation (WhatsApp)", logs[0].RuleName)
	assert.Equal(t, "DISPATCH_MSG", logs[0].Action)
	assert.Equal(t, domain.LogSuccess, logs[0].Status)
	assert.Contains(t, logs[0].Details, "Order #PAL-00001")

	rules := engine.Rules()
	assert.Equal(t, 1, rules[0].Executed)
	assert.Equal(t, 0, rules[3].Executed)
}

func TestEngine_ToggleRule(t *testing.T) {
	engine := NewEngine(nil)

	rule, err := engine.ToggleRule("AUTO-004")
	require.NoError(t, err)
	assert.True(t, rule.Active)

	fired := engine.Dispatch(domain.TriggerOrderCreated, "Order #PAL-00002")
	assert.Equal(t, 2, fired)

	_, err = engine.ToggleRule("AUTO-999")
	require.ErrorIs(t, err, ErrRuleNotFound)
}

func TestEngine_LogNewestFirstAndCapped(t *testing.T) {
	engine := NewEngine(nil)

	for i := 0; i < maxLogEntries+10; i++ {
		engine.Dispatch(domain.TriggerStockLow, fmt.Sprintf("SKU: product-%d", i))
	}

	logs := engine.Logs()
	require.Len(t, logs, maxLogEntries)
	// Newest entry at the head
	assert.Contains(t, logs[0].Details, fmt.Sprintf("product-%d", maxLogEntries+9))
}

func TestEngine_IncomingMessageTruncatesContext(t *testing.T) {
	engine := NewEngine(nil)

	fired := engine.ProcessIncomingMessage("+90555000001", "Do you have the oversize hoodie in XL?")
	assert.Equal(t, 1, fired)

	logs := engine.Logs()
	require.Len(t, logs, 1)
	assert.Contains(t, logs[0].Details, "Do you have the overs...")
	assert.Equal(t, "AI Smart Auto-Reply", logs[0].RuleName)
}

func TestEngine_IncomingMessageTruncatesOnRunes(t *testing.T) {
	engine := NewEngine(nil)

	fired := engine.ProcessIncomingMessage("+90555000002", "Siyah kapüşonlu sweatshirt stokta var mı?")
	assert.Equal(t, 1, fired)

	logs := engine.Logs()
	require.Len(t, logs, 1)
	assert.Contains(t, logs[0].Details, "Siyah kapüşonlu swea...")
	assert.True(t, utf8.ValidString(logs[0].Details))
}

func TestEngine_SinkRunsAsync(t *testing.T) {
	engine := NewEngine(nil)
	t.Cleanup(func() { _ = engine.Close() })

	engine.OnOrderPlaced(domain.OrderPlacedEvent{Order: domain.Order{OrderNumber: "PAL-00009"}})
	engine.OnLowStock(domain.LowStockEvent{Product: domain.Product{Name: "Silver Chain"}})

	require.Eventually(t, func() bool {
		return len(engine.Logs()) == 2
	}, time.Second, 10*time.Millisecond)
}
