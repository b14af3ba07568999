package prefs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	store := NewStore()

	state := store.Get("sess-1")
	assert.True(t, state.DarkMode)
	assert.Equal(t, LangEnglish, state.Language)
	assert.Equal(t, CurrencyUSD, state.Currency)
	assert.Equal(t, ViewOverview, state.DashboardView)
	assert.False(t, state.CartOpen)
	assert.False(t, state.Admin)
}

func TestToggles(t *testing.T) {
	store := NewStore()

	state := store.ToggleCart("sess-1")
	assert.True(t, state.CartOpen)
	state = store.ToggleCart("sess-1")
	assert.False(t, state.CartOpen)

	state = store.ToggleTheme("sess-1")
	assert.False(t, state.DarkMode)

	state = store.ToggleAdmin("sess-1")
	assert.True(t, state.Admin)

	state = store.ToggleMenu("sess-1")
	assert.True(t, state.MenuOpen)
}

func TestSessionsAreIndependent(t *testing.T) {
	store := NewStore()

	store.ToggleCart("sess-1")
	assert.False(t, store.Get("sess-2").CartOpen)
}

func TestSetLanguage(t *testing.T) {
	store := NewStore()

	state, err := store.SetLanguage("sess-1", LangArabic)
	require.NoError(t, err)
	assert.Equal(t, LangArabic, state.Language)
	assert.True(t, state.Language.RTL())

	_, err = store.SetLanguage("sess-1", "de")
	require.ErrorIs(t, err, ErrInvalidLanguage)
	assert.Equal(t, LangArabic, store.Get("sess-1").Language)
}

func TestSetCurrencyAndView(t *testing.T) {
	store := NewStore()

	state, err := store.SetCurrency("sess-1", CurrencyTRY)
	require.NoError(t, err)
	assert.Equal(t, CurrencyTRY, state.Currency)

	_, err = store.SetCurrency("sess-1", "GBP")
	require.ErrorIs(t, err, ErrInvalidCurrency)

	state, err = store.SetDashboardView("sess-1", ViewAutomation)
	require.NoError(t, err)
	assert.Equal(t, ViewAutomation, state.DashboardView)

	_, err = store.SetDashboardView("sess-1", "settings")
	require.ErrorIs(t, err, ErrInvalidView)
}

func TestHeroVideoURL(t *testing.T) {
	store := NewStore()

	state := store.SetHeroVideoURL("sess-1", "https://cdn.palstyle.example/video/hero.mp4")
	assert.Equal(t, "https://cdn.palstyle.example/video/hero.mp4", state.HeroVideoURL)
}

func TestCurrencyFormat(t *testing.T) {
	assert.Equal(t, "$1499.00", CurrencyUSD.Format(1499))
	assert.Equal(t, "€89.50", CurrencyEUR.Format(89.5))
	assert.Equal(t, "₺599.99", CurrencyTRY.Format(599.994))
	assert.Equal(t, "₪210.00", CurrencyILS.Format(210))
}
