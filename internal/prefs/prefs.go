package prefs

import (
	"errors"
	"fmt"
	"sync"
)

var (
	ErrInvalidLanguage = errors.New("unsupported language")
	ErrInvalidCurrency = errors.New("unsupported currency")
	ErrInvalidView     = errors.New("unknown dashboard view")
)

type Language string

const (
	LangEnglish Language = "en"
	LangTurkish Language = "tr"
	LangArabic  Language = "ar"
)

func (l Language) Valid() bool {
	switch l {
	case LangEnglish, LangTurkish, LangArabic:
		return true
	}
	return false
}

// RTL reports whether the language renders right to left.
func (l Language) RTL() bool {
	return l == LangArabic
}

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyTRY Currency = "TRY"
	CurrencyILS Currency = "ILS"
)

func (c Currency) Valid() bool {
	switch c {
	case CurrencyUSD, CurrencyEUR, CurrencyTRY, CurrencyILS:
		return true
	}
	return false
}

func (c Currency) Symbol() string {
	switch c {
	case CurrencyEUR:
		return "€"
	case CurrencyTRY:
		return "₺"
	case CurrencyILS:
		return "₪"
	default:
		return "$"
	}
}

// Format renders an amount for display. Rounding to 2 decimals happens
// here and nowhere else.
func (c Currency) Format(amount float64) string {
	return fmt.Sprintf("%s%.2f", c.Symbol(), amount)
}

type DashboardView string

const (
	ViewOverview   DashboardView = "overview"
	ViewOmni       DashboardView = "omni"
	ViewMarketing  DashboardView = "marketing"
	ViewInbox      DashboardView = "inbox"
	ViewOrders     DashboardView = "orders"
	ViewCustomers  DashboardView = "customers"
	ViewAutomation DashboardView = "automation"
)

func (v DashboardView) Valid() bool {
	switch v {
	case ViewOverview, ViewOmni, ViewMarketing, ViewInbox, ViewOrders, ViewCustomers, ViewAutomation:
		return true
	}
	return false
}

// State is one session's UI toggle state. No field constrains another.
type State struct {
	CartOpen      bool          `json:"cart_open"`
	MenuOpen      bool          `json:"menu_open"`
	Admin         bool          `json:"admin"`
	DarkMode      bool          `json:"dark_mode"`
	Language      Language      `json:"language"`
	Currency      Currency      `json:"currency"`
	DashboardView DashboardView `json:"dashboard_view"`
	HeroVideoURL  string        `json:"hero_video_url,omitempty"`
}

func defaultState() State {
	return State{
		DarkMode:      true,
		Language:      LangEnglish,
		Currency:      CurrencyUSD,
		DashboardView: ViewOverview,
	}
}

// Store keeps per-session preference state in memory. Sessions that never
// touched a toggle read the defaults.
type Store struct {
	mu     sync.RWMutex
	states map[string]State
}

func NewStore() *Store {
	return &Store{states: make(map[string]State)}
}

func (s *Store) Get(sessionID string) State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if state, ok := s.states[sessionID]; ok {
		return state
	}
	return defaultState()
}

func (s *Store) update(sessionID string, fn func(*State)) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.states[sessionID]
	if !ok {
		state = defaultState()
	}
	fn(&state)
	s.states[sessionID] = state
	return state
}

func (s *Store) ToggleCart(sessionID string) State {
	return s.update(sessionID, func(st *State) { st.CartOpen = !st.CartOpen })
}

func (s *Store) ToggleMenu(sessionID string) State {
	return s.update(sessionID, func(st *State) { st.MenuOpen = !st.MenuOpen })
}

func (s *Store) ToggleAdmin(sessionID string) State {
	return s.update(sessionID, func(st *State) { st.Admin = !st.Admin })
}

func (s *Store) ToggleTheme(sessionID string) State {
	return s.update(sessionID, func(st *State) { st.DarkMode = !st.DarkMode })
}

func (s *Store) SetLanguage(sessionID string, lang Language) (State, error) {
	if !lang.Valid() {
		return State{}, ErrInvalidLanguage
	}
	return s.update(sessionID, func(st *State) { st.Language = lang }), nil
}

func (s *Store) SetCurrency(sessionID string, cur Currency) (State, error) {
	if !cur.Valid() {
		return State{}, ErrInvalidCurrency
	}
	return s.update(sessionID, func(st *State) { st.Currency = cur }), nil
}

func (s *Store) SetDashboardView(sessionID string, view DashboardView) (State, error) {
	if !view.Valid() {
		return State{}, ErrInvalidView
	}
	return s.update(sessionID, func(st *State) { st.DashboardView = view }), nil
}

func (s *Store) SetHeroVideoURL(sessionID, url string) State {
	return s.update(sessionID, func(st *State) { st.HeroVideoURL = url })
}
