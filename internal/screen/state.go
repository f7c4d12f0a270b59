// Package screen models the view state of the wallet and extract
// screens as explicit records. The source screens tracked popup
// visibility as independent booleans; popups are mutually exclusive,
// so "which popup is open" is a single tagged variant here.
package screen

import "errors"

// ActivePopup is the single popup open on the wallet screen, if any.
type ActivePopup string

const (
	PopupNone       ActivePopup = "none"
	PopupValue      ActivePopup = "value"
	PopupGoal       ActivePopup = "goal"
	PopupWithdraw   ActivePopup = "withdraw"
	PopupIconPicker ActivePopup = "icon_picker"
)

// IsValid checks if the popup tag is a member of the variant
func (p ActivePopup) IsValid() bool {
	switch p {
	case PopupNone, PopupValue, PopupGoal, PopupWithdraw, PopupIconPicker:
		return true
	}
	return false
}

var ErrInvalidPopup = errors.New("invalid popup tag")

// WalletState is the restorable view state of one wallet screen.
type WalletState struct {
	WalletID    string      `json:"wallet_id"`
	ActivePopup ActivePopup `json:"active_popup"`
	ShowBalance bool        `json:"show_balance"`
}

// ExtractState is the restorable view state of the extract screen.
type ExtractState struct {
	ShowBalance  bool   `json:"show_balance"`
	FilterCode   string `json:"filter_code,omitempty"`
	GroupingOpen bool   `json:"grouping_open"`
}

// DefaultWalletState returns the state a freshly opened wallet screen has.
func DefaultWalletState(walletID string) WalletState {
	return WalletState{
		WalletID:    walletID,
		ActivePopup: PopupNone,
		ShowBalance: true,
	}
}

// Validate rejects states that could not have been produced by the UI.
func (s WalletState) Validate() error {
	if !s.ActivePopup.IsValid() {
		return ErrInvalidPopup
	}
	return nil
}
