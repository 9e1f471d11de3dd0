// Package frontend holds the client-side order lifecycle logic: the view
// state, the coordinator that sequences order creation and its single
// deferred status check, and the view synchronizers that re-fetch
// authoritative data from the two services.
package frontend

import "sync"

// BalanceNotFound is rendered when a balance lookup misses. It is never
// confusable with a real balance, including zero.
const BalanceNotFound = "not found"

type OrderRow struct {
	ID          int64
	Description string
	Amount      int64
	Status      string
	Style       string
}

type OrderPanel struct {
	Visible bool
	OrderID int64
	Status  string
	Style   string
}

type HistoryView struct {
	Loading bool
	Err     string
	Empty   bool
	Rows    []OrderRow
}

// View is the explicit, mutex-guarded view state shared by user-triggered
// actions and the deferred status check. Writes are last-writer-wins; there
// is no ordering between independent refreshes.
type View struct {
	mu sync.Mutex

	balanceUser string
	historyUser string
	balanceText string

	panel   OrderPanel
	history HistoryView
}

func NewView() *View {
	return &View{}
}

func (v *View) SetBalanceUser(id string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.balanceUser = id
}

func (v *View) BalanceUser() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.balanceUser
}

func (v *View) SetHistoryUser(id string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.historyUser = id
}

func (v *View) HistoryUser() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.historyUser
}

func (v *View) SetBalanceText(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.balanceText = text
}

func (v *View) BalanceText() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.balanceText
}

// ShowOrderResult reveals the created-order panel for a fresh order.
func (v *View) ShowOrderResult(orderID int64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.panel = OrderPanel{Visible: true, OrderID: orderID}
}

func (v *View) SetOrderStatus(status, style string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.panel.Status = status
	v.panel.Style = style
}

func (v *View) Panel() OrderPanel {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.panel
}

func (v *View) SetHistoryLoading() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.history = HistoryView{Loading: true}
}

func (v *View) SetHistoryError(msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.history = HistoryView{Err: msg}
}

func (v *View) SetHistoryEmpty() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.history = HistoryView{Empty: true}
}

func (v *View) SetHistoryRows(rows []OrderRow) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.history = HistoryView{Rows: rows}
}

func (v *View) History() HistoryView {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := v.history
	out.Rows = append([]OrderRow(nil), v.history.Rows...)
	return out
}
