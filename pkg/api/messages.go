package api

// Group is a group with its members.
type Group struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedBy string    `json:"created_by"`
	CreatedAt int64     `json:"created_at"`
	Members   []*Member `json:"members,omitempty"`
}

// Member is a member profile as seen from one group.
type Member struct {
	ID            string `json:"id"`
	DisplayName   string `json:"display_name"`
	Email         string `json:"email,omitempty"`
	PaymentHandle string `json:"payment_handle,omitempty"`
	Role          string `json:"role,omitempty"`
	Placeholder   bool   `json:"placeholder"`
}

type CreateGroupRequest struct {
	Name string `json:"name"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type GetGroupRequest struct {
	GroupID string `json:"group_id"`
}

type GetGroupResponse struct {
	Group *Group `json:"group"`
}

// InviteMemberRequest adds an existing profile when MemberID is set, and
// otherwise creates a placeholder from DisplayName and Email.
type InviteMemberRequest struct {
	GroupID     string `json:"group_id"`
	MemberID    string `json:"member_id,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	Email       string `json:"email,omitempty"`
}

type InviteMemberResponse struct {
	Member *Member `json:"member"`
}

type UpdatePlaceholderRequest struct {
	GroupID       string `json:"group_id"`
	MemberID      string `json:"member_id"`
	DisplayName   string `json:"display_name"`
	Email         string `json:"email,omitempty"`
	PaymentHandle string `json:"payment_handle,omitempty"`
}

type UpdatePlaceholderResponse struct {
	Member *Member `json:"member"`
}

type RemoveMemberRequest struct {
	GroupID  string `json:"group_id"`
	MemberID string `json:"member_id"`
}

type RemoveMemberResponse struct{}

// Split describes how an amount is divided.
//
// Policy is one of "equal", "shares", "percentages" or "amounts". Weights
// (for shares and percentages) and Amounts are positional with Participants.
type Split struct {
	Policy       string   `json:"policy"`
	Participants []string `json:"participants,omitempty"`
	Weights      []string `json:"weights,omitempty"`
	Amounts      []string `json:"amounts,omitempty"`
}

// Allocation is one participant's part of an amount.
type Allocation struct {
	MemberID string `json:"member_id"`
	// Share is an exact fraction such as "1/3".
	Share   string `json:"share,omitempty"`
	Percent string `json:"percent,omitempty"`
	Amount  string `json:"amount"`
}

type PreviewSplitRequest struct {
	Amount string `json:"amount"`
	Split  Split  `json:"split"`
}

type PreviewSplitResponse struct {
	Allocations []*Allocation `json:"allocations"`
}

// ShareEdit is a percentage typed by the user, in hundredths of a percent.
type ShareEdit struct {
	MemberID string `json:"member_id"`
	Units    int64  `json:"units"`
}

type RebalanceSharesRequest struct {
	Participants []string     `json:"participants"`
	Edits        []*ShareEdit `json:"edits,omitempty"`
	// Amount, when set, also returns each share as a currency amount.
	Amount string `json:"amount,omitempty"`
}

type ShareEntry struct {
	MemberID string `json:"member_id"`
	Units    int64  `json:"units"`
	Locked   bool   `json:"locked"`
	Amount   string `json:"amount,omitempty"`
}

type RebalanceSharesResponse struct {
	Entries []*ShareEntry `json:"entries"`
	Total   int64         `json:"total"`
	Valid   bool          `json:"valid"`
}

type Expense struct {
	ID          string          `json:"id"`
	GroupID     string          `json:"group_id"`
	CreatedBy   string          `json:"created_by"`
	PaidBy      string          `json:"paid_by"`
	Description string          `json:"description"`
	Amount      string          `json:"amount"`
	Date        string          `json:"date"`
	CreatedAt   int64           `json:"created_at"`
	Splits      []*ExpenseSplit `json:"splits"`
}

type ExpenseSplit struct {
	MemberID string `json:"member_id"`
	Share    string `json:"share"`
	Amount   string `json:"amount"`
}

type SubmitExpenseRequest struct {
	IdempotencyKey string `json:"idempotency_key,omitempty"`
	GroupID        string `json:"group_id"`
	Description    string `json:"description"`
	Amount         string `json:"amount"`
	Date           string `json:"date,omitempty"`
	PaidBy         string `json:"paid_by,omitempty"`
	Split          Split  `json:"split"`
}

type SubmitExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type ListExpensesRequest struct {
	GroupID string `json:"group_id"`
}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

type DeleteExpenseRequest struct {
	ExpenseID string `json:"expense_id"`
}

type DeleteExpenseResponse struct{}

// Balance is a member's net position. Positive means the member is owed.
type Balance struct {
	MemberID string `json:"member_id"`
	Net      string `json:"net"`
	Paid     string `json:"paid"`
	Owed     string `json:"owed"`
}

// Debt is an amount From owes To.
type Debt struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

type GetBalancesRequest struct {
	GroupID string `json:"group_id"`
}

type GetBalancesResponse struct {
	Version    int64      `json:"version"`
	Balances   []*Balance `json:"balances"`
	Debts      []*Debt    `json:"debts"`
	Simplified []*Debt    `json:"simplified"`
}

type Settlement struct {
	ID        string `json:"id"`
	GroupID   string `json:"group_id"`
	PaidBy    string `json:"paid_by"`
	PaidTo    string `json:"paid_to"`
	Amount    string `json:"amount"`
	ExpenseID string `json:"expense_id,omitempty"`
	CreatedAt int64  `json:"created_at"`
	CreatedBy string `json:"created_by"`
}

type AddSettlementRequest struct {
	GroupID   string `json:"group_id"`
	PaidBy    string `json:"paid_by"`
	PaidTo    string `json:"paid_to"`
	Amount    string `json:"amount"`
	ExpenseID string `json:"expense_id,omitempty"`
}

type AddSettlementResponse struct {
	Settlement *Settlement `json:"settlement"`
}

type ListSettlementsRequest struct {
	GroupID string `json:"group_id"`
}

type ListSettlementsResponse struct {
	Settlements []*Settlement `json:"settlements"`
}
