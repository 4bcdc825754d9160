package api

// Group is the wire form of a group.
type Group struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	OwnerID     string   `json:"ownerId"`
	Members     []Member `json:"members"`
	CreatedAt   int64    `json:"createdAt"`
}

type Member struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName,omitempty"`
	JoinedAt    int64  `json:"joinedAt"`
}

type Expense struct {
	ID          string  `json:"id"`
	GroupID     string  `json:"groupId"`
	PayerID     string  `json:"payerId"`
	Value       float64 `json:"value"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	CreatedAt   int64   `json:"createdAt"`
}

type Payment struct {
	ID        string  `json:"id"`
	GroupID   string  `json:"groupId"`
	PayerID   string  `json:"payerId"`
	TargetID  string  `json:"targetId"`
	Value     float64 `json:"value"`
	CreatedAt int64   `json:"createdAt"`
}

// GroupService messages.

type CreateGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type GetGroupRequest struct {
	GroupID string `json:"groupId"`
}

// GetGroupResponse carries the group with its expenses and payments.
type GetGroupResponse struct {
	Group    *Group     `json:"group"`
	Expenses []*Expense `json:"expenses"`
	Payments []*Payment `json:"payments"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

type DeleteGroupRequest struct {
	GroupID string `json:"groupId"`
}

type DeleteGroupResponse struct{}

type JoinGroupRequest struct {
	GroupID string `json:"groupId"`
}

type JoinGroupResponse struct {
	Group *Group `json:"group"`
}

type AddExpenseRequest struct {
	GroupID     string  `json:"groupId"`
	PayerID     string  `json:"payerId,omitempty"` // Defaults to the caller
	Value       float64 `json:"value"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}

type AddExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type DeleteExpenseRequest struct {
	GroupID   string `json:"groupId"`
	ExpenseID string `json:"expenseId"`
}

type DeleteExpenseResponse struct{}

type AddPaymentRequest struct {
	GroupID  string  `json:"groupId"`
	PayerID  string  `json:"payerId,omitempty"` // Defaults to the caller
	TargetID string  `json:"targetId"`
	Value    float64 `json:"value"`
}

type AddPaymentResponse struct {
	Payment *Payment `json:"payment"`
}

type DeletePaymentRequest struct {
	GroupID   string `json:"groupId"`
	PaymentID string `json:"paymentId"`
}

type DeletePaymentResponse struct{}

// AnalysisService messages.

type MemberBalance struct {
	MemberID     string  `json:"memberId"`
	BalanceCents int64   `json:"balanceCents"`
	Balance      float64 `json:"balance"`
}

type Settlement struct {
	From        string  `json:"from"`
	To          string  `json:"to"`
	AmountCents int64   `json:"amountCents"`
	Amount      float64 `json:"amount"`
}

type Debt struct {
	MemberID    string  `json:"memberId"`
	AmountCents int64   `json:"amountCents"`
	Amount      float64 `json:"amount"`
}

type CategorySummary struct {
	Category   string  `json:"category"`
	TotalCents int64   `json:"totalCents"`
	Total      float64 `json:"total"`
	Percentage float64 `json:"percentage"`
}

type GetGroupBalancesRequest struct {
	GroupID string `json:"groupId"`
}

type GetGroupBalancesResponse struct {
	Balances           []*MemberBalance `json:"balances"`
	Creditors          []*MemberBalance `json:"creditors"`
	Debtors            []*MemberBalance `json:"debtors"`
	CurrentUserBalance *MemberBalance   `json:"currentUserBalance,omitempty"`
	TotalCents         int64            `json:"totalCents"`
}

type GetSettlementsRequest struct {
	GroupID string `json:"groupId"`
}

type GetSettlementsResponse struct {
	Settlements  []*Settlement `json:"settlements"`
	OwedByOthers []*Debt       `json:"owedByOthers"`
	OwedToOthers []*Debt       `json:"owedToOthers"`
}

type GetCategorySummaryRequest struct {
	GroupID string `json:"groupId"`
}

type GetCategorySummaryResponse struct {
	Categories []*CategorySummary `json:"categories"`
}

type GetGroupAnalysisRequest struct {
	GroupID string `json:"groupId"`
}

type GroupAnalysis struct {
	GroupID           string             `json:"groupId"`
	GroupName         string             `json:"groupName"`
	MyBalanceCents    int64              `json:"myBalanceCents"`
	MyBalance         float64            `json:"myBalance"`
	TotalSpentCents   int64              `json:"totalSpentCents"`
	TotalSpent        float64            `json:"totalSpent"`
	MyTotalSpentCents int64              `json:"myTotalSpentCents"`
	MyTotalSpent      float64            `json:"myTotalSpent"`
	OwedBy            []*Debt            `json:"owedBy"`
	OweTo             []*Debt            `json:"oweTo"`
	Categories        []*CategorySummary `json:"categorySummary"`
	Settlements       []*Settlement      `json:"settlements"`
}

type GetGroupAnalysisResponse struct {
	Analysis *GroupAnalysis `json:"analysis"`
}

type GetGeneralAnalysisRequest struct{}

type GetGeneralAnalysisResponse struct {
	TotalBalanceCents  int64              `json:"totalBalanceCents"`
	TotalBalance       float64            `json:"totalBalance"`
	TotalOwedByMeCents int64              `json:"totalOwedByMeCents"`
	TotalOwedByMe      float64            `json:"totalOwedByMe"`
	TotalOwedToMeCents int64              `json:"totalOwedToMeCents"`
	TotalOwedToMe      float64            `json:"totalOwedToMe"`
	Categories         []*CategorySummary `json:"categorySummary"`
	Groups             []*GroupAnalysis   `json:"groups"`
}
