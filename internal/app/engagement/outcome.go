package engagement

// Reason explains what an intent did. Invalid intents are not errors: they
// resolve to a no-op Outcome carrying one of the no-op reasons.
type Reason string

const (
	// Applied reasons
	ReasonCompleted       Reason = "completed"
	ReasonPurchased       Reason = "purchased"
	ReasonFirstCompletion Reason = "first_completion"
	ReasonNewRecord       Reason = "new_record"

	// No-op reasons
	ReasonNotFound          Reason = "not_found"
	ReasonAlreadyCompleted  Reason = "already_completed"
	ReasonAlreadyPurchased  Reason = "already_purchased"
	ReasonInsufficientFunds Reason = "insufficient_funds"
	ReasonNoNewRecord       Reason = "no_new_record"
)

// Outcome is the result of one intent.
type Outcome struct {
	Applied bool   `json:"applied"`
	Reason  Reason `json:"reason"`
	Delta   int64  `json:"delta"`   // signed coin change
	Balance int64  `json:"balance"` // balance after the intent
}

func noop(reason Reason, balance int64) Outcome {
	return Outcome{Reason: reason, Balance: balance}
}
