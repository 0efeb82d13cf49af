package domain

// State identifies which field the conversation is currently waiting for.
// The set is closed: an unknown tag loaded from the store is treated as a
// corrupted session and the session is discarded.
type State string

const (
	StateMoneyLoss        State = "money_loss"
	StateName             State = "name"
	StateMobile           State = "mobile"
	StateDOB              State = "dob"
	StateFatherName       State = "father_name"
	StateDistrict         State = "district"
	StatePinCode          State = "pin_code"
	StateTransactionCount State = "transaction_count"
	StateTransDate        State = "trans_date"
	StateTransTime        State = "trans_time"
	StateTransBank        State = "trans_bank"
	StateTransAccount     State = "trans_account"
	StateTransAmount      State = "trans_amount"
	StateTransID          State = "trans_id"
	StateConfirm          State = "confirm"
	StateEdit             State = "edit"
)

// Known reports whether the tag belongs to the closed state set.
func (s State) Known() bool {
	switch s {
	case StateMoneyLoss, StateName, StateMobile, StateDOB, StateFatherName,
		StateDistrict, StatePinCode, StateTransactionCount,
		StateTransDate, StateTransTime, StateTransBank, StateTransAccount,
		StateTransAmount, StateTransID, StateConfirm, StateEdit:
		return true
	}
	return false
}
