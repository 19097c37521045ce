package ccash

import (
	"fmt"
	"time"
)

// TransactionLog is one entry of the v1 transaction log schema, a read-only
// record sourced from the server.
//
// Deprecated: the v1 log endpoint is kept only for CCash servers that predate
// the v2 schema. Use TransactionLogV2 via GetLogV2 where possible.
type TransactionLog struct {
	// To is the account the funds were sent to.
	To string `json:"to"`
	// From is the account the funds were sent from.
	From string `json:"from"`
	// Amount is the amount of CSH sent.
	Amount uint32 `json:"amount"`
	// Time is when the funds were sent, in Unix epoch seconds.
	Time int64 `json:"time"`
}

func (l TransactionLog) String() string {
	return fmt.Sprintf("%s: %s (%d CSH) -> %s",
		time.Unix(l.Time, 0).UTC().Format(time.RFC3339), l.From, l.Amount, l.To)
}

// TransactionLogV2 is one entry of the v2 transaction log schema, phrased
// from the requesting user's point of view: who the other party was and
// whether the funds came in or went out.
type TransactionLogV2 struct {
	// Counterparty is the other account involved in the transaction.
	Counterparty string `json:"counterparty"`
	// Receiving is true if the requesting user received the funds.
	Receiving bool `json:"receiving"`
	// Amount is the amount of CSH moved.
	Amount uint32 `json:"amount"`
	// Time is when the funds were moved, in Unix epoch seconds.
	Time int64 `json:"time"`
}

func (l TransactionLogV2) String() string {
	ts := time.Unix(l.Time, 0).UTC().Format(time.RFC3339)
	if l.Receiving {
		return fmt.Sprintf("%s: received %d CSH from %s", ts, l.Amount, l.Counterparty)
	}
	return fmt.Sprintf("%s: sent %d CSH to %s", ts, l.Amount, l.Counterparty)
}
