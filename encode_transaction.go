package gitcash

import (
	"bytes"
	"strings"

	"github.com/BurntSushi/toml"
)

// TransactionMarker is the prefix a commit message's first line must carry
// for the commit to be considered ledger data.
const TransactionMarker = "Transaction: "

// payloadFence delimits the TOML payload inside the commit message body.
const payloadFence = "---"

// transactionPayload is the TOML shape of the embedded record.
type transactionPayload struct {
	From        Account      `toml:"from"`
	To          Account      `toml:"to"`
	Amount      int32        `toml:"amount"`
	Description string       `toml:"description,omitempty"`
	Meta        *metaPayload `toml:"meta,omitempty"`
}

type metaPayload struct {
	Class string `toml:"class,omitempty"`
	EAN   uint64 `toml:"ean,omitempty"`
}

// IsTransactionMessage reports whether a commit message carries ledger
// data. Commits without the marker are ordinary commits, not failures.
func IsTransactionMessage(message string) bool {
	return strings.HasPrefix(message, TransactionMarker)
}

// EncodeCommitMessage renders the full commit message for a transaction:
// the marker line with a human-readable summary, followed by the TOML
// payload fenced by "---" lines.
func EncodeCommitMessage(tx Transaction, cfg *Config) (string, error) {
	payload := transactionPayload{
		From:        tx.From,
		To:          tx.To,
		Amount:      tx.Amount,
		Description: tx.Description,
	}
	if tx.Meta != nil {
		payload.Meta = &metaPayload{Class: tx.Meta.Class, EAN: tx.Meta.EAN}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(payload); err != nil {
		return "", &TransactionParseError{Msg: "could not serialize transaction payload", Err: err}
	}

	var msg strings.Builder
	msg.WriteString(TransactionMarker)
	msg.WriteString(tx.Summary(cfg))
	msg.WriteString("\n\n")
	msg.WriteString(payloadFence)
	msg.WriteString("\n")
	msg.Write(buf.Bytes())
	msg.WriteString(payloadFence)
	msg.WriteString("\n")
	return msg.String(), nil
}

// DecodeCommitMessage extracts the transaction embedded in a commit
// message. The caller is expected to have filtered non-ledger commits
// with IsTransactionMessage; any structural problem here is fatal for
// the commit.
func DecodeCommitMessage(message string) (Transaction, error) {
	if !IsTransactionMessage(message) {
		return Transaction{}, &TransactionParseError{Msg: "message does not start with the transaction marker"}
	}

	// Collect the lines strictly between the first and second fence.
	var payload []string
	inPayload := false
	closed := false
	for _, line := range strings.Split(message, "\n") {
		switch {
		case !inPayload && line == payloadFence:
			inPayload = true
		case inPayload && line == payloadFence:
			closed = true
		case inPayload && !closed:
			payload = append(payload, line)
		}
		if closed {
			break
		}
	}
	if !inPayload || !closed {
		return Transaction{}, &TransactionParseError{Msg: "message has no '---' delimited payload"}
	}

	var p transactionPayload
	md, err := toml.Decode(strings.Join(payload, "\n"), &p)
	if err != nil {
		return Transaction{}, &TransactionParseError{Msg: "invalid TOML transaction data", Err: err}
	}
	for _, key := range []string{"from", "to", "amount"} {
		if !md.IsDefined(key) {
			return Transaction{}, &TransactionParseError{Msg: "payload is missing required key " + key}
		}
	}

	tx := Transaction{
		From:        p.From,
		To:          p.To,
		Amount:      p.Amount,
		Description: p.Description,
	}
	if p.Meta != nil {
		tx.Meta = &TransactionMeta{Class: p.Meta.Class, EAN: p.Meta.EAN}
	}
	return tx, nil
}
