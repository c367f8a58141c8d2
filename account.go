package gitcash

import (
	"fmt"
	"strings"
)

// AccountType identifies the role of an account in the ledger.
type AccountType int

const (
	// User accounts can both send and receive money.
	User AccountType = iota
	// PointOfSale accounts can only receive money (a merchant or till).
	PointOfSale
	// Source accounts are used to deposit money into the system (e.g. cash).
	Source
)

// String returns the type tag used in the account string encoding.
func (t AccountType) String() string {
	switch t {
	case User:
		return "user"
	case PointOfSale:
		return "pos"
	case Source:
		return "source"
	default:
		return "unknown"
	}
}

// ParseAccountType parses a type tag into an AccountType.
func ParseAccountType(s string) (AccountType, error) {
	switch s {
	case "user":
		return User, nil
	case "pos":
		return PointOfSale, nil
	case "source":
		return Source, nil
	default:
		return 0, &TransactionParseError{Msg: fmt.Sprintf("invalid account type: %q", s)}
	}
}

// Account is an immutable participant in a transaction, identified by its
// type and name. An account exists only by appearing in at least one
// transaction; there is no account registry.
type Account struct {
	Type AccountType
	Name string
}

// NewUser creates a user account, validating the name.
func NewUser(name string) (Account, error) {
	if err := ValidateAccountName(name); err != nil {
		return Account{}, err
	}
	return Account{Type: User, Name: name}, nil
}

// NewPointOfSale creates a point-of-sale account, validating the name.
func NewPointOfSale(name string) (Account, error) {
	if err := ValidateAccountName(name); err != nil {
		return Account{}, err
	}
	return Account{Type: PointOfSale, Name: name}, nil
}

// NewSource creates a source account, validating the name.
func NewSource(name string) (Account, error) {
	if err := ValidateAccountName(name); err != nil {
		return Account{}, err
	}
	return Account{Type: Source, Name: name}, nil
}

// ValidateAccountName checks that a name is non-empty and strictly ASCII
// alphanumeric. Everything else (spaces, punctuation, colons) would break
// the "type:name" encoding or the commit message payload.
func ValidateAccountName(name string) error {
	if name == "" {
		return &ValidationError{Msg: "account name must not be empty"}
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		default:
			return &ValidationError{Msg: fmt.Sprintf("account name %q contains invalid character %q", name, r)}
		}
	}
	return nil
}

// ParseAccount parses the canonical "type:name" encoding. It is the
// inverse of Account.String for every valid account.
func ParseAccount(s string) (Account, error) {
	tag, name, found := strings.Cut(s, ":")
	if !found {
		return Account{}, &TransactionParseError{Msg: fmt.Sprintf("account %q does not contain ':'", s)}
	}
	accountType, err := ParseAccountType(tag)
	if err != nil {
		return Account{}, err
	}
	// The name itself must not contain a colon, so "user:a:b" is rejected
	// here rather than truncated to "a".
	if err := ValidateAccountName(name); err != nil {
		return Account{}, &TransactionParseError{Msg: fmt.Sprintf("invalid account %q", s), Err: err}
	}
	return Account{Type: accountType, Name: name}, nil
}

// String returns the canonical "type:name" encoding.
func (a Account) String() string {
	return a.Type.String() + ":" + a.Name
}

// MarshalText implements encoding.TextMarshaler so accounts serialize as
// their string encoding in TOML payloads.
func (a Account) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Account) UnmarshalText(text []byte) error {
	parsed, err := ParseAccount(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
