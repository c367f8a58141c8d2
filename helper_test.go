package gitcash

// Helpers to build known-valid accounts from constants in tests.

func user(name string) Account   { return Account{Type: User, Name: name} }
func pos(name string) Account    { return Account{Type: PointOfSale, Name: name} }
func source(name string) Account { return Account{Type: Source, Name: name} }

// testConfig is the repository configuration used across the engine
// tests: Swiss francs with the usual 100 rappen divisor.
var testConfig = &Config{
	Name:     "Test ledger",
	Currency: Currency{Code: "CHF", Divisor: 100},
}
