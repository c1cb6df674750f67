package portalsim

import (
	"github.com/hashicorp/go-memdb"
	"github.com/izlytools/izly-qr/internal/random"
)

var (
	verificationTokenLength = 32
	sessionTokenLength      = 64
)

var dbSchema = &memdb.DBSchema{
	Tables: map[string]*memdb.TableSchema{
		"accounts": {
			Name: "accounts",
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:         "id",
					Unique:       true,
					AllowMissing: false,
					Indexer:      &memdb.StringFieldIndex{Field: "Username"},
				},
			},
		},
		"sessions": {
			Name: "sessions",
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:         "id",
					Unique:       true,
					AllowMissing: false,
					Indexer:      &memdb.StringFieldIndex{Field: "Token"},
				},
				"username": {
					Name:         "username",
					Unique:       false,
					AllowMissing: false,
					Indexer:      &memdb.StringFieldIndex{Field: "Username"},
				},
			},
		},
		"verifications": {
			Name: "verifications",
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:         "id",
					Unique:       true,
					AllowMissing: false,
					Indexer:      &memdb.StringFieldIndex{Field: "Token"},
				},
			},
		},
	},
}

type sessionRecord struct {
	Token    string
	Username string
}

type verificationRecord struct {
	Token string
}

// store represents the simulator's account, session and verification token state,
// held in a hashicorp/go-memdb database
type store struct {
	db *memdb.MemDB
}

// newStore creates a new store seeded with the given accounts
func newStore(accounts []Account) (*store, error) {
	db, err := memdb.NewMemDB(dbSchema)
	if err != nil {
		return nil, err
	}

	txn := db.Txn(true)
	defer txn.Abort()
	for i := range accounts {
		if err := txn.Insert("accounts", &accounts[i]); err != nil {
			return nil, err
		}
	}
	txn.Commit()

	return &store{db}, nil
}

// IssueVerificationToken creates and stores a new one-time logon form token
func (store *store) IssueVerificationToken() (string, error) {
	token := random.String(verificationTokenLength, random.CharsetTokens)

	txn := store.db.Txn(true)
	defer txn.Abort()
	if err := txn.Insert("verifications", &verificationRecord{Token: token}); err != nil {
		return "", err
	}
	txn.Commit()

	return token, nil
}

// ConsumeVerificationToken invalidates the given token and reports whether it was a known one
func (store *store) ConsumeVerificationToken(token string) (bool, error) {
	txn := store.db.Txn(true)
	defer txn.Abort()

	obj, err := txn.First("verifications", "id", token)
	if err != nil {
		return false, err
	}
	if obj == nil {
		return false, nil
	}
	if err := txn.Delete("verifications", obj); err != nil {
		return false, err
	}
	txn.Commit()

	return true, nil
}

// Authenticate checks the given credentials and opens a new session on success.
// The second return value reports whether the credentials were accepted.
func (store *store) Authenticate(username, password string) (string, bool, error) {
	txn := store.db.Txn(true)
	defer txn.Abort()

	obj, err := txn.First("accounts", "id", username)
	if err != nil {
		return "", false, err
	}
	if obj == nil || obj.(*Account).Password != password {
		return "", false, nil
	}

	token := random.String(sessionTokenLength, random.CharsetTokens)
	if err := txn.Insert("sessions", &sessionRecord{Token: token, Username: username}); err != nil {
		return "", false, err
	}
	txn.Commit()

	return token, true, nil
}

// AccountBySession resolves the account bound to the given session token.
// It returns nil if the token does not belong to a live session.
func (store *store) AccountBySession(token string) (*Account, error) {
	txn := store.db.Txn(false)

	obj, err := txn.First("sessions", "id", token)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, nil
	}

	account, err := txn.First("accounts", "id", obj.(*sessionRecord).Username)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, nil
	}
	return account.(*Account), nil
}
