package flashclass

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

type credentialRecord struct {
	bun.BaseModel `bun:"table:credentials,alias:cred"`
	Key           string `bun:"key,pk" json:"key"`
	Value         string `bun:"value,notnull" json:"value"`
}

// BunStore keeps the credential record in a local sqlite database. It keeps
// the synchronous CredentialStore contract: lookups of absent keys return
// ok=false and write failures are logged, not raised.
type BunStore struct {
	db     *bun.DB
	logger Logger
}

var _ CredentialStore = (*BunStore)(nil)

// NewBunStore opens (creating if needed) the sqlite database at dsn and
// ensures the credentials table exists.
func NewBunStore(dsn string) (*BunStore, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, err
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())

	s := &BunStore{db: db, logger: defLogger{}}
	if _, err := db.NewCreateTable().
		Model((*credentialRecord)(nil)).
		IfNotExists().
		Exec(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

// NewBunStoreWithDB wraps an existing Bun handle, for hosts that already
// carry a local database.
func NewBunStoreWithDB(db *bun.DB) (*BunStore, error) {
	s := &BunStore{db: db, logger: defLogger{}}
	if _, err := db.NewCreateTable().
		Model((*credentialRecord)(nil)).
		IfNotExists().
		Exec(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *BunStore) WithLogger(logger Logger) *BunStore {
	if logger != nil {
		s.logger = logger
	}
	return s
}

func (s *BunStore) Get(key string) (string, bool) {
	rec := new(credentialRecord)
	err := s.db.NewSelect().
		Model(rec).
		Where("key = ?", key).
		Scan(context.Background())
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.Error("credential lookup failed for %q: %v", key, err)
		}
		return "", false
	}
	return rec.Value, true
}

func (s *BunStore) Set(key, value string) {
	rec := &credentialRecord{Key: key, Value: value}
	_, err := s.db.NewInsert().
		Model(rec).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Exec(context.Background())
	if err != nil {
		s.logger.Error("credential write failed for %q: %v", key, err)
	}
}

func (s *BunStore) Remove(key string) {
	_, err := s.db.NewDelete().
		Model((*credentialRecord)(nil)).
		Where("key = ?", key).
		Exec(context.Background())
	if err != nil {
		s.logger.Error("credential delete failed for %q: %v", key, err)
	}
}

// Close releases the underlying database handle.
func (s *BunStore) Close() error {
	return s.db.Close()
}
