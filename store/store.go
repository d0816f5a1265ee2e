// Package store persists client records in an embedded SQLite database.
//
// All SQL issued by a Store is prepared from the fixed statements of
// sql_statements.go when the Store is opened. Each editable clients.Field has
// its own UPDATE statement, so column names are never formatted into SQL at
// runtime. Every mutation is a single auto-committed statement, and is durable
// before the Store method which issued it returns.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"go.vetclinic.dev/vetclient/clients"
	"go.vetclinic.dev/vetclient/metrics"
)

// ErrClosed is returned by operations of a Store which has been closed.
var ErrClosed = errors.New("store is closed")

// Config configures the SQLite database of a Store.
type Config struct {
	Path        string        `long:"path" env:"PATH" default:"veterinary_db.sqlite3" description:"Path of the SQLite database file. It's created if it doesn't exist"`
	BusyTimeout time.Duration `long:"busy-timeout" env:"BUSY_TIMEOUT" default:"5s" description:"Duration to wait on a locked database before failing"`
}

// uriPathEscaper escapes characters of a file path which SQLite would otherwise
// read as URI syntax. SQLite percent-decodes the path of a "file:" URI.
var uriPathEscaper = strings.NewReplacer("%", "%25", "?", "%3f", "#", "%23")

// Store is a record store of clients, backed by a SQLite database.
type Store struct {
	// DB is the opened SQLite database. It's limited to a single connection.
	DB *sql.DB

	fetch   *sql.Stmt
	seed    *sql.Stmt
	updates map[clients.Field]*sql.Stmt
	closed  bool
}

// Open the SQLite database described by Config, create the "clients" table if
// it doesn't exist, and prepare the Store's statements.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, errors.New("expected store path")
	}
	var values = url.Values{
		"_busy_timeout": {fmt.Sprint(cfg.BusyTimeout.Milliseconds())},
		"_synchronous":  {"FULL"},
	}
	var dsn = fmt.Sprintf("file:%s?%s", uriPathEscaper.Replace(cfg.Path), values.Encode())

	var db, err = sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errors.WithMessage(err, "opening database")
	}
	db.SetMaxOpenConns(1)

	var s = &Store{
		DB:      db,
		updates: make(map[clients.Field]*sql.Stmt, len(updateStmts)),
	}
	if err = s.open(ctx); err != nil {
		s.release()
		return nil, err
	}

	var version, _, _ = sqlite3.Version()
	log.WithFields(log.Fields{
		"path":    cfg.Path,
		"sqlite3": version,
	}).Debug("opened client store")

	return s, nil
}

func (s *Store) open(ctx context.Context) error {
	var err error

	if err = s.DB.PingContext(ctx); err != nil {
		return errors.WithMessage(err, "connecting to database")
	} else if err = s.EnsureSchema(ctx); err != nil {
		return err
	} else if s.fetch, err = s.DB.PrepareContext(ctx, FetchStmt); err != nil {
		return errors.WithMessage(err, "preparing fetch statement")
	} else if s.seed, err = s.DB.PrepareContext(ctx, SeedStmt); err != nil {
		return errors.WithMessage(err, "preparing seed statement")
	}
	for _, f := range clients.Fields {
		if s.updates[f], err = s.DB.PrepareContext(ctx, updateStmts[f]); err != nil {
			return errors.WithMessagef(err, "preparing %s update statement", f)
		}
	}
	return nil
}

// EnsureSchema creates the "clients" table if it doesn't already exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if s.closed {
		return ErrClosed
	}
	if _, err := s.DB.ExecContext(ctx, CreateTableStmt); err != nil {
		return errors.WithMessage(err, "creating clients table")
	}
	return nil
}

// Fetch the client having |id|. If there is no such client, Fetch returns
// clients.ErrNotFound.
func (s *Store) Fetch(ctx context.Context, id int64) (clients.Record, error) {
	if s.closed {
		return clients.Record{}, ErrClosed
	}
	var r clients.Record
	var err = s.fetch.QueryRowContext(ctx, id).Scan(
		&r.ID,
		&r.FirstName,
		&r.LastName,
		&r.PhoneNum,
		&r.Email,
		&r.Address,
		&r.City,
		&r.PostalCode,
	)

	switch err {
	case nil:
		metrics.StoreOperationsTotal.WithLabelValues(metrics.OpFetch, metrics.Ok).Inc()
		return r, nil
	case sql.ErrNoRows:
		metrics.StoreOperationsTotal.WithLabelValues(metrics.OpFetch, metrics.NotFound).Inc()
		return clients.Record{}, errors.WithMessagef(clients.ErrNotFound, "id %d", id)
	default:
		metrics.StoreOperationsTotal.WithLabelValues(metrics.OpFetch, metrics.Fail).Inc()
		return clients.Record{}, errors.WithMessagef(err, "fetching client %d", id)
	}
}

// UpdateField sets Field |f| of the client having |id| to |value|. An |f|
// which isn't an enumerated clients.Field fails with clients.ErrInvalidField,
// and the database is not touched. If there is no such client, UpdateField
// returns clients.ErrNotFound.
func (s *Store) UpdateField(ctx context.Context, id int64, f clients.Field, value string) error {
	if s.closed {
		return ErrClosed
	}
	var stmt, ok = s.updates[f]
	if !ok {
		metrics.StoreOperationsTotal.WithLabelValues(metrics.OpUpdate, metrics.Invalid).Inc()
		return errors.WithMessagef(clients.ErrInvalidField, "field %d", int(f))
	}

	var res, err = stmt.ExecContext(ctx, value, id)
	var n int64
	if err == nil {
		n, err = res.RowsAffected()
	}
	if err != nil {
		metrics.StoreOperationsTotal.WithLabelValues(metrics.OpUpdate, metrics.Fail).Inc()
		return errors.WithMessagef(err, "updating %s of client %d", f, id)
	} else if n == 0 {
		metrics.StoreOperationsTotal.WithLabelValues(metrics.OpUpdate, metrics.NotFound).Inc()
		return errors.WithMessagef(clients.ErrNotFound, "id %d", id)
	}
	metrics.StoreOperationsTotal.WithLabelValues(metrics.OpUpdate, metrics.Ok).Inc()

	log.WithFields(log.Fields{
		"id":    id,
		"field": f.String(),
	}).Debug("updated client field")

	return nil
}

// SeedDefault inserts the clients.Sample record, unless a client having
// clients.DefaultID already exists. It returns true if a row was inserted.
func (s *Store) SeedDefault(ctx context.Context) (bool, error) {
	if s.closed {
		return false, ErrClosed
	}
	var r = clients.Sample()

	var res, err = s.seed.ExecContext(ctx,
		r.ID,
		r.FirstName,
		r.LastName,
		r.PhoneNum,
		r.Email,
		r.Address,
		r.City,
		r.PostalCode,
	)
	var n int64
	if err == nil {
		n, err = res.RowsAffected()
	}
	if err != nil {
		metrics.StoreOperationsTotal.WithLabelValues(metrics.OpSeed, metrics.Fail).Inc()
		return false, errors.WithMessage(err, "seeding default client")
	}
	metrics.StoreOperationsTotal.WithLabelValues(metrics.OpSeed, metrics.Ok).Inc()

	if n != 0 {
		log.WithField("id", r.ID).Info("seeded default client")
	}
	return n != 0, nil
}

// Close the Store, releasing its statements and database. Close may be called
// once; further calls return ErrClosed.
func (s *Store) Close() error {
	if s.closed {
		return ErrClosed
	}
	return s.release()
}

func (s *Store) release() error {
	s.closed = true

	var stmts = []*sql.Stmt{s.fetch, s.seed}
	for _, stmt := range s.updates {
		stmts = append(stmts, stmt)
	}
	var err error
	for _, stmt := range stmts {
		if stmt == nil {
			continue
		} else if sErr := stmt.Close(); sErr != nil && err == nil {
			err = errors.WithMessage(sErr, "closing statement")
		}
	}
	if dbErr := s.DB.Close(); dbErr != nil {
		err = errors.WithMessage(dbErr, "closing database")
	}
	return err
}
