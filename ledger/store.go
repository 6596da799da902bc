package ledger

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Store persists ledger snapshots in a SQLite database. Each Save
// replaces the stored snapshot inside one transaction, so readers only
// ever see a fully-settled ledger.
type Store struct {
	db *sql.DB
}

// OpenStore opens (or creates) the snapshot database at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS meta (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS assets (
		id       INTEGER PRIMARY KEY,
		owner    TEXT NOT NULL,
		delegate TEXT NOT NULL DEFAULT ''
	);
	CREATE TABLE IF NOT EXISTS operators (
		owner    TEXT NOT NULL,
		operator TEXT NOT NULL,
		PRIMARY KEY (owner, operator)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save replaces the stored snapshot with the ledger's current state.
func (s *Store) Save(l *Ledger) error {
	state := l.Snapshot()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"assets", "operators"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if _, err := tx.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('next_id', ?)`,
		fmt.Sprintf("%d", state.NextID)); err != nil {
		return fmt.Errorf("save next_id: %w", err)
	}

	for id, owner := range state.Owners {
		delegate := ""
		if d, ok := state.Delegates[id]; ok && !d.IsZero() {
			delegate = d.Hex()
		}
		if _, err := tx.Exec(`INSERT INTO assets (id, owner, delegate) VALUES (?, ?, ?)`,
			id, owner.Hex(), delegate); err != nil {
			return fmt.Errorf("save asset %d: %w", id, err)
		}
	}

	for owner, operators := range state.Operators {
		for _, operator := range operators {
			if _, err := tx.Exec(`INSERT INTO operators (owner, operator) VALUES (?, ?)`,
				owner.Hex(), operator.Hex()); err != nil {
				return fmt.Errorf("save operator grant: %w", err)
			}
		}
	}

	return tx.Commit()
}

// Load rebuilds a ledger from the stored snapshot. An empty database
// yields a fresh ledger.
func (s *Store) Load() (*Ledger, error) {
	state := State{
		NextID:    1,
		Owners:    make(map[uint64]Address),
		Delegates: make(map[uint64]Address),
		Operators: make(map[Address][]Address),
	}

	var nextID uint64
	err := s.db.QueryRow(`SELECT value FROM meta WHERE key = 'next_id'`).Scan(&nextID)
	switch {
	case err == sql.ErrNoRows:
		// fresh database
	case err != nil:
		return nil, fmt.Errorf("load next_id: %w", err)
	default:
		state.NextID = nextID
	}

	rows, err := s.db.Query(`SELECT id, owner, delegate FROM assets`)
	if err != nil {
		return nil, fmt.Errorf("load assets: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id uint64
		var ownerHex, delegateHex string
		if err := rows.Scan(&id, &ownerHex, &delegateHex); err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		owner, err := ParseAddress(ownerHex)
		if err != nil {
			return nil, fmt.Errorf("asset %d: %w", id, err)
		}
		state.Owners[id] = owner
		if delegateHex != "" {
			delegate, err := ParseAddress(delegateHex)
			if err != nil {
				return nil, fmt.Errorf("asset %d delegate: %w", id, err)
			}
			state.Delegates[id] = delegate
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load assets: %w", err)
	}

	grants, err := s.db.Query(`SELECT owner, operator FROM operators`)
	if err != nil {
		return nil, fmt.Errorf("load operators: %w", err)
	}
	defer grants.Close()
	for grants.Next() {
		var ownerHex, operatorHex string
		if err := grants.Scan(&ownerHex, &operatorHex); err != nil {
			return nil, fmt.Errorf("scan operator grant: %w", err)
		}
		owner, err := ParseAddress(ownerHex)
		if err != nil {
			return nil, err
		}
		operator, err := ParseAddress(operatorHex)
		if err != nil {
			return nil, err
		}
		state.Operators[owner] = append(state.Operators[owner], operator)
	}
	if err := grants.Err(); err != nil {
		return nil, fmt.Errorf("load operators: %w", err)
	}

	return FromState(state), nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
