package store

import "go.vetclinic.dev/vetclient/clients"

// CreateTableStmt bootstraps the database with the "clients" table.
const CreateTableStmt = `
CREATE TABLE IF NOT EXISTS clients
(
    id          INTEGER PRIMARY KEY,
    first_name  TEXT,
    last_name   TEXT,
    phone_num   TEXT,
    email       TEXT,
    address     TEXT,
    city        TEXT,
    postal_code TEXT
);
`

// FetchStmt selects the client having ID ($1). NULL columns read as empty.
const FetchStmt = `
SELECT
    id,
    COALESCE(first_name, ''),
    COALESCE(last_name, ''),
    COALESCE(phone_num, ''),
    COALESCE(email, ''),
    COALESCE(address, ''),
    COALESCE(city, ''),
    COALESCE(postal_code, '')
FROM clients WHERE id = ?;
`

// SeedStmt inserts a client row unless one already exists with its ID.
const SeedStmt = `
INSERT INTO clients
(
    id,
    first_name,
    last_name,
    phone_num,
    email,
    address,
    city,
    postal_code
) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO NOTHING;
`

// Statements which update a single column ($1) of the client having ID ($2).
const (
	UpdateFirstNameStmt  = `UPDATE clients SET first_name = ? WHERE id = ?;`
	UpdateLastNameStmt   = `UPDATE clients SET last_name = ? WHERE id = ?;`
	UpdatePhoneNumStmt   = `UPDATE clients SET phone_num = ? WHERE id = ?;`
	UpdateEmailStmt      = `UPDATE clients SET email = ? WHERE id = ?;`
	UpdateAddressStmt    = `UPDATE clients SET address = ? WHERE id = ?;`
	UpdateCityStmt       = `UPDATE clients SET city = ? WHERE id = ?;`
	UpdatePostalCodeStmt = `UPDATE clients SET postal_code = ? WHERE id = ?;`
)

// updateStmts maps each editable Field to its update statement.
var updateStmts = map[clients.Field]string{
	clients.FirstName:  UpdateFirstNameStmt,
	clients.LastName:   UpdateLastNameStmt,
	clients.PhoneNum:   UpdatePhoneNumStmt,
	clients.Email:      UpdateEmailStmt,
	clients.Address:    UpdateAddressStmt,
	clients.City:       UpdateCityStmt,
	clients.PostalCode: UpdatePostalCodeStmt,
}
