package creds

import (
	"time"

	"github.com/twit2/t2-auth/internal/server/hashing"
)

// Role of a credential's subject.
type Role int

const (
	RoleUser  Role = 0
	RoleAdmin Role = 1
)

// SchemaVersion tags documents written by this build; migration tooling uses
// it to distinguish pre-migration rows.
const SchemaVersion = 1

// Credential is the sole persistent entity of the service: a username plus
// password hash and metadata for one subject. HashVal is opaque and must only
// ever be checked through the hashing package, never compared by equality.
type Credential struct {
	OwnerID     string
	Username    string
	HashType    hashing.HashAlgo
	HashVal     string
	Role        Role
	LastUpdated time.Time
	SchemaVer   int
}
