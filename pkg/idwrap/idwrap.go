package idwrap

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

// IDWrap wraps a ULID so the rest of the codebase never touches the raw
// ulid type directly. Ids travel as 26-char strings on the wire and as
// 16-byte blobs in the database.
type IDWrap struct {
	ulid ulid.ULID
}

func New(u ulid.ULID) IDWrap {
	return IDWrap{ulid: u}
}

func NewNow() IDWrap {
	return IDWrap{ulid: ulid.Make()}
}

func NewText(s string) (IDWrap, error) {
	u, err := ulid.Parse(s)
	if err != nil {
		return IDWrap{}, err
	}
	return IDWrap{ulid: u}, nil
}

func NewTextMust(s string) IDWrap {
	u, err := ulid.Parse(s)
	if err != nil {
		panic(err)
	}
	return IDWrap{ulid: u}
}

func NewFromBytes(data []byte) (IDWrap, error) {
	u := ulid.ULID{}
	err := u.UnmarshalBinary(data)
	return IDWrap{ulid: u}, err
}

func NewFromBytesMust(data []byte) IDWrap {
	id, err := NewFromBytes(data)
	if err != nil {
		panic(err)
	}
	return id
}

func (u IDWrap) String() string {
	return u.ulid.String()
}

func (u IDWrap) Bytes() []byte {
	return u.ulid[:]
}

func (u IDWrap) Compare(id IDWrap) int {
	return u.ulid.Compare(id.ulid)
}

func (u IDWrap) IsZero() bool {
	return u.ulid == ulid.ULID{}
}

// Time extracts the creation time embedded in the ULID.
func (u IDWrap) Time() time.Time {
	return time.UnixMilli(int64(u.ulid.Time()))
}

// MarshalText lets ids render as ULID strings in JSON payloads.
func (u IDWrap) MarshalText() ([]byte, error) {
	return []byte(u.ulid.String()), nil
}

func (u *IDWrap) UnmarshalText(data []byte) error {
	return u.ulid.UnmarshalText(data)
}

// SQL driver value
func (u IDWrap) Value() (driver.Value, error) {
	return u.ulid.Value()
}

func (u *IDWrap) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("idwrap: cannot scan %T into IDWrap", value)
	}
	return u.ulid.UnmarshalBinary(b)
}
