package host

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/256dpi/quill"
)

func TestAccountTable(t *testing.T) {
	db := openDB()
	defer db.Close()

	table, err := CreateAccountTable(db, AccountTableConfig{Prefix: "accounts"})
	assert.NoError(t, err)

	count, err := table.Count()
	assert.NoError(t, err)
	assert.Equal(t, 0, count)

	key := quill.DeriveIdentity(userID, "message_dapp_2", programID)

	_, err = table.Get(key)
	assert.Equal(t, ErrAccountNotFound, err)

	err = table.Create(key, programID, DefaultSpace)
	assert.NoError(t, err)

	err = table.Create(key, programID, 8)
	assert.Equal(t, ErrAccountExists, err)

	account, err := table.Get(key)
	assert.NoError(t, err)
	assert.Equal(t, key, account.Key)
	assert.Equal(t, programID, account.Owner)
	assert.False(t, account.Writable)
	assert.Len(t, account.Data, DefaultSpace)

	err = table.Create(quill.Identity{7}, quill.Identity{8}, 0)
	assert.NoError(t, err)

	count, err = table.Count()
	assert.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestAccountTableIsolation(t *testing.T) {
	db := openDB()
	defer db.Close()

	a, err := CreateAccountTable(db, AccountTableConfig{Prefix: "a"})
	assert.NoError(t, err)

	b, err := CreateAccountTable(db, AccountTableConfig{Prefix: "b"})
	assert.NoError(t, err)

	err = a.Create(quill.Identity{1}, programID, 4)
	assert.NoError(t, err)

	_, err = b.Get(quill.Identity{1})
	assert.Equal(t, ErrAccountNotFound, err)

	count, err := b.Count()
	assert.NoError(t, err)
	assert.Equal(t, 0, count)
}
