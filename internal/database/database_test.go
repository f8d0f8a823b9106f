package database

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"laptopstore/internal/models"
)

func TestOpen_RecordNotFoundIsNotLogged(t *testing.T) {
	var buf bytes.Buffer
	db, err := open("sqlite", "file:"+uuid.NewString()+"?mode=memory&cache=shared", newLogger(&buf))
	require.NoError(t, err)

	var user models.User
	err = db.First(&user, "email = ?", "nobody@example.com").Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NotContains(t, buf.String(), "record not found")

	// real failures still reach the log
	err = db.Exec("SELECT * FROM missing_table").Error
	assert.Error(t, err)
	assert.Contains(t, buf.String(), "missing_table")
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open("mysql", "dsn")
	assert.Error(t, err)
}
