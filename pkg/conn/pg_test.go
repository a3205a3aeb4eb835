package conn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	assert.Equal(t,
		"postgres://localhost:5432?sslmode=disable",
		Option{}.dsn(),
	)
	assert.Equal(t,
		"postgres://gateway:pw@db:5433/audit?sslmode=require",
		Option{
			Host:     "db",
			Port:     5433,
			User:     "gateway",
			Password: "pw",
			Database: "audit",
			SSLMode:  "require",
		}.dsn(),
	)
	assert.Equal(t,
		"postgres://raw",
		Option{ConnString: "postgres://raw"}.dsn(),
	)
}
